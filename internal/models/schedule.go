// Package models defines the data structures for the premium leave engine.
package models

import "time"

// LeavePeriodSegment is one fixed 30-day block of a leave schedule.
// Month and Year are the calendar month of Start, used for display grouping.
type LeavePeriodSegment struct {
	Number int        `json:"number"`
	Start  Date       `json:"start"`
	End    Date       `json:"end"`
	Days   int        `json:"days"`
	Month  time.Month `json:"month"`
	Year   int        `json:"year"`
}

// LeaveScheduleDetails is the leave calendar derived from a record.
type LeaveScheduleDetails struct {
	HasLeave             bool                 `json:"has_leave"`
	Start                Date                 `json:"start"`
	End                  Date                 `json:"end"`
	TotalMonths          int                  `json:"total_months"`
	TotalDays            int                  `json:"total_days"`
	FullLeaveBlocksCount int                  `json:"full_leave_blocks_count"`
	RemainderMonths      int                  `json:"remainder_months"`
	IsCustomRange        bool                 `json:"is_custom_range"`
	DateConflict         bool                 `json:"date_conflict"`
	Segments             []LeavePeriodSegment `json:"segments"`
}

// NoSchedule is returned for records without a leave start or month count.
func NoSchedule() LeaveScheduleDetails {
	return LeaveScheduleDetails{Segments: []LeavePeriodSegment{}}
}

// AvailableBalance summarises granted against remaining leave months.
type AvailableBalance struct {
	TotalAvailable int     `json:"total_available"`
	Used           int     `json:"used"`
	Remaining      int     `json:"remaining"`
	PercentUsed    float64 `json:"percent_used"`
}
