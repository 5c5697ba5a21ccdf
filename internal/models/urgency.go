// Package models defines the data structures for the premium leave engine.
package models

// UrgencyLevel is the rescheduling urgency of an employee's leave.
type UrgencyLevel string

const (
	UrgencyUrgent           UrgencyLevel = "urgent"
	UrgencyMedium           UrgencyLevel = "medium"
	UrgencyLow              UrgencyLevel = "low"
	UrgencyNoLeaveScheduled UrgencyLevel = "no_leave_scheduled"
)

// UrgencyLevels returns all levels, most urgent first.
func UrgencyLevels() []UrgencyLevel {
	return []UrgencyLevel{
		UrgencyUrgent,
		UrgencyMedium,
		UrgencyLow,
		UrgencyNoLeaveScheduled,
	}
}

// IsValid checks if the level is one of the known levels.
func (l UrgencyLevel) IsValid() bool {
	for _, valid := range UrgencyLevels() {
		if l == valid {
			return true
		}
	}
	return false
}

// Rank orders levels for escalation: higher is more urgent.
// NoLeaveScheduled ranks below Low.
func (l UrgencyLevel) Rank() int {
	switch l {
	case UrgencyUrgent:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// RetirementEstimate is what the external retirement estimator returns.
// EstimatedDate is nil when no date could be determined.
type RetirementEstimate struct {
	Eligible      bool  `json:"eligible"`
	EstimatedDate *Date `json:"estimated_date,omitempty"`
}

// HasDate reports whether the estimate carries a usable date.
func (e *RetirementEstimate) HasDate() bool {
	return e != nil && e.EstimatedDate != nil
}

// UrgencyAssessment is the classification of one record.
type UrgencyAssessment struct {
	Level  UrgencyLevel `json:"level"`
	Reason string       `json:"reason"`

	// GapYears is (retirement - leave end) in 365.25-day years.
	GapYears float64 `json:"gap_years"`
	// MonthsGap is the same gap in months, rounded down. Negative means the
	// leave ends after retirement.
	MonthsGap int `json:"months_gap"`

	HasUnusedBalance bool `json:"has_unused_balance"`
	UnusedMonths     int  `json:"unused_months"`
	Escalated        bool `json:"escalated"`

	RetirementKnown bool  `json:"retirement_known"`
	RetirementDate  *Date `json:"retirement_date,omitempty"`
	LeaveEnd        *Date `json:"leave_end,omitempty"`
}

// UrgencySummary holds aggregate counts for summary displays.
type UrgencySummary struct {
	Total   int                  `json:"total"`
	ByLevel map[UrgencyLevel]int `json:"by_level"`
}

// NewUrgencySummary returns a summary with every level present at zero.
func NewUrgencySummary() UrgencySummary {
	byLevel := make(map[UrgencyLevel]int, len(UrgencyLevels()))
	for _, level := range UrgencyLevels() {
		byLevel[level] = 0
	}
	return UrgencySummary{ByLevel: byLevel}
}

// Add counts one assessment.
func (s *UrgencySummary) Add(level UrgencyLevel) {
	if s.ByLevel == nil {
		*s = NewUrgencySummary()
	}
	s.Total++
	s.ByLevel[level]++
}
