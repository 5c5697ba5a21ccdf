// Package scheduler converts granted leave months into a calendar of fixed
// 30-day leave periods.
//
// A leave month is always 30 days regardless of calendar month length, and a
// full leave is 3 leave months (90 days).
package scheduler

import (
	"premium-leave-engine/internal/models"
)

const (
	DaysPerMonth       = 30
	MonthsPerFullLeave = 3
	DaysPerFullLeave   = DaysPerMonth * MonthsPerFullLeave
)

// ComputeEnd returns the last day of a leave of the given months starting at
// start. Both ends are inclusive, so the span is months*30-1 days after start.
// A non-positive month count returns start.
func ComputeEnd(start models.Date, months int) models.Date {
	if months <= 0 {
		return start
	}
	return start.AddDays(months*DaysPerMonth - 1)
}

// SplitIntoSegments partitions a leave into exactly months contiguous 30-day
// segments beginning at start. It returns an empty slice for months <= 0.
func SplitIntoSegments(start models.Date, months int) []models.LeavePeriodSegment {
	if months <= 0 {
		return []models.LeavePeriodSegment{}
	}

	segments := make([]models.LeavePeriodSegment, 0, months)
	current := start
	for i := 1; i <= months; i++ {
		end := current.AddDays(DaysPerMonth - 1)
		segments = append(segments, models.LeavePeriodSegment{
			Number: i,
			Start:  current,
			End:    end,
			Days:   DaysPerMonth,
			Month:  current.Month,
			Year:   current.Year,
		})
		current = end.AddDays(1)
	}
	return segments
}

// ComputeScheduleDetails derives the leave schedule of a record.
//
// Records without a usable leave start or with no months get NoSchedule.
// For a custom range the literal dates are kept, TotalDays is the inclusive
// span (zero when start is after end) and TotalMonths is ceil(TotalDays/30). The segments always follow the
// record's month count from the start date, so for a custom range whose span
// is not a multiple of 30 days the last segment end differs from End.
func ComputeScheduleDetails(record *models.EmployeeRecord) models.LeaveScheduleDetails {
	if !record.HasLeaveStart() || record.MonthsUsed <= 0 {
		return models.NoSchedule()
	}

	period := record.LeaveStart
	months := record.MonthsUsed

	details := models.LeaveScheduleDetails{
		HasLeave: true,
		Start:    period.Start,
	}

	if period.IsCustomRange() {
		details.End = period.End
		details.IsCustomRange = true
		details.DateConflict = period.HasConflict()
		// A conflicting range has no literal span.
		details.TotalDays = max(models.DaysBetween(period.Start, period.End)+1, 0)
		details.TotalMonths = ceilDiv(details.TotalDays, DaysPerMonth)
	} else {
		details.End = ComputeEnd(period.Start, months)
		details.TotalDays = months * DaysPerMonth
		details.TotalMonths = months
	}

	details.FullLeaveBlocksCount = details.TotalMonths / MonthsPerFullLeave
	details.RemainderMonths = details.TotalMonths % MonthsPerFullLeave
	details.Segments = SplitIntoSegments(period.Start, months)

	return details
}

// ComputeAvailableBalance summarises a granted count against the remaining
// balance. Negative inputs count as zero.
func ComputeAvailableBalance(monthsGranted, monthsRemaining int) models.AvailableBalance {
	used := max(monthsGranted, 0)
	remaining := max(monthsRemaining, 0)
	total := used + remaining

	balance := models.AvailableBalance{
		TotalAvailable: total,
		Used:           used,
		Remaining:      remaining,
	}
	if total > 0 {
		balance.PercentUsed = float64(used) / float64(total) * 100
	}
	return balance
}

// ceilDiv is ceil(a/b) for b > 0; non-positive a yields 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
