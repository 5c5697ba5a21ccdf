// Package classifier assigns a rescheduling urgency to each employee from the
// gap between leave completion and the estimated retirement date.
package classifier

import (
	"fmt"
	"math"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/scheduler"
)

// DaysPerYear is the fixed year length used for the retirement gap ratio.
const DaysPerYear = 365.25

// Reasons that do not depend on the record.
const (
	ReasonNoLeave         = "no leave scheduled"
	ReasonNoRetirement    = "retirement date could not be determined"
	ReasonAfterRetirement = "leave ends after retirement"
)

// Thresholds holds the classification and scoring cutoffs.
type Thresholds struct {
	// Gaps up to UrgentGapYears are urgent, up to MediumGapYears medium.
	UrgentGapYears float64
	MediumGapYears float64

	// Unused months that escalate low to medium and medium to urgent.
	UnusedMediumMonths int
	UnusedUrgentMonths int

	// ScoreHorizonYears maps a gap of 0 to 100 and a gap of the horizon to 0.
	ScoreHorizonYears   float64
	ScorePerUnusedMonth int
	NoLeaveScore        int
	NoRetirementScore   int
}

// DefaultThresholds returns the cutoffs used by the personnel department.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UrgentGapYears:      2,
		MediumGapYears:      5,
		UnusedMediumMonths:  3,
		UnusedUrgentMonths:  6,
		ScoreHorizonYears:   10,
		ScorePerUnusedMonth: 2,
		NoLeaveScore:        50,
		NoRetirementScore:   25,
	}
}

// Classifier is stateless apart from its thresholds and safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
}

// New creates a classifier with the given thresholds.
func New(thresholds Thresholds) *Classifier {
	if thresholds.ScoreHorizonYears <= 0 {
		thresholds.ScoreHorizonYears = DefaultThresholds().ScoreHorizonYears
	}
	return &Classifier{thresholds: thresholds}
}

// NewDefault creates a classifier with DefaultThresholds.
func NewDefault() *Classifier {
	return New(DefaultThresholds())
}

// Thresholds returns the classifier's cutoffs.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify computes the urgency of a record given its retirement estimate.
//
// Records without a schedule are NoLeaveScheduled. Without a retirement date
// the result is Low, so missing data never raises false urgency. Otherwise
// the gap in years between leave end and retirement selects the level, and a
// large unused balance escalates Low to Medium and Medium to Urgent.
func (c *Classifier) Classify(record *models.EmployeeRecord, estimate *models.RetirementEstimate) models.UrgencyAssessment {
	schedule := scheduler.ComputeScheduleDetails(record)
	return c.ClassifySchedule(record, schedule, estimate)
}

// ClassifySchedule is Classify for callers that already computed the schedule.
func (c *Classifier) ClassifySchedule(record *models.EmployeeRecord, schedule models.LeaveScheduleDetails, estimate *models.RetirementEstimate) models.UrgencyAssessment {
	unused := unusedMonths(record, schedule)
	assessment := models.UrgencyAssessment{
		HasUnusedBalance: unused > 0,
		UnusedMonths:     unused,
	}

	if !schedule.HasLeave {
		assessment.Level = models.UrgencyNoLeaveScheduled
		assessment.Reason = withUnused(ReasonNoLeave, unused)
		return assessment
	}

	end := schedule.End
	assessment.LeaveEnd = &end

	if !estimate.HasDate() {
		assessment.Level = models.UrgencyLow
		assessment.Reason = withUnused(ReasonNoRetirement, unused)
		return assessment
	}

	retirement := *estimate.EstimatedDate
	assessment.RetirementKnown = true
	assessment.RetirementDate = &retirement

	gapDays := models.DaysBetween(end, retirement)
	assessment.GapYears = float64(gapDays) / DaysPerYear
	assessment.MonthsGap = int(math.Floor(assessment.GapYears * 12))

	var reason string
	switch {
	case assessment.GapYears < 0:
		assessment.Level = models.UrgencyUrgent
		reason = fmt.Sprintf("%s: critical, leave ends %s past the retirement date",
			ReasonAfterRetirement, pluralMonths(-assessment.MonthsGap))
	case assessment.GapYears <= c.thresholds.UrgentGapYears:
		assessment.Level = models.UrgencyUrgent
		reason = fmt.Sprintf("leave ends %s before retirement", pluralMonths(assessment.MonthsGap))
	case assessment.GapYears <= c.thresholds.MediumGapYears:
		assessment.Level = models.UrgencyMedium
		reason = fmt.Sprintf("leave ends %s before retirement", pluralMonths(assessment.MonthsGap))
	default:
		assessment.Level = models.UrgencyLow
		reason = fmt.Sprintf("leave ends %s before retirement", pluralMonths(assessment.MonthsGap))
	}

	from := assessment.Level
	if unused >= c.thresholds.UnusedMediumMonths && assessment.Level == models.UrgencyLow {
		assessment.Level = models.UrgencyMedium
	}
	if unused >= c.thresholds.UnusedUrgentMonths && assessment.Level == models.UrgencyMedium {
		assessment.Level = models.UrgencyUrgent
	}
	if assessment.Level != from {
		assessment.Escalated = true
		reason = fmt.Sprintf("%s; escalated from %s: %s not yet scheduled",
			reason, from, pluralMonths(unused))
	}

	assessment.Reason = reason
	return assessment
}

// Score ranks a record from 0 (least urgent) to 100 (most urgent).
func (c *Classifier) Score(record *models.EmployeeRecord, estimate *models.RetirementEstimate) int {
	return c.ScoreAssessment(c.Classify(record, estimate))
}

// ScoreAssessment derives the score from an existing assessment.
//
// The gap maps linearly over the score horizon (gap 0 scores 100, gap equal
// to the horizon scores 0) and each unused month adds ScorePerUnusedMonth,
// capped at 100. Records without a schedule score NoLeaveScore and records
// without a retirement date score NoRetirementScore.
func (c *Classifier) ScoreAssessment(a models.UrgencyAssessment) int {
	if a.Level == models.UrgencyNoLeaveScheduled {
		return c.thresholds.NoLeaveScore
	}
	if !a.RetirementKnown {
		return c.thresholds.NoRetirementScore
	}

	penalty := clamp(a.GapYears*100/c.thresholds.ScoreHorizonYears, 0, 100)
	score := 100 - penalty + float64(c.thresholds.ScorePerUnusedMonth*a.UnusedMonths)
	return int(math.Round(clamp(score, 0, 100)))
}

// unusedMonths is the remaining balance not covered by the schedule.
func unusedMonths(record *models.EmployeeRecord, schedule models.LeaveScheduleDetails) int {
	if record == nil {
		return 0
	}
	balance := scheduler.ComputeAvailableBalance(record.MonthsUsed, record.MonthsRemaining)
	return max(balance.Remaining-schedule.TotalMonths, 0)
}

func withUnused(reason string, unused int) string {
	if unused <= 0 {
		return reason
	}
	return fmt.Sprintf("%s; %s not yet scheduled", reason, pluralMonths(unused))
}

func pluralMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
