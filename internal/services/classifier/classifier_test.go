package classifier_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/classifier"
	"premium-leave-engine/internal/services/scheduler"
)

var leaveStart = models.MustDate(2025, time.March, 1)

// leaveEnd is the end of a 3-month leave starting at leaveStart.
var leaveEnd = models.MustDate(2025, time.May, 29)

// mockRecord creates a test record with default values
func mockRecord(overrides map[string]interface{}) *models.EmployeeRecord {
	period := models.StartOnly(leaveStart, "01/03/2025")
	record := &models.EmployeeRecord{
		Name:            "Maria da Silva",
		MonthsUsed:      3,
		MonthsRemaining: 3,
		LeaveStart:      &period,
	}

	if v, ok := overrides["months_used"]; ok {
		record.MonthsUsed = v.(int)
	}
	if v, ok := overrides["months_remaining"]; ok {
		record.MonthsRemaining = v.(int)
	}
	if _, ok := overrides["no_leave_start"]; ok {
		record.LeaveStart = nil
	}

	return record
}

func retireOn(d models.Date) *models.RetirementEstimate {
	return &models.RetirementEstimate{Eligible: true, EstimatedDate: &d}
}

func TestClassify_NoLeaveScheduled(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"no_leave_start": true, "months_remaining": 0})

	a := c.Classify(record, retireOn(leaveEnd))

	assert.Equal(t, models.UrgencyNoLeaveScheduled, a.Level)
	assert.Equal(t, classifier.ReasonNoLeave, a.Reason)
	assert.Nil(t, a.LeaveEnd)
	assert.Equal(t, 50, c.ScoreAssessment(a))
}

func TestClassify_NoLeaveReportsUnusedBalance(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_used": 0, "months_remaining": 6})

	a := c.Classify(record, retireOn(leaveEnd))

	assert.Equal(t, models.UrgencyNoLeaveScheduled, a.Level)
	assert.True(t, a.HasUnusedBalance)
	assert.Equal(t, 6, a.UnusedMonths)
	assert.False(t, a.Escalated)
	assert.Contains(t, a.Reason, "6 months not yet scheduled")
}

func TestClassify_MissingRetirementDefaultsToLow(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 12})

	for name, estimate := range map[string]*models.RetirementEstimate{
		"nil estimate": nil,
		"no date":      {Eligible: false},
	} {
		t.Run(name, func(t *testing.T) {
			a := c.Classify(record, estimate)

			assert.Equal(t, models.UrgencyLow, a.Level)
			assert.True(t, strings.HasPrefix(a.Reason, classifier.ReasonNoRetirement))
			assert.False(t, a.RetirementKnown)
			assert.False(t, a.Escalated)
			assert.Equal(t, 9, a.UnusedMonths)
			require.NotNil(t, a.LeaveEnd)
			assert.Equal(t, leaveEnd, *a.LeaveEnd)
			assert.Equal(t, 25, c.ScoreAssessment(a))
		})
	}
}

func TestClassify_RetirementOnLeaveEndIsUrgent(t *testing.T) {
	c := classifier.NewDefault()

	a := c.Classify(mockRecord(nil), retireOn(leaveEnd))

	assert.Equal(t, models.UrgencyUrgent, a.Level)
	assert.Equal(t, 0.0, a.GapYears)
	assert.Equal(t, 0, a.MonthsGap)
	assert.Equal(t, 100, c.ScoreAssessment(a))
}

func TestClassify_RetirementBeforeLeaveEndIsCritical(t *testing.T) {
	c := classifier.NewDefault()

	a := c.Classify(mockRecord(nil), retireOn(leaveEnd.AddDays(-1)))

	assert.Equal(t, models.UrgencyUrgent, a.Level)
	assert.Less(t, a.GapYears, 0.0)
	assert.Negative(t, a.MonthsGap)
	assert.Contains(t, a.Reason, classifier.ReasonAfterRetirement)
	assert.Equal(t, 100, c.ScoreAssessment(a))
}

func TestClassify_GapBands(t *testing.T) {
	c := classifier.NewDefault()
	testCases := []struct {
		name     string
		gapDays  int
		expected models.UrgencyLevel
	}{
		{"one year", 365, models.UrgencyUrgent},
		{"just under two years", 730, models.UrgencyUrgent},
		{"just over two years", 731, models.UrgencyMedium},
		{"four years", 4 * 365, models.UrgencyMedium},
		{"just over five years", 1827, models.UrgencyLow},
		{"twenty years", 20 * 365, models.UrgencyLow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := c.Classify(mockRecord(nil), retireOn(leaveEnd.AddDays(tc.gapDays)))

			assert.Equal(t, tc.expected, a.Level)
			assert.False(t, a.Escalated)
			assert.InDelta(t, float64(tc.gapDays)/365.25, a.GapYears, 1e-9)
		})
	}
}

func TestClassify_UnusedBalanceEscalatesLowToMedium(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 7})

	a := c.Classify(record, retireOn(leaveEnd.AddDays(10*365)))

	assert.Equal(t, models.UrgencyMedium, a.Level)
	assert.True(t, a.Escalated)
	assert.True(t, a.HasUnusedBalance)
	assert.Equal(t, 4, a.UnusedMonths)
	assert.Contains(t, a.Reason, "escalated from low")
	assert.Contains(t, a.Reason, "4 months not yet scheduled")
}

func TestClassify_UnusedBalanceEscalatesMediumToUrgent(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 9})

	a := c.Classify(record, retireOn(leaveEnd.AddDays(3*365)))

	assert.Equal(t, models.UrgencyUrgent, a.Level)
	assert.True(t, a.Escalated)
	assert.Equal(t, 6, a.UnusedMonths)
}

func TestClassify_EscalationBelowThresholdDoesNothing(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 5})

	a := c.Classify(record, retireOn(leaveEnd.AddDays(10*365)))

	assert.Equal(t, models.UrgencyLow, a.Level)
	assert.False(t, a.Escalated)
	assert.Equal(t, 2, a.UnusedMonths)
}

func TestClassify_UnusedClampedAtZero(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 1})

	a := c.Classify(record, retireOn(leaveEnd.AddDays(10*365)))

	assert.False(t, a.HasUnusedBalance)
	assert.Equal(t, 0, a.UnusedMonths)
}

func TestClassify_NeverDeescalates(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 30})

	a := c.Classify(record, retireOn(leaveEnd.AddDays(100)))

	assert.Equal(t, models.UrgencyUrgent, a.Level)
	assert.False(t, a.Escalated)
}

func TestClassify_CustomThresholds(t *testing.T) {
	thresholds := classifier.DefaultThresholds()
	thresholds.UrgentGapYears = 1
	c := classifier.New(thresholds)

	a := c.Classify(mockRecord(nil), retireOn(leaveEnd.AddDays(500)))

	assert.Equal(t, models.UrgencyMedium, a.Level)
	assert.Equal(t, 1.0, c.Thresholds().UrgentGapYears)
}

func TestClassify_ReferentiallyTransparent(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(map[string]interface{}{"months_remaining": 8})
	estimate := retireOn(leaveEnd.AddDays(900))

	assert.Equal(t, c.Classify(record, estimate), c.Classify(record, estimate))
	assert.Equal(t, c.Score(record, estimate), c.Score(record, estimate))
}

func TestClassifySchedule_MatchesClassify(t *testing.T) {
	c := classifier.NewDefault()
	record := mockRecord(nil)
	estimate := retireOn(leaveEnd.AddDays(400))

	schedule := scheduler.ComputeScheduleDetails(record)

	assert.Equal(t, c.Classify(record, estimate), c.ClassifySchedule(record, schedule, estimate))
}

func TestScore(t *testing.T) {
	c := classifier.NewDefault()

	// Gap of about 5 years sits halfway along the 10-year horizon.
	half := c.Score(mockRecord(nil), retireOn(leaveEnd.AddDays(1826)))
	assert.Equal(t, 50, half)

	// Beyond the horizon the gap contributes nothing.
	far := c.Score(mockRecord(nil), retireOn(leaveEnd.AddDays(15*365)))
	assert.Equal(t, 0, far)

	// Each unused month adds 2 points.
	withUnused := c.Score(mockRecord(map[string]interface{}{"months_remaining": 5}), retireOn(leaveEnd.AddDays(15*365)))
	assert.Equal(t, 4, withUnused)

	// Capped at 100.
	capped := c.Score(mockRecord(map[string]interface{}{"months_remaining": 20}), retireOn(leaveEnd))
	assert.Equal(t, 100, capped)
}

func TestScore_OrdersLikeClassify(t *testing.T) {
	c := classifier.NewDefault()

	urgent := c.Score(mockRecord(nil), retireOn(leaveEnd.AddDays(365)))
	medium := c.Score(mockRecord(nil), retireOn(leaveEnd.AddDays(4*365)))
	low := c.Score(mockRecord(nil), retireOn(leaveEnd.AddDays(8*365)))

	assert.Greater(t, urgent, medium)
	assert.Greater(t, medium, low)
}

func TestDeclaredDateEstimator(t *testing.T) {
	retirement := models.MustDate(2030, time.June, 1)
	record := mockRecord(nil)

	assert.Nil(t, classifier.DeclaredDateEstimator{}.Estimate(record))

	record.RetirementDate = &retirement
	estimate := classifier.DeclaredDateEstimator{}.Estimate(record)
	require.NotNil(t, estimate)
	require.True(t, estimate.HasDate())
	assert.Equal(t, retirement, *estimate.EstimatedDate)
}

func TestFixedEstimator(t *testing.T) {
	estimate := retireOn(leaveEnd)
	e := classifier.FixedEstimator(estimate)

	assert.Same(t, estimate, e.Estimate(mockRecord(nil)))
	assert.Same(t, estimate, e.Estimate(nil))
}
