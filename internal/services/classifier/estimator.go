package classifier

import (
	"premium-leave-engine/internal/models"
)

// RetirementEstimator supplies the retirement estimate of a record. Its
// eligibility policy lives outside this package.
type RetirementEstimator interface {
	Estimate(record *models.EmployeeRecord) *models.RetirementEstimate
}

// EstimatorFunc adapts a function to RetirementEstimator.
type EstimatorFunc func(record *models.EmployeeRecord) *models.RetirementEstimate

// Estimate calls f(record).
func (f EstimatorFunc) Estimate(record *models.EmployeeRecord) *models.RetirementEstimate {
	return f(record)
}

// DeclaredDateEstimator uses the retirement date declared in the sheet, when
// there is one.
type DeclaredDateEstimator struct{}

func (DeclaredDateEstimator) Estimate(record *models.EmployeeRecord) *models.RetirementEstimate {
	if record == nil || record.RetirementDate == nil {
		return nil
	}
	date := *record.RetirementDate
	return &models.RetirementEstimate{Eligible: true, EstimatedDate: &date}
}

// FixedEstimator returns the same estimate for every record.
func FixedEstimator(estimate *models.RetirementEstimate) RetirementEstimator {
	return EstimatorFunc(func(*models.EmployeeRecord) *models.RetirementEstimate {
		return estimate
	})
}
