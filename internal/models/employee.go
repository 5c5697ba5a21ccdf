// Package models defines the data structures for the premium leave engine.
package models

import "strings"

// EmployeeRecord is one resolved spreadsheet row.
type EmployeeRecord struct {
	Name          string `json:"name"`
	BirthDate     *Date  `json:"birth_date,omitempty"`
	AdmissionDate *Date  `json:"admission_date,omitempty"`

	// MonthsUsed is the number of leave months granted for enjoyment from
	// LeaveStart. It drives the schedule.
	MonthsUsed int `json:"months_used"`
	// MonthsRemaining is the accrued balance the employee still holds,
	// including months already placed in the schedule.
	MonthsRemaining int `json:"months_remaining"`

	LeaveStart *ParsedPeriod `json:"leave_start,omitempty"`

	// RetirementDate is a retirement date declared in the source sheet, if any.
	// Only the declared-date estimator reads it.
	RetirementDate *Date `json:"retirement_date,omitempty"`

	// SourceRows keeps the raw rows the record came from. Rows of the same
	// employee are merged upstream; this package never merges them.
	SourceRows []map[string]string `json:"-"`
	Line       int                 `json:"line,omitempty"`
}

// HasName reports whether the record has a usable identity.
func (r *EmployeeRecord) HasName() bool {
	return r != nil && strings.TrimSpace(r.Name) != ""
}

// HasLeaveStart reports whether a usable leave start was resolved.
func (r *EmployeeRecord) HasLeaveStart() bool {
	return r != nil && r.LeaveStart != nil && r.LeaveStart.IsValid()
}

// ValidateEmployeeRecord checks the only hard requirement on a record: a name.
func ValidateEmployeeRecord(r *EmployeeRecord) error {
	if !r.HasName() {
		return ErrMissingRequiredField
	}
	return nil
}
