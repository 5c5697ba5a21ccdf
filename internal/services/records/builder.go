// Package records resolves raw spreadsheet rows into employee records,
// collecting per-field diagnostics instead of failing.
package records

import (
	"strings"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/normalizer"
	"premium-leave-engine/internal/utils"
)

// Builder turns rows into records. It is safe for concurrent use.
type Builder struct {
	resolver *utils.FieldResolver
}

// NewBuilder creates a builder. A nil resolver uses the default aliases.
func NewBuilder(resolver *utils.FieldResolver) *Builder {
	if resolver == nil {
		resolver = utils.NewFieldResolver(nil)
	}
	return &Builder{resolver: resolver}
}

// Build resolves one row.
//
// A blank name returns ErrMissingRequiredField and no record. Any other
// problem becomes a diagnostic and the affected field is left absent:
// unparseable dates, a leave range whose start is after its end (the record
// is still scheduled), missing birth or admission dates and unreadable month
// counts.
func (b *Builder) Build(row utils.Row) (*models.EmployeeRecord, []models.Diagnostic, error) {
	values := b.resolver.ResolveAll(row.Values)

	name := strings.TrimSpace(values[utils.FieldName])
	record := &models.EmployeeRecord{
		Name:       name,
		SourceRows: []map[string]string{row.Values},
		Line:       row.Line,
	}
	if err := models.ValidateEmployeeRecord(record); err != nil {
		d := models.NewMissingName(row.Line)
		return nil, []models.Diagnostic{d}, err
	}

	var diags []models.Diagnostic
	add := func(d models.Diagnostic) {
		d.Line = row.Line
		d.Name = name
		diags = append(diags, d)
	}

	record.BirthDate = b.optionalDate(values, utils.FieldBirthDate, true, add)
	record.AdmissionDate = b.optionalDate(values, utils.FieldAdmissionDate, true, add)
	record.RetirementDate = b.optionalDate(values, utils.FieldRetirementDate, false, add)

	record.MonthsUsed = b.months(values, utils.FieldMonthsUsed, add)
	record.MonthsRemaining = b.months(values, utils.FieldMonthsRemaining, add)

	if raw, ok := values[utils.FieldLeaveStart]; ok {
		period := normalizer.ParsePeriod(raw)
		switch {
		case !period.IsValid():
			add(models.NewUnparseableDate(string(utils.FieldLeaveStart), raw))
		case period.HasConflict():
			add(models.NewDateConflict(string(utils.FieldLeaveStart), period.Start, period.End))
			record.LeaveStart = &period
		default:
			record.LeaveStart = &period
		}
	}

	return record, diags, nil
}

// optionalDate parses a single-date field. Missing values are reported as
// incomplete data only when reportMissing is set.
func (b *Builder) optionalDate(values map[utils.Field]string, field utils.Field, reportMissing bool, add func(models.Diagnostic)) *models.Date {
	raw, ok := values[field]
	if !ok {
		if reportMissing {
			add(models.NewIncompleteData(string(field)))
		}
		return nil
	}
	d, ok := normalizer.ParseSingleDate(raw)
	if !ok {
		add(models.NewUnparseableDate(string(field), raw))
		return nil
	}
	return &d
}

func (b *Builder) months(values map[utils.Field]string, field utils.Field, add func(models.Diagnostic)) int {
	raw, ok := values[field]
	if !ok {
		return 0
	}
	n, err := utils.ParseMonths(raw)
	if err != nil || n < 0 {
		add(models.Diagnostic{
			Kind:    models.KindIncompleteData,
			Field:   string(field),
			Value:   raw,
			Message: "invalid month count",
		})
		return 0
	}
	return n
}
