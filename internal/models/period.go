// Package models defines the data structures for the premium leave engine.
package models

// PeriodKind tells how a leave-start token was interpreted.
type PeriodKind string

const (
	PeriodInvalid     PeriodKind = "invalid"
	PeriodStartOnly   PeriodKind = "start_only"
	PeriodCustomRange PeriodKind = "custom_range"
)

// ParsedPeriod is the result of interpreting a leave-start cell.
//
// For PeriodStartOnly only Start is set; the end is derived later from the
// month count. For PeriodCustomRange both Start and End come from the cell.
// Raw always holds the original token.
type ParsedPeriod struct {
	Kind  PeriodKind `json:"kind"`
	Start Date       `json:"start,omitempty"`
	End   Date       `json:"end,omitempty"`
	Raw   string     `json:"raw"`
}

// StartOnly builds a period with a declared start and no declared end.
func StartOnly(start Date, raw string) ParsedPeriod {
	return ParsedPeriod{Kind: PeriodStartOnly, Start: start, Raw: raw}
}

// CustomRange builds a period with both ends declared.
func CustomRange(start, end Date, raw string) ParsedPeriod {
	return ParsedPeriod{Kind: PeriodCustomRange, Start: start, End: end, Raw: raw}
}

// InvalidPeriod keeps an unparseable token for diagnostics.
func InvalidPeriod(raw string) ParsedPeriod {
	return ParsedPeriod{Kind: PeriodInvalid, Raw: raw}
}

// IsValid reports whether the period carries a usable start date.
func (p ParsedPeriod) IsValid() bool {
	return p.Kind == PeriodStartOnly || p.Kind == PeriodCustomRange
}

// IsCustomRange reports whether both ends were declared.
func (p ParsedPeriod) IsCustomRange() bool {
	return p.Kind == PeriodCustomRange
}

// HasConflict reports a custom range whose start falls after its end.
func (p ParsedPeriod) HasConflict() bool {
	return p.Kind == PeriodCustomRange && p.Start.After(p.End)
}

func (p ParsedPeriod) String() string {
	switch p.Kind {
	case PeriodStartOnly:
		return p.Start.String()
	case PeriodCustomRange:
		return p.Start.String() + " - " + p.End.String()
	default:
		return "invalid(" + p.Raw + ")"
	}
}
