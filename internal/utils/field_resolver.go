// Package utils provides utility functions for the premium leave engine.
package utils

import (
	"sort"
	"strings"
)

// Field is a logical record field looked up among spreadsheet columns.
type Field string

const (
	FieldName            Field = "name"
	FieldBirthDate       Field = "birth_date"
	FieldAdmissionDate   Field = "admission_date"
	FieldMonthsUsed      Field = "months_used"
	FieldMonthsRemaining Field = "months_remaining"
	FieldLeaveStart      Field = "leave_start"
	FieldRetirementDate  Field = "retirement_date"
)

// RequiredFields must be resolvable from a sheet header. Only the name is
// required: without a leave start column every employee is still reported,
// with no leave scheduled.
var RequiredFields = []Field{
	FieldName,
}

// RecommendedFields are reported as warnings when no column resolves to them.
var RecommendedFields = []Field{
	FieldLeaveStart,
}

// AllFields lists every field in resolution order.
var AllFields = []Field{
	FieldName,
	FieldBirthDate,
	FieldAdmissionDate,
	FieldMonthsUsed,
	FieldMonthsRemaining,
	FieldLeaveStart,
	FieldRetirementDate,
}

// DefaultFieldAliases maps each field to column names seen in the personnel
// sheets, in priority order. Matching ignores case and accents.
func DefaultFieldAliases() map[Field][]string {
	return map[Field][]string{
		FieldName: {
			"nome", "nome do servidor", "servidor", "nome completo",
			"name", "full_name", "fullname", "employee", "employee_name",
		},
		FieldBirthDate: {
			"data de nascimento", "data nascimento", "nascimento", "dt_nascimento",
			"birth_date", "birthdate", "date of birth", "dob",
		},
		FieldAdmissionDate: {
			"data de admissão", "data admissão", "admissão", "dt_admissao", "data de ingresso", "ingresso",
			"admission_date", "admission", "hire_date", "hire date",
		},
		FieldMonthsUsed: {
			"meses concedidos", "meses de gozo", "meses gozo", "qtd meses", "meses",
			"months_used", "months granted", "months",
		},
		FieldMonthsRemaining: {
			"saldo", "saldo de meses", "meses restantes", "saldo meses",
			"months_remaining", "remaining months", "balance",
		},
		FieldLeaveStart: {
			"início da licença", "inicio licenca", "início do gozo", "período de gozo", "periodo",
			"data início", "inicio", "leave_start", "leave start", "start_date", "period",
		},
		FieldRetirementDate: {
			"data de aposentadoria", "aposentadoria", "previsão de aposentadoria",
			"retirement_date", "retirement",
		},
	}
}

// FieldResolver finds logical fields in rows with arbitrary column names.
// It holds no per-row state and is safe for concurrent use.
type FieldResolver struct {
	aliases map[Field][]string
}

// NewFieldResolver builds a resolver from an alias table. Aliases are folded
// once here; a nil table uses DefaultFieldAliases.
func NewFieldResolver(aliases map[Field][]string) *FieldResolver {
	if aliases == nil {
		aliases = DefaultFieldAliases()
	}
	folded := make(map[Field][]string, len(aliases))
	for field, names := range aliases {
		keys := make([]string, 0, len(names))
		for _, name := range names {
			if key := FoldKey(name); key != "" {
				keys = append(keys, key)
			}
		}
		folded[field] = keys
	}
	return &FieldResolver{aliases: folded}
}

// Resolve returns the first non-empty value among the field's aliases, tried
// in priority order.
func (r *FieldResolver) Resolve(row map[string]string, field Field) (string, bool) {
	return r.resolveFolded(foldRow(row), field)
}

// ResolveAll resolves every known field of a row at once.
func (r *FieldResolver) ResolveAll(row map[string]string) map[Field]string {
	folded := foldRow(row)
	values := make(map[Field]string, len(AllFields))
	for _, field := range AllFields {
		if v, ok := r.resolveFolded(folded, field); ok {
			values[field] = v
		}
	}
	return values
}

// MissingColumns returns the required fields no header column resolves to.
func (r *FieldResolver) MissingColumns(header []string) []Field {
	return r.missing(header, RequiredFields)
}

// MissingRecommended returns the recommended fields no header column
// resolves to.
func (r *FieldResolver) MissingRecommended(header []string) []Field {
	return r.missing(header, RecommendedFields)
}

func (r *FieldResolver) missing(header []string, fields []Field) []Field {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[FoldKey(col)] = true
	}

	var missing []Field
	for _, field := range fields {
		found := false
		for _, alias := range r.aliases[field] {
			if present[alias] {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}
	return missing
}

func (r *FieldResolver) resolveFolded(folded map[string]string, field Field) (string, bool) {
	for _, alias := range r.aliases[field] {
		if v := folded[alias]; v != "" {
			return v, true
		}
	}
	return "", false
}

// foldRow folds the keys of a row and trims its values. When two columns fold
// to the same key the first non-empty one in sorted key order wins.
func foldRow(row map[string]string) map[string]string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]string, len(row))
	for _, k := range keys {
		key := FoldKey(k)
		v := strings.TrimSpace(row[k])
		if existing, ok := folded[key]; ok && existing != "" {
			continue
		}
		folded[key] = v
	}
	return folded
}
