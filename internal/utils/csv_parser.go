// Package utils provides utility functions for the premium leave engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
	ErrInvalidHeader  = errors.New("failed to read header")
)

// Row is one data row keyed by its original header names.
type Row struct {
	Line   int               `json:"line"`
	Values map[string]string `json:"values"`
}

// CSVParser reads personnel sheets exported as CSV into rows.
type CSVParser struct {
	resolver *FieldResolver
}

// NewCSVParser creates a new CSV parser instance. A nil resolver uses the
// default aliases.
func NewCSVParser(resolver *FieldResolver) *CSVParser {
	if resolver == nil {
		resolver = NewFieldResolver(nil)
	}
	return &CSVParser{resolver: resolver}
}

// ParseRows parses CSV content into rows. Broken lines are reported and
// skipped; they never stop the rest of the file from being read.
func (p *CSVParser) ParseRows(content string) ([]Row, []error) {
	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := newReader(content)

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("%w: %w", ErrInvalidHeader, err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if missing := p.resolver.MissingColumns(header); len(missing) > 0 {
		return nil, []error{fmt.Errorf("%w: %s", ErrMissingColumns, joinFields(missing))}
	}

	// Parse data rows
	var rows []Row
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}
		if line, _ := reader.FieldPos(0); line > 0 {
			lineNum = line
		}
		if isBlank(record) {
			continue
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" || i >= len(record) {
				continue
			}
			values[col] = strings.TrimSpace(record[i])
		}
		rows = append(rows, Row{Line: lineNum, Values: values})
	}

	if len(rows) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return rows, parseErrors
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func (p *CSVParser) ValidateCSVStructure(content string) *CSVValidationResult {
	result := &CSVValidationResult{
		Columns:        []string{},
		MissingColumns: []string{},
		Warnings:       []string{},
		Errors:         []string{},
	}

	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result
	}

	reader := newReader(content)

	// Read header
	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result
	}
	for _, col := range header {
		result.Columns = append(result.Columns, strings.TrimSpace(col))
	}
	for _, field := range p.resolver.MissingColumns(result.Columns) {
		result.MissingColumns = append(result.MissingColumns, string(field))
	}
	for _, field := range p.resolver.MissingRecommended(result.Columns) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("no %s column: no leave will be scheduled", field))
	}

	// Count rows
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		if !isBlank(record) {
			result.RowCount++
		}
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Warnings       []string `json:"warnings"`
	Errors         []string `json:"errors"`
}

// newReader configures a csv.Reader, using ';' when the header line has more
// semicolons than commas (spreadsheet exports in pt-BR locale).
func newReader(content string) *csv.Reader {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		reader.Comma = ';'
	}
	return reader
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
