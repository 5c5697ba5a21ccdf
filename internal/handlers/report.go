// Package handlers wires the leave engine to files and report output.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/normalizer"
	"premium-leave-engine/internal/services/pipeline"
	"premium-leave-engine/internal/utils"
)

// maxReportedErrors caps the parse errors echoed back in a report.
const maxReportedErrors = 10

// ReportHandler reads leave spreadsheets and evaluates them.
type ReportHandler struct {
	parser   *utils.CSVParser
	pipeline *pipeline.Pipeline
}

// NewReportHandler creates a handler. A nil resolver uses the default aliases.
func NewReportHandler(p *pipeline.Pipeline, resolver *utils.FieldResolver) *ReportHandler {
	return &ReportHandler{
		parser:   utils.NewCSVParser(resolver),
		pipeline: p,
	}
}

// ReportResult is the result of evaluating a CSV file.
type ReportResult struct {
	Message     string                `json:"message"`
	Source      string                `json:"source"`
	Ranked      bool                  `json:"ranked"`
	ParseErrors []string              `json:"parse_errors,omitempty"`
	Batch       *pipeline.BatchResult `json:"batch"`
}

// EvaluateFile reads path and evaluates every row. ranked orders the
// evaluations by descending score instead of file order.
func (h *ReportHandler) EvaluateFile(ctx context.Context, path string, ranked bool) (*ReportResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return h.Evaluate(ctx, path, string(content), ranked)
}

// Evaluate evaluates CSV content. source names the content in the report.
func (h *ReportHandler) Evaluate(ctx context.Context, source, content string, ranked bool) (*ReportResult, error) {
	logger := utils.GetLogger()

	logger.Info("Processing CSV file", utils.String("source", source))

	rows, parseErrors := h.parser.ParseRows(content)
	for _, e := range parseErrors {
		if isStructural(e) {
			return nil, fmt.Errorf("failed to parse %s: %w", source, e)
		}
	}

	logger.Info("Parsed CSV",
		utils.String("source", source),
		utils.Int("rows", len(rows)),
		utils.Int("parseErrors", len(parseErrors)))

	batch, err := h.pipeline.EvaluateRows(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s: %w", source, err)
	}
	if ranked {
		batch.Evaluations = pipeline.RankByScore(batch.Evaluations)
	}

	errMsgs := make([]string, 0, len(parseErrors))
	for _, e := range parseErrors {
		errMsgs = append(errMsgs, e.Error())
	}
	// Limit errors in response
	if len(errMsgs) > maxReportedErrors {
		errMsgs = append(errMsgs[:maxReportedErrors], fmt.Sprintf("... and %d more errors", len(errMsgs)-maxReportedErrors))
	}

	return &ReportResult{
		Message:     fmt.Sprintf("Evaluated %d employees (%d dropped)", len(batch.Evaluations), batch.Dropped),
		Source:      source,
		Ranked:      ranked,
		ParseErrors: errMsgs,
		Batch:       batch,
	}, nil
}

// ValidateFile checks the structure of the CSV at path.
func (h *ReportHandler) ValidateFile(path string) (*utils.CSVValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return h.parser.ValidateCSVStructure(string(content)), nil
}

// DateResult is the normalizer output for one token.
type DateResult struct {
	Token  string            `json:"token"`
	Kind   models.PeriodKind `json:"kind"`
	Start  models.Date       `json:"start"`
	End    models.Date       `json:"end"`
	Valid  bool              `json:"valid"`
	Detail string            `json:"detail,omitempty"`
}

// ParseDates runs the normalizer over each token.
func ParseDates(tokens []string) []DateResult {
	results := make([]DateResult, 0, len(tokens))
	for _, token := range tokens {
		period := normalizer.ParsePeriod(token)
		r := DateResult{
			Token: token,
			Kind:  period.Kind,
			Start: period.Start,
			End:   period.End,
			Valid: period.IsValid(),
		}
		if period.HasConflict() {
			r.Detail = models.ErrDateConflict.Error()
		}
		results = append(results, r)
	}
	return results
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteReport writes a plain-text table of the evaluations followed by the
// summary and any diagnostics.
func WriteReport(w io.Writer, r *ReportResult) error {
	batch := r.Batch
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Batch %s (%s)\n\n", batch.BatchID, r.Source)
	fmt.Fprintln(tw, "LINE\tNAME\tSTART\tEND\tMONTHS\tLEVEL\tSCORE\tREASON")
	for _, e := range batch.Evaluations {
		start, end := "-", "-"
		if e.Schedule.HasLeave {
			start, end = e.Schedule.Start.String(), e.Schedule.End.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
			e.Record.Line, e.Record.Name, start, end,
			e.Schedule.TotalMonths, e.Assessment.Level, e.Score, e.Assessment.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s in %s\n", r.Message, batch.ProcessingTime.Round(time.Microsecond))
	for _, level := range models.UrgencyLevels() {
		fmt.Fprintf(w, "  %-20s %d\n", level, batch.Summary.ByLevel[level])
	}

	if len(batch.Diagnostics) > 0 || len(r.ParseErrors) > 0 {
		fmt.Fprintln(w, "\nDiagnostics:")
		for _, msg := range r.ParseErrors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
		for i := range batch.Diagnostics {
			d := &batch.Diagnostics[i]
			line := d.Error()
			if d.Name != "" {
				line = fmt.Sprintf("%s (%s)", line, d.Name)
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

// WriteDates writes normalizer results one per line.
func WriteDates(w io.Writer, results []DateResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOKEN\tKIND\tSTART\tEND\tNOTE")
	for _, r := range results {
		start, end := "-", "-"
		if r.Valid {
			start = r.Start.String()
		}
		if r.Kind == models.PeriodCustomRange {
			end = r.End.String()
		}
		fmt.Fprintf(tw, "%q\t%s\t%s\t%s\t%s\n", r.Token, r.Kind, start, end, r.Detail)
	}
	return tw.Flush()
}

// WriteValidation writes a CSV structure check.
func WriteValidation(w io.Writer, path string, v *utils.CSVValidationResult) error {
	status := "valid"
	if !v.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "%s: %s (%d data rows)\n", path, status, v.RowCount)
	fmt.Fprintf(w, "  columns: %s\n", strings.Join(v.Columns, ", "))
	if len(v.MissingColumns) > 0 {
		fmt.Fprintf(w, "  missing: %s\n", strings.Join(v.MissingColumns, ", "))
	}
	for _, warning := range v.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	for _, e := range v.Errors {
		fmt.Fprintf(w, "  error: %s\n", e)
	}
	return nil
}

// isStructural reports errors that make the whole file unusable.
func isStructural(err error) bool {
	return errors.Is(err, utils.ErrEmptyCSV) ||
		errors.Is(err, utils.ErrMissingColumns) ||
		errors.Is(err, utils.ErrInvalidHeader)
}
