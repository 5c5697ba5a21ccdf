// Package pipeline runs the leave evaluation over a whole spreadsheet:
// rows are resolved into records, scheduled, classified and scored.
package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"premium-leave-engine/internal/config"
	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/classifier"
	"premium-leave-engine/internal/services/records"
	"premium-leave-engine/internal/services/scheduler"
	"premium-leave-engine/internal/utils"
)

// DefaultWorkers is the parallelism used when none is configured.
const DefaultWorkers = 4

// Evaluation is the outcome for one employee.
type Evaluation struct {
	Record      *models.EmployeeRecord      `json:"record"`
	Schedule    models.LeaveScheduleDetails `json:"schedule"`
	Assessment  models.UrgencyAssessment    `json:"assessment"`
	Score       int                         `json:"score"`
	Diagnostics []models.Diagnostic         `json:"diagnostics,omitempty"`
}

// BatchResult contains the complete result of evaluating a batch.
type BatchResult struct {
	BatchID        uuid.UUID             `json:"batch_id"`
	Evaluations    []Evaluation          `json:"evaluations"`
	Summary        models.UrgencySummary `json:"summary"`
	Diagnostics    []models.Diagnostic   `json:"diagnostics"`
	Dropped        int                   `json:"dropped"`
	ProcessingTime time.Duration         `json:"processing_time"`
}

// Pipeline evaluates batches of records. It is safe for concurrent use.
type Pipeline struct {
	builder    *records.Builder
	classifier *classifier.Classifier
	estimator  classifier.RetirementEstimator
	memo       *Memo
	workers    int
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds the number of records evaluated at once.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithEstimator replaces the retirement estimator. The default reads the
// retirement date declared in the sheet.
func WithEstimator(e classifier.RetirementEstimator) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.estimator = e
		}
	}
}

// WithMemo enables memoization through m.
func WithMemo(m *Memo) Option {
	return func(p *Pipeline) { p.memo = m }
}

// WithBuilder replaces the row builder, e.g. to use custom header aliases.
func WithBuilder(b *records.Builder) Option {
	return func(p *Pipeline) {
		if b != nil {
			p.builder = b
		}
	}
}

// WithLogger sets the logger. The default is utils.GetLogger().
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline around c. A nil classifier uses the default thresholds.
func New(c *classifier.Classifier, opts ...Option) *Pipeline {
	if c == nil {
		c = classifier.NewDefault()
	}
	p := &Pipeline{
		builder:    records.NewBuilder(nil),
		classifier: c,
		estimator:  classifier.DeclaredDateEstimator{},
		workers:    DefaultWorkers,
		logger:     utils.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig creates a pipeline using the thresholds, workers and
// memoization settings of cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Pipeline {
	base := []Option{WithWorkers(cfg.Workers)}
	if cfg.Memoize {
		base = append(base, WithMemo(NewMemo()))
	}
	return New(classifier.New(cfg.Thresholds), append(base, opts...)...)
}

// Memo returns the pipeline's memo, or nil when memoization is off.
func (p *Pipeline) Memo() *Memo {
	return p.memo
}

// EvaluateRows resolves and evaluates spreadsheet rows. Rows without a name
// are dropped and counted; every other row yields one evaluation, in input
// order.
func (p *Pipeline) EvaluateRows(ctx context.Context, rows []utils.Row) (*BatchResult, error) {
	startTime := time.Now()
	result := newBatchResult()
	log := p.logger.With(zap.String("batch_id", result.BatchID.String()))

	log.Info("Starting leave evaluation", zap.Int("rows", len(rows)))

	// Stage 1: resolve rows into records
	recs := make([]*models.EmployeeRecord, 0, len(rows))
	recDiags := make([][]models.Diagnostic, 0, len(rows))
	for _, row := range rows {
		record, diags, err := p.builder.Build(row)
		result.Diagnostics = append(result.Diagnostics, diags...)
		if err != nil {
			result.Dropped++
			log.Debug("Row dropped", zap.Int("line", row.Line), zap.Error(err))
			continue
		}
		recs = append(recs, record)
		recDiags = append(recDiags, diags)
	}

	log.Info("Stage 1 complete: records resolved",
		zap.Int("records", len(recs)),
		zap.Int("dropped", result.Dropped),
		zap.Int("diagnostics", len(result.Diagnostics)),
	)

	return p.finish(ctx, log, result, recs, recDiags, startTime)
}

// EvaluateRecords evaluates records that were already resolved. Records
// without a name are dropped with a missing-field diagnostic.
func (p *Pipeline) EvaluateRecords(ctx context.Context, recs []*models.EmployeeRecord) (*BatchResult, error) {
	startTime := time.Now()
	result := newBatchResult()
	log := p.logger.With(zap.String("batch_id", result.BatchID.String()))

	log.Info("Starting leave evaluation", zap.Int("records", len(recs)))

	kept := make([]*models.EmployeeRecord, 0, len(recs))
	for _, record := range recs {
		if err := models.ValidateEmployeeRecord(record); err != nil {
			line := 0
			if record != nil {
				line = record.Line
			}
			result.Diagnostics = append(result.Diagnostics, models.NewMissingName(line))
			result.Dropped++
			continue
		}
		kept = append(kept, record)
	}

	return p.finish(ctx, log, result, kept, make([][]models.Diagnostic, len(kept)), startTime)
}

// Evaluate schedules, classifies and scores a single record. A scheduled
// record without a retirement date carries an incomplete-data diagnostic.
func (p *Pipeline) Evaluate(record *models.EmployeeRecord) Evaluation {
	estimate := p.estimator.Estimate(record)

	var key uint64
	if p.memo != nil {
		key = Key(p.classifier.Thresholds(), record, estimate)
		if e, ok := p.memo.get(key); ok {
			e = e.clone()
			return newEvaluation(record, estimate, e)
		}
	}

	entry := memoEntry{schedule: scheduler.ComputeScheduleDetails(record)}
	entry.assessment = p.classifier.ClassifySchedule(record, entry.schedule, estimate)
	entry.score = p.classifier.ScoreAssessment(entry.assessment)

	if p.memo != nil {
		p.memo.put(key, entry.clone())
	}
	return newEvaluation(record, estimate, entry)
}

func newEvaluation(record *models.EmployeeRecord, estimate *models.RetirementEstimate, e memoEntry) Evaluation {
	eval := Evaluation{Record: record, Schedule: e.schedule, Assessment: e.assessment, Score: e.score}
	if e.schedule.HasLeave && !estimate.HasDate() {
		d := models.NewIncompleteData(string(utils.FieldRetirementDate))
		d.Line = record.Line
		d.Name = record.Name
		eval.Diagnostics = []models.Diagnostic{d}
	}
	return eval
}

func (p *Pipeline) finish(ctx context.Context, log *zap.Logger, result *BatchResult, recs []*models.EmployeeRecord, diags [][]models.Diagnostic, startTime time.Time) (*BatchResult, error) {
	// Stage 2: schedule, classify and score in parallel
	evaluations, err := p.evaluateAll(ctx, recs)
	if err != nil {
		log.Warn("Evaluation cancelled", zap.Error(err))
		return nil, fmt.Errorf("batch %s: %w", result.BatchID, err)
	}
	for i := range evaluations {
		own := mergeDiagnostics(diags[i], evaluations[i].Diagnostics)
		result.Diagnostics = append(result.Diagnostics, own[len(diags[i]):]...)
		evaluations[i].Diagnostics = own
	}
	result.Evaluations = evaluations

	log.Info("Stage 2 complete: records evaluated",
		zap.Int("evaluated", len(evaluations)),
		zap.Int("workers", p.workers),
	)

	// Stage 3: summary
	result.Summary = Summarize(evaluations)
	result.ProcessingTime = time.Since(startTime)

	fields := []zap.Field{
		zap.Int("total", result.Summary.Total),
		zap.Int("dropped", result.Dropped),
		zap.Duration("processing_time", result.ProcessingTime),
	}
	for _, level := range models.UrgencyLevels() {
		fields = append(fields, zap.Int(string(level), result.Summary.ByLevel[level]))
	}
	if p.memo != nil {
		hits, misses := p.memo.Stats()
		fields = append(fields, zap.Int("memo_hits", hits), zap.Int("memo_misses", misses))
	}
	log.Info("Leave evaluation complete", fields...)

	return result, nil
}

func (p *Pipeline) evaluateAll(ctx context.Context, recs []*models.EmployeeRecord) ([]Evaluation, error) {
	evaluations := make([]Evaluation, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, record := range recs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evaluations[i] = p.Evaluate(record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return evaluations, nil
}

// mergeDiagnostics appends the evaluation diagnostics to the record ones,
// skipping fields the record already reported on.
func mergeDiagnostics(record, evaluated []models.Diagnostic) []models.Diagnostic {
	merged := slices.Clone(record)
	for _, d := range evaluated {
		if slices.ContainsFunc(record, func(r models.Diagnostic) bool { return r.Field == d.Field }) {
			continue
		}
		merged = append(merged, d)
	}
	return merged
}

func newBatchResult() *BatchResult {
	return &BatchResult{
		BatchID:     uuid.New(),
		Evaluations: []Evaluation{},
		Summary:     models.NewUrgencySummary(),
		Diagnostics: []models.Diagnostic{},
	}
}

// Summarize counts evaluations per urgency level.
func Summarize(evaluations []Evaluation) models.UrgencySummary {
	summary := models.NewUrgencySummary()
	for _, e := range evaluations {
		summary.Add(e.Assessment.Level)
	}
	return summary
}

// RankByScore returns the evaluations ordered by descending score. Equal
// scores keep their input order. The input is not modified.
func RankByScore(evaluations []Evaluation) []Evaluation {
	ranked := slices.Clone(evaluations)
	slices.SortStableFunc(ranked, func(a, b Evaluation) int {
		return b.Score - a.Score
	})
	return ranked
}
