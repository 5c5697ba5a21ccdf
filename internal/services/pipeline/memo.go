package pipeline

import (
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/classifier"
)

type memoEntry struct {
	schedule   models.LeaveScheduleDetails
	assessment models.UrgencyAssessment
	score      int
}

// Memo caches evaluations of records that share the same scheduling inputs.
// The key ignores the employee's identity, so two employees with the same
// leave data and retirement date share one entry.
type Memo struct {
	mu      sync.Mutex
	entries map[uint64]memoEntry
	hits    int
	misses  int
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[uint64]memoEntry)}
}

// Key hashes the fields that determine a schedule and its classification,
// including the classifier cutoffs, so one memo can serve pipelines with
// different thresholds.
func Key(t classifier.Thresholds, record *models.EmployeeRecord, estimate *models.RetirementEstimate) uint64 {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("|")
	}
	float := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	write(float(t.UrgentGapYears))
	write(float(t.MediumGapYears))
	write(strconv.Itoa(t.UnusedMediumMonths))
	write(strconv.Itoa(t.UnusedUrgentMonths))
	write(float(t.ScoreHorizonYears))
	write(strconv.Itoa(t.ScorePerUnusedMonth))
	write(strconv.Itoa(t.NoLeaveScore))
	write(strconv.Itoa(t.NoRetirementScore))

	write(strconv.Itoa(record.MonthsUsed))
	write(strconv.Itoa(record.MonthsRemaining))
	if record.LeaveStart != nil {
		write(string(record.LeaveStart.Kind))
		write(record.LeaveStart.Start.ISO())
		write(record.LeaveStart.End.ISO())
	} else {
		write("-")
	}
	if estimate.HasDate() {
		write(estimate.EstimatedDate.ISO())
	} else {
		write("-")
	}
	return d.Sum64()
}

func (m *Memo) get(key uint64) (memoEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return e, ok
}

func (m *Memo) put(key uint64, e memoEntry) {
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}

// Stats returns the cache hit and miss counts.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// clone copies the entry so callers never share segments or dates.
func (e memoEntry) clone() memoEntry {
	e.schedule.Segments = slices.Clone(e.schedule.Segments)
	e.assessment.RetirementDate = cloneDate(e.assessment.RetirementDate)
	e.assessment.LeaveEnd = cloneDate(e.assessment.LeaveEnd)
	return e
}

func cloneDate(d *models.Date) *models.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
