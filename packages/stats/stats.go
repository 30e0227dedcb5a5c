// Package stats aggregates hook dispatch outcomes and latencies per hook kind.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Latencies are recorded in microseconds, from 1us up to 10 minutes.
	minLatencyUs = 1
	maxLatencyUs = 600_000_000
	sigFigs      = 3
)

// Status values accepted by Record.
const (
	Passed  = "passed"
	Skipped = "skipped"
	Failed  = "failed"
	Fatal   = "fatal"
)

// Recorder collects per-kind statistics. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	kinds map[string]*kindMetrics
}

type kindMetrics struct {
	hooks     int64
	passed    int64
	skipped   int64
	failed    int64
	fatal     int64
	attempts  int64
	histogram *hdrhistogram.Histogram
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{kinds: make(map[string]*kindMetrics)}
}

// Record adds one dispatched hook of kind with the given status, number of
// attempts and total duration.
func (r *Recorder) Record(kind, status string, attempts int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	km, ok := r.kinds[kind]
	if !ok {
		km = &kindMetrics{histogram: hdrhistogram.New(minLatencyUs, maxLatencyUs, sigFigs)}
		r.kinds[kind] = km
	}

	km.hooks++
	km.attempts += int64(attempts)
	switch status {
	case Passed:
		km.passed++
	case Skipped:
		km.skipped++
	case Failed:
		km.failed++
	case Fatal:
		km.fatal++
	}

	// Skipped hooks never ran; keep them out of the latency distribution.
	if status == Skipped {
		return
	}
	_ = km.histogram.RecordValue(clampLatency(duration))
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = make(map[string]*kindMetrics)
}

// Summary holds the statistics of one hook kind.
type Summary struct {
	Kind     string        `json:"kind"`
	Hooks    int64         `json:"hooks"`
	Passed   int64         `json:"passed"`
	Skipped  int64         `json:"skipped"`
	Failed   int64         `json:"failed"`
	Fatal    int64         `json:"fatal"`
	Attempts int64         `json:"attempts"`
	Min      time.Duration `json:"min"`
	Max      time.Duration `json:"max"`
	Mean     time.Duration `json:"mean"`
	P50      time.Duration `json:"p50"`
	P95      time.Duration `json:"p95"`
	P99      time.Duration `json:"p99"`
}

// Summaries returns one Summary per recorded kind, sorted by kind name.
func (r *Recorder) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]Summary, 0, len(r.kinds))
	for kind, km := range r.kinds {
		h := km.histogram
		summaries = append(summaries, Summary{
			Kind:     kind,
			Hooks:    km.hooks,
			Passed:   km.passed,
			Skipped:  km.skipped,
			Failed:   km.failed,
			Fatal:    km.fatal,
			Attempts: km.attempts,
			Min:      usToDuration(h.Min()),
			Max:      usToDuration(h.Max()),
			Mean:     usToDuration(int64(h.Mean())),
			P50:      usToDuration(h.ValueAtQuantile(50)),
			P95:      usToDuration(h.ValueAtQuantile(95)),
			P99:      usToDuration(h.ValueAtQuantile(99)),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Kind < summaries[j].Kind
	})
	return summaries
}

func clampLatency(d time.Duration) int64 {
	us := d.Microseconds()
	if us < minLatencyUs {
		us = minLatencyUs
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}
	return us
}

func usToDuration(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
