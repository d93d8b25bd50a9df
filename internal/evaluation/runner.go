// Package evaluation runs a detector over reconciled corpus rows and
// accumulates accuracy tallies.
package evaluation

import (
	"context"
	"time"

	"github.com/spirit-guess/lidbench/internal/corpus"
	"github.com/spirit-guess/lidbench/internal/detectors"
	"github.com/spirit-guess/lidbench/internal/langcodes"
)

// Row is a corpus record paired with its resolved coarse gold code. Rows
// exist only for records whose tag reconciled successfully.
type Row struct {
	corpus.Record
	Gold string
}

// FilterRows pairs records with their reconciled gold codes, dropping
// records whose tag is not in the code map. The second return value is the
// skipped-row count.
func FilterRows(records []corpus.Record, codeMap langcodes.CodeMap) ([]Row, int) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		gold, ok := codeMap[rec.Tag]
		if !ok {
			continue
		}
		rows = append(rows, Row{Record: rec, Gold: gold})
	}
	return rows, len(records) - len(rows)
}

// DefaultProgressEvery is the progress-event cadence in rows.
const DefaultProgressEvery = 10000

// EventType identifies a progress event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventProgress    EventType = "progress"
	EventRunComplete EventType = "run_complete"
)

// ProgressEvent is a progress update emitted during a run. Listeners must
// not mutate shared state; events exist for console reporting only and do
// not alter evaluation semantics.
type ProgressEvent struct {
	EventType     EventType
	Processed     int
	TotalRows     int
	RowsPerSec    float64
	AccuracySoFar float64
	DurationMs    int64
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Runner drives a sequential, single-threaded evaluation pass.
type Runner struct {
	detector      detectors.Detector
	listeners     []ProgressListener
	progressEvery int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithProgressEvery overrides the progress-event cadence.
func WithProgressEvery(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.progressEvery = n
		}
	}
}

func NewRunner(d detectors.Detector, opts ...RunnerOption) *Runner {
	r := &Runner{
		detector:      d,
		progressEvery: DefaultProgressEvery,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener.
func (r *Runner) OnProgress(listener ProgressListener) {
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notify(event ProgressEvent) {
	for _, listener := range r.listeners {
		listener(event)
	}
}

// Run evaluates every row in order. Per-row detector failures are absorbed
// by DetectSafe and scored as incorrect; the only error Run itself returns
// is context cancellation, in which case accumulated tallies are discarded
// by the caller.
func (r *Runner) Run(ctx context.Context, rows []Row) (*Aggregator, time.Duration, error) {
	agg := NewAggregator()
	start := time.Now()

	r.notify(ProgressEvent{EventType: EventRunStart, TotalRows: len(rows)})

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, time.Since(start), err
		}

		pred := detectors.DetectSafe(r.detector, row.Text)
		agg.Observe(row, pred)

		if (i+1)%r.progressEvery == 0 {
			elapsed := time.Since(start)
			r.notify(ProgressEvent{
				EventType:     EventProgress,
				Processed:     i + 1,
				TotalRows:     len(rows),
				RowsPerSec:    float64(i+1) / elapsed.Seconds(),
				AccuracySoFar: agg.Accuracy(),
				DurationMs:    elapsed.Milliseconds(),
			})
		}
	}

	elapsed := time.Since(start)
	r.notify(ProgressEvent{
		EventType:  EventRunComplete,
		Processed:  len(rows),
		TotalRows:  len(rows),
		DurationMs: elapsed.Milliseconds(),
	})
	return agg, elapsed, nil
}
