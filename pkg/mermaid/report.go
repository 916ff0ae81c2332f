package mermaid

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archdiagram/pkg/observability"
)

// Reporter runs cycle detection purely for its side effects.
//
// Detection is a quality signal and must never break document generation, so
// Report swallows every failure and returns nothing.
type Reporter struct {
	Detector Detector
	Sink     observability.Sink
	Logger   *log.Logger
}

// NewReporter creates a reporter. A nil sink discards events and a nil
// logger discards output.
func NewReporter(d Detector, sink observability.Sink, logger *log.Logger) *Reporter {
	if sink == nil {
		sink = observability.NoopSink{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Reporter{Detector: d, Sink: sink, Logger: logger}
}

// Report checks body and emits diagnostics:
//   - a cycle is logged with [CycleMessage] and recorded as EventCycleDetected
//   - a detection error is recorded as EventDetectionFailed
//   - a well-nested body produces nothing
func (r *Reporter) Report(ctx context.Context, body string) {
	sink := r.Sink
	if sink == nil {
		sink = observability.NoopSink{}
	}

	result, err := r.Detector.Detect(body)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Debug("cycle detection failed", "err", err)
		}
		sink.Record(ctx, observability.EventDetectionFailed)
		return
	}
	if !result.Found {
		return
	}

	if r.Logger != nil {
		r.Logger.Warn(CycleMessage(result.Node))
	}
	sink.Record(ctx, observability.EventCycleDetected)
}
