package observability

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Event names a diagnostic signal. Events carry no payload beyond their name.
type Event string

// Diagnostic events emitted while a diagram is extracted and checked.
const (
	// EventExtraPayloadDetected fires when the model wrapped the diagram block
	// in additional prose.
	EventExtraPayloadDetected Event = "llmResponseContainedExtraPayload"

	// EventCycleDetected fires when a node or subgraph is nested inside itself.
	EventCycleDetected Event = "diagramCycleDetected"

	// EventDetectionFailed fires when the cycle check could not complete.
	EventDetectionFailed Event = "diagramCycleDetectionFailed"
)

// Events lists every diagnostic event in a stable order.
var Events = []Event{
	EventExtraPayloadDetected,
	EventCycleDetected,
	EventDetectionFailed,
}

// IsError reports whether e signals a problem with the generated diagram
// rather than a benign quirk of the model output.
func (e Event) IsError() bool {
	return e == EventCycleDetected || e == EventDetectionFailed
}

// Sink receives diagnostic events. Implementations must be safe for
// concurrent use and must not block.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event)

// Record calls f(ctx, event).
func (f SinkFunc) Record(ctx context.Context, event Event) { f(ctx, event) }

// NoopSink discards every event.
type NoopSink struct{}

// Record does nothing.
func (NoopSink) Record(context.Context, Event) {}

// LogSink writes events to a charmbracelet logger. Error events are logged
// at warn level, everything else at debug level.
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink creates a sink that logs to l, or to log.Default() when l is nil.
func NewLogSink(l *log.Logger) *LogSink {
	if l == nil {
		l = log.Default()
	}
	return &LogSink{Logger: l}
}

// Record logs the event.
func (s *LogSink) Record(_ context.Context, event Event) {
	if event.IsError() {
		s.Logger.Warn("diagnostic event", "event", string(event))
		return
	}
	s.Logger.Info("diagnostic event", "event", string(event))
}

// Recorder keeps every event it receives in memory.
// It backs the HTTP events endpoint and is convenient in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	counts map[Event]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[Event]int)}
}

// Record stores the event.
func (r *Recorder) Record(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[Event]int)
	}
	r.events = append(r.events, event)
	r.counts[event]++
}

// Count returns how many times event was recorded.
func (r *Recorder) Count(event Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[event]
}

// Counts returns a snapshot of all counts, including zero entries for
// every known event.
func (r *Recorder) Counts() map[Event]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Event]int, len(Events))
	for _, e := range Events {
		out[e] = 0
	}
	for e, n := range r.counts {
		out[e] = n
	}
	return out
}

// Events returns the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.counts = make(map[Event]int)
}

// MultiSink fans every event out to all of its sinks in order.
type MultiSink []Sink

// Record forwards the event to each non-nil sink.
func (m MultiSink) Record(ctx context.Context, event Event) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, event)
		}
	}
}

// Ensure implementations satisfy Sink.
var (
	_ Sink = NoopSink{}
	_ Sink = (*LogSink)(nil)
	_ Sink = (*Recorder)(nil)
	_ Sink = MultiSink(nil)
	_ Sink = SinkFunc(nil)
)
