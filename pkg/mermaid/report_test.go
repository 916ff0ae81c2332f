package mermaid

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archdiagram/pkg/observability"
)

func newTestReporter(d Detector) (*Reporter, *observability.Recorder, *bytes.Buffer) {
	var buf bytes.Buffer
	rec := observability.NewRecorder()
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	return NewReporter(d, rec, logger), rec, &buf
}

func TestReporter_Cycle(t *testing.T) {
	r, rec, buf := newTestReporter(Detector{})

	r.Report(context.Background(), "subgraph X\nX[label]\nend")

	if n := rec.Count(observability.EventCycleDetected); n != 1 {
		t.Errorf("CycleDetected fired %d times, want 1", n)
	}
	if !strings.Contains(buf.String(), CycleMessage("X")) {
		t.Errorf("log output %q should contain %q", buf.String(), CycleMessage("X"))
	}
}

func TestReporter_NoCycle(t *testing.T) {
	r, rec, buf := newTestReporter(Detector{})

	r.Report(context.Background(), "subgraph A\nsubgraph B\nend\nend")

	if len(rec.Events()) != 0 {
		t.Errorf("no events expected, got %v", rec.Events())
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected, got %q", buf.String())
	}
}

func TestReporter_DetectionFailed(t *testing.T) {
	r, rec, _ := newTestReporter(Detector{MaxDepth: 1})

	r.Report(context.Background(), "subgraph A\nsubgraph B\nend\nend")

	if n := rec.Count(observability.EventDetectionFailed); n != 1 {
		t.Errorf("DetectionFailed fired %d times, want 1", n)
	}
	if n := rec.Count(observability.EventCycleDetected); n != 0 {
		t.Errorf("CycleDetected fired %d times, want 0", n)
	}
}

func TestReporter_ZeroValue(t *testing.T) {
	var r Reporter
	r.Report(context.Background(), "subgraph A\nsubgraph A\nend\nend")
}
