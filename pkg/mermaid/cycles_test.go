package mermaid

import (
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

var cycleCases = []struct {
	name string
	body string
	want CycleResult
}{
	{"balanced and distinct", "subgraph A\nsubgraph B\nend\nend", NoCycle()},
	{"direct self-nesting", "subgraph A\nsubgraph A\nend\nend", CycleAt("A")},
	{"node inside own ancestor", "subgraph X\nX[label]\nend", CycleAt("X")},
	{"sibling reuse", "subgraph A\nend\nsubgraph A\nend", NoCycle()},
	{"unmatched closer", "end\nsubgraph A\nend", NoCycle()},
	{"transitive self-nesting", "subgraph A\nsubgraph B\nsubgraph A\nend\nend\nend", CycleAt("A")},
	{"node in grandparent", "subgraph A\nsubgraph B\nA\nend\nend", CycleAt("A")},
	{"label stripped from subgraph", "subgraph A [Frontend]\nsubgraph A[Again]\nend\nend", CycleAt("A")},
	{"case sensitive", "subgraph api\nsubgraph API\nend\nend", NoCycle()},
	{"node identifier not retrimmed", "subgraph X\nX [label]\nend", NoCycle()},
	{"node after scope closed", "subgraph X\nend\nX[label]", NoCycle()},
	{"edge line", "subgraph A\nB-->C\nend", NoCycle()},
	{"first cycle wins", "subgraph A\nsubgraph B\nB\nA\nend\nend", CycleAt("B")},
	{"empty body", "", NoCycle()},
	{"indented", "  subgraph A\n\tsubgraph A\n  end\nend", CycleAt("A")},
	{"crlf lines", "subgraph A\r\nsubgraph A\r\nend\r\nend", CycleAt("A")},
	{"endpoint counts as closer", "subgraph A\nendpoint\nA", NoCycle()},
	{"graph header", "graph TD\nsubgraph A\nA1-->A2\nend", NoCycle()},
}

func TestDetectCycle(t *testing.T) {
	for _, tt := range cycleCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCycle(tt.body); got != tt.want {
				t.Errorf("DetectCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCycle_BlankLinesAreInert(t *testing.T) {
	for _, tt := range cycleCases {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(tt.body, "\n")
			padded := "\n  \n" + strings.Join(lines, "\n\n\t\n") + "\n\n"
			if got := DetectCycle(padded); got != tt.want {
				t.Errorf("DetectCycle(with blank lines) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCycle_Idempotent(t *testing.T) {
	for _, tt := range cycleCases {
		first := DetectCycle(tt.body)
		second := DetectCycle(tt.body)
		if first != second {
			t.Errorf("%s: results differ between runs: %v vs %v", tt.name, first, second)
		}
	}
}

func TestDetector_MaxDepth(t *testing.T) {
	body := "subgraph A\nsubgraph B\nsubgraph C\nend\nend\nend"

	if _, err := (Detector{MaxDepth: 3}).Detect(body); err != nil {
		t.Errorf("depth 3 within limit should pass: %v", err)
	}

	_, err := Detector{MaxDepth: 2}.Detect(body)
	if !errors.Is(err, errors.ErrCodeDetectionFailed) {
		t.Errorf("Detect() error = %v, want %s", err, errors.ErrCodeDetectionFailed)
	}
}

func TestDetector_CycleBeforeDepthLimit(t *testing.T) {
	got, err := Detector{MaxDepth: 1}.Detect("subgraph A\nsubgraph A\nend\nend")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if got != CycleAt("A") {
		t.Errorf("Detect() = %v, want cycle at A", got)
	}
}

func TestDetector_MaxLineLength(t *testing.T) {
	body := "subgraph A\n" + strings.Repeat("x", 100) + "\nend"

	_, err := Detector{MaxLineLength: 50}.Detect(body)
	if !errors.Is(err, errors.ErrCodeDetectionFailed) {
		t.Errorf("Detect() error = %v, want %s", err, errors.ErrCodeDetectionFailed)
	}

	if _, err := (Detector{MaxLineLength: 100}).Detect(body); err != nil {
		t.Errorf("line at limit should pass: %v", err)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"subgraph A", LineSubgraphOpen},
		{"   subgraph A[Label]", LineSubgraphOpen},
		{"end", LineBlockClose},
		{"  end  ", LineBlockClose},
		{"A-->B", LineNodeOrEdge},
		{"", LineNodeOrEdge},
		{"Subgraph A", LineNodeOrEdge},
	}
	for _, tt := range tests {
		if got := ClassifyLine(tt.line); got != tt.want {
			t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestCycleResultString(t *testing.T) {
	if s := NoCycle().String(); s != "no cycle" {
		t.Errorf("NoCycle().String() = %q", s)
	}
	if s := CycleAt("A").String(); s != `cycle at "A"` {
		t.Errorf("CycleAt(A).String() = %q", s)
	}
}
