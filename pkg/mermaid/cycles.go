package mermaid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

const (
	subgraphKeyword = "subgraph"
	endKeyword      = "end"
	labelDelimiter  = "["
)

// LineKind classifies a trimmed line of a diagram body.
type LineKind int

const (
	// LineNodeOrEdge is any line that is neither a subgraph opener nor a closer.
	// Blank lines fall in this kind and are inert.
	LineNodeOrEdge LineKind = iota
	// LineSubgraphOpen declares a named container.
	LineSubgraphOpen
	// LineBlockClose closes the innermost open container.
	LineBlockClose
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineSubgraphOpen:
		return "subgraph"
	case LineBlockClose:
		return "end"
	default:
		return "node"
	}
}

// ClassifyLine trims line and reports its kind.
// Keywords are matched as prefixes, so "endpoint" is a closer.
func ClassifyLine(line string) LineKind {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, subgraphKeyword):
		return LineSubgraphOpen
	case strings.HasPrefix(line, endKeyword):
		return LineBlockClose
	default:
		return LineNodeOrEdge
	}
}

// CycleResult is the outcome of a cycle check.
// The zero value means no cycle was found.
type CycleResult struct {
	// Found is true when a name appeared as its own open ancestor.
	Found bool
	// Node is the offending subgraph or node name when Found is true.
	Node string
}

// NoCycle returns the result for a well-nested diagram.
func NoCycle() CycleResult { return CycleResult{} }

// CycleAt returns the result for a cycle at the given name.
func CycleAt(name string) CycleResult { return CycleResult{Found: true, Node: name} }

// String describes the result.
func (r CycleResult) String() string {
	if !r.Found {
		return "no cycle"
	}
	return fmt.Sprintf("cycle at %q", r.Node)
}

// CycleMessage is the diagnostic logged for a cycle at node.
func CycleMessage(node string) string {
	return "Cycle detected in the diagram at node: " + node
}

// Detector checks diagram bodies for self-nesting.
// The zero value has no limits. A Detector holds no state between calls and
// may be shared by goroutines.
type Detector struct {
	// MaxDepth caps the number of simultaneously open subgraphs. Zero means unlimited.
	MaxDepth int
	// MaxLineLength caps the length in bytes of a raw line. Zero means unlimited.
	MaxLineLength int
}

// Detect runs a single pass over body and returns the first name found to be
// its own ancestor.
//
// Subgraph names are the text between "subgraph" and the first "[", trimmed.
// Node identifiers are the text before the first "[", not trimmed, so
// "X [label]" is the identifier "X ". Comparison is exact and case-sensitive.
// An unmatched "end" is ignored.
//
// Detect returns an error with code errors.ErrCodeDetectionFailed when a limit
// is exceeded or the scan fails unexpectedly. Callers that only need the
// diagnostic should use [Reporter].
func (d Detector) Detect(body string) (result CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = NoCycle()
			err = errors.New(errors.ErrCodeDetectionFailed, "cycle detection aborted: %v", r)
		}
	}()

	var (
		stack []string
		open  = make(map[string]struct{})
	)

	for i, raw := range strings.Split(body, "\n") {
		if d.MaxLineLength > 0 && len(raw) > d.MaxLineLength {
			return NoCycle(), errors.New(errors.ErrCodeDetectionFailed,
				"line %d is %d bytes long (max %d)", i+1, len(raw), d.MaxLineLength)
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch ClassifyLine(line) {
		case LineSubgraphOpen:
			name := strings.TrimSpace(beforeLabel(line[len(subgraphKeyword):]))
			if _, ok := open[name]; ok {
				return CycleAt(name), nil
			}
			if d.MaxDepth > 0 && len(stack) >= d.MaxDepth {
				return NoCycle(), errors.New(errors.ErrCodeDetectionFailed,
					"line %d: subgraph nesting exceeds depth %d", i+1, d.MaxDepth)
			}
			stack = append(stack, name)
			open[name] = struct{}{}

		case LineBlockClose:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			delete(open, top)

		default:
			node := beforeLabel(line)
			if _, ok := open[node]; ok {
				return CycleAt(node), nil
			}
		}
	}

	return NoCycle(), nil
}

// DetectCycle checks body with an unlimited [Detector].
func DetectCycle(body string) CycleResult {
	result, err := Detector{}.Detect(body)
	if err != nil {
		return NoCycle()
	}
	return result
}

// beforeLabel returns s up to the first label delimiter.
func beforeLabel(s string) string {
	if i := strings.Index(s, labelDelimiter); i >= 0 {
		return s[:i]
	}
	return s
}
