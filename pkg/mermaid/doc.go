// Package mermaid extracts Mermaid diagrams from language model responses and
// checks their nesting structure.
//
// # Extraction
//
// [ExtractBlock] finds the fenced block tagged "mermaid" in a free-form
// response. The match is greedy: it runs from the first "```mermaid" to the
// last "```" that follows it, so prose before or after the block is dropped
// while anything between the fences is kept verbatim. A response without a
// block yields an error with code [errors.ErrCodeNoDiagram]; this is the only
// fatal condition in the package.
//
// # Cycle detection
//
// [Detector] walks the diagram body line by line and keeps a stack of the
// subgraphs that are currently open. A subgraph or node whose name is already
// on that stack is nested inside itself; the first such name is reported as
// [CycleResult.Node]:
//
//	subgraph API
//	    subgraph API      <- cycle at "API"
//	    end
//	end
//
// Names may be reused once their subgraph is closed. An "end" without an open
// subgraph is ignored.
//
// [Reporter] wraps the detector for callers that only want the diagnostic
// side effects: it logs the offending node, records an event on an
// [observability.Sink], and never returns an error.
//
// # Inventory
//
// [Inventory] parses a response as markdown and lists all fenced code blocks.
// It is a debugging aid and does not influence extraction.
//
// [errors.ErrCodeNoDiagram]: github.com/matzehuels/archdiagram/pkg/errors.ErrCodeNoDiagram
// [observability.Sink]: github.com/matzehuels/archdiagram/pkg/observability.Sink
package mermaid
