package mermaid

import (
	"context"
	"regexp"

	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/observability"
)

// Language is the info-string tag that marks a diagram block.
const Language = "mermaid"

var (
	// blockPattern spans from the first opening fence to the last closing
	// fence in the response.
	blockPattern = regexp.MustCompile("```" + Language + "[\\s\\S]*```")

	// fencePattern matches both the tagged opening fence and bare fences.
	fencePattern = regexp.MustCompile("```" + Language + "|```")
)

// Block is a fenced diagram block found in a response.
type Block struct {
	// Raw is the matched text including the fences.
	Raw string
	// Body is Raw with every fence marker removed.
	Body string
}

// ExtractBlock returns the diagram block contained in response.
//
// If the response holds anything besides the block, [observability.EventExtraPayloadDetected]
// is recorded on sink exactly once; the returned block is unaffected. A nil
// sink discards events.
//
// When no block exists ExtractBlock returns an *errors.Error with code
// errors.ErrCodeNoDiagram whose message asks the user to try again.
func ExtractBlock(ctx context.Context, response string, sink observability.Sink) (Block, error) {
	loc := blockPattern.FindStringIndex(response)
	if loc == nil {
		return Block{}, errors.NoDiagram()
	}

	raw := response[loc[0]:loc[1]]
	if raw != response && sink != nil {
		sink.Record(ctx, observability.EventExtraPayloadDetected)
	}

	return Block{Raw: raw, Body: StripFences(raw)}, nil
}

// StripFences removes every "```mermaid" and "```" marker from s.
func StripFences(s string) string {
	return fencePattern.ReplaceAllString(s, "")
}
