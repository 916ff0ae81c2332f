// Package pipeline turns a language model response into an architecture
// document.
//
// This package implements the extract → check → link → assemble pipeline used
// by both the CLI and the HTTP API. By centralizing this logic, both entry
// points log, cache and emit diagnostics the same way.
//
// # Stages
//
//  1. Extract: find the Mermaid block in the response. This is the only stage
//     that can fail the run.
//  2. Check: run cycle detection on the block body. Findings are logged and
//     recorded on the event sink but never change the output.
//  3. Link: encode the body into Mermaid Live Editor view and edit links.
//  4. Assemble: render the markdown document.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Sink = observability.NewLogSink(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ModelName: "gpt-4o",
//	    Response:  response,
//	})
//	if err != nil {
//	    log.Fatal(errors.UserMessage(err))
//	}
//	fmt.Print(result.Document)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/mermaid"
)

// Options contains the inputs of one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	ModelName string `json:"model"`
	Response  string `json:"response"`

	// SkipDetection disables the cycle check.
	SkipDetection bool `json:"skip_detection,omitempty"`
	// Refresh bypasses the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID uuid.UUID

	// Block is the extracted diagram.
	Block mermaid.Block

	// ViewLink and EditLink open the diagram in Mermaid Live Editor.
	ViewLink string
	EditLink string

	// Document is the assembled markdown document.
	Document string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the document came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResponseSize int
	DocumentSize int
	ExtractTime  time.Duration
	CheckTime    time.Duration
	DocumentTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateModelName(o.ModelName); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
