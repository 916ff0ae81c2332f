// Package pkg provides the libraries behind archdiagram.
//
// # Overview
//
// archdiagram turns the answer of a language model into an architecture
// document. The answer is expected to contain one Mermaid diagram; everything
// else in it is noise. The pkg directory is organized into four areas:
//
//  1. [mermaid] - Domain logic (block extraction, subgraph cycle detection)
//  2. [links], [document] - Output (Mermaid Live Editor links, markdown)
//  3. [cache], [config], [io], [observability] - Infrastructure
//  4. [pipeline], [server] - Orchestration and the HTTP API
//
// # Architecture
//
// The data flow of one run:
//
//	Model response
//	      ↓
//	[mermaid] ExtractBlock (fails only when there is no diagram)
//	      ↓
//	[mermaid] Reporter (cycle diagnostics, never fatal)
//	      ↓
//	[links] view and edit URLs
//	      ↓
//	[document] Diagram
//	      ↓
//	Architecture document
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ModelName: "gpt-4o",
//	    Response:  response,
//	})
//
// [mermaid]: github.com/matzehuels/archdiagram/pkg/mermaid
// [links]: github.com/matzehuels/archdiagram/pkg/links
// [document]: github.com/matzehuels/archdiagram/pkg/document
// [cache]: github.com/matzehuels/archdiagram/pkg/cache
// [config]: github.com/matzehuels/archdiagram/pkg/config
// [io]: github.com/matzehuels/archdiagram/pkg/io
// [observability]: github.com/matzehuels/archdiagram/pkg/observability
// [pipeline]: github.com/matzehuels/archdiagram/pkg/pipeline
// [server]: github.com/matzehuels/archdiagram/pkg/server
package pkg
