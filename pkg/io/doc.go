// Package io reads model responses and writes generated documents.
//
// # Reading responses
//
// [ReadResponse] reads a saved language model response from a file, or from
// standard input when the path is "-":
//
//	response, err := io.ReadResponse("-")
//
// # Writing documents
//
// [WriteDocument] writes a document, creating missing parent directories:
//
//	err := io.WriteDocument("docs/architecture.md", doc)
//
// # Listing source files
//
// [ListFiles] walks a project folder and returns the files that a generation
// run would send to the model. The list feeds the "Files Used" section of the
// generation log. Hidden entries and common build or dependency folders are
// skipped by default.
package io
