// Package document assembles the markdown files written next to a generated
// diagram: the architecture document itself and the generation log.
package document

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

// DiagramInfo holds everything that appears in an architecture document.
type DiagramInfo struct {
	// ModelName identifies the model that produced the diagram.
	ModelName string
	// ViewURL and EditURL open the diagram in Mermaid Live Editor.
	ViewURL string
	EditURL string
	// Block is the fenced diagram block, fences included.
	Block string
}

// Model describes the language model used for a generation run.
type Model struct {
	Family         string `json:"family"`
	Name           string `json:"name"`
	MaxInputTokens int    `json:"maxInputTokens"`
}

// LogInfo holds everything that appears in a generation log.
type LogInfo struct {
	SelectedFolder string
	Model          Model
	Files          []string
}

var diagramTemplate = template.Must(template.New("diagram").Parse(`## Architecture Diagram

To render this diagram (Mermaid Syntax), you can:
* Install the [Markdown Preview Mermaid Support](https://marketplace.visualstudio.com/items?itemName=bierner.markdown-mermaid) extension in VS Code, or
* Use the links below to open it in Mermaid Live Editor.

## Generated Content
**Model**: {{.ModelName}}  
**Mermaid Live Editor**: [View]({{.ViewURL}}) | [Edit]({{.EditURL}})

{{.Block}}`))

var logTemplate = template.Must(template.New("log").Parse("# Architecture Log File\n\n" +
	"## Info\n" +
	"```json\n{{.JSON}}\n```\n\n" +
	"## Files Used\n" +
	"```\ntotal {{.Count}}  \n{{.Files}}\n```"))

// Diagram renders the architecture document.
func Diagram(info DiagramInfo) (string, error) {
	if err := errors.ValidateModelName(info.ModelName); err != nil {
		return "", err
	}
	if strings.TrimSpace(info.Block) == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "diagram block cannot be empty")
	}

	var buf bytes.Buffer
	if err := diagramTemplate.Execute(&buf, info); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render diagram document")
	}
	return buf.String(), nil
}

// logMetadata is the JSON summary embedded in a log file.
type logMetadata struct {
	SelectedFolder string `json:"selectedFolder"`
	Model          Model  `json:"model"`
	NumFilesUsed   int    `json:"numFilesUsed"`
}

// Metadata returns the indented JSON summary of a run.
func Metadata(info LogInfo) ([]byte, error) {
	data, err := json.MarshalIndent(logMetadata{
		SelectedFolder: info.SelectedFolder,
		Model:          info.Model,
		NumFilesUsed:   len(info.Files),
	}, "", "    ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode log metadata")
	}
	return data, nil
}

// Log renders the generation log listing the run metadata and input files.
func Log(info LogInfo) (string, error) {
	meta, err := Metadata(info)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = logTemplate.Execute(&buf, struct {
		JSON  string
		Count int
		Files string
	}{
		JSON:  string(meta),
		Count: len(info.Files),
		Files: strings.Join(info.Files, "\n"),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render log document")
	}
	return buf.String(), nil
}
