package document

import (
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

const block = "```mermaid\ngraph TD\nA-->B\n```"

func TestDiagram(t *testing.T) {
	doc, err := Diagram(DiagramInfo{
		ModelName: "gpt-4o",
		ViewURL:   "https://mermaid.live/view#pako:abc",
		EditURL:   "https://mermaid.live/edit#pako:abc",
		Block:     block,
	})
	if err != nil {
		t.Fatalf("Diagram() error: %v", err)
	}

	for _, want := range []string{
		"## Architecture Diagram",
		"## Generated Content",
		"**Model**: gpt-4o  \n",
		"**Mermaid Live Editor**: [View](https://mermaid.live/view#pako:abc) | [Edit](https://mermaid.live/edit#pako:abc)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if !strings.HasSuffix(doc, "\n\n"+block) {
		t.Errorf("document should end with the block, got %q", doc[len(doc)-60:])
	}
}

func TestDiagramDoesNotEscape(t *testing.T) {
	doc, err := Diagram(DiagramInfo{ModelName: "a<b>&c", Block: "```mermaid\nA-->B & C\n```"})
	if err != nil {
		t.Fatalf("Diagram() error: %v", err)
	}
	if !strings.Contains(doc, "a<b>&c") || !strings.Contains(doc, "A-->B & C") {
		t.Error("markdown output must not be HTML-escaped")
	}
}

func TestDiagramValidation(t *testing.T) {
	tests := []struct {
		name string
		info DiagramInfo
	}{
		{"empty model", DiagramInfo{Block: block}},
		{"newline in model", DiagramInfo{ModelName: "a\nb", Block: block}},
		{"empty block", DiagramInfo{ModelName: "gpt-4o", Block: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Diagram(tt.info)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Diagram() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestLog(t *testing.T) {
	info := LogInfo{
		SelectedFolder: "/work/project",
		Model:          Model{Family: "gpt-4o", Name: "GPT 4o", MaxInputTokens: 64000},
		Files:          []string{"/work/project/main.go", "/work/project/go.mod"},
	}

	got, err := Log(info)
	if err != nil {
		t.Fatalf("Log() error: %v", err)
	}

	want := "# Architecture Log File\n\n" +
		"## Info\n" +
		"```json\n" +
		"{\n" +
		"    \"selectedFolder\": \"/work/project\",\n" +
		"    \"model\": {\n" +
		"        \"family\": \"gpt-4o\",\n" +
		"        \"name\": \"GPT 4o\",\n" +
		"        \"maxInputTokens\": 64000\n" +
		"    },\n" +
		"    \"numFilesUsed\": 2\n" +
		"}\n" +
		"```\n\n" +
		"## Files Used\n" +
		"```\n" +
		"total 2  \n" +
		"/work/project/main.go\n/work/project/go.mod\n" +
		"```"
	if got != want {
		t.Errorf("Log() =\n%s\nwant:\n%s", got, want)
	}
}

func TestLogNoFiles(t *testing.T) {
	got, err := Log(LogInfo{SelectedFolder: "."})
	if err != nil {
		t.Fatalf("Log() error: %v", err)
	}
	if !strings.Contains(got, "\"numFilesUsed\": 0") || !strings.Contains(got, "total 0  \n") {
		t.Errorf("Log() with no files = %q", got)
	}
}
