package mermaid

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FencedBlock describes one fenced code block in a markdown document.
type FencedBlock struct {
	// Lang is the first word of the info string, empty when absent.
	Lang string
	// Lines is the number of content lines between the fences.
	Lines int
	// Content is the text between the fences.
	Content string
}

// IsDiagram reports whether the block is tagged as a Mermaid diagram.
func (b FencedBlock) IsDiagram() bool {
	return b.Lang == Language
}

// Inventory parses response as markdown and lists every fenced code block in
// document order.
func Inventory(response string) ([]FencedBlock, error) {
	source := []byte(response)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []FencedBlock
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}

		blocks = append(blocks, FencedBlock{
			Lang:    string(fenced.Language(source)),
			Lines:   lines.Len(),
			Content: content.String(),
		})
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return blocks, nil
}
