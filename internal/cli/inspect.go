package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/mermaid"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <response-file|->",
		Short: "List the fenced code blocks of a response",
		Long: `Inspect parses a response as markdown and lists every fenced code block, then shows
which span the extractor would take as the diagram and whether the response carried
anything besides it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := io.ReadResponse(args[0])
			if err != nil {
				return err
			}

			blocks, err := mermaid.Inventory(response)
			if err != nil {
				return fmt.Errorf("parse markdown: %w", err)
			}

			printInfo("%d fenced blocks", len(blocks))
			for i, b := range blocks {
				printBlock(i+1, b.Lang, b.Lines, b.IsDiagram())
			}

			block, err := mermaid.ExtractBlock(cmd.Context(), response, nil)
			if errors.Is(err, errors.ErrCodeNoDiagram) {
				printWarning("%s", errors.NoDiagramMessage)
				return nil
			}
			if err != nil {
				return err
			}

			printKeyValue("Diagram", fmt.Sprintf("%d bytes, %d body lines", len(block.Raw), countLines(block.Body)))
			if block.Raw != response {
				printKeyValue("Extra", fmt.Sprintf("%d bytes outside the diagram", len(response)-len(block.Raw)))
			}
			return nil
		},
	}
}

// countLines counts the non-blank lines of s.
func countLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
