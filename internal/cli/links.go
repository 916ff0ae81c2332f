package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/links"
	"github.com/matzehuels/archdiagram/pkg/mermaid"
)

// linksCommand creates the links command.
func (c *CLI) linksCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "links <response-file|-> | links --decode <link-or-payload>",
		Short: "Print or decode Mermaid Live Editor links",
		Long: `Links prints the Mermaid Live Editor view and edit links for the diagram of a response.
With --decode it reverses a link (or its pako payload) and prints the diagram source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				state, err := links.Decode(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), state.Code)
				return nil
			}

			response, err := io.ReadResponse(args[0])
			if err != nil {
				return err
			}
			block, err := mermaid.ExtractBlock(cmd.Context(), response, nil)
			if err != nil {
				return err
			}

			gen := links.New(block.Body, c.linkOptions())
			view, err := gen.ViewLink()
			if err != nil {
				return err
			}
			edit, err := gen.EditLink()
			if err != nil {
				return err
			}
			printLink("View", view)
			printLink("Edit", edit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "decode a link or pako payload instead of encoding")
	return cmd
}
