package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/mermaid"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <response-file|->",
		Short: "Check the diagram of a response for subgraph cycles",
		Long: `Check extracts the Mermaid diagram from a response and reports the first node that
refers to one of its enclosing subgraphs. A cycle is a warning, not a failure: the
command only exits non-zero when the response contains no diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := io.ReadResponse(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}

			result, err := runner.Check(cmd.Context(), response)
			switch {
			case errors.Is(err, errors.ErrCodeNoDiagram):
				return err
			case err != nil:
				printWarning("Cycle detection failed: %s", errors.UserMessage(err))
			case result.Found:
				printWarning("%s", mermaid.CycleMessage(result.Node))
			default:
				printSuccess("No cycle")
			}
			return nil
		},
	}
}
