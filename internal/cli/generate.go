package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/pipeline"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	model     string
	output    string
	noCache   bool
	refresh   bool
	skipCheck bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <response-file|->",
		Short: "Write the architecture document for a model response",
		Long: `Generate extracts the Mermaid diagram from a saved language model response and writes
the architecture document. The diagram is checked for subgraph cycles; findings are logged
as warnings and never change the document.`,
		Example: `  archdiagram generate answer.md --model gpt-4o -o docs/architecture.md
  pbpaste | archdiagram generate - --model gpt-4o`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "name of the model that produced the response (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", io.Stdin, `output file ("-" for stdout)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if the document is cached")
	cmd.Flags().BoolVar(&opts.skipCheck, "skip-check", false, "skip the subgraph cycle check")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input string, opts generateOpts) error {
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	response, err := io.ReadResponse(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		ModelName:     opts.model,
		Response:      response,
		SkipDetection: opts.skipCheck,
		Refresh:       opts.refresh,
	})
	if err != nil {
		return err
	}

	if err := io.WriteDocument(opts.output, result.Document, cmd.OutOrStdout()); err != nil {
		return err
	}
	prog.done("Generated document", "run", result.RunID.String(), "cached", result.CacheHit)

	if opts.output == io.Stdin {
		return nil
	}
	printSuccess("Architecture document written")
	printFile(opts.output)
	printStats(result.Stats.DocumentSize, result.CacheHit)
	printLink("View", result.ViewLink)
	printLink("Edit", result.EditLink)
	return nil
}
