package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/document"
	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/io"
)

// logfileOpts holds the flags of the logfile command.
type logfileOpts struct {
	model          string
	family         string
	maxInputTokens int
	output         string
	maxFiles       int
	hidden         bool
}

// logfileCommand creates the logfile command.
func (c *CLI) logfileCommand() *cobra.Command {
	var opts logfileOpts

	cmd := &cobra.Command{
		Use:   "logfile <folder>",
		Short: "Write the generation log for a project folder",
		Long: `Logfile lists the files of a project folder that would be sent to the model and writes
the generation log: the run metadata as JSON followed by the list of files used.`,
		Example: `  archdiagram logfile . --model gpt-4o --family gpt-4o --max-input-tokens 128000 -o architecture.log.md`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := args[0]
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			if err := errors.ValidateModelName(opts.model); err != nil {
				return err
			}
			if opts.maxInputTokens < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--max-input-tokens must not be negative")
			}

			files, err := io.ListFiles(folder, io.ListOptions{
				IncludeHidden: opts.hidden,
				MaxFiles:      opts.maxFiles,
			})
			if err != nil {
				return err
			}
			logger.Debug("listed files", "folder", folder, "count", len(files))

			selected := folder
			if abs, err := filepath.Abs(folder); err == nil {
				selected = abs
			}
			family := opts.family
			if family == "" {
				family = opts.model
			}

			content, err := document.Log(document.LogInfo{
				SelectedFolder: selected,
				Model: document.Model{
					Family:         family,
					Name:           opts.model,
					MaxInputTokens: opts.maxInputTokens,
				},
				Files: files,
			})
			if err != nil {
				return err
			}

			if err := io.WriteDocument(opts.output, content, cmd.OutOrStdout()); err != nil {
				return err
			}
			prog.done("Wrote log file", "files", len(files))

			if opts.output != io.Stdin {
				printSuccess("Log file written")
				printFile(opts.output)
				printDetail("%d files listed", len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model name (required)")
	cmd.Flags().StringVar(&opts.family, "family", "", "model family (defaults to the model name)")
	cmd.Flags().IntVar(&opts.maxInputTokens, "max-input-tokens", 0, "model context window in tokens")
	cmd.Flags().StringVarP(&opts.output, "output", "o", io.Stdin, `output file ("-" for stdout)`)
	cmd.Flags().IntVar(&opts.maxFiles, "max-files", 0, "stop after this many files (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "include hidden files and folders")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
