package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/observability"
	"github.com/matzehuels/archdiagram/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes document generation and cycle checks over HTTP:

  POST /v1/documents   {"model": "...", "response": "..."}
  POST /v1/check       {"response": "..."}
  GET  /v1/events
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			events := observability.NewRecorder()
			runner.Sink = observability.MultiSink{runner.Sink, events}

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(runner, logger, server.WithAddr(addr), server.WithEvents(events))

			printInfo("Listening on %s", srv.Addr())
			host := srv.Addr()
			if strings.HasPrefix(host, ":") {
				host = "localhost" + host
			}
			printNextStep("Health check", "curl http://"+host+"/healthz")
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")
	return cmd
}
