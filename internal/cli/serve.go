package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/semanticshop/storefront/internal/app"
)

func newServeCommand(rt *runtime) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront BFF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.config()
			if port != "" {
				cfg.Server.Port = port
			}

			application, err := app.InitializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close(context.Background()) }()

			server := app.NewServer(application.Engine, cfg.Server.Port, cfg.Server.RequestTimeout)
			return server.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
