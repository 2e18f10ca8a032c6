package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	gatewayhttp "github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http"
)

func newServeCmd(root *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis gateway HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(root)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			logger, err := logging.NewLogger(logging.LogConfig{
				Level:       cfg.Log.Level,
				Format:      cfg.Log.Format,
				OutputPaths: []string{cfg.Log.OutputPath},
			})
			if err != nil {
				return err
			}

			server, cleanup, err := gatewayhttp.Assemble(cmd.Context(), cfg, Version, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logger.Info("received signal, shutting down", logging.String("signal", sig.String()))
				return server.Stop(context.Background())
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}
