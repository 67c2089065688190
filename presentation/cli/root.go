package cli

import (
	"context"

	"calcd/domain/app"
	"calcd/infrastructure/logging"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           app.Name,
		Short:         "Arithmetic quiz server over UDP, TCP and WebSocket",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logging.Configure(opts.logLevel, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file (default /etc/calcd/calcd.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default from configuration)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newConfigCmd(opts),
		newProbeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
