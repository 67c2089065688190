package cli

import (
	"context"
	"fmt"

	"calcd/domain/arith"
	serverConfiguration "calcd/infrastructure/PAL/configuration/server"
	palSignal "calcd/infrastructure/PAL/signal"
	"calcd/infrastructure/PAL/stat"
	"calcd/infrastructure/logging"
	"calcd/infrastructure/network"
	"calcd/infrastructure/quiz/workers"
	"calcd/presentation/runners/server"
	"calcd/presentation/signals/shutdown"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [host:port]",
		Short: "Run the quiz server",
		Long:  "Run the quiz server on every enabled transport. A host:port argument overrides the UDP endpoint and enables it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfiguration(opts, args)
			if err != nil {
				return err
			}
			if opts.logLevel == "" {
				if err := logging.Configure(conf.Log.Level, cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			shutdown.NewHandler(
				ctx,
				cancel,
				palSignal.NewDefaultProvider(),
				shutdown.NewOSNotifier(),
				logging.NewComponentLogger("signals"),
			).Handle()

			deps := server.NewDependencies(*conf, workers.NewHandlerFactory(*conf, arith.NewGenerator(conf.Seed)))
			return server.NewRunner(deps, logging.NewComponentLogger("server")).Run(ctx)
		},
	}
}

func loadConfiguration(opts *options, args []string) (*serverConfiguration.Configuration, error) {
	manager := serverConfiguration.NewManager(
		serverConfiguration.NewServerResolver(opts.configPath),
		viper.New(),
		stat.NewDefaultStat(),
	)
	conf, err := manager.Configuration()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return conf, nil
	}

	socket, err := network.ParseSocket(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid listen address %q: %w", args[0], err)
	}
	conf.UDPSettings.Enabled = true
	conf.UDPSettings.Host = socket.Host()
	conf.UDPSettings.Port = socket.Port()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
