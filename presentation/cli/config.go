package cli

import (
	"fmt"

	serverConfiguration "calcd/infrastructure/PAL/configuration/server"
	"calcd/infrastructure/PAL/stat"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := serverConfiguration.NewManager(
				serverConfiguration.NewServerResolver(opts.configPath),
				viper.New(),
				stat.NewDefaultStat(),
			)
			path, err := manager.WriteDefault(force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "default configuration written to %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
