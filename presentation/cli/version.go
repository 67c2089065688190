package cli

import (
	"calcd/presentation/runners/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return version.NewRunner(cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}
