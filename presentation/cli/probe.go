package cli

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"calcd/domain/arith"
	"calcd/infrastructure/quiz/probe"
	"calcd/presentation/runners/client"

	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	var mode string
	var timeout time.Duration

	modes := make([]string, 0, len(probe.Modes()))
	for _, m := range probe.Modes() {
		modes = append(modes, string(m))
	}

	cmd := &cobra.Command{
		Use:   "probe <host:port>",
		Short: "Run one quiz conversation against a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := netip.ParseAddrPort(args[0])
			if err != nil {
				return fmt.Errorf("invalid server address %q: %w", args[0], err)
			}
			probeMode, err := probe.ParseMode(mode)
			if err != nil {
				return err
			}
			prober := probe.NewProber(arith.NewGenerator(0), timeout)
			return client.NewRunner(prober, probeMode, addr, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(probe.UDPBinary), "Conversation: "+strings.Join(modes, ", "))
	cmd.Flags().DurationVar(&timeout, "timeout", probe.DefaultTimeout, "Time allowed for the whole conversation")

	return cmd
}
