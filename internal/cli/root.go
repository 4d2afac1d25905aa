package cli

import (
	"github.com/spf13/cobra"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/guest"
	"github.com/wippyai/hermes-abi/heap"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Logger  *zap.Logger
	Verbose bool
}

// NewRootCommand creates the root command of the hermes-abi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "hermes-abi",
		Short: "Inspect and exercise the hermes dialogue ABI",
		Long: `Inspect the flat records dialogue messages use at the foreign boundary
and check that every message survives a round trip through guest memory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			opts.Logger = l
			codec.SetLogger(l)
			heap.SetLogger(l)
			guest.SetLogger(l)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log allocator and guest activity to stderr")

	cmd.AddCommand(NewLayoutCommand(opts))
	cmd.AddCommand(NewRoundTripCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))

	return cmd
}
