package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/guest"
	"go.uber.org/zap"
)

type roundTripOptions struct {
	root     *RootOptions
	file     string
	samples  bool
	maxPages uint32
}

// RoundTripResult is the outcome of one fixture.
type RoundTripResult struct {
	Err     error
	Fixture Fixture
	Diff    string
}

// OK reports whether the fixture came back unchanged.
func (r RoundTripResult) OK() bool { return r.Err == nil && r.Diff == "" }

// NewRoundTripCommand creates the roundtrip command.
func NewRoundTripCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &roundTripOptions{root: rootOpts}

	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Encode fixtures into guest memory and decode them back",
		Long: `Encode every fixture into a WebAssembly guest memory, decode it, compare
the copy with the original and release it. Fails when a copy differs or
when allocations are left behind.

Without -f the built-in fixtures are used; --samples generates one
message of each type instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := opts.load()
			if err != nil {
				return err
			}
			return runRoundTrip(cmd.Context(), cmd.OutOrStdout(), opts, fixtures)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "fixture file (YAML)")
	cmd.Flags().BoolVar(&opts.samples, "samples", false, "round-trip generated samples")
	cmd.Flags().Uint32Var(&opts.maxPages, "max-pages", 256, "guest memory limit in 64KiB pages")
	return cmd
}

func (o *roundTripOptions) load() ([]Fixture, error) {
	switch {
	case o.samples:
		return sampleFixtures(), nil
	case o.file != "":
		f, err := os.Open(o.file)
		if err != nil {
			return nil, errors.Load("open fixtures", err)
		}
		defer f.Close()
		return LoadFixtures(f)
	default:
		return loadDefaultFixtures()
	}
}

func runRoundTrip(ctx context.Context, w io.Writer, opts *roundTripOptions, fixtures []Fixture) error {
	g, err := guest.New(ctx, guest.Config{MaxPages: opts.maxPages, Logger: opts.root.Logger})
	if err != nil {
		return err
	}
	defer g.Close(ctx)

	results := RoundTrip(g, fixtures)
	failed := 0
	for _, r := range results {
		label := fmt.Sprintf("%s (%s)", r.Fixture.Name, r.Fixture.Type)
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", label, r.Err)
		case r.Diff != "":
			failed++
			fmt.Fprintf(w, "FAIL  %s: copy differs (-want +got):\n%s", label, r.Diff)
		default:
			fmt.Fprintf(w, "ok    %s\n", label)
		}
	}

	stats := g.Allocator().Stats()
	fmt.Fprintf(w, "\n%d fixtures, %d failed, %d allocations, %d live\n",
		len(results), failed, stats.Allocs, stats.LiveBlocks)

	if failed > 0 {
		return errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Detail("%d of %d fixtures failed", failed, len(results)).
			Build()
	}
	if stats.LiveBlocks > 0 {
		opts.root.Logger.Warn("leaked allocations", zap.Any("blocks", g.Allocator().Live()))
		return errors.New(errors.PhaseFree, errors.KindAllocation).
			Detail("%d allocations (%d bytes) still live", stats.LiveBlocks, stats.LiveBytes).
			Build()
	}
	return nil
}

// RoundTrip runs every fixture through g's memory.
func RoundTrip(g *guest.Guest, fixtures []Fixture) []RoundTripResult {
	out := make([]RoundTripResult, 0, len(fixtures))
	for _, f := range fixtures {
		r := RoundTripResult{Fixture: f}
		mt, ok := messageTypes[f.Type]
		if !ok {
			r.Err = errors.Load(fmt.Sprintf("unknown message type %q", f.Type), nil)
		} else {
			r.Diff, r.Err = mt.check(f.Value, g.Memory(), g.Allocator())
		}
		out = append(out, r)
	}
	return out
}
