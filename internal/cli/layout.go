package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"golang.org/x/term"
)

var (
	layoutTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	layoutHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#87CEEB")).
				Padding(0, 1)

	layoutCellStyle = lipgloss.NewStyle().Padding(0, 1)
)

type layoutOptions struct {
	root  *RootOptions
	plain bool
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &layoutOptions{root: rootOpts}

	cmd := &cobra.Command{
		Use:   "layout [type...]",
		Short: "Show the boundary record layouts",
		Long: `Show field offsets and sizes of boundary records. Without arguments
every registered record is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := selectLayouts(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if opts.plain || !isTerminal(w) {
				writeLayouts(w, layouts)
				return nil
			}
			for _, l := range layouts {
				fmt.Fprintln(w, renderLayout(l))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain text even on a terminal")
	return cmd
}

// selectLayouts resolves names to layouts. Codecs without a record of
// their own, like Text, have no layout and are skipped when listing all.
func selectLayouts(names []string) ([]*codec.Layout, error) {
	var out []*codec.Layout
	if len(names) == 0 {
		for _, c := range codec.All() {
			if l := c.Layout(); l != nil {
				out = append(out, l)
			}
		}
		return out, nil
	}
	for _, name := range names {
		c, ok := codec.Lookup(name)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unknown type %q", name))
		}
		if c.Layout() == nil {
			return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("%s has no record layout", name))
		}
		out = append(out, c.Layout())
	}
	return out, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeLayouts prints layouts as aligned plain text.
func writeLayouts(w io.Writer, layouts []*codec.Layout) {
	for i, l := range layouts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeLayout(w, l)
	}
}

func writeLayout(w io.Writer, l *codec.Layout) {
	fmt.Fprintf(w, "%s size=%d align=%d\n", l.Name, l.Size, l.Align)
	width := 0
	for _, f := range l.Fields {
		width = max(width, len(f.Name))
	}
	for _, f := range l.Fields {
		fmt.Fprintf(w, "  %-*s  %-6s %4d %4d\n", width, f.Name, f.Kind, f.Offset, f.Size)
	}
}

func renderLayout(l *codec.Layout) string {
	rows := make([][]string, 0, len(l.Fields))
	for _, f := range l.Fields {
		kind := f.Kind.String()
		if f.Record != nil {
			kind = f.Record.Name
		}
		rows = append(rows, []string{
			f.Name,
			kind,
			strconv.FormatUint(uint64(f.Offset), 10),
			strconv.FormatUint(uint64(f.Size), 10),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))).
		Headers("FIELD", "KIND", "OFFSET", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return layoutHeaderStyle
			}
			return layoutCellStyle
		})

	title := layoutTitleStyle.Render(l.Name) +
		fmt.Sprintf(" size %d, align %d", l.Size, l.Align)
	return title + "\n" + t.String()
}
