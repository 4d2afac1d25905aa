package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/guest"
	"gopkg.in/yaml.v3"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse codecs and their layouts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newBrowseModel(cmd.Context(), rootOpts), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type browseModel struct {
	ctx      context.Context
	err      error
	root     *RootOptions
	g        *guest.Guest
	result   string
	codecs   []codec.Any
	visible  []codec.Any
	filter   textinput.Model
	selected int
}

type guestStartedMsg struct {
	err error
	g   *guest.Guest
}

type sampleResultMsg struct {
	err    error
	result string
}

func newBrowseModel(ctx context.Context, root *RootOptions) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 30

	all := codec.All()
	return &browseModel{
		ctx:     ctx,
		root:    root,
		codecs:  all,
		visible: all,
		filter:  ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.startGuest
}

func (m *browseModel) startGuest() tea.Msg {
	g, err := guest.New(m.ctx, guest.Config{Logger: m.root.Logger})
	return guestStartedMsg{g: g, err: err}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.g != nil {
				m.g.Close(m.ctx)
			}
			return m, tea.Quit

		case "/":
			m.filter.Focus()
			return m, textinput.Blink

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.result, m.err = "", nil
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.result, m.err = "", nil
			}

		case "enter":
			return m, m.runSample
		}

	case guestStartedMsg:
		m.g, m.err = msg.g, msg.err

	case sampleResultMsg:
		m.result, m.err = msg.result, msg.err
	}
	return m, nil
}

func (m *browseModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0:0]
	for _, c := range m.codecs {
		if strings.Contains(strings.ToLower(c.Name()), q) {
			m.visible = append(m.visible, c)
		}
	}
	m.selected = min(m.selected, max(len(m.visible)-1, 0))
}

func (m *browseModel) current() codec.Any {
	if len(m.visible) == 0 {
		return nil
	}
	return m.visible[m.selected]
}

func (m *browseModel) runSample() tea.Msg {
	c := m.current()
	if c == nil {
		return nil
	}
	mt, ok := messageTypes[c.Name()]
	if !ok {
		return sampleResultMsg{result: "no sample for " + c.Name()}
	}
	if m.g == nil {
		return sampleResultMsg{err: fmt.Errorf("guest not started")}
	}

	v := mt.sample()
	diff, err := mt.check(v, m.g.Memory(), m.g.Allocator())
	if err != nil {
		return sampleResultMsg{err: err}
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return sampleResultMsg{err: err}
	}
	stats := m.g.Allocator().Stats()
	status := fmt.Sprintf("round trip ok, %d live allocations", stats.LiveBlocks)
	if diff != "" {
		status = "copy differs (-want +got):\n" + diff
	}
	return sampleResultMsg{result: string(out) + "\n" + status}
}

func (m *browseModel) View() string {
	var list strings.Builder
	list.WriteString(m.filter.View())
	list.WriteString("\n\n")
	for i, c := range m.visible {
		if i == m.selected {
			list.WriteString(selectedStyle.Render("> " + c.Name()))
		} else {
			list.WriteString("  " + nameStyle.Render(c.Name()))
		}
		list.WriteString("\n")
	}

	var detail strings.Builder
	if c := m.current(); c != nil {
		if l := c.Layout(); l != nil {
			writeLayout(&detail, l)
		} else {
			detail.WriteString(c.Name() + " has no record of its own\n")
		}
	}
	if m.result != "" {
		detail.WriteString("\n")
		detail.WriteString(resultStyle.Render(m.result))
	}
	if m.err != nil {
		detail.WriteString("\n")
		detail.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(list.String()),
		paneStyle.Render(detail.String()))

	return layoutTitleStyle.Render("hermes ABI") + "\n\n" + body + "\n" +
		helpStyle.Render("↑/↓ select • / filter • enter sample round trip • q quit")
}
