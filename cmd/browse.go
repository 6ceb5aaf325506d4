package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/keymap"
	"github.com/grovetools/rallylog/pkg/rallylog"
	"github.com/spf13/cobra"
)

const previewWidth = 60

func newBrowseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse log entries interactively",
		Long: `Open a two-pane view of the log: a filterable list of rounds on the left and
the selected entry on the right.

Keys: up/down to move, / to filter, pgup/pgdown to scroll the entry,
? for help, q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}
}

func runBrowse(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	log, err := opts.load()
	if err != nil {
		if handled, rerr := rallylog.Report(out, err); handled || rerr != nil {
			return rerr
		}
		return err
	}

	if !isTerminal(out) || !isTerminal(os.Stdin) {
		return errors.New("browse needs an interactive terminal; use 'rallylog show' instead")
	}

	m := newBrowseModel(log.Path, log.Entries(), opts.renderOptions(out))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out)).Run()
	return err
}

// entryItem is one row of the round list.
type entryItem struct {
	pos   int
	entry rallylog.Entry
}

func (i entryItem) Title() string {
	return fmt.Sprintf("Round %s: [%s]", i.entry.Round, i.entry.Who)
}

func (i entryItem) Description() string {
	return preview(i.entry)
}

func (i entryItem) FilterValue() string {
	return strings.Join([]string{i.entry.Round, i.entry.Who, i.entry.Prompt, i.entry.Output}, " ")
}

// preview returns the first non-blank line of the output, falling back to
// the prompt.
func preview(e rallylog.Entry) string {
	for _, text := range []string{e.Output, e.Prompt} {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			runes := []rune(line)
			if len(runes) > previewWidth {
				return string(runes[:previewWidth-3]) + "..."
			}
			return line
		}
	}
	return "(empty)"
}

// browseKeyMap adds the entry pane keys to the standard navigation keys.
type browseKeyMap struct {
	keymap.Base
	Filter     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
}

var browseKeys = browseKeyMap{
	Base: keymap.NewBase(),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll entry up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll entry down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// ShortHelp returns a short help text for display in the status line
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Base.Quit}
}

// FullHelp returns the full help keybindings
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Base.Up, k.Base.Down, k.Filter},
		{k.ScrollUp, k.ScrollDown},
		{k.Help, k.Base.Quit},
	}
}

type browseModel struct {
	path     string
	list     list.Model
	viewport viewport.Model
	help     help.Model
	render   rallylog.RenderOptions
	width    int
	height   int
	ready    bool
}

func newBrowseModel(path string, entries []rallylog.Entry, render rallylog.RenderOptions) *browseModel {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{pos: i, entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = path
	l.Styles.Title = headerStyle
	l.SetShowHelp(false)
	l.SetStatusBarItemName("entry", "entries")

	return &browseModel{
		path:   path,
		list:   l,
		help:   help.New(),
		render: render,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Let the filter input have every other key while it is open.
		if m.list.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, browseKeys.Base.Quit):
				return m, tea.Quit
			case key.Matches(msg, browseKeys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, browseKeys.ScrollUp), key.Matches(msg, browseKeys.ScrollDown):
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		listWidth := msg.Width * 2 / 5
		detailsWidth := msg.Width - listWidth
		bodyHeight := msg.Height - 2

		m.list.SetSize(listWidth, bodyHeight)
		// Border and padding take four columns and two rows.
		if !m.ready {
			m.viewport = viewport.New(detailsWidth-4, bodyHeight-2)
			m.ready = true
		} else {
			m.viewport.Width = detailsWidth - 4
			m.viewport.Height = bodyHeight - 2
		}
		m.help.Width = msg.Width
		m.syncDetails()
		return m, nil
	}

	prev := m.selectedPos()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	// Filtering can change the selected entry while the index stays put.
	if m.selectedPos() != prev {
		m.syncDetails()
		m.viewport.GotoTop()
	}
	return m, cmd
}

// selectedPos is the log position of the selected entry, or -1.
func (m *browseModel) selectedPos() int {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return -1
	}
	return item.pos
}

// syncDetails shows the selected entry in the viewport.
func (m *browseModel) syncDetails() {
	if !m.ready {
		return
	}
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		m.viewport.SetContent(faintStyle.Render("No entries."))
		return
	}
	m.viewport.SetContent(strings.TrimPrefix(rallylog.FormatEntry(item.entry, m.render), "\n"))
}

func (m *browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.help.ShowAll {
		return m.help.View(browseKeys)
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		detailsStyle.Render(m.viewport.View()),
	)
	return body + "\n" + faintStyle.Render(m.help.View(browseKeys))
}
