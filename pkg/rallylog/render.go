package rallylog

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DefaultSeparatorWidth is the number of dashes printed after each entry.
const DefaultSeparatorWidth = 50

// Styles decorates the fixed labels of a rendered block. The zero value
// renders plain text.
type Styles struct {
	Header    lipgloss.Style
	Label     lipgloss.Style
	Separator lipgloss.Style
	enabled   bool
}

// NewStyles returns label styles bound to w. Colors are forced on regardless
// of what w is connected to; callers decide whether to use styles at all.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")),
		Label:     r.NewStyle().Foreground(lipgloss.Color("39")),
		Separator: r.NewStyle().Faint(true),
		enabled:   true,
	}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// RenderOptions controls block layout.
type RenderOptions struct {
	SeparatorWidth int
	Styles         Styles
}

func (o RenderOptions) separatorWidth() int {
	if o.SeparatorWidth <= 0 {
		return DefaultSeparatorWidth
	}
	return o.SeparatorWidth
}

// FormatEntry returns the text block for one entry, including the leading
// blank line and trailing separator.
func FormatEntry(e Entry, opts RenderOptions) string {
	var b strings.Builder
	s := opts.Styles

	b.WriteString("\n")
	b.WriteString(s.render(s.Header, fmt.Sprintf("=== Round %s: [%s] ===", e.Round, e.Who)))
	b.WriteString("\n")
	if e.Prompt != "" {
		b.WriteString(s.render(s.Label, "Prompt:"))
		b.WriteString("\n")
		b.WriteString(e.Prompt)
		b.WriteString("\n")
	}
	if e.Output != "" {
		b.WriteString(s.render(s.Label, "Output:"))
		b.WriteString("\n")
		b.WriteString(e.Output)
		b.WriteString("\n")
	}
	b.WriteString(s.render(s.Separator, strings.Repeat("-", opts.separatorWidth())))
	b.WriteString("\n")
	return b.String()
}

// Render writes one block per entry to w, in order.
func Render(w io.Writer, entries []Entry, opts RenderOptions) error {
	for _, e := range entries {
		if _, err := io.WriteString(w, FormatEntry(e, opts)); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	return nil
}
