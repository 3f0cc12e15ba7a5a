package playback

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss renderers for one theme.
type Styles struct {
	Canvas lipgloss.Style
	Panel  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Graph  lipgloss.Style
	Help   lipgloss.Style
}

func newStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Primary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(42),
		Header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		Value:  lipgloss.NewStyle().Foreground(t.Text),
		Graph:  lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		Help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(2),
	}
}
