package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewSnapshot captures the immutable state needed to render a frame
type ViewSnapshot struct {
	Width    int
	Policy   string
	Editors  []EditorPreview
	Hidden   int    // boxes not shown for lack of width
	Heading  string // title of the results pane
	Position string // "2/3", or "custom"
	Results  string // rendered viewport
	Status   string
	Help     string
	Debug    string
}

// EditorPreview is the subset of a text box needed for rendering
type EditorPreview struct {
	Number  int // 1-based position, used to pick custom pairs
	Title   string
	View    string
	Focused bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("109"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	brightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241"))
	focusedStyle = boxStyle.BorderForeground(lipgloss.Color("109"))
)

// renderFrame draws a whole screen from a snapshot
func renderFrame(s ViewSnapshot) string {
	var b strings.Builder

	header := titleStyle.Render("Text Compare") + dimStyle.Render("  pairing: "+s.Policy)
	if s.Hidden > 0 {
		header += dimStyle.Render(fmt.Sprintf("  (+%d boxes off screen)", s.Hidden))
	}
	b.WriteString(header)
	b.WriteString("\n")

	boxes := make([]string, len(s.Editors))
	for i, e := range s.Editors {
		style := boxStyle
		title := dimStyle.Render(fmt.Sprintf("%d ", e.Number)) + brightStyle.Render(e.Title)
		if e.Focused {
			style = focusedStyle
			title = dimStyle.Render(fmt.Sprintf("%d ", e.Number)) + titleStyle.Render(e.Title)
		}
		boxes[i] = lipgloss.JoinVertical(lipgloss.Left, title, style.Render(e.View))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	heading := s.Heading
	if s.Position != "" {
		heading += dimStyle.Render("  [" + s.Position + "]")
	}
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(s.Results)
	b.WriteString("\n")

	if s.Status != "" {
		b.WriteString(statusStyle.Render(s.Status))
		b.WriteString("\n")
	}
	b.WriteString(s.Help)
	if s.Debug != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(s.Debug))
	}
	return b.String()
}

// visibleRange picks which of n boxes fit on screen, keeping focus in view
func visibleRange(n, focus, fit int) (start, end int) {
	if fit <= 0 {
		fit = 1
	}
	if n <= fit {
		return 0, n
	}
	start = focus - fit/2
	start = max(0, min(start, n-fit))
	return start, start + fit
}
