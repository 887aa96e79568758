// Package render turns comparisons into terminal text and JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kateleext/linecompare/internal/compare"
	"github.com/kateleext/linecompare/internal/highlight"
	"github.com/kateleext/linecompare/internal/workspace"
)

// EmptyHint is shown when there is nothing to compare
const EmptyHint = "Enter text in multiple boxes to see the comparison"

const noWrap = 1 << 20

// Background codes for changed lines when highlighting
const (
	addedBg   = "\033[48;5;22m"
	removedBg = "\033[48;5;52m"
)

// Options controls how comparisons are drawn
type Options struct {
	Width     int    // wrap width, 0 disables wrapping
	Theme     string // chroma style name
	Highlight bool   // syntax highlight lines of file-backed blocks
	Renderer  *lipgloss.Renderer
}

type palette struct {
	header    lipgloss.Style
	added     lipgloss.Style
	removed   lipgloss.Style
	unchanged lipgloss.Style
	gutter    lipgloss.Style
	hint      lipgloss.Style
}

// 109=cyan, 241=dim, 252=bright
func newPalette(r *lipgloss.Renderer) palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return palette{
		header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("109")),
		added:     r.NewStyle().Foreground(lipgloss.Color("114")),
		removed:   r.NewStyle().Foreground(lipgloss.Color("174")),
		unchanged: r.NewStyle().Foreground(lipgloss.Color("252")),
		gutter:    r.NewStyle().Foreground(lipgloss.Color("241")),
		hint:      r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// Header is the title line of a comparison: its label and the change counts
func Header(c workspace.Comparison, opts Options) string {
	p := newPalette(opts.Renderer)
	s := c.Stats()
	counts := fmt.Sprintf("+%d -%d", s.Added, s.Removed)
	if c.Equal() {
		counts = "identical"
	}
	return p.header.Render(c.Label) + " " + p.gutter.Render(counts)
}

// Lines renders the body of a comparison, one string per visual line
func Lines(c workspace.Comparison, opts Options) []string {
	p := newPalette(opts.Renderer)
	width := opts.Width
	if width <= 0 {
		width = noWrap
	}

	var highlighted []string
	if opts.Highlight {
		h := highlighterFor(c, opts.Theme)
		if h != nil {
			highlighted = make([]string, len(c.Lines))
			for i, l := range c.Lines {
				highlighted[i] = h.Line(l.Value)
			}
		}
	}

	visual := Wrap(c.Lines, highlighted, width)
	out := make([]string, len(visual))
	for i, v := range visual {
		out[i] = p.line(v, highlighted != nil)
	}
	return out
}

func (p palette) line(v VisualLine, highlighted bool) string {
	gutter := "  " + v.Gutter
	if highlighted {
		switch v.Kind {
		case compare.Added:
			return p.added.Render(gutter) + InjectBackground(v.Text, addedBg) + ansiReset
		case compare.Removed:
			return p.removed.Render(gutter) + InjectBackground(v.Text, removedBg) + ansiReset
		}
		return p.gutter.Render(gutter) + v.Text
	}
	switch v.Kind {
	case compare.Added:
		return p.added.Render(gutter + v.Text)
	case compare.Removed:
		return p.removed.Render(gutter + v.Text)
	}
	return p.gutter.Render(gutter) + p.unchanged.Render(v.Text)
}

// highlighterFor picks a lexer from the file names of the compared blocks, falling back to
// their contents for stdin and typed text
func highlighterFor(c workspace.Comparison, theme string) *highlight.Highlighter {
	for _, name := range []string{c.Left.Name, c.Right.Name} {
		if h := highlight.New(name, "", theme); h != nil {
			return h
		}
	}
	for _, content := range []string{c.Left.Content, c.Right.Content} {
		if h := highlight.New("", content, theme); h != nil {
			return h
		}
	}
	return nil
}

// Comparison renders the header and body of c
func Comparison(c workspace.Comparison, opts Options) string {
	return Header(c, opts) + "\n" + strings.Join(Lines(c, opts), "\n")
}

// Hint renders the message shown when there are no comparisons
func Hint(opts Options) string {
	return newPalette(opts.Renderer).hint.Render(EmptyHint)
}

// Text writes every comparison to w separated by blank lines
func Text(w io.Writer, cs []workspace.Comparison, opts Options) error {
	if len(cs) == 0 {
		_, err := fmt.Fprintln(w, Hint(opts))
		return err
	}
	for i, c := range cs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, Comparison(c, opts)); err != nil {
			return err
		}
	}
	return nil
}

type jsonBlock struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type jsonComparison struct {
	Label     string         `json:"label"`
	Left      jsonBlock      `json:"left"`
	Right     jsonBlock      `json:"right"`
	Pair      [2]int         `json:"pair"`
	Positions int            `json:"positions"`
	Added     int            `json:"added"`
	Removed   int            `json:"removed"`
	Lines     []compare.Line `json:"lines"`
}

// JSON writes the comparisons as an indented JSON array
func JSON(w io.Writer, cs []workspace.Comparison) error {
	out := make([]jsonComparison, len(cs))
	for i, c := range cs {
		s := c.Stats()
		lines := c.Lines
		if lines == nil {
			lines = []compare.Line{}
		}
		out[i] = jsonComparison{
			Label:     c.Label,
			Left:      jsonBlock{c.Left.ID, c.Left.Title()},
			Right:     jsonBlock{c.Right.ID, c.Right.Title()},
			Pair:      [2]int{c.Pair.A, c.Pair.B},
			Positions: c.Positions,
			Added:     s.Added,
			Removed:   s.Removed,
			Lines:     lines,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode comparisons: %w", err)
	}
	return nil
}
