package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const ansiReset = "\x1b[0m"

// DefaultTheme is used when no style name is configured
const DefaultTheme = "dracula"

// Highlighter colors single lines of source code for the terminal
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New picks a lexer from filename, or from sample when the name gives nothing away.
// It returns nil when neither identifies a language; a nil Highlighter leaves lines untouched.
func New(filename, sample, theme string) *Highlighter {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && sample != "" {
		lexer = lexers.Analyse(sample)
	}
	if lexer == nil || lexer == lexers.Fallback {
		return nil
	}
	if theme == "" {
		theme = DefaultTheme
	}
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(theme),
		formatter: formatters.Get("terminal256"),
	}
}

// Line highlights one line. Lines are tokenised on their own, so constructs spanning several
// lines (block comments, raw strings) are only partly colored.
func (h *Highlighter) Line(line string) string {
	if h == nil || line == "" {
		return line
	}
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return line
	}
	// Lexers with EnsureNL append a newline the input never had.
	out := strings.ReplaceAll(buf.String(), "\n", "")
	if !strings.HasSuffix(out, ansiReset) {
		out += ansiReset
	}
	return out
}
