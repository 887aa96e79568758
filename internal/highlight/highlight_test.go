package highlight

import (
	"strings"
	"testing"
)

func TestNewPicksLexerByName(t *testing.T) {
	h := New("main.go", "", "")
	if h == nil {
		t.Fatal("New(main.go) = nil, want a Go highlighter")
	}

	got := h.Line(`func main() {}`)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Line() = %q, want ANSI escapes", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("Line() = %q contains a newline", got)
	}
}

func TestNewAnalysesSample(t *testing.T) {
	if h := New("", "#!/bin/bash\necho hi\n", "monokai"); h == nil {
		t.Errorf("New() with a bash script sample = nil, want a highlighter")
	}
	if h := New("", "", ""); h != nil {
		t.Errorf("New() with no name and no sample = %v, want nil", h)
	}
	if h := New("notes.unknownext", "", ""); h != nil {
		t.Errorf("New() for an unknown extension = %v, want nil", h)
	}
}

func TestNilHighlighterPassesThrough(t *testing.T) {
	var h *Highlighter
	if got := h.Line("plain words"); got != "plain words" {
		t.Errorf("Line() = %q, want input unchanged", got)
	}
}
