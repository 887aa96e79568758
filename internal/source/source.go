// Package source loads text blocks from files, stdin or git revisions.
//
// A block spec is one of:
//
//	-            standard input
//	path         a file on disk
//	rev:path     path as of a git revision, e.g. HEAD~1:main.go
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kateleext/linecompare/internal/git"
)

// Stdin is the spec that reads standard input
const Stdin = "-"

// ErrNotRepo is returned for a rev:path spec loaded outside a git work tree
var ErrNotRepo = errors.New("not a git repository")

// Kind of a parsed spec
type Kind int

const (
	File Kind = iota
	Input
	Revision
)

// Spec is a parsed block spec
type Spec struct {
	Kind Kind
	Raw  string
	Path string
	Rev  string
}

// Parse classifies raw. A "rev:path" is only treated as a revision when no file named raw
// exists, so file names containing colons keep working.
func Parse(raw string) Spec {
	if raw == Stdin {
		return Spec{Kind: Input, Raw: raw}
	}
	if _, err := os.Stat(raw); err == nil {
		return Spec{Kind: File, Raw: raw, Path: raw}
	}
	if rev, path, ok := strings.Cut(raw, ":"); ok && rev != "" && path != "" && !isDrive(rev) {
		return Spec{Kind: Revision, Raw: raw, Path: path, Rev: rev}
	}
	return Spec{Kind: File, Raw: raw, Path: raw}
}

// isDrive catches Windows paths like C:\notes.txt
func isDrive(rev string) bool {
	return len(rev) == 1 && filepath.VolumeName(rev+":") != ""
}

// Name is the title shown for the block
func (s Spec) Name() string {
	switch s.Kind {
	case Input:
		return "stdin"
	case Revision:
		return s.Rev + ":" + filepath.Base(s.Path)
	default:
		return filepath.Base(s.Path)
	}
}

// Watchable reports whether the block can be reloaded when its file changes
func (s Spec) Watchable() bool {
	return s.Kind == File
}

// Loader reads block contents
type Loader struct {
	Dir   string    // working directory for git revisions
	Stdin io.Reader // defaults to os.Stdin

	stdinUsed bool
}

// Load reads the content of spec. Standard input can only be read once.
func (l *Loader) Load(ctx context.Context, spec Spec) (string, error) {
	switch spec.Kind {
	case Input:
		if l.stdinUsed {
			return "", errors.New("standard input can only be used once")
		}
		l.stdinUsed = true
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case Revision:
		dir := l.Dir
		if dir == "" {
			dir = "."
		}
		if !git.IsRepo(ctx, dir) {
			return "", fmt.Errorf("load %s: %w", spec.Raw, ErrNotRepo)
		}
		content, err := git.Show(ctx, dir, spec.Rev, spec.Path)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", spec.Raw, err)
		}
		return content, nil
	default:
		b, err := os.ReadFile(spec.Path)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", spec.Raw, err)
		}
		return string(b), nil
	}
}

// LoadAll loads every spec in order
func (l *Loader) LoadAll(ctx context.Context, specs []Spec) ([]string, error) {
	contents := make([]string, len(specs))
	for i, s := range specs {
		c, err := l.Load(ctx, s)
		if err != nil {
			return nil, err
		}
		contents[i] = c
	}
	return contents, nil
}
