// Package compare turns an ordered list of text blocks into pairwise line diffs.
//
// Lines are compared by position: line j of one block is compared with line j of the other.
// Nothing is realigned after an insertion, so a line added near the top shows every following
// line as removed and added.
package compare

import (
	"strings"
	"unicode"
)

// Kind classifies one line of a diff
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// MarshalText encodes k by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Line is one classified line of a pairwise comparison
type Line struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Pair holds the positions of the two blocks being compared
type Pair struct {
	A, B int
}

// Result is one complete pairwise comparison.
//
// Positions is the number of line positions walked, which is the line count of the longer
// block. Lines can be longer than Positions because a changed position yields both a removed
// and an added line.
type Result struct {
	Pair      Pair
	Positions int
	Lines     []Line
}

// Set is the ordered output of Compare, one Result per compared pair
type Set []Result

// Stats counts lines by kind
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Stats returns the per-kind line counts of r
func (r Result) Stats() Stats {
	var s Stats
	for _, l := range r.Lines {
		switch l.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// Equal reports whether every line of r is unchanged
func (r Result) Equal() bool {
	for _, l := range r.Lines {
		if l.Kind != Unchanged {
			return false
		}
	}
	return true
}

// SplitLines splits s on "\n". Carriage returns are kept and a trailing newline yields a
// trailing empty line.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}

// Diff compares x and y line by line at fixed positions.
//
// Equal lines (including two empty ones) yield an Unchanged line. Otherwise the line from x is
// emitted as Removed and the line from y as Added, each only when non-empty.
func Diff(x, y string) []Line {
	xs, ys := SplitLines(x), SplitLines(y)
	n := max(len(xs), len(ys))

	lines := make([]Line, 0, n)
	for j := 0; j < n; j++ {
		var lx, ly string
		if j < len(xs) {
			lx = xs[j]
		}
		if j < len(ys) {
			ly = ys[j]
		}

		if lx == ly {
			lines = append(lines, Line{Unchanged, lx})
			continue
		}
		if lx != "" {
			lines = append(lines, Line{Removed, lx})
		}
		if ly != "" {
			lines = append(lines, Line{Added, ly})
		}
	}
	return lines
}

// Blank reports whether s has no content other than whitespace. Whitespace is the Unicode
// White_Space set plus the byte order mark U+FEFF, minus NEL U+0085.
func Blank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// ComparePair compares the two blocks selected by p. It returns false when either block is
// blank or p is out of range.
func ComparePair(blocks []string, p Pair) (Result, bool) {
	if p.A < 0 || p.B < 0 || p.A >= len(blocks) || p.B >= len(blocks) {
		return Result{}, false
	}
	x, y := blocks[p.A], blocks[p.B]
	if Blank(x) || Blank(y) {
		return Result{}, false
	}
	return Result{
		Pair:      p,
		Positions: max(len(SplitLines(x)), len(SplitLines(y))),
		Lines:     Diff(x, y),
	}, true
}

// Compare compares blocks pairwise in the order chosen by policy.
//
// Pairs where either block is blank are left out without a placeholder, so the position of a
// Result in the Set says nothing about its pair; use Result.Pair.
func Compare(blocks []string, policy Policy) Set {
	if len(blocks) < 2 {
		return Set{}
	}
	set := Set{}
	for _, p := range policy.Pairs(len(blocks)) {
		if r, ok := ComparePair(blocks, p); ok {
			set = append(set, r)
		}
	}
	return set
}
