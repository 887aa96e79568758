package render

import (
	"strings"
	"unicode/utf8"

	"github.com/kateleext/linecompare/internal/compare"
	"github.com/mattn/go-runewidth"
)

const ansiReset = "\033[0m"

// VisualLine represents one physical line in the output
type VisualLine struct {
	LogicalIndex int    // index into the comparison's lines
	SegmentIndex int    // 0 = first segment, 1+ = continuations
	Gutter       string // "+ ", "- ", "· ", or "  " for continuations
	Text         string // ANSI-highlighted content slice
	Kind         compare.Kind
}

const gutterWidth = 4 // "  · " or "  + " etc

// Gutter returns the marker printed before the first segment of a line
func Gutter(k compare.Kind) string {
	switch k {
	case compare.Added:
		return "+ "
	case compare.Removed:
		return "- "
	default:
		return "· "
	}
}

// InjectBackground replaces all ANSI resets with reset+background to maintain bg color
func InjectBackground(s string, bgCode string) string {
	if bgCode == "" {
		return s
	}
	return bgCode + strings.ReplaceAll(s, ansiReset, ansiReset+bgCode)
}

// countLeadingSpaces returns the indent width of s, counting a tab as 4
func countLeadingSpaces(s string) int {
	count := 0
	for _, r := range s {
		if r == ' ' {
			count++
		} else if r == '\t' {
			count += 4
		} else {
			break
		}
	}
	return count
}

// runeVisualWidth returns the visual width of a rune, handling tabs specially
func runeVisualWidth(r rune) int {
	if r == '\t' {
		return 4 // treat tab as 4 spaces for consistency
	}
	return runewidth.RuneWidth(r)
}

// VisibleWidth returns visual column width, ignoring ANSI sequences
func VisibleWidth(s string) int {
	width := 0
	i := 0
	for i < len(s) {
		if isANSIStart(s, i) {
			i = skipANSI(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runeVisualWidth(r)
		i += size
	}
	return width
}

func isANSIStart(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	return s[i] == 0x1b && s[i+1] == '['
}

func skipANSI(s string, i int) int {
	if !isANSIStart(s, i) {
		return i + 1
	}
	j := i + 2
	for j < len(s) {
		b := s[j]
		if b >= 0x40 && b <= 0x7E {
			return j + 1
		}
		j++
	}
	return j
}

// sliceANSIAware slices a string to fit within maxWidth visible columns. The slice holds at
// least one rune, even when that rune alone is wider than maxWidth.
// It returns the slice, the rest, and the ANSI codes still active at the cut.
func sliceANSIAware(s string, maxWidth int) (content string, remainder string, activeANSI string) {
	if maxWidth <= 0 {
		return "", s, ""
	}

	var result strings.Builder
	var currentANSI strings.Builder
	width := 0
	i := 0
	cutPoint := -1

	for i < len(s) && width < maxWidth {
		if isANSIStart(s, i) {
			start := i
			i = skipANSI(s, i)
			ansi := s[start:i]
			result.WriteString(ansi)
			if ansi == ansiReset {
				currentANSI.Reset()
			} else {
				currentANSI.WriteString(ansi)
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runeVisualWidth(r)

		// A rune wider than the whole slice still goes in, or the caller never advances.
		if width+rw > maxWidth && width > 0 {
			cutPoint = i
			break
		}

		result.WriteString(s[i : i+size])
		width += rw
		i += size
	}

	if cutPoint == -1 {
		cutPoint = i
	}

	content = result.String()
	if currentANSI.Len() > 0 {
		content += ansiReset
		activeANSI = currentANSI.String()
	}

	if cutPoint < len(s) {
		remainder = s[cutPoint:]
	}

	return content, remainder, activeANSI
}

// wrapLine splits one (possibly highlighted) line into VisualLine segments.
// Continuation lines keep the leading whitespace of raw as a hanging indent.
func wrapLine(line string, logicalIndex int, maxWidth int, kind compare.Kind, raw string) []VisualLine {
	if maxWidth <= gutterWidth {
		maxWidth = gutterWidth + 10
	}
	contentWidth := maxWidth - gutterWidth

	hangingIndent := countLeadingSpaces(raw)
	// Cap at half the content width
	if maxIndent := contentWidth / 2; hangingIndent > maxIndent {
		hangingIndent = maxIndent
	}
	hangingIndentStr := strings.Repeat(" ", hangingIndent)

	var result []VisualLine
	remaining := line
	segmentIndex := 0
	activeANSI := ""

	for {
		if activeANSI != "" && segmentIndex > 0 {
			remaining = activeANSI + remaining
		}

		availWidth := contentWidth
		if segmentIndex > 0 && hangingIndent > 0 {
			availWidth = max(contentWidth-hangingIndent, 10)
		}

		content, rest, newActiveANSI := sliceANSIAware(remaining, availWidth)

		gutter := "  "
		text := content
		if segmentIndex == 0 {
			gutter = Gutter(kind)
		} else if hangingIndent > 0 {
			text = hangingIndentStr + content
		}

		result = append(result, VisualLine{
			LogicalIndex: logicalIndex,
			SegmentIndex: segmentIndex,
			Gutter:       gutter,
			Text:         text,
			Kind:         kind,
		})

		if rest == "" {
			break
		}

		remaining = rest
		activeANSI = newActiveANSI
		segmentIndex++
	}

	return result
}

// Wrap wraps all lines of a comparison for a given width. highlighted holds the display text
// for each line and may be nil, in which case the raw values are used.
func Wrap(lines []compare.Line, highlighted []string, maxWidth int) []VisualLine {
	var result []VisualLine
	for i, l := range lines {
		text := l.Value
		if i < len(highlighted) {
			text = highlighted[i]
		}
		result = append(result, wrapLine(text, i, maxWidth, l.Kind, l.Value)...)
	}
	return result
}
