package compare

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want []Line
	}{
		{
			name: "identical",
			x:    "foo\nbar",
			y:    "foo\nbar",
			want: []Line{
				{Unchanged, "foo"},
				{Unchanged, "bar"},
			},
		},
		{
			name: "changed-middle",
			x:    "a\nb\nc",
			y:    "a\nx\nc",
			want: []Line{
				{Unchanged, "a"},
				{Removed, "b"},
				{Added, "x"},
				{Unchanged, "c"},
			},
		},
		{
			name: "empty-line-suppressed",
			x:    "a\n\nc",
			y:    "a\nc",
			want: []Line{
				{Unchanged, "a"},
				{Added, "c"},
				{Removed, "c"},
			},
		},
		{
			name: "y-longer",
			x:    "a",
			y:    "a\nb\nc",
			want: []Line{
				{Unchanged, "a"},
				{Added, "b"},
				{Added, "c"},
			},
		},
		{
			name: "x-longer",
			x:    "a\nb",
			y:    "a",
			want: []Line{
				{Unchanged, "a"},
				{Removed, "b"},
			},
		},
		{
			name: "trailing-newline",
			x:    "a\n",
			y:    "a",
			want: []Line{
				{Unchanged, "a"},
				{Unchanged, ""},
			},
		},
		{
			name: "insert-shifts-everything",
			x:    "a\nb\nc",
			y:    "new\na\nb\nc",
			want: []Line{
				{Removed, "a"},
				{Added, "new"},
				{Removed, "b"},
				{Added, "a"},
				{Removed, "c"},
				{Added, "b"},
				{Added, "c"},
			},
		},
		{
			name: "crlf-not-normalized",
			x:    "a\r\nb",
			y:    "a\nb",
			want: []Line{
				{Removed, "a\r"},
				{Added, "a"},
				{Unchanged, "b"},
			},
		},
		{
			name: "both-empty",
			want: []Line{
				{Unchanged, ""},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Diff(test.x, test.y)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Diff(%q, %q) result is different [-want,+got]:\n%s", test.x, test.y, diff)
			}
		})
	}
}

func TestDiffSelf(t *testing.T) {
	for _, s := range []string{"one", "one\ntwo\n", "  indented\n\n\ttabbed"} {
		got := Diff(s, s)
		lines := SplitLines(s)
		if len(got) != len(lines) {
			t.Fatalf("Diff(%q, %q) has %d lines, want %d", s, s, len(got), len(lines))
		}
		for i, l := range got {
			if l.Kind != Unchanged || l.Value != lines[i] {
				t.Errorf("Diff(%q, %q)[%d] = %+v, want unchanged %q", s, s, i, l, lines[i])
			}
		}
	}
}

func TestComparePositions(t *testing.T) {
	pairs := [][2]string{
		{"a\nb\nc", "a\nx\nc"},
		{"a", "a\nb\nc\nd"},
		{"x\ny\n", "z"},
	}
	for _, p := range pairs {
		r, ok := ComparePair([]string{p[0], p[1]}, Pair{0, 1})
		if !ok {
			t.Fatalf("ComparePair(%q, %q) skipped", p[0], p[1])
		}
		want := max(len(SplitLines(p[0])), len(SplitLines(p[1])))
		if r.Positions != want {
			t.Errorf("ComparePair(%q, %q).Positions = %d, want %d", p[0], p[1], r.Positions, want)
		}
	}
}

func TestCompare(t *testing.T) {
	blocks := []string{"a\nb", "a\nc", "x\ny"}

	tests := []struct {
		name   string
		blocks []string
		policy Policy
		want   Set
	}{
		{
			name:   "base-vs-rest",
			blocks: blocks,
			policy: BaseVsRest,
			want: Set{
				{Pair: Pair{0, 1}, Positions: 2, Lines: []Line{{Unchanged, "a"}, {Removed, "b"}, {Added, "c"}}},
				{Pair: Pair{0, 2}, Positions: 2, Lines: []Line{{Removed, "a"}, {Added, "x"}, {Removed, "b"}, {Added, "y"}}},
			},
		},
		{
			name:   "consecutive",
			blocks: blocks,
			policy: Consecutive,
			want: Set{
				{Pair: Pair{0, 1}, Positions: 2, Lines: []Line{{Unchanged, "a"}, {Removed, "b"}, {Added, "c"}}},
				{Pair: Pair{1, 2}, Positions: 2, Lines: []Line{{Removed, "a"}, {Added, "x"}, {Removed, "c"}, {Added, "y"}}},
			},
		},
		{
			name:   "no-blocks",
			policy: BaseVsRest,
			want:   Set{},
		},
		{
			name:   "single-block",
			blocks: []string{"a"},
			policy: Consecutive,
			want:   Set{},
		},
		{
			name:   "all-blank",
			blocks: []string{"", "  ", ""},
			policy: BaseVsRest,
			want:   Set{},
		},
		{
			name:   "all-blank-consecutive",
			blocks: []string{"", "  ", ""},
			policy: Consecutive,
			want:   Set{},
		},
		{
			name:   "blank-middle-skipped",
			blocks: []string{"a", " \n\t", "a"},
			policy: Consecutive,
			want:   Set{},
		},
		{
			name:   "blank-middle-base",
			blocks: []string{"a", " \n\t", "a"},
			policy: BaseVsRest,
			want: Set{
				{Pair: Pair{0, 2}, Positions: 1, Lines: []Line{{Unchanged, "a"}}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Compare(test.blocks, test.policy)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Compare() result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestCompareDeterministic(t *testing.T) {
	blocks := []string{"one\ntwo", "one\nthree\nfour", "", "two"}
	for _, p := range Policies {
		first := Compare(blocks, p)
		second := Compare(blocks, p)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Compare(%v) not deterministic [-first,+second]:\n%s", p, diff)
		}
	}
}

func TestPolicyPairs(t *testing.T) {
	tests := []struct {
		policy Policy
		n      int
		want   []Pair
	}{
		{BaseVsRest, 0, nil},
		{BaseVsRest, 1, nil},
		{BaseVsRest, 4, []Pair{{0, 1}, {0, 2}, {0, 3}}},
		{Consecutive, 1, nil},
		{Consecutive, 2, []Pair{{0, 1}}},
		{Consecutive, 4, []Pair{{0, 1}, {1, 2}, {2, 3}}},
	}
	for _, test := range tests {
		got := test.policy.Pairs(test.n)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%v.Pairs(%d) result is different [-want,+got]:\n%s", test.policy, test.n, diff)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{
		"base":         BaseVsRest,
		"Base-vs-Rest": BaseVsRest,
		"":             BaseVsRest,
		"consecutive":  Consecutive,
		" sequential ": Consecutive,
	} {
		got, err := ParsePolicy(in)
		if err != nil {
			t.Errorf("ParsePolicy(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParsePolicy("diagonal"); err == nil || !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("ParsePolicy(diagonal) error = %v, want unknown policy error", err)
	}

	var p Policy
	if err := p.Set("consecutive"); err != nil || p != Consecutive {
		t.Errorf("Set(consecutive) = %v, %v", p, err)
	}
	if p.Next() != BaseVsRest || BaseVsRest.Next() != Consecutive {
		t.Errorf("Next does not toggle between policies")
	}
}

func TestStats(t *testing.T) {
	r, _ := ComparePair([]string{"a\nb\nc", "a\nx\nc\nd"}, Pair{0, 1})
	want := Stats{Added: 2, Removed: 1, Unchanged: 2}
	if diff := cmp.Diff(want, r.Stats()); diff != "" {
		t.Errorf("Stats() result is different [-want,+got]:\n%s", diff)
	}
	if r.Equal() {
		t.Errorf("Equal() = true for differing blocks")
	}
	same, _ := ComparePair([]string{"a", "a"}, Pair{0, 1})
	if !same.Equal() {
		t.Errorf("Equal() = false for identical blocks")
	}
}

func TestBlank(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{" \t\n\r\v\f", true},
		{"\u00a0\u2003\u3000", true},
		{"\uFEFF", true},
		{"\uFEFF\n", true},
		{"\u0085", false},
		{" x ", false},
	}
	for _, test := range tests {
		if got := Blank(test.in); got != test.want {
			t.Errorf("Blank(%q) = %v, want %v", test.in, got, test.want)
		}
	}

	if got := Compare([]string{"\uFEFF", "a"}, BaseVsRest); len(got) != 0 {
		t.Errorf("Compare() with a BOM-only block = %d results, want 0", len(got))
	}
}
