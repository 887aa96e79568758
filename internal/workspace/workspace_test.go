package workspace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kateleext/linecompare/internal/compare"
)

func labels(cs []Comparison) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Label)
	}
	return out
}

func TestNewPadsToMinBlocks(t *testing.T) {
	w := New(compare.BaseVsRest, nil)
	want := []Block{{ID: 0}, {ID: 1}}
	if diff := cmp.Diff(want, w.Blocks()); diff != "" {
		t.Errorf("Blocks() result is different [-want,+got]:\n%s", diff)
	}
	if got := w.Comparisons(); len(got) != 0 {
		t.Errorf("Comparisons() = %v, want none for empty blocks", got)
	}
}

func TestRecomputeOnEveryMutation(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a\nb", "a\nc"})
	if diff := cmp.Diff([]string{"Comparing Text #1 with Text #2"}, labels(w.Comparisons())); diff != "" {
		t.Fatalf("labels after New are different [-want,+got]:\n%s", diff)
	}

	b := w.Add("x\ny")
	if b.ID != 2 {
		t.Fatalf("Add() id = %d, want 2", b.ID)
	}
	want := []string{
		"Comparing Text #1 with Text #2",
		"Comparing Text #1 with Text #3",
	}
	if diff := cmp.Diff(want, labels(w.Comparisons())); diff != "" {
		t.Errorf("labels after Add are different [-want,+got]:\n%s", diff)
	}

	w.SetPolicy(compare.Consecutive)
	want = []string{
		"Comparing Text #1 with Text #2",
		"Comparing Text #2 with Text #3",
	}
	if diff := cmp.Diff(want, labels(w.Comparisons())); diff != "" {
		t.Errorf("labels after SetPolicy are different [-want,+got]:\n%s", diff)
	}

	if err := w.Update(1, " "); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got := w.Comparisons(); len(got) != 0 {
		t.Errorf("Comparisons() = %v, want none once the middle block is blank", labels(got))
	}

	if err := w.Remove(1); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	want = []string{"Comparing Text #1 with Text #3"}
	if diff := cmp.Diff(want, labels(w.Comparisons())); diff != "" {
		t.Errorf("labels after Remove are different [-want,+got]:\n%s", diff)
	}
}

func TestAddAfterRemoveUsesMaxID(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a", "b", "c"})
	if err := w.Remove(1); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if b := w.Add(""); b.ID != 3 {
		t.Errorf("Add() id = %d, want 3", b.ID)
	}
}

func TestRemoveKeepsMinBlocks(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a", "b"})
	if err := w.Remove(0); !errors.Is(err, ErrMinBlocks) {
		t.Errorf("Remove() error = %v, want ErrMinBlocks", err)
	}
	if err := w.Remove(7); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("Remove(7) error = %v, want ErrUnknownBlock", err)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
}

func TestComparePair(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a\nb\nc", "", "a\nx\nc"})

	c, err := w.ComparePair(2, 0)
	if err != nil {
		t.Fatalf("ComparePair(2, 0) failed: %v", err)
	}
	if c.Label != "Comparing Text #3 with Text #1" {
		t.Errorf("Label = %q", c.Label)
	}
	want := []compare.Line{
		{Kind: compare.Unchanged, Value: "a"},
		{Kind: compare.Removed, Value: "x"},
		{Kind: compare.Added, Value: "b"},
		{Kind: compare.Unchanged, Value: "c"},
	}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Errorf("Lines are different [-want,+got]:\n%s", diff)
	}

	for _, test := range []struct {
		a, b int
		want error
	}{
		{0, 0, ErrSamePair},
		{0, 1, ErrNothingToCompare},
		{0, 9, ErrUnknownBlock},
		{9, 0, ErrUnknownBlock},
	} {
		if _, err := w.ComparePair(test.a, test.b); !errors.Is(err, test.want) {
			t.Errorf("ComparePair(%d, %d) error = %v, want %v", test.a, test.b, err, test.want)
		}
	}
}

func TestRenameChangesLabels(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a", "b"})
	if err := w.Rename(1, "notes.txt"); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Comparing Text #1 with notes.txt"}, labels(w.Comparisons())); diff != "" {
		t.Errorf("labels are different [-want,+got]:\n%s", diff)
	}
	if err := w.Update(5, "x"); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("Update(5) error = %v, want ErrUnknownBlock", err)
	}
}

func TestComparisonsReturnsCopy(t *testing.T) {
	w := New(compare.BaseVsRest, []string{"a", "b"})
	got := w.Comparisons()
	got[0].Label = "changed"
	got[0] = Comparison{}

	if diff := cmp.Diff([]string{"Comparing Text #1 with Text #2"}, labels(w.Comparisons())); diff != "" {
		t.Errorf("Comparisons() after mutating a returned slice is different [-want,+got]:\n%s", diff)
	}
}
