// Package workspace holds the text blocks being compared and the comparisons derived from them.
//
// Every mutation recomputes the full comparison set; nothing is updated incrementally. A
// Workspace is not safe for concurrent use; the UI owns it from its update loop.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kateleext/linecompare/internal/compare"
)

// MinBlocks is the number of blocks a workspace never drops below
const MinBlocks = 2

var (
	ErrUnknownBlock     = errors.New("unknown block")
	ErrMinBlocks        = fmt.Errorf("a workspace needs at least %d blocks", MinBlocks)
	ErrSamePair         = errors.New("cannot compare a block with itself")
	ErrNothingToCompare = errors.New("both blocks need content to compare")
)

// Block is one text box
type Block struct {
	ID      int
	Name    string // file name for file-backed blocks, empty otherwise
	Content string
}

// Title is what the UI shows above the block
func (b Block) Title() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("Text #%d", b.ID+1)
}

// Comparison is a compare.Result with the blocks it came from
type Comparison struct {
	compare.Result
	Left  Block
	Right Block
	Label string
}

// Label describes a comparison between a and b
func Label(a, b Block) string {
	return fmt.Sprintf("Comparing %s with %s", a.Title(), b.Title())
}

// Workspace is the state container for the blocks and their comparisons
type Workspace struct {
	blocks      []Block
	policy      compare.Policy
	comparisons []Comparison
	logger      *slog.Logger
}

// Option configures a Workspace
type Option func(*Workspace)

// WithLogger sets the logger used for mutations
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = l
	}
}

// New creates a workspace holding contents, padded with empty blocks up to MinBlocks
func New(policy compare.Policy, contents []string, opts ...Option) *Workspace {
	w := &Workspace{
		policy: policy,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	for i, c := range contents {
		w.blocks = append(w.blocks, Block{ID: i, Content: c})
	}
	for len(w.blocks) < MinBlocks {
		w.blocks = append(w.blocks, Block{ID: len(w.blocks)})
	}
	w.recompute()
	return w
}

// Blocks returns a copy of the blocks in display order
func (w *Workspace) Blocks() []Block {
	return append([]Block(nil), w.blocks...)
}

// Len returns the number of blocks
func (w *Workspace) Len() int {
	return len(w.blocks)
}

// Block returns the block with the given id
func (w *Workspace) Block(id int) (Block, error) {
	i := w.index(id)
	if i < 0 {
		return Block{}, fmt.Errorf("block %d: %w", id, ErrUnknownBlock)
	}
	return w.blocks[i], nil
}

// Policy returns the pairing policy in use
func (w *Workspace) Policy() compare.Policy {
	return w.policy
}

// SetPolicy switches the pairing policy
func (w *Workspace) SetPolicy(p compare.Policy) {
	w.policy = p
	w.logger.Debug("policy changed", "policy", p)
	w.recompute()
}

// Add appends a block and returns it. Its id is one more than the highest id in use.
func (w *Workspace) Add(content string) Block {
	id := 0
	for _, b := range w.blocks {
		id = max(id, b.ID+1)
	}
	b := Block{ID: id, Content: content}
	w.blocks = append(w.blocks, b)
	w.logger.Debug("block added", "id", id)
	w.recompute()
	return b
}

// Update replaces the content of a block
func (w *Workspace) Update(id int, content string) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("update block %d: %w", id, ErrUnknownBlock)
	}
	if w.blocks[i].Content == content {
		return nil
	}
	w.blocks[i].Content = content
	w.recompute()
	return nil
}

// Rename sets the display name of a block
func (w *Workspace) Rename(id int, name string) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("rename block %d: %w", id, ErrUnknownBlock)
	}
	w.blocks[i].Name = name
	w.recompute()
	return nil
}

// Remove deletes a block unless that would leave fewer than MinBlocks
func (w *Workspace) Remove(id int) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("remove block %d: %w", id, ErrUnknownBlock)
	}
	if len(w.blocks) <= MinBlocks {
		return fmt.Errorf("remove block %d: %w", id, ErrMinBlocks)
	}
	w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
	w.logger.Debug("block removed", "id", id)
	w.recompute()
	return nil
}

// Comparisons returns the comparisons for the current blocks and policy
func (w *Workspace) Comparisons() []Comparison {
	return append([]Comparison(nil), w.comparisons...)
}

// ComparePair compares two blocks chosen by id, independent of the policy
func (w *Workspace) ComparePair(firstID, secondID int) (Comparison, error) {
	if firstID == secondID {
		return Comparison{}, ErrSamePair
	}
	a, b := w.index(firstID), w.index(secondID)
	if a < 0 {
		return Comparison{}, fmt.Errorf("block %d: %w", firstID, ErrUnknownBlock)
	}
	if b < 0 {
		return Comparison{}, fmt.Errorf("block %d: %w", secondID, ErrUnknownBlock)
	}
	r, ok := compare.ComparePair(w.contents(), compare.Pair{A: a, B: b})
	if !ok {
		return Comparison{}, ErrNothingToCompare
	}
	return w.comparison(r), nil
}

func (w *Workspace) index(id int) int {
	for i, b := range w.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) contents() []string {
	contents := make([]string, len(w.blocks))
	for i, b := range w.blocks {
		contents[i] = b.Content
	}
	return contents
}

func (w *Workspace) comparison(r compare.Result) Comparison {
	left, right := w.blocks[r.Pair.A], w.blocks[r.Pair.B]
	return Comparison{
		Result: r,
		Left:   left,
		Right:  right,
		Label:  Label(left, right),
	}
}

func (w *Workspace) recompute() {
	set := compare.Compare(w.contents(), w.policy)
	comparisons := make([]Comparison, len(set))
	for i, r := range set {
		comparisons[i] = w.comparison(r)
	}
	w.comparisons = comparisons
	w.logger.Debug("recomputed comparisons",
		"blocks", len(w.blocks),
		"policy", w.policy,
		"comparisons", len(comparisons))
}
