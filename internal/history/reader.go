package history

import (
	"context"
	"iter"
	"slices"
)

// Reader produces the history of a repository starting at a reference.
// The sequence is newest first and may stop with an error; it is restartable,
// so ranging over it twice reads the history twice.
type Reader interface {
	Changes(ctx context.Context, start string) iter.Seq2[Change, error]
}

// Collect materializes up to limit changes from seq. A limit of zero reads everything.
func Collect(seq iter.Seq2[Change, error], limit int) ([]Change, error) {
	var changes []Change
	for change, err := range seq {
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
		if limit > 0 && len(changes) >= limit {
			break
		}
	}
	return changes, nil
}

// Values returns a restartable sequence over changes
func Values(changes []Change) iter.Seq[Change] {
	return slices.Values(changes)
}

// Empty is a sequence without changes
func Empty() iter.Seq[Change] {
	return func(func(Change) bool) {}
}

// FindByLabel returns the first change that records value under any of names
func FindByLabel(seq iter.Seq[Change], names []string, value string) (Change, bool) {
	for change := range seq {
		if _, ok := change.HasLabel(names, value); ok {
			return change, true
		}
	}
	return Change{}, false
}

// WithLabel filters seq down to changes that carry any of names
func WithLabel(seq iter.Seq[Change], names ...string) iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for change := range seq {
			if !slices.ContainsFunc(change.Labels, func(l Label) bool { return slices.Contains(names, l.Name) }) {
				continue
			}
			if !yield(change) {
				return
			}
		}
	}
}

// MemoryReader serves a fixed, newest-first history. It is meant for fixtures and tests.
type MemoryReader struct {
	changes []Change
}

// NewMemoryReader creates a reader over changes, which must be newest first
func NewMemoryReader(changes ...Change) *MemoryReader {
	return &MemoryReader{changes: slices.Clone(changes)}
}

// Changes yields the stored changes starting at the change whose Ref equals start.
// An empty start yields everything.
func (r *MemoryReader) Changes(ctx context.Context, start string) iter.Seq2[Change, error] {
	return func(yield func(Change, error) bool) {
		started := start == ""
		for _, change := range r.changes {
			if err := ctx.Err(); err != nil {
				yield(Change{}, err)
				return
			}
			if !started {
				if change.Ref != start {
					continue
				}
				started = true
			}
			if !yield(change, nil) {
				return
			}
		}
	}
}
