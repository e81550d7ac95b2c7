package diff

import (
	"iter"
	"slices"

	"github.com/alphaArgon/alkaline/internal/rangeset"
)

// Removal records that the element at index RemovedAt of the source
// sequence is removed.
type Removal[T any] struct {
	RemovedAt int
	Element   T
}

// Insertion records that Element appears at index InsertedAt of the
// destination sequence.
type Insertion[T any] struct {
	InsertedAt int
	Element    T
}

// Diff is an immutable edit script. Removals are ascending by source index;
// insertions are ascending by destination index. Build one with Compute,
// NewReplacement, NewInsertionRun, or NewRemovalRun.
type Diff[T any] struct {
	removals   []Removal[T]
	insertions []Insertion[T]

	// Memoized index sets. The core is single-threaded by contract, so
	// plain fields suffice; no synchronization.
	removedIdx  *rangeset.RangeSet
	insertedIdx *rangeset.RangeSet
}

// NewReplacement builds the diff for replacing the element at index with
// another value: one removal plus one insertion at the same index. No edit
// script computation is involved.
func NewReplacement[T any](index int, old, new T) *Diff[T] {
	return &Diff[T]{
		removals:   []Removal[T]{{RemovedAt: index, Element: old}},
		insertions: []Insertion[T]{{InsertedAt: index, Element: new}},
	}
}

// NewInsertionRun builds an insertion-only diff placing elems contiguously
// starting at destination index at. An empty run yields an empty diff.
func NewInsertionRun[T any](at int, elems []T) *Diff[T] {
	if len(elems) == 0 {
		return &Diff[T]{}
	}
	insertions := make([]Insertion[T], len(elems))
	for i, e := range elems {
		insertions[i] = Insertion[T]{InsertedAt: at + i, Element: e}
	}
	return &Diff[T]{insertions: insertions}
}

// NewRemovalRun builds a removal-only diff dropping elems, which occupied
// contiguous source indices starting at at.
func NewRemovalRun[T any](at int, elems []T) *Diff[T] {
	if len(elems) == 0 {
		return &Diff[T]{}
	}
	removals := make([]Removal[T], len(elems))
	for i, e := range elems {
		removals[i] = Removal[T]{RemovedAt: at + i, Element: e}
	}
	return &Diff[T]{removals: removals}
}

// IsEmpty reports whether the diff changes nothing.
func (d *Diff[T]) IsEmpty() bool {
	return len(d.removals) == 0 && len(d.insertions) == 0
}

// Removals returns a copy of the removal list, ascending by source index.
func (d *Diff[T]) Removals() []Removal[T] {
	return slices.Clone(d.removals)
}

// Insertions returns a copy of the insertion list, ascending by destination
// index.
func (d *Diff[T]) Insertions() []Insertion[T] {
	return slices.Clone(d.insertions)
}

// RemovedIndices returns the set of removed source indices. Built once on
// first use and cached.
func (d *Diff[T]) RemovedIndices() *rangeset.RangeSet {
	if d.removedIdx == nil {
		s := rangeset.New()
		for _, r := range d.removals {
			s.Insert(r.RemovedAt)
		}
		d.removedIdx = s
	}
	return d.removedIdx
}

// InsertedIndices returns the set of inserted destination indices. Built
// once on first use and cached.
func (d *Diff[T]) InsertedIndices() *rangeset.RangeSet {
	if d.insertedIdx == nil {
		s := rangeset.New()
		for _, i := range d.insertions {
			s.Insert(i.InsertedAt)
		}
		d.insertedIdx = s
	}
	return d.insertedIdx
}

// Apply transforms a copy of seq into the destination sequence: removal
// ranges are deleted back-to-front so source indices stay valid, then
// insertion runs are spliced in front-to-back so destination indices stay
// valid. seq must be the sequence the diff was computed against.
func (d *Diff[T]) Apply(seq []T) []T {
	out := slices.Clone(seq)

	for r := range d.RemovedIndices().BackwardRanges() {
		out = slices.Delete(out, r.Start, r.End)
	}

	// Batch contiguous insertions into single splices.
	for i := 0; i < len(d.insertions); {
		j := i + 1
		for j < len(d.insertions) && d.insertions[j].InsertedAt == d.insertions[j-1].InsertedAt+1 {
			j++
		}
		run := make([]T, 0, j-i)
		for _, ins := range d.insertions[i:j] {
			run = append(run, ins.Element)
		}
		out = slices.Insert(out, d.insertions[i].InsertedAt, run...)
		i = j
	}
	return out
}

// Inverse returns the diff that undoes this one: every removal becomes an
// insertion at the same index and vice versa, value for value.
// inverse.Apply(d.Apply(x)) reproduces x for any valid x.
func (d *Diff[T]) Inverse() *Diff[T] {
	inv := &Diff[T]{}
	if len(d.insertions) > 0 {
		inv.removals = make([]Removal[T], len(d.insertions))
		for i, ins := range d.insertions {
			inv.removals[i] = Removal[T]{RemovedAt: ins.InsertedAt, Element: ins.Element}
		}
	}
	if len(d.removals) > 0 {
		inv.insertions = make([]Insertion[T], len(d.removals))
		for i, r := range d.removals {
			inv.insertions[i] = Insertion[T]{InsertedAt: r.RemovedAt, Element: r.Element}
		}
	}
	return inv
}

// ChangeKind tags an entry of the Changes sequence.
type ChangeKind int

const (
	// ChangeRemoval removes the element at Index of the live sequence.
	ChangeRemoval ChangeKind = iota + 1
	// ChangeInsertion inserts Element at Index of the live sequence.
	ChangeInsertion
)

// Change is one entry of the replay order produced by Changes.
type Change[T any] struct {
	Kind    ChangeKind
	Index   int
	Element T
}

// Changes iterates the edit script in replay order: removals in descending
// index order first, then insertions in ascending index order. A consumer
// applying each change directly to a live sequence, in this order, ends with
// the destination sequence without any intermediate bulk apply.
func (d *Diff[T]) Changes() iter.Seq[Change[T]] {
	return func(yield func(Change[T]) bool) {
		for i := len(d.removals) - 1; i >= 0; i-- {
			r := d.removals[i]
			if !yield(Change[T]{Kind: ChangeRemoval, Index: r.RemovedAt, Element: r.Element}) {
				return
			}
		}
		for _, ins := range d.insertions {
			if !yield(Change[T]{Kind: ChangeInsertion, Index: ins.InsertedAt, Element: ins.Element}) {
				return
			}
		}
	}
}
