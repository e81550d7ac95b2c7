package reactive

import (
	"iter"
	"slices"

	"github.com/alphaArgon/alkaline/internal/diff"
	"github.com/alphaArgon/alkaline/internal/notify"
)

// ArrayDidChangeNotification is posted after every outermost mutation
// session that changed an Array. The sender is the *Array; the payload is
// the session's *diff.Diff.
const ArrayDidChangeNotification = "arrayDidChange"

// Array is a change-tracking wrapper around an ordered sequence. Every
// mutating method brackets itself with the tracking core explicitly, so the
// full mutation surface is enumerated here rather than intercepted
// dynamically.
//
// Cheap paths (one precise diff, no snapshot): single-index Set, append
// runs, prefix-insert runs, tail truncation. Everything that relocates
// retained elements falls back to a pre-session snapshot and one re-diff at
// session end.
type Array[T any] struct {
	elems  []T
	center *notify.Center
	core   *TrackingCore[T]
}

// NewArray creates an Array over a copy of elems. Diffs are posted to
// center (which may be nil to disable notifications); eq is the element
// equality used for session-end re-diffing and for Set short-circuiting.
func NewArray[T any](center *notify.Center, eq func(T, T) bool, elems ...T) *Array[T] {
	a := &Array[T]{elems: slices.Clone(elems), center: center}
	a.core = NewTrackingCore(&a.elems, eq)
	return a
}

// post hands the session diff to the notification collaborator.
func (a *Array[T]) post(d *diff.Diff[T]) {
	if a.center != nil {
		a.center.Post(ArrayDidChangeNotification, a, d)
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array[T]) At(i int) T { return a.elems[i] }

// Slice returns a copy of the current elements.
func (a *Array[T]) Slice() []T { return slices.Clone(a.elems) }

// All iterates the current elements in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range a.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Set replaces the element at index i. Equal values (per the injected
// equality) are assigned without opening a session, so no notification
// claims a change that did not happen.
func (a *Array[T]) Set(i int, v T) {
	old := a.elems[i]
	if a.core.eq(old, v) {
		a.elems[i] = v
		return
	}
	a.core.BeginMutation()
	a.core.RecordReplacement(i, old, v)
	a.elems[i] = v
	a.core.EndMutation(a.post)
}

// Append adds vals at the end. Cheap path.
func (a *Array[T]) Append(vals ...T) {
	if len(vals) == 0 {
		return
	}
	a.core.BeginMutation()
	a.core.RecordInsertionRun(len(a.elems), vals)
	a.elems = append(a.elems, vals...)
	a.core.EndMutation(a.post)
}

// Insert places vals contiguously at index i. Prefix and append runs are
// cheap; an interior insert relocates the retained tail and takes the
// snapshot path.
func (a *Array[T]) Insert(i int, vals ...T) {
	if len(vals) == 0 {
		return
	}
	a.core.BeginMutation()
	if i == 0 || i == len(a.elems) {
		a.core.RecordInsertionRun(i, vals)
	} else {
		a.core.RecordIndexShift()
	}
	a.elems = slices.Insert(a.elems, i, vals...)
	a.core.EndMutation(a.post)
}

// RemoveAt removes and returns the element at index i. Removing the last
// element is a tail truncation and stays cheap; anything else relocates the
// retained tail.
func (a *Array[T]) RemoveAt(i int) T {
	removed := a.elems[i]
	a.core.BeginMutation()
	if i == len(a.elems)-1 {
		a.core.RecordRemovalRun(i, []T{removed})
	} else {
		a.core.RecordIndexShift()
	}
	a.elems = slices.Delete(a.elems, i, i+1)
	a.core.EndMutation(a.post)
	return removed
}

// Truncate drops every element at index n and beyond. Cheap path.
func (a *Array[T]) Truncate(n int) {
	if n >= len(a.elems) {
		return
	}
	if n < 0 {
		n = 0
	}
	a.core.BeginMutation()
	a.core.RecordRemovalRun(n, slices.Clone(a.elems[n:]))
	a.elems = slices.Delete(a.elems, n, len(a.elems))
	a.core.EndMutation(a.post)
}

// Splice removes deleteCount elements at start, inserts vals in their
// place, and returns the removed elements. Degenerate splices reduce to the
// cheap paths; the general case snapshots.
func (a *Array[T]) Splice(start, deleteCount int, vals ...T) []T {
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > len(a.elems)-start {
		deleteCount = len(a.elems) - start
	}
	removed := slices.Clone(a.elems[start : start+deleteCount])

	if deleteCount == 0 && len(vals) == 0 {
		return removed
	}

	a.core.BeginMutation()
	switch {
	case deleteCount == 0 && (start == 0 || start == len(a.elems)):
		a.core.RecordInsertionRun(start, vals)
	case len(vals) == 0 && start+deleteCount == len(a.elems):
		a.core.RecordRemovalRun(start, removed)
	default:
		a.core.RecordIndexShift()
	}
	a.elems = slices.Concat(a.elems[:start], vals, a.elems[start+deleteCount:])
	a.core.EndMutation(a.post)
	return removed
}

// ReplaceAll swaps the whole contents for vals. Always the snapshot path;
// the session-end re-diff reports the minimal script between old and new.
func (a *Array[T]) ReplaceAll(vals ...T) {
	a.core.BeginMutation()
	a.core.RecordIndexShift()
	a.elems = slices.Clone(vals)
	a.core.EndMutation(a.post)
}

// Batch runs fn inside one mutation session, so every mutation fn performs
// is reported as a single net diff. If fn returns an error or panics, the
// session is cancelled: the sequence keeps whatever fn did to it, but no
// notification is emitted.
func (a *Array[T]) Batch(fn func(*Array[T]) error) error {
	a.core.BeginMutation()
	completed := false
	defer func() {
		if !completed {
			a.core.CancelMutation()
		}
	}()

	if err := fn(a); err != nil {
		return err
	}
	completed = true
	a.core.EndMutation(a.post)
	return nil
}
