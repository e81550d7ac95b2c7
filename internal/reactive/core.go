package reactive

import (
	"slices"

	"github.com/alphaArgon/alkaline/internal/diff"
)

// TrackingCore batches the elementary changes of a mutation session into
// one diff. It holds a back-reference to the host sequence for snapshot
// reconstruction and re-diffing; it never manages the host's lifetime.
//
// INVARIANTS:
//   - balance >= 0.
//   - At most one of {pending, snapshot} is set outside a transient state.
//   - At most one emission per outermost session, none if nothing changed.
type TrackingCore[T any] struct {
	host *[]T
	eq   func(T, T) bool

	balance  int
	pending  *diff.Diff[T]
	snapshot []T
	hasSnap  bool
}

// NewTrackingCore creates a core bound to the sequence at host, using eq
// as the element equality for session-end re-diffing.
func NewTrackingCore[T any](host *[]T, eq func(T, T) bool) *TrackingCore[T] {
	return &TrackingCore[T]{host: host, eq: eq}
}

// InSession reports whether a mutation session is open.
func (c *TrackingCore[T]) InSession() bool { return c.balance > 0 }

// BeginMutation opens a mutation session. Sessions nest: calling while a
// session is already open only deepens the balance.
func (c *TrackingCore[T]) BeginMutation() {
	c.balance++
}

// RecordReplacement records a single-index value replacement about to be
// applied to the host. Cheap path: no edit script computation.
func (c *TrackingCore[T]) RecordReplacement(index int, old, new T) {
	c.record(diff.NewReplacement(index, old, new))
}

// RecordInsertionRun records a contiguous run of insertions about to be
// applied at index at. Cheap path.
func (c *TrackingCore[T]) RecordInsertionRun(at int, elems []T) {
	if len(elems) == 0 {
		return
	}
	c.record(diff.NewInsertionRun(at, elems))
}

// RecordRemovalRun records a contiguous run of removals about to be applied
// at index at. Cheap path for tail truncation.
func (c *TrackingCore[T]) RecordRemovalRun(at int, elems []T) {
	if len(elems) == 0 {
		return
	}
	c.record(diff.NewRemovalRun(at, elems))
}

// RecordIndexShift declares that the upcoming change cannot be expressed as
// one cheap diff (it relocates retained elements). The core switches to
// snapshot tracking immediately.
//
// Like the other recorders it MUST be called before the host is mutated.
func (c *TrackingCore[T]) RecordIndexShift() {
	c.requireSession()
	if c.hasSnap {
		return
	}
	c.takeSnapshot()
}

// record is the elementary recorder of the session state machine.
func (c *TrackingCore[T]) record(d *diff.Diff[T]) {
	c.requireSession()
	switch {
	case c.hasSnap:
		// Fallback mode: the session re-diffs at the end, elementary
		// tracking is skipped entirely.
	case c.pending == nil:
		c.pending = d
	default:
		// A second elementary change: give up on precise tracking.
		c.takeSnapshot()
	}
}

// takeSnapshot reconstructs the pre-session sequence. If a pending diff
// exists the current host is exactly pending.Apply(pre-session), so the
// inverse recovers it; otherwise the host is still untouched.
func (c *TrackingCore[T]) takeSnapshot() {
	if c.pending != nil {
		c.snapshot = c.pending.Inverse().Apply(*c.host)
		c.pending = nil
	} else {
		c.snapshot = slices.Clone(*c.host)
	}
	c.hasSnap = true
}

// EndMutation closes one nesting level. When the outermost level closes,
// the session's net diff is handed to post exactly once - or not at all if
// the session changed nothing. post must not be nil.
func (c *TrackingCore[T]) EndMutation(post func(*diff.Diff[T])) {
	if c.balance == 0 {
		panic(&ProtocolError{
			Code:    ErrCodeUnbalancedSession,
			Message: "EndMutation without a matching BeginMutation",
		})
	}
	c.balance--
	if c.balance > 0 {
		return
	}

	switch {
	case c.pending != nil:
		d := c.pending
		c.pending = nil
		if !d.IsEmpty() {
			post(d)
		}
	case c.hasSnap:
		snapshot := c.snapshot
		c.snapshot = nil
		c.hasSnap = false
		d := diff.Compute(snapshot, *c.host, c.eq)
		if !d.IsEmpty() {
			post(d)
		}
	}
}

// CancelMutation closes one nesting level without emitting. When the
// outermost level closes, any pending diff or snapshot is discarded: the
// host may be left partially mutated by a failed operation, but no
// notification will claim a clean before/after state.
func (c *TrackingCore[T]) CancelMutation() {
	if c.balance == 0 {
		panic(&ProtocolError{
			Code:    ErrCodeUnbalancedSession,
			Message: "CancelMutation without a matching BeginMutation",
		})
	}
	c.balance--
	if c.balance > 0 {
		return
	}
	c.pending = nil
	c.snapshot = nil
	c.hasSnap = false
}

func (c *TrackingCore[T]) requireSession() {
	if c.balance == 0 {
		panic(&ProtocolError{
			Code:    ErrCodeRecordOutsideSession,
			Message: "elementary change recorded with no open mutation session",
		})
	}
}
