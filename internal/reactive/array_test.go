package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaArgon/alkaline/internal/diff"
	"github.com/alphaArgon/alkaline/internal/notify"
	"github.com/alphaArgon/alkaline/internal/testutil"
)

func intEq(a, b int) bool { return a == b }

func newRecordedArray(t *testing.T, elems ...int) (*Array[int], *testutil.Recorder) {
	t.Helper()
	center := notify.NewCenter()
	rec := &testutil.Recorder{}
	a := NewArray(center, intEq, elems...)
	center.Subscribe(ArrayDidChangeNotification, a, rec.Handler())
	return a, rec
}

func lastDiff(t *testing.T, rec *testutil.Recorder) *diff.Diff[int] {
	t.Helper()
	d, ok := rec.Last().Payload.(*diff.Diff[int])
	require.True(t, ok, "payload must be the session diff")
	return d
}

func TestArray_SetEmitsSingleReplacement(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)

	a.Set(1, 9)

	require.Equal(t, 1, rec.Count(), "exactly one notification per session")
	assert.Same(t, a, rec.Last().Sender)
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Removal[int]{{RemovedAt: 1, Element: 2}}, d.Removals())
	require.Equal(t, []diff.Insertion[int]{{InsertedAt: 1, Element: 9}}, d.Insertions())
	assert.Equal(t, []int{1, 9, 3}, a.Slice())
}

func TestArray_SetUsesCheapPath(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)

	// Observe the tracking state mid-session: a single replacement must be
	// held as a pending diff, never as a snapshot.
	err := a.Batch(func(a *Array[int]) error {
		a.Set(2, 7)
		require.NotNil(t, a.core.pending, "cheap path keeps a pending diff")
		require.False(t, a.core.hasSnap, "no fallback snapshot for one replacement")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count())
}

func TestArray_SetEqualValueEmitsNothing(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)
	a.Set(1, 2)
	assert.Zero(t, rec.Count(), "no change, no notification")
}

func TestArray_AppendIsCheapInsertionRun(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2)

	a.Append(3, 4)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	assert.Empty(t, d.Removals())
	require.Equal(t, []diff.Insertion[int]{
		{InsertedAt: 2, Element: 3},
		{InsertedAt: 3, Element: 4},
	}, d.Insertions())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Slice())

	a.Append() // empty run is a no-op
	assert.Equal(t, 1, rec.Count())
}

func TestArray_PrefixInsertIsCheap(t *testing.T) {
	a, rec := newRecordedArray(t, 3, 4)

	err := a.Batch(func(a *Array[int]) error {
		a.Insert(0, 1, 2)
		require.False(t, a.core.hasSnap, "prefix insert stays on the cheap path")
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Insertion[int]{
		{InsertedAt: 0, Element: 1},
		{InsertedAt: 1, Element: 2},
	}, d.Insertions())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Slice())
}

func TestArray_InteriorInsertFallsBack(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 4)

	err := a.Batch(func(a *Array[int]) error {
		a.Insert(1, 2, 3)
		require.True(t, a.core.hasSnap, "interior insert relocates the tail")
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	assert.Empty(t, d.Removals())
	require.Equal(t, []diff.Insertion[int]{
		{InsertedAt: 1, Element: 2},
		{InsertedAt: 2, Element: 3},
	}, d.Insertions())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Slice())
}

func TestArray_TruncateIsCheapRemovalRun(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3, 4)

	a.Truncate(2)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Removal[int]{
		{RemovedAt: 2, Element: 3},
		{RemovedAt: 3, Element: 4},
	}, d.Removals())
	assert.Empty(t, d.Insertions())
	assert.Equal(t, []int{1, 2}, a.Slice())

	a.Truncate(5) // already shorter: no-op
	assert.Equal(t, 1, rec.Count())
}

func TestArray_RemoveAtMiddle(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)

	got := a.RemoveAt(1)

	assert.Equal(t, 2, got)
	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Removal[int]{{RemovedAt: 1, Element: 2}}, d.Removals())
	assert.Empty(t, d.Insertions())
	assert.Equal(t, []int{1, 3}, a.Slice())
}

func TestArray_SpliceScenario(t *testing.T) {
	// splice(1, 1, 4, 5) on [1,2,3]: one removal, two insertions, final
	// array [1,4,5,3].
	a, rec := newRecordedArray(t, 1, 2, 3)

	removed := a.Splice(1, 1, 4, 5)

	assert.Equal(t, []int{2}, removed)
	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Removal[int]{{RemovedAt: 1, Element: 2}}, d.Removals())
	require.Equal(t, []diff.Insertion[int]{
		{InsertedAt: 1, Element: 4},
		{InsertedAt: 2, Element: 5},
	}, d.Insertions())
	assert.Equal(t, []int{1, 4, 5, 3}, a.Slice())
}

func TestArray_BatchFiveMutationsEmitOnce(t *testing.T) {
	a, rec := newRecordedArray(t, 0, 1, 2, 3, 4)

	// Mirror of the batch on a plain slice, replayed mutation by mutation.
	err := a.Batch(func(a *Array[int]) error {
		a.Set(0, 10)
		a.Append(5)
		a.RemoveAt(2)
		a.Insert(1, 99)
		a.Set(4, 40)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, 1, rec.Count(), "one notification for the whole batch")
	assert.Equal(t, []int{10, 99, 1, 3, 40, 5}, a.Slice())

	// The emitted diff must carry the net effect: applying it to the
	// pre-batch sequence reproduces the final one.
	d := lastDiff(t, rec)
	assert.Equal(t, a.Slice(), d.Apply([]int{0, 1, 2, 3, 4}))
}

func TestArray_NestedBatchesEmitOnce(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)

	err := a.Batch(func(a *Array[int]) error {
		a.Set(0, 9)
		return a.Batch(func(a *Array[int]) error {
			a.Append(4)
			return nil
		})
	})
	require.NoError(t, err)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	assert.Equal(t, []int{9, 2, 3, 4}, d.Apply([]int{1, 2, 3}))
}

func TestArray_NoOpBatchEmitsNothing(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)
	err := a.Batch(func(a *Array[int]) error { return nil })
	require.NoError(t, err)
	assert.Zero(t, rec.Count())
}

func TestArray_BatchErrorCancelsWithoutEmitting(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)
	boom := errors.New("boom")

	err := a.Batch(func(a *Array[int]) error {
		a.Set(0, 9)
		a.Append(4)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Zero(t, rec.Count(), "failed session must not notify")
	// Bookkeeping is rolled back, not the data.
	assert.Equal(t, []int{9, 2, 3, 4}, a.Slice())
	assert.False(t, a.core.InSession())

	// The array is fully usable afterwards.
	a.Set(1, 7)
	assert.Equal(t, 1, rec.Count())
}

func TestArray_BatchPanicCancels(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)

	require.Panics(t, func() {
		_ = a.Batch(func(a *Array[int]) error {
			a.Set(0, 9)
			panic("partway failure")
		})
	})

	assert.Zero(t, rec.Count())
	assert.False(t, a.core.InSession())
}

func TestArray_ReplaceAll(t *testing.T) {
	a, rec := newRecordedArray(t, 0, 1, 2, 3, 4)

	a.ReplaceAll(2, 3, 5, 7, 9)

	require.Equal(t, 1, rec.Count())
	d := lastDiff(t, rec)
	require.Equal(t, []diff.Removal[int]{
		{RemovedAt: 0, Element: 0},
		{RemovedAt: 1, Element: 1},
		{RemovedAt: 4, Element: 4},
	}, d.Removals())
	require.Equal(t, []diff.Insertion[int]{
		{InsertedAt: 2, Element: 5},
		{InsertedAt: 3, Element: 7},
		{InsertedAt: 4, Element: 9},
	}, d.Insertions())
}

func TestArray_ReplaceAllWithEqualContentEmitsNothing(t *testing.T) {
	a, rec := newRecordedArray(t, 1, 2, 3)
	a.ReplaceAll(1, 2, 3)
	assert.Zero(t, rec.Count())
}

func TestArray_ReentrantMutationFromHandler(t *testing.T) {
	center := notify.NewCenter()
	a := NewArray(center, intEq, 1, 2, 3)

	var posts int
	center.Subscribe(ArrayDidChangeNotification, a, func(_ string, _, _ any) {
		posts++
		if posts == 1 {
			// Mutating from inside the handler opens a fresh session and
			// produces its own notification.
			a.Append(4)
		}
	})

	a.Set(0, 9)

	assert.Equal(t, 2, posts)
	assert.Equal(t, []int{9, 2, 3, 4}, a.Slice())
}

func TestTrackingCore_RecordOutsideSessionPanics(t *testing.T) {
	var host []int
	core := NewTrackingCore(&host, intEq)

	defer func() {
		r := recover()
		require.NotNil(t, r, "recorder must panic outside a session")
		pe, ok := r.(*ProtocolError)
		require.True(t, ok)
		assert.Equal(t, ErrCodeRecordOutsideSession, pe.Code)
		assert.True(t, IsProtocolError(pe))
	}()
	core.RecordReplacement(0, 1, 2)
}

func TestTrackingCore_UnbalancedEndPanics(t *testing.T) {
	var host []int
	core := NewTrackingCore(&host, intEq)

	assert.PanicsWithError(t,
		"UNBALANCED_SESSION: EndMutation without a matching BeginMutation",
		func() { core.EndMutation(func(*diff.Diff[int]) {}) })
	assert.PanicsWithError(t,
		"UNBALANCED_SESSION: CancelMutation without a matching BeginMutation",
		func() { core.CancelMutation() })
}

func TestTrackingCore_SecondChangeConvertsToSnapshot(t *testing.T) {
	host := []int{1, 2, 3}
	core := NewTrackingCore(&host, intEq)

	core.BeginMutation()
	core.RecordReplacement(0, 1, 9)
	host[0] = 9
	require.NotNil(t, core.pending)
	require.False(t, core.hasSnap)

	// Second elementary change: the recorder reconstructs the pre-session
	// sequence from the pending diff's inverse.
	core.RecordReplacement(2, 3, 7)
	host[2] = 7
	require.Nil(t, core.pending)
	require.True(t, core.hasSnap)
	assert.Equal(t, []int{1, 2, 3}, core.snapshot)

	var posted *diff.Diff[int]
	core.EndMutation(func(d *diff.Diff[int]) { posted = d })
	require.NotNil(t, posted)
	assert.Equal(t, []int{9, 2, 7}, posted.Apply([]int{1, 2, 3}))
	assert.False(t, core.hasSnap, "state cleared after emission")
}
