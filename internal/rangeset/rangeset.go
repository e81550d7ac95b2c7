// Package rangeset implements an ordered set of non-negative integers stored
// as merged half-open ranges.
//
// INVARIANTS (hold between every exported call):
//   - Ranges are sorted ascending by Start.
//   - Start < End for every stored range.
//   - No two stored ranges overlap or touch (End[i] < Start[i+1]).
//   - count equals the sum of (End - Start) over all stored ranges.
//
// All range arguments are half-open [start, end). Degenerate arguments
// (start >= end after clamping negatives to zero) are no-ops for mutating
// operations and false/empty for queries - they are common outputs of
// computed offsets, not errors.
package rangeset

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Range is a single half-open interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of integers in the range.
func (r Range) Len() int { return r.End - r.Start }

// RangeSet holds sorted, merged, non-adjacent ranges.
//
// The zero value is an empty, ready-to-use set. Copy with Clone; plain
// struct assignment would share the backing slice.
type RangeSet struct {
	ranges []Range
	count  int
}

// New creates an empty RangeSet.
func New() *RangeSet {
	return &RangeSet{}
}

// Of creates a RangeSet holding the single range [start, end).
func Of(start, end int) *RangeSet {
	s := &RangeSet{}
	s.InsertRange(start, end)
	return s
}

// clamp normalizes a range argument: negative starts are clamped to zero.
// Returns ok=false for ranges that are empty after clamping.
func clamp(start, end int) (int, int, bool) {
	if start < 0 {
		start = 0
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// Count returns the number of integers in the set.
func (s *RangeSet) Count() int { return s.count }

// IsEmpty reports whether the set has no members.
func (s *RangeSet) IsEmpty() bool { return s.count == 0 }

// Len returns the number of stored ranges.
func (s *RangeSet) Len() int { return len(s.ranges) }

// Ranges returns a snapshot of the stored ranges in ascending order.
func (s *RangeSet) Ranges() []Range { return slices.Clone(s.ranges) }

// Clone returns an independent copy. Mutating the copy never affects the
// original.
func (s *RangeSet) Clone() *RangeSet {
	return &RangeSet{ranges: slices.Clone(s.ranges), count: s.count}
}

// Equal reports whether both sets hold exactly the same members. Because
// ranges are always merged, this is element-wise equality of the range lists.
func (s *RangeSet) Equal(o *RangeSet) bool {
	return slices.Equal(s.ranges, o.ranges)
}

// Contains reports whether the single index i is a member.
func (s *RangeSet) Contains(i int) bool {
	return s.ContainsRange(i, i+1)
}

// ContainsRange reports whether [start, end) is fully contained in one
// stored range. Empty queries return false.
func (s *RangeSet) ContainsRange(start, end int) bool {
	start, end, ok := clamp(start, end)
	if !ok {
		return false
	}
	// First range whose End exceeds start is the only candidate.
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].End > start
	})
	return i < len(s.ranges) && s.ranges[i].Start <= start && end <= s.ranges[i].End
}

// Insert adds the single index i.
func (s *RangeSet) Insert(i int) {
	s.InsertRange(i, i+1)
}

// InsertRange adds [start, end), merging with any overlapping or adjacent
// stored ranges.
func (s *RangeSet) InsertRange(start, end int) {
	start, end, ok := clamp(start, end)
	if !ok {
		return
	}

	// i is the first range that overlaps or touches [start, end) from the
	// left; j is the first range strictly beyond it on the right. Ranges
	// with End == start or Start == end are adjacent and merge too.
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].End >= start
	})
	j := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].Start > end
	})

	merged := Range{Start: start, End: end}
	absorbed := 0
	for k := i; k < j; k++ {
		absorbed += s.ranges[k].Len()
	}
	if i < j {
		if s.ranges[i].Start < merged.Start {
			merged.Start = s.ranges[i].Start
		}
		if s.ranges[j-1].End > merged.End {
			merged.End = s.ranges[j-1].End
		}
	}

	s.ranges = slices.Replace(s.ranges, i, j, merged)
	s.count += merged.Len() - absorbed
}

// Remove deletes the single index i.
func (s *RangeSet) Remove(i int) {
	s.RemoveRange(i, i+1)
}

// RemoveRange deletes [start, end) from the set, splitting a stored range
// when the removed interval is strictly interior to it.
func (s *RangeSet) RemoveRange(start, end int) {
	start, end, ok := clamp(start, end)
	if !ok {
		return
	}

	// Ranges [i, j) intersect [start, end). Pure adjacency is excluded:
	// a range ending exactly at start or starting exactly at end is kept.
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].End > start
	})
	j := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].Start >= end
	})
	if i >= j {
		return
	}

	var keep []Range
	if s.ranges[i].Start < start {
		keep = append(keep, Range{Start: s.ranges[i].Start, End: start})
	}
	if s.ranges[j-1].End > end {
		keep = append(keep, Range{Start: end, End: s.ranges[j-1].End})
	}

	removed := 0
	for k := i; k < j; k++ {
		removed += s.ranges[k].Len()
	}
	for _, r := range keep {
		removed -= r.Len()
	}

	s.ranges = slices.Replace(s.ranges, i, j, keep...)
	s.count -= removed
}

// Toggle flips membership of the single index i.
func (s *RangeSet) Toggle(i int) {
	s.ToggleRange(i, i+1)
}

// ToggleRange replaces the set's contents over [start, end) with their
// complement (symmetric difference with the range), in place.
func (s *RangeSet) ToggleRange(start, end int) {
	start, end, ok := clamp(start, end)
	if !ok {
		return
	}

	// Record the clipped members inside [start, end), clear the window,
	// then insert the gaps between them.
	var present []Range
	for _, r := range s.ranges {
		if r.End <= start {
			continue
		}
		if r.Start >= end {
			break
		}
		present = append(present, Range{Start: max(r.Start, start), End: min(r.End, end)})
	}

	s.RemoveRange(start, end)

	cur := start
	for _, r := range present {
		if cur < r.Start {
			s.InsertRange(cur, r.Start)
		}
		cur = r.End
	}
	if cur < end {
		s.InsertRange(cur, end)
	}
}

// InsertGap shifts every member >= start rightward by end-start, splitting a
// range that straddles start. It adds no members; it only relocates existing
// ones to make room for an insertion into the index space.
func (s *RangeSet) InsertGap(start, end int) {
	start, end, ok := clamp(start, end)
	if !ok {
		return
	}
	delta := end - start

	// First range whose End exceeds start either straddles start (split it)
	// or lies fully at or above it (shift it whole).
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].End > start
	})
	if i < len(s.ranges) && s.ranges[i].Start < start {
		left := Range{Start: s.ranges[i].Start, End: start}
		right := Range{Start: start, End: s.ranges[i].End}
		s.ranges = slices.Replace(s.ranges, i, i+1, left, right)
		i++
	}
	for k := i; k < len(s.ranges); k++ {
		s.ranges[k].Start += delta
		s.ranges[k].End += delta
	}
}

// InsertSpan makes room at [start, end) via InsertGap, then adds the new
// members [start, end) themselves. Used when contiguous elements are inserted
// into an index space and everything above must shift.
func (s *RangeSet) InsertSpan(start, end int) {
	s.InsertGap(start, end)
	s.InsertRange(start, end)
}

// RemoveSpan deletes [start, end) and shifts every remaining member >= end
// leftward by end-start, re-merging ranges that become adjacent.
func (s *RangeSet) RemoveSpan(start, end int) {
	start, end, ok := clamp(start, end)
	if !ok {
		return
	}
	delta := end - start

	s.RemoveRange(start, end)

	// After removal nothing intersects [start, end), so the ranges to shift
	// are exactly those starting at or beyond end.
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].Start >= end
	})
	for k := i; k < len(s.ranges); k++ {
		s.ranges[k].Start -= delta
		s.ranges[k].End -= delta
	}

	// The shift can close the gap to the range below.
	if i > 0 && i < len(s.ranges) && s.ranges[i-1].End >= s.ranges[i].Start {
		merged := Range{Start: s.ranges[i-1].Start, End: s.ranges[i].End}
		s.ranges = slices.Replace(s.ranges, i-1, i+1, merged)
	}
}

// Union returns a new set holding every member of either set. Implemented as
// a linear merge of the two sorted range lists.
func (s *RangeSet) Union(o *RangeSet) *RangeSet {
	out := &RangeSet{}
	i, j := 0, 0
	var cur Range
	have := false

	absorb := func(r Range) {
		if have && r.Start <= cur.End {
			if r.End > cur.End {
				cur.End = r.End
			}
			return
		}
		if have {
			out.push(cur)
		}
		cur, have = r, true
	}

	for i < len(s.ranges) || j < len(o.ranges) {
		switch {
		case j >= len(o.ranges) || (i < len(s.ranges) && s.ranges[i].Start <= o.ranges[j].Start):
			absorb(s.ranges[i])
			i++
		default:
			absorb(o.ranges[j])
			j++
		}
	}
	if have {
		out.push(cur)
	}
	return out
}

// Intersect returns a new set holding the members present in both sets.
// Implemented as a linear two-pointer sweep.
func (s *RangeSet) Intersect(o *RangeSet) *RangeSet {
	out := &RangeSet{}
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		lo := max(s.ranges[i].Start, o.ranges[j].Start)
		hi := min(s.ranges[i].End, o.ranges[j].End)
		if lo < hi {
			out.push(Range{Start: lo, End: hi})
		}
		if s.ranges[i].End < o.ranges[j].End {
			i++
		} else {
			j++
		}
	}
	return out
}

// Subtract returns a new set holding the members of s not in o.
func (s *RangeSet) Subtract(o *RangeSet) *RangeSet {
	out := s.Clone()
	for _, r := range o.ranges {
		out.RemoveRange(r.Start, r.End)
	}
	return out
}

// SymmetricDifference returns a new set holding the members present in
// exactly one of the two sets.
func (s *RangeSet) SymmetricDifference(o *RangeSet) *RangeSet {
	out := s.Clone()
	for _, r := range o.ranges {
		out.ToggleRange(r.Start, r.End)
	}
	return out
}

// push appends a range known to be beyond every stored one.
func (s *RangeSet) push(r Range) {
	s.ranges = append(s.ranges, r)
	s.count += r.Len()
}

// All iterates the members in ascending order. The sequence is restartable;
// each call to the returned iterator walks the set from the beginning.
func (s *RangeSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, r := range s.ranges {
			for i := r.Start; i < r.End; i++ {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// Backward iterates the members in descending order.
func (s *RangeSet) Backward() iter.Seq[int] {
	return func(yield func(int) bool) {
		for k := len(s.ranges) - 1; k >= 0; k-- {
			for i := s.ranges[k].End - 1; i >= s.ranges[k].Start; i-- {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// AllRanges iterates the stored ranges in ascending order.
func (s *RangeSet) AllRanges() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for _, r := range s.ranges {
			if !yield(r) {
				return
			}
		}
	}
}

// BackwardRanges iterates the stored ranges in descending order.
func (s *RangeSet) BackwardRanges() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for k := len(s.ranges) - 1; k >= 0; k-- {
			if !yield(s.ranges[k]) {
				return
			}
		}
	}
}

// String renders the set as "{[0,3) [5,9)}".
func (s *RangeSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for k, r := range s.ranges {
		if k > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "[%d,%d)", r.Start, r.End)
	}
	b.WriteByte('}')
	return b.String()
}
