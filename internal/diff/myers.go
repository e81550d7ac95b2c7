package diff

import "slices"

// Compute returns the minimal edit script transforming a into b under eq.
//
// eq is always called as eq(a[i], b[j]). Identical sequences produce an
// empty diff; an empty b produces len(a) removals and vice versa. A moved
// element costs one removal plus one insertion; there is no move record.
func Compute[T any](a, b []T, eq func(T, T) bool) *Diff[T] {
	return ComputeShifted(a, b, eq, 0)
}

// ComputeShifted is Compute with a uniform offset added to every emitted
// index, for diffing a sub-range while reporting indices relative to a
// larger containing sequence. The offset is applied as a final pass, after
// the removal and insertion lists are sorted.
func ComputeShifted[T any](a, b []T, eq func(T, T) bool, offset int) *Diff[T] {
	removals, insertions := editScript(a, b, eq)
	if offset != 0 {
		for i := range removals {
			removals[i].RemovedAt += offset
		}
		for i := range insertions {
			insertions[i].InsertedAt += offset
		}
	}
	return &Diff[T]{removals: removals, insertions: insertions}
}

// editScript runs the forward greedy phase and backtracks the recorded
// trace into ascending removal and insertion lists.
func editScript[T any](a, b []T, eq func(T, T) bool) ([]Removal[T], []Insertion[T]) {
	n, m := len(a), len(b)

	// Common degenerate shapes skip the trace machinery entirely.
	switch {
	case n == 0 && m == 0:
		return nil, nil
	case m == 0:
		removals := make([]Removal[T], n)
		for i, e := range a {
			removals[i] = Removal[T]{RemovedAt: i, Element: e}
		}
		return removals, nil
	case n == 0:
		insertions := make([]Insertion[T], m)
		for j, e := range b {
			insertions[j] = Insertion[T]{InsertedAt: j, Element: e}
		}
		return nil, insertions
	}

	// v maps diagonal k to the furthest x reached; diagonals are offset by
	// bound to index the slice. v[bound+1] = 0 seeds the d=0 iteration.
	bound := n + m
	v := make([]int, 2*bound+1)

	// trace[d] is a snapshot of v before depth d runs, i.e. the
	// furthest-reach state of depth d-1. It is what the backtrack needs to
	// decide which neighbor diagonal each step came from.
	var trace [][]int

	depth := -1
search:
	for d := 0; d <= bound; d++ {
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[bound+k-1] < v[bound+k+1]) {
				x = v[bound+k+1] // step down: insertion
			} else {
				x = v[bound+k-1] + 1 // step right: removal (wins ties)
			}
			y := x - k
			for x < n && y < m && eq(a[x], b[y]) {
				x++
				y++
			}
			v[bound+k] = x
			if x >= n && y >= m {
				depth = d
				break search
			}
		}
	}

	// Walk back from (n, m), one non-diagonal step per depth. Steps are
	// discovered last-first, so the collected indices come out strictly
	// descending and a reverse restores ascending order.
	var removals []Removal[T]
	var insertions []Insertion[T]

	x, y := n, m
	for d := depth; d > 0; d-- {
		prev := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && prev[bound+k-1] < prev[bound+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev[bound+prevK]
		prevY := prevX - prevK

		// Rewind the free diagonal run that followed the step.
		x, y = prevX, prevY
		if prevK == k+1 {
			insertions = append(insertions, Insertion[T]{InsertedAt: prevY, Element: b[prevY]})
		} else {
			removals = append(removals, Removal[T]{RemovedAt: prevX, Element: a[prevX]})
		}
	}

	slices.Reverse(removals)
	slices.Reverse(insertions)
	return removals, insertions
}
