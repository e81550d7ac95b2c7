// Package diff computes and represents minimal edit scripts between ordered
// sequences.
//
// The engine is Myers' O((N+M)D) greedy algorithm. For each edit depth d it
// tracks, per diagonal k = x-y, the furthest x reachable with exactly d
// non-diagonal moves; matches along a diagonal are free. The per-depth
// furthest-reach arrays are retained as a trace and walked backwards to
// recover the individual insertions and removals.
//
// TIE-BREAK: when both neighbor diagonals reach equally far, the step is
// taken from diagonal k-1 (a removal, x advances). Which of several minimal
// scripts is produced is observable through the recorded indices, so this
// rule is fixed, not an implementation detail.
//
// A Diff is immutable once built. Removal indices refer to the source
// sequence and are strictly ascending; insertion indices refer to the
// destination sequence and are strictly ascending. Applying a Diff to its
// source reproduces its destination; applying the Inverse to the destination
// reproduces the source.
//
// The element equality predicate is injected and always invoked as
// eq(a[i], b[j]). It must be deterministic and side-effect free; it may be
// asymmetric in its arguments per the caller's contract.
package diff
