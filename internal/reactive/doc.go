// Package reactive wraps an ordered sequence so that every mutation is
// reported as exactly one diff per outermost mutation session.
//
// ARCHITECTURE:
//
// TrackingCore is the state machine. It is Idle when the session balance is
// zero and holds no tracking state; it is InSession while the balance is
// positive. During a session it holds AT MOST ONE of:
//
//   - a pending single diff, when exactly one elementary change has been
//     recorded so far (the cheap path), or
//   - a snapshot of the sequence as it was before the session's first
//     change (the fallback path).
//
// The first elementary change is recorded as a precise diff with no edit
// script computation. When a second change arrives the core reconstructs
// the pre-session sequence by applying the inverse of the pending diff to
// the current sequence, keeps that snapshot, and stops elementary tracking
// for the rest of the session: one amortized re-diff at session end is
// cheaper and simpler than incrementally composing diffs.
//
// Sessions nest; only the outermost EndMutation emits, and only when the
// sequence actually changed. CancelMutation discards tracking state without
// emitting, for the error path of a caller-supplied mutation body: the
// sequence may be left partially mutated, but no notification claims a
// clean before/after state.
//
// Array is the public wrapper. Every mutating method brackets itself with
// BeginMutation/record/EndMutation explicitly; there is no dynamic
// interception. Elementary changes are recorded BEFORE the sequence is
// mutated, which is what makes the inverse-based snapshot reconstruction
// valid.
//
// Everything here is single-threaded by contract. Reentrancy (mutating the
// array from a notification handler) composes through the session balance.
package reactive
