// Package equality provides the polymorphic equality oracle injected into
// the diffing and reactive layers.
package equality

import (
	"reflect"

	"golang.org/x/text/unicode/norm"
)

// Equaler lets a value define its own equality check. The check is
// asymmetric: Equal consults it on the left operand only, so EqualTo decides
// against any right operand, including values of other types.
type Equaler interface {
	EqualTo(other any) bool
}

// Equal is a total, deterministic, reflexive predicate over arbitrary
// values:
//
//   - two nils are equal;
//   - a left operand implementing Equaler decides (asymmetric, never
//     consulted on the right);
//   - []any operands compare structurally, recursing through Equal;
//   - otherwise values of the same comparable type compare with ==.
//
// Values of differing or non-comparable types are unequal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if eq, ok := a.(Equaler); ok {
		return eq.EqualTo(b)
	}

	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// NFCStringEqual compares two strings after NFC normalization, so
// canonically equivalent Unicode spellings compare equal. Useful as the
// injected predicate when line-diffing text from mixed sources.
func NFCStringEqual(a, b string) bool {
	if a == b {
		return true
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}
