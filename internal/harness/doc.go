// Package harness runs declarative diff scenarios.
//
// A scenario file is YAML: a list of named source/target sequence pairs
// with optional expected edit scripts. Files are validated against an
// embedded CUE schema before running, so a malformed scenario fails with a
// schema error instead of a confusing runtime mismatch.
//
// The runner computes the edit script with the library's own equality
// oracle, checks the round trip (applying the script to the source must
// reproduce the target), checks any explicit expectations, and renders a
// deterministic plain-text trace. RunWithGolden compares that trace against
// a golden file under testdata/golden, which serves as the source of truth
// for expected scripts - including the tie-break-sensitive index choices.
package harness
