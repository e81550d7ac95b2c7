package harness

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alphaArgon/alkaline/internal/diff"
	"github.com/alphaArgon/alkaline/internal/equality"
)

// Scenario is one diff conformance case: a source and target sequence with
// optional explicit expectations on the computed edit script.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file
	// name. Lowercase kebab-case, enforced by the schema.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Source and Target are the sequences to diff. Elements are scalars
	// (strings or ints) compared with the library's equality oracle.
	Source []any `yaml:"source"`
	Target []any `yaml:"target"`

	// Expect pins the exact edit script. If nil, only the round trip is
	// checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause pins removal and insertion records. Both lists are compared
// in full: order, indices, and elements.
type ExpectClause struct {
	Removals   []ExpectedEdit `yaml:"removals,omitempty"`
	Insertions []ExpectedEdit `yaml:"insertions,omitempty"`
}

// ExpectedEdit is one expected removal or insertion.
type ExpectedEdit struct {
	At      int `yaml:"at"`
	Element any `yaml:"element"`
}

// scenarioFile is the top-level document shape.
type scenarioFile struct {
	Scenarios []*Scenario `yaml:"scenarios"`
}

// ScenarioError reports a problem loading or validating a scenario file.
type ScenarioError struct {
	Code    ScenarioErrorCode
	Message string
	Path    string
}

// ScenarioErrorCode categorizes scenario errors.
type ScenarioErrorCode string

const (
	// ErrCodeNotFound indicates the scenario file does not exist or could
	// not be read.
	ErrCodeNotFound ScenarioErrorCode = "NOT_FOUND"

	// ErrCodeParse indicates the file is not valid YAML.
	ErrCodeParse ScenarioErrorCode = "PARSE_FAILED"

	// ErrCodeSchema indicates the document violates the scenario schema.
	ErrCodeSchema ScenarioErrorCode = "SCHEMA_VIOLATION"
)

// Error implements the error interface.
func (e *ScenarioError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSchemaError reports whether err is a schema violation.
func IsSchemaError(err error) bool {
	var se *ScenarioError
	return errors.As(err, &se) && se.Code == ErrCodeSchema
}

// LoadFile reads, schema-validates, and decodes a scenario file.
func LoadFile(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScenarioError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}
	scenarios, err := Parse(data)
	if err != nil {
		var se *ScenarioError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return scenarios, nil
}

// Parse schema-validates and decodes a scenario document.
func Parse(data []byte) ([]*Scenario, error) {
	// Decode generically first: the schema check runs on the raw document
	// so that typos are reported as schema violations, not as zero values.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ScenarioError{Code: ErrCodeParse, Message: err.Error()}
	}
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ScenarioError{Code: ErrCodeParse, Message: err.Error()}
	}
	return file.Scenarios, nil
}

// Result holds the outcome of running one scenario.
type Result struct {
	Scenario *Scenario
	Diff     *diff.Diff[any]

	// Failures lists expectation or round-trip violations. Empty means the
	// scenario passed.
	Failures []string
}

// Passed reports whether the scenario ran without failures.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run computes the scenario's edit script and checks it.
func Run(sc *Scenario) *Result {
	res := &Result{Scenario: sc}
	res.Diff = diff.Compute(sc.Source, sc.Target, equality.Equal)

	// Round trip: the script applied to the source must reproduce the
	// target, element for element under the oracle.
	applied := res.Diff.Apply(sc.Source)
	if len(applied) != len(sc.Target) {
		res.Failures = append(res.Failures,
			fmt.Sprintf("round trip: got %d elements, want %d", len(applied), len(sc.Target)))
	} else {
		for i := range applied {
			if !equality.Equal(applied[i], sc.Target[i]) {
				res.Failures = append(res.Failures,
					fmt.Sprintf("round trip: element %d is %v, want %v", i, applied[i], sc.Target[i]))
			}
		}
	}

	if sc.Expect != nil {
		checkRemovals(res, sc.Expect.Removals)
		checkInsertions(res, sc.Expect.Insertions)
	}
	return res
}

func checkRemovals(res *Result, want []ExpectedEdit) {
	got := res.Diff.Removals()
	if len(got) != len(want) {
		res.Failures = append(res.Failures,
			fmt.Sprintf("removals: got %d, want %d", len(got), len(want)))
		return
	}
	for i, w := range want {
		if got[i].RemovedAt != w.At || !equality.Equal(got[i].Element, w.Element) {
			res.Failures = append(res.Failures,
				fmt.Sprintf("removal %d: got {at %d: %v}, want {at %d: %v}",
					i, got[i].RemovedAt, got[i].Element, w.At, w.Element))
		}
	}
}

func checkInsertions(res *Result, want []ExpectedEdit) {
	got := res.Diff.Insertions()
	if len(got) != len(want) {
		res.Failures = append(res.Failures,
			fmt.Sprintf("insertions: got %d, want %d", len(got), len(want)))
		return
	}
	for i, w := range want {
		if got[i].InsertedAt != w.At || !equality.Equal(got[i].Element, w.Element) {
			res.Failures = append(res.Failures,
				fmt.Sprintf("insertion %d: got {at %d: %v}, want {at %d: %v}",
					i, got[i].InsertedAt, got[i].Element, w.At, w.Element))
		}
	}
}

// Trace renders the result as the deterministic plain-text snapshot golden
// files are compared against.
func (r *Result) Trace() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario.Name)
	fmt.Fprintf(&b, "source: %v\n", r.Scenario.Source)
	fmt.Fprintf(&b, "target: %v\n", r.Scenario.Target)

	removals := r.Diff.Removals()
	if len(removals) == 0 {
		b.WriteString("removals: (none)\n")
	} else {
		b.WriteString("removals:\n")
		for _, rem := range removals {
			fmt.Fprintf(&b, "  - at %d: %v\n", rem.RemovedAt, rem.Element)
		}
	}

	insertions := r.Diff.Insertions()
	if len(insertions) == 0 {
		b.WriteString("insertions: (none)\n")
	} else {
		b.WriteString("insertions:\n")
		for _, ins := range insertions {
			fmt.Fprintf(&b, "  - at %d: %v\n", ins.InsertedAt, ins.Element)
		}
	}

	fmt.Fprintf(&b, "removed indices: %s\n", r.Diff.RemovedIndices())
	fmt.Fprintf(&b, "inserted indices: %s\n", r.Diff.InsertedIndices())

	if r.Passed() {
		b.WriteString("status: ok\n")
	} else {
		b.WriteString("status: failed\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	return b.String()
}
