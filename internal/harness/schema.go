package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaSource is the CUE schema every scenario document must satisfy.
// Elements are scalars so that YAML decoding and the equality oracle agree
// on representation.
const schemaSource = `
#Element: string | int

#Scenario: {
	name:         string & =~"^[a-z0-9][a-z0-9-]*$"
	description?: string
	source: [...#Element]
	target: [...#Element]
	expect?: {
		removals?: [...{at: int & >=0, element: #Element}]
		insertions?: [...{at: int & >=0, element: #Element}]
	}
}

scenarios: [...#Scenario]
`

// ValidateDocument checks a decoded YAML document against the scenario
// schema. Returns a *ScenarioError with ErrCodeSchema on violation.
func ValidateDocument(doc any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		// The schema is a compile-time constant; failing to compile it is
		// a bug here, not in the caller's document.
		return fmt.Errorf("compiling scenario schema: %w", err)
	}

	value := schema.Unify(ctx.Encode(doc))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &ScenarioError{
			Code:    ErrCodeSchema,
			Message: err.Error(),
		}
	}
	return nil
}
