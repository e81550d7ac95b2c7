package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphaArgon/alkaline/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	FailFast bool
}

// ScenarioResult is one scenario outcome in the JSON output.
type ScenarioResult struct {
	File     string   `json:"file"`
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// TestResult aggregates a whole run.
type TestResult struct {
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario-file>...",
		Short: "Run diff scenario suites",
		Long: `Run scenario files against the edit-script engine.

Each file is validated against the scenario schema, then every scenario
is diffed, round-trip checked, and compared with its expectations.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing or malformed scenario file)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first failing scenario")

	return cmd
}

func runTest(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := &TestResult{}
	for _, path := range paths {
		scenarios, err := harness.LoadFile(path)
		if err != nil {
			_ = formatter.Error("E_SCENARIO", err.Error())
			return NewExitError(ExitCommandError, "")
		}
		formatter.VerboseLog("%s: %d scenarios", path, len(scenarios))

		for _, sc := range scenarios {
			res := harness.Run(sc)
			sr := ScenarioResult{
				File:     path,
				Name:     sc.Name,
				Passed:   res.Passed(),
				Failures: res.Failures,
			}
			result.Total++
			if sr.Passed {
				result.Passed++
			} else {
				result.Failed++
			}
			result.Scenarios = append(result.Scenarios, sr)

			if opts.Format != "json" {
				writeScenarioText(formatter, sr)
			}
			if !sr.Passed && opts.FailFast {
				return finishTest(formatter, opts, result)
			}
		}
	}

	return finishTest(formatter, opts, result)
}

func finishTest(f *OutputFormatter, opts *TestOptions, result *TestResult) error {
	if opts.Format == "json" {
		if err := f.JSON(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "%d scenarios: %d passed, %d failed\n",
			result.Total, result.Passed, result.Failed)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, "")
	}
	return nil
}

func writeScenarioText(f *OutputFormatter, sr ScenarioResult) {
	if sr.Passed {
		fmt.Fprintf(f.Writer, "ok   %s\n", sr.Name)
		return
	}
	fmt.Fprintf(f.Writer, "FAIL %s\n", sr.Name)
	for _, failure := range sr.Failures {
		fmt.Fprintf(f.Writer, "     %s\n", failure)
	}
}
