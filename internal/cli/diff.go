package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphaArgon/alkaline/internal/diff"
	"github.com/alphaArgon/alkaline/internal/equality"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Normalize bool // compare lines NFC-normalized
}

// DiffLine is one edit in the JSON output.
type DiffLine struct {
	At   int    `json:"at"`
	Line string `json:"line"`
}

// DiffResult is the JSON payload of the diff command.
type DiffResult struct {
	Identical  bool       `json:"identical"`
	Removals   []DiffLine `json:"removals,omitempty"`
	Insertions []DiffLine `json:"insertions,omitempty"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Line-diff two files",
		Long: `Compute the minimal line edit script between two files.

Removal indices refer to lines of file-a, insertion indices to lines of
file-b; both are zero-based.

Exit codes:
  0 - Files are identical
  1 - Files differ
  2 - Command error (unreadable file)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "treat canonically equivalent Unicode lines as equal")

	return cmd
}

func runDiff(opts *DiffOptions, pathA, pathB string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	linesA, err := readLines(pathA)
	if err != nil {
		_ = formatter.Error("E_READ", err.Error())
		return NewExitError(ExitCommandError, "")
	}
	linesB, err := readLines(pathB)
	if err != nil {
		_ = formatter.Error("E_READ", err.Error())
		return NewExitError(ExitCommandError, "")
	}

	eq := func(a, b string) bool { return a == b }
	if opts.Normalize {
		eq = equality.NFCStringEqual
	}

	formatter.VerboseLog("diffing %d against %d lines", len(linesA), len(linesB))
	d := diff.Compute(linesA, linesB, eq)

	if opts.Format == "json" {
		if err := formatter.JSON(diffResult(d)); err != nil {
			return err
		}
	} else {
		writeDiffText(formatter, d)
	}

	if !d.IsEmpty() {
		return NewExitError(ExitFailure, "")
	}
	return nil
}

// readLines splits a file into lines, discarding the empty tail produced by
// a trailing newline so that "a\nb\n" is two lines, not three.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func diffResult(d *diff.Diff[string]) DiffResult {
	res := DiffResult{Identical: d.IsEmpty()}
	for _, r := range d.Removals() {
		res.Removals = append(res.Removals, DiffLine{At: r.RemovedAt, Line: r.Element})
	}
	for _, i := range d.Insertions() {
		res.Insertions = append(res.Insertions, DiffLine{At: i.InsertedAt, Line: i.Element})
	}
	return res
}

func writeDiffText(f *OutputFormatter, d *diff.Diff[string]) {
	if d.IsEmpty() {
		fmt.Fprintln(f.Writer, "files are identical")
		return
	}
	for _, r := range d.Removals() {
		fmt.Fprintf(f.Writer, "- %d: %s\n", r.RemovedAt, r.Element)
	}
	for _, i := range d.Insertions() {
		fmt.Fprintf(f.Writer, "+ %d: %s\n", i.InsertedAt, i.Element)
	}
}
