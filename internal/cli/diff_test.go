package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDiffCommandMissingArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDiffCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"only-one"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}

func TestDiffCommandIdenticalFiles(t *testing.T) {
	a := writeTempFile(t, "a.txt", "one\ntwo\nthree\n")
	b := writeTempFile(t, "b.txt", "one\ntwo\nthree\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDiffCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{a, b})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "files are identical")
}

func TestDiffCommandDifferingFiles(t *testing.T) {
	a := writeTempFile(t, "a.txt", "one\ntwo\nthree\n")
	b := writeTempFile(t, "b.txt", "one\nTWO\nthree\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDiffCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{a, b})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "- 1: two")
	assert.Contains(t, output, "+ 1: TWO")
}

func TestDiffCommandJSON(t *testing.T) {
	a := writeTempFile(t, "a.txt", "x\ny\n")
	b := writeTempFile(t, "b.txt", "x\nz\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDiffCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{a, b})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result DiffResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.False(t, result.Identical)
	require.Len(t, result.Removals, 1)
	assert.Equal(t, DiffLine{At: 1, Line: "y"}, result.Removals[0])
	require.Len(t, result.Insertions, 1)
	assert.Equal(t, DiffLine{At: 1, Line: "z"}, result.Insertions[0])
}

func TestDiffCommandNormalize(t *testing.T) {
	// NFC-composed vs decomposed forms of the same text.
	a := writeTempFile(t, "a.txt", "caf\u00e9\n")
	b := writeTempFile(t, "b.txt", "cafe\u0301\n")

	t.Run("without normalize", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cmd := NewDiffCommand(&RootOptions{Format: "text"})
		cmd.SetOut(buf)
		cmd.SetArgs([]string{a, b})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})

	t.Run("with normalize", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cmd := NewDiffCommand(&RootOptions{Format: "text"})
		cmd.SetOut(buf)
		cmd.SetArgs([]string{a, b, "--normalize"})

		err := cmd.Execute()
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "files are identical")
	})
}

func TestDiffCommandMissingFile(t *testing.T) {
	a := writeTempFile(t, "a.txt", "x\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDiffCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{a, "/nonexistent/b.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E_READ")
}

func TestReadLinesTrailingNewline(t *testing.T) {
	path := writeTempFile(t, "a.txt", "a\nb\n")
	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	path = writeTempFile(t, "b.txt", "a\nb")
	lines, err = readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	path = writeTempFile(t, "empty.txt", "")
	lines, err = readLines(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
