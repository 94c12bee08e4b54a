package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestConfig writes a config pointing at a database in a temporary
// directory and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config := DefaultConfig()
	config.DatabasePath = filepath.Join(dir, "data", "test.db")
	config.LogLevel = "error"

	data, err := json.Marshal(config)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeCorpus(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

// runCLI runs the command with the given stdin and returns the exit code and outputs.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunGenerateFromFile(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "a b a c a b")

	code, stdout, stderr := runCLI(t, "", "-config", config, "generate", "-file", file, "-order", "1", "-length", "6", "-seed", "a")
	require.Equal(t, exitOK, code, stderr)

	tokens := strings.Fields(stdout)
	require.Len(t, tokens, 6)
	require.Equal(t, "a", tokens[0])
	for _, tok := range tokens {
		require.Contains(t, []string{"a", "b", "c"}, tok)
	}
}

func TestRunGenerateSeedOnly(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "x y x y z")

	code, stdout, stderr := runCLI(t, "", "-config", config, "generate", "-file", file, "-order", "2", "-length", "2", "-seed", "x y")
	require.Equal(t, exitOK, code, stderr)
	require.Equal(t, "x y\n", stdout)
}

func TestRunGenerateReproducible(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "the quick brown fox jumps over the lazy dog and the quick red fox naps under the lazy cat")

	args := []string{"-config", config, "generate", "-file", file, "-length", "30", "-rand-seed", "7"}
	code, first, stderr := runCLI(t, "", args...)
	require.Equal(t, exitOK, code, stderr)
	code, second, stderr := runCLI(t, "", args...)
	require.Equal(t, exitOK, code, stderr)
	require.Equal(t, first, second)
}

func TestRunGenerateFromStdin(t *testing.T) {
	config := setupTestConfig(t)

	code, stdout, stderr := runCLI(t, "a b a c a b", "-config", config, "generate", "-order", "1", "-length", "1", "-seed", "c")
	require.Equal(t, exitOK, code, stderr)
	require.Equal(t, "c\n", stdout)
}

func TestRunGenerateErrors(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "a b a c a b")

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "Unknown seed", args: []string{"generate", "-file", file, "-order", "1", "-seed", "z"}, code: exitError},
		{name: "Seed arity", args: []string{"generate", "-file", file, "-order", "2", "-seed", "a"}, code: exitError},
		{name: "Invalid order", args: []string{"generate", "-file", file, "-order", "0"}, code: exitError},
		{name: "Corpus too small", args: []string{"generate", "-file", file, "-order", "9"}, code: exitError},
		{name: "Missing file", args: []string{"generate", "-file", file + ".missing"}, code: exitError},
		{name: "Conflicting sources", args: []string{"generate", "-file", file, "-corpus", "x"}, code: exitUsage},
		{name: "Bad flag", args: []string{"generate", "-bogus"}, code: exitUsage},
		{name: "Unknown command", args: []string{"frobnicate"}, code: exitUsage},
		{name: "No command", args: []string{}, code: exitUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "", append([]string{"-config", config}, tc.args...)...)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestRunCorpusLifecycle(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "one fish two fish red fish blue fish")

	code, stdout, stderr := runCLI(t, "", "-config", config, "corpus", "add", "fish", file)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "stored fish: 8 tokens")

	code, stdout, stderr = runCLI(t, "red fish", "-config", config, "corpus", "add", "short", "-")
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "stored short: 2 tokens")

	code, stdout, stderr = runCLI(t, "", "-config", config, "corpus", "list")
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "fish")
	require.Contains(t, stdout, "short")

	code, stdout, stderr = runCLI(t, "", "-config", config, "generate", "-corpus", "fish", "-order", "1", "-seed", "red", "-length", "3")
	require.Equal(t, exitOK, code, stderr)
	require.Equal(t, "red fish", strings.Join(strings.Fields(stdout)[:2], " "))

	code, _, stderr = runCLI(t, "", "-config", config, "corpus", "rm", "fish")
	require.Equal(t, exitOK, code, stderr)

	code, _, _ = runCLI(t, "", "-config", config, "generate", "-corpus", "fish")
	require.Equal(t, exitError, code)

	code, _, _ = runCLI(t, "", "-config", config, "corpus", "rm", "fish")
	require.Equal(t, exitError, code)

	code, _, _ = runCLI(t, "", "-config", config, "corpus", "add", "only-name")
	require.Equal(t, exitUsage, code)
}

func TestRunStats(t *testing.T) {
	config := setupTestConfig(t)
	file := writeCorpus(t, "a b a c a b")

	code, stdout, stderr := runCLI(t, "", "-config", config, "stats", "-file", file, "-order", "1")
	require.Equal(t, exitOK, code, stderr)
	require.Regexp(t, `states\s+3`, stdout)
	require.Regexp(t, `transitions\s+5`, stdout)
	require.Regexp(t, `max_branching\s+2`, stdout)
}

func TestRunVersion(t *testing.T) {
	config := setupTestConfig(t)
	code, stdout, _ := runCLI(t, "", "-config", config, "version")
	require.Equal(t, exitOK, code)
	require.True(t, strings.HasPrefix(stdout, "markovtext "+Version))
}

func TestRunNullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	code, stdout, stderr := runCLI(t, "", "-config", path, "version")
	require.Equal(t, exitOK, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "markovtext "))
}
