package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestDiscoverTestFilesFindsSuffixedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "arith_test.lev", "{ ok: true }")
	writeTestFile(t, dir, "ignored.lev", "{ ok: true }")

	files, err := DiscoverTestFiles([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "arith_test.lev")
}

func TestRunScoresBoolAndResultFields(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "suite_test.lev", `{ addition: 1 + 1 == 2, bad: 1 + 1 == 3, via_result: Ok(1) }`)

	summary, err := Run(&Config{Patterns: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Errors)
	assert.False(t, summary.Success())
}

func TestRunReportsLoadErrorForNonRecordTopLevel(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "notrecord_test.lev", "1 + 1")

	summary, err := Run(&Config{Patterns: []string{dir}})
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)
	assert.Error(t, summary.Files[0].LoadErr)
}

func TestRunFiltersByRunPattern(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "filtered_test.lev", `{ keep_me: true, drop_me: false }`)

	summary, err := Run(&Config{Patterns: []string{dir}, RunPattern: "^keep"})
	require.NoError(t, err)
	require.Len(t, summary.Files[0].Tests, 1)
	assert.Equal(t, "keep_me", summary.Files[0].Tests[0].Name)
}
