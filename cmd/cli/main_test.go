package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROJECTS_FILE", "")
	t.Setenv("DEFAULT_USER_ID", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFloats(t *testing.T) {
	values, err := parseFloats([]string{"1", " 2.5 ", "", "-3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, values)

	_, err = parseFloats([]string{"1", "abc"})
	assert.EqualError(t, err, `invalid number "abc"`)
}

func TestSampleThenAnalyze(t *testing.T) {
	dir := t.TempDir()
	portfolio := filepath.Join(dir, "projects.csv")
	export := filepath.Join(dir, "report.md")

	out, err := execute(t, "sample", "--out", portfolio)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 5 projects")

	out, err = execute(t, "analyze", "--input", portfolio, "--name", "Q2", "--metrics", "actualCost", "--out", export)
	require.NoError(t, err)
	assert.Contains(t, out, "Q2: 5 projects (Agile 2, Waterfall 2, Hybrid 1)")
	assert.Contains(t, out, "Waterfall methodology shows lower average costs ($145,000 vs $188,500)")

	content, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Q2"))
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := execute(t, "analyze")
	assert.ErrorContains(t, err, "no input file")

	dir := t.TempDir()
	portfolio := filepath.Join(dir, "projects.xlsx")
	_, err = execute(t, "sample", "--out", portfolio)
	require.NoError(t, err)

	_, err = execute(t, "analyze", "--input", portfolio, "--out", filepath.Join(dir, "report.pdf"))
	assert.ErrorContains(t, err, "unsupported export extension")

	_, err = execute(t, "analyze", "--input", portfolio, "--test", "anova")
	assert.ErrorContains(t, err, "unknown statistical test")
}

func TestSample_Generated(t *testing.T) {
	portfolio := filepath.Join(t.TempDir(), "generated.xlsx")
	out, err := execute(t, "sample", "--out", portfolio, "--generate", "12", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 12 projects")

	out, err = execute(t, "dashboard", "--input", portfolio)
	require.NoError(t, err)
	assert.Contains(t, out, "12")
}

func TestCompareAndSummarize(t *testing.T) {
	out, err := execute(t, "compare", "--a", "235000,142000", "--b", "195000,95000")
	require.NoError(t, err)
	assert.Contains(t, out, "43500.00")

	_, err = execute(t, "compare", "--a", "1,2", "--b", "3,x")
	assert.ErrorContains(t, err, "--b")

	out, err = execute(t, "summarize", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "2.50")
}
