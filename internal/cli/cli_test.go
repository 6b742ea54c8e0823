package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/schema"
)

// runCommand executes the root command with args and captured output.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const originalJSON = `{"blocks":[{"t":"Paragraph","src":{"offset":0,"line":1},"inlines":[{"t":"Text","text":"alpha"}]},{"t":"Paragraph","src":{"offset":7,"line":3},"inlines":[{"t":"Text","text":"beta"}]}]}`
const executedJSON = `{"blocks":[{"t":"Paragraph","inlines":[{"t":"Text","text":"beta"}]},{"t":"Paragraph","inlines":[{"t":"Text","text":"alpha"}]}]}`

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "# Title\n\nBody text.\n")
	out := filepath.Join(dir, "doc.json")

	_, _, err := runCommand(t, "parse", md, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, schema.ValidateDocument(data), "parse output must satisfy the schema")

	doc, err := doctree.UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, doctree.KindHeading, doc.Blocks[0].NodeKind())
}

func TestParseCommandMissingFile(t *testing.T) {
	_, _, err := runCommand(t, "parse", "no-such-file.md")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", originalJSON)
	bad := writeFile(t, dir, "bad.json", `{"blocks":[{"t":"Mystery"}]}`)

	_, _, err := runCommand(t, "validate", good)
	assert.NoError(t, err)

	_, _, err = runCommand(t, "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestComputeCommand(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig.json", originalJSON)
	exec := writeFile(t, dir, "exec.json", executedJSON)
	out := filepath.Join(dir, "plan.json")

	_, _, err := runCommand(t, "compute", orig, exec, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	p, err := plan.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, plan.Stats{Kept: 2}, p.Stats, "swap aligns both paragraphs by content")
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig.json", originalJSON)
	exec := writeFile(t, dir, "exec.json", executedJSON)
	planPath := filepath.Join(dir, "plan.json")
	merged := filepath.Join(dir, "merged.json")

	_, _, err := runCommand(t, "compute", orig, exec, "-o", planPath)
	require.NoError(t, err)
	_, _, err = runCommand(t, "apply", orig, exec, planPath, "-o", merged)
	require.NoError(t, err)

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	doc, err := doctree.UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)

	// Reordered paragraphs keep their original provenance.
	assert.JSONEq(t, `{"offset":7,"line":3}`, string(doc.Blocks[0].Source()))
	assert.JSONEq(t, `{"offset":0,"line":1}`, string(doc.Blocks[1].Source()))
}

func TestReconcileCommandWithArchive(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig.json", originalJSON)
	exec := writeFile(t, dir, "exec.json", executedJSON)
	merged := filepath.Join(dir, "merged.json")
	db := filepath.Join(dir, "runs.db")

	_, _, err := runCommand(t, "reconcile", orig, exec,
		"-o", merged, "--archive", db, "--label", "ci")
	require.NoError(t, err)

	_, err = os.Stat(merged)
	require.NoError(t, err)

	stdout, _, err := runCommand(t, "--format", "json", "runs", "list", "--db", db)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	list, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var runs []runSummary
	require.NoError(t, json.Unmarshal(list, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "ci", runs[0].Label)
	assert.Equal(t, plan.Stats{Kept: 2}, runs[0].Stats)
}

func TestRunsShowUnknownID(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	_, _, err := runCommand(t, "runs", "show", "missing", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	_, _, err := runCommand(t, "--format", "xml", "validate", "x.json")
	assert.Error(t, err)
}

func TestReconcileAcceptsMarkdownInputs(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig.md", "# Title\n\nStable paragraph.\n")
	exec := writeFile(t, dir, "exec.md", "# Title\n\nStable paragraph.\n\nAppended output.\n")
	merged := filepath.Join(dir, "merged.json")

	_, _, err := runCommand(t, "reconcile", orig, exec, "-o", merged)
	require.NoError(t, err)

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	doc, err := doctree.UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Len(t, doc.Blocks, 3)
}
