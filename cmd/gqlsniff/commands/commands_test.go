/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: commands_test.go
Description: Tests for the gqlsniff command tree. Runs the infer and version commands
against temporary capture files and checks the written schema and console output.
*/

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCapture = `{"query":"query Viewer($id: ID) { user(id: $id) { name } }","variables":{"id":"u1"}}
not json
{"operationName":"NoQuery"}
`

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var stdout bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.Execute()
	return stdout.String(), err
}

func writeCapture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInferWritesSchemaFile(t *testing.T) {
	capturePath := writeCapture(t, sampleCapture)
	output := filepath.Join(t.TempDir(), "schema.graphql")

	stdout, err := execute(t, "", "infer", capturePath, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Operation type: query")
	assert.Contains(t, stdout, "Operation name: Viewer")
	assert.Contains(t, stdout, "Field: user | Arguments: id: u1")
	assert.Contains(t, stdout, "1 operations from 1 records, 2 lines skipped")

	schema, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(schema), "type Query {\n  user(id: String): User\n}")
	assert.Contains(t, string(schema), "type User {\n  name: String\n}")
}

func TestInferUsesCaptureFileFlag(t *testing.T) {
	capturePath := writeCapture(t, sampleCapture)
	output := filepath.Join(t.TempDir(), "schema.graphql")

	_, err := execute(t, "", "infer", "--capture-file", capturePath, "--output", output, "--quiet")
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestInferToStdoutKeepsSchemaClean(t *testing.T) {
	capturePath := writeCapture(t, sampleCapture)

	stdout, err := execute(t, "", "infer", capturePath, "--output", "-", "--quiet")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# Schema inferred"))
	assert.NotContains(t, stdout, "Operation type:")
	assert.Contains(t, stdout, "type Query {")
}

func TestQuietSuppressesTrace(t *testing.T) {
	capturePath := writeCapture(t, sampleCapture)
	output := filepath.Join(t.TempDir(), "schema.graphql")

	stdout, err := execute(t, "", "infer", capturePath, "--output", output, "-q")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestInferWritesRunReport(t *testing.T) {
	capturePath := writeCapture(t, sampleCapture)
	reportDir := filepath.Join(t.TempDir(), "reports")

	_, err := execute(t, "", "infer", capturePath,
		"--output", filepath.Join(t.TempDir(), "schema.graphql"),
		"--report-dir", reportDir, "--quiet")
	require.NoError(t, err)

	reports, err := filepath.Glob(filepath.Join(reportDir, "*.json"))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"operations": 1`)
	assert.Contains(t, string(data), `"capture_file": "`+capturePath+`"`)
}

func TestInferMissingCaptureFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := execute(t, "", "infer", missing, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture file not available")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gqlsniff "+Version+"\n", stdout)
}

func TestPromptLine(t *testing.T) {
	var w bytes.Buffer
	answer, err := promptLine(&w, strings.NewReader("  example.com \n"), "Enter domain to capture: ")
	require.NoError(t, err)
	assert.Equal(t, "example.com", answer)
	assert.Equal(t, "Enter domain to capture: ", w.String())

	_, err = promptLine(&w, strings.NewReader(""), "again: ")
	assert.Error(t, err)
}

func TestCaptureRequiresDomain(t *testing.T) {
	_, err := execute(t, "\n", "capture", "--capture-file", filepath.Join(t.TempDir(), "q.json"), "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a target domain is required")
}
