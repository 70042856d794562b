package config

import (
	"os"
	"path/filepath"
	"testing"

	"filemanip/transformations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
contexts: [dev, ci]
executions:
  - name: people
    input: data/people.tsv
    commands: ["1:u", {field: 0, type: U}]
    contexts:
      include: [dev]
    output:
      name: people-upper.tsv
      directory: out
  - name: codes
    input: data/codes.tsv
    commands:
      - field: 2
        type: R
        from: a
        to: b
    contexts:
      exclude: [ci]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	file, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "ci"}, file.Contexts)
	assert.Equal(t, []string{"people", "codes"}, file.Names())

	people := file.Executions[0]
	assert.Equal(t, []transformations.Config{
		{Field: 1, Type: transformations.TypeLowerCase},
		{Field: 0, Type: transformations.TypeUpperCase},
	}, people.Commands)
	assert.Equal(t, filepath.Join("out", "people-upper.tsv"), people.OutputPath())

	codes := file.Executions[1]
	assert.Equal(t, filepath.Join(DefaultOutputDirectory, "codes.tsv"), codes.OutputPath())

	commands, err := codes.Transformations()
	require.NoError(t, err)
	assert.Equal(t, []transformations.Transformation{
		transformations.Replace{Field: 2, From: 'a', To: 'b'},
	}, commands)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"no executions":  "contexts: [dev]\n",
		"missing name":   "executions:\n  - input: a.tsv\n",
		"missing input":  "executions:\n  - name: a\n",
		"duplicate name": "executions:\n  - {name: a, input: a.tsv}\n  - {name: a, input: b.tsv}\n",
		"bad command":    "executions:\n  - {name: a, input: a.tsv, commands: [\"1:XYZ\"]}\n",
		"invalid yaml":   "executions: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	file, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	found, err := file.Find([]string{"codes", "people"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "codes", found[0].Name)

	_, err = file.Find([]string{"nope"})
	require.Error(t, err)
}

func TestShouldRun(t *testing.T) {
	exec := Execution{Contexts: Contexts{Include: []string{"dev"}, Exclude: []string{"ci"}}}

	assert.True(t, exec.ShouldRun(nil))
	assert.True(t, exec.ShouldRun([]string{"dev"}))
	assert.False(t, exec.ShouldRun([]string{"prod"}))
	assert.False(t, exec.ShouldRun([]string{"dev", "ci"}))

	open := Execution{}
	assert.True(t, open.ShouldRun([]string{"anything"}))
}

func TestTransformationsReportsExecution(t *testing.T) {
	exec := Execution{Name: "broken", Commands: []transformations.Config{{Field: 0, Type: "x"}}}
	_, err := exec.Transformations()
	require.ErrorIs(t, err, transformations.ErrMalformedCommand)
	assert.Contains(t, err.Error(), `"broken"`)
}
