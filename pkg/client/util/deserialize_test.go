package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineDoc struct {
	Name        string `json:"name"`
	Query       string `json:"query"`
	Parallelism uint64 `json:"parallelism,omitempty"`
}

func TestBindJsonOrYaml_Yaml(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", "name: orders\nquery: |\n  SELECT *\n  FROM orders\nparallelism: 8\n")

	var doc pipelineDoc
	require.NoError(t, BindJsonOrYaml(path, &doc))
	assert.Equal(t, pipelineDoc{Name: "orders", Query: "SELECT *\nFROM orders\n", Parallelism: 8}, doc)
}

func TestBindJsonOrYaml_Json(t *testing.T) {
	path := writeFile(t, "pipeline.json", `{"name": "orders", "query": "SELECT 1"}`)

	var doc pipelineDoc
	require.NoError(t, BindJsonOrYaml(path, &doc))
	assert.Equal(t, pipelineDoc{Name: "orders", Query: "SELECT 1"}, doc)
}

func TestBindJsonOrYaml_UnknownField(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", "name: orders\nqueyr: SELECT 1\n")

	var doc pipelineDoc
	assert.Error(t, BindJsonOrYaml(path, &doc))
}

func TestBindJsonOrYaml_MissingFile(t *testing.T) {
	var doc pipelineDoc
	assert.Error(t, BindJsonOrYaml(filepath.Join(t.TempDir(), "missing.yaml"), &doc))
}

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
