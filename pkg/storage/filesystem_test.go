package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewSchemaDirMissing(t *testing.T) {
	_, err := NewSchemaDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestNewSchemaDirNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.proto")
	writeFile(t, path, "package x;")

	_, err := NewSchemaDir(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestListSchemaFilesWalksRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.proto"), "package a;")
	writeFile(t, filepath.Join(root, "sub", "b.proto"), "package b;")
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "ignore me")
	writeFile(t, filepath.Join(root, "README.md"), "ignore me too")

	dir, err := NewSchemaDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, dir.Root())

	files, err := dir.ListSchemaFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.proto"),
		filepath.Join(root, "sub", "b.proto"),
	}, files)
}

func TestReadSchemaFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.proto")
	writeFile(t, path, "package a.v1;")

	dir, err := NewSchemaDir(root)
	require.NoError(t, err)

	content, err := dir.ReadSchemaFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package a.v1;", content)

	_, err = dir.ReadSchemaFile(filepath.Join(root, "missing.proto"))
	assert.Error(t, err)
}

func TestTemplateDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "html_head.html"), "<html>{title}")

	templates := NewTemplateDir(root)

	content, err := templates.ReadTemplate("html_head.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>{title}", content)

	_, err = templates.ReadTemplate("scripts.js")
	assert.Error(t, err)
}
