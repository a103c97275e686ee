package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SchemaExtension is the file extension recognized during directory walks.
const SchemaExtension = ".proto"

// SchemaDir is a directory tree of schema files. It satisfies
// schema.SchemaSource.
type SchemaDir struct {
	root string
}

// NewSchemaDir opens a schema directory. A missing or non-directory path is
// an error; the caller treats it as fatal.
func NewSchemaDir(root string) (*SchemaDir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("schema directory %s does not exist: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema path %s is not a directory", root)
	}
	return &SchemaDir{root: root}, nil
}

// Root returns the directory this source walks.
func (d *SchemaDir) Root() string {
	return d.root
}

// ListSchemaFiles walks the tree and returns every schema file path, in
// lexical walk order.
func (d *SchemaDir) ListSchemaFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), SchemaExtension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema directory %s: %w", d.root, err)
	}
	return files, nil
}

// ReadSchemaFile reads one schema file's text.
func (d *SchemaDir) ReadSchemaFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return string(data), nil
}

// TemplateDir serves template assets from a directory. It satisfies
// docs.TemplateSource; a missing file surfaces as an error so the renderer
// can fall back.
type TemplateDir struct {
	dir string
}

// NewTemplateDir creates a template source over a directory. The directory
// is not required to exist; every lookup simply fails until it does.
func NewTemplateDir(dir string) *TemplateDir {
	return &TemplateDir{dir: dir}
}

// ReadTemplate reads one named template asset.
func (t *TemplateDir) ReadTemplate(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(t.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return string(data), nil
}
