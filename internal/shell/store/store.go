package store

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/margey/composify/internal/core/compose"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Document Load/Save
// =============================================================================

// Load reads a YAML file into a comment-preserving document tree.
// A missing file fails with ErrNotFound; an empty file yields an empty
// document. Key order, list order and comments survive a Load/Save round
// trip untouched by any mutator.
func Load(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStoreError("Load", path, "compose file not found", ErrNotFound)
		}
		return nil, NewStoreError("Load", path, err.Error(), err)
	}
	return parse(path, data)
}

// LoadOrEmpty reads a YAML file like Load, but a missing file yields an
// empty document instead of an error. Used for files that are created on
// first write, such as the main compose file.
func LoadOrEmpty(path string) (*yaml.Node, error) {
	doc, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return compose.NewDocument(), nil
	}
	return doc, err
}

func parse(path string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewStoreError("Load", path, err.Error(), ErrInvalidYAML)
	}
	if doc.Kind == 0 {
		// Empty file.
		return compose.NewDocument(), nil
	}
	return &doc, nil
}

// Save serializes a document with 2-space indentation and writes the whole
// file, creating parent directories when missing. Nothing is written until
// the document is fully encoded in memory.
func Save(path string, doc *yaml.Node) error {
	text, err := Dump(doc)
	if err != nil {
		return NewStoreError("Save", path, err.Error(), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewStoreError("Save", path, err.Error(), err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return NewStoreError("Save", path, err.Error(), err)
	}
	return nil
}

// Dump serializes a document to YAML text with 2-space indentation.
func Dump(doc *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// =============================================================================
// Stack File Listing
// =============================================================================

// ListStackFiles returns every *.yml file under root, sorted, as paths
// relative to root. A missing root yields an empty list.
func ListStackFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".yml") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, NewStoreError("ListStackFiles", root, err.Error(), err)
	}
	sort.Strings(files)
	return files, nil
}
