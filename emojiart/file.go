package emojiart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileExtension is appended to document names that lack one.
const FileExtension = ".emojiart"

// Encode writes m in the document file format.
func Encode(w io.Writer, m *Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Decode reads a document from r.
func Decode(r io.Reader) (*Model, error) {
	m := NewModel()
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

// ReadFile loads a document from disk.
func ReadFile(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

// WriteFile saves a document, replacing filename atomically.
func WriteFile(filename string, m *Model) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, m); err != nil {
		tmp.Close()
		return fmt.Errorf("encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
