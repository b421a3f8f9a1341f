// Package document handles procurement notice ingestion: upload lifecycle
// and plain-text extraction. The rest of the system only ever sees the
// extracted text.
package document

import (
	"fmt"
	"os"
	"path/filepath"
)

// TextExtractor produces the plain text of a notice document on disk.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// SaveUpload writes uploaded file content to a temp file and returns its
// path. The caller owns the file and must Cleanup it when done.
func SaveUpload(content []byte, filename string) (string, error) {
	f, err := os.CreateTemp("", "notice-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// Cleanup removes a temp file, tolerating an already-removed path.
func Cleanup(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
