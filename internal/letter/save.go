// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package letter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is used when the output path names a directory.
const DefaultFileName = "存證信函.docx"

// OutputPath resolves where a document for path is written. An empty path,
// an existing directory, or a path ending in a separator gets name appended
// (DefaultFileName when name is empty).
func OutputPath(path, name string) string {
	if name == "" {
		name = DefaultFileName
	}
	if path == "" {
		return name
	}
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return filepath.Join(path, name)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, name)
	}
	return path
}

// Save writes payload to path and returns the path actually written.
func Save(path string, payload []byte) (string, error) {
	return SaveAs(path, DefaultFileName, payload)
}

// SaveAs is Save with a custom file name for directory paths. Parent
// directories are created as needed.
func SaveAs(path, name string, payload []byte) (string, error) {
	out := OutputPath(path, name)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}
