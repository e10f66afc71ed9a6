// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package letter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/squarer/letter-generator/internal/schemas"
	"github.com/squarer/letter-generator/pkg/types"
)

// Format is the encoding of a letter file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported letter file %s: expected .yaml, .yml, or .json", path)
}

// Load reads and validates a letter file.
func Load(path string) (types.LetterData, error) {
	format, err := FormatOf(path)
	if err != nil {
		return types.LetterData{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LetterData{}, fmt.Errorf("reading letter: %w", err)
	}
	letter, err := Decode(data, format)
	if err != nil {
		return types.LetterData{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return letter, nil
}

// Read decodes a YAML (or JSON, which YAML accepts) letter from r.
func Read(r io.Reader) (types.LetterData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.LetterData{}, fmt.Errorf("reading letter: %w", err)
	}
	return Decode(data, FormatYAML)
}

// Decode checks data against the letter schema and decodes it.
func Decode(data []byte, format Format) (types.LetterData, error) {
	var letter types.LetterData
	switch format {
	case FormatJSON:
		if err := schemas.ValidateLetterJSON(data); err != nil {
			return letter, err
		}
		if err := json.Unmarshal(data, &letter); err != nil {
			return letter, fmt.Errorf("parsing letter JSON: %w", err)
		}
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return letter, fmt.Errorf("parsing letter YAML: %w", err)
		}
		if err := schemas.ValidateLetter(doc); err != nil {
			return letter, err
		}
		if err := yaml.Unmarshal(data, &letter); err != nil {
			return letter, fmt.Errorf("parsing letter YAML: %w", err)
		}
	default:
		return letter, fmt.Errorf("unsupported letter format %q", format)
	}
	if letter.CCRecipients == nil {
		letter.CCRecipients = []types.Party{}
	}
	return letter, nil
}

// Encode writes a letter in the given format.
func Encode(w io.Writer, letter types.LetterData, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(letter)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(letter); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported letter format %q", format)
}
