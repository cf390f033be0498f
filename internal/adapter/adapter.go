// Package adapter parses JSON, YAML and TOML documents into the canonical
// value model, preserving source key order and numeric text so that
// canonicalization — not parsing — decides the final ordering.
package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"kanon/internal/canon"
)

// Format identifies a supported input syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// MaxDocumentBytes bounds input size before any parsing happens.
const MaxDocumentBytes = 32 << 20 // 32 MiB

// DetectFormat maps a file extension to its Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("adapter: unsupported file extension %q", filepath.Ext(path))
	}
}

// Supported reports whether path has a recognized extension.
func Supported(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// Parse decodes data in the given format into a canonical value, using
// the default size limit. The result preserves source order; run
// canon.Canonicalize on it.
func Parse(data []byte, format Format) (canon.Value, error) {
	return ParseLimited(data, format, MaxDocumentBytes)
}

// ParseLimited is Parse with an explicit size bound. maxBytes <= 0 falls
// back to MaxDocumentBytes.
func ParseLimited(data []byte, format Format, maxBytes int) (canon.Value, error) {
	if maxBytes <= 0 {
		maxBytes = MaxDocumentBytes
	}
	if len(data) > maxBytes {
		return nil, &canon.Error{Code: canon.ErrInput, Msg: "document exceeds size limit"}
	}
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatTOML:
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("adapter: unknown format %q", format)
	}
}
