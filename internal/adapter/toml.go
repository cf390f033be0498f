package adapter

import (
	"github.com/pelletier/go-toml/v2"

	"kanon/internal/canon"
)

// ParseTOML decodes a TOML document into a canonical value. TOML mappings
// decode through map[string]any, so source order is not observable here —
// which is fine: canonicalization sorts keys anyway.
func ParseTOML(raw []byte) (canon.Value, error) {
	var m map[string]any
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, &canon.Error{Code: canon.ErrInput, Msg: "TOML parse error: " + err.Error()}
	}
	return canon.FromAny(normalizeTOML(m))
}

// normalizeTOML rewrites go-toml's local date/time types to their string
// forms so FromAny sees only the dynamic shapes it supports.
func normalizeTOML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeTOML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeTOML(item)
		}
		return out
	case toml.LocalDate:
		return val.String()
	case toml.LocalTime:
		return val.String()
	case toml.LocalDateTime:
		return val.String()
	default:
		return v
	}
}
