package adapter

import (
	"bytes"
	"encoding/json"
	"io"

	"kanon/internal/canon"
)

// ParseJSON decodes raw JSON into a canonical value using a token-level
// walk. A plain json.Unmarshal into map[string]any would lose source
// order, collapse duplicate keys silently and reformat numbers; the token
// walk preserves order, rejects duplicates and keeps numeric text intact.
func ParseJSON(raw []byte) (canon.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	val, err := decodeJSONValue(dec, nil, 0)
	if err != nil {
		return nil, err
	}

	// Exactly one root value; anything after it is an error.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &canon.Error{Code: canon.ErrInput, Msg: "trailing content after JSON document"}
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder, path []string, depth int) (canon.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errAt(canon.ErrInput, path, "unexpected end of JSON input")
		}
		return nil, errAt(canon.ErrInput, path, "JSON parse error: "+err.Error())
	}

	switch v := tok.(type) {

	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec, path, depth)
		case '[':
			return decodeJSONArray(dec, path, depth)
		default:
			return nil, errAt(canon.ErrInput, path, "unexpected delimiter")
		}

	case string:
		return canon.String(v), nil
	case bool:
		return canon.Bool(v), nil
	case json.Number:
		return canon.Number(v.String()), nil
	case nil:
		return canon.Null{}, nil

	default:
		return nil, errAt(canon.ErrInput, path, "unexpected JSON token")
	}
}

// The opening '{' has already been consumed.
func decodeJSONObject(dec *json.Decoder, path []string, depth int) (canon.Value, error) {
	if depth+1 > canon.MaxDepth {
		return nil, errAt(canon.ErrDepth, path, "nesting exceeds depth limit")
	}

	entries := make([]canon.Entry, 0, 8)
	seen := make(map[string]bool, 8)

	for dec.More() {
		kTok, err := dec.Token()
		if err != nil {
			return nil, errAt(canon.ErrInput, path, "JSON parse error reading key")
		}
		key, ok := kTok.(string)
		if !ok {
			return nil, errAt(canon.ErrInput, path, "JSON key is not a string")
		}
		if seen[key] {
			return nil, errAt(canon.ErrDupKey, append(path, key), "duplicate key in JSON object")
		}
		seen[key] = true

		val, err := decodeJSONValue(dec, append(path, key), depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, canon.Entry{Key: key, Value: val})
	}

	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, errAt(canon.ErrInput, path, "JSON parse error: missing '}'")
	}
	return &canon.Object{Entries: entries}, nil
}

// The opening '[' has already been consumed.
func decodeJSONArray(dec *json.Decoder, path []string, depth int) (canon.Value, error) {
	if depth+1 > canon.MaxDepth {
		return nil, errAt(canon.ErrDepth, path, "nesting exceeds depth limit")
	}

	arr := make(canon.Array, 0, 8)
	for dec.More() {
		val, err := decodeJSONValue(dec, path, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, errAt(canon.ErrInput, path, "JSON parse error: missing ']'")
	}
	return arr, nil
}

func errAt(code string, path []string, msg string) *canon.Error {
	p := make([]string, len(path))
	copy(p, path)
	return &canon.Error{Code: code, Path: p, Msg: msg}
}
