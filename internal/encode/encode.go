package encode

import (
	"bytes"
	"encoding/json"
	"fmt"

	"kanon/internal/canon"
)

// Entries renders v in canonical sequence form: objects as arrays of
// {"k":...,"v":...} pairs, arrays and scalars as plain JSON.
func Entries(v canon.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeEntries(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Object renders v as ordinary JSON with keys in the order v carries them.
func Object(v canon.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ObjectIndent is Object with indentation for human consumption.
func ObjectIndent(v canon.Value, indent string) ([]byte, error) {
	compact, err := Object(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntries(buf *bytes.Buffer, v canon.Value) error {
	switch val := v.(type) {

	case canon.Null:
		buf.WriteString("null")

	case canon.Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case canon.Number:
		buf.WriteString(string(val))

	case canon.String:
		return writeString(buf, string(val))

	case *canon.Object:
		buf.WriteByte('[')
		for i, e := range val.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"k":`)
			if err := writeString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteString(`,"v":`)
			if err := writeEntries(buf, e.Value); err != nil {
				return err
			}
			buf.WriteByte('}')
		}
		buf.WriteByte(']')

	case canon.Array:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeEntries(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		return fmt.Errorf("encode: unsupported value type %T", v)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, v canon.Value) error {
	switch val := v.(type) {

	case canon.Null:
		buf.WriteString("null")

	case canon.Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case canon.Number:
		buf.WriteString(string(val))

	case canon.String:
		return writeString(buf, string(val))

	case *canon.Object:
		buf.WriteByte('{')
		for i, e := range val.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeObject(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case canon.Array:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeObject(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		return fmt.Errorf("encode: unsupported value type %T", v)
	}
	return nil
}

// writeString appends a JSON string without HTML escaping. json.Marshal
// escapes <, > and &, which would make output depend on the escaping
// policy rather than the content.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Drop the trailing newline added by Encode.
	buf.Truncate(buf.Len() - 1)
	return nil
}
