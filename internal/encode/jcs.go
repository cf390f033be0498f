package encode

import (
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"kanon/internal/canon"
)

// JCS renders v as RFC 8785 canonical JSON. The value is written in object
// form first, then passed through the JCS transform, which applies the
// RFC's number serialization on top of our key ordering.
func JCS(v canon.Value) ([]byte, error) {
	raw, err := Object(v)
	if err != nil {
		return nil, err
	}
	return JCSRaw(raw)
}

// JCSRaw applies RFC 8785 canonicalization to raw JSON bytes.
func JCSRaw(raw []byte) ([]byte, error) {
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("encode: jcs transform: %w", err)
	}
	return out, nil
}
