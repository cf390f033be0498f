package encode

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"kanon/internal/canon"
)

var cborMode cbor.EncMode

func init() {
	// RFC 8949 canonical rules: sorted map keys, shortest-form integers.
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborMode = mode
}

// CBOR renders v as RFC 8949 canonical CBOR.
func CBOR(v canon.Value) ([]byte, error) {
	plain, err := toPlain(v)
	if err != nil {
		return nil, err
	}
	out, err := cborMode.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("encode: cbor marshal: %w", err)
	}
	return out, nil
}

// toPlain lowers a canonical value to the dynamic shape the CBOR encoder
// understands. Key order is irrelevant here; canonical CBOR sorts keys by
// its own rules.
func toPlain(v canon.Value) (any, error) {
	switch val := v.(type) {
	case canon.Null:
		return nil, nil
	case canon.Bool:
		return bool(val), nil
	case canon.String:
		return string(val), nil
	case canon.Number:
		if i, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(string(val), 10, 64); err == nil {
			return u, nil
		}
		// Integers past uint64 become CBOR bignums rather than lossy floats.
		if bi, ok := new(big.Int).SetString(string(val), 10); ok {
			return bi, nil
		}
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return nil, fmt.Errorf("encode: bad number token %q: %w", string(val), err)
		}
		return f, nil
	case *canon.Object:
		m := make(map[string]any, len(val.Entries))
		for _, e := range val.Entries {
			p, err := toPlain(e.Value)
			if err != nil {
				return nil, err
			}
			m[e.Key] = p
		}
		return m, nil
	case canon.Array:
		s := make([]any, len(val))
		for i, item := range val {
			p, err := toPlain(item)
			if err != nil {
				return nil, err
			}
			s[i] = p
		}
		return s, nil
	default:
		return nil, fmt.Errorf("encode: unsupported value type %T", v)
	}
}
