package canon

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// FromAny converts a dynamic Go value (the shape produced by encoding/json,
// TOML and YAML decoders: map[string]any, []any, scalars) into the canonical
// model. Map iteration order is randomized in Go, so object entries are
// emitted in sorted key order directly.
//
// Unsupported kinds (func, chan, arbitrary structs) fail fast with ERR_INPUT
// naming the key path of the offending value.
func FromAny(v any) (Value, error) {
	return fromAny(v, nil, 0)
}

func fromAny(v any, path []string, depth int) (Value, error) {
	if depth+1 > MaxDepth {
		return nil, newErrAt(ErrDepth, path, "nesting exceeds depth limit")
	}

	switch val := v.(type) {

	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil

	case json.Number:
		return Number(val.String()), nil
	case int:
		return Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return Number(strconv.FormatInt(val, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(val, 10)), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, newErrAt(ErrInput, path, "non-finite number")
		}
		return Number(formatFloat(val)), nil

	case time.Time:
		// TOML datetimes decode to time.Time; carry them as RFC 3339 text.
		return String(val.Format(time.RFC3339)), nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(val))
		for _, k := range keys {
			child, err := fromAny(val[k], append(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: k, Value: child})
		}
		return &Object{Entries: entries}, nil

	case []any:
		out := make(Array, len(val))
		for i, item := range val {
			child, err := fromAny(item, append(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil

	case Value:
		return val, nil

	default:
		return nil, newErrAt(ErrInput, path, fmt.Sprintf("unsupported type %T", v))
	}
}

// formatFloat renders a finite float the way encoding/json does, so a
// round trip through map[string]any never changes the representation.
func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
