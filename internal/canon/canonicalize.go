package canon

import (
	"sort"
	"strconv"
)

// MaxDepth bounds container nesting during canonicalization. Deep enough
// for any sane configuration document; shallow enough that cyclic values
// fail with ERR_DEPTH instead of exhausting the stack.
const MaxDepth = 512

// Canonicalize rewrites v into canonical form: object entries sorted
// ascending by key (byte-wise UTF-8 comparison) at every nesting level,
// scalars unchanged, array order preserved. The input is not mutated;
// objects and arrays are rebuilt.
func Canonicalize(v Value) (Value, error) {
	return CanonicalizeWithLimit(v, MaxDepth)
}

// CanonicalizeWithLimit is Canonicalize with an explicit depth bound.
func CanonicalizeWithLimit(v Value, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return canonicalize(v, nil, 0, maxDepth)
}

// Depth tracks container nesting: entering an Object or Array checks
// depth+1 against the limit, scalars don't increment.
func canonicalize(v Value, path []string, depth, maxDepth int) (Value, error) {
	switch val := v.(type) {

	case String, Number, Bool, Null:
		return val, nil

	case *Object:
		if depth+1 > maxDepth {
			return nil, newErrAt(ErrDepth, path, "nesting exceeds depth limit")
		}
		entries := make([]Entry, len(val.Entries))
		copy(entries, val.Entries)
		sort.SliceStable(entries, func(i, j int) bool {
			// Go's native string comparison is byte-wise over UTF-8,
			// which is exactly code-point lexicographic order.
			return entries[i].Key < entries[j].Key
		})
		for i := range entries {
			if i > 0 && entries[i].Key == entries[i-1].Key {
				return nil, newErrAt(ErrDupKey, append(path, entries[i].Key), "duplicate key")
			}
			child, err := canonicalize(entries[i].Value, append(path, entries[i].Key), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			entries[i].Value = child
		}
		return &Object{Entries: entries}, nil

	case Array:
		if depth+1 > maxDepth {
			return nil, newErrAt(ErrDepth, path, "nesting exceeds depth limit")
		}
		out := make(Array, len(val))
		for i, item := range val {
			child, err := canonicalize(item, append(path, strconv.Itoa(i)), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil

	case nil:
		return nil, newErrAt(ErrInput, path, "nil value")

	default:
		return nil, newErrAt(ErrInput, path, "unsupported value type")
	}
}
