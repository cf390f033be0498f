// Package canon implements the deterministic key sorter at the heart of kanon.
//
// A document is modeled as a tagged value tree: scalars (String, Number,
// Bool, Null), ordered Objects, and Arrays. Canonicalize rewrites any value
// into its canonical form: at every object level, entries are sorted
// ascending by key using code-point (byte-wise UTF-8) comparison, nested
// objects are canonicalized recursively, and scalars pass through unchanged.
// Two documents that are equal as mappings — regardless of original key
// order at any nesting level — canonicalize to deeply equal values, and
// therefore to byte-identical encoded output. This enables:
//   - Content digests that are independent of source key order
//   - Reliable caching with content-based keys
//   - Snapshot comparison of documents from different producers
//
// # Sequence policy
//
// Arrays are never treated as index-keyed mappings. Element order is
// meaningful and preserved; elements are canonicalized recursively.
//
// # Safety
//
// Canonicalization is pure: inputs are never mutated and every call is
// independent. Nesting beyond MaxDepth fails with ERR_DEPTH, which also
// bounds cyclic values handed in through FromAny.
package canon
