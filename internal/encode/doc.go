// Package encode renders canonical values into deterministic byte forms.
//
// Identical canonical values always produce byte-identical output. Four
// forms are supported:
//
//   - Entries: the canonical sequence form. An object becomes an array of
//     {"k":key,"v":value} pairs in sorted key order, nested objects become
//     nested entry arrays, scalars pass through. This form makes the
//     ordering explicit and survives consumers that reorder object keys.
//   - Object: ordinary JSON object syntax with keys in canonical order.
//   - JCS: RFC 8785 canonicalization of the object form, for
//     interoperability with other JCS producers.
//   - CBOR: RFC 8949 canonical CBOR, for compact binary interchange.
//
// # Encoding rules
//
//  1. Object keys appear in the order the canonical value carries them.
//     Callers are expected to canonicalize first; Entries and Object do
//     not re-sort.
//  2. Numbers are written as their preserved decimal text, never
//     reformatted.
//  3. No HTML escaping, no trailing newline, no insignificant whitespace.
package encode
