// Package key provides the canonical encoding used as the identity of a
// done-marker key.
//
// A key is an arbitrary JSON-representable value (strings, integers,
// booleans, arrays, string-keyed objects). Two keys are equivalent iff their
// canonical encodings are byte-equal, so the encoding must be deterministic:
//
//   - Object keys sorted by UTF-16 code units (RFC 8785 ordering)
//   - Strings NFC normalized at the serialization boundary
//   - No HTML escaping (< > & are written literally)
//   - Floats and nulls rejected (their textual forms are not stable
//     identities)
//
// Both backing stores rely on this property: the relational store's UNIQUE
// constraint and the log store's line matching compare encoded forms only.
package key
