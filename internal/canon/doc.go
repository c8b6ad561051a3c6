// Package canon provides the canonical text form of a todo snapshot.
//
// Canonical JSON (RFC 8785) is used in two places:
//   - the "json" codec, so the same store always encodes to the same bytes
//   - content fingerprints, which identify a store snapshot independent of
//     the codec it travelled through
//
// Key constraints:
//   - Object keys are ordered by UTF-16 code units, not UTF-8 bytes
//   - Strings are NFC normalized and never HTML escaped
//   - Floats and null are rejected
//
// canon imports nothing internal.
package canon
