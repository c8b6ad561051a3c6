// Package codec turns a todo mapping (name -> done) into bytes and back.
//
// Every codec encodes the same logical document, a single "todos" member
// holding the mapping, so any codec can recreate a store written by itself.
// Codecs are stateless and safe for concurrent use.
//
// The built-in set is:
//
//	json         canonical JSON (RFC 8785 key order, NFC strings)
//	msgpack      MessagePack with sorted map keys
//	cbor         CBOR in canonical (RFC 7049 core deterministic) mode
//	bson         BSON document with an embedded sub-document
//	flatbuffers  FlatBuffers table with a vector of item tables
//	yaml         YAML 1.2 block mapping
//	toml         TOML with a [todos] table
//	cue          CUE struct literal
//
// New encodings are added by registering another Codec with a Registry.
package codec
