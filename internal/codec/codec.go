package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultName is the codec used for persistence when none is configured.
const DefaultName = "msgpack"

// Codec encodes and decodes a todo mapping.
//
// Decode(Encode(m)) must equal m for every mapping with non-empty, valid UTF-8
// names. Encode rejects any other name. Decode never returns a nil map on success.
type Codec interface {
	Name() string
	Ext() string
	Encode(items map[string]bool) ([]byte, error)
	Decode(data []byte) (map[string]bool, error)
}

// Descriptor identifies a codec and its canonical file extension.
type Descriptor struct {
	Name string `json:"name"`
	Ext  string `json:"ext"`
}

// Describe returns the descriptor of c.
func Describe(c Codec) Descriptor {
	return Descriptor{Name: c.Name(), Ext: c.Ext()}
}

// FileName returns the persisted file name for c, "data.<ext>".
func FileName(c Codec) string {
	return "data." + c.Ext()
}

// Op names the direction of a codec operation.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Error reports a failure inside a codec. It is distinct from I/O errors so
// callers can tell a corrupt file from a missing one.
type Error struct {
	Codec string
	Op    Op
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Codec, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err carries a codec decode failure.
func IsDecodeError(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Op == OpDecode
}

// IsEncodeError reports whether err carries a codec encode failure.
func IsEncodeError(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Op == OpEncode
}

func encodeError(codec string, err error) error {
	return &Error{Codec: codec, Op: OpEncode, Err: err}
}

func decodeError(codec string, err error) error {
	return &Error{Codec: codec, Op: OpDecode, Err: err}
}

// checkNames rejects names that are not valid UTF-8; no format carries them
// unchanged.
func checkNames(items map[string]bool) error {
	for name := range items {
		if !utf8.ValidString(name) {
			return fmt.Errorf("name %q is not valid UTF-8", name)
		}
	}
	return nil
}

// document is the logical shape every codec writes.
type document struct {
	Todos map[string]bool `json:"todos" msgpack:"todos" cbor:"todos" bson:"todos" yaml:"todos" toml:"todos"`
}

func (d document) items() map[string]bool {
	if d.Todos == nil {
		return map[string]bool{}
	}
	return d.Todos
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
