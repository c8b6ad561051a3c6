package codec

import (
	"github.com/fxamacker/cbor/v2"
)

var cborEncMode = mustCBOREncMode()

func mustCBOREncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// CBOR writes canonical CBOR: definite lengths and sorted map keys.
type CBOR struct{}

func (CBOR) Name() string { return "cbor" }
func (CBOR) Ext() string  { return "cbor" }

func (c CBOR) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	data, err := cborEncMode.Marshal(document{Todos: items})
	if err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return data, nil
}

func (c CBOR) Decode(data []byte) (map[string]bool, error) {
	var doc document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
