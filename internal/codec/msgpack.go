package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack writes MessagePack with map keys sorted, so equal stores encode to
// equal bytes.
type MsgPack struct{}

func (MsgPack) Name() string { return "msgpack" }
func (MsgPack) Ext() string  { return "msgpack" }

func (c MsgPack) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(document{Todos: items}); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return buf.Bytes(), nil
}

func (c MsgPack) Decode(data []byte) (map[string]bool, error) {
	var doc document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
