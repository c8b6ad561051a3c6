package codec

import (
	"bytes"
	"encoding/json"

	"github.com/roach88/thingstodo/internal/canon"
)

// JSON writes canonical JSON: {"todos":{...}} with members in UTF-16 key order.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Ext() string  { return "json" }

func (c JSON) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	if items == nil {
		items = map[string]bool{}
	}
	data, err := canon.MarshalCanonical(map[string]any{"todos": items})
	if err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return data, nil
}

func (c JSON) Decode(data []byte) (map[string]bool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
