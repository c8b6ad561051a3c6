package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// YAML writes a block mapping under a "todos" key.
type YAML struct{}

func (YAML) Name() string { return "yaml" }
func (YAML) Ext() string  { return "yaml" }

func (c YAML) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	if items == nil {
		items = map[string]bool{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Todos: items}); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return buf.Bytes(), nil
}

func (c YAML) Decode(data []byte) (map[string]bool, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
