package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOML writes a single [todos] table with one key per item.
type TOML struct{}

func (TOML) Name() string { return "toml" }
func (TOML) Ext() string  { return "toml" }

func (c TOML) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	if items == nil {
		items = map[string]bool{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{Todos: items}); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return buf.Bytes(), nil
}

func (c TOML) Decode(data []byte) (map[string]bool, error) {
	var doc document
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, decodeError(c.Name(), err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, decodeError(c.Name(), fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}
	return doc.items(), nil
}
