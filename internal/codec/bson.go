package codec

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/roach88/thingstodo/internal/canon"
)

// BSON writes a document {todos: {<name>: <bool>, ...}}. Element order
// follows the canonical key order.
//
// BSON keys are C strings, so names containing U+0000 cannot be encoded.
type BSON struct{}

func (BSON) Name() string { return "bson" }
func (BSON) Ext() string  { return "bson" }

func (c BSON) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	canon.SortKeys(names)

	todos := make(bson.D, 0, len(names))
	for _, name := range names {
		todos = append(todos, bson.E{Key: name, Value: items[name]})
	}

	data, err := bson.Marshal(bson.D{{Key: "todos", Value: todos}})
	if err != nil {
		return nil, encodeError(c.Name(), err)
	}
	return data, nil
}

func (c BSON) Decode(data []byte) (map[string]bool, error) {
	var doc document
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
