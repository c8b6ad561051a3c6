package codec

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// CUE writes the document as a concrete CUE struct literal.
//
// A cue.Context is not safe for concurrent use, so each call builds its own.
type CUE struct{}

func (CUE) Name() string { return "cue" }
func (CUE) Ext() string  { return "cue" }

func (c CUE) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	if items == nil {
		items = map[string]bool{}
	}
	ctx := cuecontext.New()
	v := ctx.Encode(document{Todos: items})
	if err := v.Err(); err != nil {
		return nil, encodeError(c.Name(), err)
	}

	node := v.Syntax(cue.Final(), cue.Concrete(true))
	data, err := format.Node(node)
	if err != nil {
		return nil, encodeError(c.Name(), fmt.Errorf("format: %w", err))
	}
	return data, nil
}

func (c CUE) Decode(data []byte) (map[string]bool, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename("data.cue"))
	if err := v.Err(); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, decodeError(c.Name(), err)
	}

	var doc document
	if err := v.Decode(&doc); err != nil {
		return nil, decodeError(c.Name(), err)
	}
	return doc.items(), nil
}
