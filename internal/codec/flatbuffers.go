package codec

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/roach88/thingstodo/internal/canon"
)

// FlatBuffers writes the buffer described by this schema:
//
//	table Item  { name:string; done:bool; }
//	table Todos { items:[Item]; }
//	root_type Todos;
//
// Items are stored in canonical key order. The tables are built by hand, so
// no generated code or flatc run is needed.
type FlatBuffers struct{}

// vtable slots, 4 + 2*field index.
const (
	fbTodosItems flatbuffers.VOffsetT = 4
	fbItemName   flatbuffers.VOffsetT = 4
	fbItemDone   flatbuffers.VOffsetT = 6
)

func (FlatBuffers) Name() string { return "flatbuffers" }
func (FlatBuffers) Ext() string  { return "fbs" }

func (c FlatBuffers) Encode(items map[string]bool) ([]byte, error) {
	if err := checkNames(items); err != nil {
		return nil, encodeError(c.Name(), err)
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	canon.SortKeys(names)

	b := flatbuffers.NewBuilder(64 + 32*len(names))

	offsets := make([]flatbuffers.UOffsetT, len(names))
	for i, name := range names {
		nameOff := b.CreateString(name)
		b.StartObject(2)
		b.PrependUOffsetTSlot(0, nameOff, 0)
		b.PrependBoolSlot(1, items[name], false)
		offsets[i] = b.EndObject()
	}

	b.StartVector(flatbuffers.SizeUOffsetT, len(offsets), flatbuffers.SizeUOffsetT)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vec := b.EndVector(len(offsets))

	b.StartObject(1)
	b.PrependUOffsetTSlot(0, vec, 0)
	b.Finish(b.EndObject())

	return b.FinishedBytes(), nil
}

func (c FlatBuffers) Decode(data []byte) (items map[string]bool, err error) {
	// The flatbuffers runtime does not bounds check; a truncated buffer panics.
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = decodeError(c.Name(), fmt.Errorf("malformed buffer: %v", r))
		}
	}()

	if len(data) < flatbuffers.SizeUOffsetT {
		return nil, decodeError(c.Name(), errors.New("buffer too short"))
	}

	root := &flatbuffers.Table{Bytes: data, Pos: flatbuffers.GetUOffsetT(data)}
	items = map[string]bool{}

	o := flatbuffers.UOffsetT(root.Offset(fbTodosItems))
	if o == 0 {
		return items, nil
	}

	vec := root.Vector(o)
	n := root.VectorLen(o)
	for i := 0; i < n; i++ {
		pos := root.Indirect(vec + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT)
		item := &flatbuffers.Table{Bytes: data, Pos: pos}

		var name string
		if off := flatbuffers.UOffsetT(item.Offset(fbItemName)); off != 0 {
			name = item.String(off + item.Pos)
		}
		if name == "" {
			return nil, decodeError(c.Name(), fmt.Errorf("item %d has no name", i))
		}

		done := false
		if off := flatbuffers.UOffsetT(item.Offset(fbItemDone)); off != 0 {
			done = item.GetBool(off + item.Pos)
		}
		items[name] = done
	}
	return items, nil
}
