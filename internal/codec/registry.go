package codec

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is the table of available codecs, keyed by name.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
	byExt  map[string]string
}

// NewRegistry returns a registry holding codecs.
// Panics if two codecs share a name or extension.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{
		codecs: make(map[string]Codec, len(codecs)),
		byExt:  make(map[string]string, len(codecs)),
	}
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Builtin returns a fresh registry with every built-in codec.
func Builtin() *Registry {
	return NewRegistry(
		JSON{},
		MsgPack{},
		CBOR{},
		BSON{},
		FlatBuffers{},
		YAML{},
		TOML{},
		CUE{},
	)
}

// Register adds c. Names and extensions are case-insensitive and must be
// unique across the registry.
func (r *Registry) Register(c Codec) error {
	name := registryKey(c.Name())
	ext := registryKey(c.Ext())
	if name == "" || ext == "" {
		return fmt.Errorf("register codec: empty name or extension")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codecs[name]; ok {
		return fmt.Errorf("register codec %q: name already registered", name)
	}
	if owner, ok := r.byExt[ext]; ok {
		return fmt.Errorf("register codec %q: extension %q already used by %q", name, ext, owner)
	}
	r.codecs[name] = c
	r.byExt[ext] = name
	return nil
}

// Lookup finds a codec by name or by file extension.
func (r *Registry) Lookup(name string) (Codec, error) {
	key := registryKey(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.codecs[key]; ok {
		return c, nil
	}
	if owner, ok := r.byExt[key]; ok {
		return r.codecs[owner], nil
	}
	return nil, fmt.Errorf("unknown codec %q (available: %s)", name, strings.Join(r.namesLocked(), ", "))
}

// All returns every codec ordered by name.
func (r *Registry) All() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.namesLocked()
	out := make([]Codec, len(names))
	for i, n := range names {
		out[i] = r.codecs[n]
	}
	return out
}

// Names returns every codec name in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Descriptors returns the descriptor of every codec ordered by name.
func (r *Registry) Descriptors() []Descriptor {
	all := r.All()
	out := make([]Descriptor, len(all))
	for i, c := range all {
		out[i] = Describe(c)
	}
	return out
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.codecs))
	for n := range r.codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
