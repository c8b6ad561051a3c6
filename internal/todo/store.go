package todo

import (
	"unicode/utf8"

	"github.com/roach88/thingstodo/internal/canon"
)

// Store is the mutable name -> status mapping for one session.
// The zero value is not usable; call New or FromMap.
type Store struct {
	items map[string]bool
}

// New returns an empty store.
func New() *Store {
	return &Store{items: make(map[string]bool)}
}

// FromMap hydrates a store from a decoded mapping.
//
// Every name is NFC normalized. Returns INPUT_INVALID if a name is empty, is
// not valid UTF-8, or if two names collapse to the same normalized key.
func FromMap(m map[string]bool) (*Store, error) {
	s := &Store{items: make(map[string]bool, len(m))}
	for name, done := range m {
		key, err := validName(name)
		if err != nil {
			return nil, err
		}
		if _, dup := s.items[key]; dup {
			return nil, &CommandError{
				Code:    ErrCodeInputInvalid,
				Message: "input invalid, two names normalize to the same item",
				Name:    key,
			}
		}
		s.items[key] = done
	}
	return s, nil
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the store has no items.
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// AnyWithStatus reports whether at least one item has the given status.
func (s *Store) AnyWithStatus(done bool) bool {
	for _, v := range s.items {
		if v == done {
			return true
		}
	}
	return false
}

// Status returns the status of name and whether it exists.
func (s *Store) Status(name string) (done bool, ok bool) {
	done, ok = s.items[canon.NormalizeName(name)]
	return done, ok
}

// Has reports whether name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.Status(name)
	return ok
}

// Add inserts name with the given status.
func (s *Store) Add(name string, done bool) error {
	key, err := validName(name)
	if err != nil {
		return err
	}
	if _, ok := s.items[key]; ok {
		return errAlreadyExists(key)
	}
	s.items[key] = done
	return nil
}

// Remove deletes name and returns the removed item.
func (s *Store) Remove(name string) (Item, error) {
	key, err := validName(name)
	if err != nil {
		return Item{}, err
	}
	done, ok := s.items[key]
	if !ok {
		return Item{}, errNotFound(key)
	}
	delete(s.items, key)
	return Item{Name: key, Done: done}, nil
}

// Edit renames existing to newName, keeping its status. Any item already
// stored under newName is overwritten.
func (s *Store) Edit(existing, newName string) error {
	return s.rename(existing, newName, false)
}

// Rename is Edit without the overwrite: it returns COLLISION when newName is
// already taken by a different item.
func (s *Store) Rename(existing, newName string) error {
	return s.rename(existing, newName, true)
}

func (s *Store) rename(existing, newName string, strict bool) error {
	from, err := validName(existing)
	if err != nil {
		return err
	}
	to, err := validName(newName)
	if err != nil {
		return err
	}

	done, ok := s.items[from]
	if !ok {
		return errNotFound(from)
	}
	if from == to {
		return nil
	}
	if _, taken := s.items[to]; taken && strict {
		return errCollision(to)
	}

	delete(s.items, from)
	s.items[to] = done
	return nil
}

// SetStatus inserts or overwrites the status of name. It does not require
// the item to exist.
func (s *Store) SetStatus(name string, done bool) error {
	key, err := validName(name)
	if err != nil {
		return err
	}
	s.items[key] = done
	return nil
}

// Clear removes every item. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	clear(s.items)
}

// Items returns all items ordered by name.
func (s *Store) Items() []Item {
	names := s.names(func(bool) bool { return true })
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{Name: name, Done: s.items[name]}
	}
	return items
}

// Names returns all item names ordered by name.
func (s *Store) Names() []string {
	return s.names(func(bool) bool { return true })
}

// NamesWithStatus returns the names whose status equals done, ordered by name.
func (s *Store) NamesWithStatus(done bool) []string {
	return s.names(func(v bool) bool { return v == done })
}

func (s *Store) names(keep func(bool) bool) []string {
	names := make([]string, 0, len(s.items))
	for name, v := range s.items {
		if keep(v) {
			names = append(names, name)
		}
	}
	canon.SortKeys(names)
	return names
}

// Map returns a copy of the underlying mapping.
func (s *Store) Map() map[string]bool {
	out := make(map[string]bool, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	return &Store{items: s.Map()}
}

// Fingerprint returns the content hash of the store.
func (s *Store) Fingerprint() (string, error) {
	return canon.Fingerprint(s.items)
}

// validName normalizes name. Names must be valid UTF-8 so that every codec
// can carry them unchanged.
func validName(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", InputInvalid("item name is not valid UTF-8")
	}
	key := canon.NormalizeName(name)
	if key == "" {
		return "", InputInvalid("item name is empty")
	}
	return key, nil
}
