package property

import (
	"sort"

	"github.com/bethropolis/compedit/internal/colour"
)

// Observer is told about every mutation made through Store.Set.
type Observer interface {
	PropertyChanged(key Key, old, new Value)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(key Key, old, new Value)

func (f ObserverFunc) PropertyChanged(key Key, old, new Value) { f(key, old, new) }

// Store maps keys to values. It is owned by a single component and is not
// safe for concurrent use.
type Store struct {
	values    map[Key]Value
	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	o  Observer
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[Key]Value)}
}

// AddObserver registers o for change notifications and returns a
// function that unregisters it.
func (s *Store) AddObserver(o Observer) (remove func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, o: o})
	return func() {
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(key Key, old, new Value) {
	for _, e := range append([]observerEntry(nil), s.observers...) {
		e.o.PropertyChanged(key, old, new)
	}
}

// Get returns the value for key, or def if the key is absent or holds a
// different kind than def. A KindNone default accepts any stored kind.
func (s *Store) Get(key Key, def Value) Value {
	v, ok := s.values[key]
	if !ok {
		return def
	}
	if def.kind != KindNone && v.kind != def.kind {
		return def
	}
	return v
}

// Has reports whether key is present.
func (s *Store) Has(key Key) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Store) GetString(key Key, def string) string {
	return s.Get(key, String(def)).AsString(def)
}

func (s *Store) GetFloat(key Key, def float64) float64 {
	return s.Get(key, Float(def)).AsFloat(def)
}

func (s *Store) GetBool(key Key, def bool) bool {
	return s.Get(key, Bool(def)).AsBool(def)
}

func (s *Store) GetColour(key Key, def colour.Colour) colour.Colour {
	return s.Get(key, Colour(def)).AsColour(def)
}

// Set stores value under key and notifies observers. Setting a value
// equal to the current one is a no-op.
func (s *Store) Set(key Key, value Value) {
	old, existed := s.values[key]
	if existed && old.Equal(value) {
		return
	}
	s.values[key] = value
	s.notify(key, old, value)
}

// Load stores value without notifying anyone. Used when populating a
// store from a file, before any edit history exists.
func (s *Store) Load(key Key, value Value) {
	s.values[key] = value
}

// Remove deletes key, notifying observers if it was present.
func (s *Store) Remove(key Key) {
	old, ok := s.values[key]
	if !ok {
		return
	}
	delete(s.values, key)
	s.notify(key, old, Value{})
}

// Len returns the number of keys.
func (s *Store) Len() int { return len(s.values) }

// Keys returns all keys in sorted order.
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() map[Key]Value {
	out := make(map[Key]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
