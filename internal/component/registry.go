package component

import (
	"fmt"
	"sort"
)

// Registry maps type names and XML tags to handlers.
type Registry struct {
	byType map[string]Handler
	byTag  map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string]Handler),
		byTag:  make(map[string]Handler),
	}
}

// Register adds h. Registering a second handler for the same type name or
// tag is an error.
func (r *Registry) Register(h Handler) error {
	if _, exists := r.byType[h.TypeName()]; exists {
		return fmt.Errorf("handler for type %q already registered", h.TypeName())
	}
	if _, exists := r.byTag[h.XMLTag()]; exists {
		return fmt.Errorf("handler for tag <%s> already registered", h.XMLTag())
	}
	r.byType[h.TypeName()] = h
	r.byTag[h.XMLTag()] = h
	return nil
}

// ForType looks a handler up by type name.
func (r *Registry) ForType(typeName string) (Handler, bool) {
	h, ok := r.byType[typeName]
	return h, ok
}

// ForTag looks a handler up by XML tag.
func (r *Registry) ForTag(tag string) (Handler, bool) {
	h, ok := r.byTag[tag]
	return h, ok
}

// Types lists the registered type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.byType))
	for name := range r.byType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
