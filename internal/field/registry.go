package field

import "fmt"

// Registry indexes fields by name and remembers registration order, which is
// the order fields are presented in.
type Registry struct {
	order  []Field
	byName map[string]Field
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Field)}
}

// Register adds f and returns it so construction can be chained.
// A duplicate name is a programming error and panics.
func Register[F Field](r *Registry, f F) F {
	if _, dup := r.byName[f.Name()]; dup {
		panic(fmt.Sprintf("field %q registered twice", f.Name()))
	}
	r.byName[f.Name()] = f
	r.order = append(r.order, f)
	return f
}

// Lookup returns the field called name.
func (r *Registry) Lookup(name string) (Field, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// All returns every field in registration order.
func (r *Registry) All() []Field {
	return append([]Field(nil), r.order...)
}

// Len returns the number of registered fields.
func (r *Registry) Len() int { return len(r.order) }

// ResetAll restores every field to its default.
func (r *Registry) ResetAll() {
	for _, f := range r.order {
		f.Reset()
	}
}
