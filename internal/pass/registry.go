package pass

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPass is returned by Lookup for keys that were never registered.
var ErrUnknownPass = errors.New("unknown pass")

// Factory builds a pass instance.
type Factory func(Options) FunctionPass

// Registry maps pass keys to factories. It is filled once by the
// composition root and only read afterwards.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Builtin returns a registry holding the passes shipped with simplemath.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister("sm", NewFoldPass)
	r.MustRegister("smprint", NewPrintPass)
	return r
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(key string, f Factory) {
	if err := r.Register(key, f); err != nil {
		panic(err)
	}
}

// Register adds a factory under key.
func (r *Registry) Register(key string, f Factory) error {
	if key == "" {
		return errors.New("empty pass key")
	}
	if f == nil {
		return fmt.Errorf("pass %q: nil factory", key)
	}
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("pass %q already registered", key)
	}
	r.factories[key] = f
	return nil
}

// Lookup returns the factory registered under key.
func (r *Registry) Lookup(key string) (Factory, error) {
	f, ok := r.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPass, key, strings.Join(r.Keys(), ", "))
	}
	return f, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
