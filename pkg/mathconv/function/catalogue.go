package function

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidDescriptor indicates a descriptor without a name or body.
var ErrInvalidDescriptor = errors.New("invalid function descriptor")

// Catalogue maps function names to descriptors. Names are case-sensitive.
// It uses sync.RWMutex since lookups vastly outnumber registrations.
type Catalogue struct {
	mu      sync.RWMutex
	entries map[string]*Descriptor
}

// EmptyCatalogue creates a catalogue with no functions.
func EmptyCatalogue() *Catalogue {
	return &Catalogue{entries: make(map[string]*Descriptor)}
}

var (
	builtinsOnce sync.Once
	builtins     *Catalogue
)

// Builtins returns the shared catalogue of built-in functions. It is built
// on first use. Callers must not register into it; use NewCatalogue to
// get a copy that can be extended.
func Builtins() *Catalogue {
	builtinsOnce.Do(func() {
		builtins = EmptyCatalogue()
		for _, d := range builtinDescriptors() {
			builtins.entries[d.Name] = d
		}
	})
	return builtins
}

// NewCatalogue creates a catalogue holding every built-in function, ready
// for custom registrations.
func NewCatalogue() *Catalogue {
	return Builtins().Clone()
}

// Register adds or replaces a function.
func (c *Catalogue) Register(d *Descriptor) error {
	if d == nil || d.Name == "" || d.Eval == nil {
		return ErrInvalidDescriptor
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[d.Name] = d
	return nil
}

// MustRegister is like Register but panics on an invalid descriptor.
func (c *Catalogue) MustRegister(d *Descriptor) {
	if err := c.Register(d); err != nil {
		panic(fmt.Sprintf("function: register %q: %v", nameOf(d), err))
	}
}

func nameOf(d *Descriptor) string {
	if d == nil {
		return ""
	}
	return d.Name
}

// Lookup returns the descriptor registered under name.
func (c *Catalogue) Lookup(name string) (*Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.entries[name]
	return d, ok
}

// Has returns true if a function is registered under name.
func (c *Catalogue) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Delete removes a function.
func (c *Catalogue) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Names returns every registered name in sorted order.
func (c *Catalogue) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of registered functions.
func (c *Catalogue) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clone returns an independent copy. Descriptors are shared, they are
// never mutated after registration.
func (c *Catalogue) Clone() *Catalogue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := &Catalogue{entries: make(map[string]*Descriptor, len(c.entries))}
	for name, d := range c.entries {
		out.entries[name] = d
	}
	return out
}
