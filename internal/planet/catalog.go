package planet

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned when a catalog already holds a planet with
// the same name.
var ErrDuplicateName = errors.New("duplicate planet name")

// Catalog is an ordered set of planets keyed by name. Iteration follows
// load order so layouts are stable across frames.
type Catalog struct {
	order  []*Planet
	byName map[string]*Planet
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Planet)}
}

// Add appends p. Names must be unique.
func (c *Catalog) Add(p *Planet) error {
	if _, ok := c.byName[p.Name]; ok {
		return fmt.Errorf("%s: %w", p.Name, ErrDuplicateName)
	}
	c.byName[p.Name] = p
	c.order = append(c.order, p)
	return nil
}

// Get returns the planet with the given name, or nil.
func (c *Catalog) Get(name string) *Planet {
	if c == nil {
		return nil
	}
	return c.byName[name]
}

// Planets returns the planets in load order. The slice is a copy; the
// planets are shared.
func (c *Catalog) Planets() []*Planet {
	if c == nil {
		return nil
	}
	out := make([]*Planet, len(c.order))
	copy(out, c.order)
	return out
}

// Names returns planet names in load order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.order))
	for i, p := range c.order {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of planets. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
