// Package catalog provides the element catalog used to resolve composition
// rows against the element data of the active simulation program.
package catalog

import (
	"sort"

	"bcaguide/pkg/domain"
)

// Catalog is an immutable collection of elements with symbol lookup.
type Catalog struct {
	elements []domain.Element
	bySymbol map[string]int
}

// New builds a catalog from the given elements. Later entries win on
// duplicate symbols, matching how program element tables override defaults.
func New(elements []domain.Element) *Catalog {
	c := &Catalog{
		elements: append([]domain.Element(nil), elements...),
		bySymbol: make(map[string]int, len(elements)),
	}
	for i, el := range c.elements {
		c.bySymbol[el.Symbol] = i
	}
	return c
}

// FromSymbol resolves a symbol to its catalog entry.
func (c *Catalog) FromSymbol(symbol string) (domain.Element, bool) {
	i, ok := c.bySymbol[symbol]
	if !ok {
		return domain.Element{}, false
	}
	return c.elements[i], true
}

// Elements returns all catalog entries ordered by atomic number.
func (c *Catalog) Elements() []domain.Element {
	out := append([]domain.Element(nil), c.elements...)
	sort.Slice(out, func(i, j int) bool { return out[i].AtomicNr < out[j].AtomicNr })
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.elements) }
