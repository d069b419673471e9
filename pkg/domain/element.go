// Package domain defines the value types shared between the table
// synchronization engine, the persistence drivers, and front-ends.
package domain

// Element describes one chemical element or isotope as it appears in a beam
// or target composition row. The zero value represents "no element selected";
// two rows refer to the same element iff their symbols match, and an empty
// symbol never matches anything.
type Element struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	AtomicNr      int     `json:"atomic_nr,omitempty"`
	Period        int     `json:"period,omitempty"`
	Group         int     `json:"group,omitempty"`
	AtomicMass    float64 `json:"atomic_mass,omitempty"`
	AtomicDensity float64 `json:"atomic_density,omitempty"`

	// PeriodicTableSymbol is the symbol of the base element when this entry
	// is an isotope variant (e.g. "H" for "D").
	PeriodicTableSymbol string `json:"periodic_table_symbol,omitempty"`

	SurfaceBindingEnergy float64 `json:"surface_binding_energy,omitempty"`
	DisplacementEnergy   float64 `json:"displacement_energy,omitempty"`
	CutoffEnergy         float64 `json:"cutoff_energy,omitempty"`

	// Modified marks an element whose tabulated values were overridden by the
	// user; such overrides survive a save/load round-trip.
	Modified bool `json:"modified,omitempty"`
}

// IsZero reports whether no element has been selected.
func (e Element) IsZero() bool { return e.Symbol == "" }

// BaseSymbol returns the periodic-table symbol, falling back to the element
// symbol for non-isotopes.
func (e Element) BaseSymbol() string {
	if e.PeriodicTableSymbol != "" {
		return e.PeriodicTableSymbol
	}
	return e.Symbol
}
