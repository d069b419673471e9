package catalog

import "bcaguide/pkg/domain"

// Default returns the built-in element table. Atomic densities are in
// atoms/Å³, energies in eV; values follow the tabulated defaults shipped
// with common BCA programs. Programs with their own element tables should
// build a Catalog from those instead.
func Default() *Catalog {
	return New(defaultElements)
}

var defaultElements = []domain.Element{
	{Symbol: "H", Name: "Hydrogen", AtomicNr: 1, Period: 1, Group: 1, AtomicMass: 1.008, AtomicDensity: 0.04231, SurfaceBindingEnergy: 1.1, DisplacementEnergy: 5},
	{Symbol: "D", Name: "Deuterium", AtomicNr: 1, Period: 1, Group: 1, AtomicMass: 2.014, AtomicDensity: 0.04231, PeriodicTableSymbol: "H", SurfaceBindingEnergy: 1.1, DisplacementEnergy: 5},
	{Symbol: "T", Name: "Tritium", AtomicNr: 1, Period: 1, Group: 1, AtomicMass: 3.016, AtomicDensity: 0.04231, PeriodicTableSymbol: "H", SurfaceBindingEnergy: 1.1, DisplacementEnergy: 5},
	{Symbol: "He", Name: "Helium", AtomicNr: 2, Period: 1, Group: 18, AtomicMass: 4.003, AtomicDensity: 0.01878, SurfaceBindingEnergy: 0, DisplacementEnergy: 5},
	{Symbol: "Li", Name: "Lithium", AtomicNr: 3, Period: 2, Group: 1, AtomicMass: 6.941, AtomicDensity: 0.04633, SurfaceBindingEnergy: 1.67, DisplacementEnergy: 25},
	{Symbol: "Be", Name: "Beryllium", AtomicNr: 4, Period: 2, Group: 2, AtomicMass: 9.012, AtomicDensity: 0.12347, SurfaceBindingEnergy: 3.38, DisplacementEnergy: 15},
	{Symbol: "B", Name: "Boron", AtomicNr: 5, Period: 2, Group: 13, AtomicMass: 10.811, AtomicDensity: 0.13093, SurfaceBindingEnergy: 5.73, DisplacementEnergy: 25},
	{Symbol: "C", Name: "Carbon", AtomicNr: 6, Period: 2, Group: 14, AtomicMass: 12.011, AtomicDensity: 0.11331, SurfaceBindingEnergy: 7.41, DisplacementEnergy: 25},
	{Symbol: "N", Name: "Nitrogen", AtomicNr: 7, Period: 2, Group: 15, AtomicMass: 14.007, AtomicDensity: 0.03481, SurfaceBindingEnergy: 0, DisplacementEnergy: 25},
	{Symbol: "O", Name: "Oxygen", AtomicNr: 8, Period: 2, Group: 16, AtomicMass: 15.999, AtomicDensity: 0.04291, SurfaceBindingEnergy: 2.58, DisplacementEnergy: 25},
	{Symbol: "Ne", Name: "Neon", AtomicNr: 10, Period: 2, Group: 18, AtomicMass: 20.180, AtomicDensity: 0.03585, SurfaceBindingEnergy: 0, DisplacementEnergy: 5},
	{Symbol: "Na", Name: "Sodium", AtomicNr: 11, Period: 3, Group: 1, AtomicMass: 22.990, AtomicDensity: 0.02541, SurfaceBindingEnergy: 1.12, DisplacementEnergy: 25},
	{Symbol: "Al", Name: "Aluminium", AtomicNr: 13, Period: 3, Group: 13, AtomicMass: 26.982, AtomicDensity: 0.06022, SurfaceBindingEnergy: 3.36, DisplacementEnergy: 27},
	{Symbol: "Si", Name: "Silicon", AtomicNr: 14, Period: 3, Group: 14, AtomicMass: 28.086, AtomicDensity: 0.04994, SurfaceBindingEnergy: 4.70, DisplacementEnergy: 13},
	{Symbol: "Ar", Name: "Argon", AtomicNr: 18, Period: 3, Group: 18, AtomicMass: 39.948, AtomicDensity: 0.02488, SurfaceBindingEnergy: 0, DisplacementEnergy: 5},
	{Symbol: "Ti", Name: "Titanium", AtomicNr: 22, Period: 4, Group: 4, AtomicMass: 47.867, AtomicDensity: 0.05670, SurfaceBindingEnergy: 4.89, DisplacementEnergy: 30},
	{Symbol: "Cr", Name: "Chromium", AtomicNr: 24, Period: 4, Group: 6, AtomicMass: 51.996, AtomicDensity: 0.08327, SurfaceBindingEnergy: 4.12, DisplacementEnergy: 28},
	{Symbol: "Fe", Name: "Iron", AtomicNr: 26, Period: 4, Group: 8, AtomicMass: 55.845, AtomicDensity: 0.08482, SurfaceBindingEnergy: 4.34, DisplacementEnergy: 17},
	{Symbol: "Ni", Name: "Nickel", AtomicNr: 28, Period: 4, Group: 10, AtomicMass: 58.693, AtomicDensity: 0.09133, SurfaceBindingEnergy: 4.46, DisplacementEnergy: 23},
	{Symbol: "Cu", Name: "Copper", AtomicNr: 29, Period: 4, Group: 11, AtomicMass: 63.546, AtomicDensity: 0.08491, SurfaceBindingEnergy: 3.52, DisplacementEnergy: 19},
	{Symbol: "Ga", Name: "Gallium", AtomicNr: 31, Period: 4, Group: 13, AtomicMass: 69.723, AtomicDensity: 0.05105, SurfaceBindingEnergy: 2.82, DisplacementEnergy: 12},
	{Symbol: "Kr", Name: "Krypton", AtomicNr: 36, Period: 4, Group: 18, AtomicMass: 83.798, AtomicDensity: 0.01741, SurfaceBindingEnergy: 0, DisplacementEnergy: 5},
	{Symbol: "Mo", Name: "Molybdenum", AtomicNr: 42, Period: 5, Group: 6, AtomicMass: 95.95, AtomicDensity: 0.06407, SurfaceBindingEnergy: 6.83, DisplacementEnergy: 33},
	{Symbol: "Ag", Name: "Silver", AtomicNr: 47, Period: 5, Group: 11, AtomicMass: 107.868, AtomicDensity: 0.05862, SurfaceBindingEnergy: 2.97, DisplacementEnergy: 23},
	{Symbol: "Xe", Name: "Xenon", AtomicNr: 54, Period: 5, Group: 18, AtomicMass: 131.293, AtomicDensity: 0.01384, SurfaceBindingEnergy: 0, DisplacementEnergy: 5},
	{Symbol: "W", Name: "Tungsten", AtomicNr: 74, Period: 6, Group: 6, AtomicMass: 183.84, AtomicDensity: 0.06322, SurfaceBindingEnergy: 8.79, DisplacementEnergy: 38},
	{Symbol: "Au", Name: "Gold", AtomicNr: 79, Period: 6, Group: 11, AtomicMass: 196.967, AtomicDensity: 0.05901, SurfaceBindingEnergy: 3.80, DisplacementEnergy: 36},
	{Symbol: "Pb", Name: "Lead", AtomicNr: 82, Period: 6, Group: 14, AtomicMass: 207.2, AtomicDensity: 0.03299, SurfaceBindingEnergy: 2.03, DisplacementEnergy: 14},
}
