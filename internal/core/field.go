// Package core implements the row/table synchronization engine behind the
// composition editors: capacity-counted element rows, cross-table value
// syncing, and sum-bounded numeric columns. All operations are synchronous
// and single-threaded; a user edit runs to completion as one causal cascade.
package core

// FieldSpec describes one column of a table before registration.
type FieldSpec struct {
	// Unique is the semantic name of the column ("abundance", "atomic_mass").
	Unique  string
	Label   string
	Tooltip string
	// Synced marks the column for cross-table propagation between rows
	// holding the same element.
	Synced bool
	// Limit caps the column sum across rows when HasLimit is set.
	Limit    float64
	HasLimit bool
	// ResetNeg resets a negative write back to Default instead of storing it.
	ResetNeg bool
	// Enabled is the descriptor-level switch; a disabled field never becomes
	// editable, not even for the source-of-truth row.
	Enabled bool
	Default float64
}

// Field is an immutable column descriptor. Its id is unique for the lifetime
// of the registry that created it and serves as the join key identifying the
// same logical column across the beam and target tables.
type Field struct {
	id   int
	spec FieldSpec
}

// ID returns the registration id.
func (f Field) ID() int { return f.id }

// Unique returns the semantic column name.
func (f Field) Unique() string { return f.spec.Unique }

// Label returns the display label.
func (f Field) Label() string { return f.spec.Label }

// Synced reports whether the column participates in cross-table sync.
func (f Field) Synced() bool { return f.spec.Synced }

// Limit returns the column sum cap, if any.
func (f Field) Limit() (float64, bool) { return f.spec.Limit, f.spec.HasLimit }

// ResetNeg reports whether negative writes reset to the default value.
func (f Field) ResetNeg() bool { return f.spec.ResetNeg }

// Enabled reports the descriptor-level enable switch.
func (f Field) Enabled() bool { return f.spec.Enabled }

// Default returns the initial cell value.
func (f Field) Default() float64 { return f.spec.Default }

// FieldRegistry hands out monotonically increasing field ids. One registry is
// created per process (by the session constructor's caller) so that ids stay
// unique across descriptor sets built independently for different tables.
type FieldRegistry struct {
	next int
}

// NewFieldRegistry constructs an empty registry.
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{}
}

// Register assigns the next id to spec. Ids are never reused.
func (r *FieldRegistry) Register(spec FieldSpec) Field {
	f := Field{id: r.next, spec: spec}
	r.next++
	return f
}
