package core

// Cell holds one numeric value of a row. Writes are idempotent-checked: a
// write of the current value does nothing and fires no callbacks, which is
// what keeps re-entrant broadcast cascades finite.
type Cell struct {
	field       Field
	value       float64
	enabled     bool
	highlighted bool
	assignable  bool
	onChange    func(old, value float64)
}

func newCell(field Field) *Cell {
	return &Cell{
		field:      field,
		value:      field.Default(),
		enabled:    field.Enabled(),
		assignable: true,
	}
}

// Field returns the column descriptor of this cell.
func (c *Cell) Field() Field { return c.field }

// Value returns the current value.
func (c *Cell) Value() float64 { return c.value }

// Enabled reports whether the cell accepts user edits.
func (c *Cell) Enabled() bool { return c.enabled }

// Highlighted reports whether a front-end should flag the cell.
func (c *Cell) Highlighted() bool { return c.highlighted }

// Assignable reports whether the cell supports direct value assignment.
// Non-assignable cells (the rank display, the element selector) are skipped
// by the sync protocol.
func (c *Cell) Assignable() bool { return c.assignable }

// Set writes v, applying the reset-if-negative policy of the descriptor.
// It reports whether the stored value actually changed.
func (c *Cell) Set(v float64) bool {
	if !c.assignable {
		return false
	}
	if c.field.ResetNeg() && v < 0 {
		v = c.field.Default()
	}
	if v == c.value {
		return false
	}
	old := c.value
	c.value = v
	if c.onChange != nil {
		c.onChange(old, v)
	}
	return true
}

func (c *Cell) setEnabled(enabled bool) { c.enabled = enabled }

func (c *Cell) setHighlight(on bool) { c.highlighted = on }
