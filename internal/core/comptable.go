package core

import (
	"fmt"

	"bcaguide/pkg/catalog"
	"bcaguide/pkg/domain"
)

// TableKind distinguishes the beam and target composition tables. The target
// table is the source of truth for synced fields: it emits syncable value
// changes and re-enables the last occurrence of each element symbol.
type TableKind int

// Composition table kinds.
const (
	KindBeam TableKind = iota
	KindTarget
)

// Semantic column names understood by the argument import/export mapping.
const (
	FieldIndex                = "id"
	FieldSymbol               = "symbol"
	FieldAbundance            = "abundance"
	FieldEnergy               = "energy"
	FieldAngle                = "angle"
	FieldMaxAtomicFraction    = "max_atomic_fraction"
	FieldAtomicMass           = "atomic_mass"
	FieldAtomicDensity        = "atomic_density"
	FieldSurfaceBindingEnergy = "surface_binding_energy"
	FieldDisplacementEnergy   = "displacement_energy"
)

// CompRow is one element row of a composition table.
type CompRow struct {
	fields  []Field
	cells   []*Cell
	element domain.Element
	rank    *CounterItem
	enabled bool
}

func newCompRow(fields []Field) *CompRow {
	r := &CompRow{fields: fields, enabled: true}
	r.cells = make([]*Cell, len(fields))
	for i, f := range fields {
		r.cells[i] = newCell(f)
	}
	// The rank display and the element selector do not support direct value
	// assignment; the sync protocol skips them.
	r.cells[0].assignable = false
	r.cells[1].assignable = false
	return r
}

// Element returns the row's element (zero value when unset).
func (r *CompRow) Element() domain.Element { return r.element }

// Rank returns the capacity rank assigned to this row.
func (r *CompRow) Rank() int {
	if r.rank == nil {
		return -1
	}
	return r.rank.Rank()
}

// ContainsData reports whether an element has been selected.
func (r *CompRow) ContainsData() bool { return !r.element.IsZero() }

// Enabled reports whether the row's synced fields accept user edits.
func (r *CompRow) Enabled() bool { return r.enabled }

// Fields returns the row's column descriptors (the table schema).
func (r *CompRow) Fields() []Field { return r.fields }

// Cell returns the cell for the given semantic column name, or nil.
func (r *CompRow) Cell(unique string) *Cell {
	for i, f := range r.fields {
		if f.Unique() == unique {
			return r.cells[i]
		}
	}
	return nil
}

func (r *CompRow) setEnabled(enabled bool) {
	r.enabled = enabled
	for i, f := range r.fields {
		if f.Synced() {
			r.cells[i].setEnabled(enabled && f.Enabled())
		}
	}
}

// adaptElement seeds the element-derived columns from tabulated data.
func (r *CompRow) adaptElement(el domain.Element) {
	for i, f := range r.fields {
		switch f.Unique() {
		case FieldAtomicMass:
			r.cells[i].Set(el.AtomicMass)
		case FieldAtomicDensity:
			r.cells[i].Set(el.AtomicDensity)
		case FieldSurfaceBindingEnergy:
			r.cells[i].Set(el.SurfaceBindingEnergy)
		case FieldDisplacementEnergy:
			r.cells[i].Set(el.DisplacementEnergy)
		}
	}
}

// GetArguments exports the row. Element-derived columns that differ from the
// tabulated values are recorded as element modifications.
func (r *CompRow) GetArguments() domain.RowArguments {
	args := domain.RowArguments{
		Index:   r.Rank(),
		Symbol:  r.element.Symbol,
		Element: r.element,
	}
	for i, f := range r.fields {
		v := r.cells[i].Value()
		switch f.Unique() {
		case FieldAbundance:
			args.Abundance = v
		case FieldMaxAtomicFraction:
			args.MaxAtomicFraction = v
		case FieldEnergy:
			args.Energy = v
		case FieldAngle:
			args.Angle = v
		case FieldAtomicMass:
			if v != r.element.AtomicMass {
				args.Element.AtomicMass = v
				args.Element.Modified = true
			}
		case FieldAtomicDensity:
			if v != r.element.AtomicDensity {
				args.Element.AtomicDensity = v
				args.Element.Modified = true
			}
		case FieldSurfaceBindingEnergy:
			if v != r.element.SurfaceBindingEnergy {
				args.Element.SurfaceBindingEnergy = v
				args.Element.Modified = true
			}
		case FieldDisplacementEnergy:
			if v != r.element.DisplacementEnergy {
				args.Element.DisplacementEnergy = v
				args.Element.Modified = true
			}
		}
	}
	return args
}

func (r *CompRow) applyArguments(args domain.RowArguments) {
	for i, f := range r.fields {
		switch f.Unique() {
		case FieldAbundance:
			r.cells[i].Set(args.Abundance)
		case FieldMaxAtomicFraction:
			r.cells[i].Set(args.MaxAtomicFraction)
		case FieldEnergy:
			r.cells[i].Set(args.Energy)
		case FieldAngle:
			r.cells[i].Set(args.Angle)
		}
	}
	if args.Element.Modified {
		r.adaptElement(args.Element)
	}
}

// CompTable is an ordered collection of element rows sharing a capacity
// counter with its sibling table.
type CompTable struct {
	kind    TableKind
	fields  []Field
	rows    []*CompRow
	counter *Counter
	metrics *Metrics

	addEnabled bool
	limiting   bool
	seeding    bool

	rowAdded       []func(*CompRow)
	rowRemoved     []func(int)
	elementChanged []func(*CompRow, domain.Element)
	syncableValue  []func(symbol string, fieldID int, value float64)
	contentChanged []func()
	publish        func(Settings)
}

// NewCompTable builds a composition table. The index and element columns are
// registered on reg; extra columns are passed pre-registered so the beam and
// target tables can share descriptors (and therefore field ids) for their
// synced columns.
func NewCompTable(kind TableKind, reg *FieldRegistry, counter *Counter, extra []Field) *CompTable {
	t := &CompTable{
		kind:    kind,
		counter: counter,
	}
	t.fields = append(t.fields,
		reg.Register(FieldSpec{Unique: FieldIndex, Label: "#"}),
		reg.Register(FieldSpec{Unique: FieldSymbol, Label: "Element"}),
	)
	t.fields = append(t.fields, extra...)
	t.addEnabled = !counter.MaxReached()
	counter.OnMaxReached(func(reached bool) { t.addEnabled = !reached })
	return t
}

// WithMetrics attaches engine metrics (nil disables instrumentation).
func (t *CompTable) WithMetrics(m *Metrics) *CompTable {
	t.metrics = m
	return t
}

// Rows returns the row list in insertion order.
func (t *CompTable) Rows() []*CompRow { return t.rows }

// Len returns the number of rows.
func (t *CompTable) Len() int { return len(t.rows) }

// RowIndex returns the position of row, or -1.
func (t *CompTable) RowIndex(row *CompRow) int {
	for i, r := range t.rows {
		if r == row {
			return i
		}
	}
	return -1
}

// Fields returns the table schema.
func (t *CompTable) Fields() []Field { return t.fields }

// AddEnabled reports whether the external add control should accept clicks.
func (t *CompTable) AddEnabled() bool { return t.addEnabled }

// AllRowsHaveData reports whether every row has a selected element.
func (t *CompTable) AllRowsHaveData() bool {
	for _, r := range t.rows {
		if !r.ContainsData() {
			return false
		}
	}
	return true
}

// OnRowAdded registers a row-added observer.
func (t *CompTable) OnRowAdded(fn func(*CompRow)) {
	t.rowAdded = append(t.rowAdded, fn)
}

// OnRowRemoved registers a row-removed observer; it receives the vacated
// index so dependent tables can shrink structural columns at that position.
func (t *CompTable) OnRowRemoved(fn func(int)) {
	t.rowRemoved = append(t.rowRemoved, fn)
}

// OnElementChanged registers an element-changed observer.
func (t *CompTable) OnElementChanged(fn func(*CompRow, domain.Element)) {
	t.elementChanged = append(t.elementChanged, fn)
}

// OnSyncableValueChanged registers a synced-value broadcast observer.
func (t *CompTable) OnSyncableValueChanged(fn func(symbol string, fieldID int, value float64)) {
	t.syncableValue = append(t.syncableValue, fn)
}

// OnContentChanged registers an edit observer (unsaved-changes tracking).
func (t *CompTable) OnContentChanged(fn func()) {
	t.contentChanged = append(t.contentChanged, fn)
}

// BindBus subscribes the table and directs its emits to b.
func (t *CompTable) BindBus(b *Bus) {
	b.Subscribe(t)
	t.publish = b.Publish
}

// AddRow appends a new empty row, or returns nil when the capacity counter
// is exhausted.
func (t *CompTable) AddRow() *CompRow {
	item, ok := t.counter.Acquire()
	if !ok {
		t.metrics.countCapacityExhausted()
		return nil
	}
	row := newCompRow(t.fields)
	row.rank = item
	row.cells[0].value = float64(item.Rank())
	item.OnRankChanged(func(rank int) { row.cells[0].value = float64(rank) })
	for i := 2; i < len(row.cells); i++ {
		idx := i
		row.cells[i].onChange = func(_, v float64) { t.cellEdited(row, idx, v) }
	}
	t.rows = append(t.rows, row)
	t.LimitColumns()
	for _, fn := range t.rowAdded {
		fn(row)
	}
	t.emit(Settings{"row_added": true})
	t.fireContentChanged()
	return row
}

// RemoveRow deletes the row at idx and releases its capacity rank.
func (t *CompTable) RemoveRow(idx int) {
	if idx < 0 || idx >= len(t.rows) {
		return
	}
	row := t.rows[idx]
	if row.rank != nil {
		t.counter.Release(row.rank.Rank())
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	t.LimitColumns()
	for _, fn := range t.rowRemoved {
		fn(idx)
	}
	t.fireContentChanged()
}

// Reset removes all rows.
func (t *CompTable) Reset() {
	for len(t.rows) > 0 {
		t.RemoveRow(0)
	}
}

// SetElement assigns el to row, seeds the element-derived columns, and
// notifies observers. It returns how often el's symbol now occurs in this
// table; more than once is legal but worth surfacing to the user.
func (t *CompTable) SetElement(row *CompRow, el domain.Element) int {
	row.element = el
	// Tabulated values seeded here must not clobber synced values already
	// customized elsewhere; value adoption is the element-change observer's
	// call to make.
	t.seeding = true
	row.adaptElement(el)
	t.seeding = false
	occurrences := 0
	if !el.IsZero() {
		for _, r := range t.rows {
			if r.element.Symbol == el.Symbol {
				occurrences++
			}
		}
	}
	for _, fn := range t.elementChanged {
		fn(row, el)
	}
	t.fireContentChanged()
	return occurrences
}

func (t *CompTable) cellEdited(row *CompRow, fieldIdx int, value float64) {
	f := t.fields[fieldIdx]
	if _, ok := f.Limit(); ok {
		t.limitColumn(fieldIdx, t.RowIndex(row))
	}
	if t.kind == KindTarget && f.Synced() {
		t.emitSyncable(f, value, row)
	}
	t.fireContentChanged()
}

// LimitColumns re-applies the sum bound of every capped column.
func (t *CompTable) LimitColumns() {
	for i, f := range t.fields {
		if _, ok := f.Limit(); ok {
			t.limitColumn(i, -1)
		}
	}
}

func (t *CompTable) limitColumn(fieldIdx, edited int) {
	if t.limiting {
		return
	}
	limit, ok := t.fields[fieldIdx].Limit()
	if !ok {
		return
	}
	t.limiting = true
	defer func() { t.limiting = false }()
	cells := make([]*Cell, len(t.rows))
	for i, r := range t.rows {
		cells[i] = r.cells[fieldIdx]
	}
	t.metrics.countLimit(LimitSum(cells, limit, edited))
}

func (t *CompTable) emitSyncable(f Field, value float64, row *CompRow) {
	if t.seeding || row.element.IsZero() {
		return
	}
	if f.ResetNeg() && value < 0 {
		return
	}
	for _, fn := range t.syncableValue {
		fn(row.element.Symbol, f.ID(), value)
	}
}

// UpdateSyncedValue writes value into the column identified by fieldID of
// every row holding symbol. Writes are idempotent-checked, which is what
// terminates re-broadcast cycles; non-assignable cells are skipped.
func (t *CompTable) UpdateSyncedValue(symbol string, fieldID int, value float64) {
	if symbol == "" {
		return
	}
	idx := -1
	for i, f := range t.fields {
		if f.ID() == fieldID && f.Synced() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for _, row := range t.rows {
		if row.element.Symbol != symbol {
			continue
		}
		cell := row.cells[idx]
		if !cell.assignable {
			continue
		}
		applied := cell.Set(value)
		if t.metrics != nil {
			t.metrics.countSync(applied)
		}
	}
}

// UpdateSyncedFields recomputes row enablement against the target table's
// current row set: a row is disabled when some other row in the target also
// holds its element. The target table then re-enables the last occurrence of
// each symbol, which is the editable source of truth, and re-broadcasts its
// synced values so freshly enabled rows show what was last set.
func (t *CompTable) UpdateSyncedFields(targetRows []*CompRow) {
	count := make(map[string]int)
	for _, tr := range targetRows {
		if !tr.element.IsZero() {
			count[tr.element.Symbol]++
		}
	}
	for _, row := range t.rows {
		if row.element.IsZero() {
			continue
		}
		others := count[row.element.Symbol]
		if t.kind == KindTarget && containsRow(targetRows, row) {
			others--
		}
		row.setEnabled(others == 0)
	}
	if t.kind != KindTarget {
		return
	}
	seen := make(map[string]bool)
	for i := len(t.rows) - 1; i >= 0; i-- {
		row := t.rows[i]
		sym := row.element.Symbol
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		row.setEnabled(true)
		for j, f := range t.fields {
			if !f.Synced() || !row.cells[j].assignable {
				continue
			}
			t.emitSyncable(f, row.cells[j].Value(), row)
		}
	}
}

// UpdateAllSyncedValues pulls the synced values of the last occurrence of
// each element in targetRows into this table.
func (t *CompTable) UpdateAllSyncedValues(targetRows []*CompRow) {
	seen := make(map[string]bool)
	for i := len(targetRows) - 1; i >= 0; i-- {
		row := targetRows[i]
		sym := row.element.Symbol
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		for j, f := range row.fields {
			if !f.Synced() || !row.cells[j].assignable {
				continue
			}
			t.UpdateSyncedValue(sym, f.ID(), row.cells[j].Value())
		}
	}
}

// GetArguments exports all rows in row order.
func (t *CompTable) GetArguments() []domain.RowArguments {
	out := make([]domain.RowArguments, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.GetArguments())
	}
	return out
}

// SetArguments bulk-loads rows, resolving each symbol against cat. Rows that
// cannot be loaded are reported as human-readable diagnostics and skipped;
// the load never aborts as a whole.
func (t *CompTable) SetArguments(args []domain.RowArguments, cat *catalog.Catalog) []string {
	var diags []string
	for _, arg := range args {
		row := t.AddRow()
		if row == nil {
			diags = append(diags, fmt.Sprintf("element %q not loaded, too many elements", arg.Symbol))
			continue
		}
		el, ok := cat.FromSymbol(arg.Symbol)
		if !ok {
			diags = append(diags, fmt.Sprintf("element %q not supported", arg.Symbol))
			t.RemoveRow(len(t.rows) - 1)
			continue
		}
		t.SetElement(row, el)
		row.applyArguments(arg)
	}
	t.LimitColumns()
	return diags
}

// Receive handles bus events. A global atomic density (target only) forces
// every row's density column; clearing it restores the tabulated values.
func (t *CompTable) Receive(values Settings) {
	if t.kind != KindTarget {
		return
	}
	v, ok := values["atomic_global_density"]
	if !ok {
		return
	}
	switch density := v.(type) {
	case float64:
		for _, row := range t.rows {
			if cell := row.Cell(FieldAtomicDensity); cell != nil {
				cell.Set(density)
				cell.setEnabled(false)
			}
		}
	case bool:
		for _, row := range t.rows {
			cell := row.Cell(FieldAtomicDensity)
			if cell == nil {
				continue
			}
			if !row.element.IsZero() {
				cell.Set(row.element.AtomicDensity)
			}
			if row.enabled {
				cell.setEnabled(true)
			}
		}
	}
}

func (t *CompTable) emit(values Settings) {
	if t.publish != nil && values != nil {
		t.publish(values)
	}
}

func (t *CompTable) fireContentChanged() {
	for _, fn := range t.contentChanged {
		fn()
	}
}

func containsRow(rows []*CompRow, row *CompRow) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}
