package core

import (
	"fmt"

	"bcaguide/pkg/domain"
)

// Layer table column names.
const (
	FieldLayerSegments  = "layer_segments"
	FieldLayerThickness = "layer_thickness"
	FieldLayerAbundance = "layer_abundance"
)

// LayerRow is one depth layer of the target structure. Abundance cells are
// positional: cell i belongs to element column i of the owning table.
type LayerRow struct {
	name       string
	segments   *Cell
	thickness  *Cell
	abundances []*Cell
}

// Name returns the layer name.
func (r *LayerRow) Name() string { return r.name }

// Segments returns the segment-count cell.
func (r *LayerRow) Segments() *Cell { return r.segments }

// Thickness returns the computed thickness cell.
func (r *LayerRow) Thickness() *Cell { return r.thickness }

// Abundances returns the abundance cells in element-column order.
func (r *LayerRow) Abundances() []*Cell { return r.abundances }

// AbundanceValues returns the abundance values in element-column order.
func (r *LayerRow) AbundanceValues() []float64 {
	out := make([]float64, len(r.abundances))
	for i, c := range r.abundances {
		out[i] = c.Value()
	}
	return out
}

// LayerTable models the target depth structure: an ordered stack of layers
// splitting a fixed segment budget, with per-layer element abundances in
// positional columns mirroring the target composition table.
type LayerTable struct {
	reg    *FieldRegistry
	fields struct {
		segments  Field
		thickness Field
	}

	rows     []*LayerRow
	elements []string
	abFields []Field
	dangling []bool

	targetThickness float64
	targetSegments  float64
	enabled         bool
	limiting        bool
	nextName        int

	layersChanged  []func([]domain.LayerRecord)
	contentChanged []func()
	publish        func(Settings)
	metrics        *Metrics
}

// NewLayerTable builds an empty layer table registered against reg.
func NewLayerTable(reg *FieldRegistry) *LayerTable {
	t := &LayerTable{reg: reg, enabled: true, nextName: 1}
	t.fields.segments = reg.Register(FieldSpec{
		Unique: FieldLayerSegments, Label: "Segments", ResetNeg: true, Enabled: true,
	})
	t.fields.thickness = reg.Register(FieldSpec{
		Unique: FieldLayerThickness, Label: "Thickness",
	})
	return t
}

// WithMetrics attaches engine metrics (nil disables instrumentation).
func (t *LayerTable) WithMetrics(m *Metrics) *LayerTable {
	t.metrics = m
	return t
}

// Rows returns the layer stack in depth order.
func (t *LayerTable) Rows() []*LayerRow { return t.rows }

// Len returns the number of layers.
func (t *LayerTable) Len() int { return len(t.rows) }

// Elements returns the element symbols of the positional columns.
func (t *LayerTable) Elements() []string {
	return append([]string(nil), t.elements...)
}

// Enabled reports whether the table accepts user edits.
func (t *LayerTable) Enabled() bool { return t.enabled }

// SegmentThickness returns the depth covered by one segment, derived from
// the global target thickness and segment count.
func (t *LayerTable) SegmentThickness() float64 {
	if t.targetSegments <= 0 {
		return 0
	}
	return t.targetThickness / t.targetSegments
}

// OnLayersChanged registers an observer of the recomputed layer stack.
func (t *LayerTable) OnLayersChanged(fn func([]domain.LayerRecord)) {
	t.layersChanged = append(t.layersChanged, fn)
}

// OnContentChanged registers an edit observer (unsaved-changes tracking).
func (t *LayerTable) OnContentChanged(fn func()) {
	t.contentChanged = append(t.contentChanged, fn)
}

// BindBus subscribes the table and directs its emits to b.
func (t *LayerTable) BindBus(b *Bus) {
	b.Subscribe(t)
	t.publish = b.Publish
}

// SetParameters replaces both global structure parameters at once.
func (t *LayerTable) SetParameters(thickness, segments float64) {
	t.targetThickness = thickness
	t.targetSegments = segments
	t.UpdateLayers()
}

// SetTargetSegmentsCount updates the global segment budget.
func (t *LayerTable) SetTargetSegmentsCount(segments float64) {
	t.targetSegments = segments
	t.UpdateLayers()
}

// SetTargetThickness updates the global target thickness.
func (t *LayerTable) SetTargetThickness(thickness float64) {
	t.targetThickness = thickness
	t.UpdateLayers()
}

// AddRow appends a layer with a generated name and zero segments.
func (t *LayerTable) AddRow() *LayerRow {
	row := t.addRow(fmt.Sprintf("Layer%d", t.nextName))
	t.nextName++
	t.UpdateLayers()
	t.fireContentChanged()
	return row
}

func (t *LayerTable) addRow(name string) *LayerRow {
	row := &LayerRow{
		name:      name,
		segments:  newCell(t.fields.segments),
		thickness: newCell(t.fields.thickness),
	}
	row.thickness.setEnabled(false)
	row.segments.onChange = func(_, _ float64) { t.segmentsEdited(row) }
	for range t.elements {
		row.abundances = append(row.abundances, t.newAbundanceCell(row))
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *LayerTable) newAbundanceCell(row *LayerRow) *Cell {
	cell := newCell(t.abFields[len(row.abundances)])
	cell.onChange = func(_, _ float64) { t.abundanceEdited(row, cell) }
	return cell
}

// RemoveRow deletes the layer at idx.
func (t *LayerTable) RemoveRow(idx int) {
	if idx < 0 || idx >= len(t.rows) {
		return
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	t.UpdateLayers()
	t.fireContentChanged()
}

// MoveRow swaps the layers at i and j.
func (t *LayerTable) MoveRow(i, j int) {
	if i < 0 || j < 0 || i >= len(t.rows) || j >= len(t.rows) || i == j {
		return
	}
	t.rows[i], t.rows[j] = t.rows[j], t.rows[i]
	t.UpdateLayers()
	t.fireContentChanged()
}

// RenameRow sets the name of the layer at idx.
func (t *LayerTable) RenameRow(idx int, name string) {
	if idx < 0 || idx >= len(t.rows) {
		return
	}
	t.rows[idx].name = name
	t.fireLayersChanged()
	t.fireContentChanged()
}

// AddElementColumn appends a positional abundance column for symbol. Every
// existing layer gets a zero abundance cell for it.
func (t *LayerTable) AddElementColumn(symbol string) {
	t.abFields = append(t.abFields, t.reg.Register(FieldSpec{
		Unique: FieldLayerAbundance, Label: symbol, Limit: 1, HasLimit: true,
		ResetNeg: true, Enabled: true,
	}))
	t.elements = append(t.elements, symbol)
	t.dangling = append(t.dangling, false)
	for _, row := range t.rows {
		row.abundances = append(row.abundances, t.newAbundanceCell(row))
	}
	t.UpdateLayers()
}

// RenameElementColumn relabels column idx; abundance values are kept, which
// is what makes swapping one element for another non-destructive.
func (t *LayerTable) RenameElementColumn(idx int, symbol string) {
	if idx < 0 || idx >= len(t.elements) {
		return
	}
	t.elements[idx] = symbol
	t.UpdateLayers()
}

// RemoveElementColumn drops column idx and its abundance cells.
func (t *LayerTable) RemoveElementColumn(idx int) {
	if idx < 0 || idx >= len(t.elements) {
		return
	}
	t.elements = append(t.elements[:idx], t.elements[idx+1:]...)
	t.abFields = append(t.abFields[:idx], t.abFields[idx+1:]...)
	t.dangling = append(t.dangling[:idx], t.dangling[idx+1:]...)
	for _, row := range t.rows {
		row.abundances = append(row.abundances[:idx], row.abundances[idx+1:]...)
	}
	t.UpdateLayers()
}

// MarkDangling flags every column whose symbol is absent from valid. A
// dangling column means the target composition no longer contains that
// element; its abundances are highlighted rather than discarded.
func (t *LayerTable) MarkDangling(valid map[string]bool) {
	for i, sym := range t.elements {
		t.dangling[i] = !valid[sym]
	}
	t.UpdateLayers()
}

func (t *LayerTable) segmentsEdited(row *LayerRow) {
	t.updateLayers(t.rowIndex(row), -1)
	t.fireContentChanged()
}

func (t *LayerTable) abundanceEdited(row *LayerRow, cell *Cell) {
	col := -1
	for i, c := range row.abundances {
		if c == cell {
			col = i
			break
		}
	}
	t.updateLayers(t.rowIndex(row), col)
	t.fireContentChanged()
}

func (t *LayerTable) rowIndex(row *LayerRow) int {
	for i, r := range t.rows {
		if r == row {
			return i
		}
	}
	return -1
}

// UpdateLayers recomputes the derived state of the whole stack: the segment
// budget, per-layer thickness, per-layer abundance sums, and the highlight
// flags front-ends render.
func (t *LayerTable) UpdateLayers() { t.updateLayers(-1, -1) }

func (t *LayerTable) updateLayers(editedRow, editedCol int) {
	if t.limiting {
		return
	}
	t.limiting = true

	// Segment counts across all layers share the global budget.
	segCells := make([]*Cell, len(t.rows))
	for i, row := range t.rows {
		segCells[i] = row.segments
	}
	t.metrics.countLimit(LimitSum(segCells, t.targetSegments, editedRow))

	segmentThickness := t.SegmentThickness()
	for i, row := range t.rows {
		row.thickness.Set(row.segments.Value() * segmentThickness)

		// Abundances of one layer are fractions of that layer.
		edited := -1
		if i == editedRow {
			edited = editedCol
		}
		t.metrics.countLimit(LimitSum(row.abundances, 1.0, edited))

		row.segments.setHighlight(row.segments.Value() <= 0)
	}
	// A column whose abundance is zero in every layer contributes no material
	// to the stack; flag all of its cells. Dangling columns (element gone from
	// the composition) are flagged the same way.
	for col := range t.abFields {
		allZero := len(t.rows) > 0
		for _, row := range t.rows {
			if col < len(row.abundances) && row.abundances[col].Value() > 0 {
				allZero = false
				break
			}
		}
		bad := allZero || t.dangling[col]
		for _, row := range t.rows {
			if col < len(row.abundances) {
				row.abundances[col].setHighlight(bad)
			}
		}
	}
	t.limiting = false

	t.fireLayersChanged()
	t.emitFirstAbundances()
}

func (t *LayerTable) fireLayersChanged() {
	if len(t.layersChanged) == 0 {
		return
	}
	records := t.Records()
	for _, fn := range t.layersChanged {
		fn(records)
	}
}

func (t *LayerTable) emitFirstAbundances() {
	if t.publish == nil || len(t.rows) == 0 {
		return
	}
	t.publish(Settings{
		"layer_table_rows": len(t.rows),
		"first_abundances": t.rows[0].AbundanceValues(),
	})
}

// Records exports the stack for preview rendering. Abundances stay in
// column order; the element symbols ride along so renderers need not know
// the positional contract.
func (t *LayerTable) Records() []domain.LayerRecord {
	segmentThickness := t.SegmentThickness()
	elements := t.Elements()
	out := make([]domain.LayerRecord, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.LayerRecord{
			Name:             row.name,
			SegmentCount:     int(row.segments.Value()),
			SegmentThickness: segmentThickness,
			Elements:         elements,
			Abundances:       row.AbundanceValues(),
		})
	}
	return out
}

// GetArguments exports the stack positionally for persistence.
func (t *LayerTable) GetArguments() []domain.StructureArguments {
	out := make([]domain.StructureArguments, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.StructureArguments{
			Name:       row.name,
			Segments:   int(row.segments.Value()),
			Thickness:  row.thickness.Value(),
			Abundances: row.AbundanceValues(),
		})
	}
	return out
}

// SetArguments bulk-loads the stack. Abundance values beyond the current
// element columns are dropped; missing ones default to zero.
func (t *LayerTable) SetArguments(args []domain.StructureArguments) {
	t.rows = nil
	for _, arg := range args {
		row := t.addRow(arg.Name)
		row.segments.value = float64(arg.Segments)
		for i, v := range arg.Abundances {
			if i < len(row.abundances) {
				row.abundances[i].value = v
			}
		}
	}
	t.nextName = len(t.rows) + 1
	t.UpdateLayers()
}

// Reset removes all layers and element columns.
func (t *LayerTable) Reset() {
	t.rows = nil
	t.elements = nil
	t.abFields = nil
	t.dangling = nil
	t.nextName = 1
	t.fireLayersChanged()
}

// Receive handles bus events: global structure parameter changes and the
// table-wide enable toggle.
func (t *LayerTable) Receive(values Settings) {
	if v, ok := values["segments"].(float64); ok {
		t.SetTargetSegmentsCount(v)
	}
	if v, ok := values["thickness"].(float64); ok {
		t.SetTargetThickness(v)
	}
	if v, ok := values["enable_layer_table"].(bool); ok {
		t.enabled = v
	}
}

func (t *LayerTable) fireContentChanged() {
	for _, fn := range t.contentChanged {
		fn()
	}
}
