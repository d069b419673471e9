package core

import (
	"testing"

	"bcaguide/pkg/catalog"
	"bcaguide/pkg/domain"
)

func newTestPair(maxRows int) (*CompTable, *CompTable) {
	reg := NewFieldRegistry()
	counter := NewCounter(maxRows)
	shared := []Field{
		reg.Register(FieldSpec{
			Unique: FieldAtomicMass, Label: "Atomic mass",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
		reg.Register(FieldSpec{
			Unique: FieldSurfaceBindingEnergy, Label: "Surface binding energy",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
	}
	beamOnly := []Field{
		reg.Register(FieldSpec{
			Unique: FieldAbundance, Label: "Abundance",
			Limit: 1, HasLimit: true, ResetNeg: true, Enabled: true, Default: 1,
		}),
	}
	beam := NewCompTable(KindBeam, reg, counter, append(beamOnly, shared...))
	target := NewCompTable(KindTarget, reg, counter, shared)
	target.OnSyncableValueChanged(func(sym string, id int, v float64) {
		beam.UpdateSyncedValue(sym, id, v)
		target.UpdateSyncedValue(sym, id, v)
	})
	return beam, target
}

func testElement(t *testing.T, symbol string) domain.Element {
	t.Helper()
	el, ok := catalog.Default().FromSymbol(symbol)
	if !ok {
		t.Fatalf("element %q missing from default catalog", symbol)
	}
	return el
}

func TestCompTableCapacityShared(t *testing.T) {
	beam, target := newTestPair(3)
	if beam.AddRow() == nil || target.AddRow() == nil || target.AddRow() == nil {
		t.Fatal("adding within capacity failed")
	}
	if beam.AddEnabled() || target.AddEnabled() {
		t.Fatal("add still enabled at capacity")
	}
	if beam.AddRow() != nil {
		t.Fatal("added a row beyond the shared capacity")
	}
	target.RemoveRow(1)
	if !beam.AddEnabled() {
		t.Fatal("add not re-enabled after removal")
	}
	if beam.AddRow() == nil {
		t.Fatal("re-add after removal failed")
	}
}

func TestCompTableSetElementSeedsCells(t *testing.T) {
	_, target := newTestPair(4)
	row := target.AddRow()
	fe := testElement(t, "Fe")

	if n := target.SetElement(row, fe); n != 1 {
		t.Fatalf("occurrences = %d, want 1", n)
	}
	if got := row.Cell(FieldAtomicMass).Value(); got != fe.AtomicMass {
		t.Fatalf("atomic mass = %v, want %v", got, fe.AtomicMass)
	}
	if got := row.Cell(FieldSurfaceBindingEnergy).Value(); got != fe.SurfaceBindingEnergy {
		t.Fatalf("surface binding energy = %v, want %v", got, fe.SurfaceBindingEnergy)
	}

	other := target.AddRow()
	if n := target.SetElement(other, fe); n != 2 {
		t.Fatalf("occurrences = %d, want 2", n)
	}
}

func TestCompTableTargetEditPropagatesToBeam(t *testing.T) {
	beam, target := newTestPair(4)
	fe := testElement(t, "Fe")
	o := testElement(t, "O")

	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)
	beamO := beam.AddRow()
	beam.SetElement(beamO, o)
	targetFe := target.AddRow()
	target.SetElement(targetFe, fe)

	targetFe.Cell(FieldSurfaceBindingEnergy).Set(9.99)

	if got := beamFe.Cell(FieldSurfaceBindingEnergy).Value(); got != 9.99 {
		t.Fatalf("beam Fe surface binding energy = %v, want 9.99", got)
	}
	if got := beamO.Cell(FieldSurfaceBindingEnergy).Value(); got == 9.99 {
		t.Fatal("edit leaked to a row holding a different element")
	}
}

func TestCompTableBeamEditDoesNotPropagate(t *testing.T) {
	beam, target := newTestPair(4)
	fe := testElement(t, "Fe")

	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)
	targetFe := target.AddRow()
	target.SetElement(targetFe, fe)

	before := targetFe.Cell(FieldAtomicMass).Value()
	beamFe.Cell(FieldAtomicMass).Set(before + 5)

	if got := targetFe.Cell(FieldAtomicMass).Value(); got != before {
		t.Fatalf("beam edit reached the target: %v, want %v", got, before)
	}
}

func TestCompTableEnablementLastTargetOccurrenceWins(t *testing.T) {
	beam, target := newTestPair(6)
	fe := testElement(t, "Fe")

	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)
	first := target.AddRow()
	target.SetElement(first, fe)
	second := target.AddRow()
	target.SetElement(second, fe)

	beam.UpdateSyncedFields(target.Rows())
	target.UpdateSyncedFields(target.Rows())

	if beamFe.Enabled() {
		t.Fatal("beam occurrence should be disabled while the target holds Fe")
	}
	if first.Enabled() {
		t.Fatal("earlier target occurrence should be disabled")
	}
	if !second.Enabled() {
		t.Fatal("last target occurrence should stay enabled")
	}
}

func TestCompTableReenableRebroadcastsValues(t *testing.T) {
	beam, target := newTestPair(6)
	fe := testElement(t, "Fe")

	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)
	first := target.AddRow()
	target.SetElement(first, fe)
	second := target.AddRow()
	target.SetElement(second, fe)
	beam.UpdateSyncedFields(target.Rows())
	target.UpdateSyncedFields(target.Rows())

	// The enabled occurrence customizes a synced value, then goes away.
	second.Cell(FieldSurfaceBindingEnergy).Set(7.5)
	target.RemoveRow(target.RowIndex(second))
	beam.UpdateSyncedFields(target.Rows())
	target.UpdateSyncedFields(target.Rows())

	if !first.Enabled() {
		t.Fatal("surviving occurrence not re-enabled")
	}
	if got := beamFe.Cell(FieldSurfaceBindingEnergy).Value(); got != 7.5 {
		t.Fatalf("beam value after re-enable = %v, want 7.5", got)
	}
	if beamFe.Enabled() {
		t.Fatal("beam occurrence must stay disabled while Fe remains in the target")
	}
}

func TestCompTableNegativeSyncedWriteResetsToDefault(t *testing.T) {
	beam, target := newTestPair(4)
	fe := testElement(t, "Fe")

	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)
	targetFe := target.AddRow()
	target.SetElement(targetFe, fe)

	targetFe.Cell(FieldAtomicMass).Set(-4)

	if got := targetFe.Cell(FieldAtomicMass).Value(); got != 0 {
		t.Fatalf("negative write stored %v, want reset to 0", got)
	}
	if got := beamFe.Cell(FieldAtomicMass).Value(); got != 0 {
		t.Fatalf("propagated value = %v, want 0", got)
	}
}

func TestCompTableUpdateSyncedValueIgnoresUnknownField(t *testing.T) {
	beam, target := newTestPair(4)
	fe := testElement(t, "Fe")
	beamFe := beam.AddRow()
	beam.SetElement(beamFe, fe)

	before := beamFe.Cell(FieldAtomicMass).Value()
	beam.UpdateSyncedValue("Fe", 9999, 1.0)
	beam.UpdateSyncedValue("", target.fields[2].ID(), 1.0)
	if got := beamFe.Cell(FieldAtomicMass).Value(); got != before {
		t.Fatalf("value = %v, want %v", got, before)
	}
}

func TestCompTableAbundanceColumnLimited(t *testing.T) {
	beam, _ := newTestPair(4)
	fe := testElement(t, "Fe")
	o := testElement(t, "O")

	r1 := beam.AddRow()
	beam.SetElement(r1, fe)
	r2 := beam.AddRow()
	beam.SetElement(r2, o)

	// The new row's default abundance already forced the column back to 1.
	if sum := r1.Cell(FieldAbundance).Value() + r2.Cell(FieldAbundance).Value(); sum != 1 {
		t.Fatalf("abundance sum = %v, want 1", sum)
	}

	r1.Cell(FieldAbundance).Set(0.8)
	sum := r1.Cell(FieldAbundance).Value() + r2.Cell(FieldAbundance).Value()
	if sum > 1+sumEpsilon {
		t.Fatalf("abundance sum = %v, want <= 1", sum)
	}
	if got := r1.Cell(FieldAbundance).Value(); got != 0.8 {
		t.Fatalf("edited abundance = %v, want 0.8", got)
	}
}

func TestCompTableGlobalDensityOverride(t *testing.T) {
	reg := NewFieldRegistry()
	counter := NewCounter(4)
	shared := []Field{
		reg.Register(FieldSpec{
			Unique: FieldAtomicDensity, Label: "Atomic density",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
	}
	target := NewCompTable(KindTarget, reg, counter, shared)
	fe := testElement(t, "Fe")
	row := target.AddRow()
	target.SetElement(row, fe)

	target.Receive(Settings{"atomic_global_density": 0.0512})
	cell := row.Cell(FieldAtomicDensity)
	if cell.Value() != 0.0512 {
		t.Fatalf("density = %v, want forced 0.0512", cell.Value())
	}
	if cell.Enabled() {
		t.Fatal("forced density cell should be disabled")
	}

	target.Receive(Settings{"atomic_global_density": false})
	if cell.Value() != fe.AtomicDensity {
		t.Fatalf("density = %v, want tabulated %v", cell.Value(), fe.AtomicDensity)
	}
	if !cell.Enabled() {
		t.Fatal("density cell should be editable again")
	}
}

func TestCompTableGetArgumentsDetectsModifiedElement(t *testing.T) {
	_, target := newTestPair(4)
	fe := testElement(t, "Fe")
	row := target.AddRow()
	target.SetElement(row, fe)

	args := row.GetArguments()
	if args.Element.Modified {
		t.Fatal("untouched row reported a modified element")
	}

	row.Cell(FieldAtomicMass).Set(fe.AtomicMass + 1)
	args = row.GetArguments()
	if !args.Element.Modified {
		t.Fatal("customized atomic mass not reported as modification")
	}
	if args.Element.AtomicMass != fe.AtomicMass+1 {
		t.Fatalf("exported atomic mass = %v, want %v", args.Element.AtomicMass, fe.AtomicMass+1)
	}
}

func TestCompTableSetArgumentsDiagnostics(t *testing.T) {
	beam, _ := newTestPair(2)
	cat := catalog.Default()

	diags := beam.SetArguments([]domain.RowArguments{
		{Symbol: "Fe", Abundance: 0.5},
		{Symbol: "Xq", Abundance: 0.5},
		{Symbol: "O", Abundance: 0.5},
		{Symbol: "W", Abundance: 0.5},
	}, cat)

	if len(diags) != 2 {
		t.Fatalf("diagnostics = %v, want 2 entries", diags)
	}
	if beam.Len() != 2 {
		t.Fatalf("rows = %d, want 2", beam.Len())
	}
	if beam.Rows()[0].Element().Symbol != "Fe" || beam.Rows()[1].Element().Symbol != "O" {
		t.Fatalf("loaded symbols = %s, %s, want Fe, O",
			beam.Rows()[0].Element().Symbol, beam.Rows()[1].Element().Symbol)
	}
}

func TestCompTableResetReleasesCapacity(t *testing.T) {
	beam, target := newTestPair(3)
	beam.AddRow()
	target.AddRow()
	target.AddRow()
	target.Reset()
	if target.Len() != 0 {
		t.Fatalf("target rows = %d, want 0", target.Len())
	}
	if beam.AddRow() == nil || beam.AddRow() == nil {
		t.Fatal("capacity not released by reset")
	}
}
