package core

import (
	"testing"

	"bcaguide/pkg/catalog"
	"bcaguide/pkg/domain"
)

func newTestSession() *Session {
	return NewSession(SessionConfig{
		Simulation:      "sdtrimsp",
		MaxComponents:   5,
		TargetThickness: 1000,
		TargetSegments:  100,
	})
}

func TestSessionTargetDrivesBeamSync(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")

	beamRow := s.Beam.AddRow()
	s.Beam.SetElement(beamRow, fe)
	targetRow := s.Target.AddRow()
	s.Target.SetElement(targetRow, fe)

	if beamRow.Enabled() {
		t.Fatal("beam occurrence should be disabled once the target holds Fe")
	}
	if !targetRow.Enabled() {
		t.Fatal("sole target occurrence should be enabled")
	}

	targetRow.Cell(FieldSurfaceBindingEnergy).Set(8.25)
	if got := beamRow.Cell(FieldSurfaceBindingEnergy).Value(); got != 8.25 {
		t.Fatalf("beam surface binding energy = %v, want 8.25", got)
	}
}

func TestSessionAdoptsExistingValuesOnElementChange(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")

	beamRow := s.Beam.AddRow()
	s.Beam.SetElement(beamRow, fe)
	custom := fe.AtomicMass + 10
	beamRow.Cell(FieldAtomicMass).Set(custom)

	// The new target row adopts the customized value instead of clobbering
	// it with tabulated data.
	targetRow := s.Target.AddRow()
	s.Target.SetElement(targetRow, fe)

	if got := targetRow.Cell(FieldAtomicMass).Value(); got != custom {
		t.Fatalf("target atomic mass = %v, want adopted %v", got, custom)
	}
	if got := beamRow.Cell(FieldAtomicMass).Value(); got != custom {
		t.Fatalf("beam atomic mass = %v, want untouched %v", got, custom)
	}
}

func TestSessionDuplicateTargetOccurrences(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")

	first := s.Target.AddRow()
	s.Target.SetElement(first, fe)
	second := s.Target.AddRow()
	if n := s.Target.SetElement(second, fe); n != 2 {
		t.Fatalf("occurrences = %d, want 2", n)
	}

	if first.Enabled() || !second.Enabled() {
		t.Fatalf("enablement = %v/%v, want false/true (last occurrence wins)",
			first.Enabled(), second.Enabled())
	}

	second.Cell(FieldDisplacementEnergy).Set(42)
	s.Target.RemoveRow(s.Target.RowIndex(second))

	if !first.Enabled() {
		t.Fatal("surviving occurrence not re-enabled after removal")
	}
	if got := first.Cell(FieldDisplacementEnergy).Value(); got != 42 {
		t.Fatalf("displacement energy = %v, want 42 carried over", got)
	}
}

func TestSessionLayerColumnsMirrorTargetRows(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")
	o := testElement(t, "O")

	r1 := s.Target.AddRow()
	s.Target.SetElement(r1, fe)
	r2 := s.Target.AddRow()
	s.Target.SetElement(r2, o)

	if got := s.Layers.Elements(); len(got) != 2 || got[0] != "Fe" || got[1] != "O" {
		t.Fatalf("layer columns = %v, want [Fe O]", got)
	}

	s.Target.SetElement(r1, testElement(t, "Ni"))
	if got := s.Layers.Elements(); got[0] != "Ni" {
		t.Fatalf("layer columns = %v, want [Ni O]", got)
	}

	s.Target.RemoveRow(0)
	if got := s.Layers.Elements(); len(got) != 1 || got[0] != "O" {
		t.Fatalf("layer columns after removal = %v, want [O]", got)
	}
}

func TestSessionDanglingLayerColumnAfterElementSwap(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")

	row := s.Target.AddRow()
	s.Target.SetElement(row, fe)
	layer := s.Layers.AddRow()
	layer.Abundances()[0].Set(1)

	// Swapping the target element renames the column in place; nothing
	// dangles and the abundances survive.
	s.Target.SetElement(row, testElement(t, "Ni"))
	if layer.Abundances()[0].Highlighted() {
		t.Fatal("renamed column should not be flagged")
	}
	if got := layer.Abundances()[0].Value(); got != 1 {
		t.Fatalf("abundance = %v, want 1 kept across the swap", got)
	}
}

func TestSessionTargetSettingsReachLayerTable(t *testing.T) {
	s := newTestSession()
	layer := s.Layers.AddRow()
	layer.Segments().Set(80)

	s.TargetSettings.SetSegments(50)
	if got := layer.Segments().Value(); got != 50 {
		t.Fatalf("segments = %v, want clamped to the new budget 50", got)
	}

	s.TargetSettings.SetThickness(500)
	if got := layer.Thickness().Value(); got != 500 {
		t.Fatalf("thickness = %v, want 500", got)
	}
}

func TestSessionGlobalDensityToggle(t *testing.T) {
	s := newTestSession()
	fe := testElement(t, "Fe")
	row := s.Target.AddRow()
	s.Target.SetElement(row, fe)

	s.TargetSettings.SetGlobalDensity(0.07)
	if got := row.Cell(FieldAtomicDensity).Value(); got != 0.07 {
		t.Fatalf("density = %v, want forced 0.07", got)
	}

	s.TargetSettings.ClearGlobalDensity()
	if got := row.Cell(FieldAtomicDensity).Value(); got != fe.AtomicDensity {
		t.Fatalf("density = %v, want tabulated %v restored", got, fe.AtomicDensity)
	}
}

func TestSessionEditedObserver(t *testing.T) {
	s := newTestSession()
	edits := 0
	s.OnEdited(func() { edits++ })

	s.Target.AddRow()
	if edits == 0 {
		t.Fatal("adding a row did not count as an edit")
	}

	edits = 0
	s.SetArguments(s.GetArguments(), catalog.Default())
	if edits != 0 {
		t.Fatalf("loading a configuration fired %d edit events", edits)
	}
}

func TestSessionArgumentsRoundtrip(t *testing.T) {
	s := newTestSession()
	cat := catalog.Default()
	fe := testElement(t, "Fe")
	o := testElement(t, "O")

	beamRow := s.Beam.AddRow()
	s.Beam.SetElement(beamRow, testElement(t, "He"))
	beamRow.Cell(FieldEnergy).Set(1000)

	r1 := s.Target.AddRow()
	s.Target.SetElement(r1, fe)
	r2 := s.Target.AddRow()
	s.Target.SetElement(r2, o)
	r2.Cell(FieldSurfaceBindingEnergy).Set(5.5)

	layer := s.Layers.AddRow()
	layer.Segments().Set(60)
	layer.Abundances()[0].Set(0.3)
	layer.Abundances()[1].Set(0.7)

	s.SetGeneral(domain.GeneralArguments{Title: "oxide sputtering", Mode: domain.ModeDynamic})

	args := s.GetArguments()
	if args.Simulation != "sdtrimsp" {
		t.Fatalf("simulation = %q, want sdtrimsp", args.Simulation)
	}

	restored := newTestSession()
	diags := restored.SetArguments(args, cat)
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}

	if restored.Beam.Len() != 1 || restored.Target.Len() != 2 {
		t.Fatalf("rows = %d beam / %d target, want 1/2", restored.Beam.Len(), restored.Target.Len())
	}
	if got := restored.Beam.Rows()[0].Cell(FieldEnergy).Value(); got != 1000 {
		t.Fatalf("beam energy = %v, want 1000", got)
	}
	if got := restored.Target.Rows()[1].Cell(FieldSurfaceBindingEnergy).Value(); got != 5.5 {
		t.Fatalf("surface binding energy = %v, want 5.5", got)
	}
	if got := restored.Layers.Elements(); len(got) != 2 || got[0] != "Fe" || got[1] != "O" {
		t.Fatalf("layer columns = %v, want [Fe O]", got)
	}
	if got := restored.Layers.Rows()[0].AbundanceValues(); got[0] != 0.3 || got[1] != 0.7 {
		t.Fatalf("layer abundances = %v, want [0.3 0.7]", got)
	}
	if restored.General().Title != "oxide sputtering" {
		t.Fatalf("title = %q, want %q", restored.General().Title, "oxide sputtering")
	}
}

func TestSessionSetArgumentsReportsUnknownSymbols(t *testing.T) {
	s := newTestSession()
	args := domain.SimulationArguments{
		Simulation: "sdtrimsp",
		TargetRows: []domain.RowArguments{{Symbol: "Fe"}, {Symbol: "Zz"}},
	}
	diags := s.SetArguments(args, catalog.Default())
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want 1 entry", diags)
	}
	if s.Target.Len() != 1 {
		t.Fatalf("target rows = %d, want 1", s.Target.Len())
	}
}
