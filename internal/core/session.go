package core

import (
	"bcaguide/pkg/catalog"
	"bcaguide/pkg/domain"
)

// SessionConfig sizes one configuration tab.
type SessionConfig struct {
	// Simulation names the external program this session prepares input for.
	Simulation string
	// MaxComponents bounds the combined row count of beam and target.
	MaxComponents int
	// Initial global target structure.
	TargetThickness float64
	TargetSegments  int
	// Metrics may be nil.
	Metrics *Metrics
}

// Session owns one configuration tab: the beam and target composition
// tables, the target layer table, the settings panels, and the bus wiring
// that keeps them coherent. All cross-component protocols (field sync, row
// enablement, value adoption, positional layer columns) live here.
type Session struct {
	cfg      SessionConfig
	registry *FieldRegistry
	counter  *Counter
	bus      *Bus
	shared   []Field

	Beam           *CompTable
	Target         *CompTable
	Layers         *LayerTable
	BeamSettings   *BeamSettings
	TargetSettings *TargetSettings

	general    domain.GeneralArguments
	additional []string
	loading    bool
	edited     []func()
}

// NewSession builds a fully wired session.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		cfg:      cfg,
		registry: NewFieldRegistry(),
		counter:  NewCounter(cfg.MaxComponents),
	}
	s.bus = NewBus(cfg.Metrics)

	// The synced columns are shared between beam and target: one descriptor,
	// one field id, which is the join key of the sync protocol.
	s.shared = []Field{
		s.registry.Register(FieldSpec{
			Unique: FieldMaxAtomicFraction, Label: "Max. atomic fraction",
			Synced: true, Enabled: true, Default: 1,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldAtomicMass, Label: "Atomic mass",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldAtomicDensity, Label: "Atomic density",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldSurfaceBindingEnergy, Label: "Surface binding energy",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldDisplacementEnergy, Label: "Displacement energy",
			Synced: true, ResetNeg: true, Enabled: true,
		}),
	}
	beamOnly := []Field{
		s.registry.Register(FieldSpec{
			Unique: FieldAbundance, Label: "Abundance",
			Limit: 1, HasLimit: true, ResetNeg: true, Enabled: true, Default: 1,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldEnergy, Label: "Kinetic energy",
			Enabled: true, Default: 500,
		}),
		s.registry.Register(FieldSpec{
			Unique: FieldAngle, Label: "Angle of incidence",
			Enabled: true,
		}),
	}

	s.Beam = NewCompTable(KindBeam, s.registry, s.counter,
		append(beamOnly, s.shared...)).WithMetrics(cfg.Metrics)
	s.Target = NewCompTable(KindTarget, s.registry, s.counter,
		s.shared).WithMetrics(cfg.Metrics)
	s.Layers = NewLayerTable(s.registry).WithMetrics(cfg.Metrics)
	s.BeamSettings = NewBeamSettings()
	s.TargetSettings = NewTargetSettings(cfg.TargetThickness, cfg.TargetSegments)

	s.Beam.BindBus(s.bus)
	s.Target.BindBus(s.bus)
	s.Layers.BindBus(s.bus)
	s.BeamSettings.BindBus(s.bus)
	s.TargetSettings.BindBus(s.bus)
	s.Layers.SetParameters(cfg.TargetThickness, float64(cfg.TargetSegments))

	// Synced edits in the target fan out to both tables; idempotent cell
	// writes terminate the resulting cascade.
	s.Target.OnSyncableValueChanged(func(symbol string, fieldID int, value float64) {
		s.Beam.UpdateSyncedValue(symbol, fieldID, value)
		s.Target.UpdateSyncedValue(symbol, fieldID, value)
	})

	// The layer table's element columns mirror the target row positions.
	s.Target.OnRowAdded(func(*CompRow) {
		s.Layers.AddElementColumn("")
	})
	s.Target.OnRowRemoved(func(idx int) {
		s.Layers.RemoveElementColumn(idx)
		s.refreshEnablement()
		s.Layers.MarkDangling(s.targetSymbols())
	})
	s.Target.OnElementChanged(func(row *CompRow, el domain.Element) {
		if idx := s.Target.RowIndex(row); idx >= 0 {
			s.Layers.RenameElementColumn(idx, el.Symbol)
		}
		if !el.IsZero() {
			s.adoptSyncedValues(row, el.Symbol)
		}
		s.refreshEnablement()
		s.Layers.MarkDangling(s.targetSymbols())
	})
	s.Beam.OnElementChanged(func(row *CompRow, el domain.Element) {
		if !el.IsZero() {
			s.Beam.UpdateAllSyncedValues(s.Target.Rows())
		}
		s.refreshEnablement()
	})
	s.Beam.OnRowRemoved(func(int) { s.refreshEnablement() })

	fire := func() { s.fireEdited() }
	s.Beam.OnContentChanged(fire)
	s.Target.OnContentChanged(fire)
	s.Layers.OnContentChanged(fire)

	return s
}

// Bus returns the session's broadcast bus for additional subscribers.
func (s *Session) Bus() *Bus { return s.bus }

// Counter returns the shared capacity counter.
func (s *Session) Counter() *Counter { return s.counter }

// Simulation returns the external program name this session targets.
func (s *Session) Simulation() string { return s.cfg.Simulation }

// OnEdited registers an unsaved-changes observer; loading a configuration
// does not count as an edit.
func (s *Session) OnEdited(fn func()) {
	s.edited = append(s.edited, fn)
}

// OnLayersChanged forwards layer stack recomputations to fn.
func (s *Session) OnLayersChanged(fn func([]domain.LayerRecord)) {
	s.Layers.OnLayersChanged(fn)
}

// General returns the simulation-wide settings.
func (s *Session) General() domain.GeneralArguments { return s.general }

// SetGeneral replaces the simulation-wide settings.
func (s *Session) SetGeneral(args domain.GeneralArguments) {
	s.general = args
	s.fireEdited()
}

func (s *Session) fireEdited() {
	if s.loading {
		return
	}
	for _, fn := range s.edited {
		fn()
	}
}

func (s *Session) refreshEnablement() {
	rows := s.Target.Rows()
	s.Beam.UpdateSyncedFields(rows)
	s.Target.UpdateSyncedFields(rows)
}

func (s *Session) targetSymbols() map[string]bool {
	valid := make(map[string]bool)
	for _, row := range s.Target.Rows() {
		if row.ContainsData() {
			valid[row.Element().Symbol] = true
		}
	}
	return valid
}

// adoptSyncedValues makes a row that just received an element pick up the
// synced values already in use for that symbol. The donor is the last other
// occurrence in the target, falling back to the last occurrence in the beam;
// without one, the freshly seeded tabulated values stand.
func (s *Session) adoptSyncedValues(row *CompRow, symbol string) {
	donor := lastOccurrence(s.Target.Rows(), symbol, row)
	if donor == nil {
		donor = lastOccurrence(s.Beam.Rows(), symbol, row)
	}
	if donor == nil {
		return
	}
	for _, f := range s.shared {
		cell := donor.Cell(f.Unique())
		if cell == nil {
			continue
		}
		s.Target.UpdateSyncedValue(symbol, f.ID(), cell.Value())
		s.Beam.UpdateSyncedValue(symbol, f.ID(), cell.Value())
	}
}

func lastOccurrence(rows []*CompRow, symbol string, skip *CompRow) *CompRow {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i] == skip {
			continue
		}
		if rows[i].Element().Symbol == symbol {
			return rows[i]
		}
	}
	return nil
}

// GetArguments exports the complete session state.
func (s *Session) GetArguments() domain.SimulationArguments {
	return domain.SimulationArguments{
		Simulation: s.cfg.Simulation,
		BeamArgs:   s.BeamSettings.GetArguments(),
		BeamRows:   s.Beam.GetArguments(),
		TargetArgs: s.TargetSettings.GetArguments(),
		TargetRows: s.Target.GetArguments(),
		Structure:  s.Layers.GetArguments(),
		Settings:   s.general,
		Additional: append([]string(nil), s.additional...),
	}
}

// SetArguments replaces the session state with args, resolving element
// symbols against cat. Unresolvable rows are skipped and reported as
// diagnostics; the rest of the configuration still loads.
func (s *Session) SetArguments(args domain.SimulationArguments, cat *catalog.Catalog) []string {
	s.loading = true
	defer func() { s.loading = false }()

	s.Reset()
	s.BeamSettings.SetArguments(args.BeamArgs)
	s.TargetSettings.SetArguments(args.TargetArgs)
	s.general = args.Settings
	s.additional = append([]string(nil), args.Additional...)

	var diags []string
	diags = append(diags, s.Target.SetArguments(args.TargetRows, cat)...)
	diags = append(diags, s.Beam.SetArguments(args.BeamRows, cat)...)
	s.Layers.SetArguments(args.Structure)
	s.refreshEnablement()
	s.Layers.MarkDangling(s.targetSymbols())
	return diags
}

// Reset clears all tables and panels back to an empty session.
func (s *Session) Reset() {
	s.Beam.Reset()
	s.Target.Reset()
	s.Layers.Reset()
	s.general = domain.GeneralArguments{}
	s.additional = nil
}
