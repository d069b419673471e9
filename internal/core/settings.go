package core

import "bcaguide/pkg/domain"

// BeamSettings holds the beam-wide parameters of the settings panel.
type BeamSettings struct {
	args    domain.GeneralBeamArguments
	publish func(Settings)
}

// NewBeamSettings constructs an empty beam settings panel.
func NewBeamSettings() *BeamSettings { return &BeamSettings{} }

// BindBus subscribes the panel and directs its emits to b.
func (s *BeamSettings) BindBus(b *Bus) {
	b.Subscribe(s)
	s.publish = b.Publish
}

// Receive handles bus events. The beam panel currently reacts to none.
func (s *BeamSettings) Receive(Settings) {}

// GetArguments exports the panel state.
func (s *BeamSettings) GetArguments() domain.GeneralBeamArguments { return s.args }

// SetArguments restores the panel state.
func (s *BeamSettings) SetArguments(args domain.GeneralBeamArguments) { s.args = args }

// TargetSettings holds the target-wide parameters. Thickness and segment
// count changes are broadcast so the layer table can recompute its segment
// budget and per-segment depth.
type TargetSettings struct {
	thickness     float64
	segments      int
	globalDensity float64
	globalSet     bool
	publish       func(Settings)
}

// NewTargetSettings constructs a target settings panel.
func NewTargetSettings(thickness float64, segments int) *TargetSettings {
	return &TargetSettings{thickness: thickness, segments: segments}
}

// BindBus subscribes the panel and directs its emits to b.
func (s *TargetSettings) BindBus(b *Bus) {
	b.Subscribe(s)
	s.publish = b.Publish
}

// Receive handles bus events. The target panel currently reacts to none.
func (s *TargetSettings) Receive(Settings) {}

// Thickness returns the total target depth.
func (s *TargetSettings) Thickness() float64 { return s.thickness }

// Segments returns the global segment budget.
func (s *TargetSettings) Segments() int { return s.segments }

// SetThickness updates the target depth and broadcasts it.
func (s *TargetSettings) SetThickness(v float64) {
	if v < 0 || v == s.thickness {
		return
	}
	s.thickness = v
	s.emit(Settings{"thickness": v})
}

// SetSegments updates the segment budget and broadcasts it.
func (s *TargetSettings) SetSegments(v int) {
	if v < 0 || v == s.segments {
		return
	}
	s.segments = v
	s.emit(Settings{"segments": float64(v)})
}

// SetGlobalDensity forces a single atomic density on every target row.
func (s *TargetSettings) SetGlobalDensity(v float64) {
	s.globalDensity = v
	s.globalSet = true
	s.emit(Settings{"atomic_global_density": v})
}

// ClearGlobalDensity restores per-element tabulated densities.
func (s *TargetSettings) ClearGlobalDensity() {
	if !s.globalSet {
		return
	}
	s.globalSet = false
	s.emit(Settings{"atomic_global_density": false})
}

// GetArguments exports the panel state.
func (s *TargetSettings) GetArguments() domain.GeneralTargetArguments {
	return domain.GeneralTargetArguments{Thickness: s.thickness, Segments: s.segments}
}

// SetArguments restores the panel state, broadcasting the new structure
// parameters.
func (s *TargetSettings) SetArguments(args domain.GeneralTargetArguments) {
	s.thickness = args.Thickness
	s.segments = args.Segments
	s.emit(Settings{"thickness": s.thickness, "segments": float64(s.segments)})
}

func (s *TargetSettings) emit(values Settings) {
	if s.publish != nil {
		s.publish(values)
	}
}
