package domain

// SimulationMode selects the calculation mode of the simulation program.
type SimulationMode string

// Supported simulation modes.
const (
	ModeStatic         SimulationMode = "static"
	ModeDynamic        SimulationMode = "dynamic"
	ModeStaticNoRecoil SimulationMode = "static_no_recoil"
)

// RowArguments is the serialized form of one composition row. Index is the
// 0-based rank assigned by the capacity counter at the time of export.
type RowArguments struct {
	Index             int     `json:"index"`
	Symbol            string  `json:"symbol"`
	Element           Element `json:"element"`
	Abundance         float64 `json:"abundance"`
	MaxAtomicFraction float64 `json:"max_atomic_fraction"`
	Energy            float64 `json:"energy,omitempty"`
	Angle             float64 `json:"angle,omitempty"`
}

// StructureArguments is the serialized form of one target layer.
type StructureArguments struct {
	Name       string    `json:"name"`
	Segments   int       `json:"segments"`
	Thickness  float64   `json:"thickness"`
	Abundances []float64 `json:"abundances"`
}

// GeneralBeamArguments carries beam-wide settings.
type GeneralBeamArguments struct {
	KineticEnergyMode string `json:"kinetic_energy_mode,omitempty"`
	AngleMode         string `json:"angle_mode,omitempty"`
}

// GeneralTargetArguments carries target-wide settings. Thickness is the total
// target depth in Å, Segments the number of discretization segments it is
// divided into.
type GeneralTargetArguments struct {
	Thickness float64 `json:"thickness"`
	Segments  int     `json:"segments"`
}

// GeneralArguments carries simulation-wide settings.
type GeneralArguments struct {
	Title   string         `json:"title"`
	Comment string         `json:"comment,omitempty"`
	Mode    SimulationMode `json:"mode,omitempty"`
	Fluence float64        `json:"fluence,omitempty"`
	Threads int            `json:"threads,omitempty"`
}

// SimulationArguments is the complete serialized state of one configuration
// tab: everything the external input-file writer needs, and everything a
// later load restores.
type SimulationArguments struct {
	Simulation string                 `json:"simulation"`
	BeamArgs   GeneralBeamArguments   `json:"beam_args"`
	BeamRows   []RowArguments         `json:"beam_rows"`
	TargetArgs GeneralTargetArguments `json:"target_args"`
	TargetRows []RowArguments         `json:"target_rows"`
	Structure  []StructureArguments   `json:"structure"`
	Settings   GeneralArguments       `json:"settings"`
	Additional []string               `json:"additional,omitempty"`
}

// LayerRecord is the structural snapshot of one layer emitted for preview
// rendering. SegmentThickness is the depth of a single segment; the layer's
// total thickness is SegmentCount*SegmentThickness.
type LayerRecord struct {
	Name             string    `json:"name"`
	SegmentCount     int       `json:"segment_count"`
	SegmentThickness float64   `json:"segment_thickness"`
	Elements         []string  `json:"elements"`
	Abundances       []float64 `json:"abundances"`
}
