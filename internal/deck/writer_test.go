package deck

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"bcaguide/internal/archive"
	"bcaguide/pkg/domain"
)

func sampleArguments() domain.SimulationArguments {
	return domain.SimulationArguments{
		Simulation: "sdtrimsp",
		Settings:   domain.GeneralArguments{Title: "oxide sputtering", Mode: domain.ModeDynamic, Fluence: 1e17},
		BeamRows: []domain.RowArguments{
			{Symbol: "He", Abundance: 1, Energy: 500, Element: domain.Element{Symbol: "He", AtomicMass: 4.0026}},
		},
		TargetArgs: domain.GeneralTargetArguments{Thickness: 1000, Segments: 100},
		TargetRows: []domain.RowArguments{
			{Symbol: "Fe", MaxAtomicFraction: 1, Element: domain.Element{Symbol: "Fe", AtomicMass: 55.845, AtomicDensity: 0.08482, SurfaceBindingEnergy: 4.28, DisplacementEnergy: 25}},
			{Symbol: "O", MaxAtomicFraction: 1, Element: domain.Element{Symbol: "O", AtomicMass: 15.999, AtomicDensity: 0.0429, SurfaceBindingEnergy: 2.58, DisplacementEnergy: 10}},
		},
		Structure: []domain.StructureArguments{
			{Name: "Layer1", Segments: 60, Abundances: []float64{0.4, 0.6}},
			{Name: "Layer2", Segments: 40, Abundances: []float64{1, 0}},
		},
	}
}

func TestRenderDeckLayout(t *testing.T) {
	text := string(Render(sampleArguments()))

	for _, want := range []string{
		"* oxide sputtering",
		"simulation = sdtrimsp",
		"mode = dynamic",
		"fluence = 1e+17",
		"beam 1",
		"e0=500",
		"target 2 thickness=1000 segments=100",
		"sbe=4.28",
		"layers 2",
		"Layer1 segments=60 0.4 0.6",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("deck missing %q:\n%s", want, text)
		}
	}
}

func TestWriterArchivesUnderTimestampedKey(t *testing.T) {
	store := archive.NewMemory()
	w := NewWriter(store)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }
	ctx := context.Background()

	info, err := w.Archive(ctx, "oxide", sampleArguments())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !strings.HasPrefix(info.Key, "decks/oxide/20250601T120000") {
		t.Fatalf("key = %q, want timestamped under decks/oxide/", info.Key)
	}
	if info.Metadata["simulation"] != "sdtrimsp" {
		t.Fatalf("metadata = %v", info.Metadata)
	}

	_, rc, err := store.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if !strings.Contains(string(body), "simulation = sdtrimsp") {
		t.Fatalf("archived deck = %q", body)
	}
}

func TestWriterHistory(t *testing.T) {
	store := archive.NewMemory()
	w := NewWriter(store)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	w.now = func() time.Time { n++; return base.Add(time.Duration(n) * time.Second) }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := w.Archive(ctx, "oxide", sampleArguments()); err != nil {
			t.Fatalf("archive %d: %v", i, err)
		}
	}
	if _, err := w.Archive(ctx, "other", sampleArguments()); err != nil {
		t.Fatalf("archive other: %v", err)
	}

	infos, err := w.History(ctx, "oxide")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("history = %d entries, want 3", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Key >= infos[i].Key {
			t.Fatalf("history keys not ascending: %q then %q", infos[i-1].Key, infos[i].Key)
		}
	}
}
