package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bcaguide/pkg/domain"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "configs", "bcaguide.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	args := domain.SimulationArguments{
		Simulation: "sdtrimsp",
		TargetRows: []domain.RowArguments{{Symbol: "Fe", Abundance: 1}},
		TargetArgs: domain.GeneralTargetArguments{Thickness: 1000, Segments: 100},
	}
	if _, err := s.Save(ctx, "oxide", args); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "oxide")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Simulation != "sdtrimsp" || len(got.TargetRows) != 1 || got.TargetRows[0].Symbol != "Fe" {
		t.Fatalf("loaded = %+v", got)
	}
	if got.TargetArgs.Segments != 100 {
		t.Fatalf("segments = %d, want 100", got.TargetArgs.Segments)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	s.Save(ctx, "run", domain.SimulationArguments{Simulation: "sdtrimsp"})
	if _, err := s.Save(ctx, "run", domain.SimulationArguments{Simulation: "tridyn"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Load(ctx, "run")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Simulation != "tridyn" {
		t.Fatalf("simulation = %q, want tridyn", got.Simulation)
	}
	infos, err := s.List(ctx)
	if err != nil || len(infos) != 1 {
		t.Fatalf("list = %+v, %v; want one entry", infos, err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	s := newTempStore(t)
	_, err := s.Load(context.Background(), "ghost")
	var notFound domain.ErrConfigNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bcaguide.db")
	ctx := context.Background()

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Save(ctx, "persisted", domain.SimulationArguments{Simulation: "sdtrimsp"})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Load(ctx, "persisted")
	if err != nil || got.Simulation != "sdtrimsp" {
		t.Fatalf("load after reopen = %+v, %v", got, err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()
	s.Save(ctx, "victim", domain.SimulationArguments{})

	ok, err := s.Delete(ctx, "victim")
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v; want true, nil", ok, err)
	}
	ok, err = s.Delete(ctx, "victim")
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v; want false, nil", ok, err)
	}
}
