// Package deck renders a configuration into the textual input deck the
// external simulation program consumes, and archives rendered decks so the
// exact input of a run can be reproduced later.
package deck

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"bcaguide/internal/archive"
	"bcaguide/pkg/domain"
)

// Writer renders and archives input decks.
type Writer struct {
	store archive.Store
	now   func() time.Time
}

// NewWriter constructs a deck writer over the given archive.
func NewWriter(store archive.Store) *Writer {
	return &Writer{store: store, now: time.Now}
}

// Render produces the input deck for args. The layout is line-oriented:
// a general block, one line per beam row, one line per target row, and one
// line per structure layer.
func Render(args domain.SimulationArguments) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "* %s\n", args.Settings.Title)
	if args.Settings.Comment != "" {
		fmt.Fprintf(&b, "* %s\n", args.Settings.Comment)
	}
	fmt.Fprintf(&b, "simulation = %s\n", args.Simulation)
	if args.Settings.Mode != "" {
		fmt.Fprintf(&b, "mode = %s\n", args.Settings.Mode)
	}
	if args.Settings.Fluence > 0 {
		fmt.Fprintf(&b, "fluence = %g\n", args.Settings.Fluence)
	}

	fmt.Fprintf(&b, "\nbeam %d\n", len(args.BeamRows))
	for _, row := range args.BeamRows {
		fmt.Fprintf(&b, "%-4s abund=%g e0=%g alpha=%g m=%g\n",
			row.Symbol, row.Abundance, row.Energy, row.Angle, row.Element.AtomicMass)
	}

	fmt.Fprintf(&b, "\ntarget %d thickness=%g segments=%d\n",
		len(args.TargetRows), args.TargetArgs.Thickness, args.TargetArgs.Segments)
	for _, row := range args.TargetRows {
		fmt.Fprintf(&b, "%-4s qumax=%g m=%g dns=%g sbe=%g ed=%g\n",
			row.Symbol, row.MaxAtomicFraction, row.Element.AtomicMass,
			row.Element.AtomicDensity, row.Element.SurfaceBindingEnergy,
			row.Element.DisplacementEnergy)
	}

	if len(args.Structure) > 0 {
		fmt.Fprintf(&b, "\nlayers %d\n", len(args.Structure))
		for _, layer := range args.Structure {
			fmt.Fprintf(&b, "%s segments=%d", layer.Name, layer.Segments)
			for _, q := range layer.Abundances {
				fmt.Fprintf(&b, " %g", q)
			}
			fmt.Fprintln(&b)
		}
	}

	for _, line := range args.Additional {
		fmt.Fprintln(&b, line)
	}
	return b.Bytes()
}

// Archive renders args and stores the deck under a timestamped key derived
// from name. It returns the archived blob info; the key never collides
// because archived decks are immutable and keyed by save time.
func (w *Writer) Archive(ctx context.Context, name string, args domain.SimulationArguments) (archive.Info, error) {
	key := fmt.Sprintf("decks/%s/%s.inp", name, w.now().UTC().Format("20060102T150405.000000000"))
	info, err := w.store.Put(ctx, key, bytes.NewReader(Render(args)), archive.PutOptions{
		ContentType: "text/plain",
		Metadata: map[string]string{
			"config":     name,
			"simulation": args.Simulation,
		},
	})
	if err != nil {
		return archive.Info{}, fmt.Errorf("archive deck %s: %w", name, err)
	}
	return info, nil
}

// History lists the archived decks of the named configuration, oldest first.
func (w *Writer) History(ctx context.Context, name string) ([]archive.Info, error) {
	return w.store.List(ctx, "decks/"+name+"/")
}
