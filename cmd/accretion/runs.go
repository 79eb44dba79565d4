package main

import (
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/accretion/internal/analysis"
	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/export"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/storage"
)

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

// uniformFrames drops a trailing frame that breaks the sampling cadence.
// Runs end on their last tick whatever the sample interval.
func uniformFrames(frames []dynamo.Frame) []dynamo.Frame {
	n := len(frames)
	if n < 3 {
		return frames
	}
	step := frames[1].Tick - frames[0].Tick
	if frames[n-1].Tick-frames[n-2].Tick != step {
		return frames[:n-1]
	}
	return frames
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s, seed %d, %d ticks\n\n", meta.Scenario, meta.Seed, meta.Ticks)

	live := make([]float64, len(frames))
	anchorMass := make([]float64, len(frames))
	for i, f := range frames {
		live[i] = float64(len(f.Bodies))
		for _, b := range f.Bodies {
			if b.Category == physics.Anchor {
				anchorMass[i] = b.Mass
			}
		}
	}

	plots := []struct {
		caption string
		data    []float64
	}{
		{"live bodies", live},
		{"anchor mass", anchorMass},
	}
	if bodyID > 0 {
		if radial := analysis.RadialSeries(frames, bodyID); len(radial) > 1 {
			plots = append(plots, struct {
				caption string
				data    []float64
			}{fmt.Sprintf("distance of body %d", bodyID), radial})
		}
	}

	for _, p := range plots {
		if len(p.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames = uniformFrames(frames)
	out := cmd.OutOrStdout()

	series := analysis.RadialSeries(frames, bodyID)
	if len(series) < 4 {
		return fmt.Errorf("body %d has only %d samples in run %s", bodyID, len(series), meta.ID)
	}
	sampleDt := frames[1].Time - frames[0].Time

	fmt.Fprintf(out, "orbit analysis: %s, body %d\n\n", meta.ID, bodyID)

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of anchor distance"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	lo, hi := analysis.Extent(series)
	peri, apo := analysis.Apsides(series)
	fmt.Fprintf(out, "samples: %d over %.3f time units\n", len(series), float64(len(series)-1)*sampleDt)
	fmt.Fprintf(out, "distance: %.2f .. %.2f\n", lo, hi)
	fmt.Fprintf(out, "periapsis passes: %d, apoapsis passes: %d\n", len(peri), len(apo))
	if period, ok := analysis.DominantPeriod(series, sampleDt); ok {
		fmt.Fprintf(out, "dominant period: %.3f\n", period)
	} else {
		fmt.Fprintln(out, "dominant period: none")
	}
	return nil
}

func portraitRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	points := analysis.OrbitPortrait(frames, bodyID)
	if len(points) == 0 {
		return fmt.Errorf("body %d not found in run %s", bodyID, meta.ID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "orbit of body %d around the anchor (@), %d samples\n\n", bodyID, len(points))
	fmt.Fprintln(out, analysis.PortraitToASCII(points, 70, 24))
	return nil
}

// output returns the writer selected by --output and a close func.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		if err := st.ExportJSONFile(outFile, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outFile)
		return nil
	}
	return st.ExportJSON(cmd.OutOrStdout(), args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	width, height := meta.Width, meta.Height
	if width <= 0 || height <= 0 {
		width, height = config.DefaultWorldSize, config.DefaultWorldSize
	}

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, export.TrajectoriesToSVG(frames, width, height)); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outFile)
	}
	return nil
}
