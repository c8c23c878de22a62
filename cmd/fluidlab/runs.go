package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/render"
	"github.com/san-kum/fluidlab/internal/storage"
)

func openStore() *storage.Store {
	st := storage.New(dataDir)
	st.SetLogger(log)
	return st
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := openStore()
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tSTEPS\tDT\tELAPSED\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if len(run.Errors) > 0 {
			status = "unstable"
		} else if run.StepsTaken < run.Steps {
			status = "partial"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%.4f\t%v\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.StepsTaken,
			run.Steps,
			run.Params.Dt,
			run.Elapsed,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	mass := make([]float64, len(samples))
	kinetic := make([]float64, len(samples))
	divergence := make([]float64, len(samples))
	for i, s := range samples {
		mass[i] = s.TotalMass()
		kinetic[i] = s.Kinetic
		divergence[i] = s.Divergence
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"ink mass (r+g+b)", mass},
		{"kinetic energy", kinetic},
		{"max divergence", divergence},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := openStore()
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := runID + ".png"
	if len(args) > 1 {
		path = args[1]
	}

	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	state, err := st.LoadState(runID)
	if err != nil {
		return err
	}

	g, err := fluid.New(state.Size, meta.Params)
	if err != nil {
		return err
	}
	if err := g.RestoreState(state); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, g, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%dx%d)\n", path, state.Size*scale, state.Size*scale)
	return nil
}
