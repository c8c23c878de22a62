package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidlab/internal/config"
	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/metrics"
	"github.com/san-kum/fluidlab/internal/sim"
	"github.com/san-kum/fluidlab/internal/tui"
	"github.com/san-kum/fluidlab/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	outDir     string

	size        int
	dt          float64
	diffusion   float64
	viscosity   float64
	iterations  int
	steps       int
	sampleEvery int

	watch     bool
	frameRate int
	pick      bool
	theme     string
	scale     int
	parallel  int

	log *slog.Logger
)

// main wires the fluidlab commands. With no subcommand it opens the
// interactive canvas on the default configuration.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fluidlab",
		Short: "2d stable fluids lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addConfigFlags(rootCmd)
	rootCmd.Flags().StringVar(&outDir, "out", ".", "directory for png and gif exports")
	rootCmd.Flags().StringVar(&theme, "theme", "ink", "colour theme")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", sim.DefaultConfig().Steps, "ticks to simulate")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", sim.DefaultConfig().SampleEvery, "ticks between samples")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the ink field while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "watch frame rate")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "paint into the fluid in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().BoolVar(&pick, "pick", false, "choose preset and parameters first")
	liveCmd.Flags().StringVar(&outDir, "out", ".", "directory for png and gif exports")
	liveCmd.Flags().StringVar(&theme, "theme", "ink", "colour theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot mass and kinetic energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id] [file]",
		Short: "render the final state of a run to PNG",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().IntVar(&scale, "scale", 4, "pixels per grid cell")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark the solver across grid sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 100, "ticks per size")
	benchCmd.Flags().IntVar(&parallel, "parallel", 1, "sizes to run at once")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "fluidlab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportPNGCmd, presetsCmd, benchCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	def := fluid.DefaultParams()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "grid resolution")
	cmd.Flags().Float64Var(&dt, "dt", def.Dt, "timestep")
	cmd.Flags().Float64Var(&diffusion, "diffusion", def.Diffusion, "ink diffusion rate")
	cmd.Flags().Float64Var(&viscosity, "viscosity", def.Viscosity, "velocity diffusion rate")
	cmd.Flags().IntVar(&iterations, "iterations", def.Iterations, "gauss-seidel sweeps")
}

// resolveConfig builds the configuration for a command: the named preset
// (or the defaults), then the config file, then any flag set on the
// command line.
func resolveConfig(cmd *cobra.Command, args []string) (string, *config.Config, error) {
	name := "default"
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		name = args[0]
		cfg = config.GetPreset(name)
		if cfg == nil {
			return "", nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		if len(args) == 0 {
			name = "config"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("dt") {
		cfg.Params.Dt = dt
	}
	if flags.Changed("diffusion") {
		cfg.Params.Diffusion = diffusion
	}
	if flags.Changed("viscosity") {
		cfg.Params.Viscosity = viscosity
	}
	if flags.Changed("iterations") {
		cfg.Params.Iterations = iterations
	}
	if flags.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}

	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	return name, cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name, cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := openStore()
	if err := st.Init(); err != nil {
		return err
	}

	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}

	runner := sim.NewRunner(log)
	for _, m := range metrics.Standard() {
		runner.AddMetric(m)
	}
	for _, e := range cfg.Emitters {
		runner.AddEmitter(e)
	}

	var watcher *tui.LiveRenderer
	if watch {
		watcher = tui.NewLiveRenderer(os.Stdout, name, frameRate)
		runner.AddObserver(watcher)
		watcher.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !watch {
		fmt.Printf("running %s (%dx%d, %d steps)...\n", name, cfg.Size, cfg.Size, cfg.Run.Steps)
	}
	result, runErr := runner.Run(ctx, g, cfg.Run)
	if watcher != nil {
		watcher.Stop()
	}
	if result == nil {
		return runErr
	}
	if runErr != nil {
		log.Warn("run interrupted", "err", runErr, "steps", result.StepsTaken)
	}

	runID, err := st.Save(name, cfg, result, g.SaveState())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d/%d\n", result.StepsTaken, cfg.Run.Steps)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range metrics.Standard() {
		if v, ok := result.Metrics[m.Name()]; ok {
			fmt.Fprintf(w, "  %s\t%.6f\n", m.Name(), v)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	name, cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if pick {
		p := tui.NewPicker()
		if _, err := tea.NewProgram(p).Run(); err != nil {
			return err
		}
		picked, pickedCfg := p.Result()
		if pickedCfg == nil {
			return nil
		}
		name, cfg = picked, pickedCfg
	}

	m, err := viz.NewModel("fluidlab · "+name, cfg, outDir, log)
	if err != nil {
		return err
	}
	if !m.SetTheme(theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	return viz.Run(m)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tDT\tDIFFUSION\tVISCOSITY\tITER\tSTEPS\tEMITTERS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\t%d\t%d\t%d\n",
			name,
			p.Size,
			p.Params.Dt,
			p.Params.Diffusion,
			p.Params.Viscosity,
			p.Params.Iterations,
			p.Run.Steps,
			len(p.Emitters),
		)
	}
	return w.Flush()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	name := "ink"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	sizes := []int{32, 64, 128, 256}
	jobs := make([]sim.Job, 0, len(sizes))
	for _, n := range sizes {
		g, err := fluid.New(n, base.Params)
		if err != nil {
			return err
		}
		runner := sim.NewRunner(log)
		for _, e := range base.Emitters {
			runner.AddEmitter(scaleEmitter(e, base.Size, n))
		}
		jobs = append(jobs, sim.Job{
			Name:   fmt.Sprintf("%dx%d", n, n),
			Grid:   g,
			Runner: runner,
			Config: sim.Config{Steps: steps, SampleEvery: steps, ValidateState: true},
		})
	}

	fmt.Printf("benchmarking %s, %d steps\n\n", name, steps)
	results, err := sim.Sweep(context.Background(), jobs, parallel)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPS\tTIME\tSTEPS/SEC\tMS/STEP")
	for i, res := range results {
		secs := res.Elapsed.Seconds()
		rate := 0.0
		if secs > 0 {
			rate = float64(res.StepsTaken) / secs
		}
		perStep := 0.0
		if res.StepsTaken > 0 {
			perStep = secs * 1000 / float64(res.StepsTaken)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.3f\n",
			jobs[i].Name, res.StepsTaken, res.Elapsed.Round(time.Microsecond), rate, perStep)
	}
	return w.Flush()
}

// scaleEmitter moves an emitter authored for a from-sized grid onto a
// to-sized one.
func scaleEmitter(e sim.Emitter, from, to int) sim.Emitter {
	if from <= 0 || from == to {
		return e
	}
	e.X = e.X * to / from
	e.Y = e.Y * to / from
	e.Radius = max(1, e.Radius*to/from)
	return e
}
