package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/holosim/internal/analysis"
	"github.com/san-kum/holosim/internal/config"
	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/experiment"
	"github.com/san-kum/holosim/internal/export"
	"github.com/san-kum/holosim/internal/observability"
	"github.com/san-kum/holosim/internal/report"
	"github.com/san-kum/holosim/internal/storage"
	"github.com/san-kum/holosim/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dataDir string
	// Run parameters
	dt         float64
	duration   float64
	mass       float64
	scale      float64
	coupling   float64
	wavelength float64
	speed      float64
	snapshot   int
	integrator string
	x0, y0, z0 float64
	vx0, vy0   float64
	vz0        float64
	// Config file and preset
	configFile string
	preset     string
	// Logging
	logLevel   string
	logFile    string
	traceForce bool
	// Output
	showPlot  bool
	svgOut    string
	svgWidth  int
	svgHeight int
	component string
	epsilon   float64
)

// main registers the holosim commands and flags and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "holosim",
		Short:         "holographic force simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".holosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot position and force after the run")

	sampleCmd := &cobra.Command{
		Use:   "sample [dir]",
		Short: "record force and intensity tables over the reference grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleGrid,
	}
	addRunFlags(sampleCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position, force and force magnitude vs step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export position and force series to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output directory (default: run directory)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a force component",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&component, "component", "fx", "series to analyse (x, y, z, fx, fy, fz)")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  lyapunov,
	}
	addRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&epsilon, "epsilon", 1e-8, "initial separation")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			fmt.Println("presets:")
			for _, p := range names {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-10s dt=%g duration=%gs init=(%g, %g, %g)\n",
					p, cfg.Dt, cfg.Duration, cfg.InitState.X, cfg.InitState.Y, cfg.InitState.Z)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, sampleCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, analyzeCmd, lyapunovCmd, compareCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", def.Dt, "timestep (s)")
	f.Float64Var(&duration, "time", def.Duration, "duration (s)")
	f.Float64Var(&mass, "mass", def.Mass, "mass (kg)")
	f.Float64Var(&scale, "scale", def.Force.Scale, "force scale")
	f.Float64Var(&coupling, "coupling", def.Force.Coupling, "force coupling")
	f.Float64Var(&wavelength, "wavelength", def.Field.Wavelength, "field wavelength (m)")
	f.Float64Var(&speed, "speed", def.Field.WaveSpeed, "field propagation speed (m/s)")
	f.IntVar(&snapshot, "snapshot", def.Snapshot, "log a snapshot every n steps (0 disables)")
	f.StringVar(&integrator, "integrator", def.Integrator, "integrator (symplectic, euler)")
	f.Float64Var(&x0, "x", 0, "initial x (m)")
	f.Float64Var(&y0, "y", 0, "initial y (m)")
	f.Float64Var(&z0, "z", 0, "initial z (m)")
	f.Float64Var(&vx0, "vx", 0, "initial vx (m/s)")
	f.Float64Var(&vy0, "vy", 0, "initial vy (m/s)")
	f.Float64Var(&vz0, "vz", 0, "initial vz (m/s)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&logLevel, "log-level", def.Logging.Level, "log level (debug, info, warn, error)")
	f.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	f.BoolVar(&traceForce, "trace-force", false, "log every force evaluation at debug level")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order, over the defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"dt", func() { cfg.Dt = dt }},
		{"time", func() { cfg.Duration = duration }},
		{"mass", func() { cfg.Mass = mass }},
		{"scale", func() { cfg.Force.Scale = scale }},
		{"coupling", func() { cfg.Force.Coupling = coupling }},
		{"wavelength", func() { cfg.Field.Wavelength = wavelength }},
		{"speed", func() { cfg.Field.WaveSpeed = speed }},
		{"snapshot", func() { cfg.Snapshot = snapshot }},
		{"integrator", func() { cfg.Integrator = integrator }},
		{"x", func() { cfg.InitState.X = x0 }},
		{"y", func() { cfg.InitState.Y = y0 }},
		{"z", func() { cfg.InitState.Z = z0 }},
		{"vx", func() { cfg.InitState.VX = vx0 }},
		{"vy", func() { cfg.InitState.VY = vy0 }},
		{"vz", func() { cfg.InitState.VZ = vz0 }},
		{"log-level", func() { cfg.Logging.Level = logLevel }},
		{"log-file", func() { cfg.Logging.File = logFile }},
		{"trace-force", func() { cfg.Logging.TraceForce = traceForce }},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			o.apply()
		}
	}

	return cfg, cfg.Validate()
}

func setupExperiment(cmd *cobra.Command) (*experiment.Experiment, *zap.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := observability.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, nil, err
	}
	return exp, log, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, log, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := exp.Metadata()
	log.Info("running simulation",
		zap.String("integrator", meta.Integrator),
		zap.Float64("dt", meta.Dt),
		zap.Float64("duration", meta.Duration))
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Println(tui.Title.Render("holographic run complete"))
	fmt.Println(tui.Metric("run id", runID))
	fmt.Println(tui.Metric("elapsed", elapsed.String()))
	fmt.Println(tui.Metric("steps", fmt.Sprintf("%d", result.StepsTaken)))
	fmt.Println(tui.Metric("final t", fmt.Sprintf("%.6f s", result.Final.T)))
	fmt.Println(tui.Metric("final pos", fmt.Sprintf("(%.6g, %.6g, %.6g)", result.Final.Pos.X, result.Final.Pos.Y, result.Final.Pos.Z)))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-18s %.6g\n", name, result.Metrics[name])
	}

	if showPlot {
		fmt.Println()
		return report.Plot(os.Stdout, result.Trajectory, result.Forces, report.DefaultPlotOptions())
	}
	return nil
}

func sampleGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if err := report.RecordSamples(dir, cfg.ForceModel(), cfg.FieldEvaluator()); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n",
		filepath.Join(dir, report.ForceTableFile), filepath.Join(dir, report.IntensityTableFile))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tSTEPS\tINTEG\tPEAK |F|")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4gs\t%d\t%s\t%.4g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Integrator,
			run.Metrics["peak_force"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Trajectory))

	return report.Plot(os.Stdout, series.Trajectory, series.Forces, report.DefaultPlotOptions())
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteSeriesCSV(os.Stdout, series.Times, series.Trajectory, series.Forces)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	dir := svgOut
	if dir == "" {
		dir = filepath.Join(dataDir, meta.ID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := map[string][][]float64{
		"position.svg":        report.Components(series.Trajectory),
		"force.svg":           report.Components(series.Forces),
		"force_magnitude.svg": {report.Magnitudes(series.Forces)},
	}
	for name, data := range files {
		svg := export.SeriesToSVG(data, nil, svgWidth, svgHeight)
		if svg == "" {
			return fmt.Errorf("not enough samples to export %s", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}
	return nil
}

func seriesComponent(series *storage.Series, name string) ([]float64, error) {
	axis := name
	var src [][]float64
	switch {
	case strings.HasPrefix(name, "f"):
		src = report.Components(series.Forces)
		axis = strings.TrimPrefix(name, "f")
	default:
		src = report.Components(series.Trajectory)
	}

	switch axis {
	case "x":
		return src[0], nil
	case "y":
		return src[1], nil
	case "z":
		return src[2], nil
	}
	return nil, fmt.Errorf("unknown component %q", name)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data, err := seriesComponent(series, component)
	if err != nil {
		return err
	}
	if len(data) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, component)

	ps := analysis.PowerSpectrum(analysis.Pad(data))
	opts := report.DefaultPlotOptions()
	opts.Height = 15
	if err := report.PlotSeries(os.Stdout, ps[:max(len(ps)/4, 1)], "power spectrum ("+component+")", opts); err != nil {
		return err
	}
	fmt.Println()

	freq, power := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	lambda, err := analysis.LyapunovExponent(cfg.ForceModel(), integ, cfg.SimConfig(), epsilon)
	if err != nil {
		return err
	}

	fmt.Printf("largest lyapunov exponent: %.6f 1/s\n", lambda)
	if lambda > 0 {
		fmt.Println("nearby trajectories diverge")
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	simCfg := cfg.SimConfig()

	fmt.Printf("comparing integrators (dt=%.4g, duration=%.1fs)\n\n", cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %12s  %12s  %12s\n", "integrator", "final_x", "final_vx", "peak_force")
	fmt.Println(strings.Repeat("-", 54))

	var jobs []dynamo.Job
	for _, name := range args {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		s := dynamo.New(cfg.ForceModel(), integ)
		for _, m := range registry.DefaultMetrics(simCfg) {
			s.AddMetric(m)
		}
		jobs = append(jobs, dynamo.Job{Name: name, Simulator: s, Config: simCfg})
	}

	start := time.Now()
	results := dynamo.RunEnsemble(context.Background(), jobs)
	elapsed := time.Since(start)

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-12s  error: %v\n", r.Name, r.Err)
			continue
		}

		fmt.Printf("%-12s  %12.6g  %12.6g  %12.4g\n", r.Name,
			r.Result.Final.Pos.X, r.Result.Final.Vel.X, r.Result.Metrics["peak_force"])
	}

	fmt.Printf("\nwall time: %.2f ms\n", float64(elapsed.Microseconds())/1000)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Console logs would tear the alt screen, so only the file sink is kept.
	log := zap.NewNop()
	if cfg.Logging.File != "" {
		if log, err = observability.NewWithWriter(cfg.Logging, zapcore.AddSync(io.Discard)); err != nil {
			return err
		}
	}
	defer log.Sync()

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	return tui.Run(exp.Start, exp.Model())
}
