package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/brownsim/internal/analysis"
	"github.com/san-kum/brownsim/internal/config"
	"github.com/san-kum/brownsim/internal/export"
	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/msd"
	"github.com/san-kum/brownsim/internal/noise"
	"github.com/san-kum/brownsim/internal/storage"
	"github.com/san-kum/brownsim/internal/trajectory"
	"github.com/san-kum/brownsim/internal/tui"
	"github.com/san-kum/brownsim/internal/viz"
)

var (
	dataDir    string
	regime     string
	mass       float64
	radius     float64
	temp       float64
	viscosity  float64
	dt         float64
	duration   float64
	seed       int64
	fitMin     float64
	fitMax     float64
	configFile string
	preset     string
	runs       int
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brownsim",
		Short: "Brownian motion MSD lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brownsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a trajectory and analyze its MSD",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [file.csv]",
		Short: "analyze an experimental t,x,y series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeFile,
	}
	analyzeCmd.Flags().Float64Var(&fitMin, "fit-min", 0, "fit window lower lag bound")
	analyzeCmd.Flags().Float64Var(&fitMax, "fit-max", 0, "fit window upper lag bound")
	analyzeCmd.Flags().StringVar(&outFile, "png", "", "also save a log-log plot to this file")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent trajectories and average their MSD",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 16, "number of independent trajectories")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored MSD curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	pngCmd := &cobra.Command{
		Use:   "png [run_id]",
		Short: "export a stored MSD curve as a log-log plot image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	pngCmd.Flags().StringVar(&outFile, "out", "msd.png", "output image path")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export a stored walk path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "walk.svg", "output SVG path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the walk live in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %s  m=%g kg  a=%g m  dt=%g s  T=%g s\n",
					name, p.Regime, p.Mass, p.Radius, p.Dt, p.Duration)
			}
		},
	}

	rootCmd.AddCommand(runCmd, analyzeCmd, ensembleCmd, plotCmd, pngCmd, svgCmd, listCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&regime, "regime", config.DefaultRegime, "damping regime (overdamped|underdamped)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass (kg)")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "particle radius (m)")
	cmd.Flags().Float64Var(&temp, "temp", 0, "temperature (K, default room temperature)")
	cmd.Flags().Float64Var(&viscosity, "viscosity", 0, "solvent viscosity (Pa·s, default water)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total duration (s)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from entropy)")
	cmd.Flags().Float64Var(&fitMin, "fit-min", 0, "fit window lower lag bound")
	cmd.Flags().Float64Var(&fitMax, "fit-max", 0, "fit window upper lag bound")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
}

// buildConfig merges preset, config file and flags, flags winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("regime") {
		cfg.Regime = regime
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temp
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Viscosity = viscosity
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fit-min") {
		cfg.Fit.MinLag = fitMin
	}
	if cmd.Flags().Changed("fit-max") {
		cfg.Fit.MaxLag = fitMax
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRNG(cfg *config.Config) *noise.Generator {
	if cfg.Seed != 0 {
		return noise.New(uint64(cfg.Seed))
	}
	return noise.NewFromEntropy()
}

func fitWindow(cfg *config.Config, curve msd.Curve) analysis.Window {
	w := analysis.Window{MinLag: cfg.Fit.MinLag, MaxLag: cfg.Fit.MaxLag}
	if w.MinLag == 0 && w.MaxLag == 0 {
		w = analysis.DefaultWindow(curve)
	}
	return w
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.ParseRegime()
	if err != nil {
		return err
	}
	params := cfg.Parameters()
	rng := newRNG(cfg)
	usedSeed := rng.Seed()

	fmt.Printf("running %s simulation (%d steps)...\n", reg, int(cfg.Duration/cfg.Dt))
	start := time.Now()

	builder := trajectory.NewBuilder(params, reg, rng)
	tr, err := builder.Run(context.Background(), cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	curve, err := msd.Direct(tr)
	if err != nil {
		return err
	}
	rep, err := analysis.FitRegime(curve, fitWindow(cfg, curve))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := map[string]float64{
		"slope":     rep.Slope,
		"intercept": rep.Intercept,
		"r2":        rep.R2,
		"diffusion": params.Diffusion(),
	}

	rows := [][2]string{
		{"regime", reg.String()},
		{"class", string(rep.Class)},
		{"slope", fmt.Sprintf("%.4f", rep.Slope)},
		{"r²", fmt.Sprintf("%.6f", rep.R2)},
		{"D", fmt.Sprintf("%.4e m²/s", params.Diffusion())},
		{"τ = m/γ", fmt.Sprintf("%.4e s", params.RelaxationTime())},
	}

	// Overlay: how far the measured end point sits from the model curve.
	if reg == langevin.Underdamped {
		final := curve[len(curve)-1]
		model, err := msd.AnalyticUnderdamped(params, []float64{final.Lag}, msd.Options{})
		if err != nil {
			return err
		}
		dev := math.Abs(final.Value-model[0].Value) / model[0].Value
		rows = append(rows,
			[2]string{"model MSD(T)", fmt.Sprintf("%.4e m²", model[0].Value)},
			[2]string{"deviation", fmt.Sprintf("%.1f%%", 100*dev)},
		)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Regime:      reg.String(),
		Seed:        int64(usedSeed),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Mass:        cfg.Mass,
		Radius:      cfg.Radius,
		Temperature: cfg.Temperature,
		Viscosity:   cfg.Viscosity,
		Metrics:     metrics,
	}, tr, curve)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(viz.ReportBlock("regime fit", rows))

	graph, err := viz.LogLog(curve, fmt.Sprintf("log10(MSD) — slope %.2f", rep.Slope), 80, 12)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func analyzeFile(cmd *cobra.Command, args []string) error {
	tr, err := trajectory.LoadFile(args[0])
	if err != nil {
		return err
	}

	curve, err := msd.SlidingWindow(tr)
	if err != nil {
		return err
	}
	w := analysis.Window{MinLag: fitMin, MaxLag: fitMax}
	if w.MinLag == 0 && w.MaxLag == 0 {
		w = analysis.DefaultWindow(curve)
	}
	rep, err := analysis.FitRegime(curve, w)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d samples\n\n", args[0], tr.Len())
	fmt.Println(viz.ReportBlock("regime fit", [][2]string{
		{"class", string(rep.Class)},
		{"slope", fmt.Sprintf("%.4f", rep.Slope)},
		{"r²", fmt.Sprintf("%.6f", rep.R2)},
		{"fit points", fmt.Sprintf("%d", rep.Points)},
	}))

	graph, err := viz.LogLog(curve, fmt.Sprintf("log10(MSD) — slope %.2f", rep.Slope), 80, 12)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(graph)

	if outFile != "" {
		if err := export.SaveCurvePNG(curve, rep, outFile); err != nil {
			return err
		}
		fmt.Printf("\nplot saved to %s\n", outFile)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.ParseRegime()
	if err != nil {
		return err
	}
	params := cfg.Parameters()
	usedSeed := newRNG(cfg).Seed()

	fmt.Printf("running %d %s trajectories...\n", runs, reg)
	start := time.Now()

	ens := trajectory.NewEnsemble(params, reg, runs, usedSeed)
	trs, err := ens.Run(context.Background(), cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	curves := make([]msd.Curve, len(trs))
	for i, tr := range trs {
		if curves[i], err = msd.Direct(tr); err != nil {
			return err
		}
	}
	avg, err := msd.Average(curves)
	if err != nil {
		return err
	}
	rep, err := analysis.FitRegime(avg, fitWindow(cfg, avg))
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Regime:      reg.String(),
		Seed:        int64(usedSeed),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Mass:        cfg.Mass,
		Radius:      cfg.Radius,
		Temperature: cfg.Temperature,
		Viscosity:   cfg.Viscosity,
		Metrics: map[string]float64{
			"runs":  float64(runs),
			"slope": rep.Slope,
			"r2":    rep.R2,
		},
	}, nil, avg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(viz.ReportBlock("ensemble fit", [][2]string{
		{"trajectories", fmt.Sprintf("%d", runs)},
		{"class", string(rep.Class)},
		{"slope", fmt.Sprintf("%.4f", rep.Slope)},
		{"r²", fmt.Sprintf("%.6f", rep.R2)},
	}))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	curve, err := st.LoadMSD(args[0])
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("log10(MSD) — %s", meta.Regime)
	if slope, ok := meta.Metrics["slope"]; ok {
		caption = fmt.Sprintf("%s, slope %.2f", caption, slope)
	}
	graph, err := viz.LogLog(curve, caption, 80, 15)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	curve, err := st.LoadMSD(args[0])
	if err != nil {
		return err
	}
	rep, err := analysis.FitRegime(curve, analysis.DefaultWindow(curve))
	if err != nil {
		return err
	}
	if err := export.SaveCurvePNG(curve, rep, outFile); err != nil {
		return err
	}
	fmt.Printf("plot saved to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	svg := export.WalkSVG(tr, 800, 600, "")
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("walk saved to %s\n", outFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREGIME\tDT\tDURATION\tSLOPE\tWHEN")
	for _, r := range runs {
		slope := "-"
		if s, ok := r.Metrics["slope"]; ok {
			slope = fmt.Sprintf("%.3f", s)
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%s\n",
			r.ID, r.Regime, r.Dt, r.Duration, slope, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.ParseRegime()
	if err != nil {
		return err
	}
	return tui.Run(cfg.Parameters(), reg, cfg.Dt, newRNG(cfg).Seed())
}
