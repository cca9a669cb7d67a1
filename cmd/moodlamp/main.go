package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/solhav/moodlamp/internal/analysis"
	"github.com/solhav/moodlamp/internal/config"
	"github.com/solhav/moodlamp/internal/engine"
	"github.com/solhav/moodlamp/internal/export"
	"github.com/solhav/moodlamp/internal/gui"
	"github.com/solhav/moodlamp/internal/session"
	"github.com/solhav/moodlamp/internal/signal"
	"github.com/solhav/moodlamp/internal/tui"
	"github.com/spf13/cobra"
)

var version = "0.4.0"

var (
	dataDir    string
	frames     int
	dt         float64
	signalName string
	seed       int64
	preset     string
	configFile string
	record     bool
	runs       int
	// Live views
	fps   int
	sound bool
	// Plot and analysis columns
	plotColumn    string
	analyzeColumn string
	// Export targets
	outFile    string
	svgWidth   int
	snapFrames int // snapshot warmup length
)

// main is the entry point for the moodlamp CLI; it registers commands and
// flags and executes the root command. A bare invocation drops straight into
// the terminal lamp.
func main() {
	rootCmd := &cobra.Command{
		Use:   "moodlamp",
		Short: "emotion-driven lava lamp",
		RunE:  runLamp,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".moodlamp", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run with metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "frame count (0 derives it from duration)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().StringVar(&signalName, "signal", config.DefaultSignal, "signal source")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().BoolVar(&record, "record", true, "save the run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "replay a run across seeds and compare metrics",
		RunE:  sweepRun,
	}
	sweepCmd.Flags().IntVar(&runs, "runs", 8, "number of seeded runs")
	sweepCmd.Flags().IntVar(&frames, "frames", 0, "frame count (0 derives it from duration)")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().StringVar(&signalName, "signal", config.DefaultSignal, "signal source")
	sweepCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "first seed")

	lampCmd := &cobra.Command{
		Use:   "lamp",
		Short: "interactive terminal lamp",
		RunE:  runLamp,
	}
	lampCmd.Flags().StringVar(&signalName, "signal", config.DefaultSignal, "signal source")
	lampCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	lampCmd.Flags().IntVar(&fps, "fps", 60, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "lamp window with sound",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&signalName, "signal", config.DefaultSignal, "signal source")
	guiCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	guiCmd.Flags().BoolVar(&sound, "sound", false, "start with the pad synth on")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "", "plot a single column instead of the default set")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeColumn, "column", "gravity_x", "column to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a simulated frame to SVG",
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 600, "frames to simulate before the snapshot")
	snapshotCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	snapshotCmd.Flags().StringVar(&signalName, "signal", config.DefaultSignal, "signal source")
	snapshotCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", export.DefaultSVGWidth, "svg width in pixels")
	snapshotCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s signal=%-6s duration=%.0fs\n", name, p.Signal, p.Duration)
			}
		},
	}

	signalsCmd := &cobra.Command{
		Use:   "signals",
		Short: "list signal sources",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("signals:")
			for _, name := range signal.Names() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("  manual (interactive modes only, key m)")
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("moodlamp %s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, lampCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, snapshotCmd, presetsCmd, signalsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	// Config file overrides preset.
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override both.
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("signal") {
		cfg.Signal = signalName
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	frameCount := frames
	if frameCount <= 0 {
		frameCount = int(cfg.Duration/cfg.Dt + 0.5)
	}

	src, err := signal.New(cfg.Signal, cfg.Dt, cfg.Seed)
	if err != nil {
		return err
	}
	eng := engine.New(src, cfg.Seed)
	cfg.Apply(eng)

	fmt.Printf("running %s signal...\n", cfg.Signal)
	start := time.Now()

	rec, err := session.NewRecorder(eng).Run(context.Background(), frameCount, cfg.Dt)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d (%.1fs simulated)\n", len(rec.Frames), rec.Duration())

	if record {
		st := session.NewStore(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Signal, preset, cfg.Seed, cfg.Dt, rec)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for name, val := range rec.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func sweepRun(cmd *cobra.Command, args []string) error {
	frameCount := frames
	if frameCount <= 0 {
		frameCount = int(config.DefaultDuration/dt + 0.5)
	}

	build := func(runSeed int64) (*engine.Engine, error) {
		src, err := signal.New(signalName, dt, runSeed)
		if err != nil {
			return nil, err
		}
		return engine.New(src, runSeed), nil
	}

	fmt.Printf("sweeping %d seeds from %d (%s signal, %d frames each)...\n",
		runs, seed, signalName, frameCount)
	start := time.Now()

	recs, err := session.NewEnsemble(build, runs, seed).Run(context.Background(), frameCount, dt)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	spread := session.Spread(recs)
	names := make([]string, 0, len(spread))
	for name := range spread {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		s := spread[name]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n", name, s.Mean, s.Min, s.Max)
	}

	return w.Flush()
}

func runLamp(cmd *cobra.Command, args []string) error {
	src, err := signal.New(signalName, signal.DefaultPeriod, seed)
	if err != nil {
		return err
	}
	eng := engine.New(src, seed)

	m := tui.NewModel(eng, signalName, signal.DefaultPeriod, seed, config.DefaultDt, fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	src, err := signal.New(signalName, signal.DefaultPeriod, seed)
	if err != nil {
		return err
	}
	eng := engine.New(src, seed)

	gui.NewApp(eng, signalName, signal.DefaultPeriod, seed, config.DefaultDt, sound).Run()
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIGNAL\tPRESET\tTIME\tFRAMES\tDT\tDURATION")

	for _, run := range runs {
		presetName := run.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4fs\t%.2fs\n",
			run.ID,
			run.Signal,
			presetName,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Duration,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := session.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rec, err := st.LoadRecording(runID)
	if err != nil {
		return err
	}
	if len(rec.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("signal: %s\n", meta.Signal)
	fmt.Printf("frames: %d\n\n", len(rec.Frames))

	columns := []string{"valence", "energy", "turbulence"}
	if plotColumn != "" {
		columns = []string{plotColumn}
	}

	for _, name := range columns {
		data, err := rec.Column(name)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := session.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rec, err := st.LoadRecording(runID)
	if err != nil {
		return err
	}

	series, err := rec.Column(analyzeColumn)
	if err != nil {
		return err
	}

	sp, err := analysis.PowerSpectrum(series, meta.Dt)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", analyzeColumn)

	plotData := sp.Power
	if len(plotData) >= 8 {
		plotData = plotData[:len(plotData)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", analyzeColumn)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := sp.DominantFrequency()
	fmt.Printf("dominant frequency: %.3f hz (power %.3f)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return session.ExportCSV(os.Stdout, frames)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return session.ExportCSV(f, frames)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return session.ExportJSON(os.Stdout, *meta, frames)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return session.ExportJSON(f, *meta, frames)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	src, err := signal.New(signalName, dt, seed)
	if err != nil {
		return err
	}
	eng := engine.New(src, seed)

	for i := 0; i < snapFrames; i++ {
		if _, err := eng.Tick(dt); err != nil {
			return err
		}
	}

	if outFile == "" {
		return export.SVG(os.Stdout, eng.Blobs(), eng.Params(), svgWidth)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.SVG(f, eng.Blobs(), eng.Params(), svgWidth); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames simulated)\n", outFile, snapFrames)
	return nil
}
