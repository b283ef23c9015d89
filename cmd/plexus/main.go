package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/analysis"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/gui/ebitenhost"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/san-kum/plexus/internal/tui"
	"github.com/san-kum/plexus/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	configFile     string
	preset         string
	seed           int64
	fps            int
	width          int
	height         int
	backend        string
	theme          string
	snapshotFrames int
	statsFrames    int
	benchFrames    int
	outPath        string
	asJSON         bool
	svgDir         string
	runs           int
)

// main runs the windowed backdrop when no subcommand is given. It exits with
// status 1 if the command fails.
func main() {
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		if sim.IsSurfaceError(err) {
			log.Print("plexus: no window could be opened; try plexus tui or plexus snapshot")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "plexus",
		Short:        "animated particle network backdrop",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".plexus", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height")
	rootCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "window backend (raylib, ebiten, tui)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the backdrop in a window",
		RunE:  runWindow,
	}
	guiCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "window backend (raylib, ebiten)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "show the backdrop in the terminal",
		RunE:  runTerminal,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("terminal theme %v", viz.ThemeNames()))

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the final frame as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to simulate")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "plexus.svg", "output file")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless, record frame metrics and store the run",
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&statsFrames, "frames", 600, "frames to simulate")
	statsCmd.Flags().BoolVar(&asJSON, "json", false, "print run metadata as JSON")
	statsCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds, run concurrently")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgDir, "svg", "", "also write one SVG per series into this directory")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's link count",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure integrate+render throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 1000, "frames per size")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, snapshotCmd, statsCmd, listCmd, plotCmd, analyzeCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig builds the effective config: defaults, then the preset, then
// the config file, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Lookup("backend") != nil && flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.TUI.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	switch cfg.Backend {
	case "raylib":
		return gui.Run(ctx, opts, gui.Options{
			Width:      cfg.Width,
			Height:     cfg.Height,
			FPS:        cfg.FPS,
			Background: cfg.BackgroundColor(),
			Opacity:    cfg.Opacity,
		})
	case "ebiten":
		return ebitenhost.Run(ctx, opts, ebitenhost.Options{
			Width:      cfg.Width,
			Height:     cfg.Height,
			FPS:        cfg.FPS,
			Background: cfg.BackgroundColor(),
			Opacity:    cfg.Opacity,
		})
	case "tui":
		return runTerminalWith(ctx, cfg, opts)
	default:
		return fmt.Errorf("unknown backend: %s (available: raylib, ebiten, tui)", cfg.Backend)
	}
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	return runTerminalWith(ctx, cfg, opts)
}

// terminalTheme picks the named theme, or builds one from the config palette.
func terminalTheme(cfg *config.Config, opts sim.Options) (viz.Theme, error) {
	if cfg.TUI.Theme == "" {
		name := preset
		if name == "" {
			name = "plexus"
		}
		return viz.Theme{
			Name:       name,
			Palette:    opts.Renderer.Palette,
			Background: cfg.BackgroundColor(),
			Accent:     opts.Renderer.Palette[0],
		}, nil
	}
	th, ok := viz.GetTheme(cfg.TUI.Theme)
	if !ok {
		return th, fmt.Errorf("unknown theme: %s (available: %v)", cfg.TUI.Theme, viz.ThemeNames())
	}
	return th, nil
}

func runTerminalWith(ctx context.Context, cfg *config.Config, opts sim.Options) error {
	th, err := terminalTheme(cfg, opts)
	if err != nil {
		return err
	}
	opts.Renderer.Palette = th.Palette
	return tui.Run(ctx, opts, tui.Options{
		FPS:       cfg.FPS,
		CellScale: cfg.TUI.CellScale,
		Theme:     th,
	})
}

// headless runs a scheduler on a Headless host for budget frames, with the
// pointer orbiting the centre.
func headless(cfg *config.Config, surface render.Surface, budget int) (*sim.Scheduler, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	host := sim.NewHeadless(cfg.Width, cfg.Height, surface)
	host.Budget = budget
	cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2
	host.Path = sim.Orbit(cx, cy, min(cx, cy)/2, 240)
	defer host.Close()

	s := sim.New(host, opts)
	d, err := s.Start()
	if err != nil {
		return nil, err
	}
	defer d.Release()

	ctx, stop := signalContext()
	defer stop()
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return s, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svg := export.NewSVG(cfg.Width, cfg.Height, cfg.BackgroundColor(), cfg.Opacity)
	s, err := headless(cfg, svg, snapshotFrames)
	if err != nil {
		return err
	}
	if err := svg.WriteFile(outPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d frames, %d particles)\n", outPath, s.Frames(), s.Scene().Pool.Len())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		// record the seed actually used so the run can be repeated
		cfg.Seed = time.Now().UnixNano()
	}
	if runs < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", runs)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	seeds := make([]int64, runs)
	recs := make([]*metrics.Recorder, runs)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
		recs[i] = metrics.NewRecorder(metrics.Defaults()...)
	}

	cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2
	ens := &sim.Ensemble{
		Width:  cfg.Width,
		Height: cfg.Height,
		Frames: statsFrames,
		Path:   sim.Orbit(cx, cy, min(cx, cy)/2, 240),
		Options: func(seed int64) (sim.Options, error) {
			c := *cfg
			c.Seed = seed
			return c.Options()
		},
		Observers: func(idx int) []sim.Observer { return []sim.Observer{recs[idx]} },
	}

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	scheds, err := ens.Run(ctx, seeds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	ids := make([]string, len(scheds))
	metas := make([]storage.RunMetadata, len(scheds))
	for i, s := range scheds {
		metas[i] = storage.RunMetadata{
			Preset:    preset,
			Seed:      seeds[i],
			Width:     cfg.Width,
			Height:    cfg.Height,
			Particles: s.Scene().Pool.Len(),
			Frames:    s.Frames(),
			FPS:       cfg.FPS,
			Metrics:   recs[i].Values(),
		}
		if ids[i], err = st.Save(metas[i], recs[i]); err != nil {
			return err
		}
	}

	if asJSON {
		for _, id := range ids {
			saved, err := st.Load(id)
			if err != nil {
				return err
			}
			if err := storage.WriteJSON(os.Stdout, saved); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Printf("completed %d run(s) in %v\n", len(ids), elapsed)
	for i, id := range ids {
		fmt.Printf("\nrun id: %s\n", id)
		fmt.Printf("seed: %d  frames: %d  particles: %d\n", metas[i].Seed, metas[i].Frames, metas[i].Particles)
		fmt.Println("metrics:")
		for _, name := range sortedKeys(metas[i].Metrics) {
			fmt.Printf("  %s: %.6f\n", name, metas[i].Metrics[name])
		}
	}

	if links := recs[0].Series("links"); len(links) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(links,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("links per frame"),
		))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tPARTICLES\tFRAMES\tLINKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.1f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Particles,
			run.Frames,
			run.Metrics["links"],
		)
	}

	return w.Flush()
}

var seriesCaptions = map[string]string{
	"links":  "links per frame",
	"energy": "kinetic energy",
	"speed":  "mean speed",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frameNums, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(frameNums) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("frames: %d\n\n", len(frameNums))

	if svgDir != "" {
		if err := os.MkdirAll(svgDir, 0755); err != nil {
			return err
		}
	}

	for _, name := range metrics.SeriesNames {
		data := series[name]
		if len(data) < 2 {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(seriesCaptions[name]),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgDir != "" {
			path := filepath.Join(svgDir, fmt.Sprintf("%s_%s.svg", runID, name))
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, 800, 240, "#00ffff")), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	links := series["links"]
	if len(links) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	sp := analysis.NewSpectrum(links)
	plotData := sp.Power[1:]
	if len(plotData) > 80 {
		plotData = plotData[:len(plotData)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (links)"),
	)
	fmt.Println(graph)
	fmt.Println()

	period := sp.DominantPeriod()
	if period == 0 {
		fmt.Println("no periodic component")
		return nil
	}
	fmt.Printf("dominant period: %.1f frames\n", period)
	if meta.FPS > 0 {
		fmt.Printf("at %d fps: %.2f s\n", meta.FPS, period/float64(meta.FPS))
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	sizes := [][2]int{{640, 360}, {1280, 720}, {1920, 1080}, {3840, 2160}}

	fmt.Println("benchmarking integrate+render on a discard surface")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tLINKS/FRAME")

	for _, size := range sizes {
		vp := physics.NewViewport(size[0], size[1])
		scene := physics.NewScene(vp, opts.Seed, opts.Pointer, opts.Rand)

		links := 0
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			opts.Integrator.Step(scene.Pool, scene.Pointer, vp)
			links += opts.Renderer.Render(render.Discard{}, scene.Pool).Links
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\t%.1f\n",
			size[0], size[1], scene.Pool.Len(), benchFrames, elapsed,
			float64(benchFrames)/elapsed.Seconds(), float64(links)/float64(benchFrames))
	}

	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return config.Encode(os.Stdout, cfg)
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
