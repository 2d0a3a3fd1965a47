package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orrery/internal/automation"
	"github.com/san-kum/orrery/internal/celestial"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	configFile  string
	preset      string
	seed        int64
	fps         int
	duration    float64
	timeScale   float64
	theme       string
	logLevel    string
	logFile     string
	metricsAddr string
	numRuns     int
	assetRoot   string
	width       int
	height      int
	sampleEvery int
	topDown     bool
	realtime    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "interactive solar system simulation",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	rootCmd.PersistentFlags().Float64Var(&timeScale, "scale", 1, "simulation time scale")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", "colour theme")
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&theme, "theme", "", "colour theme")
	guiCmd.Flags().StringVar(&assetRoot, "assets", ".", "directory textures are loaded from")
	guiCmd.Flags().IntVar(&width, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&height, "height", 720, "window height")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print a summary",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of runs with consecutive seeds")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames with a wall clock ticker")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot debris and orbit traces of a headless run",
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")
	traceCmd.Flags().IntVar(&sampleEvery, "every", 5, "sample every n frames")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the bodies of the solar system",
		RunE:  listBodies,
	}

	pickCmd := &cobra.Command{
		Use:   "pick [x] [y]",
		Short: "report the planet under a viewport pixel",
		Args:  cobra.ExactArgs(2),
		RunE:  pickAt,
	}
	pickCmd.Flags().IntVar(&width, "width", 1280, "viewport width")
	pickCmd.Flags().IntVar(&height, "height", 720, "viewport height")
	pickCmd.Flags().Float64Var(&duration, "time", 0, "simulated seconds before picking")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "write an svg of the scene after a headless run",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Float64Var(&duration, "time", 0, "simulated seconds before the snapshot")
	snapshotCmd.Flags().BoolVar(&topDown, "top", false, "draw the system from above instead of the camera view")
	snapshotCmd.Flags().StringVar(&theme, "theme", "", "colour theme")
	snapshotCmd.Flags().IntVar(&width, "width", 160, "canvas width in cells, or image size with --top")
	snapshotCmd.Flags().IntVar(&height, "height", 60, "canvas height in cells")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a yaml interaction scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s scale=%g debris=%v cooldown=%gs chance=%g\n",
					name, p.TimeScale, p.Debris.Enabled, p.Debris.Cooldown, p.Debris.SpawnChance)
			}
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, traceCmd, bodiesCmd, pickCmd, snapshotCmd, scriptCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the preset or config file, then applies flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// viewportFlags reads --width and --height from cmd. Several commands bind
// them with different defaults, so the shared variables are not used.
func viewportFlags(cmd *cobra.Command) (int, int) {
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	return w, h
}

func warmupFrames(cmd *cobra.Command, cfg *config.Config) int {
	t, _ := cmd.Flags().GetFloat64("time")
	return int(math.Round(t * float64(cfg.FPS)))
}

func newDriver(cfg *config.Config) (*sim.Driver, error) {
	w := sim.NewWorld(cfg, rand.New(rand.NewSource(cfg.Seed)))
	d := sim.NewDriver(w, nil)
	if err := d.SetTimeScale(cfg.TimeScale); err != nil {
		return nil, err
	}
	return d, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI; logs go to a file or nowhere.
	logger, closer, err := logging.OpenFile(logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting terminal view", "seed", cfg.Seed, "fps", cfg.FPS, "theme", cfg.Theme)

	m := viz.NewModel(d, viz.GetTheme(cfg.Theme), cfg.FrameInterval(), logger)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok {
		return fm.Err()
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	width, height := viewportFlags(cmd)
	logger.Info("opening window", "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", width, height))
	return gui.Run(d, gui.Options{
		Width:     width,
		Height:    height,
		FPS:       cfg.FPS,
		Theme:     cfg.Theme,
		AssetRoot: assetRoot,
	}, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if numRuns > 1 {
		return runEnsemble(ctx, cfg, logger)
	}

	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		d.AddMetric(m)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, runCtx := errgroup.WithContext(runCtx)

	if cfg.MetricsAddr != "" {
		collector := metrics.NewCollector()
		d.AddObserver(collector)
		d.World().Debris.AddObserver(collector)
		g.Go(func() error {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			return collector.Serve(runCtx, cfg.MetricsAddr)
		})
	}

	start := time.Now()
	g.Go(func() error {
		defer cancel()
		logger.Info("running", "seed", cfg.Seed, "frames", cfg.Frames(), "scale", cfg.TimeScale, "realtime", realtime)
		if !realtime {
			return d.RunFixed(runCtx, cfg.Frames(), 1/float64(cfg.FPS))
		}
		frames, stopFrames := sim.Ticker(cfg.FrameInterval())
		defer stopFrames()
		timed, done := context.WithTimeout(runCtx, time.Duration(cfg.Duration*float64(time.Second)))
		defer done()
		if err := d.Run(timed, frames); !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := sim.Summarize(cfg.Seed, d)
	logger.Info("done", "wall", time.Since(start).Round(time.Millisecond), "frames", s.Frames)
	printSummaries([]sim.Summary{s})
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.Info("running ensemble", "runs", numRuns, "seed", cfg.Seed)
	summaries, err := sim.NewEnsemble(cfg, numRuns, cfg.Seed, metrics.Standard).Run(ctx)
	if err != nil {
		return err
	}
	printSummaries(summaries)
	return nil
}

func printSummaries(summaries []sim.Summary) {
	names := make([]string, 0)
	if len(summaries) > 0 {
		for name := range summaries[0].Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tFRAMES\tTIME\tSTARS\tMETEORITES\tLIVE")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%d\t%d\t%d", s.Seed, s.Frames, s.Elapsed,
			s.Spawned[debris.ShootingStar], s.Spawned[debris.Meteorite], s.Live)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", s.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func runTrace(cmd *cobra.Command, args []string) error {
	series, caption, err := traceSeries(cmd)
	if err != nil {
		return err
	}

	live := make([]float64, 0)
	stars, meteorites := series.Live(debris.ShootingStar), series.Live(debris.Meteorite)
	for i := range stars {
		live = append(live, stars[i]+meteorites[i])
	}
	if len(live) < 2 {
		return fmt.Errorf("not enough samples: %d", len(live))
	}

	fmt.Println(asciigraph.Plot(live,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("live debris ("+caption+")"),
	))
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{
		series.Angle(celestial.Mercury),
		series.Angle(celestial.Earth),
		series.Angle(celestial.Jupiter),
	},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Yellow),
		asciigraph.Caption("orbit angle (rad): mercury, earth, jupiter"),
	))
	return nil
}

// traceSeries runs the configured simulation headless, sampling every
// --every frames.
func traceSeries(cmd *cobra.Command) (*metrics.Series, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	d, err := newDriver(cfg)
	if err != nil {
		return nil, "", err
	}
	series := metrics.NewSeries(sampleEvery)
	d.AddObserver(series)
	if err := d.RunFixed(cmd.Context(), cfg.Frames(), 1/float64(cfg.FPS)); err != nil {
		return nil, "", err
	}
	return series, fmt.Sprintf("seed %d", cfg.Seed), nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	reg := celestial.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tRADIUS\tORBIT\tORBIT SPEED\tSPIN\tTILT")
	for _, b := range reg.All() {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%g\n",
			b.Name, b.Kind, b.Radius, b.OrbitRadius, b.OrbitSpeed, b.SpinSpeed, b.AxialTilt)
	}
	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	th := viz.GetTheme(cfg.Theme)
	width, height := viewportFlags(cmd)

	var svg string
	if topDown {
		if err := d.RunFixed(cmd.Context(), warmupFrames(cmd, cfg), 1/float64(cfg.FPS)); err != nil {
			return err
		}
		svg = export.TopDownSVG(d.World(), width, th)
	} else {
		canvas := viz.NewCanvas(width, height)
		d.World().Camera.SetViewport(canvas.Viewport())
		d.SetRenderer(viz.NewSceneRenderer(canvas, th))
		if err := d.RunFixed(cmd.Context(), warmupFrames(cmd, cfg), 1/float64(cfg.FPS)); err != nil {
			return err
		}
		// A zero step renders the current state without advancing it.
		if err := d.Tick(0); err != nil {
			return err
		}
		svg = export.CanvasToSVG(canvas, 4, th)
	}

	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if preset == "" {
		preset = sc.Preset
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}

	logger.Info("running scenario", "name", sc.Name, "steps", len(sc.Steps))
	results, runErr := sc.Run(cmd.Context(), d, cfg.FPS, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tACTION\tTIME\tFRAME\tPICKED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\n", r.Index, r.Action, r.Time, r.Frame, r.Picked)
	}
	w.Flush()
	return runErr
}

func pickAt(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	width, height := viewportFlags(cmd)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport %dx%d: width and height must be positive", width, height)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	if err := d.RunFixed(cmd.Context(), warmupFrames(cmd, cfg), 1/float64(cfg.FPS)); err != nil {
		return err
	}

	w := d.World()
	disp := w.Dispatcher(scene.Viewport{Width: float64(width), Height: float64(height)})
	hit, ok := disp.Dispatch(pick.PointerClicked{X: x, Y: y})
	if !ok {
		fmt.Println("nothing under the pointer")
		return nil
	}
	fmt.Printf("%s at distance %.2f\n\n%s\n", hit.Body.Name, hit.Distance, viz.StripHTML(w.UI.Panel.HTML))
	return nil
}
