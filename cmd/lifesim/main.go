package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/tui"
	"github.com/san-kum/lifesim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultPlotGenerations    = 200
	defaultAnalyzeGenerations = 1000
)

var (
	configFile string
	preset     string
	logLevel   string

	width          int
	height         int
	probability    int
	seed           int64
	pattern        string
	originX        int
	originY        int
	delayMs        int
	maxGenerations int
	theme          string
	aliveGlyph     string
	deadGlyph      string
	noClear        bool

	benchGenerations int
	configOut        string
	svgOut           string
	svgScale         float64
	svgChart         bool

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifesim",
		Short: "conway's game of life on a torus",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE:          runText,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	boardFlags := rootCmd.PersistentFlags()
	boardFlags.IntVar(&width, "width", config.DefaultWidth, "grid width")
	boardFlags.IntVar(&height, "height", config.DefaultHeight, "grid height")
	boardFlags.IntVarP(&probability, "probability", "p", config.DefaultProbability, "percent chance a cell starts alive")
	boardFlags.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	boardFlags.StringVar(&pattern, "pattern", "", "seed a named pattern on an empty grid")
	boardFlags.IntVar(&originX, "x", 0, "pattern origin column")
	boardFlags.IntVar(&originY, "y", 0, "pattern origin row")
	boardFlags.IntVar(&delayMs, "delay", config.DefaultDelayMs, "delay between generations in ms")
	boardFlags.IntVarP(&maxGenerations, "generations", "n", 0, "stop after this many generations (0 = until extinct)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runText,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
		c.Flags().StringVar(&aliveGlyph, "alive", config.DefaultAliveGlyph, "glyph for live cells")
		c.Flags().StringVar(&deadGlyph, "dead", config.DefaultDeadGlyph, "glyph for dead cells")
		c.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing")
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with interactive visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot population over a headless run",
		Args:  cobra.NoArgs,
		RunE:  plotPopulation,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "detect cycles and population period",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the step engine",
		Args:  cobra.NoArgs,
		RunE:  benchStep,
	}
	benchCmd.Flags().IntVar(&benchGenerations, "steps", 100, "generations per measurement")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "write the configuration to a file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the board after a headless run as svg",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 8, "pixels per cell")
	snapshotCmd.Flags().BoolVar(&svgChart, "chart", false, "render the population chart instead of the board")
	snapshotCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, analyzeCmd, benchCmd, patternsCmd, presetsCmd, configCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = log.New(os.Stderr)
		}
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "lifesim",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return nil
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Debug("preset loaded", "name", preset)
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("probability") {
		cfg.Probability = probability
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("x") {
		cfg.Origin.X = originX
	}
	if flags.Changed("y") {
		cfg.Origin.Y = originY
	}
	if flags.Changed("delay") {
		cfg.DelayMs = delayMs
	}
	if flags.Changed("generations") {
		cfg.MaxGenerations = maxGenerations
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Changed("alive") {
		cfg.Display.AliveGlyph = aliveGlyph
	}
	if flags.Changed("dead") {
		cfg.Display.DeadGlyph = deadGlyph
	}
	if flags.Changed("no-clear") {
		cfg.Display.Clear = !noClear
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startingGrid builds the first generation and warns when a named pattern
// does not exist, since the grid is then left empty.
func startingGrid(cfg *config.Config) (*grid.Grid, error) {
	if cfg.Pattern != "" {
		if _, ok := grid.LookupPattern(cfg.Pattern); !ok {
			logger.Warn("unknown pattern, grid starts empty", "pattern", cfg.Pattern, "available", grid.PatternNames())
		}
	}
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	logger.Debug("grid seeded",
		"width", g.Width(), "height", g.Height(),
		"population", g.Population(), "seed", cfg.Seed, "pattern", cfg.Pattern)
	return g, nil
}

func newSimulation(g *grid.Grid) *sim.Simulation {
	s := sim.New(g)
	s.SetLogger(logger)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := startingGrid(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alive, dead := viz.GetTheme(cfg.Display.Theme).CellStyles()
	renderer := tui.NewLiveRenderer(os.Stdout,
		tui.WithGlyphs(cfg.Display.AliveGlyph, cfg.Display.DeadGlyph),
		tui.WithClear(cfg.Display.Clear),
		tui.WithStyles(alive, dead),
	)

	s := newSimulation(g)
	s.AddObserver(renderer)

	renderer.Start()
	result, err := s.Run(ctx, sim.RunConfig{
		MaxGenerations: cfg.MaxGenerations,
		Delay:          cfg.Delay(),
	})
	renderer.Stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := renderer.Err(); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	logSummary(result)
	return nil
}

func logSummary(result *sim.Result) {
	kv := []any{"generations", result.Generations, "reason", string(result.Reason)}
	for _, m := range metrics.Defaults() {
		kv = append(kv, m.Name(), fmt.Sprintf("%.3f", result.Metrics[m.Name()]))
	}
	logger.Info("run finished", kv...)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := startingGrid(cfg)
	if err != nil {
		return err
	}

	s := sim.New(g)
	reseed := func() (*grid.Grid, error) {
		if cfg.Pattern == "" {
			cfg.Seed = time.Now().UnixNano()
		}
		return cfg.Grid()
	}

	p := tea.NewProgram(viz.NewModel(s, reseed, cfg.Delay(), cfg.Display.Theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("live session ended", "generation", s.State().Generation, "population", s.State().Population)
	return nil
}

// headlessRun steps without delay or rendering, bounded by fallback when the
// configuration sets no limit.
func headlessRun(cmd *cobra.Command, fallback int) (*config.Config, *sim.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	g, err := startingGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	limit := cfg.MaxGenerations
	if limit == 0 {
		limit = fallback
	}

	result, err := newSimulation(g).Run(cmd.Context(), sim.RunConfig{MaxGenerations: limit})
	if err != nil {
		return nil, nil, err
	}
	return cfg, result, nil
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func plotPopulation(cmd *cobra.Command, args []string) error {
	cfg, result, err := headlessRun(cmd, defaultPlotGenerations)
	if err != nil {
		return err
	}

	fmt.Printf("%dx%d grid, seed %d\n", cfg.Width, cfg.Height, cfg.Seed)
	fmt.Printf("generations: %d (%s)\n\n", result.Generations, result.Reason)

	graph := asciigraph.Plot(toFloats(result.Population),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("peak population: %.0f\n", result.Metrics["peak_population"])
	fmt.Printf("mean density:    %.3f\n", result.Metrics["mean_density"])
	fmt.Printf("mean churn:      %.2f\n", result.Metrics["mean_churn"])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, result, err := headlessRun(cmd, defaultAnalyzeGenerations)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}

	fmt.Printf("%dx%d grid, seed %d\n\n", cfg.Width, cfg.Height, cfg.Seed)

	limit := cfg.MaxGenerations
	if limit == 0 {
		limit = defaultAnalyzeGenerations
	}
	if c, ok := analysis.FindCycle(g, limit); ok {
		switch {
		case c.Extinct:
			fmt.Printf("extinct after %d generations\n", c.Start)
		case c.Period == 1:
			fmt.Printf("still life reached at generation %d\n", c.Start)
		default:
			fmt.Printf("cycle of period %d entered at generation %d\n", c.Period, c.Start)
		}
	} else {
		fmt.Printf("no repeated state within %d generations\n", limit)
	}

	if period, ok := analysis.DominantPeriod(result.Population); ok {
		fmt.Printf("dominant population period: %.2f generations\n", period)
	} else {
		fmt.Println("population series has no dominant period")
	}

	ps := analysis.PowerSpectrum(toFloats(result.Population))
	if len(ps) > 2 {
		fmt.Println()
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("population power spectrum"),
		)
		fmt.Println(graph)
	}
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	sizes := []int{32, 64, 128, 256}

	fmt.Printf("benchmarking %d generations per size\n\n", benchGenerations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tENGINE\tTIME\tSTEPS/SEC\tCELLS/SEC")

	for _, size := range sizes {
		g, err := grid.NewRandom(size, size, config.DefaultProbability, grid.NewRNG(42))
		if err != nil {
			return err
		}

		engines := []struct {
			name string
			run  func() *grid.Grid
		}{
			{"next", func() *grid.Grid {
				cur := g
				for i := 0; i < benchGenerations; i++ {
					cur = life.Next(cur)
				}
				return cur
			}},
			{"stepper", func() *grid.Grid {
				return life.NewStepper().Advance(g, benchGenerations)
			}},
		}

		for _, e := range engines {
			start := time.Now()
			e.run()
			elapsed := time.Since(start)

			stepsPerSec := float64(benchGenerations) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%s\t%v\t%.0f\t%.0f\n",
				size, size, e.name, elapsed, stepsPerSec, stepsPerSec*float64(size*size))
		}
	}

	return w.Flush()
}

func listPatterns(cmd *cobra.Command, args []string) error {
	for _, name := range grid.PatternNames() {
		p, _ := grid.LookupPattern(name)
		fmt.Printf("%s (%dx%d, %d cells)\n", name, p.Width(), p.Height(), p.Population())
		fmt.Println(p.String())
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSEED\tDELAY\tLIMIT")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		start := fmt.Sprintf("random %d%%", cfg.Probability)
		if cfg.Pattern != "" {
			start = fmt.Sprintf("%s @ %d,%d", cfg.Pattern, cfg.Origin.X, cfg.Origin.Y)
		}
		limit := "-"
		if cfg.MaxGenerations > 0 {
			limit = fmt.Sprintf("%d", cfg.MaxGenerations)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%dms\t%s\n", name, cfg.Width, cfg.Height, start, cfg.DelayMs, limit)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if configOut != "" {
		if err := config.Save(configOut, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("config written", "path", configOut)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, result, err := headlessRun(cmd, defaultPlotGenerations)
	if err != nil {
		return err
	}

	th := viz.GetTheme(cfg.Display.Theme)
	var svg string
	if svgChart {
		svg = export.PopulationToSVG(result.Population, 800, 300, string(th.Accent))
	} else {
		svg = export.GridToSVG(result.Final, svgScale, string(th.Alive))
	}
	if svg == "" {
		return errors.New("nothing to render")
	}

	if svgOut == "" {
		_, err = fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	logger.Info("snapshot written", "path", svgOut, "generation", result.Generations)
	return nil
}
