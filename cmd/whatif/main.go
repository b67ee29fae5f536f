package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/san-kum/whatif/internal/chart"
	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/dice"
	"github.com/san-kum/whatif/internal/experiment"
	"github.com/san-kum/whatif/internal/logging"
	"github.com/san-kum/whatif/internal/optim"
	"github.com/san-kum/whatif/internal/storage"
	"github.com/san-kum/whatif/internal/tui"
	"github.com/san-kum/whatif/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	outputDir  string
	logLevel   string
	workers    int
	configFile string
	integrator string
	asciiPlot  bool
	saveRun    bool
	svgOut     bool
	// sweep
	axes     []string
	scenario int
	metric   string
	maximize bool
	// dice
	trials int
	guess  int
	seed   uint64
	faces  []int
	record bool

	logger = logging.Discard()
)

var errNoSet = errors.New("no scenario set given")

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "whatif",
		Short:         "what-if scenario simulator and dice trial lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", env.OutputDir, "directory for chart files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [set]",
		Short: "run a scenario set and chart it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSet,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario set file (yaml)")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "override the set's integrator (euler, rk4)")
	runCmd.Flags().IntVar(&workers, "workers", env.Workers, "scenarios run at once (0 = unlimited)")
	runCmd.Flags().BoolVar(&asciiPlot, "ascii", false, "also plot in the terminal")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep [set]",
		Short: "run one scenario over a parameter grid and rank by a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepSet,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scenario set file (yaml)")
	sweepCmd.Flags().StringArrayVar(&axes, "param", nil, "swept parameter, name=from:to:step or name=v1,v2 (repeatable)")
	sweepCmd.Flags().IntVar(&scenario, "scenario", 0, "index of the scenario to sweep")
	sweepCmd.Flags().StringVar(&metric, "metric", "final", "metric to rank by")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "rank highest first instead of lowest")
	sweepCmd.MarkFlagRequired("param")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenario sets",
		RunE:  listPresets,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list the models a set can name",
		RunE:  listModels,
	}

	initCmd := &cobra.Command{
		Use:   "init [set] [path]",
		Short: "write a built-in set as an editable yaml file",
		Args:  cobra.ExactArgs(2),
		RunE:  initSet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&svgOut, "svg", false, "also write <run_id>.svg to the output directory")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(os.Stdout, args[0])
		},
	}

	diceCmd := &cobra.Command{
		Use:   "dice",
		Short: "guess-the-roll trials",
	}
	diceCmd.PersistentFlags().Uint64Var(&seed, "seed", env.Seed, "random seed (0 = time based)")
	diceCmd.PersistentFlags().IntSliceVar(&faces, "faces", nil, "replay these faces instead of rolling")
	diceCmd.PersistentFlags().BoolVar(&record, "record", false, "append trials to the trial log in the data directory")

	checkCmd := &cobra.Command{
		Use:   "check [guess...]",
		Short: "roll once per guess and report each result",
		Args:  cobra.MinimumNArgs(1),
		RunE:  diceCheck,
	}

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "roll many times against one guess and check for bias",
		RunE:  diceBatch,
	}
	batchCmd.Flags().IntVar(&trials, "trials", 600, "number of rolls")
	batchCmd.Flags().IntVar(&guess, "guess", 3, "guessed face")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive guess prompt",
		RunE:  dicePlay,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "win counts per guess across recorded sessions",
		RunE:  diceHistory,
	}

	diceCmd.AddCommand(checkCmd, batchCmd, playCmd, historyCmd)
	rootCmd.AddCommand(runCmd, sweepCmd, presetsCmd, modelsCmd, initCmd, listCmd, plotCmd, exportJSONCmd, diceCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func loadSet(args []string) (*config.SetConfig, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w (available: %v)", errNoSet, config.ListPresets())
	}
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return nil, fmt.Errorf("unknown set: %s (available: %v)", args[0], config.ListPresets())
	}
	return cfg, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadSet(args)
	if err != nil {
		return err
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}

	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	exp.SetWorkers(workers)

	report, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := viz.WriteReport(os.Stdout, report, 30); err != nil {
		return err
	}

	if asciiPlot {
		graph, err := chart.RenderASCII(report.Chart, 80, 15)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Model
	}
	path, err := writeChart(name, report.Chart)
	if err != nil {
		return err
	}
	fmt.Printf("\nchart: %s\n", path)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(report)
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", runID, "dir", dataDir)
		fmt.Printf("saved run: %s\n", runID)
	}

	return nil
}

func writeChart(name string, c *chart.Chart) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, name+".svg")
	if err := chart.WriteSVGFile(path, c); err != nil {
		return "", err
	}
	logger.Debug("chart written", "path", path, "kind", c.Kind, "series", len(c.Series))
	return path, nil
}

func sweepSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadSet(args)
	if err != nil {
		return err
	}

	parsed := make([]optim.Axis, len(axes))
	for i, a := range axes {
		if parsed[i], err = optim.ParseAxis(a); err != nil {
			return err
		}
	}

	g := optim.NewGridSearch(parsed, metric, maximize, logger)
	points, best, err := g.Search(cmd.Context(), cfg, scenario, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PARAMS\t%s\n", metric)
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\n", p.Label, viz.Number(p.Value))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %s (%s = %s)\n", viz.MetricValue.Render(best.Label), metric, viz.Number(best.Value))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SET\tMODEL\tSTEPS\tSCENARIOS\tTITLE")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, p.Model, p.Steps, len(p.Scenarios), p.Chart.Title)
	}
	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tDESCRIPTION")
	for _, name := range registry.ListModels() {
		spec, err := registry.GetModel(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", name, spec.Description)
	}
	return w.Flush()
}

func initSet(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown set: %s (available: %v)", args[0], config.ListPresets())
	}
	if err := config.Save(args[1], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
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
	fmt.Fprintln(w, "ID\tSET\tMODEL\tTIME\tSTEPS\tSCENARIOS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Set,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			len(run.Scenarios),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	c, err := st.LoadChart(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("steps: %d\n\n", meta.Steps)

	graph, err := chart.RenderASCII(c, 80, 15)
	if err != nil {
		return err
	}
	fmt.Println(graph)

	if svgOut {
		path, err := writeChart(runID, c)
		if err != nil {
			return err
		}
		fmt.Printf("\nchart: %s\n", path)
	}
	return nil
}

func newGame() (*dice.Game, error) {
	if len(faces) > 0 {
		for _, f := range faces {
			if !dice.ValidGuess(f) {
				return nil, fmt.Errorf("face %d out of range 1-%d", f, dice.Sides)
			}
		}
		logger.Debug("replaying faces", "faces", faces)
		return dice.NewGame(&dice.Scripted{Faces: faces}), nil
	}

	s := seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	logger.Debug("rolling", "seed", s)
	return dice.NewGame(dice.NewSource(s)), nil
}

func diceCheck(cmd *cobra.Command, args []string) error {
	guesses := make([]int, len(args))
	for i, a := range args {
		g, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("guess %q is not a number", a)
		}
		guesses[i] = g
	}

	game, err := newGame()
	if err != nil {
		return err
	}
	game.AddObserver(viz.TrialReporter(os.Stdout))
	return recordTrials(cmd.Context(), "check", game.Session(guesses))
}

func diceBatch(cmd *cobra.Command, args []string) error {
	if trials < 0 {
		return fmt.Errorf("trials must be non-negative, got %d", trials)
	}

	game, err := newGame()
	if err != nil {
		return err
	}

	var played []dice.Trial
	if record {
		game.AddObserver(dice.ObserverFunc(func(t dice.Trial) { played = append(played, t) }))
	}

	start := time.Now()
	b := game.Batch(trials, guess)
	logger.Info("batch finished", "trials", b.Trials, "guess", b.Guess, "wins", b.Wins, "elapsed", time.Since(start))

	if err := viz.WriteBatch(os.Stdout, b); err != nil {
		return err
	}
	return recordTrials(cmd.Context(), "batch", played)
}

func dicePlay(cmd *cobra.Command, args []string) error {
	game, err := newGame()
	if err != nil {
		return err
	}

	played, err := tui.RunPrompt(game)
	if err != nil {
		return err
	}
	logger.Info("prompt closed", slog.Int("trials", len(played)))
	return recordTrials(cmd.Context(), "play", played)
}

func recordTrials(ctx context.Context, kind string, played []dice.Trial) error {
	if !record || len(played) == 0 {
		return nil
	}

	l, err := storage.OpenTrialLog(ctx, filepath.Join(dataDir, storage.TrialsFile))
	if err != nil {
		return err
	}
	defer l.Close()

	session := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	if err := l.Append(ctx, session, played); err != nil {
		return err
	}
	logger.Info("trials recorded", "session", session, "trials", len(played))
	return nil
}

func diceHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	l, err := storage.OpenTrialLog(ctx, filepath.Join(dataDir, storage.TrialsFile))
	if err != nil {
		return err
	}
	defer l.Close()

	stats, err := l.Stats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("no trials recorded")
		return nil
	}

	sessions, err := l.Sessions(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s sessions\n\n", viz.Number(float64(sessions)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GUESS\tTRIALS\tWINS\tEXPECTED\tVERDICT")
	for _, st := range stats {
		b := dice.Batch{Guess: st.Guess, Trials: st.Trials, Wins: st.Wins, Expected: st.Expected, Biased: st.Biased}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", st.Guess, viz.Number(float64(st.Trials)), viz.Number(float64(st.Wins)), viz.Number(st.Expected), viz.Verdict(b))
	}
	return w.Flush()
}
