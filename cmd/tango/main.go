// Package main provides the CLI entrypoint for tango.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tango/internal/config"
	"github.com/verte-zerg/tango/internal/logging"
	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/quiz"
	"github.com/verte-zerg/tango/internal/speech"
	"github.com/verte-zerg/tango/internal/stats"
	"github.com/verte-zerg/tango/internal/store"
	"github.com/verte-zerg/tango/internal/study"
	"github.com/verte-zerg/tango/internal/tui"
	"github.com/verte-zerg/tango/internal/vocab"
)

const (
	defaultCount       = 0
	defaultOrder       = "random"
	defaultQuotaBytes  = 5 << 20
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultStatsWindow = 3
	plotHeight         = 8
)

var defaultTypes = strings.Join(lo.Map(model.AllQuestionTypes(), func(qt model.QuestionType, _ int) string {
	return string(qt)
}), ",")

var (
	rootVocabDir string
	rootSpeech   string
	rootLogLevel string

	studyWeek        int
	studyInterval    = study.DefaultAutoPlayInterval
	studySpeakOnFlip = true

	testWeek       int
	testTypes      = defaultTypes
	testCount      = defaultCount
	testOrder      = defaultOrder
	testHistoryCap = progress.DefaultHistoryCap

	reviewWeek int

	statsPlain  bool
	statsWindow int

	syncFrom  string
	syncDir   string
	syncForce bool

	resetWeek  int
	resetWrong bool
	resetAll   bool
)

func main() {
	rootCmd := newRootCmd()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tango",
		Short:         "Japanese vocabulary flashcards and quizzes by week",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, tui.HomePage{})
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootVocabDir, "vocab-dir", "", "directory with week{N}.json files (default: bundled vocabulary)")
	rootCmd.PersistentFlags().StringVar(&rootSpeech, "speech", "", "text-to-speech command, e.g. \"say -v Kyoko\"")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level")

	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWeeksCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds the collaborators shared by every command.
type app struct {
	cfg     config.FileConfig
	log     *logrus.Logger
	closers []io.Closer
	db      *store.Store
	prog    *progress.Store
	vocab   *vocab.Store
	speaker *speech.Speaker
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab-dir", &rootVocabDir, fileCfg.Vocabulary.Dir)
	applyStringConfig(cmd, "speech", &rootSpeech, fileCfg.Speech.Command)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)

	logOpts := logging.Options{Level: rootLogLevel, Format: defaultLogFormat, File: config.DefaultLogPath()}
	if fileCfg.Log.Format != nil {
		logOpts.Format = *fileCfg.Log.Format
	}
	if fileCfg.Log.File != nil {
		logOpts.File = *fileCfg.Log.File
	}
	logger, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{cfg: fileCfg, log: logger, closers: []io.Closer{logCloser}}

	quota := int64(defaultQuotaBytes)
	if fileCfg.Storage.QuotaBytes != nil {
		quota = *fileCfg.Storage.QuotaBytes
	}
	db, err := store.Open(config.DefaultDBPath(), store.WithQuota(quota))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.db = db
	a.closers = append([]io.Closer{db}, a.closers...)
	a.prog = progress.New(db, logger)

	var vocabOpts []vocab.Option
	attempts, delay := vocab.DefaultRetryAttempts, vocab.DefaultRetryDelay
	if fileCfg.Vocabulary.RetryAttempts != nil {
		attempts = *fileCfg.Vocabulary.RetryAttempts
	}
	if fileCfg.Vocabulary.RetryDelay != nil {
		delay = fileCfg.Vocabulary.RetryDelay.Duration
	}
	vocabOpts = append(vocabOpts, vocab.WithRetry(attempts, delay))
	a.vocab = vocab.NewStore(vocabSource(rootVocabDir, logger), logger.WithField("component", "vocab"), vocabOpts...)

	a.speaker = speech.New(rootSpeech, logger.WithField("component", "speech"))
	a.closers = append([]io.Closer{a.speaker}, a.closers...)
	return a, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if cerr := c.Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}
}

// vocabSource reads dir when it holds a first week and falls back to the
// bundled vocabulary otherwise.
func vocabSource(dir string, log logrus.FieldLogger) vocab.Source {
	if dir == "" {
		dir = config.DefaultVocabularyDir()
	}
	if _, err := os.Stat(filepath.Join(dir, vocab.FileName(1))); err == nil {
		log.WithField("dir", dir).Debug("using vocabulary directory")
		return vocab.NewFSSource(os.DirFS(dir))
	}
	log.Debug("using bundled vocabulary")
	return vocab.Embedded()
}

func runTUI(cmd *cobra.Command, start tui.Page) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	studyCfg, err := studyConfig(cmd, a.cfg)
	if err != nil {
		return err
	}
	quizCfg, err := quizConfig(cmd, a.cfg)
	if err != nil {
		return err
	}

	root := tui.New(tui.Deps{
		Vocab:    a.vocab,
		Progress: a.prog,
		Speaker:  a.speaker,
		Log:      a.log,
		Study:    studyCfg,
		Quiz:     quizCfg,
	}, start)
	defer root.Close()
	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func studyConfig(cmd *cobra.Command, fileCfg config.FileConfig) (study.Config, error) {
	applyDurationConfig(cmd, "interval", &studyInterval, fileCfg.Study.AutoPlayInterval)
	applyBoolConfig(cmd, "speak-on-flip", &studySpeakOnFlip, fileCfg.Study.SpeakOnFlip)
	if studyInterval <= 0 {
		return study.Config{}, fmt.Errorf("--interval must be > 0")
	}
	return study.Config{AutoPlayInterval: studyInterval, SpeakOnFlip: studySpeakOnFlip}, nil
}

func quizConfig(cmd *cobra.Command, fileCfg config.FileConfig) (quiz.Config, error) {
	var typesFromFile *string
	if fileCfg.Test.Types != nil {
		joined := strings.Join(*fileCfg.Test.Types, ",")
		typesFromFile = &joined
	}
	applyStringConfig(cmd, "types", &testTypes, typesFromFile)
	applyIntConfig(cmd, "count", &testCount, fileCfg.Test.Count)
	applyStringConfig(cmd, "order", &testOrder, fileCfg.Test.Order)
	applyIntConfig(cmd, "history-cap", &testHistoryCap, fileCfg.Test.HistoryCap)

	types, err := model.ParseQuestionTypes(testTypes)
	if err != nil {
		return quiz.Config{}, fmt.Errorf("invalid --types value: %w", err)
	}
	if len(types) == 0 {
		return quiz.Config{}, fmt.Errorf("--types must not be empty")
	}
	if testCount < 0 {
		return quiz.Config{}, fmt.Errorf("--count must be >= 0")
	}
	var random bool
	switch strings.ToLower(strings.TrimSpace(testOrder)) {
	case "random":
		random = true
	case "sequential":
		random = false
	default:
		return quiz.Config{}, fmt.Errorf("--order must be random or sequential")
	}
	if testHistoryCap < 0 {
		return quiz.Config{}, fmt.Errorf("--history-cap must be >= 0")
	}
	return quiz.Config{Types: types, Count: testCount, RandomOrder: random, HistoryCap: testHistoryCap}, nil
}

func newStudyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Study the flashcards of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateWeek(studyWeek); err != nil {
				return err
			}
			return runTUI(cmd, tui.StudyPage{Week: studyWeek})
		},
	}
	cmd.Flags().IntVar(&studyWeek, "week", 1, "week to study")
	cmd.Flags().DurationVar(&studyInterval, "interval", study.DefaultAutoPlayInterval, "auto-play interval")
	cmd.Flags().BoolVar(&studySpeakOnFlip, "speak-on-flip", true, "pronounce the word when a card is revealed")
	return cmd
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Take a multiple-choice test over a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateWeek(testWeek); err != nil {
				return err
			}
			return runTUI(cmd, tui.TestPage{Week: testWeek})
		},
	}
	cmd.Flags().IntVar(&testWeek, "week", 1, "week to test")
	cmd.Flags().StringVar(&testTypes, "types", defaultTypes, "comma-separated question types")
	cmd.Flags().IntVar(&testCount, "count", defaultCount, "number of questions (0: every word)")
	cmd.Flags().StringVar(&testOrder, "order", defaultOrder, "question order: random or sequential")
	cmd.Flags().IntVar(&testHistoryCap, "history-cap", progress.DefaultHistoryCap, "test results kept per week")
	return cmd
}

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review wrong answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("week") {
				if err := validateWeek(reviewWeek); err != nil {
					return err
				}
				return runTUI(cmd, tui.ReviewWeekPage{Week: reviewWeek})
			}
			return runTUI(cmd, tui.ReviewPage{})
		},
	}
	cmd.Flags().IntVar(&reviewWeek, "week", 0, "review a single week")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print plain text instead of opening the TUI")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if !statsPlain {
		return runTUI(cmd, tui.StatsPage{})
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	report := stats.BuildReport(cmd.Context(), a.vocab, a.prog)
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderWeeks(out, report, time.Local); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	width := stats.PlotWidthFor(stats.TerminalWidth())
	if err := stats.RenderHistory(out, report, statsWindow, width, plotHeight, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWeeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List available weeks",
		Args:  cobra.NoArgs,
		RunE:  runWeeksCmd,
	}
}

func runWeeksCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	vs := a.vocab.AggregateStats(cmd.Context())
	if vs.TotalWeeks == 0 {
		logErrln("No vocabulary found. Add week1.json to", config.DefaultVocabularyDir(), "or run: tango sync --from <dir|url>")
		return fmt.Errorf("no vocabulary found")
	}
	weeks := lo.Keys(vs.WordsPerWeek)
	sort.Ints(weeks)
	for _, week := range weeks {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "week %d\t%d words\n", week, vs.WordsPerWeek[week]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy vocabulary from a directory or URL",
		Args:  cobra.NoArgs,
		RunE:  runSyncCmd,
	}
	cmd.Flags().StringVar(&syncFrom, "from", "", "source directory or http(s) base URL (default: bundled vocabulary)")
	cmd.Flags().StringVar(&syncDir, "dir", "", "destination directory (default: config vocabulary dir)")
	cmd.Flags().BoolVar(&syncForce, "force", false, "overwrite existing files")
	return cmd
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	var src vocab.Source
	switch {
	case syncFrom == "":
		src = vocab.Embedded()
	case strings.HasPrefix(syncFrom, "http://"), strings.HasPrefix(syncFrom, "https://"):
		src = vocab.NewHTTPSource(syncFrom, nil)
	default:
		src = vocab.NewFSSource(os.DirFS(syncFrom))
	}
	dir := syncDir
	if dir == "" {
		dir = config.DefaultVocabularyDir()
	}

	written, err := vocab.Sync(cmd.Context(), src, dir, syncForce)
	for _, path := range written {
		logErrf("Wrote %s\n", path)
	}
	if errors.Is(err, vocab.ErrExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	if err != nil {
		return fmt.Errorf("failed to sync vocabulary: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset saved progress",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().IntVar(&resetWeek, "week", 0, "reset the progress of one week")
	cmd.Flags().BoolVar(&resetWrong, "wrong", false, "clear the wrong-answer list")
	cmd.Flags().BoolVar(&resetAll, "all", false, "reset every saved value except the theme")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	selected := lo.Count([]bool{cmd.Flags().Changed("week"), resetWrong, resetAll}, true)
	if selected != 1 {
		return fmt.Errorf("choose exactly one of --week, --wrong or --all")
	}
	if cmd.Flags().Changed("week") {
		if err := validateWeek(resetWeek); err != nil {
			return err
		}
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	switch {
	case resetAll:
		a.prog.ResetAll()
		logErrln("All progress reset")
	case resetWrong:
		a.prog.ClearWrongAnswers()
		logErrln("Wrong answers cleared")
	default:
		a.prog.Reset(resetWeek)
		logErrf("Week %d progress reset\n", resetWeek)
	}
	return nil
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Prune old test results and wrong answers",
		Args:  cobra.NoArgs,
		RunE:  runCleanupCmd,
	}
}

func runCleanupCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	before, err := a.db.Size(ctx)
	if err != nil {
		return fmt.Errorf("failed to measure storage: %w", err)
	}
	a.prog.Cleanup()
	after, err := a.db.Size(ctx)
	if err != nil {
		return fmt.Errorf("failed to measure storage: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "storage: %d -> %d bytes\n", before, after); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func validateWeek(week int) error {
	if week < 1 || week > vocab.MaxWeeks {
		return fmt.Errorf("--week must be between 1 and %d", vocab.MaxWeeks)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
