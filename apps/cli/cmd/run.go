package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/config"
	"github.com/abdul-hamid-achik/hookspec/packages/core/env"
	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
	"github.com/abdul-hamid-achik/hookspec/packages/logging"
	"github.com/abdul-hamid-achik/hookspec/packages/output"
	"github.com/abdul-hamid-achik/hookspec/packages/plan"
	"github.com/abdul-hamid-achik/hookspec/packages/webdriver"
)

var runCmd = &cobra.Command{
	Use:   "run <plan|directory>...",
	Short: "Run suite plans",
	Long: `Run the classes, tests and hooks declared in .hookspec.yaml plans.

Examples:
  hookspec run checkout.hookspec.yaml
  hookspec run ./plans/ --env staging
  hookspec run ./plans/ --driver ie11 --platform windows --remote http://grid:4444
  hookspec run ./plans/ --groups smoke --name "cart*"
  hookspec run ./plans/ -o console,junit --output-dir reports
  hookspec run ./plans/ --parallel --concurrency 8
  hookspec run ./plans/ --watch`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

// reportFiles names the file each non-console reporter writes in the
// output directory.
var reportFiles = map[string]string{
	"json":  "hookspec.json",
	"junit": "junit.xml",
	"tap":   "hookspec.tap",
	"html":  "hookspec.html",
}

var (
	envFlag          string
	configFlag       string
	nameFlag         string
	groupsFlag       string
	varsFlag         map[string]string
	noDotEnvFlag     bool
	verboseFlag      int // 0=off, 1=-v, 2=-vv, 3=-vvv
	quietFlag        bool
	noColorFlag      bool
	outputFlag       string
	outputFileFlag   string
	outputDirFlag    string
	bailFlag         bool
	dryRunFlag       bool
	parallelFlag     bool
	concurrencyFlag  int
	resetRetriesFlag bool
	watchFlag        bool

	// Driver flags
	driverFlag      string
	platformFlag    string
	remoteFlag      string
	sessionRateFlag float64
	timeoutFlag     string

	// Logging flags
	logLevelFlag string
	logFileFlag  string
)

func init() {
	// Core flags
	runCmd.Flags().StringVarP(&envFlag, "env", "e", getEnvString("HOOKSPEC_ENV", ""), "Plan environment to use (env: HOOKSPEC_ENV)")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("HOOKSPEC_CONFIG", ""), "Path to config file (env: HOOKSPEC_CONFIG)")
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only tests whose name matches the pattern (* wildcards)")
	runCmd.Flags().StringVarP(&groupsFlag, "groups", "g", getEnvString("HOOKSPEC_GROUPS", ""), "Run only tests in any of these groups (comma-separated) (env: HOOKSPEC_GROUPS)")
	runCmd.Flags().StringToStringVar(&varsFlag, "var", nil, "Set a plan variable (key=value), may be repeated")
	runCmd.Flags().BoolVar(&noDotEnvFlag, "no-dotenv", false, "Do not load .env files next to plans")

	// Output flags
	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v hook details, -vv info logs, -vvv debug logs)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("HOOKSPEC_QUIET", false), "Suppress colors and header (env: HOOKSPEC_QUIET)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("HOOKSPEC_NO_COLOR", false), "Disable colored output (env: HOOKSPEC_NO_COLOR)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("HOOKSPEC_OUTPUT", "console"), "Reporters: console, json, junit, tap, html (comma-separated) (env: HOOKSPEC_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("HOOKSPEC_OUTPUT_FILE", ""), "Write the single reporter's output to file (env: HOOKSPEC_OUTPUT_FILE)")
	runCmd.Flags().StringVar(&outputDirFlag, "output-dir", getEnvString("HOOKSPEC_OUTPUT_DIR", ""), "Write non-console reports to this directory (env: HOOKSPEC_OUTPUT_DIR)")

	// Execution flags
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("HOOKSPEC_BAIL", false), "Stop on first failure (env: HOOKSPEC_BAIL)")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Validate plans and show what would run without executing")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("HOOKSPEC_PARALLEL", false), "Run classes in parallel, one browser session each (env: HOOKSPEC_PARALLEL)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("HOOKSPEC_CONCURRENCY", config.DefaultConcurrency), "Number of classes run at once in parallel mode (env: HOOKSPEC_CONCURRENCY)")
	runCmd.Flags().BoolVar(&resetRetriesFlag, "reset-retries", getEnvBool("HOOKSPEC_RESET_RETRIES", false), "Reset the hook retry budget before each test (env: HOOKSPEC_RESET_RETRIES)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch plans for changes and re-run them")

	// Driver flags
	runCmd.Flags().StringVar(&driverFlag, "driver", getEnvString("HOOKSPEC_BROWSER", config.DefaultDriver), "Browser driver: chrome, firefox, safari, edge, ie11 (env: HOOKSPEC_BROWSER)")
	runCmd.Flags().StringVar(&platformFlag, "platform", getEnvString("HOOKSPEC_PLATFORM_NAME", ""), "Platform name used by group exclusions (env: HOOKSPEC_PLATFORM_NAME)")
	runCmd.Flags().StringVar(&remoteFlag, "remote", getEnvString("HOOKSPEC_REMOTE_URL", ""), "WebDriver endpoint; empty uses local sessions (env: HOOKSPEC_REMOTE_URL)")
	runCmd.Flags().Float64Var(&sessionRateFlag, "session-rate", getEnvFloat("HOOKSPEC_SESSION_RATE", config.DefaultSessionRate), "Remote sessions created per second (env: HOOKSPEC_SESSION_RATE)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("HOOKSPEC_TIMEOUT", "30s"), "WebDriver request timeout (e.g., 30s, 1m) (env: HOOKSPEC_TIMEOUT)")

	// Logging flags
	runCmd.Flags().StringVar(&logLevelFlag, "log-level", getEnvString("HOOKSPEC_LOG_LEVEL", ""), "Log level: debug, info, warn, error (env: HOOKSPEC_LOG_LEVEL)")
	runCmd.Flags().StringVar(&logFileFlag, "log-file", getEnvString("HOOKSPEC_LOG_FILE", ""), "Also write JSON logs to this file (env: HOOKSPEC_LOG_FILE)")
}

// flagConfig returns the settings given on the command line or through
// HOOKSPEC_* variables, to be merged over the config file.
func flagConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	set := func(name, envKey string) bool {
		return flags.Changed(name) || (envKey != "" && os.Getenv(envKey) != "")
	}

	c := &config.Config{}
	if set("driver", "HOOKSPEC_BROWSER") {
		c.Driver = driverFlag
	}
	if set("platform", "HOOKSPEC_PLATFORM_NAME") {
		c.Platform = platformFlag
	}
	if set("remote", "HOOKSPEC_REMOTE_URL") {
		c.RemoteURL = remoteFlag
	}
	if set("session-rate", "HOOKSPEC_SESSION_RATE") {
		c.SessionRate = sessionRateFlag
	}
	if set("timeout", "HOOKSPEC_TIMEOUT") {
		timeout, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)
		}
		c.Timeout = int(timeout.Milliseconds())
	}
	if set("env", "HOOKSPEC_ENV") {
		c.Environment = envFlag
	}
	if set("output", "HOOKSPEC_OUTPUT") {
		c.Reporters = splitList(outputFlag)
	}
	if set("output-dir", "HOOKSPEC_OUTPUT_DIR") {
		c.OutputDir = outputDirFlag
	}
	if set("concurrency", "HOOKSPEC_CONCURRENCY") {
		c.Concurrency = concurrencyFlag
	}
	if set("parallel", "HOOKSPEC_PARALLEL") {
		c.Parallel = config.BoolPtr(parallelFlag)
	}
	if set("bail", "HOOKSPEC_BAIL") {
		c.Bail = config.BoolPtr(bailFlag)
	}
	if set("reset-retries", "HOOKSPEC_RESET_RETRIES") {
		c.ResetRetries = config.BoolPtr(resetRetriesFlag)
	}
	if set("no-color", "HOOKSPEC_NO_COLOR") || quietFlag {
		c.NoColor = config.BoolPtr(noColorFlag || quietFlag)
	}
	if verboseFlag > 0 {
		c.Verbose = config.BoolPtr(true)
	}

	logCfg := &logging.Config{Level: logLevelFlag}
	switch {
	case verboseFlag >= 3:
		logCfg.Level = "debug"
	case verboseFlag == 2 && logCfg.Level == "":
		logCfg.Level = "info"
	}
	if logFileFlag != "" {
		logCfg.Output = logging.OutputBoth
		logCfg.FilePath = logFileFlag
	}
	if *logCfg != (logging.Config{}) {
		c.Log = logCfg
	}

	return c, c.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	overrides, err := flagConfig(cmd)
	if err != nil {
		return nil, err
	}
	return fileConfig.Merge(overrides), nil
}

// newStarter picks remote sessions when an endpoint is configured.
func newStarter(cfg *config.Config, logger *zap.Logger) webdriver.Starter {
	if cfg.RemoteURL == "" {
		return webdriver.NewLocal(logger)
	}
	return webdriver.NewRemote(cfg.RemoteURL,
		webdriver.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond),
		webdriver.WithRate(cfg.SessionRate),
		webdriver.WithCapabilities(map[string]any{"platformName": cfg.Platform}),
		webdriver.WithLogger(logger),
	)
}

// reporters are the formatters of one run plus the files they write to.
type reporters struct {
	formatters []output.Formatter
	files      []*os.File
}

func openReporters(cfg *config.Config, stdout io.Writer) (*reporters, error) {
	names := cfg.Reporters
	if len(names) == 0 {
		names = []string{"console"}
	}
	if outputFileFlag != "" && len(names) > 1 {
		return nil, fmt.Errorf("--output-file takes a single reporter, got %s", strings.Join(names, ", "))
	}

	rs := &reporters{}
	for _, name := range names {
		w := stdout
		path := outputFileFlag
		if path == "" && name != "console" && cfg.OutputDir != "" {
			path = filepath.Join(cfg.OutputDir, reportFiles[name])
		}
		if path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				rs.close()
				return nil, fmt.Errorf("creating report directory: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				rs.close()
				return nil, fmt.Errorf("cannot create output file: %w", err)
			}
			rs.files = append(rs.files, f)
			w = f
		}

		formatter, err := output.New(name, w, cfg.GetVerbose(), cfg.GetNoColor() || path != "")
		if err != nil {
			rs.close()
			return nil, err
		}
		rs.formatters = append(rs.formatters, formatter)
	}
	return rs, nil
}

func (rs *reporters) header() {
	if quietFlag {
		return
	}
	for _, f := range rs.formatters {
		f.FormatHeader(version)
	}
}

func (rs *reporters) result(r *runner.RunResult) {
	for _, f := range rs.formatters {
		f.FormatResult(r)
	}
}

func (rs *reporters) fail(err error) {
	for _, f := range rs.formatters {
		f.FormatError(err)
	}
}

func (rs *reporters) flush(d time.Duration) error {
	for _, f := range rs.formatters {
		if flushable, ok := f.(output.Flushable); ok {
			if err := flushable.Flush(d); err != nil {
				return fmt.Errorf("error writing output: %w", err)
			}
		}
	}
	return nil
}

func (rs *reporters) close() {
	for _, f := range rs.files {
		_ = f.Close()
	}
}

// runSummary totals the results of every plan in one run.
type runSummary struct {
	passed, failed, skipped int
	groupFailures           int
	stopped                 int
	parseErrors             int
	configErrors            int
	sessionErrors           int
	// interrupted is set when the run context ended during the run.
	interrupted bool
}

func (s *runSummary) add(r *runner.RunResult) {
	s.passed += r.Passed
	s.failed += r.Failed
	s.skipped += r.Skipped
	s.groupFailures += len(r.GroupFailures)
	if r.Fatal != nil {
		s.stopped++
	}
}

func (s *runSummary) failing() bool {
	return s.failed > 0 || s.groupFailures > 0 || s.stopped > 0 ||
		s.parseErrors > 0 || s.configErrors > 0 || s.sessionErrors > 0 || s.interrupted
}

// err maps the summary to the process exit code, most severe first.
func (s *runSummary) err() error {
	switch {
	case s.parseErrors > 0:
		return exitWith(ExitParseError, "%d plan(s) could not be parsed", s.parseErrors)
	case s.configErrors > 0:
		return exitWith(ExitConfigError, "%d plan(s) could not be bound", s.configErrors)
	case s.sessionErrors > 0:
		return exitWith(ExitSessionError, "%d plan(s) could not start a browser session", s.sessionErrors)
	case s.interrupted:
		return exitWith(ExitStopped, "run interrupted after %d passed, %d failed", s.passed, s.failed)
	case s.stopped > 0:
		return exitWith(ExitStopped, "%d suite(s) stopped by a hook failure", s.stopped)
	case s.failed > 0 || s.groupFailures > 0:
		return exitWith(ExitTestFailure, "%d test(s) and %d suite hook(s) failed", s.failed, s.groupFailures)
	}
	return nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	defer func() { _ = logger.Sync() }()

	files, err := plan.Find(args)
	if err != nil {
		return &ExitError{Code: ExitUsageError, Err: err}
	}
	if len(files) == 0 {
		return exitWith(ExitUsageError, "no %s files found", strings.Join(plan.Extensions, " or "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.NewRunner(&runner.Config{
		Verbose:      cfg.GetVerbose(),
		Bail:         cfg.GetBail(),
		NameFilter:   nameFlag,
		GroupFilter:  splitList(groupsFlag),
		Parallel:     cfg.GetParallel(),
		Concurrency:  cfg.Concurrency,
		ResetRetries: cfg.GetResetRetries(),
	},
		runner.WithLogger(logger),
		runner.WithSessionFactory(webdriver.SessionFactory(newStarter(cfg, logger), cfg.Driver, cfg.Platform)),
	)

	runPlans := func() (*runSummary, error) {
		rs, err := openReporters(cfg, cmd.OutOrStdout())
		if err != nil {
			return nil, &ExitError{Code: ExitConfigError, Err: err}
		}
		defer rs.close()
		rs.header()

		sum := &runSummary{}
		start := time.Now()
		for _, file := range files {
			if ctx.Err() != nil {
				break
			}

			p, err := plan.ParseFile(file)
			if err != nil {
				rs.fail(err)
				sum.parseErrors++
				if cfg.GetBail() {
					break
				}
				continue
			}

			if dryRunFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Would run: %s (%d classes, %d tests)\n", file, len(p.Classes), p.TestCount())
				continue
			}

			suite, err := plan.Bind(p, plan.BindOptions{
				Environment: cfg.Environment,
				Vars:        varsFlag,
				DotEnv:      !noDotEnvFlag,
				Logger:      logger,
			})
			if err != nil {
				rs.fail(fmt.Errorf("%s: %w", file, err))
				sum.configErrors++
				if cfg.GetBail() {
					break
				}
				continue
			}

			result, err := r.RunSuite(ctx, suite)
			if err != nil {
				rs.fail(fmt.Errorf("%s: %w", file, err))
				sum.sessionErrors++
				if cfg.GetBail() {
					break
				}
				continue
			}

			rs.result(result)
			sum.add(result)
			if cfg.GetBail() && sum.failing() {
				break
			}
		}

		if err := ctx.Err(); err != nil {
			sum.interrupted = true
			logger.Warn("run interrupted", zap.Error(err))
		}

		if err := rs.flush(time.Since(start)); err != nil {
			return nil, err
		}
		return sum, nil
	}

	sum, err := runPlans()
	if err != nil {
		return err
	}
	if !watchFlag {
		return sum.err()
	}

	return watchPlans(ctx, cmd, files, args, logger, runPlans)
}

// watchPlans re-runs the plans whenever one of them is written, until ctx
// is done.
func watchPlans(ctx context.Context, cmd *cobra.Command, files, args []string, logger *zap.Logger, runPlans func() (*runSummary, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
			}
			watchedDirs[dir] = true
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			continue
		}
		_ = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && !watchedDirs[path] {
				_ = watcher.Add(path)
				watchedDirs[path] = true
			}
			return nil
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	rerun := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running plans...\n\n", name)
		if _, err := runPlans(); err != nil {
			logger.Error("re-run failed", zap.Error(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	}

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !plan.IsPlanFile(event.Name) && !isEnvFile(event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() { rerun(name) })

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func isEnvFile(path string) bool {
	return slices.Contains(env.DotEnvFiles, filepath.Base(path))
}
