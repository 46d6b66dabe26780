package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/core/config"
	"github.com/abdul-hamid-achik/browsertest/packages/observer"
	"github.com/abdul-hamid-achik/browsertest/packages/output"
	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"github.com/abdul-hamid-achik/browsertest/packages/server"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <url|directory>",
	Short: "Run browser tests and capture requested screenshots",
	Long: `Open a test page in a browser, stream the #output transcript to the
terminal and save every screenshot the tests request.

When a directory is given it is served together with the harness page.

Examples:
  browsertest run http://localhost:8000/
  browsertest run ./web --wasm tests.wasm
  browsertest run ./web --wasm tests.wasm --browser firefox --screenshot-root ./out
  browsertest run ./web --wasm tests.wasm --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond

	// transcriptPollInterval is how often the page transcript is read
	transcriptPollInterval = 100 * time.Millisecond
)

// errTimeout is returned when the page never prints the done marker
var errTimeout = errors.New("timed out waiting for the test result")

var (
	browserFlag        string
	headlessFlag       bool
	timeoutFlag        string
	screenshotRootFlag string
	doneMarkerFlag     string
	manifestFlag       string
	wasmFlag           string
	portFlag           int
	fullPageFlag       bool
	verboseFlag        int
	noColorFlag        bool
	watchFlag          bool
	configFlag         string
)

func init() {
	runCmd.Flags().StringVarP(&browserFlag, "browser", "b", getEnvString("BROWSERTEST_BROWSER", "chromium"), "Browser: chromium, firefox, webkit (env: BROWSERTEST_BROWSER)")
	runCmd.Flags().BoolVar(&headlessFlag, "headless", getEnvBool("BROWSERTEST_HEADLESS", true), "Run the browser headless (env: BROWSERTEST_HEADLESS)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("BROWSERTEST_TIMEOUT", "60s"), "Give up if no test result appears within this time (env: BROWSERTEST_TIMEOUT)")
	runCmd.Flags().StringVar(&screenshotRootFlag, "screenshot-root", getEnvString("BROWSERTEST_SCREENSHOT_ROOT", "."), "Directory screenshot paths are relative to (env: BROWSERTEST_SCREENSHOT_ROOT)")
	runCmd.Flags().StringVar(&doneMarkerFlag, "done-marker", getEnvString("BROWSERTEST_DONE_MARKER", "test result: "), "Transcript text that marks the end of the run (env: BROWSERTEST_DONE_MARKER)")
	runCmd.Flags().StringVar(&manifestFlag, "manifest", getEnvString("BROWSERTEST_MANIFEST", ""), "Write a JSON manifest of captured screenshots (env: BROWSERTEST_MANIFEST)")
	runCmd.Flags().StringVar(&wasmFlag, "wasm", getEnvString("BROWSERTEST_WASM", ""), "WebAssembly module to load when serving a directory (env: BROWSERTEST_WASM)")
	runCmd.Flags().IntVarP(&portFlag, "port", "p", getEnvInt("BROWSERTEST_PORT", 8000), "Port for serving a directory, 0 for any (env: BROWSERTEST_PORT)")
	runCmd.Flags().BoolVar(&fullPageFlag, "full-page", getEnvBool("BROWSERTEST_FULL_PAGE", false), "Capture the full scrollable page (env: BROWSERTEST_FULL_PAGE)")
	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("BROWSERTEST_NO_COLOR", false), "Disable colored output (env: BROWSERTEST_NO_COLOR)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the served directory and re-run on changes")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("BROWSERTEST_CONFIG", ""), "Path to config file (env: BROWSERTEST_CONFIG)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// flagConfig collects the flags set on the command line or through their
// environment variables, so they override the config file.
func flagConfig(cmd *cobra.Command) (*config.Config, error) {
	set := func(name, envKey string) bool {
		return cmd.Flags().Changed(name) || os.Getenv(envKey) != ""
	}

	cfg := &config.Config{}
	if set("browser", "BROWSERTEST_BROWSER") {
		cfg.Browser = browserFlag
	}
	if set("headless", "BROWSERTEST_HEADLESS") {
		cfg.Headless = config.BoolPtr(headlessFlag)
	}
	if set("timeout", "BROWSERTEST_TIMEOUT") {
		timeout, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)
		}
		cfg.Timeout = int(timeout.Milliseconds())
	}
	if set("screenshot-root", "BROWSERTEST_SCREENSHOT_ROOT") {
		cfg.ScreenshotRoot = screenshotRootFlag
	}
	if set("done-marker", "BROWSERTEST_DONE_MARKER") {
		cfg.DoneMarker = doneMarkerFlag
	}
	if set("manifest", "BROWSERTEST_MANIFEST") {
		cfg.Manifest = manifestFlag
	}
	if set("port", "BROWSERTEST_PORT") {
		cfg.Port = config.IntPtr(portFlag)
	}
	if set("full-page", "BROWSERTEST_FULL_PAGE") {
		cfg.FullPage = config.BoolPtr(fullPageFlag)
	}
	if verboseFlag > 0 {
		cfg.Verbose = config.BoolPtr(true)
	}
	if set("no-color", "BROWSERTEST_NO_COLOR") {
		cfg.NoColor = config.BoolPtr(noColorFlag)
	}
	return cfg, nil
}

// writerLogger prints observer diagnostics, one message per line
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func runCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "cannot load config: %v\n", err)
		os.Exit(ExitConfigError)
	}
	overrides, err := flagConfig(cmd)
	if err != nil {
		return err
	}
	cfg := fileConfig.Merge(overrides)

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(cfg.GetNoColor()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	target := args[0]
	var servedDir string
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		servedDir = target
	}
	if watchFlag && servedDir == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "--watch requires a directory argument")
		os.Exit(ExitUsageError)
	}

	if servedDir != "" {
		srv := server.NewServer(servedDir,
			server.WithPort(cfg.GetPort()),
			server.WithWasm(wasmFlag),
			server.WithVerbose(verboseFlag > 1),
		)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		target = srv.URL()
		if cfg.GetVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s at %s\n", servedDir, target)
		}
	}

	failed, err := runOnce(ctx, cmd, cfg, target, formatter)
	if err != nil {
		formatter.Writeln(formatter.StringifyError(err))
	}
	if !watchFlag {
		if code := exitCode(failed, err); code != ExitSuccess {
			os.Exit(code)
		}
		return nil
	}

	runner := &serialRunner{run: func() {
		formatter.Writeln("")
		if _, err := runOnce(ctx, cmd, cfg, target, formatter); err != nil {
			formatter.Writeln(formatter.StringifyError(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	}}
	return watch(ctx, cmd, servedDir, runner.trigger)
}

// exitCode maps the outcome of a single run to the process exit code.
func exitCode(failed bool, err error) int {
	switch {
	case errors.Is(err, errTimeout):
		return ExitTimeout
	case err != nil:
		return ExitBrowserError
	case failed:
		return ExitTestFailure
	}
	return ExitSuccess
}

// serialRunner runs at most one rerun at a time. Triggers that arrive while
// a run is in progress collapse into a single follow-up run.
type serialRunner struct {
	run func()

	mu      sync.Mutex
	running bool
	pending bool
}

func (r *serialRunner) trigger() {
	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	for {
		r.run()

		r.mu.Lock()
		if !r.pending {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.pending = false
		r.mu.Unlock()
	}
}

// runOnce drives one page load: it streams the transcript until the done
// marker shows up and answers screenshot requests meanwhile.
func runOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, url string, formatter output.Formatter) (bool, error) {
	session, err := observer.Launch(cfg.Browser, cfg.GetHeadless())
	if err != nil {
		return false, err
	}
	defer session.Close()

	if err := session.Navigate(url); err != nil {
		return false, err
	}

	doc := observer.PlaywrightDocument(session.Page)
	opts := []observer.Option{
		observer.WithRoot(cfg.ScreenshotRoot),
		observer.WithInterval(time.Duration(cfg.ObserveInterval) * time.Millisecond),
		observer.WithOnCapture(func(c *observer.Capture) {
			if cfg.GetVerbose() {
				fmt.Fprintf(cmd.ErrOrStderr(), "screenshot saved: %s\n", c.File)
			}
		}),
	}
	if cfg.GetVerbose() {
		opts = append(opts, observer.WithLogger(writerLogger{w: cmd.ErrOrStderr()}))
	}
	obs := observer.New(doc, observer.PlaywrightCapturer(session.Page, cfg.GetFullPage()), opts...)

	obsCtx, stopObserver := context.WithCancel(ctx)
	obsDone := make(chan struct{})
	go func() {
		defer close(obsDone)
		_ = obs.Run(obsCtx)
	}()

	transcript, err := followTranscript(ctx, doc, cfg, formatter)
	stopObserver()
	<-obsDone

	printCaptureSummary(cmd.OutOrStdout(), obs, cfg.GetNoColor())

	if cfg.Manifest != "" {
		if err := observer.WriteManifest(cfg.Manifest, obs.Manifest()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write manifest: %v\n", err)
		}
	}

	if err != nil {
		return false, err
	}
	return transcriptFailed(transcript), nil
}

// followTranscript echoes the page's #output element until the done marker
// appears, returning the full transcript.
func followTranscript(ctx context.Context, doc page.Document, cfg *config.Config, formatter output.Formatter) (string, error) {
	deadline := time.NewTimer(time.Duration(cfg.Timeout) * time.Millisecond)
	defer deadline.Stop()
	ticker := time.NewTicker(transcriptPollInterval)
	defer ticker.Stop()

	tail := &transcriptTail{}
	for {
		select {
		case <-ctx.Done():
			return tail.text, ctx.Err()
		case <-deadline.C:
			tail.flush(formatter)
			return tail.text, errTimeout
		case <-ticker.C:
			el, ok := doc.ElementByID(page.OutputID)
			if !ok {
				continue
			}
			tail.feed(el.TextContent(), formatter)
			if tail.done(cfg.DoneMarker) {
				return tail.text, nil
			}
		}
	}
}

func printCaptureSummary(w io.Writer, obs *observer.Observer, noColor bool) {
	summary := obs.Stats().Summary()
	errs := obs.Errors()
	if summary.Count == 0 && len(errs) == 0 {
		return
	}

	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)
	if noColor {
		red.DisableColor()
		cyan.DisableColor()
	}

	fmt.Fprintf(w, "\nScreenshots: %d saved", summary.Count)
	if summary.Count > 0 {
		fmt.Fprintf(w, " %s", cyan.Sprintf("(p50 %v, p95 %v, max %v)",
			summary.P50.Round(time.Millisecond),
			summary.P95.Round(time.Millisecond),
			summary.Max.Round(time.Millisecond)))
	}
	fmt.Fprintln(w)
	for _, err := range errs {
		fmt.Fprintf(w, "  %s %v\n", red.Sprint("x"), err)
	}
}

func watch(ctx context.Context, cmd *cobra.Command, dir string, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isPageAsset(event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running tests...\n", event.Name)
				rerun()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func isPageAsset(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wasm", ".js", ".html", ".css":
		return true
	}
	return false
}
