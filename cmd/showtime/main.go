package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/license"
	"github.com/tartampluch/showtime/internal/logging"
	"github.com/tartampluch/showtime/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	rawKey := flag.String(config.FlagLicense, "", config.FlagDescLicense)
	flag.Parse()

	if *showVersion {
		logging.PrintVersion(config.AppName)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	if logCloser := logging.Setup(*debugMode, config.LogFileName); logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error(config.ErrAppFailed, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
		return config.ExitCodeError
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.StartupInfo(config.AppName)

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	// The key may also arrive as the first positional argument, which is how
	// a URL handler launches the app.
	key := *rawKey
	if key == "" {
		key = flag.Arg(0)
	}
	if err := run(ctx, env, license.KeyFromURL(key)); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// newGate wires the license gate described by env.
func newGate(env config.Env) (*license.Gate, error) {
	mode, err := license.ParseMode(env.LicenseMode)
	if err != nil {
		return nil, err
	}
	store, err := license.NewHTTPStore(env.LicenseURL, env.LicensePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLicenseUnavailable, err)
	}
	return &license.Gate{
		Store:  store,
		Access: license.NewKeyringAccess(),
		Mode:   mode,
	}, nil
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, env config.Env, key string) error {
	gate, err := newGate(env)
	if err != nil {
		return err
	}

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewShowtimeApp(a, ctx, gate, key)
	gui.RefreshInterval = env.RefreshInterval
	gui.Sequence = env.Sequence

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fyne.Do(a.Quit)
	}()

	// Start the Application (blocks until main window closes).
	gui.Run()

	return nil
}
