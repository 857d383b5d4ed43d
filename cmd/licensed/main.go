// Command licensed serves license keys from a local SQLite database over the
// REST layout the Showtime application consumes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/license"
	"github.com/tartampluch/showtime/internal/logging"
	"github.com/tartampluch/showtime/internal/server"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	addr := flag.String(config.FlagAddr, env.LicensedAddr, config.FlagDescAddr)
	dbPath := flag.String(config.FlagDB, env.LicensedDB, config.FlagDescDB)
	mint := flag.Int(config.FlagMint, 0, config.FlagDescMint)
	flag.Parse()

	if *showVersion {
		logging.PrintVersion(config.BackendName)
		return config.ExitCodeSuccess
	}

	if logCloser := logging.Setup(*debugMode, config.BackendLogFile); logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.StartupInfo(config.BackendName)

	if err := run(ctx, os.Stdout, *dbPath, *addr, env.LicensePath, *mint); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run opens the store, then either mints keys to out or serves until ctx ends.
func run(ctx context.Context, out io.Writer, dbPath, addr, path string, mint int) error {
	store, err := license.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if mint > 0 {
		keys, err := store.Issue(ctx, mint)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrMintFailed, err)
		}
		for _, k := range keys {
			fmt.Fprintln(out, k)
		}
		slog.Info(config.MsgKeysMinted,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyCount, len(keys),
		)
		return nil
	}

	return server.NewLicenseServer(store, addr, path).Start(ctx)
}
