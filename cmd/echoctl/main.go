package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"local-echo/internal"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the calling shell.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitUsage   = 64
)

var errUsage = stderrors.New("invalid usage")

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "echoctl: %v\n", err)
	}
	os.Exit(code)
}

// run wires the echo core on top of the configured badger directory,
// executes one command and shuts everything down before returning, so
// deferred cleanups always run.
func run(args []string, out io.Writer) (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	if len(args) == 0 {
		printUsage(out)
		return exitUsage, fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(out)
		return exitUsage, fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Debug("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Echo core & background workers
	core, err := newStack(logger, db, config, out)
	if err != nil {
		return exitRuntime, err
	}
	defer core.close()
	core.start(ctx)

	// 4. Command
	err = cmd.run(ctx, core, args[1:])
	core.stop()
	switch {
	case err == nil:
		return exitOK, nil
	case stderrors.Is(err, errUsage):
		fmt.Fprintf(out, "usage: echoctl %s %s\n", cmd.name, cmd.usage)
		return exitUsage, err
	default:
		return exitRuntime, err
	}
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}
