package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"printquote/internal/config"
	"printquote/internal/menu"
	"printquote/internal/quote"
	"printquote/pkg/logger"
)

// ENTRY POINT

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit status. Every failure reaches stderr as a
// single "Error: ..." line; the logger only repeats it at debug level.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.WithArgs(args)

	// Logger
	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer zapLogger.Sync()

	// Shutdown signals. While the menu holds the terminal in raw mode Ctrl-C
	// arrives as a key press instead.
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	app := quote.New(cfg, zapLogger, menu.StdioOpener, stdin, stdout)
	if err := app.Run(ctx); err != nil {
		zapLogger.Debug("Pricing run failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	zapLogger.Debug("Pricing run finished")
	return 0
}
