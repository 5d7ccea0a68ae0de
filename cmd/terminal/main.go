package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/terminal"
)

// main - plays tic-tac-toe against the computer in the terminal.
func main() {
	debug := flag.Bool("debug", false, "log rejected moves to stderr")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := terminal.New(logger, os.Stdin, termenv.NewOutput(os.Stdout))
	if err := client.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "terminal client failed: %v\n", err)
		os.Exit(1)
	}
}
