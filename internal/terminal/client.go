package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	errUnknownCommand = errors.New("enter 1-9, \"row col\", r to restart or q to quit")
	errGameOver       = errors.New("game over, press r to restart or q to quit")
)

type commandKind int

const (
	commandMove commandKind = iota
	commandRestart
	commandQuit
)

type command struct {
	kind commandKind
	cell int
}

// Client plays one local game against the engine over line-based input.
type Client struct {
	logger   *slog.Logger
	input    *bufio.Scanner
	output   *termenv.Output
	renderer *Renderer
	game     *entity.Game
}

func New(logger *slog.Logger, input io.Reader, output *termenv.Output) *Client {
	return &Client{
		logger:   logger.With("component", "terminal"),
		input:    bufio.NewScanner(input),
		output:   output,
		renderer: NewRenderer(output),
		game:     entity.NewGame("local"),
	}
}

// Run reads commands until q, end of input or ctx cancellation.
func (that *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go that.readLines(ctx, lines, readErr)

	that.show()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}

			if quit := that.handle(line); quit {
				return nil
			}
		}
	}
}

// readLines feeds input lines to lines until input ends or ctx is done.
// A blocked read outlives cancellation; the line it returns is dropped.
func (that *Client) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	defer close(lines)

	for that.input.Scan() {
		select {
		case lines <- that.input.Text():
		case <-ctx.Done():
			readErr <- nil
			return
		}
	}

	if err := that.input.Err(); err != nil {
		readErr <- fmt.Errorf("failed to read input: %w", err)
		return
	}

	readErr <- nil
}

// handle applies one input line and reports whether the client should stop.
func (that *Client) handle(line string) bool {
	log := that.logger.With("method", "handle")

	cmd, err := parseCommand(line, that.game.IsOver())
	if err != nil {
		that.println(err.Error())
		return false
	}

	switch cmd.kind {
	case commandQuit:
		that.println("Bye!")
		return true
	case commandRestart:
		tictactoe.Restart(that.game)
	case commandMove:
		turn, err := tictactoe.MakeTurn(that.game, cmd.cell)
		if err != nil {
			log.Debug("turn rejected", "cell", cmd.cell, "error", err)
			that.println(userMessage(err))
			return false
		}

		if turn.ComputerCell != nil {
			that.println(fmt.Sprintf("Computer plays %d", *turn.ComputerCell+1))
		}
	}

	that.show()

	return false
}

func (that *Client) show() {
	that.println("")
	that.println(that.renderer.Board(that.game))
	that.println(that.renderer.Status(that.game))

	if that.game.IsOver() {
		that.println("Press r to restart or q to quit")
	}
}

func (that *Client) println(line string) {
	fmt.Fprintln(that.output, line)
}

// parseCommand accepts a cell number 1-9, a 1-based "row col" pair, r or q.
func parseCommand(line string, over bool) (command, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 1 && fields[0] == "q":
		return command{kind: commandQuit}, nil
	case len(fields) == 1 && fields[0] == "r":
		return command{kind: commandRestart}, nil
	case over:
		return command{}, errGameOver
	case len(fields) == 1:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return command{}, errUnknownCommand
		}
		return command{kind: commandMove, cell: n - 1}, nil
	case len(fields) == 2:
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr != nil || colErr != nil {
			return command{}, errUnknownCommand
		}

		cell, err := entity.CellIndex(row-1, col-1)
		if err != nil {
			return command{}, fmt.Errorf("no such cell: row %d col %d", row, col)
		}
		return command{kind: commandMove, cell: cell}, nil
	default:
		return command{}, errUnknownCommand
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidCell):
		return "No such cell, pick 1-9"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is taken"
	case errors.Is(err, apperror.ErrGameFinished):
		return errGameOver.Error()
	default:
		return err.Error()
	}
}
