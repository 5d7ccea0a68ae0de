package terminal

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const rowSeparator = "---+---+---"

// Renderer draws games as text. Colors are dropped when the output profile is Ascii.
type Renderer struct {
	output *termenv.Output
}

func NewRenderer(output *termenv.Output) *Renderer {
	return &Renderer{output: output}
}

// Board draws the grid. Empty cells show the number that selects them.
func (that *Renderer) Board(game *entity.Game) string {
	winning := make(map[int]bool, entity.BoardSide)
	if game.WinLine != nil {
		for _, cell := range game.WinLine {
			winning[cell] = true
		}
	}

	var sb strings.Builder
	for row := range entity.BoardSide {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 0, entity.BoardSide)
		for col := range entity.BoardSide {
			cell := row*entity.BoardSide + col
			cells = append(cells, " "+that.cell(game.Board[cell], cell, winning[cell])+" ")
		}
		sb.WriteString(strings.Join(cells, "|") + "\n")
	}

	return sb.String()
}

func (that *Renderer) cell(mark entity.Mark, cell int, winning bool) string {
	if mark == entity.EmptyCell {
		return that.output.String(strconv.Itoa(cell + 1)).Faint().String()
	}

	style := that.output.String(string(mark)).Bold()
	switch {
	case winning:
		style = style.Foreground(termenv.ANSIGreen)
	case mark == entity.PlayerX:
		style = style.Foreground(termenv.ANSIRed)
	default:
		style = style.Foreground(termenv.ANSIBlue)
	}

	return style.String()
}

// Status describes whose turn it is or how the game ended.
func (that *Renderer) Status(game *entity.Game) string {
	switch {
	case game.Outcome == entity.OutcomeTie:
		return "It's a tie!"
	case game.IsOver():
		return "Player " + string(game.Winner()) + " wins!"
	case game.IsHumanTurn():
		return "Your move (" + string(game.HumanMark) + ")"
	default:
		return "Computer is thinking..."
	}
}
