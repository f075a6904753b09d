package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// renderBoard - draws the board; cells of a winning line are bracketed.
func renderBoard(w io.Writer, view *entity.GameView) {
	winning := make(map[int]bool, len(view.WinningLine))
	for _, idx := range view.WinningLine {
		winning[idx] = true
	}

	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, entity.BoardSize)
		for col := range cells {
			idx := row*entity.BoardSize + col
			cells[col] = renderCell(view.Board[idx], idx, winning[idx])
		}

		fmt.Fprintln(w, strings.Join(cells, "|"))

		if row < entity.BoardSize-1 {
			fmt.Fprintln(w, "---+---+---")
		}
	}
}

// renderCell - empty cells show their 1-based number so the player knows what to type.
func renderCell(cell entity.Cell, idx int, winning bool) string {
	switch {
	case winning:
		return "[" + string(cell) + "]"
	case cell == entity.EmptyCell:
		return fmt.Sprintf(" %d ", idx+1)
	default:
		return " " + string(cell) + " "
	}
}

func renderMoves(w io.Writer, view *entity.GameView) {
	for _, move := range view.Moves {
		marker := " "
		if move.Current {
			marker = ">"
		}

		fmt.Fprintf(w, "%s %d. %s\n", marker, move.Step, move.Label)
	}
}

func render(w io.Writer, view *entity.GameView) {
	renderBoard(w, view)
	fmt.Fprintln(w)
	fmt.Fprintln(w, view.Status)
	fmt.Fprintln(w)
	renderMoves(w, view)
	fmt.Fprintf(w, "(sort: %s)\n", view.SortLabel)
}
