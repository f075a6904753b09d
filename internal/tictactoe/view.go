package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// View - renders the engine state at the cursor into a view model.
func (that *Engine) View(id string) *entity.GameView {
	current := that.history[that.cursor]

	view := &entity.GameView{
		ID:        id,
		Board:     current.Board,
		NextMover: that.NextMover(),
		Moves:     that.MoveDescriptions(),
		Cursor:    that.cursor,
		Ascending: that.ascending,
		SortLabel: sortLabel(that.ascending),
	}

	switch win := WinnerOf(current.Board); {
	case win != nil:
		view.Winner = win.Winner
		view.WinningLine = win.Line[:]
		view.Status = fmt.Sprintf("Winner: %s", win.Winner)
	case current.Board.IsFull():
		view.Draw = true
		view.Status = "Draw!"
	default:
		view.Status = fmt.Sprintf("Next player: %s", view.NextMover)
	}

	return view
}

// sortLabel - caption of the toggle, naming the order it switches to.
func sortLabel(ascending bool) string {
	if ascending {
		return "Descending"
	}

	return "Ascending"
}
