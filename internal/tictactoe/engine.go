package tictactoe

import "github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"

// Engine owns the history of one game and the cursor into it.
// It is not safe for concurrent use; every command runs to completion before the next one.
type Engine struct {
	history   []entity.Snapshot
	cursor    int
	ascending bool
}

// NewEngine - a game at its start with X to move.
func NewEngine() *Engine {
	return &Engine{
		history:   []entity.Snapshot{{}},
		ascending: true,
	}
}

// Restore - rebuilds an engine from a stored state.
// A state without history yields a fresh game.
func Restore(state entity.GameState) *Engine {
	if len(state.History) == 0 {
		return NewEngine()
	}

	history := make([]entity.Snapshot, len(state.History))
	for i, snapshot := range state.History {
		history[i] = snapshot.Clone()
	}

	cursor := state.Cursor
	if cursor < 0 || cursor >= len(history) {
		cursor = len(history) - 1
	}

	return &Engine{
		history:   history,
		cursor:    cursor,
		ascending: state.Ascending,
	}
}

// State - exports the engine state by value.
func (that *Engine) State(id string) entity.GameState {
	return entity.GameState{
		ID:        id,
		History:   that.History(),
		Cursor:    that.cursor,
		Ascending: that.ascending,
	}
}

// ApplyMove - places the next mover's mark at index.
// Nothing happens if the game shown at the cursor is decided or the cell is taken.
// Any snapshots after the cursor are discarded.
func (that *Engine) ApplyMove(index int) {
	current := that.history[that.cursor]
	if WinnerOf(current.Board) != nil || current.Board[index] != entity.EmptyCell {
		return
	}

	board := current.Board
	board[index] = that.NextMover()

	origin := index
	that.history = append(that.history[:that.cursor+1:that.cursor+1], entity.Snapshot{
		Board:  board,
		Origin: &origin,
	})
	that.cursor = len(that.history) - 1
}

// JumpTo - moves the cursor to step without touching the history.
func (that *Engine) JumpTo(step int) {
	that.cursor = step
}

// ToggleAscending - flips the order of MoveDescriptions only.
func (that *Engine) ToggleAscending() {
	that.ascending = !that.ascending
}

// CurrentSnapshot - a copy of the snapshot at the cursor.
func (that *Engine) CurrentSnapshot() entity.Snapshot {
	return that.history[that.cursor].Clone()
}

// NextMover - X moves on even steps, O on odd ones.
func (that *Engine) NextMover() entity.Cell {
	if that.cursor%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}

func (that *Engine) Cursor() int {
	return that.cursor
}

func (that *Engine) Ascending() bool {
	return that.ascending
}

// Len - number of snapshots, game start included.
func (that *Engine) Len() int {
	return len(that.history)
}

func (that *Engine) History() []entity.Snapshot {
	history := make([]entity.Snapshot, len(that.history))
	for i, snapshot := range that.history {
		history[i] = snapshot.Clone()
	}

	return history
}

// MoveDescriptions - labels for the move list in display order.
func (that *Engine) MoveDescriptions() []entity.MoveDescription {
	moves := make([]entity.MoveDescription, len(that.history))
	for step, snapshot := range that.history {
		idx := step
		if !that.ascending {
			idx = len(that.history) - 1 - step
		}

		moves[idx] = entity.MoveDescription{
			Step:    step,
			Label:   entity.DescribeStep(step, snapshot),
			Current: step == that.cursor,
		}
	}

	return moves
}
