package entity

import "fmt"

// Cell is the content of one board square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

// BoardSize is the side length of the board. Only 3x3 is supported.
const BoardSize = 3

// Board is a row-major 3x3 board.
type Board [BoardSize * BoardSize]Cell

// IsFull reports whether no empty cell is left.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Swap returns the board with every X and O exchanged.
func (that Board) Swap() Board {
	for i, cell := range that {
		switch cell {
		case PlayerX:
			that[i] = PlayerO
		case PlayerO:
			that[i] = PlayerX
		}
	}

	return that
}

// Snapshot is one board configuration in the history of a game.
// Origin is the cell whose move produced it, nil for the game start.
type Snapshot struct {
	Board  Board `json:"board"`
	Origin *int  `json:"origin"`
}

// Clone returns a copy that shares no memory with the receiver.
func (that Snapshot) Clone() Snapshot {
	if that.Origin == nil {
		return Snapshot{Board: that.Board}
	}

	origin := *that.Origin

	return Snapshot{Board: that.Board, Origin: &origin}
}

// Location - returns 1-based row and column of the move that produced the snapshot.
func (that Snapshot) Location() (int, int, bool) {
	if that.Origin == nil {
		return 0, 0, false
	}

	return *that.Origin/BoardSize + 1, *that.Origin%BoardSize + 1, true
}

// Win is a completed line and the player owning it.
type Win struct {
	Winner Cell   `json:"winner"`
	Line   [3]int `json:"line"`
}

// GameState is the storable form of a game: its history, cursor and sort order.
type GameState struct {
	ID        string     `json:"id"`
	History   []Snapshot `json:"history"`
	Cursor    int        `json:"cursor"`
	Ascending bool       `json:"ascending"`
}

// MoveDescription is one entry of the move list shown to the player.
type MoveDescription struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// DescribeStep - label of the move-list entry that jumps to step.
func DescribeStep(step int, snapshot Snapshot) string {
	row, col, ok := snapshot.Location()
	if step == 0 || !ok {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d, Location: %d, %d", step, row, col)
}
