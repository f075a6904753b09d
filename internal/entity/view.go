package entity

// GameView is everything a view layer needs to render one game.
type GameView struct {
	ID          string            `json:"id"`
	Board       Board             `json:"board"`
	Winner      Cell              `json:"winner,omitempty"`
	WinningLine []int             `json:"winning_line,omitempty"`
	Draw        bool              `json:"draw"`
	NextMover   Cell              `json:"next_mover"`
	Status      string            `json:"status"`
	Moves       []MoveDescription `json:"moves"`
	Cursor      int               `json:"cursor"`
	Ascending   bool              `json:"ascending"`
	SortLabel   string            `json:"sort_label"`
}

// IsFinished - the game shown has a winner or a full board.
func (that *GameView) IsFinished() bool {
	return that.Winner != EmptyCell || that.Draw
}
