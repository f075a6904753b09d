package tictactoe

import "github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"

// WinCombos - every line of three on the board. The order decides which line is reported first.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinnerOf - returns the first completed line on the board, or nil if there is none.
func WinnerOf(board entity.Board) *entity.Win {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return &entity.Win{Winner: a, Line: combo}
		}
	}

	return nil
}

// IsDraw - the board is full and nobody has a line.
func IsDraw(board entity.Board) bool {
	return WinnerOf(board) == nil && board.IsFull()
}
