package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func play(engine *Engine, cells ...int) {
	for _, cell := range cells {
		engine.ApplyMove(cell)
	}
}

func TestNewEngine(t *testing.T) {
	// When: starting a game
	engine := NewEngine()

	// Then: there is exactly one empty snapshot, X moves first, order is ascending
	require.Equal(t, 1, engine.Len())
	assert.Equal(t, entity.Snapshot{}, engine.CurrentSnapshot())
	assert.Equal(t, 0, engine.Cursor())
	assert.Equal(t, entity.PlayerX, engine.NextMover())
	assert.True(t, engine.Ascending())
}

func TestEngine_ApplyMove(t *testing.T) {
	t.Run("Valid move appends a snapshot", func(t *testing.T) {
		// Given: a new game
		engine := NewEngine()

		// When: X plays the center
		engine.ApplyMove(4)

		// Then: the new snapshot has X at 4 and O moves next
		require.Equal(t, 2, engine.Len())
		current := engine.CurrentSnapshot()
		assert.Equal(t, entity.Board{4: entity.PlayerX}, current.Board)
		require.NotNil(t, current.Origin)
		assert.Equal(t, 4, *current.Origin)
		assert.Equal(t, 1, engine.Cursor())
		assert.Equal(t, entity.PlayerO, engine.NextMover())
	})

	t.Run("Occupied cell is a no-op", func(t *testing.T) {
		// Given: a game where X took cell 0
		engine := NewEngine()
		engine.ApplyMove(0)
		before := engine.State("g")

		// When: O tries the same cell
		engine.ApplyMove(0)

		// Then: nothing changes
		assert.Equal(t, before, engine.State("g"))
	})

	t.Run("Move after a win is a no-op", func(t *testing.T) {
		// Given: X has won on the top row
		engine := NewEngine()
		play(engine, 0, 3, 1, 4, 2)
		require.NotNil(t, WinnerOf(engine.CurrentSnapshot().Board))
		before := engine.State("g")

		// When: O tries to play on
		engine.ApplyMove(8)

		// Then: nothing changes
		assert.Equal(t, before, engine.State("g"))
	})

	t.Run("Consecutive snapshots differ in exactly the origin cell", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 4, 0, 8, 2, 1, 7, 6)

		history := engine.History()
		assert.Equal(t, entity.Board{}, history[0].Board)
		assert.Nil(t, history[0].Origin)

		for i := 1; i < len(history); i++ {
			origin := *history[i].Origin
			for cell := range history[i].Board {
				if cell == origin {
					assert.Equal(t, entity.EmptyCell, history[i-1].Board[cell])
					assert.NotEqual(t, entity.EmptyCell, history[i].Board[cell])
					continue
				}
				assert.Equal(t, history[i-1].Board[cell], history[i].Board[cell])
			}
		}
	})

	t.Run("X wins on the diagonal", func(t *testing.T) {
		// Given: X 0, O 1, X 4, O 2, X 8
		engine := NewEngine()
		play(engine, 0, 1, 4, 2, 8)

		// When: checking the current snapshot
		win := WinnerOf(engine.CurrentSnapshot().Board)

		// Then: X owns the main diagonal
		require.NotNil(t, win)
		assert.Equal(t, entity.PlayerX, win.Winner)
		assert.Equal(t, [3]int{0, 4, 8}, win.Line)
	})

	t.Run("Nine moves without a line end in a draw", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		board := engine.CurrentSnapshot().Board
		assert.Equal(t, 10, engine.Len())
		assert.True(t, IsDraw(board))
		assert.Nil(t, WinnerOf(board))
	})
}

func TestEngine_JumpTo(t *testing.T) {
	t.Run("Jump keeps the history and recomputes the mover", func(t *testing.T) {
		// Given: three moves
		engine := NewEngine()
		play(engine, 0, 4, 8)
		history := engine.History()

		for step := range history {
			// When: jumping to each step
			engine.JumpTo(step)

			// Then: history is unchanged and parity decides the mover
			assert.Equal(t, history, engine.History())
			assert.Equal(t, history[step], engine.CurrentSnapshot())
			if step%2 == 0 {
				assert.Equal(t, entity.PlayerX, engine.NextMover())
			} else {
				assert.Equal(t, entity.PlayerO, engine.NextMover())
			}
		}
	})

	t.Run("Move after a jump discards the future", func(t *testing.T) {
		// Given: three moves
		engine := NewEngine()
		play(engine, 0, 4, 8)
		before := engine.History()

		// When: jumping back to step 1 and playing cell 5
		engine.JumpTo(1)
		engine.ApplyMove(5)

		// Then: history is start, first move, new move
		after := engine.History()
		require.Len(t, after, 3)
		assert.Equal(t, before[:2], after[:2])
		assert.Equal(t, 5, *after[2].Origin)
		assert.Equal(t, entity.PlayerO, after[2].Board[5])
		assert.Equal(t, entity.EmptyCell, after[2].Board[4])
		assert.Equal(t, 2, engine.Cursor())
	})

	t.Run("Branching keeps previously exported snapshots intact", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 4, 8)
		old := engine.History()

		engine.JumpTo(0)
		engine.ApplyMove(2)

		assert.Equal(t, entity.PlayerO, old[2].Board[4])
		assert.Equal(t, 8, *old[3].Origin)
		assert.Equal(t, 2, engine.Len())
	})

	t.Run("Jump back from a won game opens a new branch", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 3, 1, 4, 2)

		engine.JumpTo(4)
		engine.ApplyMove(5)

		assert.Equal(t, 6, engine.Len())
		assert.Equal(t, 5, *engine.History()[5].Origin)
		assert.Equal(t, 5, engine.Cursor())
	})
}

func TestEngine_MoveDescriptions(t *testing.T) {
	t.Run("Ascending labels", func(t *testing.T) {
		// Given: moves at 0, 2, 4
		engine := NewEngine()
		play(engine, 0, 2, 4)

		// When: describing the moves
		moves := engine.MoveDescriptions()

		// Then: labels use 1-based row and column
		require.Len(t, moves, 4)
		assert.Equal(t, entity.MoveDescription{Step: 0, Label: "Go to game start"}, moves[0])
		assert.Equal(t, "Go to move #1, Location: 1, 1", moves[1].Label)
		assert.Equal(t, "Go to move #2, Location: 1, 3", moves[2].Label)
		assert.Equal(t, "Go to move #3, Location: 2, 2", moves[3].Label)
		assert.True(t, moves[3].Current)
	})

	t.Run("Descending order after toggle", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 2, 4)

		engine.ToggleAscending()
		moves := engine.MoveDescriptions()

		require.Len(t, moves, 4)
		assert.False(t, engine.Ascending())
		assert.Equal(t, 3, moves[0].Step)
		assert.Equal(t, 0, moves[3].Step)
		assert.Equal(t, "Go to game start", moves[3].Label)
	})

	t.Run("Toggle does not touch history or cursor", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 2)
		engine.JumpTo(1)
		history := engine.History()

		engine.ToggleAscending()
		engine.ToggleAscending()

		assert.True(t, engine.Ascending())
		assert.Equal(t, history, engine.History())
		assert.Equal(t, 1, engine.Cursor())
	})

	t.Run("Current marker follows the cursor", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 2, 4)
		engine.JumpTo(1)

		for _, move := range engine.MoveDescriptions() {
			assert.Equal(t, move.Step == 1, move.Current)
		}
	})
}

func TestEngine_StateRoundTrip(t *testing.T) {
	t.Run("Restore rebuilds the same engine", func(t *testing.T) {
		// Given: a game with a jump and a toggle
		engine := NewEngine()
		play(engine, 4, 0, 8)
		engine.JumpTo(2)
		engine.ToggleAscending()

		// When: exporting and restoring
		restored := Restore(engine.State("abc"))

		// Then: both engines agree
		assert.Equal(t, engine.State("abc"), restored.State("abc"))
		assert.Equal(t, engine.MoveDescriptions(), restored.MoveDescriptions())
		assert.Equal(t, engine.NextMover(), restored.NextMover())
	})

	t.Run("Empty state starts a new game", func(t *testing.T) {
		restored := Restore(entity.GameState{ID: "abc"})

		assert.Equal(t, NewEngine().State("abc"), restored.State("abc"))
	})

	t.Run("Exported state does not alias the engine", func(t *testing.T) {
		engine := NewEngine()
		engine.ApplyMove(3)

		state := engine.State("abc")
		state.History[1].Board[3] = entity.PlayerO
		*state.History[1].Origin = 6

		current := engine.CurrentSnapshot()
		assert.Equal(t, entity.PlayerX, current.Board[3])
		assert.Equal(t, 3, *current.Origin)
	})
}

func TestEngine_View(t *testing.T) {
	t.Run("Ongoing game", func(t *testing.T) {
		engine := NewEngine()
		engine.ApplyMove(4)

		view := engine.View("g1")

		assert.Equal(t, "g1", view.ID)
		assert.Equal(t, "Next player: O", view.Status)
		assert.Equal(t, entity.PlayerO, view.NextMover)
		assert.Empty(t, view.WinningLine)
		assert.False(t, view.IsFinished())
		assert.Equal(t, "Descending", view.SortLabel)
	})

	t.Run("Won game", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 1, 4, 2, 8)

		view := engine.View("g1")

		assert.Equal(t, "Winner: X", view.Status)
		assert.Equal(t, entity.PlayerX, view.Winner)
		assert.Equal(t, []int{0, 4, 8}, view.WinningLine)
		assert.True(t, view.IsFinished())
	})

	t.Run("Drawn game", func(t *testing.T) {
		engine := NewEngine()
		play(engine, 0, 1, 2, 4, 3, 5, 7, 6, 8)
		engine.ToggleAscending()

		view := engine.View("g1")

		assert.Equal(t, "Draw!", view.Status)
		assert.True(t, view.Draw)
		assert.Equal(t, "Ascending", view.SortLabel)
	})
}
