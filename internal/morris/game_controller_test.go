package morris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morrisworks/morris-backend/internal/entity"
)

// placeAllPieces plays out six placements with no winning line, leaving both
// players with 3 placed pieces and X to move:
//
//	X X O
//	X O .
//	. O .
func placeAllPieces(t *testing.T, session *entity.Session) {
	t.Helper()

	moves := [][2]int{
		{0, 0}, // X
		{1, 1}, // O
		{0, 1}, // X
		{0, 2}, // O
		{1, 0}, // X
		{2, 1}, // O
	}

	for _, move := range moves {
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, move[0], move[1]))
	}

	require.Equal(t, 3, session.Placed(entity.PlayerX))
	require.Equal(t, 3, session.Placed(entity.PlayerO))
	require.False(t, session.HasWinner())
	require.Equal(t, entity.PlayerX, session.Turn)
}

func boardPieceCount(session *entity.Session) int {
	count := 0
	for _, cell := range session.Board {
		if cell != entity.EmptyCell {
			count++
		}
	}
	return count
}

func TestHandleCellSelected_Placement(t *testing.T) {
	t.Run("Placement sets the mark and increments only the active player's count", func(t *testing.T) {
		// Given: a fresh session with X to move
		session := entity.NewSession("123")

		// When: X places on (1, 1)
		outcome := HandleCellSelected(session, 1, 1)

		// Then: the cell holds X, X's count grew by one, O's did not, turn passed
		require.Equal(t, OutcomePlaced, outcome)
		assert.Equal(t, entity.PlayerX, session.Board[entity.CellIndex(1, 1)])
		assert.Equal(t, 1, session.Placed(entity.PlayerX))
		assert.Equal(t, 0, session.Placed(entity.PlayerO))
		assert.Equal(t, entity.PlayerO, session.Turn)
	})

	t.Run("Placement on an occupied cell is a silent no-op", func(t *testing.T) {
		// Given: X already placed on (0, 0)
		session := entity.NewSession("123")
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, 0, 0))

		snapshot := *session

		// When: O clicks the same cell
		outcome := HandleCellSelected(session, 0, 0)

		// Then: nothing changed, including the turn
		require.Equal(t, OutcomeIgnored, outcome)
		assert.Equal(t, snapshot, *session)
	})

	t.Run("Placement handler re-validates the placement budget", func(t *testing.T) {
		// Given: a session whose active player already placed 3 pieces
		session := entity.NewSession("123")
		session.PlacedX = entity.PiecesPerPlayer

		// When: the placement handler is invoked directly on an empty cell
		outcome := handlePlacement(session, entity.CellIndex(2, 2))

		// Then: the placement is refused and the board stays empty
		require.Equal(t, OutcomeIgnored, outcome)
		assert.Equal(t, entity.EmptyCell, session.Board[entity.CellIndex(2, 2)])
		assert.Equal(t, entity.PiecesPerPlayer, session.Placed(entity.PlayerX))
	})
}

func TestHandleCellSelected_Selection(t *testing.T) {
	t.Run("Clicking an own piece after all placements selects it", func(t *testing.T) {
		// Given: both players placed all pieces, X to move
		session := entity.NewSession("123")
		placeAllPieces(t, session)

		// When: X clicks one of its own pieces
		outcome := HandleCellSelected(session, 0, 0)

		// Then: the piece is selected, no new placement happened
		require.Equal(t, OutcomeSelected, outcome)
		assert.Equal(t, entity.CellIndex(0, 0), session.Selected)
		assert.Equal(t, 3, session.Placed(entity.PlayerX))
		assert.Equal(t, 6, boardPieceCount(session))
	})

	t.Run("Selecting an opponent piece or an empty cell is a no-op", func(t *testing.T) {
		// Given: both players placed all pieces, X to move
		session := entity.NewSession("123")
		placeAllPieces(t, session)

		// When: X clicks O's piece on (1, 1)
		outcome := HandleCellSelected(session, 1, 1)

		// Then: selection unchanged
		require.Equal(t, OutcomeIgnored, outcome)
		assert.False(t, session.HasSelection())

		// When: X clicks the empty cell (2, 2)
		outcome = HandleCellSelected(session, 2, 2)

		// Then: still nothing selected
		require.Equal(t, OutcomeIgnored, outcome)
		assert.False(t, session.HasSelection())
	})
}

func TestHandleCellSelected_Movement(t *testing.T) {
	t.Run("Moving to an empty cell relocates the piece and passes the turn", func(t *testing.T) {
		// Given: all pieces placed, X selected (0, 0)
		session := entity.NewSession("123")
		placeAllPieces(t, session)
		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 0))

		// When: X clicks the empty cell (1, 2)
		outcome := HandleCellSelected(session, 1, 2)

		// Then: the piece moved, selection cleared, turn passed to O
		require.Equal(t, OutcomeMoved, outcome)
		assert.Equal(t, entity.EmptyCell, session.Board[entity.CellIndex(0, 0)])
		assert.Equal(t, entity.PlayerX, session.Board[entity.CellIndex(1, 2)])
		assert.False(t, session.HasSelection())
		assert.Equal(t, entity.PlayerO, session.Turn)

		// Then: movement altered neither placed counts nor piece total
		assert.Equal(t, 3, session.Placed(entity.PlayerX))
		assert.Equal(t, 3, session.Placed(entity.PlayerO))
		assert.Equal(t, 6, boardPieceCount(session))
	})

	t.Run("Clicking another own piece re-selects it", func(t *testing.T) {
		// Given: all pieces placed, X selected (0, 0)
		session := entity.NewSession("123")
		placeAllPieces(t, session)
		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 0))

		snapshot := session.Board

		// When: X clicks its piece on (1, 0)
		outcome := HandleCellSelected(session, 1, 0)

		// Then: selection moved, board and turn untouched
		require.Equal(t, OutcomeReselected, outcome)
		assert.Equal(t, entity.CellIndex(1, 0), session.Selected)
		assert.Equal(t, snapshot, session.Board)
		assert.Equal(t, entity.PlayerX, session.Turn)
	})

	t.Run("Clicking an opponent piece with a selection is a no-op", func(t *testing.T) {
		// Given: all pieces placed, X selected (0, 0)
		session := entity.NewSession("123")
		placeAllPieces(t, session)
		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 0))

		snapshot := *session

		// When: X clicks O's piece on (1, 1)
		outcome := HandleCellSelected(session, 1, 1)

		// Then: board, selection, and turn all unchanged
		require.Equal(t, OutcomeIgnored, outcome)
		assert.Equal(t, snapshot, *session)
	})

	t.Run("Clicking the selected cell itself is a no-op", func(t *testing.T) {
		// Given: all pieces placed, X selected (0, 0)
		session := entity.NewSession("123")
		placeAllPieces(t, session)
		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 0))

		// When: X clicks (0, 0) again
		outcome := HandleCellSelected(session, 0, 0)

		// Then: the selection stays on (0, 0)
		require.Equal(t, OutcomeIgnored, outcome)
		assert.Equal(t, entity.CellIndex(0, 0), session.Selected)
	})

	t.Run("A selection in progress takes precedence over phase inference", func(t *testing.T) {
		// Given: all pieces placed and a piece selected; both players have
		// exhausted their budgets, so a mis-routed click would hit placement
		session := entity.NewSession("123")
		placeAllPieces(t, session)
		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 0))

		// When: X clicks an empty cell
		outcome := HandleCellSelected(session, 2, 2)

		// Then: the click resolves as a move, not a placement
		require.Equal(t, OutcomeMoved, outcome)
		assert.Equal(t, 3, session.Placed(entity.PlayerX))
		assert.Equal(t, 6, boardPieceCount(session))
	})
}

func TestWinDetection(t *testing.T) {
	t.Run("Fires on each of the 8 lines", func(t *testing.T) {
		for _, line := range entity.WinLines {
			// Given: two X pieces already on the line, X to move, budget open
			session := entity.NewSession("123")
			session.Board[line[0]] = entity.PlayerX
			session.Board[line[1]] = entity.PlayerX
			session.PlacedX = 2
			session.PlacedO = 2

			// When: X completes the line
			row, col := line[2]/3, line[2]%3
			outcome := HandleCellSelected(session, row, col)

			// Then: X wins and the turn freezes
			require.Equal(t, OutcomePlaced, outcome)
			assert.Equal(t, entity.PlayerX, session.Winner)
			assert.Contains(t, session.Message, "X")
			assert.Equal(t, entity.PlayerX, session.Turn)
		}
	})

	t.Run("Never fires on mixed or incomplete lines", func(t *testing.T) {
		// Given: six pieces on the board with no complete line
		session := entity.NewSession("123")
		placeAllPieces(t, session)

		// Then: no winner, no message
		assert.False(t, session.HasWinner())
		assert.Empty(t, session.Message)
	})

	t.Run("Win by movement freezes the game", func(t *testing.T) {
		// Given: all pieces placed on a board where X can complete column 0
		// by moving (0, 1) down to (2, 0):
		//
		//	X X O
		//	X O .
		//	. O .
		session := entity.NewSession("123")
		placeAllPieces(t, session)

		require.Equal(t, OutcomeSelected, HandleCellSelected(session, 0, 1))

		// When: X moves onto (2, 0)
		outcome := HandleCellSelected(session, 2, 0)

		// Then: column 0 is complete and X wins
		require.Equal(t, OutcomeMoved, outcome)
		assert.Equal(t, entity.PlayerX, session.Winner)
		assert.Contains(t, session.Message, "X")
	})
}

func TestTurnAlternation(t *testing.T) {
	// Given: a fresh session
	session := entity.NewSession("123")

	// Then: turns alternate X, O, X, O, ... on every accepted placement
	moves := [][2]int{{0, 0}, {1, 1}, {0, 1}, {0, 2}, {1, 0}, {2, 1}}
	marks := []string{entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.PlayerX}

	for i, move := range moves {
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, move[0], move[1]))
		require.Equal(t, marks[i], session.Turn)
	}
}

func TestHandleCellSelected_AfterWin(t *testing.T) {
	// Given: X won on row 0 via the scripted scenario
	session := entity.NewSession("123")
	scenario := [][2]int{
		{0, 0}, // X
		{1, 1}, // O
		{0, 1}, // X
		{1, 0}, // O
		{0, 2}, // X completes row 0
	}
	for _, move := range scenario {
		require.NotEqual(t, OutcomeIgnored, HandleCellSelected(session, move[0], move[1]))
	}

	require.Equal(t, entity.PlayerX, session.Winner)
	require.Contains(t, session.Message, "X")
	require.Equal(t, entity.PlayerX, session.Board[0])
	require.Equal(t, entity.PlayerX, session.Board[1])
	require.Equal(t, entity.PlayerX, session.Board[2])

	snapshot := *session

	// When: anyone keeps clicking after the win
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			outcome := HandleCellSelected(session, row, col)

			// Then: every click is a strict no-op
			require.Equal(t, OutcomeIgnored, outcome)
		}
	}

	require.Equal(t, snapshot, *session)
}

func TestResetGame(t *testing.T) {
	t.Run("Reset mid-game restores the initial state", func(t *testing.T) {
		// Given: a session mid-placement
		session := entity.NewSession("123")
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, 0, 0))
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, 1, 1))

		// When: the game is reset
		ResetGame(session)

		// Then: the session equals a freshly created one
		require.Equal(t, entity.NewSession("123"), session)
	})

	t.Run("Reset after a win clears the terminal state", func(t *testing.T) {
		// Given: a finished game
		session := entity.NewSession("123")
		scenario := [][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0, 2}}
		for _, move := range scenario {
			HandleCellSelected(session, move[0], move[1])
		}
		require.True(t, session.HasWinner())

		// When: the game is reset
		ResetGame(session)

		// Then: play is possible again, X first
		require.Equal(t, entity.NewSession("123"), session)
		require.Equal(t, OutcomePlaced, HandleCellSelected(session, 2, 2))
		require.Equal(t, entity.PlayerX, session.Board[entity.CellIndex(2, 2)])
	})
}
