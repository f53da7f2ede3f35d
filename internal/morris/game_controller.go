package morris

import (
	"fmt"

	"github.com/morrisworks/morris-backend/internal/entity"
)

// Outcome tells the caller what a click did. Invalid input never fails; it is
// reported as OutcomeIgnored and leaves the session untouched.
type Outcome string

const (
	OutcomePlaced     Outcome = "placed"
	OutcomeSelected   Outcome = "selected"
	OutcomeReselected Outcome = "reselected"
	OutcomeMoved      Outcome = "moved"
	OutcomeIgnored    Outcome = "ignored"
)

// HandleCellSelected routes a click on (row, col) to placement, piece
// selection, or movement, depending on the session state. The order of the
// checks is load-bearing: a selection in progress takes precedence over phase
// inference, so a player mid-move is never re-routed into placement.
//
// Coordinates must be in 0..2; callers validate before dispatching.
func HandleCellSelected(session *entity.Session, row, col int) Outcome {
	cell := entity.CellIndex(row, col)

	switch {
	case session.HasWinner():
		return OutcomeIgnored
	case session.HasSelection():
		return handleMovement(session, cell)
	case session.InMovementPhase():
		return handleSelection(session, cell)
	default:
		return handlePlacement(session, cell)
	}
}

// ResetGame rebuilds the session to its initial state: empty board, counts
// zeroed, X to move, winner/message/selection cleared. Callable at any time.
func ResetGame(session *entity.Session) {
	session.Reset()
}

// handlePlacement puts the active player's mark on an empty cell and credits
// the placement. The placement budget is re-validated here even though the
// dispatcher already routes exhausted players to selection.
func handlePlacement(session *entity.Session, cell int) Outcome {
	if session.Board[cell] != entity.EmptyCell {
		return OutcomeIgnored
	}

	if session.Placed(session.Turn) >= entity.PiecesPerPlayer {
		return OutcomeIgnored
	}

	session.Board[cell] = session.Turn
	session.AddPlaced(session.Turn)

	finishTurn(session)

	return OutcomePlaced
}

// handleSelection records the clicked cell as the piece to relocate. Clicking
// an empty cell or an opponent's piece changes nothing.
func handleSelection(session *entity.Session, cell int) Outcome {
	if session.Board[cell] != session.Turn {
		return OutcomeIgnored
	}

	session.Selected = cell

	return OutcomeSelected
}

// handleMovement resolves a click while a piece is selected: clicking another
// own piece re-selects it, clicking an empty cell moves the selected piece
// there. Anything else is ignored. Placed counts are untouched; movement
// relocates a piece already counted during placement.
func handleMovement(session *entity.Session, cell int) Outcome {
	switch {
	case session.Board[cell] == session.Turn && cell != session.Selected:
		session.Selected = cell
		return OutcomeReselected

	case session.Board[cell] == entity.EmptyCell:
		session.Board[cell] = session.Turn
		session.Board[session.Selected] = entity.EmptyCell
		session.Selected = entity.NoSelection

		finishTurn(session)

		return OutcomeMoved

	default:
		return OutcomeIgnored
	}
}

// finishTurn runs win detection and, when the game goes on, passes the turn.
func finishTurn(session *entity.Session) {
	if winner := checkWinner(session.Board); winner != entity.NoWinner {
		session.Winner = winner
		session.Message = fmt.Sprintf("player %s wins", winner)
		return
	}

	session.Turn = entity.ToggleMark(session.Turn)
}

// checkWinner scans the 8 lines in fixed order and returns the mark of the
// first complete one, or NoWinner. No caching; values are read straight off
// the board.
func checkWinner(board [9]string) string {
	for _, line := range entity.WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.NoWinner
}
