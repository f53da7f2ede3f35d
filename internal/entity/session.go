package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
	NoWinner  = ""

	// PiecesPerPlayer is the per-player placement budget; once both players
	// reach it the game is in the movement phase.
	PiecesPerPlayer = 3

	// NoSelection marks that no piece is currently chosen for relocation.
	NoSelection = -1

	BoardSize = 9
)

// WinLines are the 8 winning triples over the flat board: 3 rows, then
// 3 columns, then 2 diagonals. Scan order matters: the win detector reports
// the first matching line.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Session is the root state of one three men's morris game. The board is a
// flat 3x3 grid stored row-major; cell index = row*3 + col. The active player
// is a mark tag rather than a pointer into a player record.
type Session struct {
	ID       string    `json:"id"`
	Board    [9]string `json:"board"`
	Turn     string    `json:"turn"`
	Winner   string    `json:"winner,omitempty"`
	Message  string    `json:"message,omitempty"`
	PlacedX  int       `json:"placed_x"`
	PlacedO  int       `json:"placed_o"`
	Selected int       `json:"selected"`
}

// NewSession returns a fresh session with an empty board and X to move.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Board:    [9]string{},
		Turn:     PlayerX,
		Winner:   NoWinner,
		Selected: NoSelection,
	}
}

// CellIndex maps (row, col) coordinates to a flat board index.
func CellIndex(row, col int) int {
	return row*3 + col
}

// ValidCoords reports whether (row, col) addresses a board cell.
func ValidCoords(row, col int) bool {
	return row >= 0 && row <= 2 && col >= 0 && col <= 2
}

// Reset reinitializes the session in place, keeping only its ID.
func (that *Session) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = NoWinner
	that.Message = ""
	that.PlacedX = 0
	that.PlacedO = 0
	that.Selected = NoSelection
}

// Placed returns how many pieces the given mark has placed so far.
func (that *Session) Placed(mark string) int {
	if mark == PlayerX {
		return that.PlacedX
	}
	return that.PlacedO
}

// AddPlaced credits one placement to the given mark.
func (that *Session) AddPlaced(mark string) {
	if mark == PlayerX {
		that.PlacedX++
		return
	}
	that.PlacedO++
}

func (that *Session) HasWinner() bool {
	return that.Winner != NoWinner
}

func (that *Session) HasSelection() bool {
	return that.Selected != NoSelection
}

// InMovementPhase reports whether the active player has exhausted the
// placement budget and must relocate an existing piece.
func (that *Session) InMovementPhase() bool {
	return that.Placed(that.Turn) >= PiecesPerPlayer
}

// ToggleMark returns the opposing mark.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
