package game

import "github.com/hailam/chesskit/internal/board"

// Status classifies a position after every ply.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	DrawFiftyMove
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	}
	return "unknown"
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate || s == DrawFiftyMove
}

// Classify determines the game state of a position. The fifty-move draw
// is checked first: once the clock reaches 100 plies no further play is
// required, whether or not the side to move is also in check.
//
// Threefold repetition and insufficient material are deliberately not
// part of this classification; see Game.RepetitionCount and
// board.Position.IsInsufficientMaterial for the extension points.
func Classify(pos *board.Position) Status {
	if pos.IsFiftyMoveDraw() {
		return DrawFiftyMove
	}

	inCheck := pos.InCheck()
	hasMoves := pos.HasLegalMoves()

	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case !inCheck && !hasMoves:
		return Stalemate
	case inCheck:
		return Check
	}
	return Ongoing
}
