package game

import (
	"fmt"

	"github.com/hailam/chesskit/internal/board"
)

// IllegalMoveError reports a move that is not legal in the current
// position: stale, foreign, or simply wrong. It is always surfaced to the
// caller, never silently corrected.
type IllegalMoveError struct {
	Move board.Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s", e.Move)
}

// NoLegalMoveError reports ChooseMove called on a terminal position. The
// caller should have checked Classify first; this is a contract violation
// fatal to the call, not to the process.
type NoLegalMoveError struct {
	Status Status
}

func (e *NoLegalMoveError) Error() string {
	return fmt.Sprintf("no legal moves: position is %s", e.Status)
}

// MalformedPositionError reports a position violating structural
// invariants (a missing king and the like). Legal play can never produce
// one, so it indicates a bug upstream and is not recoverable.
type MalformedPositionError struct {
	Reason string
}

func (e *MalformedPositionError) Error() string {
	return "malformed position: " + e.Reason
}
