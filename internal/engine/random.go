package engine

import (
	"math/rand"

	"github.com/hailam/chesskit/internal/board"
)

// RandomStrategy is the easy tier: a uniform pick over the legal moves,
// no look-ahead. Score is always 0 since nothing backs the choice.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy seeds the picker; a fixed seed replays the same game.
func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (st *RandomStrategy) ChooseMove(pos *board.Position) (Result, error) {
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return Result{}, ErrNoLegalMoves
	}
	return Result{Move: moves.Get(st.rng.Intn(moves.Len()))}, nil
}
