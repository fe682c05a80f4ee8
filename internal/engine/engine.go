package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hailam/chesskit/internal/board"
	"github.com/hailam/chesskit/internal/book"
)

// ErrNoLegalMoves is returned when a strategy is asked to move in a
// terminal position. Callers are expected to classify the position first,
// so hitting this is a caller bug, not a game condition.
var ErrNoLegalMoves = errors.New("engine: no legal moves")

// Result is a chosen move and the score backing the decision, from the
// moving side's perspective. Discarded once the move is applied.
type Result struct {
	Move  board.Move
	Score int
}

// Strategy selects a move for the side to move. Implementations never
// mutate the position they are given.
type Strategy interface {
	ChooseMove(pos *board.Position) (Result, error)
}

// Difficulty selects which strategy answers ChooseMove.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a flag value to a difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// Settings are the per-tier search limits.
type Settings struct {
	Depth    int
	MoveTime time.Duration
}

// DifficultySettings maps each tier to its limits. Easy ignores them
// (no look-ahead); medium runs a fixed-depth search; hard consults the
// book first and searches deeper with a time budget.
var DifficultySettings = map[Difficulty]Settings{
	Easy:   {},
	Medium: {Depth: 3},
	Hard:   {Depth: 6, MoveTime: 5 * time.Second},
}

// Engine bundles the three strategies behind the difficulty switch. The
// opening book may be nil, in which case the hard tier always searches.
type Engine struct {
	strategies map[Difficulty]Strategy
}

// New builds an engine. The book is shared read-only; seed fixes the
// random tier and the book's weighted pick for reproducible games.
func New(b *book.Book, ttSizeMB int, seed int64) *Engine {
	tt := NewTranspositionTable(ttSizeMB)

	medium := &SearchStrategy{
		Searcher: NewSearcher(tt),
		Settings: DifficultySettings[Medium],
	}
	deep := &SearchStrategy{
		Searcher: NewSearcher(tt),
		Settings: DifficultySettings[Hard],
	}
	deep.Searcher.Quiesce = true

	return &Engine{
		strategies: map[Difficulty]Strategy{
			Easy:   NewRandomStrategy(seed),
			Medium: medium,
			Hard: &BookStrategy{
				Book:     b,
				Fallback: deep,
				rng:      rand.New(rand.NewSource(seed)),
			},
		},
	}
}

// ChooseMove dispatches to the strategy for the given difficulty.
func (e *Engine) ChooseMove(pos *board.Position, d Difficulty) (Result, error) {
	st, ok := e.strategies[d]
	if !ok {
		return Result{}, fmt.Errorf("no strategy for %s", d)
	}
	return st.ChooseMove(pos)
}

// SearchStrategy is the alpha-beta tier: a fixed-depth negamax with an
// optional soft time budget.
type SearchStrategy struct {
	Searcher *Searcher
	Settings Settings
}

func (st *SearchStrategy) ChooseMove(pos *board.Position) (Result, error) {
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return Result{}, ErrNoLegalMoves
	}

	move, score := st.Searcher.Search(pos, st.Settings.Depth, st.Settings.MoveTime)
	if move == board.NoMove {
		// The budget expired inside the first iteration; any legal move
		// beats returning nothing.
		move, score = moves.Get(0), 0
	}
	return Result{Move: move, Score: score}, nil
}

// BookStrategy is the strongest tier: a book probe first, then a deeper
// search when the position is out of book.
type BookStrategy struct {
	Book     *book.Book
	Fallback *SearchStrategy
	rng      *rand.Rand
}

func (st *BookStrategy) ChooseMove(pos *board.Position) (Result, error) {
	if st.Book != nil {
		if m, ok := st.Book.Probe(pos, st.rng); ok {
			return Result{Move: m}, nil
		}
	}
	return st.Fallback.ChooseMove(pos)
}
