// Package game is the session layer consumed by front ends: it owns the
// live position, validates incoming moves, classifies the game state
// after every ply, and asks the engine for moves on the bot's turn.
package game

import (
	"github.com/hailam/chesskit/internal/board"
	"github.com/hailam/chesskit/internal/book"
	"github.com/hailam/chesskit/internal/engine"
)

// Difficulty re-exports the engine's tiers so front ends only import
// this package.
type Difficulty = engine.Difficulty

const (
	Easy   = engine.Easy
	Medium = engine.Medium
	Hard   = engine.Hard
)

// Game is one chess session. Not safe for concurrent use; the position
// is exclusively owned by the session.
type Game struct {
	pos    *board.Position
	eng    *engine.Engine
	hashes []uint64 // position fingerprints after every ply, oldest first
	sans   []string // applied moves in algebraic notation
}

// Option configures a new game.
type Option func(*config)

type config struct {
	book     *book.Book
	seed     int64
	ttSizeMB int
}

// WithBook supplies the opening book the hard tier consults. The book is
// read-only and may be shared between games.
func WithBook(b *book.Book) Option {
	return func(c *config) { c.book = b }
}

// WithSeed fixes the random tier and the book's weighted pick, replaying
// identical games for testing.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithTableSize sets the transposition table size in megabytes.
func WithTableSize(mb int) Option {
	return func(c *config) { c.ttSizeMB = mb }
}

func newConfig(opts []Option) *config {
	c := &config{seed: 1, ttSizeMB: 64}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewGame starts from the standard position.
func NewGame(opts ...Option) *Game {
	c := newConfig(opts)
	g := &Game{
		pos: board.NewPosition(),
		eng: engine.New(c.book, c.ttSizeMB, c.seed),
	}
	g.hashes = append(g.hashes, g.pos.Hash)
	return g
}

// NewGameFromFEN starts from an arbitrary position. Structurally invalid
// input yields a MalformedPositionError.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, &MalformedPositionError{Reason: err.Error()}
	}
	if err := pos.Validate(); err != nil {
		return nil, &MalformedPositionError{Reason: err.Error()}
	}

	c := newConfig(opts)
	g := &Game{
		pos: pos,
		eng: engine.New(c.book, c.ttSizeMB, c.seed),
	}
	g.hashes = append(g.hashes, pos.Hash)
	return g, nil
}

// Position returns the live position. Callers must treat it as read-only;
// use Apply to advance the game.
func (g *Game) Position() *board.Position {
	return g.pos
}

// LegalMoves returns every legal move in the current position.
func (g *Game) LegalMoves() []board.Move {
	return g.pos.GenerateLegalMoves().Slice()
}

// Apply advances the game by one ply. The move must be one the session
// itself enumerated for the current position; anything else (including a
// move generated against an earlier position) is rejected with an
// IllegalMoveError.
func (g *Game) Apply(m board.Move) error {
	if !g.pos.GenerateLegalMoves().Contains(m) {
		return &IllegalMoveError{Move: m}
	}

	san := m.ToSAN(g.pos)
	g.pos.MakeMove(m)
	g.hashes = append(g.hashes, g.pos.Hash)
	g.sans = append(g.sans, san)
	return nil
}

// Classify reports the game state of the current position.
func (g *Game) Classify() Status {
	return Classify(g.pos)
}

// ChooseMove asks the engine for the side to move's reply at the given
// difficulty. Calling it on a terminal position is a caller error,
// reported as NoLegalMoveError.
func (g *Game) ChooseMove(d Difficulty) (board.Move, error) {
	if status := g.Classify(); status.Terminal() {
		return board.NoMove, &NoLegalMoveError{Status: status}
	}

	res, err := g.eng.ChooseMove(g.pos, d)
	if err != nil {
		return board.NoMove, err
	}
	return res.Move, nil
}

// RepetitionCount returns how many times the current position (by
// fingerprint) has occurred in this game, including now. Groundwork for
// threefold-repetition detection; Classify does not consult it.
func (g *Game) RepetitionCount() int {
	n := 0
	current := g.pos.Hash
	for _, h := range g.hashes {
		if h == current {
			n++
		}
	}
	return n
}

// History returns the applied moves in algebraic notation.
func (g *Game) History() []string {
	out := make([]string, len(g.sans))
	copy(out, g.sans)
	return out
}

// Outcome renders a result banner for terminal positions, empty
// otherwise. The side that delivered mate is the one that just moved.
func (g *Game) Outcome() string {
	switch g.Classify() {
	case Checkmate:
		if g.pos.SideToMove == board.White {
			return "0-1 (checkmate)"
		}
		return "1-0 (checkmate)"
	case Stalemate:
		return "1/2-1/2 (stalemate)"
	case DrawFiftyMove:
		return "1/2-1/2 (fifty-move rule)"
	}
	return ""
}
