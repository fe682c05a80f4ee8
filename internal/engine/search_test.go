package engine

import (
	"testing"
	"time"

	"github.com/hailam/chesskit/internal/board"
)

func newTestSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(4))
}

func TestGreedyCaptureDepthOne(t *testing.T) {
	// The e4 pawn can take an undefended queen; depth 1 must find it.
	pos, err := board.ParseFEN("k7/8/8/3q4/4P3/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSearcher()
	move, score := s.Search(pos, 1, 0)

	want := board.NewMove(board.E4, board.D5)
	if move != want {
		t.Errorf("want exd5, got %s (score %d)", move, score)
	}
	if score < QueenValue/2 {
		t.Errorf("winning a queen scored only %d", score)
	}
}

func TestFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/K2R4 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSearcher()
	move, score := s.Search(pos, 3, 0)

	if want := board.NewMove(board.D1, board.D8); move != want {
		t.Errorf("want Rd8#, got %s", move)
	}
	if score < MateScore-MaxPly {
		t.Errorf("mate in one scored %d", score)
	}
}

func TestDefendsAgainstMateInOne(t *testing.T) {
	// Black faces Rd8#; the defense must leave White without a mate.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/K2R4 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSearcher()
	move, _ := s.Search(pos, 3, 0)
	if move == board.NoMove {
		t.Fatal("search returned no move")
	}

	undo := pos.MakeMove(move)
	_, replyScore := newTestSearcher().Search(pos, 2, 0)
	pos.UnmakeMove(move, undo)
	if replyScore >= MateScore-MaxPly {
		t.Errorf("defense %s still allows mate in one", move)
	}
}

func TestSearchScoresStalemateZero(t *testing.T) {
	// Qxa6 wins a rook but stalemates Black (pawn blocked, king boxed
	// in); the line must score exactly 0 and lose to any quiet move.
	pos, err := board.ParseFEN("k7/p1K5/r7/8/8/3Q4/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	grab := board.NewMove(board.D3, board.A6)
	check := pos.Copy()
	check.MakeMove(grab)
	if !check.IsStalemate() {
		t.Fatal("fixture broken: Qxa6 does not stalemate")
	}

	s := newTestSearcher()
	move, score := s.Search(pos, 3, 0)
	if move == grab {
		t.Errorf("search chose the stalemating capture (score %d)", score)
	}
	if score <= 0 {
		t.Errorf("white is winning but score is %d", score)
	}
}

func TestFiftyMoveDrawScoredZero(t *testing.T) {
	// Clock at 99 and White is down a queen: every quiet move reaches
	// the fifty-move draw, so the search score collapses to 0.
	pos, err := board.ParseFEN("7k/q7/5K2/8/8/8/8/8 w - - 99 80")
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSearcher()
	_, score := s.Search(pos, 2, 0)
	if score != 0 {
		t.Errorf("draw-in-hand position scored %d, want 0", score)
	}
}

func TestDeadlineReturnsMove(t *testing.T) {
	pos := board.NewPosition()
	s := newTestSearcher()
	s.Quiesce = true

	move, _ := s.Search(pos, 20, 50*time.Millisecond)
	if move == board.NoMove {
		t.Error("time-limited search returned no move")
	}
	if pos.FEN() != board.StartFEN {
		t.Error("search mutated the caller's position")
	}
}
