package engine

import (
	"time"

	"github.com/hailam/chesskit/internal/board"
)

// Search score bounds. Mate scores are offset by ply so the search
// prefers the shortest mate.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 64
)

// Searcher runs a fixed-depth alpha-beta negamax over its own scratch
// copy of the position. One search at a time; no state survives a call
// except the transposition table and aged ordering heuristics.
type Searcher struct {
	tt      *TranspositionTable
	orderer MoveOrderer

	// Quiesce extends leaf evaluation with a capture-only search, used
	// by the deeper tier. Without it depth-0 leaves return the static
	// score directly.
	Quiesce bool

	pos      *board.Position
	nodes    uint64
	deadline time.Time
	stopped  bool
}

// NewSearcher creates a searcher backed by the given table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// Nodes returns the node count of the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Search runs iterative deepening to maxDepth, optionally bounded by a
// soft move-time budget. The deadline is checked at node boundaries;
// when it fires, the best move from the last completed iteration is
// returned, never a partial one. The caller's position is not touched.
func (s *Searcher) Search(pos *board.Position, maxDepth int, moveTime time.Duration) (board.Move, int) {
	s.pos = pos.Copy()
	s.nodes = 0
	s.stopped = false
	s.orderer.Clear()

	start := time.Now()
	s.deadline = time.Time{}
	if moveTime > 0 {
		s.deadline = start.Add(moveTime)
	}

	bestMove := board.NoMove
	bestScore := -Infinity

	for depth := 1; depth <= maxDepth; depth++ {
		move, score := s.searchRoot(depth)
		if s.stopped {
			break
		}
		if move != board.NoMove {
			bestMove, bestScore = move, score
		}
		if score >= MateScore-MaxPly || score <= -(MateScore-MaxPly) {
			break
		}
		if !s.deadline.IsZero() {
			elapsed := time.Since(start)
			if elapsed > moveTime-elapsed {
				// Another iteration would not finish in time.
				break
			}
		}
	}

	return bestMove, bestScore
}

func (s *Searcher) searchRoot(depth int) (board.Move, int) {
	pos := s.pos

	var ttMove board.Move
	if e, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = e.BestMove
	}

	moves := pos.GenerateLegalMoves()
	scores := s.orderer.ScoreMoves(pos, moves, 0, ttMove)

	alpha, beta := -Infinity, Infinity
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		pos.UnmakeMove(m, undo)
		if s.stopped {
			break
		}
		if score > alpha {
			alpha = score
			bestMove = m
		}
	}

	if !s.stopped && bestMove != board.NoMove {
		s.tt.Store(pos.Hash, depth, alpha, TTExact, bestMove)
	}
	return bestMove, alpha
}

func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	if s.checkStop() {
		return 0
	}
	pos := s.pos

	if pos.HalfmoveClock >= 100 {
		return 0
	}

	alphaOrig := alpha
	var ttMove board.Move
	if e, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = e.BestMove
		if int(e.Depth) >= depth {
			score := int(e.Score)
			switch e.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	// Terminal detection comes before the depth check so mate and
	// stalemate dominate the static score even at depth 0.
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -(MateScore - ply)
		}
		return 0
	}

	if depth <= 0 || ply >= MaxPly {
		if s.Quiesce && ply < MaxPly {
			return s.quiescence(ply, alpha, beta)
		}
		return s.staticEval()
	}

	scores := s.orderer.ScoreMoves(pos, moves, ply, ttMove)
	best := -Infinity
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		m := moves.Get(i)
		quiet := !m.IsCapture(pos) && !m.IsPromotion()

		undo := pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(m, undo)
		if s.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			if quiet {
				s.orderer.UpdateHistory(m, depth)
			}
			if alpha >= beta {
				if quiet {
					s.orderer.UpdateKillers(m, ply)
				}
				break
			}
		}
	}

	flag := TTExact
	if best <= alphaOrig {
		flag = TTUpperBound
	} else if best >= beta {
		flag = TTLowerBound
	}
	s.tt.Store(pos.Hash, depth, best, flag, bestMove)
	return best
}

// quiescence searches captures and promotions until the position goes
// quiet, so leaf evaluation never stops in the middle of an exchange.
// In check it searches every evasion.
func (s *Searcher) quiescence(ply, alpha, beta int) int {
	if s.checkStop() {
		return 0
	}
	pos := s.pos

	if pos.InCheck() {
		moves := pos.GenerateLegalMoves()
		if moves.Len() == 0 {
			return -(MateScore - ply)
		}
		if ply >= MaxPly {
			return s.staticEval()
		}
		best := -Infinity
		scores := s.orderer.ScoreMoves(pos, moves, ply, board.NoMove)
		for i := 0; i < moves.Len(); i++ {
			PickMove(moves, scores, i)
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			score := -s.quiescence(ply+1, -beta, -alpha)
			pos.UnmakeMove(m, undo)
			if s.stopped {
				return 0
			}
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
		return best
	}

	standPat := s.staticEval()
	if standPat >= beta || ply >= MaxPly {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	us := pos.SideToMove
	var caps board.MoveList
	pos.GenerateCaptures(&caps)
	scores := s.orderer.ScoreMoves(pos, &caps, ply, board.NoMove)

	best := standPat
	for i := 0; i < caps.Len(); i++ {
		PickMove(&caps, scores, i)
		m := caps.Get(i)

		undo := pos.MakeMove(m)
		if !kingSafe(pos, us) {
			pos.UnmakeMove(m, undo)
			continue
		}
		score := -s.quiescence(ply+1, -beta, -alpha)
		pos.UnmakeMove(m, undo)
		if s.stopped {
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

// staticEval returns the evaluation from the side to move's perspective,
// as negamax requires.
func (s *Searcher) staticEval() int {
	e := Evaluate(s.pos)
	if s.pos.SideToMove == board.Black {
		return -e
	}
	return e
}

func kingSafe(pos *board.Position, us board.Color) bool {
	ks := pos.KingSquare(us)
	return ks == board.NoSquare || !pos.IsSquareAttacked(ks, us.Other())
}

// checkStop counts a node and polls the deadline every 2048 nodes.
func (s *Searcher) checkStop() bool {
	if s.stopped {
		return true
	}
	s.nodes++
	if s.nodes&2047 == 0 && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}
