package engine

import "github.com/hailam/chesskit/internal/board"

// Move ordering score bands.
const (
	ttMoveScore    = 1 << 24
	captureBase    = 1 << 20
	killerScore1   = 1<<20 - 1
	killerScore2   = 1<<20 - 2
	promotionScore = 1 << 19
)

// MoveOrderer ranks moves so alpha-beta cuts early: the cached best move
// first, then captures by most-valuable-victim least-valuable-attacker,
// then killer moves and the history heuristic for quiet moves.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

// Clear resets killers and halves history, keeping some signal between
// searches without letting scores grow unbounded.
func (mo *MoveOrderer) Clear() {
	for ply := range mo.killers {
		mo.killers[ply][0] = board.NoMove
		mo.killers[ply][1] = board.NoMove
	}
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}
}

// ScoreMoves assigns an ordering score to each move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return ttMoveScore
	}

	if m.IsCapture(pos) {
		attacker := pos.PieceAt(m.From()).Type()
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Type()
		}
		return captureBase + PieceValue(victim)*16 - PieceValue(attacker)/16
	}

	if m.IsPromotion() {
		return promotionScore + PieceValue(m.Promotion())
	}

	if ply < MaxPly {
		if m == mo.killers[ply][0] {
			return killerScore1
		}
		if m == mo.killers[ply][1] {
			return killerScore2
		}
	}

	return mo.history[m.From()][m.To()]
}

// PickMove moves the best remaining entry to index, sorting lazily since
// cutoffs usually happen within the first few moves.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory rewards a quiet move that raised alpha.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	mo.history[m.From()][m.To()] += depth * depth
	if mo.history[m.From()][m.To()] >= promotionScore {
		for i := range mo.history {
			for j := range mo.history[i] {
				mo.history[i][j] /= 2
			}
		}
	}
}
