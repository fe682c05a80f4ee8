// Package engine implements the static evaluator and the three
// move-selection strategies: random, fixed-depth alpha-beta, and opening
// book backed by a deeper search.
package engine

import "github.com/hailam/chesskit/internal/board"

// Material values in centipawns. Kings stay out of the material sum;
// king loss is handled by the search's mate scores.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

var pieceValues = [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// PieceValue returns the material value of a piece type.
func PieceValue(pt board.PieceType) int {
	if pt >= board.NoPieceType {
		return 0
	}
	return pieceValues[pt]
}

// Piece-square tables from White's perspective, a1 at index 0. Black
// reads them through the vertical flip.
var pstPawn = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstKnight = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var pstBishop = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var pstRook = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstQueen = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var pstKing = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var pst = [6]*[64]int{&pstPawn, &pstKnight, &pstBishop, &pstRook, &pstQueen, &pstKing}

// Mobility weight per piece type (per reachable square).
var mobilityWeight = [6]int{0, 4, 4, 2, 1, 0}

const (
	bishopPairBonus     = 30
	doubledPawnPenalty  = 15
	isolatedPawnPenalty = 12
	rookOpenFile        = 20
	rookSemiOpenFile    = 10
	tempoBonus          = 10
)

// Evaluate scores the position in centipawns, positive favoring White.
// Every term is computed per color and differenced, so mirroring the
// board with colors swapped negates the score exactly.
func Evaluate(pos *board.Position) int {
	score := evalColor(pos, board.White) - evalColor(pos, board.Black)
	if pos.SideToMove == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}
	return score
}

func evalColor(pos *board.Position, us board.Color) int {
	score := 0
	occ := pos.All
	ownPawns := pos.Pieces[us][board.Pawn]
	theirPawns := pos.Pieces[us.Other()][board.Pawn]

	for pt := board.Pawn; pt <= board.King; pt++ {
		table := pst[pt]
		for bb := pos.Pieces[us][pt]; bb != 0; {
			sq := bb.PopLSB()
			score += pieceValues[pt]

			psq := sq
			if us == board.Black {
				psq = sq.Flip()
			}
			score += table[psq]

			switch pt {
			case board.Knight:
				score += mobilityWeight[pt] * (board.KnightAttacks(sq) &^ pos.Occupied[us]).Count()
			case board.Bishop:
				score += mobilityWeight[pt] * (board.BishopAttacks(sq, occ) &^ pos.Occupied[us]).Count()
			case board.Rook:
				score += mobilityWeight[pt] * (board.RookAttacks(sq, occ) &^ pos.Occupied[us]).Count()
				file := board.FileBB(sq.File())
				if file&(ownPawns|theirPawns) == 0 {
					score += rookOpenFile
				} else if file&ownPawns == 0 {
					score += rookSemiOpenFile
				}
			case board.Queen:
				score += mobilityWeight[pt] * (board.QueenAttacks(sq, occ) &^ pos.Occupied[us]).Count()
			}
		}
	}

	if pos.Pieces[us][board.Bishop].Count() >= 2 {
		score += bishopPairBonus
	}

	for file := 0; file < 8; file++ {
		fileBB := board.FileBB(file)
		n := (ownPawns & fileBB).Count()
		if n == 0 {
			continue
		}
		if n > 1 {
			score -= doubledPawnPenalty * (n - 1)
		}
		var adjacent board.Bitboard
		if file > 0 {
			adjacent |= board.FileBB(file - 1)
		}
		if file < 7 {
			adjacent |= board.FileBB(file + 1)
		}
		if ownPawns&adjacent == 0 {
			score -= isolatedPawnPenalty * n
		}
	}

	return score
}
