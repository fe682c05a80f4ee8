package board

// Ray directions. The first four increase the square index (first blocker
// found with LSB), the last four decrease it (MSB).
const (
	dirNorth = iota
	dirNorthEast
	dirEast
	dirNorthWest
	dirSouth
	dirSouthWest
	dirWest
	dirSouthEast
)

var (
	rayAttacks    [8][64]Bitboard
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
	betweenBB     [64][64]Bitboard
)

func init() {
	initRays()
	initLeapers()
	initBetween()
}

var rayDeltas = [8][2]int{
	dirNorth:     {0, 1},
	dirNorthEast: {1, 1},
	dirEast:      {1, 0},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirSouthWest: {-1, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
}

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for dir := 0; dir < 8; dir++ {
			df, dr := rayDeltas[dir][0], rayDeltas[dir][1]
			f, r := sq.File()+df, sq.Rank()+dr
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				rayAttacks[dir][sq] |= NewSquare(f, r).BB()
				f += df
				r += dr
			}
		}
	}
}

func initLeapers() {
	knightSteps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := A1; sq <= H8; sq++ {
		for _, st := range knightSteps {
			f, r := sq.File()+st[0], sq.Rank()+st[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				knightAttacks[sq] |= NewSquare(f, r).BB()
			}
		}
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				f, r := sq.File()+df, sq.Rank()+dr
				if f >= 0 && f < 8 && r >= 0 && r < 8 {
					kingAttacks[sq] |= NewSquare(f, r).BB()
				}
			}
		}
		bb := sq.BB()
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initBetween() {
	for from := A1; from <= H8; from++ {
		for dir := 0; dir < 8; dir++ {
			ray := rayAttacks[dir][from]
			for bb := ray; bb != 0; {
				to := bb.PopLSB()
				betweenBB[from][to] = ray &^ rayAttacks[dir][to] &^ to.BB()
			}
		}
	}
}

// Between returns the squares strictly between two aligned squares, or
// empty if they do not share a rank, file, or diagonal.
func Between(a, b Square) Bitboard {
	return betweenBB[a][b]
}

// rayAttack walks one ray and cuts it at the first blocker.
func rayAttack(dir int, sq Square, occ Bitboard) Bitboard {
	attacks := rayAttacks[dir][sq]
	blockers := attacks & occ
	if blockers == 0 {
		return attacks
	}
	var first Square
	if dir < dirSouth {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return attacks &^ rayAttacks[dir][first]
}

// BishopAttacks returns diagonal attacks from sq given the occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(dirNorthEast, sq, occ) | rayAttack(dirNorthWest, sq, occ) |
		rayAttack(dirSouthEast, sq, occ) | rayAttack(dirSouthWest, sq, occ)
}

// RookAttacks returns orthogonal attacks from sq given the occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(dirNorth, sq, occ) | rayAttack(dirSouth, sq, occ) |
		rayAttack(dirEast, sq, occ) | rayAttack(dirWest, sq, occ)
}

// QueenAttacks returns combined rook and bishop attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }
