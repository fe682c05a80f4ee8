package board

// Book fingerprint keys, separate from the search Zobrist schedule so the
// transposition table and the opening book can never share collisions.
// The schedule is derived from a fixed seed; book files must be produced
// by a tool using the same schedule (cmd/bookgen does).
var (
	polyglotPiece    [12][64]uint64
	polyglotCastling [4]uint64
	polyglotEPFile   [8]uint64
	polyglotSide     uint64
)

func init() {
	rng := zobristRNG{state: 0x37B4A4B3F0D1C0D0}
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPiece[p][sq] = rng.next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = rng.next()
	}
	for i := range polyglotEPFile {
		polyglotEPFile[i] = rng.next()
	}
	polyglotSide = rng.next()
}

// PolyglotHash computes the opening-book fingerprint: piece placement,
// castling rights, side to move, and the en-passant file only when a pawn
// of the side to move can actually capture. Positions reached by different
// move orders therefore share a fingerprint, which is what book lookup
// wants.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	for sq := A1; sq <= H8; sq++ {
		if pc := p.Board[sq]; pc != NoPiece {
			hash ^= polyglotPiece[pc][sq]
		}
	}

	if p.CastlingRights&WhiteKingside != 0 {
		hash ^= polyglotCastling[0]
	}
	if p.CastlingRights&WhiteQueenside != 0 {
		hash ^= polyglotCastling[1]
	}
	if p.CastlingRights&BlackKingside != 0 {
		hash ^= polyglotCastling[2]
	}
	if p.CastlingRights&BlackQueenside != 0 {
		hash ^= polyglotCastling[3]
	}

	if ep := p.EnPassant; ep != NoSquare {
		capturers := pawnAttacks[p.SideToMove.Other()][ep] & p.Pieces[p.SideToMove][Pawn]
		if capturers != 0 {
			hash ^= polyglotEPFile[ep.File()]
		}
	}

	if p.SideToMove == White {
		hash ^= polyglotSide
	}
	return hash
}
