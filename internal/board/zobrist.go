package board

// Zobrist keys for incremental position hashing. Generated once at init
// from a fixed-seed xorshift64* generator so hashes are stable across runs.
var (
	zobristPiece    [12][64]uint64
	zobristCastling [16]uint64
	zobristEPFile   [8]uint64
	zobristSide     uint64
)

type zobristRNG struct {
	state uint64
}

func (r *zobristRNG) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := zobristRNG{state: 0x6C078965D1F0A3B7}
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rng.next()
	}
	zobristSide = rng.next()
}

// ComputeHash derives the Zobrist key from scratch. MakeMove maintains it
// incrementally; this is the reference used at parse time and in tests.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for sq := A1; sq <= H8; sq++ {
		if pc := p.PieceAt(sq); pc != NoPiece {
			hash ^= zobristPiece[pc][sq]
		}
	}
	hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		hash ^= zobristEPFile[p.EnPassant.File()]
	}
	if p.SideToMove == Black {
		hash ^= zobristSide
	}
	return hash
}
