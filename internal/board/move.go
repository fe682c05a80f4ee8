package board

import "fmt"

// Move packs a move into 16 bits:
// bits 0-5 from square, 6-11 to square, 12-13 promotion piece
// (0=knight .. 3=queen), 14-15 move kind.
type Move uint16

// NoMove is the zero value, never a real move (a1a1 cannot occur).
const NoMove Move = 0

// MoveKind distinguishes moves that need special make/unmake handling.
type MoveKind uint16

const (
	NormalMove MoveKind = iota
	PromotionMove
	EnPassantMove
	CastleMove
)

// NewMove builds a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion move. promo must be Knight..Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo-Knight)<<12 | Move(PromotionMove)<<14
}

// NewEnPassant builds an en-passant capture.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | Move(EnPassantMove)<<14
}

// NewCastle builds a castling move, encoded as the king's two-square step.
func NewCastle(from, to Square) Move {
	return NewMove(from, to) | Move(CastleMove)<<14
}

func (m Move) From() Square   { return Square(m & 0x3F) }
func (m Move) To() Square     { return Square(m >> 6 & 0x3F) }
func (m Move) Kind() MoveKind { return MoveKind(m >> 14) }

// Promotion returns the promotion piece type, or NoPieceType if the move
// is not a promotion.
func (m Move) Promotion() PieceType {
	if m.Kind() != PromotionMove {
		return NoPieceType
	}
	return PieceType(m>>12&3) + Knight
}

func (m Move) IsPromotion() bool { return m.Kind() == PromotionMove }
func (m Move) IsEnPassant() bool { return m.Kind() == EnPassantMove }
func (m Move) IsCastle() bool    { return m.Kind() == CastleMove }

// IsKingsideCastle reports whether the move is a short castle.
func (m Move) IsKingsideCastle() bool {
	return m.IsCastle() && m.To() > m.From()
}

// IsCapture reports whether the move captures, given the position it was
// generated from.
func (m Move) IsCapture(pos *Position) bool {
	return m.IsEnPassant() || pos.PieceAt(m.To()) != NoPiece
}

// IsDoublePush reports whether the move is a two-square pawn advance,
// given the position it was generated from.
func (m Move) IsDoublePush(pos *Position) bool {
	if pos.PieceAt(m.From()).Type() != Pawn {
		return false
	}
	diff := int(m.To()) - int(m.From())
	return diff == 16 || diff == -16
}

// String renders the move in coordinate notation (e2e4, e7e8q).
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string([]byte{"nbrq"[m.Promotion()-Knight]})
	}
	return s
}

// ParseMove parses coordinate notation against the given position's legal
// moves, so the kind bits come out right.
func ParseMove(pos *Position, str string) (Move, error) {
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.String() == str {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("no legal move %q", str)
}

// MoveList is a fixed-capacity move collection. 256 comfortably exceeds
// the known maximum of legal moves in any position (218).
type MoveList struct {
	moves [256]Move
	n     int
}

func (ml *MoveList) Add(m Move)        { ml.moves[ml.n] = m; ml.n++ }
func (ml *MoveList) Len() int          { return ml.n }
func (ml *MoveList) Get(i int) Move    { return ml.moves[i] }
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }
func (ml *MoveList) Clear()            { ml.n = 0 }

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Contains reports whether the list holds the exact move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice copies the list into a fresh slice.
func (ml *MoveList) Slice() []Move {
	out := make([]Move, ml.n)
	copy(out, ml.moves[:ml.n])
	return out
}
