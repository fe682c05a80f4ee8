package board

import (
	"fmt"
	"strings"
)

// ToSAN renders the move in Standard Algebraic Notation against the
// position it was generated from.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	switch {
	case m.IsCastle():
		if m.IsKingsideCastle() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	default:
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteString(pt.String())
			sb.WriteString(sanDisambiguation(pos, m, pt))
		}
		if m.IsCapture(pos) {
			if pt == Pawn {
				sb.WriteByte(byte('a' + from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion().String())
		}
	}

	// Check and mate suffixes need the successor position.
	undo := pos.MakeMove(m)
	if pos.InCheck() {
		if pos.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	pos.UnmakeMove(m, undo)

	return sb.String()
}

// sanDisambiguation returns the file/rank/square prefix needed when more
// than one piece of the same kind reaches the destination.
func sanDisambiguation(pos *Position, m Move, pt PieceType) string {
	from, to := m.From(), m.To()

	var rivals Bitboard
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		other := moves.Get(i)
		if other.To() == to && other.From() != from && pos.PieceAt(other.From()).Type() == pt {
			rivals |= other.From().BB()
		}
	}
	if rivals == 0 {
		return ""
	}
	if rivals&FileBB(from.File()) == 0 {
		return string([]byte{byte('a' + from.File())})
	}
	if rivals&(Rank1<<(8*from.Rank())) == 0 {
		return string([]byte{byte('1' + from.Rank())})
	}
	return from.String()
}

// ParseSAN finds the legal move whose SAN matches str. Check and mate
// suffixes are optional on input.
func ParseSAN(pos *Position, str string) (Move, error) {
	want := strings.TrimRight(str, "+#")
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if strings.TrimRight(m.ToSAN(pos), "+#") == want {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("no legal move matches %q", str)
}
