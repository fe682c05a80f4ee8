// Package board implements the chess position model: bitboard state,
// legal move generation, and game-end detection primitives.
package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a bitmask of the four independent castling permissions.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
	AllCastling = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingMask[sq] holds the rights forfeited when any move touches sq.
var castlingMask [64]CastlingRights

func init() {
	castlingMask[E1] = WhiteKingside | WhiteQueenside
	castlingMask[H1] = WhiteKingside
	castlingMask[A1] = WhiteQueenside
	castlingMask[E8] = BlackKingside | BlackQueenside
	castlingMask[H8] = BlackKingside
	castlingMask[A8] = BlackQueenside
}

// Position is the complete game state for one ply. It is a plain value:
// Copy gives an independent position, and MakeMove/UnmakeMove give an
// exact apply/undo pair for search.
type Position struct {
	Pieces   [2][6]Bitboard // [color][piece type]
	Occupied [2]Bitboard    // [color]
	All      Bitboard
	Board    [64]Piece // mailbox mirror of the bitboards

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // capture target square, NoSquare if none
	HalfmoveClock  int    // plies since last capture or pawn move
	FullmoveNumber int

	Hash uint64 // Zobrist key, maintained incrementally
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: bad start FEN: " + err.Error())
	}
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// KingSquare returns c's king square, or NoSquare if the king is absent
// (only possible in hand-built positions).
func (p *Position) KingSquare(c Color) Square {
	bb := p.Pieces[c][King]
	if bb == 0 {
		return NoSquare
	}
	return bb.LSB()
}

func (p *Position) setPiece(pc Piece, sq Square) {
	bb := sq.BB()
	p.Pieces[pc.Color()][pc.Type()] |= bb
	p.Occupied[pc.Color()] |= bb
	p.All |= bb
	p.Board[sq] = pc
	p.Hash ^= zobristPiece[pc][sq]
}

func (p *Position) removePiece(sq Square) {
	pc := p.Board[sq]
	bb := sq.BB()
	p.Pieces[pc.Color()][pc.Type()] &^= bb
	p.Occupied[pc.Color()] &^= bb
	p.All &^= bb
	p.Board[sq] = NoPiece
	p.Hash ^= zobristPiece[pc][sq]
}

func (p *Position) movePiece(from, to Square) {
	pc := p.Board[from]
	p.removePiece(from)
	p.setPiece(pc, to)
}

// UndoInfo holds the irreversible state MakeMove destroys, so UnmakeMove
// can restore the position exactly.
type UndoInfo struct {
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	Hash           uint64
}

// MakeMove applies m and returns the undo record. It performs no legality
// checking; callers pass only moves generated for this exact position.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Captured:       NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfmoveClock:  p.HalfmoveClock,
		Hash:           p.Hash,
	}

	us := p.SideToMove
	from, to := m.From(), m.To()
	moving := p.Board[from]

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEPFile[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}
	p.HalfmoveClock++

	switch m.Kind() {
	case CastleMove:
		p.movePiece(from, to)
		if to > from { // kingside: h-rook to the king's left
			p.movePiece(to+1, to-1)
		} else { // queenside: a-rook to the king's right
			p.movePiece(to-2, to+1)
		}

	case EnPassantMove:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.Captured = p.Board[capSq]
		p.removePiece(capSq)
		p.movePiece(from, to)
		p.HalfmoveClock = 0

	default:
		if victim := p.Board[to]; victim != NoPiece {
			undo.Captured = victim
			p.removePiece(to)
			p.HalfmoveClock = 0
		}
		p.movePiece(from, to)
		if moving.Type() == Pawn {
			p.HalfmoveClock = 0
			if m.IsPromotion() {
				p.removePiece(to)
				p.setPiece(MakePiece(us, m.Promotion()), to)
			} else if diff := int(to) - int(from); diff == 16 || diff == -16 {
				ep := Square((int(from) + int(to)) / 2)
				p.EnPassant = ep
				p.Hash ^= zobristEPFile[ep.File()]
			}
		}
	}

	if mask := castlingMask[from] | castlingMask[to]; p.CastlingRights&mask != 0 {
		p.Hash ^= zobristCastling[p.CastlingRights]
		p.CastlingRights &^= mask
		p.Hash ^= zobristCastling[p.CastlingRights]
	}

	if us == Black {
		p.FullmoveNumber++
	}
	p.SideToMove = us.Other()
	p.Hash ^= zobristSide

	return undo
}

// UnmakeMove reverses the most recent MakeMove(m).
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	from, to := m.From(), m.To()

	switch m.Kind() {
	case CastleMove:
		if to > from {
			p.movePiece(to-1, to+1)
		} else {
			p.movePiece(to+1, to-2)
		}
		p.movePiece(to, from)

	case EnPassantMove:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.movePiece(to, from)
		p.setPiece(undo.Captured, capSq)

	case PromotionMove:
		p.removePiece(to)
		p.setPiece(MakePiece(us, Pawn), from)
		if undo.Captured != NoPiece {
			p.setPiece(undo.Captured, to)
		}

	default:
		p.movePiece(to, from)
		if undo.Captured != NoPiece {
			p.setPiece(undo.Captured, to)
		}
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfmoveClock = undo.HalfmoveClock
	p.Hash = undo.Hash
	if us == Black {
		p.FullmoveNumber--
	}
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if pawnAttacks[by.Other()][sq]&p.Pieces[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&p.Pieces[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&p.Pieces[by][King] != 0 {
		return true
	}
	if BishopAttacks(sq, p.All)&(p.Pieces[by][Bishop]|p.Pieces[by][Queen]) != 0 {
		return true
	}
	return RookAttacks(sq, p.All)&(p.Pieces[by][Rook]|p.Pieces[by][Queen]) != 0
}

// AttackersTo returns all pieces of either color attacking sq under the
// given occupancy.
func (p *Position) AttackersTo(sq Square, occ Bitboard) Bitboard {
	return pawnAttacks[Black][sq]&p.Pieces[White][Pawn] |
		pawnAttacks[White][sq]&p.Pieces[Black][Pawn] |
		knightAttacks[sq]&(p.Pieces[White][Knight]|p.Pieces[Black][Knight]) |
		kingAttacks[sq]&(p.Pieces[White][King]|p.Pieces[Black][King]) |
		BishopAttacks(sq, occ)&(p.Pieces[White][Bishop]|p.Pieces[White][Queen]|p.Pieces[Black][Bishop]|p.Pieces[Black][Queen]) |
		RookAttacks(sq, occ)&(p.Pieces[White][Rook]|p.Pieces[White][Queen]|p.Pieces[Black][Rook]|p.Pieces[Black][Queen])
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	ks := p.KingSquare(p.SideToMove)
	if ks == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ks, p.SideToMove.Other())
}

// Validate checks structural invariants that legal play can never break.
// A failure means the position was built by hand or corrupted upstream.
func (p *Position) Validate() error {
	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].Count(); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	pawns := p.Pieces[White][Pawn] | p.Pieces[Black][Pawn]
	if pawns&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawn on back rank")
	}
	if p.Occupied[White]&p.Occupied[Black] != 0 {
		return fmt.Errorf("square occupied by both colors")
	}
	if p.All != p.Occupied[White]|p.Occupied[Black] {
		return fmt.Errorf("occupancy bitboards inconsistent")
	}
	return nil
}

// Mirror returns the position flipped vertically with colors swapped:
// white pieces become black pieces on mirrored squares, side to move and
// castling rights swap sides. Used to verify evaluation symmetry.
func (p *Position) Mirror() *Position {
	m := &Position{
		SideToMove:     p.SideToMove.Other(),
		EnPassant:      NoSquare,
		HalfmoveClock:  p.HalfmoveClock,
		FullmoveNumber: p.FullmoveNumber,
	}
	for i := range m.Board {
		m.Board[i] = NoPiece
	}
	for sq := A1; sq <= H8; sq++ {
		if pc := p.Board[sq]; pc != NoPiece {
			m.setPiece(MakePiece(pc.Color().Other(), pc.Type()), sq.Flip())
		}
	}
	if p.CastlingRights&WhiteKingside != 0 {
		m.CastlingRights |= BlackKingside
	}
	if p.CastlingRights&WhiteQueenside != 0 {
		m.CastlingRights |= BlackQueenside
	}
	if p.CastlingRights&BlackKingside != 0 {
		m.CastlingRights |= WhiteKingside
	}
	if p.CastlingRights&BlackQueenside != 0 {
		m.CastlingRights |= WhiteQueenside
	}
	if p.EnPassant != NoSquare {
		m.EnPassant = p.EnPassant.Flip()
	}
	m.Hash = m.ComputeHash()
	return m
}

// String renders a diagram with rank 8 on top, for logs and the CLI.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.Board[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move", p.SideToMove)
	return sb.String()
}
