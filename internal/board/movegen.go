package board

import "fmt"

// GenerateLegalMoves returns every legal move for the side to move.
// Pseudo-legal moves are generated per piece kind, then each is made on
// the board, the mover's king tested for attack, and unmade. Output order
// is deterministic for a given position.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)

	us := p.SideToMove
	legal := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if p.kingSafe(us) {
			legal.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return legal
}

// GenerateCaptures returns pseudo-legal captures and promotions, for
// quiescence search. Callers must still run the king-safety test.
func (p *Position) GenerateCaptures(ml *MoveList) {
	ml.Clear()
	p.generatePawnMoves(ml, true)
	p.generatePieceMoves(ml, p.Occupied[p.SideToMove.Other()])
}

func (p *Position) kingSafe(us Color) bool {
	ks := p.KingSquare(us)
	if ks == NoSquare {
		return true
	}
	return !p.IsSquareAttacked(ks, us.Other())
}

func (p *Position) generatePseudoLegal(ml *MoveList) {
	ml.Clear()
	p.generatePawnMoves(ml, false)
	p.generatePieceMoves(ml, ^p.Occupied[p.SideToMove])
	p.generateCastling(ml)
}

// generatePawnMoves adds pawn pushes, captures, promotions and en passant.
// With capturesOnly set, quiet non-promotion pushes are skipped.
func (p *Position) generatePawnMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	pawns := p.Pieces[us][Pawn]
	empty := ^p.All
	enemies := p.Occupied[them]

	var single, double, capWest, capEast Bitboard
	var up, upWest, upEast int
	if us == White {
		single = pawns.North() & empty
		double = (single & Rank3).North() & empty
		capWest = pawns.NorthWest() & enemies
		capEast = pawns.NorthEast() & enemies
		up, upWest, upEast = 8, 7, 9
	} else {
		single = pawns.South() & empty
		double = (single & Rank6).South() & empty
		capWest = pawns.SouthWest() & enemies
		capEast = pawns.SouthEast() & enemies
		up, upWest, upEast = -8, -9, -7
	}

	add := func(targets Bitboard, delta int) {
		for targets != 0 {
			to := targets.PopLSB()
			from := Square(int(to) - delta)
			if to.Rank() == 0 || to.Rank() == 7 {
				for pt := Queen; pt >= Knight; pt-- {
					ml.Add(NewPromotion(from, to, pt))
				}
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}

	if capturesOnly {
		// Keep promotions: a quiet push to the last rank changes material.
		add(single&(Rank1|Rank8), up)
	} else {
		add(single, up)
		for double != 0 {
			to := double.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*up), to))
		}
	}
	add(capWest, upWest)
	add(capEast, upEast)

	if p.EnPassant != NoSquare {
		for bb := pawnAttacks[them][p.EnPassant] & pawns; bb != 0; {
			ml.Add(NewEnPassant(bb.PopLSB(), p.EnPassant))
		}
	}
}

// generatePieceMoves adds knight, bishop, rook, queen and king moves whose
// destination falls inside targetMask.
func (p *Position) generatePieceMoves(ml *MoveList, targetMask Bitboard) {
	us := p.SideToMove
	occ := p.All

	addFrom := func(from Square, attacks Bitboard) {
		for targets := attacks & targetMask; targets != 0; {
			ml.Add(NewMove(from, targets.PopLSB()))
		}
	}

	for bb := p.Pieces[us][Knight]; bb != 0; {
		from := bb.PopLSB()
		addFrom(from, knightAttacks[from])
	}
	for bb := p.Pieces[us][Bishop]; bb != 0; {
		from := bb.PopLSB()
		addFrom(from, BishopAttacks(from, occ))
	}
	for bb := p.Pieces[us][Rook]; bb != 0; {
		from := bb.PopLSB()
		addFrom(from, RookAttacks(from, occ))
	}
	for bb := p.Pieces[us][Queen]; bb != 0; {
		from := bb.PopLSB()
		addFrom(from, QueenAttacks(from, occ))
	}
	if ks := p.KingSquare(us); ks != NoSquare {
		addFrom(ks, kingAttacks[ks])
	}
}

// generateCastling adds castle moves when the right is held, the path is
// clear, and the king neither starts on, passes through, nor lands on an
// attacked square.
func (p *Position) generateCastling(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	ks := p.KingSquare(us)
	if ks == NoSquare || p.IsSquareAttacked(ks, them) {
		return
	}

	type castle struct {
		right     CastlingRights
		from, to  Square
		emptyMask Bitboard
		transit   Square
	}
	var sides [2]castle
	if us == White {
		sides[0] = castle{WhiteKingside, E1, G1, F1.BB() | G1.BB(), F1}
		sides[1] = castle{WhiteQueenside, E1, C1, B1.BB() | C1.BB() | D1.BB(), D1}
	} else {
		sides[0] = castle{BlackKingside, E8, G8, F8.BB() | G8.BB(), F8}
		sides[1] = castle{BlackQueenside, E8, C8, B8.BB() | C8.BB() | D8.BB(), D8}
	}

	for _, c := range sides {
		if p.CastlingRights&c.right == 0 || ks != c.from {
			continue
		}
		if p.All&c.emptyMask != 0 {
			continue
		}
		if p.IsSquareAttacked(c.transit, them) || p.IsSquareAttacked(c.to, them) {
			continue
		}
		ml.Add(NewCastle(c.from, c.to))
	}
}

// HasLegalMoves reports whether any legal move exists, stopping at the
// first one found.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)

	us := p.SideToMove
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		ok := p.kingSafe(us)
		p.UnmakeMove(m, undo)
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports check with no legal reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports no legal reply without check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveDraw reports 100 plies without a capture or pawn move.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfmoveClock >= 100
}

// IsInsufficientMaterial reports positions no sequence of legal moves can
// ever mate: bare kings, a lone minor piece, or same-colored bishops only.
// Game-end classification does not consult this yet; it backs the draw
// extension point in the game layer.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 {
		return false
	}
	if p.Pieces[White][Rook]|p.Pieces[Black][Rook]|p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	knights := p.Pieces[White][Knight] | p.Pieces[Black][Knight]
	bishops := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop]
	minors := knights.Count() + bishops.Count()

	if minors <= 1 {
		return true
	}
	if knights == 0 {
		// Bishops all on one square color cannot deliver mate.
		const lightSquares = Bitboard(0x55AA55AA55AA55AA)
		return bishops&lightSquares == bishops || bishops&lightSquares == 0
	}
	return false
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide prints per-root-move subtree counts, for movegen debugging.
func (p *Position) PerftDivide(depth int) uint64 {
	moves := p.GenerateLegalMoves()
	var total uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes := p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
		fmt.Printf("%s: %d\n", m, nodes)
		total += nodes
	}
	return total
}
