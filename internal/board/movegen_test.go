package board

import "testing"

func TestStartPositionMoves(t *testing.T) {
	pos := NewPosition()
	moves := pos.GenerateLegalMoves()

	if moves.Len() != 20 {
		t.Errorf("start position: want 20 legal moves, got %d", moves.Len())
		for i := 0; i < moves.Len(); i++ {
			t.Log("  ", moves.Get(i))
		}
	}
}

func TestLegalMovesLeaveKingSafe(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		us := pos.SideToMove
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			if pos.IsSquareAttacked(pos.KingSquare(us), us.Other()) {
				t.Errorf("%s: move %s leaves own king attacked", fen, m)
			}
			pos.UnmakeMove(m, undo)
		}
	}
}

func TestPromotionEnumeration(t *testing.T) {
	pos, err := ParseFEN("8/4P3/8/8/8/8/8/k1K5 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := pos.GenerateLegalMoves()
	promos := map[PieceType]bool{}
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsPromotion() {
			promos[m.Promotion()] = true
		}
	}

	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !promos[pt] {
			t.Errorf("missing promotion to %s", pt)
		}
	}
	if len(promos) != 4 {
		t.Errorf("want 4 promotion kinds, got %d", len(promos))
	}
}

func TestCastlingThroughCheck(t *testing.T) {
	// Black rook on f8 covers f1: White may not castle kingside, but the
	// queenside path is clear and unattacked.
	pos, err := ParseFEN("5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Contains(NewCastle(E1, G1)) {
		t.Error("kingside castle allowed through attacked f1")
	}
	if !moves.Contains(NewCastle(E1, C1)) {
		t.Error("queenside castle missing")
	}
}

func TestCastlingBlockedAndForfeited(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	moves := pos.GenerateLegalMoves()
	if moves.Contains(NewCastle(E1, C1)) {
		t.Error("queenside castle allowed over the b1 knight")
	}
	if !moves.Contains(NewCastle(E1, G1)) {
		t.Error("kingside castle missing")
	}

	// Moving the h-rook forfeits the kingside right.
	undo := pos.MakeMove(NewMove(H1, G1))
	if pos.CastlingRights&WhiteKingside != 0 {
		t.Error("kingside right not forfeited after Rh1-g1")
	}
	pos.UnmakeMove(NewMove(H1, G1), undo)
	if pos.CastlingRights&WhiteKingside == 0 {
		t.Error("kingside right not restored after unmake")
	}
}

func TestEnPassant(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/5p2/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	// e2-e4 gives Black the en-passant capture f4xe3.
	if err := applyUCI(pos, "e2e4"); err != nil {
		t.Fatal(err)
	}
	if pos.EnPassant != E3 {
		t.Fatalf("en-passant target: want e3, got %s", pos.EnPassant)
	}

	moves := pos.GenerateLegalMoves()
	ep := NewEnPassant(F4, E3)
	if !moves.Contains(ep) {
		t.Fatal("f4xe3 en passant missing")
	}

	undo := pos.MakeMove(ep)
	if pos.PieceAt(E4) != NoPiece {
		t.Error("captured pawn still on e4 after en passant")
	}
	if pos.PieceAt(E3) != BlackPawn {
		t.Error("capturing pawn not on e3")
	}
	pos.UnmakeMove(ep, undo)
	if pos.PieceAt(E4) != WhitePawn || pos.PieceAt(F4) != BlackPawn {
		t.Error("en passant unmake did not restore pawns")
	}
}

func TestEnPassantPinned(t *testing.T) {
	// Capturing en passant would expose the black king to the h5 rook.
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Contains(NewEnPassant(E4, D3)) {
		t.Error("en passant allowed despite exposing the king")
	}
}

func applyUCI(pos *Position, uci string) error {
	m, err := ParseMove(pos, uci)
	if err != nil {
		return err
	}
	pos.MakeMove(m)
	return nil
}
