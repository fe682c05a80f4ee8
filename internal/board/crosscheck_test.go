package board

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// dtPerft walks the same tree with an independent move generator.
func dtPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dtPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// TestPerftCrossCheck validates the move generator against a second,
// unrelated implementation on positions that stress castling, en passant,
// promotion, and pins.
func TestPerftCrossCheck(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		ref := dragontoothmg.ParseFen(fen)

		for depth := 1; depth <= 3; depth++ {
			want := dtPerft(&ref, depth)
			got := pos.Perft(depth)
			if got != want {
				t.Errorf("%s: perft(%d) disagrees: reference %d, ours %d", fen, depth, want, got)
			}
		}
	}
}
