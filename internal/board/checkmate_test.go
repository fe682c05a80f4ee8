package board

import "testing"

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := applyUCI(pos, uci); err != nil {
			t.Fatalf("%s: %v", uci, err)
		}
	}

	t.Log("\n" + pos.String())
	if !pos.InCheck() {
		t.Error("white not in check after Qh4")
	}
	if pos.HasLegalMoves() {
		t.Error("white has legal moves in fool's mate")
	}
	if !pos.IsCheckmate() {
		t.Error("fool's mate not detected as checkmate")
	}
}

func TestBackRankMate(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsCheckmate() {
		t.Error("back rank mate not detected")
	}
	if pos.IsStalemate() {
		t.Error("mate misreported as stalemate")
	}
}

func TestKingCanCaptureChecker(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.IsCheckmate() {
		t.Error("checkmate reported though Kxg8 escapes")
	}
	moves := pos.GenerateLegalMoves()
	if !moves.Contains(NewMove(H8, G8)) {
		t.Error("Kxg8 missing from legal moves")
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.InCheck() {
		t.Error("stalemated king reported in check")
	}
	if !pos.IsStalemate() {
		t.Error("stalemate not detected")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate misreported as checkmate")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"8/8/4k3/8/8/3K4/8/8 w - - 0 1", true},           // K vs K
		{"8/8/4k3/8/8/3KB3/8/8 w - - 0 1", true},          // K+B vs K
		{"8/8/4k3/8/8/3KN3/8/8 w - - 0 1", true},          // K+N vs K
		{"8/8/1b2k3/8/8/3KB3/8/8 w - - 0 1", true},        // same-color bishops
		{"8/8/2b1k3/8/8/3KB3/8/8 w - - 0 1", false},       // opposite-color bishops
		{"8/8/4k3/8/8/3KP3/8/8 w - - 0 1", false},         // pawn can promote
		{"8/8/4k3/8/8/3KR3/8/8 w - - 0 1", false},         // rook mates
		{"8/8/4k3/8/8/2NKN3/8/8 w - - 0 1", false},        // two knights
		{"2b5/8/4k3/8/8/3KB3/8/2B5 w - - 0 1", false},     // mixed-color bishops
	}

	for _, tc := range cases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := pos.IsInsufficientMaterial(); got != tc.want {
			t.Errorf("%s: IsInsufficientMaterial = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
