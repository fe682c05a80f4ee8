package book

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/hailam/chesskit/internal/board"
)

// buildBook assembles an in-memory book keyed on live positions.
func buildBook(t *testing.T, add func(record func(pos *board.Position, uci string, weight uint16))) *Book {
	t.Helper()
	entries := make(map[uint64][]Entry)

	record := func(pos *board.Position, uci string, weight uint16) {
		m, err := board.ParseMove(pos, uci)
		if err != nil {
			t.Fatalf("record %s: %v", uci, err)
		}
		key := pos.PolyglotHash()
		entries[key] = append(entries[key], Entry{Move: EncodeMove(m), Weight: weight})
	}
	add(record)

	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatal(err)
	}
	b, err := LoadReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestProbeAfterE4(t *testing.T) {
	start := board.NewPosition()
	afterE4 := start.Copy()
	afterE4.MakeMove(board.NewMove(board.E2, board.E4))

	b := buildBook(t, func(record func(*board.Position, string, uint16)) {
		record(start, "e2e4", 120)
		record(start, "d2d4", 100)
		record(afterE4, "e7e5", 90)
		record(afterE4, "c7c5", 110)
	})

	if b.Size() != 4 {
		t.Fatalf("book size: want 4, got %d", b.Size())
	}

	// The position after 1.e4 must return a non-empty candidate set.
	candidates := b.ProbeAll(afterE4)
	if len(candidates) != 2 {
		t.Fatalf("after 1.e4: want 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Weight < candidates[1].Weight {
		t.Error("candidates not sorted by descending weight")
	}

	best, ok := b.ProbeBest(afterE4)
	if !ok || best.String() != "c7c5" {
		t.Errorf("ProbeBest after 1.e4: want c7c5, got %s (ok=%v)", best, ok)
	}

	// A position the book has never seen misses.
	afterNf3 := start.Copy()
	afterNf3.MakeMove(board.NewMove(board.G1, board.F3))
	if _, ok := b.ProbeBest(afterNf3); ok {
		t.Error("probe hit on a position not in the book")
	}
}

func TestProbeTranspositionSharesFingerprint(t *testing.T) {
	// 1.e4 e5 2.Nf3 and 1.Nf3 e5 2.e4 reach the same position; the book
	// key must not depend on move order.
	a := board.NewPosition()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := board.ParseMove(a, uci)
		if err != nil {
			t.Fatal(err)
		}
		a.MakeMove(m)
	}
	b := board.NewPosition()
	for _, uci := range []string{"g1f3", "e7e5", "e2e4"} {
		m, err := board.ParseMove(b, uci)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
	}

	if a.PolyglotHash() != b.PolyglotHash() {
		t.Errorf("transposed positions have different fingerprints: %016x != %016x",
			a.PolyglotHash(), b.PolyglotHash())
	}
}

func TestProbeWeightedDeterministic(t *testing.T) {
	start := board.NewPosition()
	b := buildBook(t, func(record func(*board.Position, string, uint16)) {
		record(start, "e2e4", 200)
		record(start, "d2d4", 100)
		record(start, "c2c4", 50)
	})

	pick := func(seed int64) board.Move {
		rng := rand.New(rand.NewSource(seed))
		m, ok := b.Probe(start, rng)
		if !ok {
			t.Fatal("probe miss on start position")
		}
		return m
	}

	// Same seed, same pick.
	if pick(7) != pick(7) {
		t.Error("probe not deterministic under a fixed seed")
	}

	// Every pick must be one of the stored candidates.
	valid := map[string]bool{"e2e4": true, "d2d4": true, "c2c4": true}
	for seed := int64(0); seed < 32; seed++ {
		if m := pick(seed); !valid[m.String()] {
			t.Fatalf("probe returned non-book move %s", m)
		}
	}
}

func TestCastlingEncoding(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/pppqpppp/8/8/8/8/PPPQPPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	b := buildBook(t, func(record func(*board.Position, string, uint16)) {
		record(pos, "e1g1", 100)
	})

	m, ok := b.ProbeBest(pos)
	if !ok {
		t.Fatal("castle entry not found")
	}
	if !m.IsCastle() || !m.IsKingsideCastle() {
		t.Errorf("want kingside castle, got %s (kind %d)", m, m.Kind())
	}
}

func TestStaleEntryFiltered(t *testing.T) {
	// An entry whose move is no longer legal in the probed position must
	// be dropped rather than returned.
	start := board.NewPosition()
	entries := map[uint64][]Entry{
		start.PolyglotHash(): {{Move: EncodeMove(board.NewMove(board.E4, board.E5)), Weight: 100}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatal(err)
	}
	b, err := LoadReader(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.ProbeAll(start); len(got) != 0 {
		t.Errorf("illegal book move survived probe: %v", got)
	}
}
