// Package book implements the opening book: a read-only map from position
// fingerprints to weighted candidate moves, stored in the Polyglot binary
// format (16-byte big-endian records).
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"

	"golang.org/x/exp/slices"

	"github.com/hailam/chesskit/internal/board"
)

// Entry is one stored candidate for a position.
type Entry struct {
	Move   uint16 // Polyglot move encoding
	Weight uint16
	Learn  uint32
}

const recordSize = 16

// Book holds the loaded entries. Immutable after load; safe to share
// across concurrent searches without locking.
type Book struct {
	entries map[uint64][]Entry
}

// Load reads a Polyglot book file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses Polyglot records from r until EOF. Entries for the
// same key end up sorted by descending weight.
func LoadReader(r io.Reader) (*Book, error) {
	b := &Book{entries: make(map[uint64][]Entry)}

	var rec [recordSize]byte
	for {
		_, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read book record: %w", err)
		}
		key := binary.BigEndian.Uint64(rec[0:8])
		b.entries[key] = append(b.entries[key], Entry{
			Move:   binary.BigEndian.Uint16(rec[8:10]),
			Weight: binary.BigEndian.Uint16(rec[10:12]),
			Learn:  binary.BigEndian.Uint32(rec[12:16]),
		})
	}

	for key := range b.entries {
		slices.SortStableFunc(b.entries[key], func(a, c Entry) int {
			return int(c.Weight) - int(a.Weight)
		})
	}
	return b, nil
}

// Size returns the total number of entries.
func (b *Book) Size() int {
	n := 0
	for _, es := range b.entries {
		n += len(es)
	}
	return n
}

// WeightedMove is a verified book candidate.
type WeightedMove struct {
	Move   board.Move
	Weight uint16
}

// ProbeAll returns every stored candidate for the position that decodes
// to a legal move, ordered by descending weight.
func (b *Book) ProbeAll(pos *board.Position) []WeightedMove {
	entries := b.entries[pos.PolyglotHash()]
	if len(entries) == 0 {
		return nil
	}

	legal := pos.GenerateLegalMoves()
	var out []WeightedMove
	for _, e := range entries {
		if m, ok := decodeMove(e.Move, legal); ok {
			out = append(out, WeightedMove{Move: m, Weight: e.Weight})
		}
	}
	return out
}

// ProbeBest returns the highest-weight candidate. Deterministic.
func (b *Book) ProbeBest(pos *board.Position) (board.Move, bool) {
	moves := b.ProbeAll(pos)
	if len(moves) == 0 {
		return board.NoMove, false
	}
	return moves[0].Move, true
}

// Probe picks a candidate at random, weighted by the stored weights, so
// repeated games vary their openings. Deterministic for a fixed rng seed.
func (b *Book) Probe(pos *board.Position, rng *rand.Rand) (board.Move, bool) {
	moves := b.ProbeAll(pos)
	if len(moves) == 0 {
		return board.NoMove, false
	}

	total := 0
	for _, wm := range moves {
		w := int(wm.Weight)
		if w == 0 {
			w = 1
		}
		total += w
	}

	pick := rng.Intn(total)
	for _, wm := range moves {
		w := int(wm.Weight)
		if w == 0 {
			w = 1
		}
		pick -= w
		if pick < 0 {
			return wm.Move, true
		}
	}
	return moves[0].Move, true
}

// decodeMove converts a Polyglot move field to our representation by
// matching it against the position's legal moves. Polyglot encodes
// castling as the king capturing its own rook.
func decodeMove(enc uint16, legal *board.MoveList) (board.Move, bool) {
	toFile := int(enc & 7)
	toRank := int(enc >> 3 & 7)
	fromFile := int(enc >> 6 & 7)
	fromRank := int(enc >> 9 & 7)
	promo := int(enc >> 12 & 7)

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	// King-takes-rook castling notation.
	switch {
	case from == board.E1 && to == board.H1 && legal.Contains(board.NewCastle(board.E1, board.G1)):
		return board.NewCastle(board.E1, board.G1), true
	case from == board.E1 && to == board.A1 && legal.Contains(board.NewCastle(board.E1, board.C1)):
		return board.NewCastle(board.E1, board.C1), true
	case from == board.E8 && to == board.H8 && legal.Contains(board.NewCastle(board.E8, board.G8)):
		return board.NewCastle(board.E8, board.G8), true
	case from == board.E8 && to == board.A8 && legal.Contains(board.NewCastle(board.E8, board.C8)):
		return board.NewCastle(board.E8, board.C8), true
	}

	var promoType board.PieceType = board.NoPieceType
	if promo >= 1 && promo <= 4 {
		promoType = board.PieceType(promo) // 1=knight .. 4=queen
	}

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() != (promoType != board.NoPieceType) {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promoType {
			continue
		}
		return m, true
	}
	return board.NoMove, false
}

// EncodeMove converts a move to the Polyglot encoding. Castling becomes
// the king-takes-rook form the format expects.
func EncodeMove(m board.Move) uint16 {
	from, to := m.From(), m.To()

	if m.IsCastle() {
		if m.IsKingsideCastle() {
			to = board.NewSquare(7, to.Rank())
		} else {
			to = board.NewSquare(0, to.Rank())
		}
	}

	enc := uint16(to.File()) | uint16(to.Rank())<<3 |
		uint16(from.File())<<6 | uint16(from.Rank())<<9
	if m.IsPromotion() {
		enc |= uint16(m.Promotion()) << 12 // Knight=1 .. Queen=4
	}
	return enc
}
