// bookgen compiles a Polyglot opening book from a PGN game collection.
//
// Each game's opening moves are replayed up to -plies half-moves; every
// (position, move) pair seen at least -min times becomes a book entry
// weighted by its frequency. The output loads with book.Load and is keyed
// by the same fingerprint schedule the engine probes with.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/notnil/chess"

	"github.com/hailam/chesskit/internal/board"
	"github.com/hailam/chesskit/internal/book"
)

var (
	pgnPath  = flag.String("pgn", "", "input PGN file (required)")
	outPath  = flag.String("out", "book.bin", "output book file")
	maxPlies = flag.Int("plies", 16, "half-moves to index per game")
	minCount = flag.Int("min", 2, "minimum occurrences for an entry")
)

func main() {
	flag.Parse()
	if *pgnPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*pgnPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	counts := make(map[uint64]map[uint16]uint32)
	games, skipped := 0, 0

	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		g := scanner.Next()
		if err := indexGame(g, *maxPlies, counts); err != nil {
			skipped++
			continue
		}
		games++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("scan pgn: %v", err)
	}

	entries := make(map[uint64][]book.Entry)
	kept := 0
	for key, moves := range counts {
		for raw, n := range moves {
			if int(n) < *minCount {
				continue
			}
			weight := n
			if weight > math.MaxUint16 {
				weight = math.MaxUint16
			}
			entries[key] = append(entries[key], book.Entry{
				Move:   raw,
				Weight: uint16(weight),
			})
			kept++
		}
	}

	if err := book.WriteFile(*outPath, entries); err != nil {
		log.Fatal(err)
	}
	log.Printf("indexed %d games (%d skipped): %d entries over %d positions -> %s",
		games, skipped, kept, len(entries), *outPath)
}

// indexGame replays one game on the engine's own board, counting each
// (fingerprint, move) pair along the way. Games whose moves do not
// replay cleanly are rejected whole.
func indexGame(g *chess.Game, maxPlies int, counts map[uint64]map[uint16]uint32) error {
	pos := board.NewPosition()

	for ply, cm := range g.Moves() {
		if ply >= maxPlies {
			break
		}
		m, err := board.ParseMove(pos, uciString(cm))
		if err != nil {
			return fmt.Errorf("ply %d: %w", ply, err)
		}

		key := pos.PolyglotHash()
		if counts[key] == nil {
			counts[key] = make(map[uint16]uint32)
		}
		counts[key][book.EncodeMove(m)]++

		pos.MakeMove(m)
	}
	return nil
}

// uciString renders a notnil/chess move in coordinate notation.
func uciString(m *chess.Move) string {
	var sb strings.Builder
	sb.WriteString(m.S1().String())
	sb.WriteString(m.S2().String())
	if m.Promo() != chess.NoPieceType {
		sb.WriteString(m.Promo().String())
	}
	return sb.String()
}
