// ChessKit - a terminal chess game and engine library
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hailam/chesskit/internal/board"
	"github.com/hailam/chesskit/internal/book"
	"github.com/hailam/chesskit/internal/engine"
	"github.com/hailam/chesskit/internal/game"
)

var (
	difficulty = flag.String("difficulty", "medium", "engine strength: easy, medium or hard")
	bookPath   = flag.String("book", "", "opening book file (Polyglot format)")
	startFEN   = flag.String("fen", "", "start from this FEN instead of the initial position")
	playBlack  = flag.Bool("black", false, "play the black pieces")
	seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
	perftDepth = flag.Int("perft", 0, "run a perft to this depth and exit")
)

func main() {
	flag.Parse()

	if *perftDepth > 0 {
		runPerft(*perftDepth, *startFEN)
		return
	}

	diff, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal(err)
	}

	opts := []game.Option{}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	} else {
		opts = append(opts, game.WithSeed(time.Now().UnixNano()))
	}

	if *bookPath != "" {
		b, err := book.Load(*bookPath)
		if err != nil {
			log.Fatalf("load book: %v", err)
		}
		log.Printf("opening book loaded: %d positions", b.Size())
		opts = append(opts, game.WithBook(b))
	}

	var g *game.Game
	if *startFEN != "" {
		g, err = game.NewGameFromFEN(*startFEN, opts...)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		g = game.NewGame(opts...)
	}

	humanSide := board.White
	if *playBlack {
		humanSide = board.Black
	}

	if err := play(g, humanSide, diff); err != nil {
		log.Fatal(err)
	}
}

func play(g *game.Game, humanSide board.Color, diff game.Difficulty) error {
	in := bufio.NewScanner(os.Stdin)
	fmt.Printf("playing %s against the %s engine; moves in algebraic (Nf3) or coordinate (g1f3) form\n",
		humanSide, diff)

	for {
		fmt.Println()
		fmt.Println(g.Position())

		status := g.Classify()
		if status.Terminal() {
			fmt.Println(g.Outcome())
			return nil
		}
		if status == game.Check {
			fmt.Println("check!")
		}

		if g.Position().SideToMove == humanSide {
			if done, err := humanTurn(g, in); done || err != nil {
				return err
			}
			continue
		}

		move, err := g.ChooseMove(diff)
		if err != nil {
			return err
		}
		san := move.ToSAN(g.Position())
		if err := g.Apply(move); err != nil {
			return err
		}
		fmt.Printf("engine plays %s\n", san)
	}
}

// humanTurn reads one command. Returns done=true when the player quits or
// input ends.
func humanTurn(g *game.Game, in *bufio.Scanner) (bool, error) {
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return true, in.Err()
		}
		line := strings.TrimSpace(in.Text())

		switch line {
		case "":
			continue
		case "quit", "exit", "resign":
			fmt.Println("goodbye")
			return true, nil
		case "fen":
			fmt.Println(g.Position().FEN())
			continue
		case "moves":
			for _, m := range g.LegalMoves() {
				fmt.Printf("%s ", m.ToSAN(g.Position()))
			}
			fmt.Println()
			continue
		case "history":
			fmt.Println(strings.Join(g.History(), " "))
			continue
		case "hint":
			m, err := g.ChooseMove(game.Hard)
			if err != nil {
				return false, err
			}
			fmt.Printf("try %s\n", m.ToSAN(g.Position()))
			continue
		}

		move, err := board.ParseSAN(g.Position(), line)
		if err != nil {
			move, err = board.ParseMove(g.Position(), line)
		}
		if err != nil {
			fmt.Printf("don't understand %q (try 'moves', 'hint' or 'quit')\n", line)
			continue
		}
		if err := g.Apply(move); err != nil {
			fmt.Println(err)
			continue
		}
		return false, nil
	}
}

func runPerft(depth int, fen string) {
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	total := pos.PerftDivide(depth)
	elapsed := time.Since(start)
	fmt.Printf("\nperft(%d) = %d in %v (%.0f nodes/s)\n",
		depth, total, elapsed, float64(total)/elapsed.Seconds())
}
