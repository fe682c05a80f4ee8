package board

import "fmt"

// Square indexes the board 0..63, A1=0, B1=1, ..., H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare builds a square from file and rank (both 0..7).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file 0..7 (a..h).
func (s Square) File() int {
	return int(s) & 7
}

// Rank returns the rank 0..7 (rank 1 = 0).
func (s Square) Rank() int {
	return int(s) >> 3
}

// Flip mirrors the square vertically (a1 <-> a8).
func (s Square) Flip() Square {
	return s ^ 56
}

// RelativeRank returns the rank from the given color's point of view.
func (s Square) RelativeRank(c Color) int {
	if c == White {
		return s.Rank()
	}
	return 7 - s.Rank()
}

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare parses algebraic notation like "e4".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 || str[0] < 'a' || str[0] > 'h' || str[1] < '1' || str[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", str)
	}
	return NewSquare(int(str[0]-'a'), int(str[1]-'1')), nil
}
