package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, bit 0 = a1, bit 63 = h8.
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// Center is the four central squares d4, e4, d5, e5.
const Center Bitboard = (FileD | FileE) & (Rank4 | Rank5)

// BB returns the bitboard with only the given square set.
func (s Square) BB() Bitboard {
	return 1 << s
}

// Has reports whether the square is set.
func (b Bitboard) Has(s Square) bool {
	return b&s.BB() != 0
}

// LSB returns the lowest set square. Undefined for an empty bitboard.
func (b Bitboard) LSB() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest set square. Undefined for an empty bitboard.
func (b Bitboard) MSB() Square {
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	s := b.LSB()
	*b &= *b - 1
	return s
}

// Count returns the number of set squares.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// Single-step shifts. East/west shifts mask the wrapping file.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return (b &^ FileH) << 1 }
func (b Bitboard) West() Bitboard  { return (b &^ FileA) >> 1 }

func (b Bitboard) NorthEast() Bitboard { return (b &^ FileH) << 9 }
func (b Bitboard) NorthWest() Bitboard { return (b &^ FileA) << 7 }
func (b Bitboard) SouthEast() Bitboard { return (b &^ FileH) >> 7 }
func (b Bitboard) SouthWest() Bitboard { return (b &^ FileA) >> 9 }

// FileBB returns the full file containing the square.
func FileBB(file int) Bitboard {
	return FileA << file
}

// String renders the bitboard rank 8 first, for test logs.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
