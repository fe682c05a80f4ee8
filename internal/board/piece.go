package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// Piece combines color and type: white pieces 0..5, black 6..11.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// MakePiece builds a piece from color and type.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(uint8(pt) + uint8(c)*6)
}

// Type returns the colorless kind.
func (p Piece) Type() PieceType {
	if p == NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the piece's side.
func (p Piece) Color() Color {
	return Color(p / 6)
}

var pieceChars = [13]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k', '.'}

func (p Piece) String() string {
	return string(pieceChars[p])
}

// PieceFromChar parses a FEN piece letter.
func PieceFromChar(c byte) Piece {
	for p := WhitePawn; p <= BlackKing; p++ {
		if pieceChars[p] == c {
			return p
		}
	}
	return NoPiece
}

var pieceTypeChars = [6]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "?"
	}
	return string(pieceTypeChars[pt])
}
