package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a position from Forsyth-Edwards Notation. Structural
// invariants (king count and so on) are not enforced here; callers that
// accept external input run Validate afterwards.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{EnPassant: NoSquare, FullmoveNumber: 1}
	for i := range p.Board {
		p.Board[i] = NoPiece
	}

	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			if file != 8 {
				return nil, fmt.Errorf("fen %q: rank %d has %d files", fen, rank+1, file)
			}
			rank--
			file = 0
			if rank < 0 {
				return nil, fmt.Errorf("fen %q: too many ranks", fen)
			}
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			pc := PieceFromChar(c)
			if pc == NoPiece || file > 7 {
				return nil, fmt.Errorf("fen %q: bad placement char %q", fen, c)
			}
			p.setPiece(pc, NewSquare(file, rank))
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("fen %q: incomplete placement", fen)
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= WhiteKingside
			case 'Q':
				p.CastlingRights |= WhiteQueenside
			case 'k':
				p.CastlingRights |= BlackKingside
			case 'q':
				p.CastlingRights |= BlackQueenside
			default:
				return nil, fmt.Errorf("fen %q: bad castling char %q", fen, fields[2][i])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen %q: %v", fen, err)
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("fen %q: bad halfmove clock %q", fen, fields[4])
		}
		p.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fen %q: bad fullmove number %q", fen, fields[5])
		}
		p.FullmoveNumber = n
	}

	p.Hash = p.ComputeHash()
	return p, nil
}

// FEN serializes the position back to Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastlingRights&WhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if p.CastlingRights&WhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if p.CastlingRights&BlackKingside != 0 {
			sb.WriteByte('k')
		}
		if p.CastlingRights&BlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	fmt.Fprintf(&sb, " %s %d %d", p.EnPassant, p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}
