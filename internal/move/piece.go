// Package move defines the packed move encoding and its fixed-capacity
// list container.
package move

import "github.com/corvidae/forge/internal/bitboard"

// PieceType is a chess piece kind, independent of color.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Value returns the material value in centipawns, per the evaluation design
// (pawn 100, knight 300, bishop 320, rook 500, queen 900, king 0).
func (pt PieceType) Value() int {
	switch pt {
	case Pawn:
		return 100
	case Knight:
		return 300
	case Bishop:
		return 320
	case Rook:
		return 500
	case Queen:
		return 900
	default:
		return 0
	}
}

// Piece packs a PieceType and bitboard.Color into a single byte: pieceType + color*6.
type Piece uint8

const NoPiece Piece = 12

func NewPiece(pt PieceType, c bitboard.Color) Piece {
	return Piece(int(pt) + int(c)*6)
}

func (p Piece) Type() PieceType    { return PieceType(int(p) % 6) }
func (p Piece) Color() bitboard.Color { return bitboard.Color(int(p) / 6) }

// String renders the FEN piece letter (uppercase white, lowercase black).
func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	letters := "PNBRQKpnbrqk"
	idx := int(p.Color())*6 + int(p.Type())
	return string(letters[idx])
}

// FromChar parses a FEN piece letter.
func FromChar(c byte) Piece {
	switch c {
	case 'P':
		return NewPiece(Pawn, bitboard.White)
	case 'N':
		return NewPiece(Knight, bitboard.White)
	case 'B':
		return NewPiece(Bishop, bitboard.White)
	case 'R':
		return NewPiece(Rook, bitboard.White)
	case 'Q':
		return NewPiece(Queen, bitboard.White)
	case 'K':
		return NewPiece(King, bitboard.White)
	case 'p':
		return NewPiece(Pawn, bitboard.Black)
	case 'n':
		return NewPiece(Knight, bitboard.Black)
	case 'b':
		return NewPiece(Bishop, bitboard.Black)
	case 'r':
		return NewPiece(Rook, bitboard.Black)
	case 'q':
		return NewPiece(Queen, bitboard.Black)
	case 'k':
		return NewPiece(King, bitboard.Black)
	default:
		return NoPiece
	}
}
