package bitboard

import "fmt"

// Square is a board square, 0 = a1 .. 63 = h8 (file = index % 8, rank = index / 8).
type Square int8

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

// File returns 0 (a) through 7 (h).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns 0 (rank 1) through 7 (rank 8).
func (sq Square) Rank() int { return int(sq) >> 3 }

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// IsValid reports whether sq is a real board square.
func (sq Square) IsValid() bool { return sq >= A1 && sq <= H8 }

func (sq Square) String() string {
	if sq == NoSquare || !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(sq.File()), '1'+byte(sq.Rank()))
}

// ParseSquare parses an algebraic square like "e4". Returns NoSquare, false on
// malformed input.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, false
	}
	return NewSquare(file, rank), true
}
