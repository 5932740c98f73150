package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareBBRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		assert.Equal(t, 1, bb.PopCount())
		assert.Equal(t, sq, bb.LSB())
	}
}

func TestPopLSBDrainsAllBits(t *testing.T) {
	bb := SquareBB(A1) | SquareBB(D4) | SquareBB(H8)
	var got []Square
	for bb != 0 {
		got = append(got, bb.PopLSB())
	}
	assert.Equal(t, []Square{A1, D4, H8}, got)
}

func TestParseSquareRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		parsed, ok := ParseSquare(sq.String())
		require.True(t, ok)
		assert.Equal(t, sq, parsed)
	}
}

func TestParseSquareRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "z9", "a0", "i1", "aa"} {
		_, ok := ParseSquare(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestRookAttacksMatchSlowPathAcrossOccupancies(t *testing.T) {
	occupancies := []Bitboard{
		Empty,
		SquareBB(D5),
		SquareBB(D1) | SquareBB(D8) | SquareBB(A4) | SquareBB(H4),
		Universe,
	}
	for sq := A1; sq <= H8; sq++ {
		for _, occ := range occupancies {
			assert.Equal(t, rookAttacksSlow(sq, occ), getRookAttacks(sq, occ), "square %s occ %016x", sq, uint64(occ))
		}
	}
}

func TestBishopAttacksMatchSlowPathAcrossOccupancies(t *testing.T) {
	occupancies := []Bitboard{
		Empty,
		SquareBB(D5),
		SquareBB(B3) | SquareBB(F3) | SquareBB(B7) | SquareBB(F7),
		Universe,
	}
	for sq := A1; sq <= H8; sq++ {
		for _, occ := range occupancies {
			assert.Equal(t, bishopAttacksSlow(sq, occ), getBishopAttacks(sq, occ), "square %s occ %016x", sq, uint64(occ))
		}
	}
}

func TestKnightAttacksStayOnBoard(t *testing.T) {
	// A knight on d4 reaches exactly 8 squares; a corner knight reaches 2.
	assert.Equal(t, 8, KnightAttacks(D4).PopCount())
	assert.Equal(t, 2, KnightAttacks(A1).PopCount())
}

func TestBetweenIsEmptyForAdjacentSquares(t *testing.T) {
	assert.Equal(t, Empty, Between(A1, B1))
	assert.Equal(t, Empty, Between(A1, B2))
}

func TestBetweenOnRankFileAndDiagonal(t *testing.T) {
	assert.Equal(t, SquareBB(B1)|SquareBB(C1)|SquareBB(D1), Between(A1, E1))
	assert.Equal(t, SquareBB(B2)|SquareBB(C3), Between(A1, D4))
	assert.Equal(t, Empty, Between(A1, B3)) // not aligned
}

func TestAlignedDetectsSharedLine(t *testing.T) {
	assert.True(t, Aligned(A1, H8, D4))
	assert.False(t, Aligned(A1, H8, D5))
}
