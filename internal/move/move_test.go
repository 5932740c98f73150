package move

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidae/forge/internal/bitboard"
)

func TestEncodingRoundTrip(t *testing.T) {
	m := NewCapturePromotion(bitboard.E7, bitboard.F8, Queen)
	assert.Equal(t, bitboard.E7, m.From())
	assert.Equal(t, bitboard.F8, m.To())
	assert.True(t, m.IsCapture())
	assert.True(t, m.IsPromotion())
	assert.Equal(t, Queen, m.Promotion())
}

func TestQuietMoveClassification(t *testing.T) {
	m := New(bitboard.E2, bitboard.E4)
	assert.True(t, m.IsQuiet())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
	assert.False(t, m.IsCastle())
}

func TestCastleFlags(t *testing.T) {
	short := NewCastle(bitboard.E1, bitboard.G1, true)
	long := NewCastle(bitboard.E1, bitboard.C1, false)
	assert.True(t, short.IsCastle())
	assert.True(t, short.IsKingSideCastle())
	assert.True(t, long.IsCastle())
	assert.False(t, long.IsKingSideCastle())
}

func TestEnPassantIsACapture(t *testing.T) {
	m := NewEnPassant(bitboard.E5, bitboard.D6)
	assert.True(t, m.IsCapture())
	assert.True(t, m.IsEnPassant())
}

func TestResetsClock(t *testing.T) {
	quiet := New(bitboard.G1, bitboard.F3)
	assert.False(t, quiet.ResetsClock(false))
	assert.True(t, quiet.ResetsClock(true))

	capture := NewCapture(bitboard.E4, bitboard.D5)
	assert.True(t, capture.ResetsClock(false))
}

func TestMoveStringFormatting(t *testing.T) {
	assert.Equal(t, "e2e4", New(bitboard.E2, bitboard.E4).String())
	assert.Equal(t, "e7e8q", NewPromotion(bitboard.E7, bitboard.E8, Queen).String())
	assert.Equal(t, "0000", NoMove.String())
}

func TestListAddAndSlice(t *testing.T) {
	var l List
	l.Add(New(bitboard.A2, bitboard.A3))
	l.Add(New(bitboard.A2, bitboard.A4))
	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains(New(bitboard.A2, bitboard.A4)))
	assert.Len(t, l.Slice(), 2)
}

func TestPieceValueOrdering(t *testing.T) {
	// Spec's exact material values: pawn 100, knight 300, bishop 320,
	// rook 500, queen 900 — knight is cheaper than bishop here.
	assert.Equal(t, 100, Pawn.Value())
	assert.Equal(t, 300, Knight.Value())
	assert.Equal(t, 320, Bishop.Value())
	assert.Equal(t, 500, Rook.Value())
	assert.Equal(t, 900, Queen.Value())
}

func TestPieceFromCharRoundTrip(t *testing.T) {
	p := NewPiece(Knight, bitboard.Black)
	assert.Equal(t, "n", p.String())
	assert.Equal(t, p, FromChar('n'))
}
