package position

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFENRejectsTooFewFields(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w")
	assert.True(t, errors.Is(err, ErrMissingParts))
}

func TestParseFENRejectsBadRankCount(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidRankFile))
}

func TestParseFENRejectsOverfullRank(t *testing.T) {
	_, err := ParseFEN("rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidRankFile))
}

func TestParseFENRejectsInvalidPieceCharacter(t *testing.T) {
	_, err := ParseFEN("xnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidCharacter))
}

func TestParseFENRejectsBadSideToMove(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidSideToMove))
}

func TestParseFENRejectsBadCastlingRights(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZ - 0 1")
	assert.True(t, errors.Is(err, ErrInvalidCastlingRights))
}

func TestParseFENRejectsBadEnPassantSquare(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1")
	assert.True(t, errors.Is(err, ErrInvalidEnPassant))
}

func TestParseFENRejectsBadHalfmoveClock(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - notanumber 1")
	assert.True(t, errors.Is(err, ErrInvalidHalfmoveClock))
}

func TestParseFENRejectsBadFullmoveNumber(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 notanumber")
	assert.True(t, errors.Is(err, ErrInvalidFullmoveNumber))
}

func TestParseFENAcceptsMinimalFourFieldForm(t *testing.T) {
	minimal := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	p, err := ParseFEN(minimal)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.FullmoveNumber)
	assert.Equal(t, 0, p.HalfmoveClock)
}
