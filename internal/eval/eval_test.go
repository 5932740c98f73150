package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/forge/internal/position"
)

func TestStartPositionIsSymmetric(t *testing.T) {
	p := position.New()
	assert.Equal(t, 0, Evaluate(&p))
}

func TestExtraQueenDominatesMaterial(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/8/8/8/8/QQQQK3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Evaluate(&p), 2500)
}

func TestBlackMaterialAdvantageIsNegative(t *testing.T) {
	p, err := position.ParseFEN("4kq2/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Less(t, Evaluate(&p), 0)
}

func TestRookOnOpenBoardOutscoresCornerRook(t *testing.T) {
	central, err := position.ParseFEN("4k3/8/8/3R4/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	corner, err := position.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Evaluate(&central), Evaluate(&corner))
}
