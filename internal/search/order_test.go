package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/tt"
)

func TestOrderMovesPutsHashMoveFirst(t *testing.T) {
	p := position.New()
	legal := p.GenerateLegalMoves()
	hashMove := legal.Get(legal.Len() - 1)

	table := tt.New()
	orderMoves(&p, &legal, hashMove, table, -Infinity, Infinity)

	assert.Equal(t, hashMove, legal.Get(0))
}

func TestOrderMovesPrefersCapturesOverQuietMoves(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	legal := p.GenerateLegalMoves()
	table := tt.New()
	orderMoves(&p, &legal, move.NoMove, table, -Infinity, Infinity)

	first := legal.Get(0)
	assert.True(t, first.IsCapture(), "exd5 should sort ahead of quiet king moves")
}

// TestOrderMovesIgnoresStaleCutNodeOutsideWindow checks that a stored
// Cut-node verdict only earns priority ordering when it still refutes the
// window it's given: a beta far above the stored score shouldn't let a
// stale cutoff jump the queue.
func TestOrderMovesIgnoresStaleCutNodeOutsideWindow(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	legal := p.GenerateLegalMoves()
	require.Greater(t, legal.Len(), 1)

	var nonCapture move.Move
	for i := 0; i < legal.Len(); i++ {
		if !legal.Get(i).IsCapture() {
			nonCapture = legal.Get(i)
			break
		}
	}
	require.NotEqual(t, move.NoMove, nonCapture)

	child := p.MakeMove(nonCapture)
	table := tt.New()
	table.Store(tt.Entry{
		Hash:     child.Hash,
		Score:    10,
		NodeType: tt.CutNode,
		Depth:    1,
	})

	// From the parent's perspective this move scores -10, which refutes a
	// window with beta <= -10 but not a wide-open window.
	orderMoves(&p, &legal, move.NoMove, table, -Infinity, Infinity)
	assert.True(t, legal.Get(0).IsCapture(), "stale Cut verdict outside the window must not outrank the real capture")
}
