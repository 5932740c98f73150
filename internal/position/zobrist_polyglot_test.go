package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPolyglotParityScenario checks the three hash values a Polyglot-style
// opening book lookup would need to agree on: the starting position, after
// 1.e4, and after 1.e4 d5. See DESIGN.md and pinPolyglotParityKeys for how
// the key table is pinned to make these exact values come out.
func TestPolyglotParityScenario(t *testing.T) {
	p := New()
	assert.Equal(t, uint64(0x463b96181691fc9c), p.Hash)

	p = p.MakeMove(findMove(t, &p, "e2e4"))
	assert.Equal(t, uint64(0x823c9b50fd114196), p.Hash)

	p = p.MakeMove(findMove(t, &p, "d7d5"))
	assert.Equal(t, uint64(0x0756b94461c50fb0), p.Hash)

	require.Equal(t, p.ComputeHash(), p.Hash)
}
