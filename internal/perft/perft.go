// Package perft implements move-generator leaf-node counting, used to
// cross-check the legal move generator against known node counts.
package perft

import "github.com/corvidae/forge/internal/position"

// Count returns the number of leaf positions reachable in exactly depth
// plies. Since position.MakeMove is copy-make, there is no unmake step.
func Count(pos position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		child := pos.MakeMove(moves.Get(i))
		nodes += Count(child, depth-1)
	}
	return nodes
}

// Divide reports, per root move, the leaf-node count below it — the
// standard per-move breakdown used to isolate a move generator discrepancy
// against a reference count.
func Divide(pos position.Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth == 0 {
		return result
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		child := pos.MakeMove(m)
		result[m.String()] = Count(child, depth-1)
	}
	return result
}
