package search

import (
	"sort"

	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/tt"
)

// Priority classes, descending. Ties within a class are broken by the
// per-class scoring rule; the sort itself is stable so "remaining moves in
// generator order" falls out naturally from class 0.
const (
	classGenerator = iota
	classAllNode
	classCapture
	classCutNode
	classPVNode
	classHash
)

// orderMoves sorts list in place by descending priority class, probing the
// table (via the cheap copy-make successor) for the PV/Cut/All classes.
// alpha/beta are the current node's window: a stored Cut/All verdict only
// earns its priority class if, negated into the parent's perspective, it
// still refutes that window the same way it did when it was stored
// (Cut -> would still cause a beta cutoff, All -> would still fail low);
// otherwise the window has moved on since and the move falls through to
// ordinary capture/generator classification.
func orderMoves(pos *position.Position, list *move.List, ttMove move.Move, table *tt.Table, alpha, beta int) {
	n := list.Len()
	type scored struct {
		idx   int
		class int
		tie   int
	}
	entries := make([]scored, n)

	for i := 0; i < n; i++ {
		m := list.Get(i)
		entries[i] = scored{idx: i}

		if m == ttMove && ttMove != move.NoMove {
			entries[i].class = classHash
			continue
		}

		child := pos.MakeMove(m)
		if e, ok := table.Probe(child.Hash); ok {
			parentScore := -int(e.Score)
			switch e.NodeType {
			case tt.PVNode:
				entries[i].class = classPVNode
				continue
			case tt.CutNode:
				if parentScore >= beta {
					entries[i].class = classCutNode
					continue
				}
			case tt.AllNode:
				if parentScore <= alpha {
					entries[i].class = classAllNode
					continue
				}
			}
		}

		if m.IsCapture() {
			victim, attacker := captureValues(pos, m)
			entries[i].class = classCapture
			entries[i].tie = 10*victim - attacker
			continue
		}

		entries[i].class = classGenerator
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].class != entries[b].class {
			return entries[a].class > entries[b].class
		}
		return entries[a].tie > entries[b].tie
	})

	reordered := make([]move.Move, n)
	for i, e := range entries {
		reordered[i] = list.Get(e.idx)
	}
	for i := 0; i < n; i++ {
		list.Set(i, reordered[i])
	}
}

// captureValues returns (victim value, attacker value) for MVV-LVA scoring.
func captureValues(pos *position.Position, m move.Move) (victim, attacker int) {
	attackerPiece := pos.PieceAt(m.From())
	attacker = attackerPiece.Type().Value()
	if m.IsEnPassant() {
		victim = move.Pawn.Value()
		return
	}
	victimPiece := pos.PieceAt(m.To())
	victim = victimPiece.Type().Value()
	return
}
