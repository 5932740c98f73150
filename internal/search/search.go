// Package search implements iterative-deepening alpha-beta search with
// quiescence extension, fail-soft semantics, and cooperative cancellation.
package search

import (
	"sync/atomic"

	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/eval"
	"github.com/corvidae/forge/internal/move"
	"github.com/corvidae/forge/internal/position"
	"github.com/corvidae/forge/internal/tt"
)

const (
	Infinity  = tt.Infinity
	MateScore = tt.MateScore
	MaxPly    = tt.MaxPly

	// Cancelled is the distinguished "MIN" sentinel every recursion frame
	// checks for and propagates under cooperative cancellation. It sits
	// well outside the [-Infinity, Infinity] range real scores occupy, so
	// it can never be confused with a legitimate evaluation.
	Cancelled = -32768

	queenValue = 900

	// repeatThresholdInSearch treats a position as drawn on its first
	// repeat while searching, stricter than the genuine threefold rule
	// applied at the root (see worker.rootRepeatThreshold).
	repeatThresholdInSearch = 2
)

// Searcher runs a single iterative-deepening search against one
// transposition table, driven by a shared stop flag.
type Searcher struct {
	tt   *tt.Table
	stop *atomic.Bool

	nodes uint64
	pv    [MaxPly][MaxPly]move.Move
	pvLen [MaxPly]int
}

func NewSearcher(table *tt.Table, stop *atomic.Bool) *Searcher {
	return &Searcher{tt: table, stop: stop}
}

func (s *Searcher) Nodes() uint64 { return s.nodes }

// SearchDepth runs a full root search to the given depth and returns the
// best move and score, or (NoMove, Cancelled) if interrupted.
func (s *Searcher) SearchDepth(pos position.Position, depth int) (move.Move, int) {
	s.pvLen[0] = 0
	score := s.negamax(pos, depth, 0, -Infinity, Infinity)
	if score == Cancelled {
		return move.NoMove, Cancelled
	}
	var best move.Move
	if s.pvLen[0] > 0 {
		best = s.pv[0][0]
	}
	return best, score
}

// PV returns the principal variation from the most recently completed search.
func (s *Searcher) PV() []move.Move {
	out := make([]move.Move, s.pvLen[0])
	copy(out, s.pv[0][:s.pvLen[0]])
	return out
}

func (s *Searcher) negamax(pos position.Position, depth, ply int, alpha, beta int) int {
	if s.stop.Load() {
		return Cancelled
	}
	s.nodes++
	s.pvLen[ply] = ply

	if ply > 0 && isDraw(&pos, repeatThresholdInSearch) {
		return 0
	}

	var ttMove move.Move
	if entry, found := s.tt.Probe(pos.Hash); found {
		ttMove = entry.Best
		if ply > 0 && int(entry.Depth) >= depth {
			score := tt.AdjustScoreFromTT(entry.Score, ply)
			switch entry.NodeType {
			case tt.PVNode:
				return score
			case tt.CutNode:
				if score >= beta {
					return score
				}
			case tt.AllNode:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta)
	}

	inCheck := pos.InCheck()
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		if inCheck {
			return -(MateScore - ply)
		}
		return 0
	}

	orderMoves(&pos, &legal, ttMove, s.tt, alpha, beta)

	originalAlpha := alpha
	bestScore := -Infinity - 1
	bestMove := move.NoMove

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		child := pos.MakeMove(m)

		raw := s.negamax(child, depth-1, ply+1, -beta, -alpha)
		if raw == Cancelled {
			return Cancelled
		}
		score := -raw

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pv[ply][ply] = m
				for j := ply + 1; j < s.pvLen[ply+1]; j++ {
					s.pv[ply][j] = s.pv[ply+1][j]
				}
				s.pvLen[ply] = s.pvLen[ply+1]
			}
		}

		if alpha >= beta {
			break
		}
	}

	var nodeType tt.NodeType
	switch {
	case bestScore >= beta:
		nodeType = tt.CutNode
	case bestScore > originalAlpha:
		nodeType = tt.PVNode
	default:
		nodeType = tt.AllNode
	}

	s.tt.Store(tt.Entry{
		Hash:          pos.Hash,
		Score:         tt.AdjustScoreToTT(bestScore, ply),
		Best:          bestMove,
		Depth:         int8(depth),
		HalfmoveClock: uint8(pos.HalfmoveClock),
		NodeType:      nodeType,
	})

	return bestScore
}

func (s *Searcher) quiescence(pos position.Position, ply, alpha, beta int) int {
	if s.stop.Load() {
		return Cancelled
	}
	s.nodes++

	if ply >= MaxPly {
		return relativeEval(&pos)
	}

	standPat := relativeEval(&pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	if standPat+queenValue < alpha {
		return alpha
	}

	inCheck := pos.InCheck()

	// Generate legal moves to detect terminal positions, so mate is never
	// missed inside quiescence.
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		if inCheck {
			return -(MateScore - ply)
		}
		return 0
	}

	var candidates move.List
	if inCheck {
		candidates = legal // must consider every reply to escape check
	} else {
		candidates = pos.GenerateCaptures()
	}

	orderMoves(&pos, &candidates, move.NoMove, s.tt, alpha, beta)

	for i := 0; i < candidates.Len(); i++ {
		m := candidates.Get(i)

		if !inCheck {
			victim, _ := captureValues(&pos, m)
			if m.IsPromotion() {
				victim += queenValue - move.Pawn.Value()
			}
			if standPat+victim+200 < alpha {
				continue
			}
		}

		child := pos.MakeMove(m)
		raw := s.quiescence(child, ply+1, -beta, -alpha)
		if raw == Cancelled {
			return Cancelled
		}
		score := -raw

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// relativeEval returns eval.Evaluate from the perspective of the side to
// move, as negamax requires at every leaf: Evaluate itself is always signed
// from white's side.
func relativeEval(pos *position.Position) int {
	score := eval.Evaluate(pos)
	if pos.SideToMove == bitboard.Black {
		return -score
	}
	return score
}

func isDraw(pos *position.Position, repeatThreshold int) bool {
	if pos.HalfmoveClock >= 100 {
		return true
	}
	if pos.IsInsufficientMaterial() {
		return true
	}
	return pos.IsDrawByRepetition(repeatThreshold)
}
