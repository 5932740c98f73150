package position

import (
	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/move"
)

// GenerateLegalMoves produces only legal moves directly, by precomputing
// checker and pin masks once per node and intersecting them with
// piece-specific target sets. It never generates a pseudo-legal move and
// discards it with a make/unmake-and-test pass.
func (p *Position) GenerateLegalMoves() move.List {
	var list move.List
	p.generateMoves(&list, false)
	return list
}

// GenerateCaptures produces only legal captures (including EP captures and
// capture-promotions), for quiescence search.
func (p *Position) GenerateCaptures() move.List {
	var list move.List
	p.generateMoves(&list, true)
	return list
}

func (p *Position) generateMoves(list *move.List, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	occ := p.AllOccupied
	ownOcc := p.Occupied[us]
	enemyOcc := p.Occupied[them]

	checkers := p.Checkers
	checkerCount := checkers.PopCount()

	// Enemy attack map, computed with our own king removed so that a king
	// stepping back along a check ray is not mistakenly deemed safe.
	occNoKing := occ &^ bitboard.SquareBB(ksq)
	enemyAttackMap := p.enemyAttackMap(them, occNoKing)

	// Pin detection via x-ray sniper rays.
	var pinRay [64]bitboard.Bitboard
	for i := range pinRay {
		pinRay[i] = bitboard.Universe
	}
	enemyRookQueen := p.Pieces[them][move.Rook] | p.Pieces[them][move.Queen]
	enemyBishopQueen := p.Pieces[them][move.Bishop] | p.Pieces[them][move.Queen]

	rookSnipers := bitboard.RookAttacks(ksq, 0) & enemyRookQueen
	for rookSnipers != 0 {
		sniper := rookSnipers.PopLSB()
		between := bitboard.Between(sniper, ksq) & occ
		if between.PopCount() == 1 && between&ownOcc != 0 {
			pinnedSq := between.LSB()
			pinRay[pinnedSq] = bitboard.Line(sniper, ksq)
		}
	}
	bishopSnipers := bitboard.BishopAttacks(ksq, 0) & enemyBishopQueen
	for bishopSnipers != 0 {
		sniper := bishopSnipers.PopLSB()
		between := bitboard.Between(sniper, ksq) & occ
		if between.PopCount() == 1 && between&ownOcc != 0 {
			pinnedSq := between.LSB()
			pinRay[pinnedSq] = bitboard.Line(sniper, ksq)
		}
	}

	var checkMask bitboard.Bitboard
	switch checkerCount {
	case 0:
		checkMask = bitboard.Universe
	case 1:
		checkerSq := checkers.LSB()
		checkMask = checkers | bitboard.Between(checkerSq, ksq)
	default:
		checkMask = bitboard.Empty
	}
	toMask := checkMask
	if capturesOnly {
		toMask &= enemyOcc
	}

	// King moves are always evaluated against the full attack map,
	// independent of the per-piece to-mask (double check: only king moves).
	p.genKingMoves(list, ksq, us, enemyOcc, ownOcc, enemyAttackMap, capturesOnly)

	if checkerCount < 2 {
		p.genPawnMoves(list, us, them, toMask, checkMask, pinRay, capturesOnly)
		p.genKnightMoves(list, us, ownOcc, toMask, pinRay, capturesOnly)
		p.genSliderMoves(list, us, move.Bishop, occ, ownOcc, toMask, pinRay, capturesOnly)
		p.genSliderMoves(list, us, move.Rook, occ, ownOcc, toMask, pinRay, capturesOnly)
		p.genSliderMoves(list, us, move.Queen, occ, ownOcc, toMask, pinRay, capturesOnly)
	}

	if checkerCount == 0 && !capturesOnly {
		p.genCastlingMoves(list, us, enemyAttackMap, occ)
	}
}

func (p *Position) enemyAttackMap(them bitboard.Color, occNoKing bitboard.Bitboard) bitboard.Bitboard {
	var attacks bitboard.Bitboard
	pawns := p.Pieces[them][move.Pawn]
	if them == bitboard.White {
		attacks |= pawns.NorthEast() | pawns.NorthWest()
	} else {
		attacks |= pawns.SouthEast() | pawns.SouthWest()
	}
	knights := p.Pieces[them][move.Knight]
	for knights != 0 {
		attacks |= bitboard.KnightAttacks(knights.PopLSB())
	}
	attacks |= bitboard.KingAttacks(p.KingSquare[them])
	bishops := p.Pieces[them][move.Bishop] | p.Pieces[them][move.Queen]
	for bishops != 0 {
		attacks |= bitboard.BishopAttacks(bishops.PopLSB(), occNoKing)
	}
	rooks := p.Pieces[them][move.Rook] | p.Pieces[them][move.Queen]
	for rooks != 0 {
		attacks |= bitboard.RookAttacks(rooks.PopLSB(), occNoKing)
	}
	return attacks
}

func (p *Position) genKingMoves(list *move.List, ksq bitboard.Square, us bitboard.Color, enemyOcc, ownOcc, enemyAttackMap bitboard.Bitboard, capturesOnly bool) {
	targets := bitboard.KingAttacks(ksq) &^ ownOcc &^ enemyAttackMap
	if capturesOnly {
		targets &= enemyOcc
	}
	for targets != 0 {
		to := targets.PopLSB()
		if enemyOcc.IsSet(to) {
			list.Add(move.NewCapture(ksq, to))
		} else {
			list.Add(move.New(ksq, to))
		}
	}
}

func (p *Position) genCastlingMoves(list *move.List, us bitboard.Color, enemyAttackMap, occ bitboard.Bitboard) {
	them := us.Other()
	if us == bitboard.White {
		if p.CastlingRights&WhiteKingSide != 0 {
			if occ&(bitboard.SquareBB(bitboard.F1)|bitboard.SquareBB(bitboard.G1)) == 0 &&
				enemyAttackMap&(bitboard.SquareBB(bitboard.E1)|bitboard.SquareBB(bitboard.F1)|bitboard.SquareBB(bitboard.G1)) == 0 {
				list.Add(move.NewCastle(bitboard.E1, bitboard.G1, true))
			}
		}
		if p.CastlingRights&WhiteQueenSide != 0 {
			if occ&(bitboard.SquareBB(bitboard.B1)|bitboard.SquareBB(bitboard.C1)|bitboard.SquareBB(bitboard.D1)) == 0 &&
				enemyAttackMap&(bitboard.SquareBB(bitboard.E1)|bitboard.SquareBB(bitboard.D1)|bitboard.SquareBB(bitboard.C1)) == 0 {
				list.Add(move.NewCastle(bitboard.E1, bitboard.C1, false))
			}
		}
	} else {
		if p.CastlingRights&BlackKingSide != 0 {
			if occ&(bitboard.SquareBB(bitboard.F8)|bitboard.SquareBB(bitboard.G8)) == 0 &&
				enemyAttackMap&(bitboard.SquareBB(bitboard.E8)|bitboard.SquareBB(bitboard.F8)|bitboard.SquareBB(bitboard.G8)) == 0 {
				list.Add(move.NewCastle(bitboard.E8, bitboard.G8, true))
			}
		}
		if p.CastlingRights&BlackQueenSide != 0 {
			if occ&(bitboard.SquareBB(bitboard.B8)|bitboard.SquareBB(bitboard.C8)|bitboard.SquareBB(bitboard.D8)) == 0 &&
				enemyAttackMap&(bitboard.SquareBB(bitboard.E8)|bitboard.SquareBB(bitboard.D8)|bitboard.SquareBB(bitboard.C8)) == 0 {
				list.Add(move.NewCastle(bitboard.E8, bitboard.C8, false))
			}
		}
	}
	_ = them
}

func (p *Position) genKnightMoves(list *move.List, us bitboard.Color, ownOcc, toMask bitboard.Bitboard, pinRay [64]bitboard.Bitboard, capturesOnly bool) {
	enemyOcc := p.Occupied[us.Other()]
	knights := p.Pieces[us][move.Knight]
	for knights != 0 {
		from := knights.PopLSB()
		if pinRay[from] != bitboard.Universe {
			continue // a pinned knight has no legal moves
		}
		targets := bitboard.KnightAttacks(from) &^ ownOcc & toMask
		if capturesOnly {
			targets &= enemyOcc
		}
		for targets != 0 {
			to := targets.PopLSB()
			if enemyOcc.IsSet(to) {
				list.Add(move.NewCapture(from, to))
			} else {
				list.Add(move.New(from, to))
			}
		}
	}
}

func (p *Position) genSliderMoves(list *move.List, us bitboard.Color, pt move.PieceType, occ, ownOcc, toMask bitboard.Bitboard, pinRay [64]bitboard.Bitboard, capturesOnly bool) {
	enemyOcc := p.Occupied[us.Other()]
	pieces := p.Pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()
		var attacks bitboard.Bitboard
		switch pt {
		case move.Bishop:
			attacks = bitboard.BishopAttacks(from, occ)
		case move.Rook:
			attacks = bitboard.RookAttacks(from, occ)
		case move.Queen:
			attacks = bitboard.QueenAttacks(from, occ)
		}
		targets := attacks &^ ownOcc & toMask & pinRay[from]
		if capturesOnly {
			targets &= enemyOcc
		}
		for targets != 0 {
			to := targets.PopLSB()
			if enemyOcc.IsSet(to) {
				list.Add(move.NewCapture(from, to))
			} else {
				list.Add(move.New(from, to))
			}
		}
	}
}

func (p *Position) genPawnMoves(list *move.List, us, them bitboard.Color, toMask, checkMask bitboard.Bitboard, pinRay [64]bitboard.Bitboard, capturesOnly bool) {
	pawns := p.Pieces[us][move.Pawn]
	enemyOcc := p.Occupied[them]
	occ := p.AllOccupied
	promoRank := bitboard.Rank8
	doublePushRank := bitboard.Rank2
	if us == bitboard.Black {
		promoRank = bitboard.Rank1
		doublePushRank = bitboard.Rank7
	}

	for pawns != 0 {
		from := pawns.PopLSB()
		ray := pinRay[from]

		// Captures (including promotion-captures).
		attacks := bitboard.PawnAttacks(from, us) & enemyOcc & toMask & ray
		for attacks != 0 {
			to := attacks.PopLSB()
			if bitboard.SquareBB(to)&promoRank != 0 {
				for _, pt := range []move.PieceType{move.Knight, move.Bishop, move.Rook, move.Queen} {
					list.Add(move.NewCapturePromotion(from, to, pt))
				}
			} else {
				list.Add(move.NewCapture(from, to))
			}
		}

		// En passant: the EP target square doesn't hold the captured piece
		// (it's behind it), so check-resolution is evaluated against both
		// the target and the actually-captured pawn's square.
		if p.EnPassant != bitboard.NoSquare {
			epAttacks := bitboard.PawnAttacks(from, us) & bitboard.SquareBB(p.EnPassant) & ray
			resolvesCheck := checkMask.IsSet(p.EnPassant) || checkMask.IsSet(capturedEPSquare(p.EnPassant, us))
			if epAttacks != 0 && resolvesCheck && p.epLegal(from, us) {
				list.Add(move.NewEnPassant(from, p.EnPassant))
			}
		}

		if capturesOnly {
			continue
		}

		// Single and double pushes.
		push1 := bitboard.PawnPushes(from, us) &^ occ
		if push1 != 0 {
			to := push1.LSB()
			if ray == bitboard.Universe || ray.IsSet(to) {
				if toMask.IsSet(to) {
					if bitboard.SquareBB(to)&promoRank != 0 {
						for _, pt := range []move.PieceType{move.Knight, move.Bishop, move.Rook, move.Queen} {
							list.Add(move.NewPromotion(from, to, pt))
						}
					} else {
						list.Add(move.New(from, to))
					}
				}
			}
			if bitboard.SquareBB(from)&doublePushRank != 0 {
				push2 := bitboard.PawnPushes(to, us) &^ occ
				if push2 != 0 {
					to2 := push2.LSB()
					if (ray == bitboard.Universe || ray.IsSet(to2)) && toMask.IsSet(to2) {
						list.Add(move.New(from, to2))
					}
				}
			}
		}
	}
}

// capturedEPSquare returns the square of the pawn actually removed by an EP
// capture landing on ep (one rank behind, from the mover's perspective).
func capturedEPSquare(ep bitboard.Square, us bitboard.Color) bitboard.Square {
	if us == bitboard.White {
		return bitboard.NewSquare(ep.File(), ep.Rank()-1)
	}
	return bitboard.NewSquare(ep.File(), ep.Rank()+1)
}

// epLegal handles the pathological discovered-check case: when both the
// capturing pawn and the captured pawn leave the king's rank simultaneously,
// a rook/queen behind either of them can give check even though neither
// pawn was individually pinned.
func (p *Position) epLegal(from bitboard.Square, us bitboard.Color) bool {
	them := us.Other()
	ksq := p.KingSquare[us]
	capturedSq := capturedEPSquare(p.EnPassant, us)

	occAfter := p.AllOccupied
	occAfter &^= bitboard.SquareBB(from)
	occAfter &^= bitboard.SquareBB(capturedSq)
	occAfter |= bitboard.SquareBB(p.EnPassant)

	rookQueen := p.Pieces[them][move.Rook] | p.Pieces[them][move.Queen]
	if bitboard.RookAttacks(ksq, occAfter)&rookQueen != 0 {
		return false
	}
	bishopQueen := p.Pieces[them][move.Bishop] | p.Pieces[them][move.Queen]
	if bitboard.BishopAttacks(ksq, occAfter)&bishopQueen != 0 {
		return false
	}
	return true
}

// HasLegalMoves reports whether any legal move exists (cheap check/mate
// test without materializing the full list would generate the same work,
// so this simply checks list length).
func (p *Position) HasLegalMoves() bool {
	list := p.GenerateLegalMoves()
	return list.Len() > 0
}

// IsCheckmate reports mate: in check with no legal response.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports stalemate: not in check, no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
