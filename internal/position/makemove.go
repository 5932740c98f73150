package position

import (
	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/move"
)

// MakeMove returns the position after applying m. Copy-make: the receiver
// is left untouched, and there is no corresponding Unmake.
func (p Position) MakeMove(m move.Move) Position {
	np := p // struct copy: bitboard arrays, repetition ring, everything.

	us := np.SideToMove
	them := us.Other()

	// 1. Clear the inherited EP target.
	if np.EnPassant != bitboard.NoSquare {
		np.Hash ^= zobristEnPassant[np.EnPassant.File()]
		np.EnPassant = bitboard.NoSquare
	}

	from, to := m.From(), m.To()
	movingPiece := np.PieceAt(from)
	movingType := movingPiece.Type()

	// 2. Castling: atomically move king and rook.
	if m.IsCastle() {
		np.removePiece(from)
		np.setPiece(movingPiece, to)
		rookFrom, rookTo := castleRookSquares(us, m.IsKingSideCastle())
		rook := np.removePiece(rookFrom)
		np.setPiece(rook, rookTo)
		np.clearCastlingRights(us)
		np.finishMove(movingType, false, us, them)
		return np
	}

	// 3. Captures (including EP: captured pawn sits behind the target square).
	if m.IsCapture() {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = capturedEPSquare(to, us)
		}
		np.removePiece(capturedSq)
	}

	// 4. Move the piece.
	np.removePiece(from)
	if m.IsPromotion() {
		np.setPiece(move.NewPiece(m.Promotion(), us), to)
	} else {
		np.setPiece(movingPiece, to)
	}

	// 5. Double pawn push: set EP target iff an enemy pawn actually attacks it.
	if movingType == move.Pawn && abs(int(to)-int(from)) == 16 {
		epSq := bitboard.NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		if bitboard.PawnAttacks(epSq, us)&np.Pieces[them][move.Pawn] != 0 {
			np.EnPassant = epSq
			np.Hash ^= zobristEnPassant[epSq.File()]
		}
	}

	// 6. King move clears that color's castling rights.
	if movingType == move.King {
		np.clearCastlingRights(us)
	}

	// 7. Rook home-square departure or capture clears the matching right.
	np.clearCastlingRightsForSquare(from)
	np.clearCastlingRightsForSquare(to)

	np.finishMove(movingType, m.ResetsClock(movingType == move.Pawn), us, them)
	return np
}

func (p *Position) finishMove(movingType move.PieceType, resets bool, us, them bitboard.Color) {
	if resets {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if us == bitboard.Black {
		p.FullmoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	p.recomputeOccupancy()
	p.findKings()
	p.UpdateCheckers()

	if resets {
		p.repetition.reset(p.Hash)
	} else {
		p.repetition.record(p.HalfmoveClock, p.Hash)
	}
}

func castleRookSquares(us bitboard.Color, kingSide bool) (from, to bitboard.Square) {
	if us == bitboard.White {
		if kingSide {
			return bitboard.H1, bitboard.F1
		}
		return bitboard.A1, bitboard.D1
	}
	if kingSide {
		return bitboard.H8, bitboard.F8
	}
	return bitboard.A8, bitboard.D8
}

func (p *Position) clearCastlingRights(c bitboard.Color) {
	if c == bitboard.White {
		p.setCastlingRights(p.CastlingRights &^ (WhiteKingSide | WhiteQueenSide))
	} else {
		p.setCastlingRights(p.CastlingRights &^ (BlackKingSide | BlackQueenSide))
	}
}

func (p *Position) clearCastlingRightsForSquare(sq bitboard.Square) {
	var right CastlingRights
	switch sq {
	case bitboard.A1:
		right = WhiteQueenSide
	case bitboard.H1:
		right = WhiteKingSide
	case bitboard.A8:
		right = BlackQueenSide
	case bitboard.H8:
		right = BlackKingSide
	default:
		return
	}
	if p.CastlingRights&right != 0 {
		p.setCastlingRights(p.CastlingRights &^ right)
	}
}

func (p *Position) setCastlingRights(cr CastlingRights) {
	if cr == p.CastlingRights {
		return
	}
	p.Hash ^= p.CastlingRights.hashKey()
	p.CastlingRights = cr
	p.Hash ^= cr.hashKey()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
