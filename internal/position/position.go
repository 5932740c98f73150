// Package position implements the canonical game state, the pin/
// check-mask legal move generator, and copy-make move application.
package position

import (
	"fmt"

	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/move"
)

// CastlingRights packs the four independent kingside/queenside booleans.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

func (cr CastlingRights) hashKey() uint64 {
	var h uint64
	if cr&WhiteKingSide != 0 {
		h ^= zobristCastling[0]
	}
	if cr&WhiteQueenSide != 0 {
		h ^= zobristCastling[1]
	}
	if cr&BlackKingSide != 0 {
		h ^= zobristCastling[2]
	}
	if cr&BlackQueenSide != 0 {
		h ^= zobristCastling[3]
	}
	return h
}

// repetitionRing is the up-to-100-entry hash history, indexed by halfmove
// clock and threaded by value (it is a plain array, so copy-make's struct
// copy propagates it automatically).
type repetitionRing struct {
	hashes [100]uint64
}

func (r *repetitionRing) record(halfmoveClock int, hash uint64) {
	if halfmoveClock < len(r.hashes) {
		r.hashes[halfmoveClock] = hash
	}
}

func (r *repetitionRing) reset(hash uint64) {
	*r = repetitionRing{}
	r.hashes[0] = hash
}

// Position is the canonical game state. It is a plain value; MakeMove
// returns a new Position rather than mutating in place (copy-make, no
// unmake — see DESIGN.md).
type Position struct {
	Pieces      [2][6]bitboard.Bitboard
	Occupied    [2]bitboard.Bitboard
	AllOccupied bitboard.Bitboard

	SideToMove     bitboard.Color
	CastlingRights CastlingRights
	EnPassant      bitboard.Square
	HalfmoveClock  int
	FullmoveNumber int

	Hash uint64

	KingSquare [2]bitboard.Square
	Checkers   bitboard.Bitboard

	repetition repetitionRing
}

// New returns the standard initial position.
func New() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

func (p *Position) PieceAt(sq bitboard.Square) move.Piece {
	bb := bitboard.SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return move.NoPiece
	}
	var c bitboard.Color
	if p.Occupied[bitboard.White]&bb != 0 {
		c = bitboard.White
	} else {
		c = bitboard.Black
	}
	for pt := move.Pawn; pt <= move.King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return move.NewPiece(pt, c)
		}
	}
	return move.NoPiece
}

func (p *Position) IsEmpty(sq bitboard.Square) bool { return p.AllOccupied&bitboard.SquareBB(sq) == 0 }

// setPiece places a piece and updates the incremental hash.
func (p *Position) setPiece(piece move.Piece, sq bitboard.Square) {
	c, pt := piece.Color(), piece.Type()
	bb := bitboard.SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.Hash ^= zobristPiece[c][pt][sq]
	if pt == move.King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes whatever piece is on sq and updates the hash.
func (p *Position) removePiece(sq bitboard.Square) move.Piece {
	piece := p.PieceAt(sq)
	if piece == move.NoPiece {
		return move.NoPiece
	}
	c, pt := piece.Color(), piece.Type()
	bb := bitboard.SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.Hash ^= zobristPiece[c][pt][sq]
	return piece
}

func (p *Position) recomputeOccupancy() {
	p.Occupied[bitboard.White] = bitboard.Empty
	p.Occupied[bitboard.Black] = bitboard.Empty
	for pt := move.Pawn; pt <= move.King; pt++ {
		p.Occupied[bitboard.White] |= p.Pieces[bitboard.White][pt]
		p.Occupied[bitboard.Black] |= p.Pieces[bitboard.Black][pt]
	}
	p.AllOccupied = p.Occupied[bitboard.White] | p.Occupied[bitboard.Black]
}

func (p *Position) findKings() {
	p.KingSquare[bitboard.White] = p.Pieces[bitboard.White][move.King].LSB()
	p.KingSquare[bitboard.Black] = p.Pieces[bitboard.Black][move.King].LSB()
}

// ComputeHash recomputes the Zobrist hash from scratch. Used by FEN parsing
// and by the invariant test that checks incremental updates against a
// from-scratch recomputation.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for c := bitboard.White; c <= bitboard.Black; c++ {
		for pt := move.Pawn; pt <= move.King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= zobristPiece[c][pt][sq]
			}
		}
	}
	if p.SideToMove == bitboard.White {
		h ^= zobristSideToMove
	}
	h ^= p.CastlingRights.hashKey()
	if p.EnPassant != bitboard.NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	return h
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.Checkers != 0 }

// UpdateCheckers recomputes the Checkers bitboard for the side to move.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	kingSq := p.KingSquare[us]
	p.Checkers = p.attackersByColor(kingSq, us.Other(), p.AllOccupied)
}

func (p *Position) attackersByColor(sq bitboard.Square, c bitboard.Color, occupied bitboard.Bitboard) bitboard.Bitboard {
	enemy := c.Other()
	return (bitboard.PawnAttacks(sq, enemy) & p.Pieces[c][move.Pawn]) |
		(bitboard.KnightAttacks(sq) & p.Pieces[c][move.Knight]) |
		(bitboard.KingAttacks(sq) & p.Pieces[c][move.King]) |
		(bitboard.BishopAttacks(sq, occupied) & (p.Pieces[c][move.Bishop] | p.Pieces[c][move.Queen])) |
		(bitboard.RookAttacks(sq, occupied) & (p.Pieces[c][move.Rook] | p.Pieces[c][move.Queen]))
}

// IsSquareAttacked reports whether sq is attacked by the given color.
func (p *Position) IsSquareAttacked(sq bitboard.Square, by bitboard.Color) bool {
	return p.attackersByColor(sq, by, p.AllOccupied) != 0
}

// Material returns white material minus black material, in centipawns.
func (p *Position) Material() int {
	score := 0
	for pt := move.Pawn; pt < move.King; pt++ {
		score += p.Pieces[bitboard.White][pt].PopCount() * pt.Value()
		score -= p.Pieces[bitboard.Black][pt].PopCount() * pt.Value()
	}
	return score
}

// HasNonPawnMaterial reports whether the side to move holds any
// knight/bishop/rook/queen.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.SideToMove
	return p.Pieces[us][move.Knight]|p.Pieces[us][move.Bishop]|p.Pieces[us][move.Rook]|p.Pieces[us][move.Queen] != 0
}

// IsInsufficientMaterial reports king-vs-king and king-vs-king-plus-minor draws.
func (p *Position) IsInsufficientMaterial() bool {
	nonKing := p.AllOccupied &^ (p.Pieces[bitboard.White][move.King] | p.Pieces[bitboard.Black][move.King])
	if nonKing == 0 {
		return true
	}
	if nonKing.PopCount() == 1 {
		minor := p.Pieces[bitboard.White][move.Knight] | p.Pieces[bitboard.White][move.Bishop] |
			p.Pieces[bitboard.Black][move.Knight] | p.Pieces[bitboard.Black][move.Bishop]
		return nonKing&minor == nonKing
	}
	return false
}

// RepeatCount returns how many times the current hash (including the
// current occurrence) appears in the repetition history recorded since the
// last halfmove-clock reset.
func (p *Position) RepeatCount() int {
	n := 0
	limit := p.HalfmoveClock
	if limit >= len(p.repetition.hashes) {
		limit = len(p.repetition.hashes) - 1
	}
	for i := 0; i <= limit; i++ {
		if p.repetition.hashes[i] == p.Hash {
			n++
		}
	}
	return n
}

// IsDrawByRepetition applies the given threshold (2 = "draw on first
// repeat", the in-search heuristic; 3 = "draw on threefold", the strict
// rule used at root-decision time — see DESIGN.md).
func (p *Position) IsDrawByRepetition(threshold int) bool {
	return p.RepeatCount() >= threshold
}

func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := bitboard.NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == move.NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n"
	s += fmt.Sprintf("side: %s castling: %s ep: %s hash: %016x\n",
		p.SideToMove, p.CastlingRights, p.EnPassant, p.Hash)
	return s
}
