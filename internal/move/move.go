package move

import (
	"strings"

	"github.com/corvidae/forge/internal/bitboard"
)

// Flag is the 4-bit move-kind tag. All 13 taxonomy members from the design
// fit in 4 bits; the remaining three codes are unused.
type Flag uint16

const (
	Quiet Flag = iota
	CastleShort
	CastleLong
	Capture
	EnPassantCapture
	PromoKnight
	PromoBishop
	PromoRook
	PromoQueen
	CapturePromoKnight
	CapturePromoBishop
	CapturePromoRook
	CapturePromoQueen
)

// Move is a 16-bit packed code: from(6) | to(6) | flag(4).
type Move uint16

const NoMove Move = 0

func encode(from, to bitboard.Square, flag Flag) Move {
	return Move(uint16(from)&0x3F | (uint16(to)&0x3F)<<6 | uint16(flag)<<12)
}

func New(from, to bitboard.Square) Move           { return encode(from, to, Quiet) }
func NewCapture(from, to bitboard.Square) Move     { return encode(from, to, Capture) }
func NewEnPassant(from, to bitboard.Square) Move   { return encode(from, to, EnPassantCapture) }

// NewCastle builds a castling move; kingSide selects short vs. long.
func NewCastle(from, to bitboard.Square, kingSide bool) Move {
	if kingSide {
		return encode(from, to, CastleShort)
	}
	return encode(from, to, CastleLong)
}

var promoFlags = [4]Flag{PromoKnight, PromoBishop, PromoRook, PromoQueen}
var capturePromoFlags = [4]Flag{CapturePromoKnight, CapturePromoBishop, CapturePromoRook, CapturePromoQueen}

// promoIndex maps a promotion PieceType (Knight..Queen) to 0..3.
func promoIndex(pt PieceType) int { return int(pt) - int(Knight) }

func NewPromotion(from, to bitboard.Square, promo PieceType) Move {
	return encode(from, to, promoFlags[promoIndex(promo)])
}

func NewCapturePromotion(from, to bitboard.Square, promo PieceType) Move {
	return encode(from, to, capturePromoFlags[promoIndex(promo)])
}

func (m Move) From() bitboard.Square { return bitboard.Square(m & 0x3F) }
func (m Move) To() bitboard.Square   { return bitboard.Square((m >> 6) & 0x3F) }
func (m Move) Flag() Flag            { return Flag((m >> 12) & 0xF) }

// IsCapture is true for Capture, EnPassantCapture, and every capture-promotion flag.
func (m Move) IsCapture() bool {
	switch m.Flag() {
	case Capture, EnPassantCapture, CapturePromoKnight, CapturePromoBishop, CapturePromoRook, CapturePromoQueen:
		return true
	default:
		return false
	}
}

func (m Move) IsEnPassant() bool { return m.Flag() == EnPassantCapture }
func (m Move) IsCastle() bool    { return m.Flag() == CastleShort || m.Flag() == CastleLong }
func (m Move) IsKingSideCastle() bool { return m.Flag() == CastleShort }

func (m Move) IsPromotion() bool {
	switch m.Flag() {
	case PromoKnight, PromoBishop, PromoRook, PromoQueen,
		CapturePromoKnight, CapturePromoBishop, CapturePromoRook, CapturePromoQueen:
		return true
	default:
		return false
	}
}

// Promotion returns the promoted piece type; valid only if IsPromotion.
func (m Move) Promotion() PieceType {
	switch m.Flag() {
	case PromoKnight, CapturePromoKnight:
		return Knight
	case PromoBishop, CapturePromoBishop:
		return Bishop
	case PromoRook, CapturePromoRook:
		return Rook
	case PromoQueen, CapturePromoQueen:
		return Queen
	default:
		return NoPieceType
	}
}

// IsQuiet is true for moves that are neither captures nor promotions.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// ResetsClock reports whether this move resets the halfmove clock: true for
// any capture, and for pawn moves (the caller supplies whether the mover is
// a pawn, since the move code alone doesn't carry piece identity).
func (m Move) ResetsClock(moverIsPawn bool) bool {
	return moverIsPawn || m.IsCapture()
}

// String renders the UCI move literal: from + to + optional promotion letter.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promotion().String())
	}
	return s
}
