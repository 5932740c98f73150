package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidae/forge/internal/bitboard"
	"github.com/corvidae/forge/internal/move"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Tagged parse-error sentinels: malformed FEN is returned to the caller
// as a tagged error, never a panic. Check with errors.Is.
var (
	ErrMissingParts          = errors.New("fen: missing fields")
	ErrInvalidCharacter      = errors.New("fen: invalid piece character")
	ErrInvalidRankFile       = errors.New("fen: invalid rank or file")
	ErrInvalidSideToMove     = errors.New("fen: invalid side to move")
	ErrInvalidCastlingRights = errors.New("fen: invalid castling rights")
	ErrInvalidEnPassant      = errors.New("fen: invalid en passant square")
	ErrInvalidHalfmoveClock  = errors.New("fen: invalid halfmove clock")
	ErrInvalidFullmoveNumber = errors.New("fen: invalid fullmove number")
)

// ParseFEN parses a standard six-field FEN string. The halfmove clock and
// fullmove number fields may be omitted; they then default to 0 and 1.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("%w: need at least 4 fields, got %d", ErrMissingParts, len(fields))
	}

	var p Position
	p.EnPassant = bitboard.NoSquare
	p.FullmoveNumber = 1

	if err := parsePiecePlacement(&p, fields[0]); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = bitboard.White
	case "b":
		p.SideToMove = bitboard.Black
	default:
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSideToMove, fields[1])
	}

	if err := parseCastlingRights(&p, fields[2]); err != nil {
		return Position{}, err
	}

	if fields[3] != "-" {
		sq, ok := bitboard.ParseSquare(fields[3])
		if !ok {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidEnPassant, fields[3])
		}
		p.EnPassant = sq
	}

	p.recomputeOccupancy()
	p.findKings()

	// EP-elision: only keep the EP target if a pawn of the side to move
	// actually attacks it.
	if p.EnPassant != bitboard.NoSquare && !epAttackerExists(&p) {
		p.EnPassant = bitboard.NoSquare
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidHalfmoveClock, fields[4])
		}
		p.HalfmoveClock = n
	}

	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidFullmoveNumber, fields[5])
		}
		p.FullmoveNumber = n
	}

	p.Hash = p.ComputeHash()
	p.repetition.reset(p.Hash)
	p.UpdateCheckers()

	return p, nil
}

func parsePiecePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidRankFile, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidRankFile, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := move.FromChar(byte(c))
			if piece == move.NoPiece {
				return fmt.Errorf("%w: %q", ErrInvalidCharacter, string(c))
			}
			p.setPieceNoHash(piece, bitboard.NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidRankFile, rank+1, file)
		}
	}
	return nil
}

// setPieceNoHash places a piece during FEN parsing, before the hash is
// computed in one pass at the end.
func (p *Position) setPieceNoHash(piece move.Piece, sq bitboard.Square) {
	c, pt := piece.Color(), piece.Type()
	bb := bitboard.SquareBB(sq)
	p.Pieces[c][pt] |= bb
}

func parseCastlingRights(p *Position, castling string) error {
	if castling == "-" {
		p.CastlingRights = NoCastling
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			p.CastlingRights |= WhiteKingSide
		case 'Q':
			p.CastlingRights |= WhiteQueenSide
		case 'k':
			p.CastlingRights |= BlackKingSide
		case 'q':
			p.CastlingRights |= BlackQueenSide
		default:
			return fmt.Errorf("%w: %q", ErrInvalidCastlingRights, castling)
		}
	}
	return nil
}

// epAttackerExists reports whether a pawn of the side to move can capture
// on p.EnPassant right now.
func epAttackerExists(p *Position) bool {
	attackerColor := p.SideToMove
	// Pawn attacks *from* ep square, computed for the opposite color, land
	// on the squares an attacking pawn of attackerColor would stand on.
	attackersFrom := bitboard.PawnAttacks(p.EnPassant, attackerColor.Other())
	return attackersFrom&p.Pieces[attackerColor][move.Pawn] != 0
}

// ToFEN serializes the position, applying the same EP-elision rule as parse
// so transpositions round-trip identically.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := bitboard.NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == move.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove.String())

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	if p.EnPassant != bitboard.NoSquare && epAttackerExists(p) {
		sb.WriteString(p.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}
