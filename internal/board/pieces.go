package board

import (
	"fmt"
	"strings"
)

// Pieces is the flat piece-bitboard set indexed by Piece
// (pieceType + color*6). It is the only board state the generators read.
type Pieces [NoPiece]Bitboard

// StartingPieces returns the standard initial arrangement.
func StartingPieces() Pieces {
	var p Pieces
	p[WhitePawn] = Rank2
	p[WhiteKnight] = B1.Bitboard() | G1.Bitboard()
	p[WhiteBishop] = C1.Bitboard() | F1.Bitboard()
	p[WhiteRook] = A1.Bitboard() | H1.Bitboard()
	p[WhiteQueen] = D1.Bitboard()
	p[WhiteKing] = E1.Bitboard()
	for pt := Pawn; pt <= King; pt++ {
		// Black mirrors white across the middle of the board.
		p[NewPiece(pt, Black)] = p[NewPiece(pt, White)].flipRanks()
	}
	return p
}

// ParsePieces reads the placement field of a FEN string
// (e.g., "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR").
func ParsePieces(placement string) (Pieces, error) {
	var p Pieces
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return p, fmt.Errorf("invalid placement %q: want 8 ranks, got %d", placement, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return p, fmt.Errorf("invalid placement %q: unknown piece %q", placement, c)
			}
			if file > 7 {
				return p, fmt.Errorf("invalid placement %q: rank %d overflows", placement, rank+1)
			}
			p[piece] |= NewSquare(file, rank).Bitboard()
			file++
		}
		if file != 8 {
			return p, fmt.Errorf("invalid placement %q: rank %d has %d files", placement, rank+1, file)
		}
	}
	return p, nil
}

// Get returns the bitboard of one color's pieces of one type.
func (p *Pieces) Get(c Color, pt PieceType) Bitboard {
	return p[NewPiece(pt, c)]
}

// ByColor returns every square occupied by the given color.
func (p *Pieces) ByColor(c Color) Bitboard {
	var bb Bitboard
	base := Piece(c) * 6
	for i := base; i < base+6; i++ {
		bb |= p[i]
	}
	return bb
}

// Occupied returns every occupied square.
func (p *Pieces) Occupied() Bitboard {
	return p.ByColor(White) | p.ByColor(Black)
}

// EmptySquares returns every unoccupied square.
func (p *Pieces) EmptySquares() Bitboard {
	return ^p.Occupied()
}

// PieceAt returns the piece on a square, or NoPiece.
func (p *Pieces) PieceAt(sq Square) Piece {
	for piece := WhitePawn; piece < NoPiece; piece++ {
		if p[piece].IsSet(sq) {
			return piece
		}
	}
	return NoPiece
}

// Put places a piece on a square, clearing whatever stood there.
func (p *Pieces) Put(piece Piece, sq Square) {
	p.Remove(sq)
	p[piece] = p[piece].Set(sq)
}

// Remove clears a square in every piece bitboard.
func (p *Pieces) Remove(sq Square) {
	for i := range p {
		p[i] = p[i].Clear(sq)
	}
}

// String returns the board as eight rows of piece letters.
func (p *Pieces) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
				continue
			}
			sb.WriteString(piece.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func (b Bitboard) flipRanks() Bitboard {
	var out Bitboard
	for r := 0; r < 8; r++ {
		row := (b >> (8 * r)) & 0xFF
		out |= row << (8 * (7 - r))
	}
	return out
}
