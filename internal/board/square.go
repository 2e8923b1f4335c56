// Package board holds the bitboard geometry shared by the attack generators:
// squares, pieces, the flat piece-bitboard set and packed moves.
package board

import (
	"errors"
	"fmt"
)

// Square represents a square on the chess board (0-63).
// The index is rank*8 + (7-file), so H1=0, A1=7, H8=56, A8=63.
type Square uint8

// Square constants for all 64 squares, in bit order.
const (
	H1 Square = iota
	G1
	F1
	E1
	D1
	C1
	B1
	A1
	H2
	G2
	F2
	E2
	D2
	C2
	B2
	A2
	H3
	G3
	F3
	E3
	D3
	C3
	B3
	A3
	H4
	G4
	F4
	E4
	D4
	C4
	B4
	A4
	H5
	G5
	F5
	E5
	D5
	C5
	B5
	A5
	H6
	G6
	F6
	E6
	D6
	C6
	B6
	A6
	H7
	G7
	F7
	E7
	D7
	C7
	B7
	A7
	H8
	G8
	F8
	E8
	D8
	C8
	B8
	A8
	NoSquare Square = 64
)

var (
	// ErrInvalidSquare is returned when a square name cannot be parsed.
	ErrInvalidSquare = errors.New("invalid square")
	// ErrNotSingleSquare is returned when a bitboard meant to name one square
	// has zero or several bits set.
	ErrNotSingleSquare = errors.New("bitboard is not a single square")
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return 7 - int(sq)&7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Bitboard returns the single-bit board for the square.
func (sq Square) Bitboard() Bitboard {
	return 1 << sq
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + 7 - file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(file, rank), nil
}

// SquareOf converts a single-bit bitboard to its square.
func SquareOf(b Bitboard) (Square, error) {
	if !b.IsSingle() {
		return NoSquare, fmt.Errorf("%w: %#016x", ErrNotSingleSquare, uint64(b))
	}
	return b.LSB(), nil
}

// MustSquareOf is SquareOf for callers that treat a bad board as a bug.
func MustSquareOf(b Bitboard) Square {
	sq, err := SquareOf(b)
	if err != nil {
		panic(err)
	}
	return sq
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
