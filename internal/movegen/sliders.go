// Package movegen derives move and attack bitboards for every piece type.
//
// Sliding pieces are looked up in magic tables. King, knight and pawn
// moves are closed-form shifts guarded against wrapping around the board.
// Every function is pure; the only shared state is the default magic
// tables, built once on first use.
package movegen

import (
	"github.com/hailam/magicboards/internal/board"
	"github.com/hailam/magicboards/internal/magic"
)

// Initialize builds the default magic tables now instead of on first use.
func Initialize() error {
	return magic.Initialize()
}

// RookMove returns the squares a rook on square reaches given occupancy.
// square must hold exactly one bit; anything else panics with an error
// wrapping board.ErrNotSingleSquare.
func RookMove(square, occupancy board.Bitboard) board.Bitboard {
	return magic.MustDefault().Rook(board.MustSquareOf(square), occupancy)
}

// BishopMove returns the squares a bishop on square reaches given occupancy.
func BishopMove(square, occupancy board.Bitboard) board.Bitboard {
	return magic.MustDefault().Bishop(board.MustSquareOf(square), occupancy)
}

// QueenMove is RookMove | BishopMove.
func QueenMove(square, occupancy board.Bitboard) board.Bitboard {
	return magic.MustDefault().Queen(board.MustSquareOf(square), occupancy)
}
