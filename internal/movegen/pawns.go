package movegen

import "github.com/hailam/magicboards/internal/board"

// SinglePush advances every pawn one rank onto an empty square.
func SinglePush(pawns, empty board.Bitboard, c board.Color) board.Bitboard {
	if c == board.White {
		return (pawns << 8) & empty
	}
	return (pawns >> 8) & empty
}

// DoublePush advances pawns two ranks. Only pawns that started on their
// home rank can land on the fourth rank from their side.
func DoublePush(pawns, empty board.Bitboard, c board.Color) board.Bitboard {
	second := SinglePush(SinglePush(pawns, empty, c), empty, c)
	if c == board.White {
		return second & board.Rank4
	}
	return second & board.Rank5
}

// PawnMoves returns every non-capturing pawn destination.
func PawnMoves(pawns, empty board.Bitboard, c board.Color) board.Bitboard {
	return SinglePush(pawns, empty, c) | DoublePush(pawns, empty, c)
}

// PawnCaptureSquares returns the squares the pawns attack diagonally,
// occupied or not.
func PawnCaptureSquares(pawns board.Bitboard, c board.Color) board.Bitboard {
	if c == board.White {
		return (pawns&board.NotFileA)<<9 | (pawns&board.NotFileH)<<7
	}
	return (pawns&board.NotFileA)>>7 | (pawns&board.NotFileH)>>9
}

// EnPassantTarget returns the square behind an opposing pawn that just
// advanced two ranks, if one of pawns attacks it. last is the move played
// immediately before; anything other than an opposing double push yields 0.
func EnPassantTarget(pawns board.Bitboard, c board.Color, last board.PlayedMove) board.Bitboard {
	if !last.IsDoublePawnPush(c.Other()) {
		return 0
	}
	landed := last.Move.To().Bitboard()
	var phantom board.Bitboard
	if c == board.White {
		phantom = landed << 8
	} else {
		phantom = landed >> 8
	}
	return PawnCaptureSquares(pawns, c) & phantom
}

// PawnAttacks returns diagonal captures of opponent pieces plus the en
// passant square when last allows one.
func PawnAttacks(pawns, opponents board.Bitboard, c board.Color, last board.PlayedMove) board.Bitboard {
	return PawnCaptureSquares(pawns, c)&opponents | EnPassantTarget(pawns, c, last)
}
