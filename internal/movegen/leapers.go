package movegen

import "github.com/hailam/magicboards/internal/board"

// Knight jumps. Each guard clears the source squares whose jump would leave
// the board before shifting. North is <<8 and west (toward file a) is <<1.

func knightNNW(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileA &^ (board.Rank8 | board.Rank7)) << 17
}

func knightNWW(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileAB &^ board.Rank8) << 10
}

func knightNNE(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileH &^ (board.Rank8 | board.Rank7)) << 15
}

func knightNEE(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileGH &^ board.Rank8) << 6
}

func knightSWW(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileAB &^ board.Rank1) >> 6
}

func knightSSW(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileA &^ (board.Rank1 | board.Rank2)) >> 15
}

func knightSEE(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileGH &^ board.Rank1) >> 10
}

func knightSSE(p board.Bitboard) board.Bitboard {
	return (p & board.NotFileH &^ (board.Rank1 | board.Rank2)) >> 17
}

// AllKnightMoves returns every square a knight in knights jumps to,
// regardless of what stands there. knights may hold several pieces.
func AllKnightMoves(knights board.Bitboard) board.Bitboard {
	return knightNNW(knights) | knightNWW(knights) | knightNNE(knights) | knightNEE(knights) |
		knightSWW(knights) | knightSSW(knights) | knightSEE(knights) | knightSSE(knights)
}

// KnightMoves splits the knight jumps into moves onto empty squares and
// captures of opponent pieces.
func KnightMoves(knights, empty, opponents board.Bitboard) (quiet, attacks board.Bitboard) {
	all := AllKnightMoves(knights)
	return all & empty, all & opponents
}

// kingRing returns the eight squares around a single king. The row through
// the king is widened first and then shifted up and down, so the diagonals
// come for free.
func kingRing(king board.Bitboard) board.Bitboard {
	row := king | king.East() | king.West()
	return king ^ (row | row.North() | row.South())
}

// AllKingMoves returns the squares adjacent to any king in kings. Each king
// is expanded on its own, so two neighbouring kings still cover each other.
func AllKingMoves(kings board.Bitboard) board.Bitboard {
	if kings.IsSingle() {
		return kingRing(kings)
	}
	var all board.Bitboard
	for kings != 0 {
		king := kings.Lowest()
		all |= kingRing(king)
		kings ^= king
	}
	return all
}

// KingMoves splits the king steps into quiet moves and captures.
func KingMoves(king, empty, opponents board.Bitboard) (quiet, attacks board.Bitboard) {
	all := AllKingMoves(king)
	return all & empty, all & opponents
}

// Destinations splits targets into single-square bitboards, lowest first.
func Destinations(targets board.Bitboard) []board.Bitboard {
	out := make([]board.Bitboard, 0, targets.PopCount())
	for targets != 0 {
		low := targets.Lowest()
		out = append(out, low)
		targets ^= low
	}
	return out
}
