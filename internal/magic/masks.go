package magic

import "github.com/hailam/magicboards/internal/board"

// MoveBoard computes the squares a slider on sq reaches when the squares in
// blockers are occupied. Each ray includes the first blocker it meets and
// stops there. The source square is never included.
func MoveBoard(k Kind, sq board.Square, blockers board.Bitboard) board.Bitboard {
	var moves board.Bitboard
	file, rank := sq.File(), sq.Rank()

	for _, d := range k.directions() {
		for f, r := file+d.df, rank+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
			s := board.NewSquare(f, r).Bitboard()
			moves |= s
			if blockers&s != 0 {
				break
			}
		}
	}

	return moves
}

func onBoard(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}

// Pattern returns the unrestricted rays of a slider on sq: every square it
// could reach on an empty board.
func Pattern(k Kind, sq board.Square) board.Bitboard {
	return MoveBoard(k, sq, board.Empty)
}

// RookPattern is Pattern(Rook, sq).
func RookPattern(sq board.Square) board.Bitboard {
	return Pattern(Rook, sq)
}

// BishopPattern is Pattern(Bishop, sq).
func BishopPattern(sq board.Square) board.Bitboard {
	return Pattern(Bishop, sq)
}

// Mask returns the blocker mask of a slider on sq: the squares whose
// occupancy can change its move board.
func Mask(k Kind, sq board.Square) board.Bitboard {
	return trimEdges(Pattern(k, sq), sq)
}

// RookMask is Mask(Rook, sq).
func RookMask(sq board.Square) board.Bitboard {
	return Mask(Rook, sq)
}

// BishopMask is Mask(Bishop, sq).
func BishopMask(sq board.Square) board.Bitboard {
	return Mask(Bishop, sq)
}

// trimEdges drops an outer rank or file unless sq itself stands on it.
// The last square of a ray is reached whether or not it is occupied.
func trimEdges(bb board.Bitboard, sq board.Square) board.Bitboard {
	if sq.Rank() != 0 {
		bb &^= board.Rank1
	}
	if sq.Rank() != 7 {
		bb &^= board.Rank8
	}
	if sq.File() != 0 {
		bb &^= board.FileA
	}
	if sq.File() != 7 {
		bb &^= board.FileH
	}
	return bb
}
