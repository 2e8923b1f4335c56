package magic

import "github.com/hailam/magicboards/internal/board"

// BlockerBoard returns the index-th subset of mask. Bit i of index decides
// whether the i-th lowest set bit of mask is occupied, so indices
// 0..2^popcount(mask)-1 map one to one onto the subsets of mask.
func BlockerBoard(mask board.Bitboard, index int) board.Bitboard {
	var occ board.Bitboard
	for i := 0; mask != 0; i++ {
		low := mask.Lowest()
		mask ^= low
		if index&(1<<i) != 0 {
			occ |= low
		}
	}
	return occ
}

// BlockerBoards materialises every subset of mask in index order.
func BlockerBoards(mask board.Bitboard) []board.Bitboard {
	boards := make([]board.Bitboard, 0, 1<<mask.PopCount())
	EachBlockerBoard(mask, func(_ int, b board.Bitboard) bool {
		boards = append(boards, b)
		return true
	})
	return boards
}

// EachBlockerBoard calls fn with every subset of mask in index order and
// stops early when fn returns false.
func EachBlockerBoard(mask board.Bitboard, fn func(index int, b board.Bitboard) bool) {
	// Carry-rippler: subtracting the mask counts upward through its set bits
	// in the same order BlockerBoard assigns index digits.
	var b board.Bitboard
	for i := 0; ; i++ {
		if !fn(i, b) {
			return
		}
		b = (b - mask) & mask
		if b == 0 {
			return
		}
	}
}
