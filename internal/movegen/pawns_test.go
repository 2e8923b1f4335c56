package movegen

import (
	"testing"

	"github.com/hailam/magicboards/internal/board"
)

func TestPawnPushes(t *testing.T) {
	tests := []struct {
		name   string
		color  board.Color
		pawns  board.Bitboard
		empty  board.Bitboard // zero means everything but the pawns
		single board.Bitboard
		double board.Bitboard
	}{
		{
			name:   "white full rank",
			color:  board.White,
			pawns:  board.Rank2,
			single: board.Rank3,
			double: board.Rank4,
		},
		{
			name:   "white missing pawns",
			color:  board.White,
			pawns:  0xDB00,
			single: 0xDB0000,
			double: 0xDB000000,
		},
		{
			name:   "white blocked one square ahead",
			color:  board.White,
			pawns:  board.Rank2,
			empty:  0xFFFFFFFFFFAA00FF,
			single: 0xAA0000,
			double: 0xAA000000,
		},
		{
			name:   "white blocked two squares ahead",
			color:  board.White,
			pawns:  board.Rank2,
			empty:  0xFFFFFFFFAAFF00FF,
			single: board.Rank3,
			double: 0xAA000000,
		},
		{
			name:   "black full rank",
			color:  board.Black,
			pawns:  board.Rank7,
			single: board.Rank6,
			double: board.Rank5,
		},
		{
			name:   "black missing pawns",
			color:  board.Black,
			pawns:  0x00DB000000000000,
			single: 0x0000DB0000000000,
			double: 0x000000DB00000000,
		},
		{
			name:   "black blocked one square ahead",
			color:  board.Black,
			pawns:  board.Rank7,
			empty:  0xFF00AAFFFFFFFFFF,
			single: 0x0000AA0000000000,
			double: 0x000000AA00000000,
		},
		{
			name:   "black blocked two squares ahead",
			color:  board.Black,
			pawns:  board.Rank7,
			empty:  0xFF00FFAAFFFFFFFF,
			single: board.Rank6,
			double: 0x000000AA00000000,
		},
		{
			name:   "white pawns off the home rank",
			color:  board.White,
			pawns:  board.Rank3,
			single: board.Rank4,
			double: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			empty := tt.empty
			if empty == 0 {
				empty = ^tt.pawns
			}
			if got := SinglePush(tt.pawns, empty, tt.color); got != tt.single {
				t.Errorf("SinglePush = %#016x, want %#016x", uint64(got), uint64(tt.single))
			}
			if got := DoublePush(tt.pawns, empty, tt.color); got != tt.double {
				t.Errorf("DoublePush = %#016x, want %#016x", uint64(got), uint64(tt.double))
			}
			if got, want := PawnMoves(tt.pawns, empty, tt.color), tt.single|tt.double; got != want {
				t.Errorf("PawnMoves = %#016x, want %#016x", uint64(got), uint64(want))
			}
		})
	}
}

func TestPawnCaptures(t *testing.T) {
	tests := []struct {
		name  string
		color board.Color
		pawns board.Bitboard
		want  board.Bitboard
	}{
		{"white e4", board.White, board.E4.Bitboard(), board.D5.Bitboard() | board.F5.Bitboard()},
		{"white a2 edge", board.White, board.A2.Bitboard(), board.B3.Bitboard()},
		{"white h2 edge", board.White, board.H2.Bitboard(), board.G3.Bitboard()},
		{"black e5", board.Black, board.E5.Bitboard(), board.D4.Bitboard() | board.F4.Bitboard()},
		{"black a7 edge", board.Black, board.A7.Bitboard(), board.B6.Bitboard()},
		{"black h7 edge", board.Black, board.H7.Bitboard(), board.G6.Bitboard()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PawnCaptureSquares(tt.pawns, tt.color); got != tt.want {
				t.Errorf("PawnCaptureSquares = %#016x, want %#016x", uint64(got), uint64(tt.want))
			}
			got := PawnAttacks(tt.pawns, tt.want, tt.color, board.NoPlayedMove)
			if got != tt.want {
				t.Errorf("PawnAttacks = %#016x, want %#016x", uint64(got), uint64(tt.want))
			}
			if got := PawnAttacks(tt.pawns, 0, tt.color, board.NoPlayedMove); got != 0 {
				t.Errorf("PawnAttacks with no opponents = %#016x, want 0", uint64(got))
			}
		})
	}
}

func TestEnPassant(t *testing.T) {
	blackDouble := board.PlayedMove{Move: board.NewDoublePush(board.D7, board.D5), Piece: board.BlackPawn}
	whiteDouble := board.PlayedMove{Move: board.NewMove(board.G2, board.G4), Piece: board.WhitePawn}

	tests := []struct {
		name  string
		color board.Color
		pawns board.Bitboard
		last  board.PlayedMove
		want  board.Bitboard
	}{
		{"white e5 after d7d5", board.White, board.E5.Bitboard(), blackDouble, board.D6.Bitboard()},
		{"white c5 after d7d5", board.White, board.C5.Bitboard(), blackDouble, board.D6.Bitboard()},
		{"white pawns on both sides", board.White, board.C5.Bitboard() | board.E5.Bitboard(), blackDouble, board.D6.Bitboard()},
		{"white pawn not adjacent", board.White, board.F5.Bitboard(), blackDouble, 0},
		{"white pawn on wrong rank", board.White, board.E4.Bitboard(), blackDouble, 0},
		{"black f4 after g2g4", board.Black, board.F4.Bitboard(), whiteDouble, board.G3.Bitboard()},
		{"black h4 after g2g4", board.Black, board.H4.Bitboard(), whiteDouble, board.G3.Bitboard()},
		{
			name:  "single push is not en passant",
			color: board.White,
			pawns: board.E5.Bitboard(),
			last:  board.PlayedMove{Move: board.NewMove(board.D6, board.D5), Piece: board.BlackPawn},
		},
		{
			name:  "double step by another piece",
			color: board.White,
			pawns: board.E5.Bitboard(),
			last:  board.PlayedMove{Move: board.NewMove(board.D7, board.D5), Piece: board.BlackRook},
		},
		{
			name:  "own double push",
			color: board.White,
			pawns: board.E4.Bitboard(),
			last:  whiteDouble,
		},
		{"no history", board.White, board.E5.Bitboard(), board.NoPlayedMove, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnPassantTarget(tt.pawns, tt.color, tt.last)
			if got != tt.want {
				t.Errorf("EnPassantTarget = %#016x, want %#016x", uint64(got), uint64(tt.want))
			}
			if got.PopCount() > 1 {
				t.Errorf("EnPassantTarget returned %d squares", got.PopCount())
			}
			if attacks := PawnAttacks(tt.pawns, 0, tt.color, tt.last); attacks != tt.want {
				t.Errorf("PawnAttacks = %#016x, want %#016x", uint64(attacks), uint64(tt.want))
			}
		})
	}
}
