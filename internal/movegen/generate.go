package movegen

import (
	"github.com/hailam/magicboards/internal/board"
	"github.com/hailam/magicboards/internal/magic"
)

// Generator produces pseudo-legal move lists. Moves that leave the own king
// in check are not filtered out.
type Generator struct {
	tables *magic.Tables
}

// NewGenerator returns a generator reading sliders from tables.
func NewGenerator(tables *magic.Tables) *Generator {
	return &Generator{tables: tables}
}

// DefaultGenerator returns a generator over the default magic tables.
func DefaultGenerator() (*Generator, error) {
	tables, err := magic.Default()
	if err != nil {
		return nil, err
	}
	return NewGenerator(tables), nil
}

var promotions = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// Generate appends every pseudo-legal move of side to ml. last is the move
// played just before and decides en passant.
func (g *Generator) Generate(pieces *board.Pieces, side board.Color, last board.PlayedMove, ml *board.MoveList) {
	own := pieces.ByColor(side)
	opponents := pieces.ByColor(side.Other())
	occupied := own | opponents
	empty := ^occupied

	g.pawnMoves(pieces.Get(side, board.Pawn), empty, opponents, side, last, ml)

	for pt := board.Knight; pt <= board.King; pt++ {
		pieces.Get(side, pt).ForEach(func(from board.Square) {
			addMoves(ml, from, g.pieceMoves(pt, from, occupied)&^own)
		})
	}
}

// pieceMoves returns every square a non-pawn piece of type pt on from
// reaches, own pieces included.
func (g *Generator) pieceMoves(pt board.PieceType, from board.Square, occupied board.Bitboard) board.Bitboard {
	if pt.IsSlider() {
		switch pt {
		case board.Bishop:
			return g.tables.Bishop(from, occupied)
		case board.Rook:
			return g.tables.Rook(from, occupied)
		default:
			return g.tables.Queen(from, occupied)
		}
	}
	if pt == board.Knight {
		return AllKnightMoves(from.Bitboard())
	}
	return AllKingMoves(from.Bitboard())
}

// Attacked returns every square side attacks, ignoring whose pieces stand
// there.
func (g *Generator) Attacked(pieces *board.Pieces, side board.Color) board.Bitboard {
	occupied := pieces.Occupied()
	attacked := PawnCaptureSquares(pieces.Get(side, board.Pawn), side)
	attacked |= AllKnightMoves(pieces.Get(side, board.Knight))
	attacked |= AllKingMoves(pieces.Get(side, board.King))

	diagonal := pieces.Get(side, board.Bishop) | pieces.Get(side, board.Queen)
	diagonal.ForEach(func(from board.Square) {
		attacked |= g.tables.Bishop(from, occupied)
	})
	straight := pieces.Get(side, board.Rook) | pieces.Get(side, board.Queen)
	straight.ForEach(func(from board.Square) {
		attacked |= g.tables.Rook(from, occupied)
	})
	return attacked
}

func (g *Generator) pawnMoves(pawns, empty, opponents board.Bitboard, side board.Color, last board.PlayedMove, ml *board.MoveList) {
	back := 8
	lastRank := board.Rank8
	if side == board.Black {
		back = -8
		lastRank = board.Rank1
	}

	SinglePush(pawns, empty, side).ForEach(func(to board.Square) {
		addPawnMove(ml, board.Square(int(to)-back), to, lastRank)
	})
	DoublePush(pawns, empty, side).ForEach(func(to board.Square) {
		ml.Add(board.NewDoublePush(board.Square(int(to)-2*back), to))
	})

	pawns.ForEach(func(from board.Square) {
		pawn := from.Bitboard()
		if ep := EnPassantTarget(pawn, side, last); ep != 0 {
			ml.Add(board.NewEnPassant(from, ep.LSB()))
		}
		(PawnCaptureSquares(pawn, side) & opponents).ForEach(func(to board.Square) {
			addPawnMove(ml, from, to, lastRank)
		})
	})
}

func addPawnMove(ml *board.MoveList, from, to board.Square, lastRank board.Bitboard) {
	if !lastRank.IsSet(to) {
		ml.Add(board.NewMove(from, to))
		return
	}
	for _, pt := range promotions {
		ml.Add(board.NewPromotion(from, to, pt))
	}
}

func addMoves(ml *board.MoveList, from board.Square, targets board.Bitboard) {
	for _, to := range Destinations(targets) {
		ml.Add(board.NewMove(from, to.LSB()))
	}
}
