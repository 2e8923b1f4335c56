// Package magic builds magic-bitboard attack tables for the sliding pieces.
//
// For every square and slider kind it derives the relevant blocker mask,
// enumerates every blocker board of that mask, computes the true move board
// by ray marching, and searches for a multiplier that hashes all blocker
// boards into a collision-free table. The finished Tables are immutable and
// safe for concurrent reads.
package magic

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the slider whose rays a table describes.
type Kind uint8

const (
	Rook Kind = iota
	Bishop
)

// Kinds lists every slider kind in table order.
var Kinds = [2]Kind{Rook, Bishop}

// ErrUnknownKind is returned when a kind name is not recognised.
var ErrUnknownKind = errors.New("unknown slider kind")

func (k Kind) String() string {
	switch k {
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses "rook" or "bishop" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "rook", "r":
		return Rook, nil
	case "bishop", "b":
		return Bishop, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type direction struct {
	df, dr int
}

var (
	rookDirections   = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirections = []direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

func (k Kind) directions() []direction {
	switch k {
	case Rook:
		return rookDirections
	case Bishop:
		return bishopDirections
	}
	return nil
}
