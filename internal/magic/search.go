package magic

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/hailam/magicboards/internal/board"
)

// DefaultMaxAttempts bounds the candidates tried for one square.
const DefaultMaxAttempts = 100_000_000

var (
	// ErrMagicNotFound is wrapped by *SearchError when a square runs out of
	// attempts.
	ErrMagicNotFound = errors.New("magic number not found")
	// ErrInvalidMagic is returned when a supplied constant maps two blocker
	// boards with different move boards to the same slot.
	ErrInvalidMagic = errors.New("invalid magic number")
)

// SearchError reports a square whose search exhausted its attempt budget.
type SearchError struct {
	Kind     Kind
	Square   board.Square
	Attempts int
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("magic: %s %s: no magic after %d attempts", e.Kind, e.Square, e.Attempts)
}

func (e *SearchError) Unwrap() error {
	return ErrMagicNotFound
}

// Entry is the finished table of one slider on one square.
type Entry struct {
	Mask  board.Bitboard
	Magic uint64
	Bits  uint8
	Table []board.Bitboard
}

// Index hashes an occupancy into a table slot.
func (e *Entry) Index(occupancy board.Bitboard) uint64 {
	return (uint64(occupancy&e.Mask) * e.Magic) >> (64 - e.Bits)
}

// Attacks returns the move board for an occupancy.
func (e *Entry) Attacks(occupancy board.Bitboard) board.Bitboard {
	return e.Table[e.Index(occupancy)]
}

// occupancies holds every blocker board of one square next to its move
// board. It is shared by every candidate tried for that square.
type occupancies struct {
	kind   Kind
	square board.Square
	mask   board.Bitboard
	bits   uint8
	boards []board.Bitboard
	moves  []board.Bitboard
}

func newOccupancies(k Kind, sq board.Square) *occupancies {
	mask := Mask(k, sq)
	o := &occupancies{
		kind:   k,
		square: sq,
		mask:   mask,
		bits:   uint8(mask.PopCount()),
		boards: BlockerBoards(mask),
	}
	o.moves = make([]board.Bitboard, len(o.boards))
	for i, b := range o.boards {
		o.moves[i] = MoveBoard(k, sq, b)
	}
	return o
}

// scratch is the candidate table used while testing multipliers. A slot is
// assigned only when its stamp equals the current attempt, so moving to the
// next candidate leaves every slot unassigned without clearing.
type scratch struct {
	table []board.Bitboard
	stamp []uint32
	epoch uint32
}

func newScratch(bits uint8) *scratch {
	return &scratch{
		table: make([]board.Bitboard, 1<<bits),
		stamp: make([]uint32, 1<<bits),
	}
}

// try fills the scratch table with magic and reports whether every blocker
// board landed in a slot that is unassigned or already holds the same move
// board.
func (s *scratch) try(o *occupancies, magic uint64) bool {
	s.epoch++
	if s.epoch == 0 {
		clear(s.stamp)
		s.epoch = 1
	}
	shift := 64 - o.bits
	for i, b := range o.boards {
		idx := (uint64(b) * magic) >> shift
		if s.stamp[idx] != s.epoch {
			s.stamp[idx] = s.epoch
			s.table[idx] = o.moves[i]
		} else if s.table[idx] != o.moves[i] {
			return false
		}
	}
	return true
}

// entry copies the scratch table into a finished Entry. Slots no blocker
// board hashes to stay empty.
func (s *scratch) entry(o *occupancies, magic uint64) Entry {
	table := make([]board.Bitboard, len(s.table))
	for i := range table {
		if s.stamp[i] == s.epoch {
			table[i] = s.table[i]
		}
	}
	return Entry{Mask: o.mask, Magic: magic, Bits: o.bits, Table: table}
}

// FindMagic searches for a multiplier for slider k on sq, drawing sparse
// candidates from src. It gives up after maxAttempts candidates; a
// non-positive budget means DefaultMaxAttempts. It also returns the number
// of candidates drawn.
func FindMagic(k Kind, sq board.Square, src Source, maxAttempts int) (Entry, int, error) {
	if k.directions() == nil {
		return Entry{}, 0, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	o := newOccupancies(k, sq)
	s := newScratch(o.bits)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		magic := sparse(src)
		// A multiplier that leaves the top byte of mask*magic sparse cannot
		// spread the mask across the index bits.
		if bits.OnesCount64((uint64(o.mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}
		if s.try(o, magic) {
			return s.entry(o, magic), attempt, nil
		}
	}

	return Entry{}, maxAttempts, &SearchError{Kind: k, Square: sq, Attempts: maxAttempts}
}

// entryFor rebuilds the table for a known multiplier.
func entryFor(k Kind, sq board.Square, magic uint64) (Entry, error) {
	if k.directions() == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	o := newOccupancies(k, sq)
	s := newScratch(o.bits)
	if !s.try(o, magic) {
		return Entry{}, fmt.Errorf("%w: %s %s %#016x", ErrInvalidMagic, k, sq, magic)
	}
	return s.entry(o, magic), nil
}
