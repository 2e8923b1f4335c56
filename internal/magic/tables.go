package magic

import (
	"fmt"
	"log"

	"github.com/hailam/magicboards/internal/board"
)

// DefaultSeed seeds the default tables.
const DefaultSeed uint64 = 0x5EED0FB17B0A2D

// Tables holds the rook and bishop entries of every square.
// A Tables value is never modified after Build or FromConstants returns.
type Tables struct {
	seed   uint64
	rook   [64]Entry
	bishop [64]Entry
}

// ConstantSet is the persistent form of a Tables: the multipliers alone are
// enough to rebuild every table.
type ConstantSet struct {
	Seed   uint64     `json:"seed"`
	Rook   [64]uint64 `json:"rook"`
	Bishop [64]uint64 `json:"bishop"`
}

// Stats summarises a build.
type Stats struct {
	Attempts [2][64]int
	Entries  int
}

// Total returns the number of candidates drawn across all squares.
func (s Stats) Total() int {
	total := 0
	for _, kind := range s.Attempts {
		for _, n := range kind {
			total += n
		}
	}
	return total
}

type config struct {
	seed        uint64
	maxAttempts int
	source      Source
	logger      *log.Logger
	stats       *Stats
}

// Option configures Build.
type Option func(*config)

// WithSeed seeds the built-in generator. Ignored when WithSource is given,
// in which case the tables record seed 0.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithMaxAttempts bounds the candidates tried per square.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithSource draws candidates from src instead of the seeded generator.
func WithSource(src Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithLogger logs one line per square while building.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithStats records per-square attempt counts into s.
func WithStats(s *Stats) Option {
	return func(c *config) {
		c.stats = s
	}
}

// Build searches a multiplier for every square of both sliders.
// The first square that exhausts its budget aborts the build with a
// *SearchError.
func Build(opts ...Option) (*Tables, error) {
	cfg := config{
		seed:        DefaultSeed,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &Tables{seed: cfg.seed}
	src := cfg.source
	if src == nil {
		src = NewPseudoRand(cfg.seed)
	} else {
		// The seed did not produce these constants.
		t.seed = 0
	}

	for _, k := range Kinds {
		entries := t.entries(k)
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			e, attempts, err := FindMagic(k, sq, src, cfg.maxAttempts)
			if cfg.stats != nil {
				cfg.stats.Attempts[k][sq] = attempts
			}
			if err != nil {
				return nil, err
			}
			entries[sq] = e
			if cfg.stats != nil {
				cfg.stats.Entries += len(e.Table)
			}
			if cfg.logger != nil {
				cfg.logger.Printf("magic: %s %s bits=%d attempts=%d magic=%#016x",
					k, sq, e.Bits, attempts, e.Magic)
			}
		}
	}
	return t, nil
}

// FromConstants rebuilds tables from stored multipliers, rejecting any that
// no longer hash collision-free.
func FromConstants(set ConstantSet) (*Tables, error) {
	t := &Tables{seed: set.Seed}
	for _, k := range Kinds {
		magics := set.Rook
		if k == Bishop {
			magics = set.Bishop
		}
		entries := t.entries(k)
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			e, err := entryFor(k, sq, magics[sq])
			if err != nil {
				return nil, fmt.Errorf("rebuild tables (seed %#x): %w", set.Seed, err)
			}
			entries[sq] = e
		}
	}
	return t, nil
}

func (t *Tables) entries(k Kind) *[64]Entry {
	if k == Bishop {
		return &t.bishop
	}
	return &t.rook
}

// Seed returns the seed the tables were built from, or 0 when they came
// from a custom Source.
func (t *Tables) Seed() uint64 {
	return t.seed
}

// Entry returns the table of slider k on sq.
func (t *Tables) Entry(k Kind, sq board.Square) *Entry {
	return &t.entries(k)[sq]
}

// Rook returns the rook move board from sq for the given occupancy.
func (t *Tables) Rook(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return t.rook[sq].Attacks(occupancy)
}

// Bishop returns the bishop move board from sq for the given occupancy.
func (t *Tables) Bishop(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return t.bishop[sq].Attacks(occupancy)
}

// Queen is the union of the rook and bishop move boards.
func (t *Tables) Queen(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return t.Rook(sq, occupancy) | t.Bishop(sq, occupancy)
}

// Attacks dispatches on k.
func (t *Tables) Attacks(k Kind, sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return t.Entry(k, sq).Attacks(occupancy)
}

// Constants exports the multipliers.
func (t *Tables) Constants() ConstantSet {
	set := ConstantSet{Seed: t.seed}
	for sq := range t.rook {
		set.Rook[sq] = t.rook[sq].Magic
		set.Bishop[sq] = t.bishop[sq].Magic
	}
	return set
}

// Size returns the total number of table slots.
func (t *Tables) Size() int {
	n := 0
	for sq := range t.rook {
		n += len(t.rook[sq].Table) + len(t.bishop[sq].Table)
	}
	return n
}

// Verify checks every blocker board of every entry against a freshly ray
// marched move board.
func (t *Tables) Verify() error {
	for _, k := range Kinds {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			e := t.Entry(k, sq)
			if want := Mask(k, sq); e.Mask != want {
				return fmt.Errorf("%w: %s %s mask %#016x, want %#016x",
					ErrInvalidMagic, k, sq, uint64(e.Mask), uint64(want))
			}
			var err error
			EachBlockerBoard(e.Mask, func(_ int, b board.Bitboard) bool {
				if got, want := e.Attacks(b), MoveBoard(k, sq, b); got != want {
					err = fmt.Errorf("%w: %s %s blockers %#016x: got %#016x, want %#016x",
						ErrInvalidMagic, k, sq, uint64(b), uint64(got), uint64(want))
					return false
				}
				return true
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
