package magic

import (
	"bytes"
	"errors"
	"log"
	"math/bits"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/magicboards/internal/board"
)

func mustTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return tables
}

// sampleOccupancies returns n random boards of varying density.
func sampleOccupancies(seed uint64, n int) []board.Bitboard {
	r := rand.New(rand.NewPCG(seed, seed^0xA5A5))
	occ := make([]board.Bitboard, n)
	for i := range occ {
		switch i % 3 {
		case 0:
			occ[i] = board.Bitboard(r.Uint64())
		case 1:
			occ[i] = board.Bitboard(r.Uint64() & r.Uint64())
		default:
			occ[i] = board.Bitboard(r.Uint64() & r.Uint64() & r.Uint64())
		}
	}
	return occ
}

func TestPerfectHash(t *testing.T) {
	tables := mustTables(t)
	if err := tables.Verify(); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got, want := tables.Size(), 102400+5248; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestQueenIsUnion(t *testing.T) {
	tables := mustTables(t)

	if got, want := tables.Queen(board.E5, 0), board.Bitboard(0x492A1CF71C2A4988); got != want {
		t.Errorf("Queen(e5, empty) = %#016x, want %#016x", uint64(got), uint64(want))
	}

	for _, occ := range sampleOccupancies(3, 200) {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			want := MoveBoard(Rook, sq, occ) | MoveBoard(Bishop, sq, occ)
			if got := tables.Queen(sq, occ); got != want {
				t.Fatalf("Queen(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
		}
	}
}

func TestRebuildIsFunctionallyIdentical(t *testing.T) {
	if testing.Short() {
		t.Skip("rebuilds every table")
	}
	a := mustTables(t)
	b, err := Build(WithSeed(0xC0FFEE))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if a.Constants().Rook == b.Constants().Rook {
		t.Error("different seeds produced identical constants")
	}

	for _, occ := range sampleOccupancies(11, 500) {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			if x, y := a.Rook(sq, occ), b.Rook(sq, occ); x != y {
				t.Fatalf("Rook(%s, %#x): %#x vs %#x", sq, uint64(occ), uint64(x), uint64(y))
			}
			if x, y := a.Bishop(sq, occ), b.Bishop(sq, occ); x != y {
				t.Fatalf("Bishop(%s, %#x): %#x vs %#x", sq, uint64(occ), uint64(x), uint64(y))
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("rebuilds every table")
	}
	var stats Stats
	tables, err := Build(WithSeed(DefaultSeed), WithStats(&stats))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if tables.Constants() != mustTables(t).Constants() {
		t.Error("same seed produced different constants")
	}
	if stats.Total() < 128 {
		t.Errorf("stats.Total() = %d, want at least 128", stats.Total())
	}
	if stats.Entries != tables.Size() {
		t.Errorf("stats.Entries = %d, want %d", stats.Entries, tables.Size())
	}
}

func TestBuildWithSourceRecordsNoSeed(t *testing.T) {
	if testing.Short() {
		t.Skip("rebuilds every table")
	}
	// Same stream as the defaults, but supplied from outside.
	tables, err := Build(WithSeed(DefaultSeed), WithSource(NewPseudoRand(DefaultSeed)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := tables.Seed(); got != 0 {
		t.Errorf("Seed() = %#x, want 0", got)
	}
	set := tables.Constants()
	if set.Seed != 0 {
		t.Errorf("Constants().Seed = %#x, want 0", set.Seed)
	}
	if set.Rook != mustTables(t).Constants().Rook {
		t.Error("identical streams produced different rook constants")
	}
}

func TestFromConstants(t *testing.T) {
	tables := mustTables(t)
	set := tables.Constants()

	rebuilt, err := FromConstants(set)
	if err != nil {
		t.Fatalf("FromConstants() error: %v", err)
	}
	if rebuilt.Seed() != tables.Seed() {
		t.Errorf("Seed() = %#x, want %#x", rebuilt.Seed(), tables.Seed())
	}
	for _, occ := range sampleOccupancies(5, 50) {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			if rebuilt.Queen(sq, occ) != tables.Queen(sq, occ) {
				t.Fatalf("Queen(%s, %#x) differs after rebuild", sq, uint64(occ))
			}
		}
	}

	set.Bishop[board.C3] = 1
	if _, err := FromConstants(set); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("FromConstants with a broken bishop magic: error = %v, want ErrInvalidMagic", err)
	}
}

// lerf converts between this package's layout and the a1=0 layout used by
// dragontoothmg by mirroring every rank.
func lerf(b board.Bitboard) uint64 {
	return bits.ReverseBytes64(bits.Reverse64(uint64(b)))
}

func TestAgainstDragontooth(t *testing.T) {
	tables := mustTables(t)
	for _, occ := range sampleOccupancies(17, 300) {
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			dsq := uint8(sq.Rank()*8 + sq.File())

			want := dragontoothmg.CalculateRookMoveBitboard(dsq, lerf(occ))
			if got := lerf(tables.Rook(sq, occ)); got != want {
				t.Fatalf("Rook(%s, %#x) = %#x, dragontooth %#x", sq, uint64(occ), got, want)
			}

			want = dragontoothmg.CalculateBishopMoveBitboard(dsq, lerf(occ))
			if got := lerf(tables.Bishop(sq, occ)); got != want {
				t.Fatalf("Bishop(%s, %#x) = %#x, dragontooth %#x", sq, uint64(occ), got, want)
			}
		}
	}
}

func TestConcurrentReads(t *testing.T) {
	occs := sampleOccupancies(23, 64)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			tables, err := Default()
			if err != nil {
				return err
			}
			for _, occ := range occs {
				for sq := board.Square(0); sq < board.NoSquare; sq++ {
					if tables.Rook(sq, occ) != MoveBoard(Rook, sq, occ) {
						return errors.New("rook mismatch under concurrent reads")
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestBuildLogging(t *testing.T) {
	if testing.Short() {
		t.Skip("rebuilds every table")
	}
	var buf bytes.Buffer
	if _, err := Build(WithSeed(99), WithLogger(log.New(&buf, "", 0))); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	lines := strings.Count(buf.String(), "\n")
	if lines != 128 {
		t.Errorf("logged %d lines, want 128", lines)
	}
	if !strings.Contains(buf.String(), "magic: bishop a8") {
		t.Errorf("log missing bishop a8 line:\n%s", buf.String())
	}
}

func BenchmarkRook(b *testing.B) {
	tables := MustDefault()
	occs := sampleOccupancies(1, 1024)
	b.ResetTimer()
	var sink board.Bitboard
	for i := 0; i < b.N; i++ {
		sink ^= tables.Rook(board.Square(i&63), occs[i&1023])
	}
	_ = sink
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Build(WithSeed(uint64(i) + 1)); err != nil {
			b.Fatal(err)
		}
	}
}
