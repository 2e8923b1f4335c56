package magic

// Source supplies raw 64-bit random values. *PseudoRand implements it, as
// does *math/rand/v2.Rand.
type Source interface {
	Uint64() uint64
}

// PseudoRand is a xorshift64* generator. It is deterministic for a given
// seed, which keeps magic constants reproducible across builds.
type PseudoRand struct {
	s uint64
}

// zeroSeed replaces a zero seed; xorshift never leaves the all-zero state.
const zeroSeed = 0x9E3779B97F4A7C15

// NewPseudoRand returns a generator seeded with seed.
func NewPseudoRand(seed uint64) *PseudoRand {
	r := &PseudoRand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state.
func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = zeroSeed
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// SparseUint64 returns a value with roughly an eighth of its bits set.
func (r *PseudoRand) SparseUint64() uint64 {
	return sparse(r)
}

func sparse(src Source) uint64 {
	return src.Uint64() & src.Uint64() & src.Uint64()
}
