package voxmesh

import (
	"encoding/binary"
	"math/rand/v2"

	xxhash "github.com/cespare/xxhash/v2"
)

// RandomSource yields uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it. Implementations are not expected to be safe
// for concurrent use; give each goroutine its own source.
type RandomSource interface {
	IntN(n int) int
}

// NewSeededSource returns a deterministic PCG source.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// ChunkSeed derives an independent per-chunk seed from a world seed, so
// chunks can be generated in any order or in parallel with the same result.
func ChunkSeed(seed uint64, c ChunkCoord) uint64 {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[0:], seed)
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(c.X)))
	binary.LittleEndian.PutUint64(b[16:], uint64(int64(c.Y)))
	binary.LittleEndian.PutUint64(b[24:], uint64(int64(c.Z)))
	return xxhash.Sum64(b[:])
}

// FixedSource always returns the same palette index.
type FixedSource int

func (f FixedSource) IntN(int) int { return int(f) }

// replaySource hands back previously recorded draws. Once exhausted it
// returns -1, which the generator rejects.
type replaySource struct {
	draws []uint8
	pos   int
}

// NewReplaySource replays draws in order.
func NewReplaySource(draws []uint8) RandomSource {
	return &replaySource{draws: draws}
}

func (r *replaySource) IntN(int) int {
	if r.pos >= len(r.draws) {
		return -1
	}
	v := r.draws[r.pos]
	r.pos++
	return int(v)
}

type recordingSource struct {
	src   RandomSource
	draws []uint8
}

func (r *recordingSource) IntN(n int) int {
	v := r.src.IntN(n)
	r.draws = append(r.draws, uint8(v))
	return v
}
