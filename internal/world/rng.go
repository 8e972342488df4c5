package world

import (
	"math/rand/v2"
)

// chunkRand returns a random stream owned by one call. The stream is a pure
// function of (seed, chunkX, chunkZ, purpose), so features placed from it do
// not depend on the order in which chunks are generated.
func chunkRand(seed int64, chunkX, chunkZ int, purpose uint64) *rand.Rand {
	base := deriveSeed(seed, purpose)
	s1 := mix64(base ^ uint64(int64(chunkX))*0x9E3779B97F4A7C15)
	s2 := mix64(s1 ^ uint64(int64(chunkZ))*0xC2B2AE3D27D4EB4F)
	return rand.New(rand.NewPCG(s1, s2))
}

// cellChance returns a uniform value in [0,1) for one block and purpose.
func cellChance(x, y, z int, seed uint64) float64 {
	return unitFloat(hash3(int64(x), int64(y), int64(z), seed))
}
