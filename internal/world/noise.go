package world

import (
	"math"
)

// Deterministic value noise. Lattice values come from integer hashing so the
// result depends only on the coordinates and the seed, never on call order.

// Purpose tags keep each generation concern on its own random stream.
const (
	purposeHills uint64 = iota + 1
	purposeMountains
	purposeDetail
	purposeCaves
	purposeBedrock
	purposeTrees
	purposeOres // ore i uses purposeOres + i
)

// mix64 is the SplitMix64 finalizer.
func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// deriveSeed returns the stream seed for one purpose of a world seed.
func deriveSeed(seed int64, purpose uint64) uint64 {
	return mix64(uint64(seed) ^ mix64(purpose))
}

func hash2(x, z int64, seed uint64) uint64 {
	return mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x6C62272E07BB0142 + seed)
}

func hash3(x, y, z int64, seed uint64) uint64 {
	return mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + seed)
}

// unitFloat maps a hash to [0,1).
func unitFloat(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// fade is the smootherstep curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func valueNoise2D(x, z float64, seed uint64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	ix, iz := int64(x0), int64(z0)

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := unitFloat(hash2(ix, iz, seed))
	v10 := unitFloat(hash2(ix+1, iz, seed))
	v01 := unitFloat(hash2(ix, iz+1, seed))
	v11 := unitFloat(hash2(ix+1, iz+1, seed))

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz) // [0,1]
}

func valueNoise3D(x, y, z float64, seed uint64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	v000 := unitFloat(hash3(ix, iy, iz, seed))
	v100 := unitFloat(hash3(ix+1, iy, iz, seed))
	v010 := unitFloat(hash3(ix, iy+1, iz, seed))
	v110 := unitFloat(hash3(ix+1, iy+1, iz, seed))
	v001 := unitFloat(hash3(ix, iy, iz+1, seed))
	v101 := unitFloat(hash3(ix+1, iy, iz+1, seed))
	v011 := unitFloat(hash3(ix, iy+1, iz+1, seed))
	v111 := unitFloat(hash3(ix+1, iy+1, iz+1, seed))

	// X, then Y, then Z
	i00 := lerp(v000, v100, fx)
	i10 := lerp(v010, v110, fx)
	i01 := lerp(v001, v101, fx)
	i11 := lerp(v011, v111, fx)

	i0 := lerp(i00, i10, fy)
	i1 := lerp(i01, i11, fy)

	return lerp(i0, i1, fz) // [0,1]
}

// octaveSeed gives every octave an unrelated lattice.
func octaveSeed(seed uint64, octave int) uint64 {
	return seed + uint64(octave)*0xD1B54A32D192ED03
}

func octaveNoise2D(x, z float64, seed uint64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise2D(x*frequency, z*frequency, octaveSeed(seed, i)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

func octaveNoise3D(x, y, z float64, seed uint64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise3D(x*frequency, y*frequency, z*frequency, octaveSeed(seed, i)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}
