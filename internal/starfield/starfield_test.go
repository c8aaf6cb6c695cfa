package starfield

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"latent-stars/internal/astro"
	"latent-stars/internal/catalog"
)

func twoStars() []catalog.Star {
	return []catalog.Star{
		{ID: 1, Latent: [3]float32{1, 0, 0}, Galactic: [3]float32{10, 0, 0}, AbsMag: 4.83, Spect: "G2"},
		{ID: 2, Latent: [3]float32{0, 1, 0}, Galactic: [3]float32{0, 10, 0}, AbsMag: 9.83, Spect: "M5"},
	}
}

func TestBuildArrayLengths(t *testing.T) {
	stars := twoStars()
	b := Build(stars)

	require.Equal(t, 2, b.Count)
	assert.Len(t, b.Sizes, 2)
	assert.Len(t, b.Colors, 6)
	assert.Len(t, b.LatentPositions, 6)
	assert.Len(t, b.GalacticPositions, 6)
}

func TestBuildPositions(t *testing.T) {
	stars := twoStars()
	b := Build(stars)

	for i, s := range stars {
		for k := 0; k < 3; k++ {
			assert.Equal(t, s.Galactic[k], b.GalacticPositions[3*i+k], "galactic is unscaled")
			assert.Equal(t, s.Latent[k]*5, b.LatentPositions[3*i+k], "latent is amplified by 5")
		}
	}
}

func TestBuildSizesAndColors(t *testing.T) {
	stars := twoStars()
	b := Build(stars)

	for i, s := range stars {
		lum := astro.Luminosity(s.AbsMag)
		temp := astro.Temperature(s.Spect)
		want := math32.Max(MinPointSize, astro.Radius(lum, temp)*SizeScale)
		assert.Equal(t, want, b.Sizes[i])

		c := astro.ClassColor(s.Spect)
		assert.Equal(t, c[:], b.Colors[3*i:3*i+3])
	}
}

func TestBuildEndToEndScenario(t *testing.T) {
	stars := twoStars()
	b := Build(stars)
	require.Equal(t, 2, b.Count)

	// Star 1 sits exactly at the solar reference; star 2 is five magnitudes
	// fainter, so L2 = Lsun * 10^-2.
	assert.Equal(t, float32(astro.SunLuminosityW), astro.Luminosity(stars[0].AbsMag))
	assert.InDelta(t, astro.SunLuminosityW*1e-2, astro.Luminosity(stars[1].AbsMag), astro.SunLuminosityW*1e-2*0.001)

	// The faint cool M5 star still renders: size never drops below the floor.
	assert.GreaterOrEqual(t, b.Sizes[1], float32(MinPointSize))
}

func TestBuildNaNFlowsThrough(t *testing.T) {
	stars := []catalog.Star{
		{ID: 7, Latent: [3]float32{math32.NaN(), 0, 0}, Galactic: [3]float32{0, math32.NaN(), 0}, AbsMag: math32.NaN()},
	}
	b := Build(stars)

	assert.True(t, math32.IsNaN(b.LatentPositions[0]))
	assert.True(t, math32.IsNaN(b.GalacticPositions[1]))
	// A NaN magnitude makes the radius NaN, and max(0.1, NaN) propagates it:
	// corrupt rows keep their degenerate size instead of being patched up.
	assert.True(t, math32.IsNaN(b.Sizes[0]))
}

func TestExpandLayout(t *testing.T) {
	b := Build(twoStars())
	q := Expand(b)

	require.Equal(t, 12, q.VertexCount)
	assert.Len(t, q.Positions, 36)
	assert.Len(t, q.Normals, 36)
	assert.Len(t, q.Colors, 48)
	assert.Len(t, q.Corners, 24)
	assert.Len(t, q.Sizes, 24)

	for i := 0; i < b.Count; i++ {
		for c := 0; c < 6; c++ {
			v := i*6 + c
			assert.Equal(t, b.GalacticPositions[3*i:3*i+3], q.Positions[3*v:3*v+3])
			assert.Equal(t, b.LatentPositions[3*i:3*i+3], q.Normals[3*v:3*v+3])
			assert.Equal(t, b.Sizes[i], q.Sizes[2*v])
			assert.Equal(t, uint8(255), q.Colors[4*v+3], "alpha is opaque")
		}
		// Corner offsets trace two triangles of the unit quad.
		assert.Equal(t, [2]float32{-0.5, -0.5}, [2]float32{q.Corners[12*i], q.Corners[12*i+1]})
		assert.Equal(t, [2]float32{0.5, 0.5}, [2]float32{q.Corners[12*i+4], q.Corners[12*i+5]})
	}
}

func TestColorByteConversion(t *testing.T) {
	assert.Equal(t, uint8(0), colorByte(math32.NaN()))
	assert.Equal(t, uint8(0), colorByte(-0.5))
	assert.Equal(t, uint8(255), colorByte(1))
	assert.Equal(t, uint8(255), colorByte(2))
	assert.Equal(t, uint8(128), colorByte(0.5))
}
