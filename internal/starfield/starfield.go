// Package starfield turns catalog stars into the flat per-instance attribute
// arrays the renderer uploads to the GPU, and expands them into per-vertex
// quad data matching raylib's fixed mesh slots.
package starfield

import (
	"github.com/chewxy/math32"

	"latent-stars/internal/astro"
	"latent-stars/internal/catalog"
)

const (
	// LatentScale spreads the learned embedding visually; latent coordinates
	// are amplified by this factor when written into the buffers.
	LatentScale = 5
	// SizeScale converts solar radii into point size units.
	SizeScale = 0.1
	// MinPointSize keeps every star visible regardless of computed radius.
	MinPointSize = 0.1
)

// Buffers holds one flat array per attribute, index-aligned by star: Sizes has
// one entry per star, the rest three. Built once per catalog load and never
// mutated afterwards.
type Buffers struct {
	Count             int
	Sizes             []float32
	Colors            []float32
	LatentPositions   []float32
	GalacticPositions []float32
}

// Build derives the instance attributes for every star in order: point size
// from the Stefan-Boltzmann radius (clamped to MinPointSize), color from the
// spectral class palette, latent positions amplified by LatentScale, galactic
// positions unscaled. Single pass; NaN fields flow through untouched, sizes
// included (max propagates NaN, so corrupt rows stay degenerate).
func Build(stars []catalog.Star) *Buffers {
	n := len(stars)
	b := &Buffers{
		Count:             n,
		Sizes:             make([]float32, n),
		Colors:            make([]float32, 3*n),
		LatentPositions:   make([]float32, 3*n),
		GalacticPositions: make([]float32, 3*n),
	}
	for i, s := range stars {
		temp := astro.Temperature(s.Spect)
		lum := astro.Luminosity(s.AbsMag)
		b.Sizes[i] = math32.Max(MinPointSize, astro.Radius(lum, temp)*SizeScale)

		c := astro.ClassColor(s.Spect)
		copy(b.Colors[3*i:], c[:])

		for k := 0; k < 3; k++ {
			b.LatentPositions[3*i+k] = s.Latent[k] * LatentScale
			b.GalacticPositions[3*i+k] = s.Galactic[k]
		}
	}
	return b
}

// QuadVertices is the per-vertex expansion of a Buffers set: each star becomes
// a two-triangle quad (6 vertices) whose attributes ride raylib's fixed mesh
// slots. Positions carry the galactic frame, Normals the latent frame, Corners
// the quad-local offset in [-0.5, 0.5], Sizes the point size replicated per
// vertex (two components to fill the texcoord2 slot).
type QuadVertices struct {
	VertexCount int
	Positions   []float32 // 3 per vertex
	Normals     []float32 // 3 per vertex
	Colors      []uint8   // 4 per vertex, RGBA
	Corners     []float32 // 2 per vertex
	Sizes       []float32 // 2 per vertex; y unused
}

// quadCorners lists the two counter-clockwise triangles of a unit point quad.
var quadCorners = [6][2]float32{
	{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5},
	{-0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5},
}

// Expand replicates every star's instance attributes across the 6 vertices of
// its quad. Pure and deterministic; the result feeds directly into a mesh
// upload.
func Expand(b *Buffers) *QuadVertices {
	n := b.Count * 6
	q := &QuadVertices{
		VertexCount: n,
		Positions:   make([]float32, 3*n),
		Normals:     make([]float32, 3*n),
		Colors:      make([]uint8, 4*n),
		Corners:     make([]float32, 2*n),
		Sizes:       make([]float32, 2*n),
	}
	for i := 0; i < b.Count; i++ {
		r := colorByte(b.Colors[3*i])
		g := colorByte(b.Colors[3*i+1])
		bl := colorByte(b.Colors[3*i+2])
		for c, corner := range quadCorners {
			v := i*6 + c
			copy(q.Positions[3*v:], b.GalacticPositions[3*i:3*i+3])
			copy(q.Normals[3*v:], b.LatentPositions[3*i:3*i+3])
			q.Colors[4*v] = r
			q.Colors[4*v+1] = g
			q.Colors[4*v+2] = bl
			q.Colors[4*v+3] = 255
			q.Corners[2*v] = corner[0]
			q.Corners[2*v+1] = corner[1]
			q.Sizes[2*v] = b.Sizes[i]
		}
	}
	return q
}

// colorByte converts a [0,1] channel to a byte; NaN and negatives map to 0.
func colorByte(f float32) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
