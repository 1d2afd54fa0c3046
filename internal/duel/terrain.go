package duel

import (
	"math"
	"sort"
)

// Point is one terrain sample in screen space (y grows downward).
type Point struct {
	X, Y float64
}

// Terrain is an immutable piecewise-linear height profile.
type Terrain struct {
	width    float64
	fallback float64
	anchorY  float64
	samples  []Point // strictly ascending X
}

// terrainHeight is the fixed trigonometric profile. No randomness, so a given
// width/step always yields the same ridge.
func terrainHeight(x float64) float64 {
	const baseHeight = 450.0
	mainWave := math.Sin(x/100) * 100
	detailWave := math.Cos(x/40) * 30
	microDetail := math.Sin(x/15) * 10
	roughness := math.Sin(x*0.1) * math.Cos(x*0.05) * 15
	return baseHeight + mainWave + detailWave + microDetail + roughness
}

// GenerateTerrain samples the ridge every step units across [0, width].
func GenerateTerrain(width, step float64) *Terrain {
	return generateTerrain(width, step, defaultTerrainFallback, defaultAnchorY)
}

// NewTerrain builds the terrain described by t.
func NewTerrain(t Tuning) *Terrain {
	return generateTerrain(t.Width, t.TerrainStep, t.TerrainFallback, t.AnchorY)
}

func generateTerrain(width, step, fallback, anchorY float64) *Terrain {
	if width <= 0 {
		width = defaultWidth
	}
	if step <= 0 {
		step = defaultTerrainStep
	}
	n := int(math.Floor(width/step)) + 1
	samples := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		// Multiply rather than accumulate so the last sample lands on width exactly.
		x := float64(i) * step
		samples = append(samples, Point{X: x, Y: terrainHeight(x)})
	}
	return &Terrain{
		width:    width,
		fallback: fallback,
		anchorY:  anchorY,
		samples:  samples,
	}
}

// HeightAt linearly interpolates between the two samples bracketing x.
// Outside the sampled span it returns the fallback height.
func (t *Terrain) HeightAt(x float64) float64 {
	s := t.samples
	if len(s) == 0 || math.IsNaN(x) || x < s[0].X || x > s[len(s)-1].X {
		return t.fallback
	}
	// First sample with X >= x.
	i := sort.Search(len(s), func(i int) bool { return s[i].X >= x })
	if s[i].X == x {
		return s[i].Y
	}
	p1, p2 := s[i-1], s[i]
	ratio := (x - p1.X) / (p2.X - p1.X)
	return p1.Y + (p2.Y-p1.Y)*ratio
}

// Width is the horizontal extent of the terrain.
func (t *Terrain) Width() float64 {
	return t.width
}

// Samples returns a copy of the surface samples.
func (t *Terrain) Samples() []Point {
	out := make([]Point, len(t.samples))
	copy(out, t.samples)
	return out
}

// Silhouette returns the surface closed by the two anchor points at AnchorY,
// in drawing order, for filled rendering.
func (t *Terrain) Silhouette() []Point {
	out := make([]Point, 0, len(t.samples)+2)
	out = append(out, Point{X: 0, Y: t.anchorY})
	out = append(out, t.samples...)
	out = append(out, Point{X: t.width, Y: t.anchorY})
	return out
}
