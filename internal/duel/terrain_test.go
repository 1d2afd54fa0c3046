package duel

import (
	"math"
	"testing"
)

func TestGenerateTerrain_SampleCountAndSpan(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	s := tr.Samples()
	if len(s) != 41 {
		t.Fatalf("expected 41 samples for width 800 step 20, got %d", len(s))
	}
	if s[0].X != 0 || s[len(s)-1].X != 800 {
		t.Fatalf("samples should span [0,800], got [%.1f,%.1f]", s[0].X, s[len(s)-1].X)
	}
	for i := 1; i < len(s); i++ {
		if s[i].X <= s[i-1].X {
			t.Fatalf("samples not strictly ascending at %d: %.2f then %.2f", i, s[i-1].X, s[i].X)
		}
	}
}

func TestGenerateTerrain_FormulaAtSamples(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	for _, p := range tr.Samples() {
		x := p.X
		want := 450 + 100*math.Sin(x/100) + 30*math.Cos(x/40) + 10*math.Sin(x/15) + 15*math.Sin(0.1*x)*math.Cos(0.05*x)
		if math.Abs(p.Y-want) > 1e-9 {
			t.Fatalf("sample at x=%.0f: expected %.6f, got %.6f", x, want, p.Y)
		}
	}
}

func TestGenerateTerrain_Deterministic(t *testing.T) {
	a := GenerateTerrain(800, 20).Samples()
	b := GenerateTerrain(800, 20).Samples()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("terrain differs between generations at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestTerrainHeightAt_ExactInterpolation(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	s := tr.Samples()
	for i := 0; i+1 < len(s); i++ {
		p1, p2 := s[i], s[i+1]
		for _, f := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9} {
			x := p1.X + f*(p2.X-p1.X)
			want := p1.Y + (p2.Y-p1.Y)*(x-p1.X)/(p2.X-p1.X)
			if got := tr.HeightAt(x); math.Abs(got-want) > 1e-9 {
				t.Fatalf("HeightAt(%.2f): expected %.6f, got %.6f", x, want, got)
			}
		}
	}
	if got := tr.HeightAt(800); math.Abs(got-s[len(s)-1].Y) > 1e-9 {
		t.Fatalf("HeightAt(800) should equal last sample %.4f, got %.4f", s[len(s)-1].Y, got)
	}
}

func TestTerrainHeightAt_OutsideSpanFallsBack(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	for _, x := range []float64{-0.001, -50, 800.001, 1200, math.NaN()} {
		if got := tr.HeightAt(x); got != 450 {
			t.Fatalf("HeightAt(%v) outside span should be 450, got %.4f", x, got)
		}
	}
}

func TestTerrainSilhouette_ClosedByAnchors(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	sil := tr.Silhouette()
	if len(sil) != len(tr.Samples())+2 {
		t.Fatalf("silhouette should add two anchors, got %d points", len(sil))
	}
	first, last := sil[0], sil[len(sil)-1]
	if first != (Point{X: 0, Y: 500}) || last != (Point{X: 800, Y: 500}) {
		t.Fatalf("anchors should be (0,500) and (800,500), got %+v and %+v", first, last)
	}
}

func TestTerrainSamples_ReturnsCopy(t *testing.T) {
	tr := GenerateTerrain(800, 20)
	s := tr.Samples()
	before := tr.HeightAt(0)
	s[0].Y = -1
	if tr.HeightAt(0) != before {
		t.Fatal("mutating Samples() result must not change the terrain")
	}
}

func TestGenerateTerrain_BadStepUsesDefault(t *testing.T) {
	tr := GenerateTerrain(800, 0)
	if n := len(tr.Samples()); n != 41 {
		t.Fatalf("non-positive step should fall back to 20, got %d samples", n)
	}
}
