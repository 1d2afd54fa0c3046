package game

import (
	"image/color"
	"testing"
)

func TestParseScene(t *testing.T) {
	for name, want := range map[string]Scene{"": SceneMountains, "Desert": SceneDesert, " arctic ": SceneArctic} {
		got, err := ParseScene(name)
		if err != nil || got != want {
			t.Fatalf("ParseScene(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseScene("swamp"); err == nil {
		t.Fatal("unknown scene should error")
	}
}

func TestPaletteFor_NightIsDarker(t *testing.T) {
	for _, s := range []Scene{SceneMountains, SceneDesert, SceneArctic} {
		day, night := paletteFor(s, false), paletteFor(s, true)
		if luma(night.front) >= luma(day.front) || luma(night.skyTop) >= luma(day.skyTop) {
			t.Fatalf("%s: night palette should be darker than day", s)
		}
	}
}

func TestIsNight(t *testing.T) {
	for h := 0; h < 24; h++ {
		want := h < 6 || h > 18
		if IsNight(h) != want {
			t.Fatalf("IsNight(%d) = %v", h, !want)
		}
	}
}

func TestSky_DriftStaysInBounds(t *testing.T) {
	for _, night := range []bool{false, true} {
		s := newSky(night, 800, 1)
		for i := 0; i < 5000; i++ {
			s.update(1)
		}
		for _, st := range s.stars {
			if st.x < 0 || st.x >= 800 {
				t.Fatalf("star drifted out: %.2f", st.x)
			}
		}
		for _, c := range s.clouds {
			if c.x < -100 || c.x >= 900 {
				t.Fatalf("cloud drifted out: %.2f", c.x)
			}
		}
	}
}

func TestScaleAlpha(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if scaleAlpha(c, 0) != (color.RGBA{}) || scaleAlpha(c, 1) != c {
		t.Fatal("scaleAlpha endpoints wrong")
	}
	h := scaleAlpha(c, 0.5)
	if h.A != 127 || h.R != 100 {
		t.Fatalf("half alpha wrong: %+v", h)
	}
}

func luma(c color.RGBA) int {
	return int(c.R)*299 + int(c.G)*587 + int(c.B)*114
}
