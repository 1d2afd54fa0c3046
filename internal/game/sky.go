package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	starCount  = 100
	cloudCount = 8

	// skyDriftEvery is how many ticks pass between drift steps (50ms at 60 TPS).
	skyDriftEvery = 3
)

// IsNight reports whether the sky should be dark at the given hour.
func IsNight(hour int) bool {
	return hour < 6 || hour > 18
}

type star struct {
	x, y, size, speed float64
}

type cloud struct {
	x, y, size, speed float64
}

// sky is the animated backdrop. It drifts with the wind but has no effect on
// the simulation.
type sky struct {
	night  bool
	width  float64
	stars  []star
	clouds []cloud
	rng    *rand.Rand
	ticks  int
}

func newSky(night bool, width float64, seed int64) *sky {
	s := &sky{night: night, width: width, rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- cosmetic only
	if night {
		s.stars = make([]star, starCount)
		for i := range s.stars {
			s.stars[i] = star{
				x:     s.rng.Float64() * width,
				y:     s.rng.Float64() * 400,
				size:  s.rng.Float64()*2 + 1,
				speed: s.rng.Float64()*0.02 + 0.01,
			}
		}
		return s
	}
	s.clouds = make([]cloud, cloudCount)
	for i := range s.clouds {
		s.clouds[i] = cloud{
			x:     s.rng.Float64()*(width+100) - 100,
			y:     s.rng.Float64()*200 + 50,
			size:  s.rng.Float64()*80 + 60,
			speed: s.rng.Float64()*0.05 + 0.02,
		}
	}
	return s
}

// skyForNow builds the backdrop for the current wall-clock hour.
func skyForNow(width float64) *sky {
	now := time.Now()
	return newSky(IsNight(now.Hour()), width, now.UnixNano())
}

// update drifts stars and clouds downwind.
func (s *sky) update(wind float64) {
	s.ticks++
	if s.ticks%skyDriftEvery != 0 {
		return
	}
	for i := range s.stars {
		st := &s.stars[i]
		st.x = wrap(st.x+wind*st.speed*2, s.width)
	}
	span := s.width + 100
	for i := range s.clouds {
		c := &s.clouds[i]
		c.x = wrap(c.x+100+wind*c.speed*2, span) - 100
	}
}

// wrap maps v into [0, span).
func wrap(v, span float64) float64 {
	for v < 0 {
		v += span
	}
	for v >= span {
		v -= span
	}
	return v
}

func (s *sky) draw(dst *ebiten.Image, ox, oy float32, w, h float32, p palette) {
	// Vertical gradient in bands.
	const bands = 48
	bh := h / bands
	for i := 0; i < bands; i++ {
		t := float64(i) / float64(bands-1)
		c := lerpColor(p.skyTop, p.skyMid, t/0.5)
		if t > 0.5 {
			c = lerpColor(p.skyMid, p.skyBottom, (t-0.5)/0.5)
		}
		vector.FillRect(dst, ox, oy+float32(i)*bh, w, bh+1, c, false)
	}

	if s.night {
		for _, st := range s.stars {
			a := 0.5 + s.rng.Float64()*0.5
			vector.FillCircle(dst, ox+float32(st.x), oy+float32(st.y), float32(st.size), scaleAlpha(rgb(255, 255, 255), a), true)
		}
		vector.FillCircle(dst, ox+700, oy+100, 40, moonColor, true)
		return
	}

	vector.FillCircle(dst, ox+150, oy+100, 50, sunColor, true)
	for _, c := range s.clouds {
		x, y, sz := ox+float32(c.x), oy+float32(c.y), float32(c.size)
		vector.FillCircle(dst, x, y, sz*0.5, cloudColor, true)
		vector.FillCircle(dst, x+sz*0.3, y-sz*0.1, sz*0.4, cloudColor, true)
		vector.FillCircle(dst, x+sz*0.6, y, sz*0.45, cloudColor, true)
		vector.FillCircle(dst, x+sz*0.9, y+sz*0.05, sz*0.35, cloudColor, true)
	}
}
