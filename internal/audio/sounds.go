// Package audio synthesises the duel's sound effects with beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// Sound names a match event with a sound attached.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplosion
	SoundHit
	SoundDenied
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundExplosion:
		return "explosion"
	case SoundHit:
		return "hit"
	case SoundDenied:
		return "denied"
	default:
		return "unknown"
	}
}

const (
	fireDuration      = 180 * time.Millisecond
	explosionDuration = 500 * time.Millisecond
	hitDuration       = 260 * time.Millisecond
	deniedDuration    = 50 * time.Millisecond
)

// sweep is an oscillator whose frequency glides linearly from start to end
// over its lifetime. A flat sweep is a plain tone.
type sweep struct {
	start, end float64
	wave       Wave
	rate       beep.SampleRate
	phase      float64
	pos, total int
	rng        *rand.Rand
}

// NewOscillator returns a fixed-frequency tone of the given length.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep returns a tone gliding from start to end Hz.
func NewSweep(start, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		start: start,
		end:   end,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(start*1000 + end))),
	}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.start + (o.end-o.start)*float64(o.pos)/float64(o.total)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	s                    beep.Streamer
	pos, attack, release int
	total                int
}

// NewEnvelope wraps s in an attack/release envelope lasting d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rem := e.total - e.pos; len(samples) > rem {
		samples = samples[:rem]
	}
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.attack > 0 && e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			g = math.Min(g, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales s by a linear factor; zero or less is silent.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// FireSound is a short rising crack with a noise burst on top.
func FireSound(rate beep.SampleRate) beep.Streamer {
	tone := NewEnvelope(NewSweep(220, 90, fireDuration, WaveSquare, rate), fireDuration, 2*time.Millisecond, 140*time.Millisecond, rate)
	crack := NewEnvelope(NewOscillator(0, 60*time.Millisecond, WaveNoise, rate), 60*time.Millisecond, 0, 50*time.Millisecond, rate)
	return beep.Mix(gain(tone, 0.35), gain(crack, 0.5))
}

// ExplosionSound is a long low rumble lasting as long as the blast is drawn.
func ExplosionSound(rate beep.SampleRate) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, explosionDuration, WaveNoise, rate), explosionDuration, 5*time.Millisecond, 420*time.Millisecond, rate)
	boom := NewEnvelope(NewSweep(90, 35, explosionDuration, WaveSine, rate), explosionDuration, 5*time.Millisecond, 400*time.Millisecond, rate)
	return beep.Mix(gain(noise, 0.45), gain(boom, 0.6))
}

// HitSound is a two-note metallic clang for a direct hit.
func HitSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(660, hitDuration/2, WaveSquare, rate), hitDuration/2, time.Millisecond, 100*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(440, hitDuration/2, WaveSquare, rate), hitDuration/2, time.Millisecond, 120*time.Millisecond, rate)
	return gain(beep.Seq(n1, n2), 0.3)
}

// DeniedSound is a short blip for a command the match refused.
func DeniedSound(rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, 880)
	if err != nil {
		return nil
	}
	return gain(beep.Take(rate.N(deniedDuration), sine), 0.2)
}

// Effect builds the streamer for s, or nil for an unknown sound.
func Effect(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundFire:
		return FireSound(rate)
	case SoundExplosion:
		return ExplosionSound(rate)
	case SoundHit:
		return HitSound(rate)
	case SoundDenied:
		return DeniedSound(rate)
	default:
		return nil
	}
}
