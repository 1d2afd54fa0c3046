package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays effects through a single mixer on the speaker. Every
// method is a no-op until Init succeeds, so a game without a sound device
// keeps running silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	muted       bool
	initialized bool
	played      map[Sound]int
}

// NewSoundManager returns a manager with master volume at volume (a log2
// exponent, 0 is unity).
func NewSoundManager(volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: volume},
		played: make(map[Sound]int),
	}
}

// Init opens the speaker and starts the mixer.
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Play queues s on the mixer.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized || sm.muted {
		return
	}
	st := Effect(s, sampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
	sm.played[s]++
}

func (sm *SoundManager) PlayFire()      { sm.Play(SoundFire) }
func (sm *SoundManager) PlayExplosion() { sm.Play(SoundExplosion) }
func (sm *SoundManager) PlayHit()       { sm.Play(SoundHit) }
func (sm *SoundManager) PlayDenied()    { sm.Play(SoundDenied) }

// SetMuted silences or restores output. Sounds already playing are cut.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = m
	if !sm.initialized {
		sm.master.Silent = m
		return
	}
	speaker.Lock()
	sm.master.Silent = m
	if m {
		sm.mixer.Clear()
	}
	speaker.Unlock()
}

// ToggleMute flips the mute state and returns the new value.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	m := !sm.muted
	sm.mu.Unlock()
	sm.SetMuted(m)
	return m
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played is how many times s has been queued.
func (sm *SoundManager) Played(s Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[s]
}

// Close stops playback and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
