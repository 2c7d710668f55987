// Package audio plays synthesized sound effects for simulation events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

// Settings configures a SoundManager.
type Settings struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
}

// SoundManager mixes effects into a single speaker stream.
type SoundManager struct {
	mu          sync.Mutex
	settings    Settings
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	played      [soundTypeCount]int
}

// NewSoundManager creates a manager; nothing is opened until Initialize.
func NewSoundManager(s Settings) *SoundManager {
	if s.SampleRate <= 0 {
		s.SampleRate = 44100
	}
	return &SoundManager{
		settings: s,
		rate:     beep.SampleRate(s.SampleRate),
		mixer:    &beep.Mixer{},
	}
}

// Initialize opens the speaker. A disabled manager stays silent and
// returns nil.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.settings.Enabled {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every sound and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues st on the mixer. It is a no-op before Initialize.
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if st < 0 || st >= soundTypeCount {
		return
	}
	sm.played[st]++
	if !sm.initialized {
		return
	}
	s := CreateSound(st, sm.rate, sm.settings.MasterVolume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times st was requested.
func (sm *SoundManager) Played(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[st]
}

// Observe maps controller events to effects; subscribe it to a controller.
func (sm *SoundManager) Observe(e sim.Event) {
	if st, ok := SoundFor(e.Kind); ok {
		sm.Play(st)
	}
}

// SoundFor returns the effect played for an event kind, if any.
func SoundFor(k sim.EventKind) (SoundType, bool) {
	switch k {
	case sim.EventFire:
		return SoundFire, true
	case sim.EventHit:
		return SoundHit, true
	case sim.EventKill:
		return SoundKill, true
	case sim.EventLaunch:
		return SoundLaunch, true
	case sim.EventGameOver:
		return SoundGameOver, true
	case sim.EventHighScore:
		return SoundHighScore, true
	default:
		return 0, false
	}
}
