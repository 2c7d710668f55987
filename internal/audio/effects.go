package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundFire SoundType = iota
	SoundHit
	SoundKill
	SoundLaunch
	SoundGameOver
	SoundHighScore

	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundHit:
		return "hit"
	case SoundKill:
		return "kill"
	case SoundLaunch:
		return "launch"
	case SoundGameOver:
		return "game_over"
	case SoundHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// Per-effect gain relative to the master volume.
var effectVolumes = [soundTypeCount]float64{
	SoundFire:      0.25,
	SoundHit:       0.4,
	SoundKill:      0.7,
	SoundLaunch:    0.6,
	SoundGameOver:  0.9,
	SoundHighScore: 0.8,
}

// note is one tone in a sequence.
type note struct {
	freq float64
	dur  time.Duration
}

// CreateSound builds the streamer for st. The result is finite.
func CreateSound(st SoundType, rate beep.SampleRate, master float64) beep.Streamer {
	var s beep.Streamer
	switch st {
	case SoundFire:
		s = tone(rate, 1320, 40*time.Millisecond)
	case SoundHit:
		s = tone(rate, 660, 30*time.Millisecond)
	case SoundKill:
		dur := 140 * time.Millisecond
		s = beep.Mix(
			newVolume(shape(newNoise(rate, dur), dur, 2*time.Millisecond, 110*time.Millisecond, rate), 0.6),
			newVolume(tone(rate, 180, dur), 0.5),
		)
	case SoundLaunch:
		s = melody(rate, []note{{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 160 * time.Millisecond}})
	case SoundGameOver:
		s = melody(rate, []note{{440, 160 * time.Millisecond}, {330, 160 * time.Millisecond}, {220, 320 * time.Millisecond}})
	case SoundHighScore:
		dur := 400 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(rate, 880, dur), 0.7),
			newVolume(tone(rate, 1760, dur), 0.3),
		)
	default:
		return beep.Silence(0)
	}
	return newVolume(s, effectVolumes[st]*master)
}

// tone is a sine at freq shaped with a short attack and a long release.
func tone(rate beep.SampleRate, freq float64, dur time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(dur))
	}
	return shape(beep.Take(rate.N(dur), sine), dur, 3*time.Millisecond, dur/2, rate)
}

func melody(rate beep.SampleRate, notes []note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(rate, n.freq, n.dur))
	}
	return beep.Seq(parts...)
}

// noise emits white noise for a fixed number of samples.
type noise struct {
	remaining int
	rng       *rand.Rand
}

func newNoise(rate beep.SampleRate, dur time.Duration) beep.Streamer {
	return &noise{remaining: rate.N(dur), rng: rand.New(rand.NewSource(1))} // #nosec G404 -- audio only
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := len(samples)
	if count > n.remaining {
		count = n.remaining
	}
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

func shape(s beep.Streamer, dur, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(dur)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		rel = total - att
		if rel < 0 {
			att, rel = total, 0
		}
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: total - rel,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.releaseStart {
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s by a linear gain. math.Log2(0) is -Inf, so zero gain
// becomes a silent volume effect.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
