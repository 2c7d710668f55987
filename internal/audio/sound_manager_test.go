package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if math.IsNaN(smp[0]) || math.IsInf(smp[0], 0) {
				t.Fatalf("invalid sample %v", smp[0])
			}
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestCreateSound_FiniteAndAudible(t *testing.T) {
	for st := SoundFire; st < soundTypeCount; st++ {
		n, peak := drain(t, CreateSound(st, testRate, 1))
		if n == 0 {
			t.Errorf("%s produced no samples", st)
		}
		if peak == 0 {
			t.Errorf("%s is silent at full volume", st)
		}
		if peak > 1.0001 {
			t.Errorf("%s clips with peak %.3f", st, peak)
		}
	}
}

func TestCreateSound_ZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, CreateSound(SoundKill, testRate, 0))
	if peak != 0 {
		t.Fatalf("expected silence at volume 0, got peak %.3f", peak)
	}
}

func TestCreateSound_Durations(t *testing.T) {
	fire, _ := drain(t, CreateSound(SoundFire, testRate, 1))
	over, _ := drain(t, CreateSound(SoundGameOver, testRate, 1))
	if fire >= over {
		t.Fatalf("fire blip (%d samples) should be shorter than game over (%d)", fire, over)
	}
	if want := 2*testRate.N(160*time.Millisecond) + testRate.N(320*time.Millisecond); over != want {
		t.Fatalf("expected game over to last %d samples, got %d", want, over)
	}
}

func TestEnvelope_StartsAndEndsQuiet(t *testing.T) {
	s := tone(testRate, 440, 50*time.Millisecond)
	buf := make([][2]float64, testRate.N(50*time.Millisecond))
	n, _ := s.Stream(buf)
	if n == 0 {
		t.Fatal("no samples")
	}
	if buf[0][0] != 0 {
		t.Fatalf("attack should start at zero, got %f", buf[0][0])
	}
	if math.Abs(buf[n-1][0]) > 0.01 {
		t.Fatalf("release should end near zero, got %f", buf[n-1][0])
	}
}

func TestSoundFor_MapsEvents(t *testing.T) {
	cases := map[sim.EventKind]SoundType{
		sim.EventFire:      SoundFire,
		sim.EventHit:       SoundHit,
		sim.EventKill:      SoundKill,
		sim.EventLaunch:    SoundLaunch,
		sim.EventGameOver:  SoundGameOver,
		sim.EventHighScore: SoundHighScore,
	}
	for k, want := range cases {
		got, ok := SoundFor(k)
		if !ok || got != want {
			t.Errorf("%s: expected %s, got %s (ok=%v)", k, want, got, ok)
		}
	}
	if _, ok := SoundFor(sim.EventSpawn); ok {
		t.Error("spawns should be silent")
	}
	if _, ok := SoundFor(sim.EventEscape); ok {
		t.Error("escapes should be silent")
	}
}

func TestSoundManager_DisabledIsNoop(t *testing.T) {
	sm := NewSoundManager(Settings{Enabled: false, MasterVolume: 1})
	if err := sm.Initialize(); err != nil {
		t.Fatalf("disabled manager should not open the speaker: %v", err)
	}
	ts := sim.NewTestSim(sim.WithSpawning(false))
	ts.Ctrl.Subscribe(sm.Observe)
	ts.RunTicks(16)
	sm.Cleanup()

	if n := sm.Played(SoundFire); n != 2 {
		t.Fatalf("expected 2 fire requests, got %d", n)
	}
	if n := sm.Played(SoundKill); n != 0 {
		t.Fatalf("expected no kill requests, got %d", n)
	}
}
