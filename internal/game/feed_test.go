package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

func TestEventFeed_RingWraps(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, sim.EventSpawn, "x")
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected oldest 5 and newest %d, got %d..%d", feedMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestEventFeed_ObserveSkipsShotsAndClearsOnLaunch(t *testing.T) {
	f := NewEventFeed()
	f.Observe(sim.Event{Kind: sim.EventKill, Tick: 3, Label: "fast:abc123", Value: 20})
	f.Observe(sim.Event{Kind: sim.EventFire, Tick: 8})
	if n := len(f.Recent()); n != 1 {
		t.Fatalf("expected shots to be skipped, got %d entries", n)
	}
	if msg := f.Recent()[0].Message; msg != "fast:abc123 down +20" {
		t.Fatalf("unexpected kill message %q", msg)
	}

	f.Observe(sim.Event{Kind: sim.EventLaunch, Value: 120})
	got := f.Recent()
	if len(got) != 1 || !strings.Contains(got[0].Message, "best 120") {
		t.Fatalf("launch should reset the feed to a single start line, got %+v", got)
	}
}

func TestEventFeed_FatalHitIsNotListed(t *testing.T) {
	f := NewEventFeed()
	f.Observe(sim.Event{Kind: sim.EventHit, Label: "heavy:aaaaaa", Value: 2})
	f.Observe(sim.Event{Kind: sim.EventHit, Label: "basic:bbbbbb", Value: 0})
	got := f.Recent()
	if len(got) != 1 || got[0].Message != "heavy:aaaaaa hit, hp 2" {
		t.Fatalf("expected only the non-lethal hit, got %+v", got)
	}
}

func TestEventFeed_FollowsSession(t *testing.T) {
	ts := sim.NewTestSim(sim.WithSpawning(false), sim.WithEnemy(sim.EnemyBasic, 100, 100), sim.WithBullet(100, 130))
	f := NewEventFeed()
	ts.Ctrl.Subscribe(f.Observe)
	ts.RunTicks(1)

	got := f.Recent()
	if len(got) != 1 || got[0].Kind != sim.EventKill {
		t.Fatalf("expected one kill line, got %+v", got)
	}
}
