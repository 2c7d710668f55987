package sim

import (
	"strings"
	"testing"
)

func sampleLog() *SimLog {
	sl := NewSimLog(false)
	sl.Add(0, "--", LogLifecycle, "launch", "player at (400,480) best=0", 0)
	sl.Add(5, "basic:aaaaaa", LogSpawn, "enemy", "x=120", 0.02)
	sl.Add(40, "basic:aaaaaa", LogScore, "kill", "+10 → 10", 10)
	sl.Add(52, "heavy:bbbbbb", LogCombat, "hit", "hp 2/3", 2)
	sl.Add(90, "heavy:bbbbbb", LogScore, "kill", "+50 → 60", 50)
	sl.AddVerbose(91, "--", LogPlayer, "fire", "(400,470)", 0)
	return sl
}

func TestSimLog_Query(t *testing.T) {
	sl := sampleLog()
	if sl.Len() != 5 {
		t.Fatalf("verbose entry should be dropped, got %d entries", sl.Len())
	}
	if n := sl.Count(Query{Category: LogScore, Key: "kill"}); n != 2 {
		t.Fatalf("expected 2 kills, got %d", n)
	}
	if n := sl.Count(Query{From: 10, To: 60}); n != 2 {
		t.Fatalf("expected 2 entries in [10,60], got %d", n)
	}
	if n := sl.Count(Query{Entity: "heavy:bbbbbb"}); n != 2 {
		t.Fatalf("expected 2 heavy entries, got %d", n)
	}
	first, ok := sl.First(Query{Category: LogScore})
	if !ok || first.Tick != 40 {
		t.Fatalf("expected first score at 40, got %+v", first)
	}
	last, ok := sl.Last(Query{Category: LogScore})
	if !ok || last.Tick != 90 {
		t.Fatalf("expected last score at 90, got %+v", last)
	}
	if !sl.Has(Query{Key: "kill", Contains: "+50"}) || sl.Has(Query{Category: LogCull}) {
		t.Fatal("unexpected Has result")
	}
	if _, ok := sl.Last(Query{Category: LogCull}); ok {
		t.Fatal("no cull entries were recorded")
	}
}

func TestSimLog_FormatAndSummary(t *testing.T) {
	sl := sampleLog()
	out := sl.Format(Query{Category: LogScore})
	if strings.Count(out, "\n") != 2 || !strings.Contains(out, "[T=090] heavy:bbbbbb") {
		t.Fatalf("unexpected format:\n%s", out)
	}

	w := &World{Player: Vector2{X: 400, Y: 480}}
	w.Enemies = append(w.Enemies, &Enemy{Type: EnemyFast})
	sum := sl.Summary(91, GameState{Score: 60, HighScore: 60}, w)
	for _, want := range []string{"T=091", "score=60", "basic on_field=0 killed=1", "fast  on_field=1 killed=0", "heavy on_field=0 killed=1"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}
