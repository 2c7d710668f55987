package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Strike/internal/config"
	"github.com/Garsondee/Sky-Strike/internal/sim"
	"github.com/Garsondee/Sky-Strike/internal/store"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	ctrl := sim.NewController(store.NewMemStore(), sim.Options{Seed: 1, Width: 1, Height: 1})
	ctrl.Spawner().SetEnabled(false)
	return New(screen, ctrl, config.Default().Terminal), screen
}

func TestHoldKeys_ReleaseAfterHold(t *testing.T) {
	h := NewHoldKeys(3)
	if !h.Press(sim.KeyA) {
		t.Fatal("first press should be new")
	}
	if h.Press(sim.KeyA) {
		t.Fatal("repeat should not be new")
	}
	for i := 0; i < 2; i++ {
		if rel := h.Advance(); len(rel) != 0 {
			t.Fatalf("released too early on frame %d: %v", i, rel)
		}
	}
	rel := h.Advance()
	if len(rel) != 1 || rel[0] != sim.KeyA {
		t.Fatalf("expected a released on the third frame, got %v", rel)
	}
	if h.Held(sim.KeyA) {
		t.Fatal("key should no longer be held")
	}
}

func TestHoldKeys_RepeatExtendsHold(t *testing.T) {
	h := NewHoldKeys(2)
	h.Press(sim.KeyArrowUp)
	h.Advance()
	h.Press(sim.KeyArrowUp)
	if rel := h.Advance(); len(rel) != 0 {
		t.Fatalf("auto-repeat should refresh the hold, released %v", rel)
	}
	if rel := h.Advance(); len(rel) != 1 {
		t.Fatalf("expected release after the refreshed hold, got %v", rel)
	}
}

func TestKeyToken(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want sim.Key
	}{
		{key(tcell.KeyUp), sim.KeyArrowUp},
		{key(tcell.KeyRight), sim.KeyArrowRight},
		{runeKey('a'), sim.KeyA},
		{runeKey('S'), sim.KeyS},
	}
	for _, c := range cases {
		got, ok := keyToken(c.ev)
		if !ok || got != c.want {
			t.Errorf("%v: expected %s, got %s (ok=%v)", c.ev.Name(), c.want, got, ok)
		}
	}
	if _, ok := keyToken(runeKey('x')); ok {
		t.Error("x should not map to a direction")
	}
	if !isLaunch(key(tcell.KeyEnter)) || !isLaunch(runeKey(' ')) {
		t.Error("enter and space should launch")
	}
	if !isQuit(key(tcell.KeyEscape)) || !isQuit(runeKey('q')) || isQuit(runeKey('w')) {
		t.Error("unexpected quit mapping")
	}
}

func TestPlayfieldSize(t *testing.T) {
	cfg := config.Default().Terminal
	w, h := playfieldSize(80, 25, cfg)
	if w != 640 || h != 384 {
		t.Fatalf("expected 640x384, got %.0fx%.0f", w, h)
	}
	if x, y := toCell(sim.Vector2{X: 17, Y: -1}, cfg); x != 2 || y != -1 {
		t.Fatalf("expected cell (2,-1), got (%d,%d)", x, y)
	}
}

func TestApp_LaunchAndHoldMovement(t *testing.T) {
	a, _ := newTestApp(t)
	if w, h := a.ctrl.Size(); w != 640 || h != 384 {
		t.Fatalf("controller should match the terminal, got %.0fx%.0f", w, h)
	}

	a.handleEvent(key(tcell.KeyEnter))
	if a.ctrl.Phase() != sim.PhaseRunning {
		t.Fatalf("enter should launch, phase %s", a.ctrl.Phase())
	}
	start := a.ctrl.Player()

	a.handleEvent(key(tcell.KeyLeft))
	for i := 0; i < 20; i++ {
		a.frame()
	}
	// Held for HoldTicks frames; the release is applied before that frame's tick.
	moved := start.X - a.ctrl.Player().X
	want := float64(a.cfg.HoldTicks-1) * sim.PlayerSpeed
	if moved != want {
		t.Fatalf("expected to move %.0f while held, moved %.0f", want, moved)
	}
	if a.ctrl.Input().Held(sim.KeyArrowLeft) {
		t.Fatal("key should be released after the hold expires")
	}
}

func TestApp_ResizeFollowsScreen(t *testing.T) {
	a, screen := newTestApp(t)
	screen.SetSize(40, 11)
	a.handleEvent(tcell.NewEventResize(40, 11))
	if w, h := a.ctrl.Size(); w != 320 || h != 160 {
		t.Fatalf("expected 320x160 after resize, got %.0fx%.0f", w, h)
	}
}

func TestApp_QuitEndsRun(t *testing.T) {
	a, screen := newTestApp(t)
	if err := screen.PostEvent(runeKey('q')); err != nil {
		t.Fatalf("post event: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("quit should end the run cleanly, got %v", err)
	}
	if a.ctrl.Driver().Armed() {
		t.Fatal("driver should be canceled on quit")
	}
}
