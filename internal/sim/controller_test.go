package sim

import (
	"errors"
	"testing"

	"github.com/Garsondee/Sky-Strike/internal/store"
)

func TestController_StartsPaused(t *testing.T) {
	c := NewController(store.NewMemStore(), Options{Seed: 1, Width: 800, Height: 600})
	st := c.State()
	if !st.IsPaused || st.IsGameOver {
		t.Fatalf("expected paused and not game over, got %+v", st)
	}
	if c.Phase() != PhasePaused {
		t.Fatalf("expected phase paused, got %s", c.Phase())
	}
	if c.Frame() {
		t.Fatal("frame should not run a tick before launch")
	}
	c.Tick()
	if c.TickCount() != 0 {
		t.Fatal("tick should be a no-op while paused")
	}
}

func TestController_LaunchPlacesPlayer(t *testing.T) {
	c := NewController(nil, Options{Seed: 1, Width: 800, Height: 600})
	c.Launch()
	if c.Phase() != PhaseRunning {
		t.Fatalf("expected running, got %s", c.Phase())
	}
	if p := c.Player(); p.X != 400 || p.Y != 480 {
		t.Fatalf("expected player at (400,480), got %+v", p)
	}
	if !c.Driver().Armed() {
		t.Fatal("launch should request a frame")
	}
}

func TestController_GameOverStopsDriver(t *testing.T) {
	ts := NewTestSim(WithSpawning(false))
	p := ts.Ctrl.Player()
	ts.AddEnemy(EnemyBasic, p.X, p.Y-5)

	ran := ts.RunTicks(10)
	if ran != 1 {
		t.Fatalf("expected the loop to stop after the colliding tick, ran %d", ran)
	}
	st := ts.Ctrl.State()
	if !st.IsGameOver || st.IsPaused {
		t.Fatalf("expected game over only, got %+v", st)
	}
	if ts.Ctrl.Driver().Armed() {
		t.Fatal("driver should be idle after game over")
	}

	before := ts.Snapshot()
	ts.Ctrl.Tick()
	after := ts.Snapshot()
	if after.Tick != before.Tick || after.Player != before.Player {
		t.Fatal("tick must not mutate state after game over")
	}
}

func TestController_RelaunchResetsRun(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithAutopilot())
	ts.RunTicks(400)
	ts.Ctrl.Launch()

	st := ts.Ctrl.State()
	if st.Score != 0 || st.IsGameOver || st.IsPaused {
		t.Fatalf("relaunch should reset the run, got %+v", st)
	}
	w := ts.Ctrl.World()
	if len(w.Bullets) != 0 || len(w.Enemies) != 0 {
		t.Fatalf("relaunch should clear entities, got %d bullets %d enemies", len(w.Bullets), len(w.Enemies))
	}
	if ts.Ctrl.TickCount() != 0 {
		t.Fatalf("relaunch should reset the tick counter, got %d", ts.Ctrl.TickCount())
	}
	if p := ts.Ctrl.Player(); p.X != 400 || p.Y != 480 {
		t.Fatalf("expected player back at start, got %+v", p)
	}
}

func TestController_ScoreNeverDecreases(t *testing.T) {
	ts := NewTestSim(WithSeed(11), WithAutopilot())
	last := 0
	ts.RunUntil(func(ts *TestSim) bool {
		s := ts.Ctrl.State().Score
		if s < last {
			t.Fatalf("score dropped from %d to %d at tick %d", last, s, ts.CurrentTick())
		}
		last = s
		return false
	}, 3000)
}

func TestController_HighScorePersisted(t *testing.T) {
	mem := store.NewMemStore()
	ts := NewTestSim(WithStore(mem), WithSpawning(false))
	p := ts.Ctrl.Player()
	ts.AddEnemy(EnemyHeavy, 100, 100)
	w := ts.Ctrl.World()
	for i := 0; i < 3; i++ {
		w.Bullets = append(w.Bullets, w.newBullet(Vector2{X: 100, Y: 130 + float64(i)}))
	}
	ts.RunTicks(1)
	if s := ts.Ctrl.State().Score; s != 50 {
		t.Fatalf("expected heavy kill for 50, got %d", s)
	}

	ts.AddEnemy(EnemyBasic, p.X, p.Y-5)
	ts.RunTicks(1)

	st := ts.Ctrl.State()
	if !st.IsGameOver || st.HighScore != 50 {
		t.Fatalf("expected game over with best 50, got %+v", st)
	}
	if v, _ := mem.Get(HighScoreKey); v != "50" {
		t.Fatalf("expected stored best 50, got %q", v)
	}
	if !ts.Reporter.Run().NewHighScore {
		t.Fatal("reporter should record a new best")
	}

	again := NewController(mem, Options{Seed: 2, Width: 800, Height: 600})
	if again.State().HighScore != 50 {
		t.Fatalf("new session should read best 50, got %d", again.State().HighScore)
	}
}

type countingStore struct {
	*store.MemStore
	sets int
}

func (s *countingStore) Set(key, value string) error {
	s.sets++
	return s.MemStore.Set(key, value)
}

func TestController_LowerScoreKeepsBest(t *testing.T) {
	cs := &countingStore{MemStore: store.NewMemStore()}
	_ = cs.MemStore.Set(HighScoreKey, "100")
	ts := NewTestSim(WithStore(cs), WithSpawning(false),
		WithEnemy(EnemyBasic, 100, 100),
		WithBullet(100, 130),
	)
	if ts.Ctrl.State().HighScore != 100 {
		t.Fatalf("expected best 100 read at start, got %d", ts.Ctrl.State().HighScore)
	}
	ts.RunTicks(1)

	p := ts.Ctrl.Player()
	ts.AddEnemy(EnemyBasic, p.X, p.Y-5)
	ts.RunTicks(1)

	st := ts.Ctrl.State()
	if st.Score != 10 || st.HighScore != 100 {
		t.Fatalf("expected score 10 best 100, got %+v", st)
	}
	if cs.sets != 0 {
		t.Fatalf("store should not be written when the best is not beaten, got %d writes", cs.sets)
	}
}

func TestController_BadStoredValueReadsZero(t *testing.T) {
	for _, v := range []string{"abc", "-5", ""} {
		mem := store.NewMemStore()
		_ = mem.Set(HighScoreKey, v)
		c := NewController(mem, Options{Seed: 1, Width: 800, Height: 600})
		if hs := c.State().HighScore; hs != 0 {
			t.Errorf("stored %q: expected best 0, got %d", v, hs)
		}
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("disk full") }

func TestController_StoreFailureKeepsInMemoryBest(t *testing.T) {
	ts := NewTestSim(WithStore(failingStore{}), WithSpawning(false),
		WithEnemy(EnemyFast, 100, 100),
		WithBullet(100, 125),
	)
	ts.RunTicks(1)
	p := ts.Ctrl.Player()
	ts.AddEnemy(EnemyBasic, p.X, p.Y)
	ts.RunTicks(1)

	if hs := ts.Ctrl.State().HighScore; hs != 20 {
		t.Fatalf("expected in-memory best 20 despite store error, got %d", hs)
	}
}

func TestController_CloseReleasesKeys(t *testing.T) {
	ts := NewTestSim(WithSpawning(false))
	ts.Ctrl.KeyDown(KeyArrowLeft)
	ts.Ctrl.Close()
	ts.Ctrl.Close()

	if ts.Ctrl.Input().Held(KeyArrowLeft) {
		t.Fatal("close should release held keys")
	}
	if ts.Ctrl.Frame() {
		t.Fatal("no frame should run after close")
	}
}

func TestController_EventsSeeAppliedState(t *testing.T) {
	ts := NewTestSim(WithSpawning(false),
		WithEnemy(EnemyBasic, 100, 100),
		WithBullet(100, 130),
	)
	var kinds []EventKind
	ts.Ctrl.Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind)
		if e.Kind == EventKill && ts.Ctrl.State().Score != 10 {
			t.Errorf("kill delivered before score applied: %d", ts.Ctrl.State().Score)
		}
	})
	ts.RunTicks(1)
	if len(kinds) != 2 || kinds[0] != EventHit || kinds[1] != EventKill {
		t.Fatalf("expected [hit kill], got %v", kinds)
	}
}

func TestController_SameSeedSameRun(t *testing.T) {
	a := NewTestSim(WithSeed(7), WithAutopilot())
	b := NewTestSim(WithSeed(7), WithAutopilot())
	a.RunTicks(1500)
	b.RunTicks(1500)

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Tick != sb.Tick || sa.State != sb.State || sa.Player != sb.Player {
		t.Fatalf("runs diverged: %+v vs %+v", sa.State, sb.State)
	}
	if len(sa.Enemies) != len(sb.Enemies) {
		t.Fatalf("enemy counts diverged: %d vs %d", len(sa.Enemies), len(sb.Enemies))
	}
	for i := range sa.Enemies {
		if sa.Enemies[i] != sb.Enemies[i] {
			t.Fatalf("enemy %d diverged: %+v vs %+v", i, sa.Enemies[i], sb.Enemies[i])
		}
	}
}
