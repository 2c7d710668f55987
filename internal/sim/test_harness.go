package sim

import (
	"strconv"

	"github.com/Garsondee/Sky-Strike/internal/store"
)

// TestSim is a headless session harness used by tests and the headless
// report. It drives a Controller through its frame Driver exactly as a host
// would, with deterministic seeding and structured logging.
type TestSim struct {
	Width    float64
	Height   float64
	Ctrl     *Controller
	SimLog   *SimLog
	Reporter *SimReporter
	Store    Store

	seed      int64
	autopilot *Autopilot
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // viewport, seed, store, verbose: applied first
	simOptControl                      // controller tweaks: applied after the controller exists
	simOptEntity                       // placed entities: applied after launch
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithViewport sets the playfield dimensions.
func WithViewport(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithStore replaces the in-memory store.
func WithStore(s Store) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Store = s
	}}
}

// WithHighScore seeds the store with a previous best.
func WithHighScore(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		_ = ts.Store.Set(HighScoreKey, strconv.Itoa(n))
	}}
}

// WithAutopilot lets the Autopilot press keys before every tick.
func WithAutopilot() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autopilot = &Autopilot{}
	}}
}

// WithSpawning turns random enemy spawns on or off (on by default).
func WithSpawning(on bool) SimOption {
	return SimOption{simOptControl, func(ts *TestSim) {
		ts.Ctrl.Spawner().SetEnabled(on)
	}}
}

// WithPlayer moves the player after launch.
func WithPlayer(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Ctrl.World().Player = Vector2{X: x, Y: y}
	}}
}

// WithEnemy places a full-health enemy after launch.
func WithEnemy(t EnemyType, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.AddEnemy(t, x, y)
	}}
}

// WithBullet places a bullet after launch.
func WithBullet(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		w := ts.Ctrl.World()
		w.Bullets = append(w.Bullets, w.newBullet(Vector2{X: x, Y: y}))
	}}
}

// NewTestSim constructs and launches a session in ordered passes:
//  1. Infrastructure (viewport, seed, store, verbose)
//  2. Controller + reporter
//  3. Controller tweaks (spawning)
//  4. Launch
//  5. Placed entities
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:  800,
		Height: 600,
		SimLog: NewSimLog(false),
		Store:  store.NewMemStore(),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Ctrl = NewController(ts.Store, Options{
		Seed:   ts.seed,
		Width:  ts.Width,
		Height: ts.Height,
		Log:    ts.SimLog,
	})
	ts.Reporter = NewSimReporter(reportWindowTicks)
	ts.Reporter.SetSeed(ts.seed)
	ts.Ctrl.Subscribe(ts.Reporter.Observe)
	for _, o := range opts {
		if o.kind == simOptControl {
			o.fn(ts)
		}
	}
	ts.Ctrl.Launch()
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// AddEnemy places a full-health enemy of type t at (x, y) and returns it.
func (ts *TestSim) AddEnemy(t EnemyType, x, y float64) *Enemy {
	w := ts.Ctrl.World()
	e := w.newEnemy(t, Vector2{X: x, Y: y})
	w.Enemies = append(w.Enemies, e)
	return e
}

// RunTicks advances up to n frames and returns how many ticks actually ran.
// It stops early once the driver is no longer armed (game over).
func (ts *TestSim) RunTicks(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !ts.frame() {
			break
		}
		ran++
	}
	return ran
}

// RunUntil advances up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if !ts.frame() {
			break
		}
		if predicate(ts) {
			return ts.Ctrl.TickCount()
		}
	}
	return -1
}

func (ts *TestSim) frame() bool {
	if ts.autopilot != nil {
		ts.autopilot.Drive(ts.Ctrl)
	}
	if !ts.Ctrl.Frame() {
		return false
	}
	if ts.Ctrl.TickCount()%60 == 0 {
		ts.Reporter.Collect(ts.Ctrl)
	}
	return true
}

// CurrentTick returns the ticks run since launch.
func (ts *TestSim) CurrentTick() int {
	return ts.Ctrl.TickCount()
}

// Summary describes the session at the current tick.
func (ts *TestSim) Summary() string {
	return ts.SimLog.Summary(ts.Ctrl.TickCount(), ts.Ctrl.State(), ts.Ctrl.World())
}

// SimSnapshot is a lightweight copy of the session at a tick.
type SimSnapshot struct {
	Tick    int
	State   GameState
	Player  Vector2
	Bullets []Vector2
	Enemies []EnemySnapshot
}

// EnemySnapshot is a copy of one enemy's observable state.
type EnemySnapshot struct {
	Label  string
	Type   EnemyType
	Pos    Vector2
	Health int
}

// Snapshot returns a copy of the current state.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.Ctrl.World()
	snap := SimSnapshot{Tick: ts.Ctrl.TickCount(), State: ts.Ctrl.State(), Player: w.Player}
	for _, b := range w.Bullets {
		snap.Bullets = append(snap.Bullets, b.Pos)
	}
	for _, e := range w.Enemies {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Label:  e.Label(),
			Type:   e.Type,
			Pos:    e.Pos,
			Health: e.Health,
		})
	}
	return snap
}
