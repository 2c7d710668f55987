package sim

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// HighScoreKey is the store key holding the best score as a decimal string.
const HighScoreKey = "skyStrikeHighScore"

// Store is the persisted key-value collaborator. Set is a synchronous,
// last-write-wins write.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhasePaused Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState is the externally observable session state. IsPaused and
// IsGameOver are never both true; the simulation runs iff both are false.
type GameState struct {
	Score      int
	HighScore  int
	IsGameOver bool
	IsPaused   bool
}

// Options configures a Controller.
type Options struct {
	Seed   int64 // 0 picks a time-based seed
	Width  float64
	Height float64
	Log    *SimLog // optional structured event log
}

// Controller owns the session: GameState, the world, key state and the frame
// driver. It is the only writer of GameState; the step reports upward and the
// controller applies score deltas and the game-over transition.
type Controller struct {
	state   GameState
	world   *World
	input   *Input
	spawner *Spawner
	driver  *Driver
	store   Store
	simLog  *SimLog

	width  float64
	height float64
	tick   int
	seed   int64

	listeners []Listener
	pending   []Event
}

// NewController creates a paused session. The high score is read from store
// once, here.
func NewController(store Store, opts Options) *Controller {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))         // #nosec G404 -- gameplay only
	idRng := rand.New(rand.NewSource(seed + 7777)) // #nosec G404 -- entity ids
	c := &Controller{
		state:   GameState{IsPaused: true},
		world:   newWorld(idRng),
		input:   NewInput(),
		spawner: NewSpawner(rng),
		store:   store,
		simLog:  opts.Log,
		width:   opts.Width,
		height:  opts.Height,
		seed:    seed,
	}
	c.driver = NewDriver(c.Tick)
	c.state.HighScore = readHighScore(store)
	return c
}

// readHighScore returns the stored best, treating absent, non-numeric or
// negative values as 0.
func readHighScore(store Store) int {
	if store == nil {
		return 0
	}
	v, ok := store.Get(HighScoreKey)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// --- Accessors (render sink) ---

// State returns a copy of the session state.
func (c *Controller) State() GameState { return c.state }

// Phase derives the lifecycle phase from the state flags.
func (c *Controller) Phase() Phase {
	switch {
	case c.state.IsGameOver:
		return PhaseGameOver
	case c.state.IsPaused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// World exposes the entity collections. Callers must treat it as read-only.
func (c *Controller) World() *World { return c.world }

// Player returns the player position.
func (c *Controller) Player() Vector2 { return c.world.Player }

// TickCount returns ticks run since the last launch.
func (c *Controller) TickCount() int { return c.tick }

// Size returns the current playfield dimensions.
func (c *Controller) Size() (float64, float64) { return c.width, c.height }

// Seed returns the seed the random sources were created with.
func (c *Controller) Seed() int64 { return c.seed }

// Driver returns the frame scheduler.
func (c *Controller) Driver() *Driver { return c.driver }

// Spawner returns the enemy spawner.
func (c *Controller) Spawner() *Spawner { return c.spawner }

// SimLog returns the attached event log, or nil.
func (c *Controller) SimLog() *SimLog { return c.simLog }

// --- Collaborator inputs ---

// Subscribe registers fn to receive every event.
func (c *Controller) Subscribe(fn Listener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Resize records new playfield dimensions. Bounds are re-derived on the next
// tick rather than applied immediately.
func (c *Controller) Resize(width, height float64) {
	c.width = width
	c.height = height
}

// KeyDown records a key press from the input source.
func (c *Controller) KeyDown(k Key) { c.input.KeyDown(k) }

// KeyUp records a key release from the input source.
func (c *Controller) KeyUp(k Key) { c.input.KeyUp(k) }

// Input returns the key state.
func (c *Controller) Input() *Input { return c.input }

// Frame is the host refresh callback; it runs a tick when one is scheduled.
func (c *Controller) Frame() bool { return c.driver.Frame() }

// --- Lifecycle ---

// Launch starts a fresh run from Paused or GameOver (launch / redeploy).
// Launching while already running restarts the run.
func (c *Controller) Launch() {
	c.state.Score = 0
	c.state.IsGameOver = false
	c.state.IsPaused = false
	c.world.reset(startPosition(c.width, c.height))
	c.tick = 0
	c.logf(0, "--", LogLifecycle, "launch", 0, "player at (%.0f,%.0f) best=%d",
		c.world.Player.X, c.world.Player.Y, c.state.HighScore)
	c.emit(Event{Kind: EventLaunch, Pos: c.world.Player, Value: c.state.HighScore})
	c.flush()
	c.driver.Request()
}

// Close tears the session down: the driver is canceled and all keys are
// released. It is safe to call more than once.
func (c *Controller) Close() {
	c.driver.Cancel()
	c.input.Clear()
}

// Tick runs one simulation step. It is a no-op unless the session is running.
func (c *Controller) Tick() {
	if c.Phase() != PhaseRunning {
		return
	}
	c.tick++
	dx, dy := c.input.Axis()
	res := Step(c.world, StepInput{
		DX:     dx,
		DY:     dy,
		Width:  c.width,
		Height: c.height,
		Tick:   c.tick,
		Score:  c.state.Score,
	}, c.spawner)
	c.apply(res)
	c.flush()
	if c.Phase() == PhaseRunning {
		c.driver.Request()
	}
}

// apply turns a step result into state changes and events. Score deltas are
// applied before a latched game-over so the final score includes every kill
// of the last tick.
func (c *Controller) apply(res StepResult) {
	tick := c.tick

	if b := res.Fired; b != nil {
		c.logVerbose(tick, "--", LogPlayer, "fire", 0, "(%.0f,%.0f)", b.Pos.X, b.Pos.Y)
		c.emit(Event{Kind: EventFire, Tick: tick, Pos: b.Pos, Score: c.state.Score})
	}
	if e := res.Spawned; e != nil {
		c.logf(tick, e.Label(), LogSpawn, "enemy", c.spawner.Chance(c.state.Score), "x=%.0f", e.Pos.X)
		c.emit(Event{Kind: EventSpawn, Tick: tick, Enemy: e.Type, Label: e.Label(), Pos: e.Pos, Score: c.state.Score})
	}
	for _, h := range res.Hits {
		if h.Enemy.Health > 0 {
			c.logf(tick, h.Enemy.Label(), LogCombat, "hit", float64(h.Enemy.Health), "hp %d/%d",
				h.Enemy.Health, h.Enemy.MaxHealth)
		}
		c.emit(Event{Kind: EventHit, Tick: tick, Enemy: h.Enemy.Type, Label: h.Enemy.Label(),
			Pos: h.Enemy.Pos, Score: c.state.Score, Value: h.Enemy.Health})
	}
	for _, e := range res.Kills {
		c.state.Score += e.Score
		c.logf(tick, e.Label(), LogScore, "kill", float64(e.Score), "+%d → %d", e.Score, c.state.Score)
		c.emit(Event{Kind: EventKill, Tick: tick, Enemy: e.Type, Label: e.Label(),
			Pos: e.Pos, Score: c.state.Score, Value: e.Score})
	}
	for _, e := range res.Escaped {
		c.logf(tick, e.Label(), LogCull, "escape", float64(e.Health), "hp %d/%d", e.Health, e.MaxHealth)
		c.emit(Event{Kind: EventEscape, Tick: tick, Enemy: e.Type, Label: e.Label(), Pos: e.Pos, Score: c.state.Score})
	}
	if res.GameOver {
		c.gameOver(res.Collisions)
	}
}

// gameOver performs Running → GameOver.
func (c *Controller) gameOver(hitBy []*Enemy) {
	c.driver.Cancel()
	c.state.IsGameOver = true
	c.state.IsPaused = false

	label := "--"
	var enemy EnemyType
	if len(hitBy) > 0 {
		label = hitBy[0].Label()
		enemy = hitBy[0].Type
	}
	c.logf(c.tick, label, LogLifecycle, "game_over", float64(c.state.Score), "final score %d", c.state.Score)
	c.emit(Event{Kind: EventGameOver, Tick: c.tick, Enemy: enemy, Label: label,
		Pos: c.world.Player, Score: c.state.Score, Value: c.state.HighScore})

	prev := c.state.HighScore
	if c.state.Score <= prev {
		return
	}
	c.state.HighScore = c.state.Score
	if c.store != nil {
		if err := c.store.Set(HighScoreKey, strconv.Itoa(c.state.HighScore)); err != nil {
			log.Printf("sim: persist high score: %v", err)
		}
	}
	c.logf(c.tick, "--", LogScore, "high_score", float64(c.state.HighScore), "%d → %d", prev, c.state.HighScore)
	c.emit(Event{Kind: EventHighScore, Tick: c.tick, Score: c.state.Score, Value: c.state.HighScore})
}

func (c *Controller) emit(e Event) {
	c.pending = append(c.pending, e)
}

// flush delivers queued events once the tick's state changes are complete.
func (c *Controller) flush() {
	if len(c.pending) == 0 {
		return
	}
	events := c.pending
	c.pending = nil
	for _, e := range events {
		for _, fn := range c.listeners {
			fn(e)
		}
	}
}

func (c *Controller) logf(tick int, entity string, cat LogCategory, key string, num float64, format string, args ...any) {
	if c.simLog == nil {
		return
	}
	c.simLog.Add(tick, entity, cat, key, fmt.Sprintf(format, args...), num)
}

func (c *Controller) logVerbose(tick int, entity string, cat LogCategory, key string, num float64, format string, args ...any) {
	if c.simLog == nil {
		return
	}
	c.simLog.AddVerbose(tick, entity, cat, key, fmt.Sprintf(format, args...), num)
}
