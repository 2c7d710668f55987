package sim

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-play reports (~10s at 60TPS).
const reportWindowTicks = 600

// TickReport is a snapshot of the session at one tick.
type TickReport struct {
	Tick        int
	Score       int
	Bullets     int
	Enemies     int
	SpawnChance float64
	Player      Vector2
}

// RunReport accumulates statistics for one run, from launch to game over.
type RunReport struct {
	Seed         int64
	Ticks        int
	Score        int
	HighScore    int
	NewHighScore bool
	Shots        int
	Hits         int
	Spawns       [enemyTypeCount]int
	Kills        [enemyTypeCount]int
	Escapes      [enemyTypeCount]int
	GameOver     bool
	KilledBy     string
}

// TotalKills sums kills over every type.
func (r RunReport) TotalKills() int {
	n := 0
	for _, k := range r.Kills {
		n += k
	}
	return n
}

// TotalEscapes sums escapes over every type.
func (r RunReport) TotalEscapes() int {
	n := 0
	for _, k := range r.Escapes {
		n += k
	}
	return n
}

// Accuracy is hits per shot, or 0 before the first shot.
func (r RunReport) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// Format renders the run as a few report lines.
func (r RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ticks=%d score=%d best=%d new_best=%v game_over=%v killed_by=%s\n",
		r.Ticks, r.Score, r.HighScore, r.NewHighScore, r.GameOver, orNone(r.KilledBy))
	fmt.Fprintf(&sb, "shots=%d hits=%d accuracy=%.1f%%\n", r.Shots, r.Hits, r.Accuracy()*100)
	for _, t := range EnemyTypes() {
		fmt.Fprintf(&sb, "  %-5s spawned=%d killed=%d escaped=%d\n", t, r.Spawns[t], r.Kills[t], r.Escapes[t])
	}
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// WindowReport averages the snapshots inside the reporter's window.
type WindowReport struct {
	FromTick       int
	ToTick         int
	SampleCount    int
	ScoreGain      int
	AvgEnemies     float64
	AvgBullets     float64
	AvgSpawnChance float64
}

// Format renders the window summary as one line.
func (w *WindowReport) Format() string {
	return fmt.Sprintf("window T=%d..%d samples=%d score_gain=%d avg_enemies=%.1f avg_bullets=%.1f avg_spawn=%.3f",
		w.FromTick, w.ToTick, w.SampleCount, w.ScoreGain, w.AvgEnemies, w.AvgBullets, w.AvgSpawnChance)
}

// SimReporter collects run statistics from controller events and periodic
// snapshots for sliding-window summaries.
type SimReporter struct {
	history     []TickReport
	windowTicks int
	run         RunReport
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Observe is a Listener; subscribe it to a controller.
func (r *SimReporter) Observe(e Event) {
	if e.Tick > r.run.Ticks {
		r.run.Ticks = e.Tick
	}
	switch e.Kind {
	case EventLaunch:
		seed := r.run.Seed
		r.run = RunReport{Seed: seed, HighScore: e.Value}
		r.history = r.history[:0]
	case EventFire:
		r.run.Shots++
	case EventSpawn:
		r.run.Spawns[e.Enemy]++
	case EventHit:
		r.run.Hits++
	case EventKill:
		r.run.Kills[e.Enemy]++
		r.run.Score = e.Score
	case EventEscape:
		r.run.Escapes[e.Enemy]++
	case EventGameOver:
		r.run.GameOver = true
		r.run.Score = e.Score
		r.run.KilledBy = e.Label
		if e.Value > r.run.HighScore {
			r.run.HighScore = e.Value
		}
	case EventHighScore:
		r.run.HighScore = e.Value
		r.run.NewHighScore = true
	}
}

// Collect records a snapshot of the controller. Call it periodically
// (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(c *Controller) {
	w := c.World()
	st := c.State()
	r.history = append(r.history, TickReport{
		Tick:        c.TickCount(),
		Score:       st.Score,
		Bullets:     len(w.Bullets),
		Enemies:     len(w.Enemies),
		SpawnChance: c.Spawner().Chance(st.Score),
		Player:      w.Player,
	})
	if c.TickCount() > r.run.Ticks {
		r.run.Ticks = c.TickCount()
	}
	// Drop snapshots that can no longer fall inside a window.
	if len(r.history) > 4*r.windowTicks {
		r.history = append(r.history[:0], r.history[len(r.history)-r.windowTicks:]...)
	}
}

// SetSeed labels the current and following runs with seed.
func (r *SimReporter) SetSeed(seed int64) {
	r.run.Seed = seed
}

// Run returns the statistics gathered since the last launch.
func (r *SimReporter) Run() RunReport {
	return r.run
}

// Latest returns the most recent snapshot.
func (r *SimReporter) Latest() (TickReport, bool) {
	if len(r.history) == 0 {
		return TickReport{}, false
	}
	return r.history[len(r.history)-1], true
}

// WindowSummary averages the snapshots within windowTicks of the latest one.
// It returns nil when nothing has been collected.
func (r *SimReporter) WindowSummary() *WindowReport {
	latest, ok := r.Latest()
	if !ok {
		return nil
	}
	from := latest.Tick - r.windowTicks
	wr := &WindowReport{ToTick: latest.Tick, FromTick: latest.Tick}
	first := -1
	for i, s := range r.history {
		if s.Tick < from {
			continue
		}
		if first < 0 {
			first = i
			wr.FromTick = s.Tick
		}
		wr.SampleCount++
		wr.AvgEnemies += float64(s.Enemies)
		wr.AvgBullets += float64(s.Bullets)
		wr.AvgSpawnChance += s.SpawnChance
	}
	n := float64(wr.SampleCount)
	wr.AvgEnemies /= n
	wr.AvgBullets /= n
	wr.AvgSpawnChance /= n
	wr.ScoreGain = latest.Score - r.history[first].Score
	return wr
}
