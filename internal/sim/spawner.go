package sim

// DefaultSpawnRate is the per-tick spawn probability at score 0.
const DefaultSpawnRate = 0.02

// spawnScoreDivisor converts score into extra spawn probability.
const spawnScoreDivisor = 10000.0

// RandSource is the subset of *rand.Rand the spawner draws from.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// Spawner decides once per tick whether a new enemy enters the playfield.
// There is no cooldown: every tick is an independent draw.
type Spawner struct {
	rng      RandSource
	baseRate float64
	disabled bool
}

// NewSpawner creates a spawner using the default base rate.
func NewSpawner(rng RandSource) *Spawner {
	return &Spawner{rng: rng, baseRate: DefaultSpawnRate}
}

// Chance returns the spawn probability for the given score.
func (s *Spawner) Chance(score int) float64 {
	if s.disabled {
		return 0
	}
	return s.baseRate + float64(score)/spawnScoreDivisor
}

// SetEnabled turns spawning on or off. A disabled spawner never draws.
func (s *Spawner) SetEnabled(on bool) {
	s.disabled = !on
}

// Roll draws for this tick. When it fires it returns the enemy type and its
// start position above the visible area.
func (s *Spawner) Roll(width float64, score int) (EnemyType, Vector2, bool) {
	if s.disabled || s.rng == nil {
		return 0, Vector2{}, false
	}
	if s.rng.Float64() >= s.Chance(score) {
		return 0, Vector2{}, false
	}
	types := EnemyTypes()
	t := types[s.rng.Intn(len(types))]

	span := width - 2*BoundsMargin
	x := width / 2
	if span > 0 {
		x = s.rng.Float64()*span + BoundsMargin
	}
	return t, Vector2{X: x, Y: EnemySpawnY}, true
}
