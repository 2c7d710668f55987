package sim

import (
	"image/color"
	"io"

	"github.com/google/uuid"
)

// Tuning constants for the playfield and its entities.
const (
	PlayerRadius = 15.0
	PlayerSpeed  = 5.0

	BulletRadius = 4.0
	BulletSpeed  = 10.0
	FireInterval = 8 // ticks between auto-fire shots

	BoundsMargin    = 20.0 // player clamp inset and spawn inset
	BulletCullY     = -20.0
	EnemySpawnY     = -50.0
	EnemyCullMargin = 50.0 // enemies are culled below height+margin

	// startYFraction places the player 80% of the way down on launch.
	startYFraction = 0.8
)

// BulletColor is the colour shared by every player bullet.
var BulletColor = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}

// --- Enemy types ---

// EnemyType selects an enemy's size, toughness and value.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyFast
	EnemyHeavy

	enemyTypeCount
)

// EnemyProfile holds the fixed attributes an enemy type is created with.
type EnemyProfile struct {
	Radius float64
	Health int
	Score  int
	Color  color.RGBA
}

var enemyProfiles = [enemyTypeCount]EnemyProfile{
	EnemyBasic: {Radius: 15, Health: 1, Score: 10, Color: color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}},
	EnemyFast:  {Radius: 10, Health: 1, Score: 20, Color: color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}},
	EnemyHeavy: {Radius: 25, Health: 3, Score: 50, Color: color.RGBA{R: 0x7c, G: 0x3a, B: 0xed, A: 0xff}},
}

// Profile returns the creation attributes for this type.
func (t EnemyType) Profile() EnemyProfile {
	if t < 0 || t >= enemyTypeCount {
		return enemyProfiles[EnemyBasic]
	}
	return enemyProfiles[t]
}

// Speed is the downward distance an enemy of this type covers per tick.
// It is looked up at move time and never stored on the enemy.
func (t EnemyType) Speed() float64 {
	switch t {
	case EnemyFast:
		return 4
	case EnemyHeavy:
		return 1.5
	default:
		return 2.5
	}
}

func (t EnemyType) String() string {
	switch t {
	case EnemyBasic:
		return "basic"
	case EnemyFast:
		return "fast"
	case EnemyHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// EnemyTypes lists every spawnable type in draw order.
func EnemyTypes() []EnemyType {
	return []EnemyType{EnemyBasic, EnemyFast, EnemyHeavy}
}

// --- Entities ---

// Bullet is a player projectile. Its velocity never changes after creation.
type Bullet struct {
	ID       string
	Pos      Vector2
	Radius   float64
	Velocity Vector2
}

// Enemy is a descending hostile craft.
type Enemy struct {
	ID        string
	Pos       Vector2
	Radius    float64
	Health    int
	MaxHealth int
	Type      EnemyType
	Color     color.RGBA
	Score     int
}

// HealthFraction returns Health/MaxHealth in [0,1] for health bars.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 || e.Health <= 0 {
		return 0
	}
	if e.Health >= e.MaxHealth {
		return 1
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

// Label is a short identifier for logs, e.g. "heavy:1f0c2a".
func (e *Enemy) Label() string {
	return e.Type.String() + ":" + shortID(e.ID)
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// --- World ---

// World holds the live entity collections. Only the simulation step mutates
// it during a tick; renderers read it between ticks.
type World struct {
	Player  Vector2
	Bullets []*Bullet
	Enemies []*Enemy

	ids io.Reader
}

// newWorld creates an empty world whose entity IDs are drawn from ids.
func newWorld(ids io.Reader) *World {
	return &World{ids: ids}
}

// reset clears both collections and moves the player to p.
func (w *World) reset(p Vector2) {
	w.Player = p
	w.Bullets = w.Bullets[:0]
	w.Enemies = w.Enemies[:0]
}

func (w *World) nextID() string {
	if w.ids != nil {
		if id, err := uuid.NewRandomFromReader(w.ids); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

// newBullet creates a bullet at pos travelling straight up.
func (w *World) newBullet(pos Vector2) *Bullet {
	return &Bullet{
		ID:       w.nextID(),
		Pos:      pos,
		Radius:   BulletRadius,
		Velocity: Vector2{X: 0, Y: -BulletSpeed},
	}
}

// newEnemy creates a full-health enemy of type t at pos.
func (w *World) newEnemy(t EnemyType, pos Vector2) *Enemy {
	p := t.Profile()
	return &Enemy{
		ID:        w.nextID(),
		Pos:       pos,
		Radius:    p.Radius,
		Health:    p.Health,
		MaxHealth: p.Health,
		Type:      t,
		Color:     p.Color,
		Score:     p.Score,
	}
}

// startPosition is where the player is placed on launch.
func startPosition(width, height float64) Vector2 {
	return Vector2{X: width / 2, Y: height * startYFraction}
}
