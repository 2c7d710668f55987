package sim

// EventKind identifies what a controller event reports.
type EventKind int

const (
	EventLaunch EventKind = iota
	EventFire
	EventSpawn
	EventHit
	EventKill
	EventEscape
	EventGameOver
	EventHighScore
)

func (k EventKind) String() string {
	switch k {
	case EventLaunch:
		return "launch"
	case EventFire:
		return "fire"
	case EventSpawn:
		return "spawn"
	case EventHit:
		return "hit"
	case EventKill:
		return "kill"
	case EventEscape:
		return "escape"
	case EventGameOver:
		return "game_over"
	case EventHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the controller has applied a tick.
// Score is the running score after the event; Value is event specific
// (points for a kill, remaining health for a hit, the new best for a high score).
type Event struct {
	Kind  EventKind
	Tick  int
	Enemy EnemyType
	Label string
	Pos   Vector2
	Score int
	Value int
}

// Listener receives controller events.
type Listener func(Event)
