package sim

import (
	"fmt"
	"strings"
)

// LogCategory groups SimLog entries.
type LogCategory string

const (
	LogLifecycle LogCategory = "lifecycle" // launch, game_over
	LogPlayer    LogCategory = "player"    // fire (verbose only)
	LogSpawn     LogCategory = "spawn"
	LogCombat    LogCategory = "combat" // non-lethal hits
	LogScore     LogCategory = "score"  // kill, high_score
	LogCull      LogCategory = "cull"   // escape
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Entity   string // enemy label e.g. "heavy:3fa8c1", or "--"
	Category LogCategory
	Key      string
	Value    string
	NumVal   float64
}

// String renders the entry as a log line:
//
//	[T=042] heavy:3fa8c1 score     kill             +50 → 120
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-12s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// Query selects log entries. Zero fields match anything; To <= 0 means no
// upper tick bound.
type Query struct {
	Category LogCategory
	Key      string
	Entity   string
	Contains string // substring of Value
	From     int
	To       int
}

func (q Query) matches(e SimLogEntry) bool {
	switch {
	case q.Category != "" && e.Category != q.Category:
		return false
	case q.Key != "" && e.Key != q.Key:
		return false
	case q.Entity != "" && e.Entity != q.Entity:
		return false
	case e.Tick < q.From:
		return false
	case q.To > 0 && e.Tick > q.To:
		return false
	case q.Contains != "" && !strings.Contains(e.Value, q.Contains):
		return false
	}
	return true
}

// SimLog collects structured events for tests and the headless report. The
// on-screen feed is a separate ring buffer.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-tick entries such as
// every auto-fire shot.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick entries are kept.
func (sl *SimLog) Verbose() bool { return sl.verbose }

func (sl *SimLog) Add(tick int, entity string, cat LogCategory, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Category: cat,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only in verbose mode.
func (sl *SimLog) AddVerbose(tick int, entity string, cat LogCategory, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, entity, cat, key, value, numVal)
	}
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

func (sl *SimLog) Len() int { return len(sl.entries) }

// Find returns every entry matching q, oldest first.
func (sl *SimLog) Find(q Query) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (sl *SimLog) Count(q Query) int {
	n := 0
	for _, e := range sl.entries {
		if q.matches(e) {
			n++
		}
	}
	return n
}

// First returns the oldest entry matching q.
func (sl *SimLog) First(q Query) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if q.matches(e) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// Last returns the newest entry matching q.
func (sl *SimLog) Last(q Query) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.matches(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

func (sl *SimLog) Has(q Query) bool {
	_, ok := sl.First(q)
	return ok
}

// Format renders the entries matching q, one per line.
func (sl *SimLog) Format(q Query) string {
	var sb strings.Builder
	for _, e := range sl.entries {
		if q.matches(e) {
			sb.WriteString(e.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Summary describes the session as it stands at tick.
func (sl *SimLog) Summary(tick int, state GameState, w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	fmt.Fprintf(&sb, "score=%d best=%d game_over=%v\n", state.Score, state.HighScore, state.IsGameOver)

	var onField [enemyTypeCount]int
	for _, e := range w.Enemies {
		onField[e.Type]++
	}
	for _, t := range EnemyTypes() {
		fmt.Fprintf(&sb, "  %-5s on_field=%d killed=%d\n", t, onField[t], sl.killsOf(t))
	}
	fmt.Fprintf(&sb, "bullets=%d player=(%.0f,%.0f) escapes=%d\n",
		len(w.Bullets), w.Player.X, w.Player.Y, sl.Count(Query{Category: LogCull, Key: "escape"}))
	return sb.String()
}

// killsOf counts kill entries for enemies of type t.
func (sl *SimLog) killsOf(t EnemyType) int {
	prefix := t.String() + ":"
	n := 0
	for _, e := range sl.entries {
		if e.Category == LogScore && e.Key == "kill" && strings.HasPrefix(e.Entity, prefix) {
			n++
		}
	}
	return n
}
