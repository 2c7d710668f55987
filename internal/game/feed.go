package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

const (
	feedPanelWidth  = 260
	feedMaxEntries  = 40
	feedLineHeight  = 14
	feedVisibleRows = 12
	feedHighlight   = 3 // newest entries drawn on a brighter row
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    sim.EventKind
	Message string
}

// EventFeed is a ring buffer of recent controller events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, kind sim.EventKind, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Kind: kind, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Clear empties the feed.
func (f *EventFeed) Clear() {
	f.head = 0
	f.count = 0
}

// Observe is a controller listener. Shots are too frequent to list.
func (f *EventFeed) Observe(e sim.Event) {
	if e.Kind == sim.EventLaunch {
		f.Clear()
	}
	if msg, ok := feedMessage(e); ok {
		f.Add(e.Tick, e.Kind, msg)
	}
}

func feedMessage(e sim.Event) (string, bool) {
	switch e.Kind {
	case sim.EventLaunch:
		return fmt.Sprintf("mission start, best %d", e.Value), true
	case sim.EventSpawn:
		return e.Label + " inbound", true
	case sim.EventHit:
		if e.Value <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s hit, hp %d", e.Label, e.Value), true
	case sim.EventKill:
		return fmt.Sprintf("%s down +%d", e.Label, e.Value), true
	case sim.EventEscape:
		return e.Label + " slipped past", true
	case sim.EventGameOver:
		return fmt.Sprintf("hit by %s, final %d", e.Label, e.Score), true
	case sim.EventHighScore:
		return fmt.Sprintf("new best %d", e.Value), true
	default:
		return "", false
	}
}

func feedColor(k sim.EventKind) color.RGBA {
	switch k {
	case sim.EventKill, sim.EventHighScore:
		return color.RGBA{R: 56, G: 189, B: 248, A: 255}
	case sim.EventEscape, sim.EventGameOver:
		return color.RGBA{R: 239, G: 68, B: 68, A: 255}
	case sim.EventHit:
		return color.RGBA{R: 245, G: 158, B: 11, A: 255}
	default:
		return color.RGBA{R: 100, G: 116, B: 139, A: 255}
	}
}

// Draw renders the feed panel anchored to the bottom-right corner.
func (f *EventFeed) Draw(screen *ebiten.Image, screenW, screenH int) {
	entries := f.Recent()
	if len(entries) > feedVisibleRows {
		entries = entries[len(entries)-feedVisibleRows:]
	}
	panelH := feedVisibleRows*feedLineHeight + 24
	px := float32(screenW - feedPanelWidth - 8)
	py := float32(screenH - panelH - 8)
	if px < 0 || py < 0 {
		return
	}

	vector.FillRect(screen, px, py, feedPanelWidth, float32(panelH), color.NRGBA{R: 2, G: 6, B: 23, A: 190}, false)
	vector.StrokeRect(screen, px, py, feedPanelWidth, float32(panelH), 1, color.NRGBA{R: 51, G: 65, B: 85, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, "FLIGHT LOG", int(px)+8, int(py)+3)
	vector.StrokeLine(screen, px, py+18, px+feedPanelWidth, py+18, 1, color.NRGBA{R: 51, G: 65, B: 85, A: 200}, false)

	y := int(py) + 22
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.NRGBA{R: 30, G: 41, B: 59, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), int(px)+12, y)
		y += feedLineHeight
	}
}
