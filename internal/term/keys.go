package term

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

// HoldKeys turns a terminal's press-and-repeat stream into held keys.
// Terminals report no key release, so a key counts as held for a number of
// frames after its last press or auto-repeat.
type HoldKeys struct {
	hold      int
	remaining map[sim.Key]int
}

// NewHoldKeys creates a tracker that holds each key for hold frames.
func NewHoldKeys(hold int) *HoldKeys {
	if hold < 1 {
		hold = 1
	}
	return &HoldKeys{hold: hold, remaining: make(map[sim.Key]int)}
}

// Press refreshes k and reports whether it was newly pressed.
func (h *HoldKeys) Press(k sim.Key) bool {
	_, held := h.remaining[k]
	h.remaining[k] = h.hold
	return !held
}

// Advance counts down one frame and returns the keys that expired, in a
// stable order.
func (h *HoldKeys) Advance() []sim.Key {
	var released []sim.Key
	for k, n := range h.remaining {
		if n <= 1 {
			released = append(released, k)
			delete(h.remaining, k)
			continue
		}
		h.remaining[k] = n - 1
	}
	sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
	return released
}

// Held reports whether k is currently held.
func (h *HoldKeys) Held(k sim.Key) bool {
	_, ok := h.remaining[k]
	return ok
}

// Reset releases every key.
func (h *HoldKeys) Reset() {
	for k := range h.remaining {
		delete(h.remaining, k)
	}
}

// keyToken maps a terminal key event to a movement token.
func keyToken(ev *tcell.EventKey) (sim.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return sim.KeyArrowUp, true
	case tcell.KeyDown:
		return sim.KeyArrowDown, true
	case tcell.KeyLeft:
		return sim.KeyArrowLeft, true
	case tcell.KeyRight:
		return sim.KeyArrowRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return sim.KeyW, true
		case 's', 'S':
			return sim.KeyS, true
		case 'a', 'A':
			return sim.KeyA, true
		case 'd', 'D':
			return sim.KeyD, true
		}
	}
	return "", false
}

// isLaunch reports whether ev is a launch/redeploy command.
func isLaunch(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
}

// isQuit reports whether ev should end the session.
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
