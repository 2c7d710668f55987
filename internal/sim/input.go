package sim

// Key is a canonical direction token as delivered by an input source.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyW          Key = "w"
	KeyS          Key = "s"
	KeyA          Key = "a"
	KeyD          Key = "d"
)

// Input is the held/not-held state of every key seen since the last Clear.
// Key-down sets a flag and key-up clears it; the step reads the flags
// synchronously at the start of each tick.
type Input struct {
	held map[Key]bool
}

// NewInput creates an empty key state.
func NewInput() *Input {
	return &Input{held: make(map[Key]bool)}
}

// KeyDown marks k as held.
func (in *Input) KeyDown(k Key) {
	in.held[k] = true
}

// KeyUp marks k as released.
func (in *Input) KeyUp(k Key) {
	in.held[k] = false
}

// Held reports whether k is currently down.
func (in *Input) Held(k Key) bool {
	return in.held[k]
}

// Clear releases every key.
func (in *Input) Clear() {
	for k := range in.held {
		delete(in.held, k)
	}
}

// Axis returns the net direction from the held keys. Opposing directions
// cancel, so the result is always in -1..1 on each axis.
func (in *Input) Axis() (dx, dy int) {
	if in.held[KeyArrowUp] || in.held[KeyW] {
		dy--
	}
	if in.held[KeyArrowDown] || in.held[KeyS] {
		dy++
	}
	if in.held[KeyArrowLeft] || in.held[KeyA] {
		dx--
	}
	if in.held[KeyArrowRight] || in.held[KeyD] {
		dx++
	}
	return dx, dy
}
