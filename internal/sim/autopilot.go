package sim

import "math"

// autopilot tuning
const (
	threatLookahead = 220.0 // how far above the player an enemy counts as a threat
	threatPadding   = 12.0  // extra clearance added to the radius sum
	alignDeadband   = 3.0   // horizontal error tolerated when lining up a shot
)

// Autopilot is a deterministic input policy: sidestep the closest enemy on a
// collision course, otherwise line up under the lowest enemy and hold near
// the start row. It drives the controller through KeyDown/KeyUp exactly as a
// human input source would.
type Autopilot struct {
	held [4]bool // up, down, left, right
}

var autopilotKeys = [4]Key{KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight}

// Drive presses and releases keys on c for the coming tick.
func (a *Autopilot) Drive(c *Controller) {
	dx, dy := a.decide(c)
	want := [4]bool{dy < 0, dy > 0, dx < 0, dx > 0}
	for i, k := range autopilotKeys {
		if want[i] == a.held[i] {
			continue
		}
		if want[i] {
			c.KeyDown(k)
		} else {
			c.KeyUp(k)
		}
		a.held[i] = want[i]
	}
}

// decide returns the desired direction on each axis.
func (a *Autopilot) decide(c *Controller) (dx, dy int) {
	w := c.World()
	width, height := c.Size()
	p := w.Player

	// Threat: the nearest enemy above the player whose column overlaps ours.
	var threat *Enemy
	for _, e := range w.Enemies {
		above := p.Y - e.Pos.Y
		if above < -PlayerRadius || above > threatLookahead {
			continue
		}
		if math.Abs(e.Pos.X-p.X) >= e.Radius+PlayerRadius+threatPadding {
			continue
		}
		if threat == nil || e.Pos.Y > threat.Pos.Y {
			threat = e
		}
	}
	if threat != nil {
		// Sidestep toward the side with more room.
		if threat.Pos.X > p.X || (threat.Pos.X == p.X && p.X > width/2) {
			dx = -1
		} else {
			dx = 1
		}
		if p.X-PlayerSpeed < BoundsMargin && dx < 0 {
			dx = 1
		}
		if p.X+PlayerSpeed > width-BoundsMargin && dx > 0 {
			dx = -1
		}
		// Back off when the threat is already close.
		if p.Y-threat.Pos.Y < threat.Radius+PlayerRadius+2*threat.Type.Speed()+threatPadding {
			dy = 1
		}
		return dx, dy
	}

	// Target: the lowest enemy still above the player.
	var target *Enemy
	for _, e := range w.Enemies {
		if e.Pos.Y >= p.Y {
			continue
		}
		if target == nil || e.Pos.Y > target.Pos.Y {
			target = e
		}
	}
	if target != nil {
		switch {
		case target.Pos.X < p.X-alignDeadband:
			dx = -1
		case target.Pos.X > p.X+alignDeadband:
			dx = 1
		}
	}

	home := height * startYFraction
	switch {
	case p.Y < home-PlayerSpeed:
		dy = 1
	case p.Y > home+PlayerSpeed:
		dy = -1
	}
	return dx, dy
}

// Release lets go of every key the autopilot is holding.
func (a *Autopilot) Release(c *Controller) {
	for i, k := range autopilotKeys {
		if a.held[i] {
			c.KeyUp(k)
			a.held[i] = false
		}
	}
}
