package sim

// Driver is the explicit frame scheduler. The host calls Frame once per
// display refresh; a tick only runs when one has been requested. Whoever
// runs the tick re-requests at the end if the game is still running.
type Driver struct {
	armed  bool
	run    func()
	frames int // frames that ran a tick
}

// NewDriver creates an unarmed driver that calls run on each armed frame.
func NewDriver(run func()) *Driver {
	return &Driver{run: run}
}

// Request arms the driver for the next frame.
func (d *Driver) Request() {
	d.armed = true
}

// Cancel disarms the driver. Canceling an unarmed driver is a no-op.
func (d *Driver) Cancel() {
	d.armed = false
}

// Armed reports whether the next Frame will run a tick.
func (d *Driver) Armed() bool {
	return d.armed
}

// Frame is the host refresh callback. The request is consumed before the
// tick runs, so a tick that does not re-request ends the loop.
func (d *Driver) Frame() bool {
	if !d.armed || d.run == nil {
		return false
	}
	d.armed = false
	d.frames++
	d.run()
	return true
}

// Frames returns how many frames have run a tick.
func (d *Driver) Frames() int {
	return d.frames
}
