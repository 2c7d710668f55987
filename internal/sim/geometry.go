package sim

import "math"

// Vector2 is a position or velocity on the playfield.
type Vector2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// DistSq returns the squared Euclidean distance between v and o.
func (v Vector2) DistSq(o Vector2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between v and o.
func (v Vector2) Dist(o Vector2) float64 {
	return math.Sqrt(v.DistSq(o))
}

// circlesOverlap reports whether two circles are strictly closer than the sum
// of their radii. Touching circles do not overlap.
func circlesOverlap(a Vector2, ra float64, b Vector2, rb float64) bool {
	return a.Dist(b) < ra+rb
}

// clamp restricts v to [lo, hi]. When the range is inverted (a playfield
// smaller than twice the margin) the midpoint is returned.
func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
