package utils

import "math"

// Vector2 is a point or a direction on the arena plane.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }

// Dot is the scalar product of v and o.
func (v Vector2) Dot(o Vector2) float64 { return v.X*o.X + v.Y*o.Y }

// Length is the Euclidean norm of v.
func (v Vector2) Length() float64 { return math.Hypot(v.X, v.Y) }

// LengthSquared is Length squared, without the square root.
func (v Vector2) LengthSquared() float64 { return v.Dot(v) }

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// ReflectY mirrors v across the horizontal axis, as a top or bottom wall does.
func (v Vector2) ReflectY() Vector2 { return Vector2{v.X, -v.Y} }

// Distance is the Euclidean distance between p and q.
func Distance(p, q Vector2) float64 {
	return q.Sub(p).Length()
}

// Epsilon is the tolerance used for unit-length and equality checks.
const Epsilon = 1e-9

// UnitVector returns the normalized direction from one point to another.
// ok is false, and the vector zero, when both points coincide.
func UnitVector(from, to Vector2) (Vector2, bool) {
	delta := to.Sub(from)
	length := delta.Length()
	if length == 0 {
		return Vector2{}, false
	}
	return delta.Scale(1 / length), true
}

// Clamp saturates v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampInt saturates v into [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Arena is the rectangular playing field, origin at the top-left corner.
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside [0,Width)x[0,Height).
func (a Arena) Contains(p Vector2) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

// ClampPoint saturates p onto the closed arena rectangle.
func (a Arena) ClampPoint(p Vector2) Vector2 {
	return Vector2{Clamp(p.X, 0, a.Width), Clamp(p.Y, 0, a.Height)}
}

// OnBoundary reports whether p lies on one of the four arena edges.
func (a Arena) OnBoundary(p Vector2) bool {
	return p.X == 0 || p.X == a.Width || p.Y == 0 || p.Y == a.Height
}

// ReflectOffArenaEdge returns the first point where the ray from pos along dir
// meets the top edge, the bottom edge or the vertical edge it is heading to.
// The vertical edge is solved first; when its intersection falls outside
// [0,Height] the ray is re-solved against the horizontal edge it exceeded.
// ok is false for a zero direction.
func (a Arena) ReflectOffArenaEdge(pos, dir Vector2) (Vector2, bool) {
	if dir.IsZero() {
		return pos, false
	}

	if dir.X == 0 {
		if dir.Y < 0 {
			return a.ClampPoint(Vector2{pos.X, 0}), true
		}
		return a.ClampPoint(Vector2{pos.X, a.Height}), true
	}

	edgeX := 0.0
	if dir.X > 0 {
		edgeX = a.Width
	}

	y := (edgeX-pos.X)*dir.Y/dir.X + pos.Y
	switch {
	case y >= 0 && y <= a.Height:
		return a.ClampPoint(Vector2{edgeX, y}), true
	case y < 0:
		x := (0-pos.Y)*dir.X/dir.Y + pos.X
		return a.ClampPoint(Vector2{x, 0}), true
	default:
		x := (a.Height-pos.Y)*dir.X/dir.Y + pos.X
		return a.ClampPoint(Vector2{x, a.Height}), true
	}
}
