package core

import "math"

// Vec2 is a 2D vector in world units. The play area is centered on the
// origin with +Y pointing up.
type Vec2 struct {
	X, Y float64
}

var (
	Zero = Vec2{}
	One  = Vec2{1, 1}
)

// Splat returns a vector with both components set to v
func Splat(v float64) Vec2 { return Vec2{v, v} }

// FromAngle returns the unit vector pointing at angle (radians)
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul multiplies elementwise
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }

// Len returns the euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo returns euclidean distance to another point
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Lerp interpolates between v and o, t is clamped to [0,1]
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	t = Clamp01(t)
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Signum returns ±1 per component. Zero keeps its sign bit, so +0 maps to +1.
func (v Vec2) Signum() Vec2 {
	return Vec2{signum(v.X), signum(v.Y)}
}

// RemEuclid returns the componentwise euclidean remainder, always in [0, size)
func (v Vec2) RemEuclid(size Vec2) Vec2 {
	return Vec2{remEuclid(v.X, size.X), remEuclid(v.Y, size.Y)}
}

// IsFinite reports whether both components are finite numbers
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func signum(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return math.Copysign(1, x)
}

func remEuclid(x, m float64) float64 {
	if m == 0 {
		return x
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += math.Abs(m)
	}
	return r
}

// Clamp01 clamps f into [0,1]; NaN becomes 0
func Clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Rect is an axis-aligned box given by its center and half extents
type Rect struct {
	Center Vec2
	Half   Vec2
}

// Contains reports whether p lies inside or on the border of the box
func (r Rect) Contains(p Vec2) bool {
	d := p.Sub(r.Center).Abs()
	return d.X <= r.Half.X && d.Y <= r.Half.Y
}
