// Package geom holds the 2D vector math shared by the game packages. Vec2
// shares its layout with the physics engine's vector so values convert
// between the two without copying field by field.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D vector in world units.
type Vec2 cp.Vector

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Heading returns the unit vector pointing along angle radians, where zero
// points down the positive X axis.
func Heading(angle float64) Vec2 {
	return Vec2(cp.ForAngle(angle))
}

// Vector returns v as an engine vector.
func (v Vec2) Vector() cp.Vector {
	return cp.Vector(v)
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(v.Vector().Add(o.Vector()))
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(v.Vector().Sub(o.Vector()))
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(v.Vector().Mult(s))
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.Vector().Dot(o.Vector())
}

func (v Vec2) Len() float64 {
	return v.Vector().Length()
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	return Vec2(v.Vector().Normalize())
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	return Vec2(v.Vector().Rotate(cp.ForAngle(angle)))
}

// Lerp moves from v toward o by t, clamped to [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2(v.Vector().Lerp(o.Vector(), cp.Clamp01(t)))
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return cp.Clamp(x, lo, hi)
}

// LerpAngle moves angle a toward b by t along the shorter arc.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Remainder(b-a, 2*math.Pi)
	return a + diff*cp.Clamp01(t)
}
