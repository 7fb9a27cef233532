package dynamo

import "math"

// Vec3 is a three component vector. Positions are in meters, velocities in
// m/s and forces in newtons depending on context.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Sin applies math.Sin component-wise.
func (v Vec3) Sin() Vec3 {
	return Vec3{X: math.Sin(v.X), Y: math.Sin(v.Y), Z: math.Sin(v.Z)}
}

// Sum returns x + y + z, the plane-wave phase direction (1,1,1) applied to v.
func (v Vec3) Sum() float64 {
	return v.X + v.Y + v.Z
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Slice returns the components as []float64{X, Y, Z}.
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}
