// Package scatter implements area-weighted scattering of object instances
// across surface and mesh targets: sample generation, placement transform
// composition and the interactive preview session.
package scatter

import (
	"math"

	"github.com/meshforge/scatter/pkg/geom"
)

// Sample is one candidate placement on a target: a point and the unit
// surface normal at that point. Normal is the zero vector when the target
// geometry does not define one.
type Sample struct {
	Point  geom.Vec3
	Normal geom.Vec3
}

// Target is an area-bearing scatter destination.
type Target interface {
	// Area returns the measured area of the target. Non-positive area marks
	// the target as degenerate; samplers fall back to the centroid.
	Area() float64

	// Centroid returns the area centroid of the target.
	Centroid() geom.Vec3
}

// Interval is a closed parameter interval [Min, Max].
type Interval struct {
	Min, Max float64
}

// Length returns Max - Min.
func (iv Interval) Length() float64 {
	return iv.Max - iv.Min
}

// Lerp maps t in [0,1] onto the interval.
func (iv Interval) Lerp(t float64) float64 {
	return iv.Min + t*(iv.Max-iv.Min)
}

// Contains reports whether x lies within the interval.
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Min && x <= iv.Max
}

// Surface is a parametric target evaluated over a rectangular (u,v) domain.
// Sampling a Surface is uniform in parameter space, not in area; see
// Sampler.Samples.
type Surface interface {
	Target

	// Domain returns the u and v parameter intervals.
	Domain() (u, v Interval)

	// EvaluateAt returns the surface point and unit normal at (u, v).
	EvaluateAt(u, v float64) (point, normal geom.Vec3)
}

// PlaneSurface is a flat rectangle parallel to the world XY plane, with
// Origin at its minimum corner. Its parameterization is area-uniform.
type PlaneSurface struct {
	Origin        geom.Vec3
	Width, Height float64
}

// Area returns Width * Height.
func (p PlaneSurface) Area() float64 {
	return p.Width * p.Height
}

// Centroid returns the rectangle center.
func (p PlaneSurface) Centroid() geom.Vec3 {
	return p.Origin.Add(geom.Vec3{X: p.Width / 2, Y: p.Height / 2})
}

// Domain returns [0,Width] x [0,Height].
func (p PlaneSurface) Domain() (u, v Interval) {
	return Interval{0, p.Width}, Interval{0, p.Height}
}

// EvaluateAt returns the plane point at (u, v) with the +Z normal.
func (p PlaneSurface) EvaluateAt(u, v float64) (geom.Vec3, geom.Vec3) {
	return p.Origin.Add(geom.Vec3{X: u, Y: v}), geom.ZAxis
}

// SphereSurface is a full sphere under the usual longitude/latitude
// parameterization. Parameter-uniform samples crowd toward the poles, which
// makes it a useful demonstration of the surface path's distortion.
type SphereSurface struct {
	Center geom.Vec3
	Radius float64
}

// Area returns the sphere surface area.
func (s SphereSurface) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Centroid returns the sphere center.
func (s SphereSurface) Centroid() geom.Vec3 {
	return s.Center
}

// Domain returns longitude [0,2π) and latitude [-π/2,π/2].
func (s SphereSurface) Domain() (u, v Interval) {
	return Interval{0, 2 * math.Pi}, Interval{-math.Pi / 2, math.Pi / 2}
}

// EvaluateAt returns the sphere point at longitude u, latitude v. The
// normal is the outward radial direction.
func (s SphereSurface) EvaluateAt(u, v float64) (geom.Vec3, geom.Vec3) {
	n := geom.Vec3{
		X: math.Cos(v) * math.Cos(u),
		Y: math.Cos(v) * math.Sin(u),
		Z: math.Sin(v),
	}
	return s.Center.Add(n.Scale(s.Radius)), n
}
