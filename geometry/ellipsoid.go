package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Ellipsoid is defined by its three local-frame radii (§3).
type Ellipsoid struct {
	radii r3.Vector
	aabb  AABB
}

// NewEllipsoid validates and constructs an Ellipsoid.
func NewEllipsoid(radii r3.Vector) (*Ellipsoid, error) {
	if !finite(radii) {
		return nil, newBadDimensionsError("ellipsoid", "radii must be finite")
	}
	if radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		return nil, newBadDimensionsError("ellipsoid", "radii must be positive")
	}
	return &Ellipsoid{radii: radii, aabb: AABB{Min: radii.Mul(-1), Max: radii}}, nil
}

func (e *Ellipsoid) Type() NodeType          { return NodeEllipsoid }
func (e *Ellipsoid) Radii() r3.Vector        { return e.radii }
func (e *Ellipsoid) LocalAABB() AABB         { return e.aabb }
func (e *Ellipsoid) LocalCenter() r3.Vector  { return r3.Vector{} }
func (e *Ellipsoid) LocalRadius() float64    { return math.Max(e.radii.X, math.Max(e.radii.Y, e.radii.Z)) }
func (e *Ellipsoid) CenterOfMass() r3.Vector { return r3.Vector{} }

func (e *Ellipsoid) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * e.radii.X * e.radii.Y * e.radii.Z
}

func (e *Ellipsoid) Inertia() [9]float64 {
	m := e.Volume()
	a2, b2, c2 := e.radii.X*e.radii.X, e.radii.Y*e.radii.Y, e.radii.Z*e.radii.Z
	return [9]float64{
		m * (b2 + c2) / 5, 0, 0,
		0, m * (a2 + c2) / 5, 0,
		0, 0, m * (a2 + b2) / 5,
	}
}

func (e *Ellipsoid) Hash() int {
	return int(17*e.radii.X+19*e.radii.Y+23*e.radii.Z) ^ (int(NodeEllipsoid) << 28)
}

// Support implements §4.A: p_i = radii_i² · d_i / √(Σ radii_j² d_j²).
func (e *Ellipsoid) Support(d r3.Vector) r3.Vector {
	scaled := r3.Vector{X: e.radii.X * e.radii.X * d.X, Y: e.radii.Y * e.radii.Y * d.Y, Z: e.radii.Z * e.radii.Z * d.Z}
	denom := math.Sqrt(d.X*scaled.X + d.Y*scaled.Y + d.Z*scaled.Z)
	if denom < floatEpsilon {
		return r3.Vector{}
	}
	return scaled.Mul(1 / denom)
}
