package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cylinder is a right circular cylinder defined by radius and half-length along local Z (§3).
type Cylinder struct {
	radius     float64
	halfLength float64
}

// NewCylinder validates and constructs a Cylinder.
func NewCylinder(radius, halfLength float64) (*Cylinder, error) {
	if isNaNOrInf(radius) || isNaNOrInf(halfLength) {
		return nil, newBadDimensionsError("cylinder", "radius and half-length must be finite")
	}
	if radius <= 0 {
		return nil, newBadDimensionsError("cylinder", "radius must be positive")
	}
	if halfLength <= 0 {
		return nil, newBadDimensionsError("cylinder", "half-length must be positive")
	}
	return &Cylinder{radius: radius, halfLength: halfLength}, nil
}

func (c *Cylinder) Type() NodeType          { return NodeCylinder }
func (c *Cylinder) Radius() float64         { return c.radius }
func (c *Cylinder) HalfLength() float64     { return c.halfLength }
func (c *Cylinder) LocalCenter() r3.Vector  { return r3.Vector{} }
func (c *Cylinder) CenterOfMass() r3.Vector { return r3.Vector{} }

func (c *Cylinder) LocalRadius() float64 {
	return math.Hypot(c.radius, c.halfLength)
}

func (c *Cylinder) LocalAABB() AABB {
	r := r3.Vector{X: c.radius, Y: c.radius, Z: c.halfLength}
	return AABB{Min: r.Mul(-1), Max: r}
}

func (c *Cylinder) Volume() float64 {
	return math.Pi * c.radius * c.radius * (2 * c.halfLength)
}

func (c *Cylinder) Inertia() [9]float64 {
	m := c.Volume()
	h := 2 * c.halfLength
	ixx := m * (3*c.radius*c.radius + h*h) / 12
	izz := m * c.radius * c.radius / 2
	return [9]float64{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}

func (c *Cylinder) Hash() int {
	return int(c.radius*1000+c.halfLength*7) ^ (int(NodeCylinder) << 28)
}

// Support implements §4.A: the disc-rim support in the XY projection of d, combined with the
// cap chosen by sign(d_z). The on-axis case (projection near zero) returns a point on the rim,
// matching the teacher's convention of an arbitrary but deterministic tie-break.
func (c *Cylinder) Support(d r3.Vector) r3.Vector {
	planar := r3.Vector{X: d.X, Y: d.Y}
	n := planar.Norm()
	var rim r3.Vector
	if n < floatEpsilon {
		rim = r3.Vector{X: c.radius}
	} else {
		rim = planar.Mul(c.radius / n)
	}
	if d.Z >= 0 {
		rim.Z = c.halfLength
	} else {
		rim.Z = -c.halfLength
	}
	return rim
}

// ToPoints samples the two end caps and the lateral surface, grounded on the teacher's
// cylinder point-sampling conventions (visualization only).
func (c *Cylinder) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	var pts []r3.Vector
	segments := int(math.Max(8, math.Round(2*math.Pi*c.radius*resolution)))
	rings := int(math.Max(1, math.Round(2*c.halfLength*resolution)))
	for ring := 0; ring <= rings; ring++ {
		z := -c.halfLength + 2*c.halfLength*float64(ring)/float64(rings)
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			pts = append(pts, r3.Vector{X: c.radius * math.Cos(theta), Y: c.radius * math.Sin(theta), Z: z})
		}
	}
	pts = append(pts, r3.Vector{Z: c.halfLength}, r3.Vector{Z: -c.halfLength})
	return pts
}
