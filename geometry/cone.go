package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cone is a right circular cone with apex at +Z·half-length and a circular base of the given
// radius at -Z·half-length (§3 "Cone(radius, half-length along local Z)").
type Cone struct {
	radius     float64
	halfLength float64
}

// NewCone validates and constructs a Cone.
func NewCone(radius, halfLength float64) (*Cone, error) {
	if isNaNOrInf(radius) || isNaNOrInf(halfLength) {
		return nil, newBadDimensionsError("cone", "radius and half-length must be finite")
	}
	if radius <= 0 {
		return nil, newBadDimensionsError("cone", "radius must be positive")
	}
	if halfLength <= 0 {
		return nil, newBadDimensionsError("cone", "half-length must be positive")
	}
	return &Cone{radius: radius, halfLength: halfLength}, nil
}

func (c *Cone) Type() NodeType      { return NodeCone }
func (c *Cone) Radius() float64     { return c.radius }
func (c *Cone) HalfLength() float64 { return c.halfLength }

func (c *Cone) LocalCenter() r3.Vector { return r3.Vector{} }

func (c *Cone) LocalRadius() float64 {
	return math.Max(c.halfLength, math.Hypot(c.radius, c.halfLength))
}

func (c *Cone) LocalAABB() AABB {
	r := r3.Vector{X: c.radius, Y: c.radius, Z: c.halfLength}
	return AABB{Min: r.Mul(-1), Max: r}
}

func (c *Cone) Volume() float64 {
	return math.Pi * c.radius * c.radius * (2 * c.halfLength) / 3
}

// CenterOfMass is offset from the geometric midpoint towards the base, per the standard solid-cone
// centroid (1/4 of the height above the base plane).
func (c *Cone) CenterOfMass() r3.Vector {
	return r3.Vector{Z: -c.halfLength + (2*c.halfLength)/4}
}

func (c *Cone) Inertia() [9]float64 {
	m := c.Volume()
	h := 2 * c.halfLength
	ixx := m * (3*c.radius*c.radius/20 + 3*h*h/80)
	izz := m * 3 * c.radius * c.radius / 10
	return [9]float64{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}

func (c *Cone) Hash() int {
	return int(c.radius*1000+c.halfLength*11) ^ (int(NodeCone) << 28)
}

// Support implements §4.A by exploiting that a cone is the convex hull of its apex and base rim:
// the support point is whichever of {apex, base-rim-support} maximizes d·p.
func (c *Cone) Support(d r3.Vector) r3.Vector {
	apex := r3.Vector{Z: c.halfLength}
	planar := r3.Vector{X: d.X, Y: d.Y}
	n := planar.Norm()
	var rim r3.Vector
	if n < floatEpsilon {
		rim = r3.Vector{X: c.radius, Z: -c.halfLength}
	} else {
		rim = planar.Mul(c.radius / n)
		rim.Z = -c.halfLength
	}
	if apex.Dot(d) >= rim.Dot(d) {
		return apex
	}
	return rim
}

// ToPoints samples the base disc, apex, and lateral surface, grounded on the teacher's
// point-sampling conventions for curved primitives (visualization only).
func (c *Cone) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	var pts []r3.Vector
	pts = append(pts, r3.Vector{Z: c.halfLength})
	segments := int(math.Max(8, math.Round(2*math.Pi*c.radius*resolution)))
	rings := int(math.Max(1, math.Round(2*c.halfLength*resolution)))
	for ring := 0; ring <= rings; ring++ {
		t := float64(ring) / float64(rings)
		z := -c.halfLength + 2*c.halfLength*t
		ringRadius := c.radius * (1 - t)
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			pts = append(pts, r3.Vector{X: ringRadius * math.Cos(theta), Y: ringRadius * math.Sin(theta), Z: z})
		}
	}
	return pts
}
