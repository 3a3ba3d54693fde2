package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Sphere is defined by a radius about its local-frame origin (§3).
type Sphere struct {
	radius float64
}

// NewSphere validates and constructs a Sphere. Radius must be finite and strictly positive
// (§3 invariant: "radii... are non-negative", but a zero-radius sphere is degenerate and
// rejected per §7's "zero-radius sphere" validation failure).
func NewSphere(radius float64) (*Sphere, error) {
	if isNaNOrInf(radius) {
		return nil, newBadDimensionsError("sphere", "radius must be finite")
	}
	if radius <= 0 {
		return nil, newBadDimensionsError("sphere", "radius must be positive")
	}
	return &Sphere{radius: radius}, nil
}

func (s *Sphere) Type() NodeType   { return NodeSphere }
func (s *Sphere) Radius() float64  { return s.radius }
func (s *Sphere) LocalCenter() r3.Vector { return r3.Vector{} }
func (s *Sphere) LocalRadius() float64   { return s.radius }
func (s *Sphere) CenterOfMass() r3.Vector { return r3.Vector{} }

func (s *Sphere) LocalAABB() AABB {
	r := r3.Vector{X: s.radius, Y: s.radius, Z: s.radius}
	return AABB{Min: r.Mul(-1), Max: r}
}

func (s *Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.radius * s.radius * s.radius
}

func (s *Sphere) Inertia() [9]float64 {
	i := 2.0 / 5.0 * s.Volume() * s.radius * s.radius
	return [9]float64{i, 0, 0, 0, i, 0, 0, 0, i}
}

func (s *Sphere) Hash() int {
	return int(s.radius*1000) ^ (int(NodeSphere) << 28)
}

// Support implements §4.A: p = radius · d/‖d‖, with the origin returned for the degenerate d=0 case.
func (s *Sphere) Support(d r3.Vector) r3.Vector {
	n := d.Norm()
	if n < floatEpsilon {
		return r3.Vector{}
	}
	return d.Mul(s.radius / n)
}

// ToPoints samples the sphere surface using a Fibonacci-like latitude/longitude grid, grounded on the
// teacher's sphere ToPoints (used for point-cloud visualization only).
func (s *Sphere) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	var pts []r3.Vector
	rings := int(math.Max(4, math.Round(s.radius*resolution)))
	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		ringRadius := s.radius * math.Sin(phi)
		z := s.radius * math.Cos(phi)
		segments := int(math.Max(4, math.Round(2*math.Pi*ringRadius*resolution)))
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			pts = append(pts, r3.Vector{X: ringRadius * math.Cos(theta), Y: ringRadius * math.Sin(theta), Z: z})
		}
	}
	return pts
}
