package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Halfspace is the infinite solid region on the negative side of a plane, defined by a unit
// normal and the signed offset of the bounding plane from the local-frame origin along that
// normal (§3 "Halfspace(normal, offset)"). Like Plane, it participates in collision queries only
// through closed-form pair algorithms, never through generic GJK/EPA iteration.
type Halfspace struct {
	normal r3.Vector
	offset float64
}

// NewHalfspace validates and constructs a Halfspace. The normal is stored normalized and points
// away from the solid region, towards open space.
func NewHalfspace(normal r3.Vector, offset float64) (*Halfspace, error) {
	if !finite(normal) || isNaNOrInf(offset) {
		return nil, newBadNormalError("halfspace normal and offset must be finite")
	}
	n := normal.Norm()
	if n < floatEpsilon {
		return nil, newBadNormalError("halfspace normal must be non-zero")
	}
	return &Halfspace{normal: normal.Mul(1 / n), offset: offset}, nil
}

func (h *Halfspace) Type() NodeType         { return NodeHalfspace }
func (h *Halfspace) Normal() r3.Vector      { return h.normal }
func (h *Halfspace) Offset() float64        { return h.offset }
func (h *Halfspace) LocalCenter() r3.Vector { return h.normal.Mul(h.offset) }
func (h *Halfspace) LocalRadius() float64   { return math.Inf(1) }
func (h *Halfspace) Volume() float64        { return math.Inf(1) }

// CenterOfMass is undefined for an unbounded solid; the boundary plane's closest point to the
// origin is returned as the only canonical reference point.
func (h *Halfspace) CenterOfMass() r3.Vector { return h.normal.Mul(h.offset) }

func (h *Halfspace) LocalAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: r3.Vector{X: -inf, Y: -inf, Z: -inf}, Max: r3.Vector{X: inf, Y: inf, Z: inf}}
}

// Inertia is undefined for an infinite-mass solid; closed-form pair code treats a half-space as
// immovable (infinite mass) and never consults this value.
func (h *Halfspace) Inertia() [9]float64 {
	return [9]float64{}
}

func (h *Halfspace) Hash() int {
	return int(h.normal.X*101+h.normal.Y*211+h.normal.Z*401+h.offset*811) ^ (int(NodeHalfspace) << 28)
}

// Support returns the closest point on the bounding plane to the origin, matching Plane's
// convention; the solid region behind the plane otherwise has no finite support point in the
// direction of its own normal.
func (h *Halfspace) Support(d r3.Vector) r3.Vector {
	return h.normal.Mul(h.offset)
}

// SignedDistance returns the signed distance of a local-frame point from the bounding plane;
// negative values lie inside the solid half-space.
func (h *Halfspace) SignedDistance(point r3.Vector) float64 {
	return point.Dot(h.normal) - h.offset
}

// Contains reports whether a local-frame point lies within the solid half-space.
func (h *Halfspace) Contains(point r3.Vector) bool {
	return h.SignedDistance(point) <= 0
}
