package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Plane is an infinite, zero-thickness two-sided plane defined by a unit normal and the signed
// offset of the plane from the local-frame origin along that normal (§3 "Plane(normal, offset)").
// It participates in collision queries only through the closed-form pair algorithms (component E);
// it is never a generic-GJK/EPA operand, since its unbounded extent has no finite support point.
type Plane struct {
	normal r3.Vector
	offset float64
}

// NewPlane validates and constructs a Plane. The normal is stored normalized.
func NewPlane(normal r3.Vector, offset float64) (*Plane, error) {
	if !finite(normal) || isNaNOrInf(offset) {
		return nil, newBadNormalError("plane normal and offset must be finite")
	}
	n := normal.Norm()
	if n < floatEpsilon {
		return nil, newBadNormalError("plane normal must be non-zero")
	}
	return &Plane{normal: normal.Mul(1 / n), offset: offset}, nil
}

func (p *Plane) Type() NodeType        { return NodePlane }
func (p *Plane) Normal() r3.Vector     { return p.normal }
func (p *Plane) Offset() float64       { return p.offset }
func (p *Plane) LocalCenter() r3.Vector { return p.normal.Mul(p.offset) }
func (p *Plane) LocalRadius() float64   { return math.Inf(1) }
func (p *Plane) CenterOfMass() r3.Vector { return p.normal.Mul(p.offset) }
func (p *Plane) Volume() float64        { return 0 }

func (p *Plane) LocalAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: r3.Vector{X: -inf, Y: -inf, Z: -inf}, Max: r3.Vector{X: inf, Y: inf, Z: inf}}
}

func (p *Plane) Inertia() [9]float64 {
	return [9]float64{}
}

func (p *Plane) Hash() int {
	return int(p.normal.X*97+p.normal.Y*193+p.normal.Z*389+p.offset*787) ^ (int(NodePlane) << 28)
}

// Support is not meaningful for an unbounded plane under the standard GJK contract; dispatch never
// routes a Plane operand through the generic solver, so this returns the nearest point on the plane
// to the origin, which is the only canonically-defined point the type offers.
func (p *Plane) Support(d r3.Vector) r3.Vector {
	return p.normal.Mul(p.offset)
}

// SignedDistance returns the signed distance of a local-frame point from the plane, positive on
// the side the normal points towards.
func (p *Plane) SignedDistance(point r3.Vector) float64 {
	return point.Dot(p.normal) - p.offset
}
