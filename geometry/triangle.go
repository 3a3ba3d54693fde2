package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a single flat triangle given by its three local-frame vertices (§3 "Triangle(p0, p1,
// p2)"). It is the atomic operand consumed by the shape-triangle engine (component G) and is also
// a valid standalone Shape for closed-form and generic GJK/EPA queries, being degenerate-convex.
type Triangle struct {
	p0, p1, p2 r3.Vector
}

// NewTriangle validates and constructs a Triangle. Zero-area (collinear) triangles are rejected.
func NewTriangle(p0, p1, p2 r3.Vector) (*Triangle, error) {
	if !finite(p0) || !finite(p1) || !finite(p2) {
		return nil, newBadDimensionsError("triangle", "vertices must be finite")
	}
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	if e1.Cross(e2).Norm() < floatEpsilon {
		return nil, newBadDimensionsError("triangle", "vertices must not be collinear")
	}
	return &Triangle{p0: p0, p1: p1, p2: p2}, nil
}

func (t *Triangle) Type() NodeType     { return NodeTriangle }
func (t *Triangle) P0() r3.Vector      { return t.p0 }
func (t *Triangle) P1() r3.Vector      { return t.p1 }
func (t *Triangle) P2() r3.Vector      { return t.p2 }
func (t *Triangle) Points() [3]r3.Vector { return [3]r3.Vector{t.p0, t.p1, t.p2} }

func (t *Triangle) LocalCenter() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1.0 / 3.0)
}

func (t *Triangle) CenterOfMass() r3.Vector { return t.LocalCenter() }

func (t *Triangle) LocalRadius() float64 {
	c := t.LocalCenter()
	r := 0.0
	for _, p := range t.Points() {
		if d := p.Sub(c).Norm(); d > r {
			r = d
		}
	}
	return r
}

func (t *Triangle) LocalAABB() AABB {
	return aabbFromPoints([]r3.Vector{t.p0, t.p1, t.p2})
}

// Normal returns the triangle's unit face normal, via the right-hand rule on (p1-p0)x(p2-p0).
func (t *Triangle) Normal() r3.Vector {
	n := t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0))
	return n.Normalize()
}

// Area returns the triangle's surface area.
func (t *Triangle) Area() float64 {
	return 0.5 * t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm()
}

// Volume is zero: a triangle bounds no solid region.
func (t *Triangle) Volume() float64 { return 0 }

// Inertia is the zero tensor: a zero-thickness triangle carries no meaningful solid mass
// distribution under this catalog's uniform-density convention.
func (t *Triangle) Inertia() [9]float64 {
	return [9]float64{}
}

func (t *Triangle) Hash() int {
	h := int(t.p0.X*13+t.p0.Y*17+t.p0.Z*19) ^ int(t.p1.X*23+t.p1.Y*29+t.p1.Z*31) ^ int(t.p2.X*37+t.p2.Y*41+t.p2.Z*43)
	return h ^ (int(NodeTriangle) << 28)
}

// Support implements §4.A: the maximizer of d·v among the three vertices.
func (t *Triangle) Support(d r3.Vector) r3.Vector {
	best := t.p0
	bestDot := t.p0.Dot(d)
	if dot := t.p1.Dot(d); dot > bestDot {
		bestDot = dot
		best = t.p1
	}
	if dot := t.p2.Dot(d); dot > bestDot {
		best = t.p2
	}
	return best
}

// ToPoints returns the three vertices plus a barycentric-subdivided interior grid, grounded on
// the teacher's triangle point-sampling convention (visualization only).
func (t *Triangle) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	steps := int(math.Max(1, math.Round(math.Sqrt(t.Area())*resolution)))
	pts := make([]r3.Vector, 0, (steps+1)*(steps+2)/2)
	for i := 0; i <= steps; i++ {
		for j := 0; i+j <= steps; j++ {
			u := float64(i) / float64(steps)
			v := float64(j) / float64(steps)
			w := 1 - u - v
			pts = append(pts, t.p0.Mul(w).Add(t.p1.Mul(u)).Add(t.p2.Mul(v)))
		}
	}
	return pts
}
