package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"
)

// gjkMaxIterations is the hard iteration cap (§4.C: "a hard iteration cap (>= 128) prevents
// pathological non-termination").
const gjkMaxIterations = 128

// simplexVertex is one point of the GJK simplex: the Minkowski-difference point together with
// the two shape-local support points whose difference produced it, carried along so a terminal
// witness can be reconstructed from the final simplex's barycentric weights.
type simplexVertex struct {
	w      r3.Vector
	onA    r3.Vector
	onB    r3.Vector
}

// gjkOutcome is the terminal state handed from GJK to either the separation-distance path or EPA.
type gjkOutcome struct {
	overlap    bool
	simplex    []simplexVertex
	distance   float64
	witnessA   r3.Vector
	witnessB   r3.Vector
	finalGuess r3.Vector
	failure    FailureKind
}

// gjkSupport queries both operands and returns the full simplexVertex, so witness
// reconstruction never has to re-query the oracle.
func gjkSupport(a, b operand, d r3.Vector) simplexVertex {
	sa := a.support(d)
	sb := b.support(d.Mul(-1))
	return simplexVertex{w: sa.Sub(sb), onA: sa, onB: sb}
}

// gjkDistance runs the GJK loop of §4.C. initialGuess is the caller's warm-start direction; it is
// used only when nonzero, per §4.C step 1 / §4.H's minimum-epsilon gate (enforced by the caller).
func gjkDistance(a, b operand, initialGuess r3.Vector, tolerance float64) gjkOutcome {
	d := initialGuess
	if d.Norm() < floatEpsilon {
		d = b.pose.Point().Sub(a.pose.Point())
		if d.Norm() < floatEpsilon {
			d = r3.Vector{X: 1}
		}
	}

	var simplex []simplexVertex
	closestDist := math.Inf(1)

	for iter := 0; iter < gjkMaxIterations; iter++ {
		v := gjkSupport(a, b, d)

		// Step 2: if d.w is at most the tolerance and a closest distance from an earlier iteration
		// is known, the shapes are separated along d; no better support exists in this direction.
		if v.w.Dot(d) <= tolerance && closestDist < math.Inf(1) {
			witnessA, witnessB := reconstructWitness(simplex)
			return gjkOutcome{overlap: false, distance: closestDist, witnessA: witnessA, witnessB: witnessB, finalGuess: d}
		}

		simplex = append(simplex, v)
		reduced, closest, contains := reduceSimplex(simplex)
		simplex = reduced

		if contains {
			return gjkOutcome{overlap: true, simplex: simplex, finalGuess: d}
		}

		newDist := closest.Norm()
		if newDist < tolerance {
			witnessA, witnessB := reconstructWitness(simplex)
			return gjkOutcome{overlap: false, distance: 0, witnessA: witnessA, witnessB: witnessB, finalGuess: d}
		}
		if closestDist-newDist < tolerance && closestDist < math.Inf(1) {
			witnessA, witnessB := reconstructWitness(simplex)
			return gjkOutcome{overlap: false, distance: newDist, witnessA: witnessA, witnessB: witnessB, finalGuess: d}
		}
		closestDist = newDist
		d = closest.Mul(-1)
	}

	pkgLogger.Sugar().Warnw("gjk iteration cap exhausted", "cap", gjkMaxIterations)
	return gjkOutcome{failure: FailureNonConvergence}
}

// reconstructWitness recovers approximate witness points on each shape from the final simplex,
// using the barycentric weights of the simplex's closest point to the origin (§4.C step 5).
func reconstructWitness(simplex []simplexVertex) (r3.Vector, r3.Vector) {
	if len(simplex) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	weights := barycentricWeights(simplex)
	var wa, wb r3.Vector
	for i, w := range weights {
		wa = wa.Add(simplex[i].onA.Mul(w))
		wb = wb.Add(simplex[i].onB.Mul(w))
	}
	return wa, wb
}

// reduceSimplex performs the subsimplex reduction of §4.C step 3: given the simplex with the new
// point appended, it finds the point of the simplex closest to the origin, following the
// canonical vertex/edge/face/volume ordering so identical inputs always produce the same descent
// (§4.C "Tie-breaks"), and returns the reduced vertex set (only those involved in the closest
// point's convex combination), the closest point itself, and whether the origin is enclosed
// (only possible for a full tetrahedron).
func reduceSimplex(simplex []simplexVertex) ([]simplexVertex, r3.Vector, bool) {
	switch len(simplex) {
	case 1:
		return simplex, simplex[0].w, false
	case 2:
		return reduceSegment(simplex)
	case 3:
		return reduceTriangle(simplex)
	case 4:
		return reduceTetrahedron(simplex)
	default:
		return simplex, r3.Vector{}, false
	}
}

func reduceSegment(s []simplexVertex) ([]simplexVertex, r3.Vector, bool) {
	a, b := s[0].w, s[1].w
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < floatEpsilon*floatEpsilon {
		return s[:1], a, false
	}
	t := a.Mul(-1).Dot(ab) / denom
	if t <= 0 {
		return s[:1], a, false
	}
	if t >= 1 {
		return []simplexVertex{s[1]}, b, false
	}
	closest := a.Add(ab.Mul(t))
	return s, closest, false
}

func reduceTriangle(s []simplexVertex) ([]simplexVertex, r3.Vector, bool) {
	a, b, c := s[0].w, s[1].w, s[2].w
	closest, u, v, w := closestPointOnTriangleToOrigin(a, b, c)
	const eps = 1e-12
	switch {
	case u > eps && v <= eps && w <= eps:
		return s[0:1], closest, false
	case v > eps && u <= eps && w <= eps:
		return []simplexVertex{s[1]}, closest, false
	case w > eps && u <= eps && v <= eps:
		return []simplexVertex{s[2]}, closest, false
	case w <= eps:
		return []simplexVertex{s[0], s[1]}, closest, false
	case v <= eps:
		return []simplexVertex{s[0], s[2]}, closest, false
	case u <= eps:
		return []simplexVertex{s[1], s[2]}, closest, false
	default:
		return s, closest, false
	}
}

func reduceTetrahedron(s []simplexVertex) ([]simplexVertex, r3.Vector, bool) {
	a, b, c, d := s[0].w, s[1].w, s[2].w, s[3].w

	if tetrahedronContainsOrigin(a, b, c, d) {
		return s, r3.Vector{}, true
	}

	// Canonical order: test each bounding face (vertex/edge/face tests nested inside), keep the
	// best (closest) region found, matching §4.C's vertex->edge->face->volume ordering applied
	// per-face so the full descent stays deterministic for equal inputs.
	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	bestDist := math.Inf(1)
	var bestSet []simplexVertex
	var bestClosest r3.Vector
	for _, f := range faces {
		sub := []simplexVertex{s[f[0]], s[f[1]], s[f[2]]}
		reduced, closest, _ := reduceTriangle(sub)
		if dist := closest.Norm(); dist < bestDist {
			bestDist = dist
			bestSet = reduced
			bestClosest = closest
		}
	}
	return bestSet, bestClosest, false
}

// closestPointOnTriangleToOrigin returns the closest point on triangle abc to the origin along
// with its barycentric weights (u,v,w) for a, b, c respectively, via Ericson's method
// ("Real-Time Collision Detection" §5.1.5).
func closestPointOnTriangleToOrigin(a, b, c r3.Vector) (r3.Vector, float64, float64, float64) {
	p := r3.Vector{}
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, 1, 0, 0
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, 0, 1, 0
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return a.Add(ab.Mul(t)), 1 - t, t, 0
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, 0, 0, 1
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return a.Add(ac.Mul(t)), 1 - t, 0, t
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(t)), 0, 1 - t, t
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	u := 1 - v - w
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), u, v, w
}

// tetrahedronContainsOrigin reports whether the origin lies within (or on the boundary of) the
// tetrahedron abcd, by checking it is on the inward side of all four faces.
func tetrahedronContainsOrigin(a, b, c, d r3.Vector) bool {
	const eps = -1e-9
	sign := func(p, q, r, s r3.Vector) float64 {
		return p.Sub(s).Dot(q.Sub(s).Cross(r.Sub(s)))
	}
	origin := r3.Vector{}
	s0 := sign(a, b, c, d)
	sO1 := sign(origin, b, c, d)
	sO2 := sign(a, origin, c, d)
	sO3 := sign(a, b, origin, d)
	sO4 := sign(a, b, c, origin)
	return sameSignOrZero(s0, sO1, eps) && sameSignOrZero(s0, sO2, eps) &&
		sameSignOrZero(s0, sO3, eps) && sameSignOrZero(s0, sO4, eps)
}

func sameSignOrZero(ref, v, eps float64) bool {
	if ref >= 0 {
		return v >= eps
	}
	return v <= -eps
}

// barycentricWeights returns the barycentric weights of the origin's projection onto the given
// simplex (which reduceSimplex already guarantees contains/bounds the closest point), for witness
// reconstruction.
func barycentricWeights(s []simplexVertex) []float64 {
	switch len(s) {
	case 1:
		return []float64{1}
	case 2:
		ab := s[1].w.Sub(s[0].w)
		denom := ab.Norm2()
		if denom < floatEpsilon*floatEpsilon {
			return []float64{1, 0}
		}
		t := s[0].w.Mul(-1).Dot(ab) / denom
		t = clampUnit(t)
		return []float64{1 - t, t}
	case 3:
		_, u, v, w := closestPointOnTriangleToOrigin(s[0].w, s[1].w, s[2].w)
		return []float64{u, v, w}
	case 4:
		return tetrahedronBarycentric(s[0].w, s[1].w, s[2].w, s[3].w)
	default:
		return nil
	}
}

func clampUnit(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// tetrahedronBarycentric returns the barycentric weights of the origin within tetrahedron abcd,
// via the standard signed-volume-ratio formula.
func tetrahedronBarycentric(a, b, c, d r3.Vector) []float64 {
	vol := func(p, q, r, s r3.Vector) float64 {
		return q.Sub(p).Cross(r.Sub(p)).Dot(s.Sub(p))
	}
	origin := r3.Vector{}
	total := vol(a, b, c, d)
	if math.Abs(total) < floatEpsilon {
		return []float64{0.25, 0.25, 0.25, 0.25}
	}
	wa := vol(origin, b, c, d) / total
	wb := vol(a, origin, c, d) / total
	wc := vol(a, b, origin, d) / total
	wd := 1 - wa - wb - wc
	return []float64{wa, wb, wc, wd}
}
