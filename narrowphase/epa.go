package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"
)

// epaMaxIterations is EPA's hard iteration cap, analogous to GJK's (§4.D step 5).
const epaMaxIterations = 128

// epaFace is one triangular face of the expanding polytope: indices into the shared vertex
// list, plus its precomputed outward normal and distance from the origin.
type epaFace struct {
	a, b, c int
	normal  r3.Vector
	dist    float64
}

// epaOutcome is the terminal state of EPA: penetration depth, outward contact normal, and the
// witness points on each shape recovered from the penetration face's barycentric weights.
type epaOutcome struct {
	depth    float64
	normal   r3.Vector
	witnessA r3.Vector
	witnessB r3.Vector
	failure  FailureKind
}

// epaPenetrate implements §4.D: given the tetrahedron GJK found enclosing the origin, expand a
// polytope on the Minkowski-difference boundary until the closest face's supporting point
// confirms no deeper boundary exists, within tolerance.
func epaPenetrate(a, b operand, simplex []simplexVertex, tolerance float64) epaOutcome {
	if len(simplex) != 4 {
		return epaOutcome{failure: FailureNonConvergence}
	}

	verts := make([]simplexVertex, len(simplex))
	copy(verts, simplex)

	faces := []epaFace{
		newEPAFace(verts, 0, 1, 2),
		newEPAFace(verts, 0, 1, 3),
		newEPAFace(verts, 0, 2, 3),
		newEPAFace(verts, 1, 2, 3),
	}
	// Orient every face's normal outward (away from the tetrahedron's centroid), so "visible
	// from the new point" comparisons are consistent (§4.D invariant: closed boundary enclosing
	// the origin).
	centroid := centroidOf(verts)
	for i := range faces {
		orientOutward(&faces[i], verts, centroid)
	}

	for iter := 0; iter < epaMaxIterations; iter++ {
		closest := closestFace(faces)
		f := faces[closest]

		v := gjkSupport(a, b, f.normal)
		supportDist := v.w.Dot(f.normal)

		if supportDist-f.dist < tolerance {
			wa, wb := recoverFaceWitness(verts, f)
			return epaOutcome{depth: f.dist, normal: f.normal, witnessA: wa, witnessB: wb}
		}

		verts = append(verts, v)
		newIdx := len(verts) - 1
		faces = epaExpand(faces, verts, newIdx)
		if faces == nil {
			pkgLogger.Sugar().Warnw("epa degenerate polytope expansion", "iteration", iter)
			return epaOutcome{failure: FailureNonConvergence}
		}
	}

	pkgLogger.Sugar().Warnw("epa iteration cap exhausted", "cap", epaMaxIterations)
	return epaOutcome{failure: FailureNonConvergence}
}

func newEPAFace(v []simplexVertex, a, b, c int) epaFace {
	n := v[b].w.Sub(v[a].w).Cross(v[c].w.Sub(v[a].w))
	if nn := n.Norm(); nn > floatEpsilon {
		n = n.Mul(1 / nn)
	}
	return epaFace{a: a, b: b, c: c, normal: n, dist: n.Dot(v[a].w)}
}

func centroidOf(v []simplexVertex) r3.Vector {
	var sum r3.Vector
	for _, vv := range v {
		sum = sum.Add(vv.w)
	}
	return sum.Mul(1 / float64(len(v)))
}

func orientOutward(f *epaFace, v []simplexVertex, centroid r3.Vector) {
	toFace := v[f.a].w.Sub(centroid)
	if f.normal.Dot(toFace) < 0 {
		f.a, f.b = f.b, f.a
		f.normal = f.normal.Mul(-1)
		f.dist = -f.dist
	}
}

func closestFace(faces []epaFace) int {
	best := 0
	bestDist := math.Inf(1)
	for i, f := range faces {
		if f.dist < bestDist {
			bestDist = f.dist
			best = i
		}
	}
	return best
}

// epaExpand performs the silhouette-carving step of §4.D step 4: faces visible from the new
// point are removed, and the hole is closed with new faces connecting the silhouette ring (the
// boundary edges of the removed region) to the new point. Returns nil if the resulting polytope
// is degenerate (fewer than 4 faces), signalling the caller should report non-convergence rather
// than proceed with an open boundary.
func epaExpand(faces []epaFace, verts []simplexVertex, newIdx int) []epaFace {
	newPoint := verts[newIdx].w

	var kept []epaFace
	var removed []epaFace
	for _, f := range faces {
		if f.normal.Dot(newPoint.Sub(verts[f.a].w)) > floatEpsilon {
			removed = append(removed, f)
		} else {
			kept = append(kept, f)
		}
	}
	if len(removed) == 0 {
		return faces
	}

	// Boundary edges of the removed region are those bordering exactly one removed face and no
	// kept face; collect them from the original (oriented) edges of removed faces that are not
	// shared between two removed faces.
	type orientedEdge struct{ a, b int }
	seen := map[orientedEdge]bool{}
	var silhouette []orientedEdge
	for _, f := range removed {
		for _, e := range []orientedEdge{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}} {
			rev := orientedEdge{e.b, e.a}
			if seen[rev] {
				delete(seen, rev)
				continue
			}
			seen[e] = true
		}
	}
	for e := range seen {
		silhouette = append(silhouette, e)
	}
	if len(silhouette) < 3 {
		return nil
	}

	for _, e := range silhouette {
		kept = append(kept, newEPAFace(verts, e.a, e.b, newIdx))
	}
	if len(kept) < 4 {
		return nil
	}
	return kept
}

func recoverFaceWitness(verts []simplexVertex, f epaFace) (r3.Vector, r3.Vector) {
	_, u, v, w := closestPointOnTriangleToOrigin(verts[f.a].w, verts[f.b].w, verts[f.c].w)
	wa := verts[f.a].onA.Mul(u).Add(verts[f.b].onA.Mul(v)).Add(verts[f.c].onA.Mul(w))
	wb := verts[f.a].onB.Mul(u).Add(verts[f.b].onB.Mul(v)).Add(verts[f.c].onB.Mul(w))
	return wa, wb
}
