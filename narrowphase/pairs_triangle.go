package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// worldTriangle returns a triangle's three vertices transformed into world space by its pose.
func worldTriangle(tri *geometry.Triangle, pose *geometry.Pose) (r3.Vector, r3.Vector, r3.Vector) {
	return pose.Transform(tri.P0()), pose.Transform(tri.P1()), pose.Transform(tri.P2())
}

// sphereTriangleResult implements §4.E "Sphere-triangle": the triangle is treated as three edges
// and a face, tested together via the standard closest-point-on-triangle routine (already used
// by GJK's simplex reduction); collision iff that distance is within the sphere radius. The
// normal is taken from the shape (the sphere's outward direction), not the triangle, per §4.E.
func sphereTriangleResult(s *geometry.Sphere, sp *geometry.Pose, tri *geometry.Triangle, tp *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64) {
	a, b, c := worldTriangle(tri, tp)
	center := sp.Point()
	closest, _, _, _ := closestPointOnTriangleToOrigin(a.Sub(center), b.Sub(center), c.Sub(center))
	worldClosest := closest.Add(center)
	dist := closest.Norm()
	r := s.Radius()
	if dist > r {
		return false, r3.Vector{}, r3.Vector{}, 0
	}
	depth = r - dist
	var n r3.Vector
	if dist > floatEpsilon {
		n = center.Sub(worldClosest).Mul(1 / dist)
	} else {
		n = tri.Normal()
		n = tp.TransformDirection(n)
	}
	contact = worldClosest.Add(n.Mul(depth / 2))
	return true, n, contact, depth
}

// halfspaceTriangleResult implements §4.E "halfspace-triangle": the signed distance of each
// triangle vertex from the halfspace's boundary plane determines overlap in closed form; the
// normal is the negated halfspace normal.
func halfspaceTriangleResult(h *geometry.Halfspace, hp *geometry.Pose, tri *geometry.Triangle, tp *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64) {
	worldNormal := hp.TransformDirection(h.Normal())
	planePoint := hp.Transform(h.Normal().Mul(h.Offset()))

	a, b, c := worldTriangle(tri, tp)
	da := a.Sub(planePoint).Dot(worldNormal)
	db := b.Sub(planePoint).Dot(worldNormal)
	dc := c.Sub(planePoint).Dot(worldNormal)

	deepest, deepestDist := a, da
	if db < deepestDist {
		deepest, deepestDist = b, db
	}
	if dc < deepestDist {
		deepest, deepestDist = c, dc
	}

	if deepestDist > 0 {
		return false, r3.Vector{}, r3.Vector{}, 0
	}

	depth = -deepestDist
	projected := deepest.Sub(worldNormal.Mul(deepestDist))
	contact = deepest.Add(projected).Mul(0.5)
	return true, worldNormal.Mul(-1), contact, depth
}

// planeTriangleResult implements §4.E "plane-triangle": a plane is two-sided, so overlap is
// tested against the smaller of the two signed-distance magnitudes across the triangle's
// vertices, with the normal oriented away from the triangle's side.
func planeTriangleResult(p *geometry.Plane, pp *geometry.Pose, tri *geometry.Triangle, tp *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64) {
	worldNormal := pp.TransformDirection(p.Normal())
	planePoint := pp.Transform(p.Normal().Mul(p.Offset()))

	a, b, c := worldTriangle(tri, tp)
	da := a.Sub(planePoint).Dot(worldNormal)
	db := b.Sub(planePoint).Dot(worldNormal)
	dc := c.Sub(planePoint).Dot(worldNormal)

	minAbs := math.Abs(da)
	closest, closestSigned := a, da
	if math.Abs(db) < minAbs {
		minAbs, closest, closestSigned = math.Abs(db), b, db
	}
	if math.Abs(dc) < minAbs {
		minAbs, closest, closestSigned = math.Abs(dc), c, dc
	}

	sameSide := (da >= 0) == (db >= 0) && (db >= 0) == (dc >= 0)
	if sameSide && minAbs > floatEpsilon {
		return false, r3.Vector{}, r3.Vector{}, 0
	}

	depth = 0
	n := worldNormal
	if closestSigned > 0 {
		n = worldNormal.Mul(-1)
	}
	contact = closest.Sub(worldNormal.Mul(closestSigned))
	return true, n, contact, depth
}
