package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// sphereSphereResult implements §4.E "Sphere-sphere": collision iff ||c1-c2|| <= r1+r2, a
// normal (c2-c1)/||c2-c1|| pointing from shape 1 towards shape 2, a midpoint contact weighted by radii, and depth
// clamped at zero on the boundary. Concentric spheres are the documented open-question
// degenerate case (§9): zero normal, depth = r1+r2.
func sphereSphereResult(sa *geometry.Sphere, pa *geometry.Pose, sb *geometry.Sphere, pb *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64) {
	c1, c2 := pa.Point(), pb.Point()
	delta := c2.Sub(c1)
	dist := delta.Norm()
	r1, r2 := sa.Radius(), sb.Radius()

	if dist < floatEpsilon {
		return true, r3.Vector{}, c1, r1 + r2
	}

	depth = (r1 + r2) - dist
	if depth < 0 {
		depth = 0
		return false, delta.Mul(1 / dist), r3.Vector{}, 0
	}

	n := delta.Mul(1 / dist)
	// Contact position: the point on the center line dividing it in the ratio r1:r2, i.e.
	// c1 + (c2-c1)*r1/(r1+r2). Only reduces to the sphere-A-boundary point c1+n*r1 when the two
	// spheres just touch (dist = r1+r2); under penetration it lies inside sphere A.
	contact = c1.Add(delta.Mul(r1 / (r1 + r2)))
	return true, n, contact, depth
}

// sphereConvexDistance computes the distance from the sphere center to the closest point on the
// other shape, computed in the other shape's local frame (reached via its pose); §4.E "Sphere-box
// / sphere-capsule / sphere-cylinder / sphere-cone": collision iff that distance <= radius.
func sphereConvexDistance(sphereCenter r3.Vector, otherPose *geometry.Pose, closest func(local r3.Vector) r3.Vector) (worldClosest r3.Vector, dist float64) {
	local := otherPose.InverseTransform(sphereCenter)
	closestLocal := closest(local)
	worldClosest = otherPose.Transform(closestLocal)
	dist = sphereCenter.Sub(worldClosest).Norm()
	return worldClosest, dist
}

func closestPointOnBoxLocal(b *geometry.Box, p r3.Vector) r3.Vector {
	he := b.HalfExtent()
	return r3.Vector{
		X: clampToRange(p.X, -he.X, he.X),
		Y: clampToRange(p.Y, -he.Y, he.Y),
		Z: clampToRange(p.Z, -he.Z, he.Z),
	}
}

func closestPointOnCapsuleLocal(c *geometry.Capsule, p r3.Vector) r3.Vector {
	h := c.HalfLength()
	q := r3.Vector{Z: clampToRange(p.Z, -h, h)}
	off := p.Sub(q)
	if n := off.Norm(); n > c.Radius() {
		return q.Add(off.Mul(c.Radius() / n))
	}
	return p
}

// projectOntoAxisWithRadius is a tiny helper used by the cylinder closest-point routine:
// given the clamped axial coordinate z, it returns the point directly above/below p on the Z
// axis at height z, offset radially towards p by at most radius.
func projectOntoAxisWithRadius(z, radius float64, p r3.Vector) r3.Vector {
	planar := r3.Vector{X: p.X, Y: p.Y}
	n := planar.Norm()
	if n <= radius {
		return r3.Vector{X: p.X, Y: p.Y, Z: z}
	}
	scaled := planar.Mul(radius / n)
	return r3.Vector{X: scaled.X, Y: scaled.Y, Z: z}
}

func closestPointOnCylinderLocal(c *geometry.Cylinder, p r3.Vector) r3.Vector {
	h := c.HalfLength()
	z := clampToRange(p.Z, -h, h)
	return projectOntoAxisWithRadius(z, c.Radius(), p)
}

// closestPointOnConeLocal treats the cone's cross-section as the 2D triangle (apex, +rim, -rim)
// in cylindrical coordinates (r, z) and returns the closest point on its two boundary segments
// (the base disc edge at z=-h and the lateral slant from rim to apex), mapped back to Cartesian
// along p's azimuthal direction.
func closestPointOnConeLocal(c *geometry.Cone, p r3.Vector) r3.Vector {
	h := c.HalfLength()
	radius := c.Radius()
	planar := r3.Vector{X: p.X, Y: p.Y}
	pr := planar.Norm()

	// Inside the solid cross-section triangle (apex, (radius,-h), (-radius,-h))? Then p itself
	// is the closest "surface" point for the purposes of an sphere-overlap test (distance 0).
	// The triangle's two non-base edges are identical by symmetry of revolution, so test against
	// the slant line from (radius,-h) to (0,h): inside iff below it and above the base plane.
	slantDir := r3.Vector{X: -radius, Y: 0, Z: 2 * h}
	toP := r3.Vector{X: pr - radius, Y: 0, Z: p.Z - (-h)}
	cross := slantDir.X*toP.Z - slantDir.Z*toP.X
	insideSlant := cross >= 0
	insideBase := p.Z >= -h
	if insideSlant && insideBase && pr <= radius {
		return p
	}

	// Candidate 1: closest point on the base disc rim-to-center segment at z=-h.
	baseZ := -h
	baseR := clampToRange(pr, 0, radius)
	baseCandidate2D := r3.Vector{X: baseR, Z: baseZ}

	// Candidate 2: closest point on the lateral slant segment from (radius,-h) to (0,h).
	segA2D := r3.Vector{X: radius, Z: -h}
	segB2D := r3.Vector{X: 0, Z: h}
	t := clampToRange(segB2D.Sub(segA2D).Dot(r3.Vector{X: pr, Z: p.Z}.Sub(segA2D))/segB2D.Sub(segA2D).Norm2(), 0, 1)
	slantCandidate2D := segA2D.Add(segB2D.Sub(segA2D).Mul(t))

	d2Base := math.Hypot(pr-baseCandidate2D.X, p.Z-baseCandidate2D.Z)
	d2Slant := math.Hypot(pr-slantCandidate2D.X, p.Z-slantCandidate2D.Z)

	chosen2D := baseCandidate2D
	if d2Slant < d2Base {
		chosen2D = slantCandidate2D
	}

	if pr < floatEpsilon {
		return r3.Vector{X: chosen2D.X, Z: chosen2D.Z}
	}
	azimuth := planar.Mul(1 / pr)
	return r3.Vector{X: azimuth.X * chosen2D.X, Y: azimuth.Y * chosen2D.X, Z: chosen2D.Z}
}

// sphereOtherResult implements the shared shape of §4.E's sphere-box/capsule/cylinder/cone
// entries: collision iff the closest point on the other shape to the sphere center is within
// the sphere radius, with the contact normal pointing from that closest point towards the
// sphere center (or its reverse, clamped at the boundary).
func sphereOtherResult(sphere *geometry.Sphere, spherePose *geometry.Pose, otherPose *geometry.Pose, closest func(r3.Vector) r3.Vector) (collide bool, normal, contact r3.Vector, depth float64) {
	center := spherePose.Point()
	worldClosest, dist := sphereConvexDistance(center, otherPose, closest)
	r := sphere.Radius()
	if dist > r {
		return false, r3.Vector{}, r3.Vector{}, 0
	}
	depth = r - dist
	var n r3.Vector
	if dist > floatEpsilon {
		n = center.Sub(worldClosest).Mul(1 / dist)
	} else {
		n = r3.Vector{Z: 1}
	}
	contact = worldClosest.Add(n.Mul(depth / 2))
	return true, n, contact, depth
}

func sphereBoxResult(s *geometry.Sphere, sp *geometry.Pose, b *geometry.Box, bp *geometry.Pose) (bool, r3.Vector, r3.Vector, float64) {
	return sphereOtherResult(s, sp, bp, func(p r3.Vector) r3.Vector { return closestPointOnBoxLocal(b, p) })
}

func sphereCapsuleResult(s *geometry.Sphere, sp *geometry.Pose, c *geometry.Capsule, cp *geometry.Pose) (bool, r3.Vector, r3.Vector, float64) {
	return sphereOtherResult(s, sp, cp, func(p r3.Vector) r3.Vector { return closestPointOnCapsuleLocal(c, p) })
}

func sphereCylinderResult(s *geometry.Sphere, sp *geometry.Pose, c *geometry.Cylinder, cp *geometry.Pose) (bool, r3.Vector, r3.Vector, float64) {
	return sphereOtherResult(s, sp, cp, func(p r3.Vector) r3.Vector { return closestPointOnCylinderLocal(c, p) })
}

func sphereConeResult(s *geometry.Sphere, sp *geometry.Pose, c *geometry.Cone, cp *geometry.Pose) (bool, r3.Vector, r3.Vector, float64) {
	return sphereOtherResult(s, sp, cp, func(p r3.Vector) r3.Vector { return closestPointOnConeLocal(c, p) })
}

func clampToRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
