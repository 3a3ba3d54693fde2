package narrowphase

import (
	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// pairKey is the ordered-pair lookup key for the dispatch table (§4.F: "a static table keyed on
// the ordered pair of node types").
type pairKey struct {
	a, b geometry.NodeType
}

// closedFormEntry computes a collision outcome for one ordered, specialized pair (§4.E): the
// collision flag, contact normal, contact point, penetration depth, and whether the contact is a
// partial manifold (copied into CollisionResult.ManifoldPartial).
type closedFormEntry func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64, partial bool)

var dispatchTable map[pairKey]closedFormEntry

func init() {
	dispatchTable = map[pairKey]closedFormEntry{
		{geometry.NodeSphere, geometry.NodeSphere}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereSphereResult(a.(*geometry.Sphere), pa, b.(*geometry.Sphere), pb)
			return c, n, p, d, false
		},
		{geometry.NodeSphere, geometry.NodeBox}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereBoxResult(a.(*geometry.Sphere), pa, b.(*geometry.Box), pb)
			return c, n, p, d, false
		},
		{geometry.NodeSphere, geometry.NodeCapsule}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereCapsuleResult(a.(*geometry.Sphere), pa, b.(*geometry.Capsule), pb)
			return c, n, p, d, false
		},
		{geometry.NodeSphere, geometry.NodeCylinder}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereCylinderResult(a.(*geometry.Sphere), pa, b.(*geometry.Cylinder), pb)
			return c, n, p, d, false
		},
		{geometry.NodeSphere, geometry.NodeCone}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereConeResult(a.(*geometry.Sphere), pa, b.(*geometry.Cone), pb)
			return c, n, p, d, false
		},
		{geometry.NodeSphere, geometry.NodeTriangle}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := sphereTriangleResult(a.(*geometry.Sphere), pa, b.(*geometry.Triangle), pb)
			return c, n, p, d, false
		},
		{geometry.NodeHalfspace, geometry.NodeTriangle}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := halfspaceTriangleResult(a.(*geometry.Halfspace), pa, b.(*geometry.Triangle), pb)
			return c, n, p, d, false
		},
		{geometry.NodePlane, geometry.NodeTriangle}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			c, n, p, d := planeTriangleResult(a.(*geometry.Plane), pa, b.(*geometry.Triangle), pb)
			return c, n, p, d, false
		},
		{geometry.NodeBox, geometry.NodeBox}: func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			return boxBoxResult(a.(*geometry.Box), pa, b.(*geometry.Box), pb)
		},
	}

	// Shape-plane and shape-halfspace entries are generic over every non-degenerate variant in
	// the catalog (§4.E "Shape-plane / Shape-halfspace"): Triangle is excluded here because it
	// has its own specialized pair above, and Plane/Halfspace-vs-Plane/Halfspace is unsupported
	// (neither bounds a usable extreme point).
	convexVariants := []geometry.NodeType{
		geometry.NodeBox, geometry.NodeSphere, geometry.NodeEllipsoid, geometry.NodeCapsule,
		geometry.NodeCone, geometry.NodeCylinder, geometry.NodeConvex,
	}
	for _, v := range convexVariants {
		dispatchTable[pairKey{v, geometry.NodePlane}] = func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			n, pt := planeWorldFrame(b.(*geometry.Plane), pb)
			// The plane is two-sided: test against the side the shape's centroid lies on.
			if pa.Transform(a.CenterOfMass()).Sub(pt).Dot(n) < 0 {
				n = n.Mul(-1)
			}
			c, nrm, ct, d := shapePlaneResult(operand{a, pa}, n, pt)
			return c, nrm, ct, d, false
		}
		dispatchTable[pairKey{v, geometry.NodeHalfspace}] = func(a geometry.Shape, pa *geometry.Pose, b geometry.Shape, pb *geometry.Pose) (bool, r3.Vector, r3.Vector, float64, bool) {
			n, pt := halfspaceWorldFrame(b.(*geometry.Halfspace), pb)
			c, nrm, ct, d := shapeHalfspaceResult(operand{a, pa}, n, pt)
			return c, nrm, ct, d, false
		}
	}
}

// Collide implements §6 operation 1: the pure dispatch entry point. It selects a closed-form
// routine when the ordered or reversed pair has one (§4.F), otherwise falls back to GJK (C) and,
// on overlap, EPA (D) against the generic support oracle (B) — which works for any convex-convex
// pair. Dispatch never mutates shapes or retains transforms (§4.F contract).
func Collide(shape1 geometry.Shape, tf1 *geometry.Pose, shape2 geometry.Shape, tf2 *geometry.Pose, req *CollisionRequest) CollisionResult {
	if req == nil {
		req = DefaultCollisionRequest()
	}

	key := pairKey{shape1.Type(), shape2.Type()}
	if fn, ok := dispatchTable[key]; ok {
		collide, normal, contact, depth, partial := fn(shape1, tf1, shape2, tf2)
		return finalizeClosedForm(collide, normal, contact, depth, partial, req)
	}

	reverseKey := pairKey{shape2.Type(), shape1.Type()}
	if fn, ok := dispatchTable[reverseKey]; ok {
		pkgLogger.Sugar().Debugw("dispatch: using reversed-order closed-form routine", "a", shape1.Type(), "b", shape2.Type())
		collide, normal, contact, depth, partial := fn(shape2, tf2, shape1, tf1)
		return finalizeClosedForm(collide, normal.Mul(-1), contact, depth, partial, req)
	}

	if shape1.Type() == geometry.NodePlane || shape1.Type() == geometry.NodeHalfspace ||
		shape2.Type() == geometry.NodePlane || shape2.Type() == geometry.NodeHalfspace {
		return CollisionResult{Failure: FailureUnsupportedPair}
	}

	pkgLogger.Sugar().Debugw("dispatch: falling back to generic GJK/EPA", "a", shape1.Type(), "b", shape2.Type())
	return collideGeneric(shape1, tf1, shape2, tf2, req)
}

func finalizeClosedForm(collide bool, normal, contact r3.Vector, depth float64, partial bool, req *CollisionRequest) CollisionResult {
	res := CollisionResult{IsCollision: collide, ManifoldPartial: partial}
	if !collide || !req.EnableContact {
		return res
	}
	// Every closed-form routine in this catalog produces exactly one representative contact
	// point, regardless of req.MaxContacts (§9 box-box decision: fewer points, marked partial).
	res.Contacts = []ContactPoint{{Position: contact, Normal: normal, Depth: depth}}
	return res
}

// collideGeneric drives GJK, and on overlap EPA, for any pair not covered by a closed-form
// routine (§4.F "dispatch falls back to GJK/EPA on the oracle, which works for any convex-convex
// pair").
func collideGeneric(shape1 geometry.Shape, tf1 *geometry.Pose, shape2 geometry.Shape, tf2 *geometry.Pose, req *CollisionRequest) CollisionResult {
	opA := operand{shape1, tf1}
	opB := operand{shape2, tf2}

	guess := r3.Vector{}
	if req.EnableCachedGJKGuess && req.CachedGJKGuess.Norm() > warmStartMinNorm {
		guess = req.CachedGJKGuess
	}

	outcome := gjkDistance(opA, opB, guess, req.DistanceTolerance)
	if outcome.failure != FailureNone {
		return CollisionResult{Failure: outcome.failure}
	}
	if !outcome.overlap {
		return CollisionResult{IsCollision: false, UpdatedGuess: outcome.finalGuess}
	}

	epaOut := epaPenetrate(opA, opB, outcome.simplex, req.DistanceTolerance)
	if epaOut.failure != FailureNone {
		return CollisionResult{Failure: epaOut.failure}
	}

	res := CollisionResult{IsCollision: true, UpdatedGuess: epaOut.normal}
	if req.EnableContact {
		res.Contacts = []ContactPoint{{
			Position: epaOut.witnessA.Add(epaOut.witnessB).Mul(0.5),
			Normal:   epaOut.normal,
			Depth:    epaOut.depth,
			GJKGuess: epaOut.normal,
		}}
	}
	return res
}

// Distance implements §6 operation 2: a non-negative separation distance on success; a negative
// scalar means the shapes overlap and the caller should switch to Collide for penetration depth.
func Distance(shape1 geometry.Shape, tf1 *geometry.Pose, shape2 geometry.Shape, tf2 *geometry.Pose) DistanceResult {
	// Sphere-sphere is exact in closed form (§8 "Sphere exactness").
	if s1, ok := shape1.(*geometry.Sphere); ok {
		if s2, ok2 := shape2.(*geometry.Sphere); ok2 {
			d := tf2.Point().Sub(tf1.Point()).Norm() - s1.Radius() - s2.Radius()
			if d < 0 {
				return DistanceResult{Distance: -1}
			}
			dir := tf2.Point().Sub(tf1.Point())
			if dir.Norm() < floatEpsilon {
				dir = r3.Vector{X: 1}
			} else {
				dir = dir.Mul(1 / dir.Norm())
			}
			return DistanceResult{
				Distance: d,
				Witness1: tf1.Point().Add(dir.Mul(s1.Radius())),
				Witness2: tf2.Point().Sub(dir.Mul(s2.Radius())),
			}
		}
	}

	if b1, ok := shape1.(*geometry.Box); ok {
		if b2, ok2 := shape2.(*geometry.Box); ok2 {
			opA := operand{shape1, tf1}
			opB := operand{shape2, tf2}
			d := boxBoxHybridDistance(b1, tf1, b2, tf2, opA, opB)
			return DistanceResult{Distance: d}
		}
	}

	opA := operand{shape1, tf1}
	opB := operand{shape2, tf2}
	outcome := gjkDistance(opA, opB, r3.Vector{}, defaultDistanceTolerance)
	if outcome.failure != FailureNone {
		return DistanceResult{Failure: outcome.failure}
	}
	if outcome.overlap {
		return DistanceResult{Distance: -1}
	}
	return DistanceResult{Distance: outcome.distance, Witness1: outcome.witnessA, Witness2: outcome.witnessB}
}
