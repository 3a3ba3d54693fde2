// Package geometry defines the closed family of convex collision primitives
// (component A, §4.A): their intrinsic parameters, local AABB, volume,
// inertia, and support-point function, plus the rigid-transform (Pose)
// machinery they are placed with in world space.
package geometry

import "github.com/golang/geo/r3"

// NodeType tags which concrete variant a Shape is, so the dispatch layer
// (component F) can key a static table on the ordered pair of types without
// runtime type-switches leaking into every caller.
type NodeType int

// The closed set of primitive variants from §3's "Shape variant" tagged union.
const (
	NodeBox NodeType = iota
	NodeSphere
	NodeEllipsoid
	NodeCapsule
	NodeCone
	NodeCylinder
	NodeConvex
	NodePlane
	NodeHalfspace
	NodeTriangle
	numNodeTypes
)

func (t NodeType) String() string {
	switch t {
	case NodeBox:
		return "Box"
	case NodeSphere:
		return "Sphere"
	case NodeEllipsoid:
		return "Ellipsoid"
	case NodeCapsule:
		return "Capsule"
	case NodeCone:
		return "Cone"
	case NodeCylinder:
		return "Cylinder"
	case NodeConvex:
		return "Convex"
	case NodePlane:
		return "Plane"
	case NodeHalfspace:
		return "Halfspace"
	case NodeTriangle:
		return "Triangle"
	default:
		return "Unknown"
	}
}

// Shape is the common interface over the closed family of convex primitives (§3, §4.A).
// Shapes are immutable once constructed (§3 "Lifecycle"); a Shape value never retains a
// world Pose — every operation that needs one takes it as an explicit argument.
type Shape interface {
	// Type reports which tagged-union variant this value is, for dispatch-table lookups.
	Type() NodeType

	// LocalAABB returns the shape's axis-aligned bounding box in its own local frame.
	LocalAABB() AABB

	// LocalCenter and LocalRadius give the cheap bounding-sphere overbound described in §6.
	LocalCenter() r3.Vector
	LocalRadius() float64

	// Support returns the farthest point of the shape, in its local frame, along direction d.
	// d is never the zero vector when called from the oracle (§4.A, §4.B).
	Support(d r3.Vector) r3.Vector

	// Volume returns the shape's volume in local-frame units^3.
	Volume() float64

	// CenterOfMass returns the shape's centroid in its local frame.
	CenterOfMass() r3.Vector

	// Inertia returns the shape's inertia tensor about its center of mass, for unit density,
	// in its local frame, as a row-major 3x3 matrix.
	Inertia() [9]float64

	// Hash returns a content hash suitable for use as a map/set key by upper layers
	// (broad-phase memoization, contact-manifold de-duplication) — not part of the core's
	// correctness surface.
	Hash() int
}

// Sampleable is implemented by shapes that can produce a surface point-cloud sample,
// for visualization/debugging callers (not part of the collision core itself).
type Sampleable interface {
	ToPoints(resolution float64) []r3.Vector
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
