package narrowphase

import (
	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// ShapeTriangleIntersect implements §6 operation 3 and §4.G: collision (and, optionally, contact
// detail) between a convex primitive and a single oriented triangle. It is built entirely on top
// of Collide — for Sphere, Plane, and Halfspace operands that routes through the specialized §4.E
// entries; for every other primitive the triangle is treated as a degenerate convex polytope and
// resolved through GJK/EPA (§4.B-D), exactly as §4.G specifies. tfTri may be nil, meaning the
// vertices are already expressed in world coordinates.
func ShapeTriangleIntersect(shape geometry.Shape, tfShape *geometry.Pose, v0, v1, v2 r3.Vector, tfTri *geometry.Pose) (collide bool, position r3.Vector, depth float64, normal r3.Vector, err error) {
	tri, err := geometry.NewTriangle(v0, v1, v2)
	if err != nil {
		return false, r3.Vector{}, 0, r3.Vector{}, err
	}
	if tfTri == nil {
		tfTri = geometry.Identity()
	}

	req := DefaultCollisionRequest()
	res := Collide(shape, tfShape, tri, tfTri, req)
	if res.Failure != FailureNone {
		return false, r3.Vector{}, 0, r3.Vector{}, newUnsupportedShapeTriangleError(shape.Type())
	}
	if !res.IsCollision || len(res.Contacts) == 0 {
		return false, r3.Vector{}, 0, r3.Vector{}, nil
	}
	c := res.Contacts[0]
	return true, c.Position, c.Depth, c.Normal, nil
}

func newUnsupportedShapeTriangleError(t geometry.NodeType) error {
	return newBadRequestError("shape-triangle intersection failed for " + t.String())
}
