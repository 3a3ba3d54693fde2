package narrowphase

import (
	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// shapePlaneResult implements §4.E "Shape-plane": the signed distance from the shape's extreme
// point (in the direction facing the plane) determines the result in closed form. The extreme
// point is the shape's own support function evaluated against the inward plane direction, which
// generalizes over every variant in the catalog without a per-variant switch. Contact point is
// the midpoint between the deepest shape point and its projection onto the plane, per §4.E.
func shapePlaneResult(shapeOp operand, worldNormal r3.Vector, planePoint r3.Vector) (collide bool, normal, contact r3.Vector, depth float64) {
	deepest := shapeOp.support(worldNormal.Mul(-1))
	signed := deepest.Sub(planePoint).Dot(worldNormal)
	if signed >= 0 {
		return false, r3.Vector{}, r3.Vector{}, 0
	}
	depth = -signed
	projected := deepest.Sub(worldNormal.Mul(signed))
	contact = deepest.Add(projected).Mul(0.5)
	return true, worldNormal.Mul(-1), contact, depth
}

// shapeHalfspaceResult is the one-sided analogue of shapePlaneResult: §4.E "Shape-halfspace".
// The algebra is identical to the plane case (both ask "how far does the shape's extreme point
// toward the boundary cross it"); the distinction between Plane and Halfspace is which side of
// the boundary counts as solid, which the caller (dispatch) already resolves by orienting
// worldNormal consistently before calling this.
func shapeHalfspaceResult(shapeOp operand, worldNormal r3.Vector, planePoint r3.Vector) (bool, r3.Vector, r3.Vector, float64) {
	return shapePlaneResult(shapeOp, worldNormal, planePoint)
}

func planeWorldFrame(p *geometry.Plane, pose *geometry.Pose) (r3.Vector, r3.Vector) {
	n := pose.TransformDirection(p.Normal())
	pt := pose.Transform(p.Normal().Mul(p.Offset()))
	return n, pt
}

func halfspaceWorldFrame(h *geometry.Halfspace, pose *geometry.Pose) (r3.Vector, r3.Vector) {
	n := pose.TransformDirection(h.Normal())
	pt := pose.Transform(h.Normal().Mul(h.Offset()))
	return n, pt
}
