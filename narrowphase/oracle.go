package narrowphase

import (
	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// operand pairs a Shape with the Pose placing it in world space. Dispatch (F) constructs these
// from the caller's shape/transform arguments and never retains them past a single call (§4.F).
type operand struct {
	shape geometry.Shape
	pose  *geometry.Pose
}

// support returns the world-frame farthest point of the operand along world-frame direction d
// (§4.B steps 1-2): d is rotated into the local frame, the local support is queried, and the
// result is rotated (and translated) back into world space.
func (o operand) support(d r3.Vector) r3.Vector {
	localD := o.pose.InverseTransformDirection(d)
	localP := o.shape.Support(localD)
	return o.pose.Transform(localP)
}
