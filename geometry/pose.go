package geometry

import (
	"sync"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// floatEpsilon is the baseline tolerance used throughout the package, expressed
// relative to float64 machine epsilon as required by §3 ("all tolerances are
// expressed in multiples of this type's epsilon").
const floatEpsilon = 128 * 2.220446049250313e-16

// Pose is a rigid transform: a rotation R ∈ SO(3) plus a translation t ∈ ℝ³, applied as x ↦ R·x + t (§3).
//
// Poses are immutable once constructed; every combinator (Compose, Invert) returns a new value.
type Pose struct {
	point r3.Vector
	rot   quat.Number

	once      sync.Once
	rotMatrix *RotationMatrix
}

// NewPose builds a Pose from a translation and a unit quaternion rotation. A zero-value quat.Number is
// treated as identity rotation.
func NewPose(point r3.Vector, rot quat.Number) *Pose {
	if rot == (quat.Number{}) {
		rot = quat.Number{Real: 1}
	}
	return &Pose{point: point, rot: rot}
}

// NewPoseFromPoint returns a Pose with identity orientation located at point.
func NewPoseFromPoint(point r3.Vector) *Pose {
	return NewPose(point, quat.Number{Real: 1})
}

// NewPoseFromAxisAngle returns a Pose located at point, rotated by theta radians about the given axis.
func NewPoseFromAxisAngle(point, axis r3.Vector, theta float64) *Pose {
	r4 := R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	return NewPose(point, r4.ToQuat())
}

// Identity returns the zero-translation, zero-rotation Pose.
func Identity() *Pose {
	return NewPoseFromPoint(r3.Vector{})
}

// Point returns the translation component.
func (p *Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the rotation component as a quaternion.
func (p *Pose) Orientation() quat.Number {
	return p.rot
}

// AxisAngles returns the rotation component in axis-angle form.
func (p *Pose) AxisAngles() R4AA {
	return quatToR4AA(p.rot)
}

// RotationMatrix returns (and caches) the dense rotation matrix for this pose's orientation.
func (p *Pose) RotationMatrix() *RotationMatrix {
	p.once.Do(func() { p.rotMatrix = quatToRotationMatrix(p.rot) })
	return p.rotMatrix
}

// Transform applies the pose to a point given in the pose's local frame, returning the point in the parent frame.
func (p *Pose) Transform(local r3.Vector) r3.Vector {
	return p.RotationMatrix().MulVec(local).Add(p.point)
}

// TransformDirection rotates (but does not translate) a direction vector from local into parent frame.
func (p *Pose) TransformDirection(local r3.Vector) r3.Vector {
	return p.RotationMatrix().MulVec(local)
}

// InverseTransformDirection rotates a parent-frame direction into this pose's local frame (the transpose
// rotation referenced by §4.B step 1).
func (p *Pose) InverseTransformDirection(parent r3.Vector) r3.Vector {
	return p.RotationMatrix().MulVecInv(parent)
}

// InverseTransform maps a parent-frame point into this pose's local frame.
func (p *Pose) InverseTransform(parent r3.Vector) r3.Vector {
	return p.RotationMatrix().MulVecInv(parent.Sub(p.point))
}

// Compose returns the pose equivalent to first applying `inner` then `outer`: outer ∘ inner.
func Compose(outer, inner *Pose) *Pose {
	rot := quat.Mul(outer.rot, inner.rot)
	point := outer.Transform(inner.point)
	return NewPose(point, rot)
}

// Invert returns the pose whose Transform undoes p's Transform.
func (p *Pose) Invert() *Pose {
	rot := quat.Conj(p.rot)
	point := quatToRotationMatrix(rot).MulVec(p.point.Mul(-1))
	return NewPose(point, rot)
}

// PoseAlmostEqual reports whether two poses are equal within eps on both translation and rotation.
func PoseAlmostEqual(a, b *Pose, eps float64) bool {
	if a.point.Sub(b.point).Norm() > eps {
		return false
	}
	// Quaternions double-cover SO(3): q and -q represent the same rotation.
	diff := quat.Mul(a.rot, quat.Conj(b.rot))
	return diff.Imag*diff.Imag+diff.Jmag*diff.Jmag+diff.Kmag*diff.Kmag < eps*eps
}
