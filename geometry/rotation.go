package geometry

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a dense row-major 3x3 rotation matrix, cached off a Pose's
// quaternion so that hot-path support/SAT code (§4.A, §4.E) can do three dot
// products per axis instead of re-deriving the matrix from the quaternion
// every call.
type RotationMatrix struct {
	mat [9]float64
}

// Row returns the i'th row of the matrix as a vector (i.e. the i'th world/parent axis expressed in the local frame).
func (rm *RotationMatrix) Row(i int) r3.Vector {
	return r3.Vector{X: rm.mat[i*3], Y: rm.mat[i*3+1], Z: rm.mat[i*3+2]}
}

// Col returns the i'th column of the matrix (i.e. where the i'th local axis points in world/parent space).
func (rm *RotationMatrix) Col(i int) r3.Vector {
	return r3.Vector{X: rm.mat[i], Y: rm.mat[3+i], Z: rm.mat[6+i]}
}

// MulVec rotates v by the matrix.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// MulVecInv rotates v by the matrix's transpose, i.e. the inverse rotation since RotationMatrix is always orthonormal.
func (rm *RotationMatrix) MulVecInv(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[3]*v.Y + rm.mat[6]*v.Z,
		Y: rm.mat[1]*v.X + rm.mat[4]*v.Y + rm.mat[7]*v.Z,
		Z: rm.mat[2]*v.X + rm.mat[5]*v.Y + rm.mat[8]*v.Z,
	}
}

// quatToRotationMatrix converts a unit quaternion to a RotationMatrix.
// Reference: standard quaternion-to-matrix formula, as used by the teacher's QuatToRotationMatrix.
func quatToRotationMatrix(q quat.Number) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	n := w*w + x*x + y*y + z*z
	if n < floatEpsilon {
		return &RotationMatrix{mat: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
	}
	s := 2.0 / n
	wx, wy, wz := s*w*x, s*w*y, s*w*z
	xx, xy, xz := s*x*x, s*x*y, s*x*z
	yy, yz, zz := s*y*y, s*y*z, s*z*z
	return &RotationMatrix{mat: [9]float64{
		1 - (yy + zz), xy - wz, xz + wy,
		xy + wz, 1 - (xx + zz), yz - wx,
		xz - wy, yz + wx, 1 - (xx + yy),
	}}
}

// R4AA is an axis-angle rotation: a unit axis (RX, RY, RZ) and a rotation Theta (radians) about it.
// See https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation.
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// Normalize scales the axis components of the R4AA onto the unit sphere.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0 {
		r4.RX, r4.RY, r4.RZ = 1, 0, 0
		return
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// ToQuat converts an R4AA to a unit quaternion.
func (r4 *R4AA) ToQuat() quat.Number {
	r4.Normalize()
	sinA := math.Sin(r4.Theta / 2)
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: r4.RX * sinA,
		Jmag: r4.RY * sinA,
		Kmag: r4.RZ * sinA,
	}
}

// quatToR4AA converts a quaternion to axis-angle, following the same derivation as the Eigen library's AngleAxis
// (and the teacher's QuatToR4AA): angle = 2*atan2(|imaginary|, real), axis = imaginary/|imaginary|.
func quatToR4AA(q quat.Number) R4AA {
	denom := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}
	if denom < 1e-9 {
		return R4AA{Theta: angle, RX: 1}
	}
	return R4AA{Theta: angle, RX: q.Imag / denom, RY: q.Jmag / denom, RZ: q.Kmag / denom}
}
