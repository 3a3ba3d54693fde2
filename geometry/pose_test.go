package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestPoseTransformIdentity(t *testing.T) {
	p := Identity()
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, p.Transform(v), test.ShouldResemble, v)
}

func TestPoseTransformTranslationOnly(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0})
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	out := p.Transform(v)
	test.That(t, out, test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 3})
}

func TestPoseTransformRotation90AboutZ(t *testing.T) {
	p := NewPoseFromAxisAngle(r3.Vector{}, r3.Vector{Z: 1}, math.Pi/2)
	out := p.Transform(r3.Vector{X: 1})
	test.That(t, out.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, out.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestPoseInvertRoundTrip(t *testing.T) {
	p := NewPoseFromAxisAngle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 1, Z: 0}, 1.2)
	inv := p.Invert()
	v := r3.Vector{X: 5, Y: -2, Z: 7}
	round := inv.Transform(p.Transform(v))
	test.That(t, round.X, test.ShouldAlmostEqual, v.X, 1e-9)
	test.That(t, round.Y, test.ShouldAlmostEqual, v.Y, 1e-9)
	test.That(t, round.Z, test.ShouldAlmostEqual, v.Z, 1e-9)
}

func TestComposeAssociativity(t *testing.T) {
	a := NewPoseFromAxisAngle(r3.Vector{X: 1}, r3.Vector{Z: 1}, 0.3)
	b := NewPoseFromAxisAngle(r3.Vector{Y: 1}, r3.Vector{X: 1}, 0.7)
	composed := Compose(a, b)
	v := r3.Vector{X: 1, Y: 1, Z: 1}
	direct := a.Transform(b.Transform(v))
	test.That(t, composed.Transform(v).X, test.ShouldAlmostEqual, direct.X, 1e-9)
	test.That(t, composed.Transform(v).Y, test.ShouldAlmostEqual, direct.Y, 1e-9)
	test.That(t, composed.Transform(v).Z, test.ShouldAlmostEqual, direct.Z, 1e-9)
}

func TestPoseAlmostEqualHandlesDoubleCover(t *testing.T) {
	p1 := NewPoseFromAxisAngle(r3.Vector{}, r3.Vector{Z: 1}, math.Pi/2)
	q := p1.Orientation()
	negated := NewPose(p1.Point(), quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag})
	test.That(t, PoseAlmostEqual(p1, negated, 1e-9), test.ShouldBeTrue)
}
