package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBoxConstruction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		b, err := NewBox(r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, b.HalfExtent(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	})
	t.Run("negative extent", func(t *testing.T) {
		_, err := NewBox(r3.Vector{X: -1, Y: 1, Z: 1})
		test.That(t, err, test.ShouldNotBeNil)
	})
	t.Run("non-finite extent", func(t *testing.T) {
		_, err := NewBox(r3.Vector{X: math.NaN(), Y: 1, Z: 1})
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestBoxSupport(t *testing.T) {
	b, err := NewBox(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	cases := []struct {
		d        r3.Vector
		expected r3.Vector
	}{
		{r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 2, Z: 3}},
		{r3.Vector{X: -1, Y: 1, Z: -1}, r3.Vector{X: -1, Y: 2, Z: -3}},
	}
	for _, c := range cases {
		test.That(t, b.Support(c.d), test.ShouldResemble, c.expected)
	}
}

func TestBoxVolumeAndAABB(t *testing.T) {
	b, err := NewBox(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Volume(), test.ShouldEqual, 48.0)
	aabb := b.LocalAABB()
	test.That(t, aabb.Min, test.ShouldResemble, r3.Vector{X: -1, Y: -2, Z: -3})
	test.That(t, aabb.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestSphereConstruction(t *testing.T) {
	t.Run("zero radius rejected", func(t *testing.T) {
		_, err := NewSphere(0)
		test.That(t, err, test.ShouldNotBeNil)
	})
	t.Run("negative radius rejected", func(t *testing.T) {
		_, err := NewSphere(-1)
		test.That(t, err, test.ShouldNotBeNil)
	})
	t.Run("valid", func(t *testing.T) {
		s, err := NewSphere(2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Volume(), test.ShouldAlmostEqual, 4.0/3.0*3.14159265358979*8, 1e-6)
	})
}

func TestSphereSupport(t *testing.T) {
	s, err := NewSphere(3)
	test.That(t, err, test.ShouldBeNil)
	p := s.Support(r3.Vector{X: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 3})
	origin := s.Support(r3.Vector{})
	test.That(t, origin, test.ShouldResemble, r3.Vector{})
}

func TestEllipsoidSupport(t *testing.T) {
	e, err := NewEllipsoid(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	p := e.Support(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestCapsuleDegeneratesToSphere(t *testing.T) {
	c, err := NewCapsule(1, 0)
	test.That(t, err, test.ShouldBeNil)
	p := c.Support(r3.Vector{X: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 1})
}

func TestCapsuleSupportEndSelection(t *testing.T) {
	c, err := NewCapsule(1, 5)
	test.That(t, err, test.ShouldBeNil)
	top := c.Support(r3.Vector{Z: 1})
	test.That(t, top.Z, test.ShouldEqual, 5.0+1.0)
	bottom := c.Support(r3.Vector{Z: -1})
	test.That(t, bottom.Z, test.ShouldEqual, -5.0-1.0)
}

func TestCylinderSupport(t *testing.T) {
	c, err := NewCylinder(2, 3)
	test.That(t, err, test.ShouldBeNil)
	p := c.Support(r3.Vector{X: 1, Z: 1})
	test.That(t, p.Z, test.ShouldEqual, 3.0)
	test.That(t, p.X, test.ShouldAlmostEqual, 2.0, 1e-9)
}

func TestConeSupportPicksApexOrRim(t *testing.T) {
	c, err := NewCone(1, 2)
	test.That(t, err, test.ShouldBeNil)
	apex := c.Support(r3.Vector{Z: 1})
	test.That(t, apex, test.ShouldResemble, r3.Vector{Z: 2})
	rim := c.Support(r3.Vector{X: 1})
	test.That(t, rim.Z, test.ShouldEqual, -2.0)
}

func TestConvexRejectsCoplanar(t *testing.T) {
	_, err := NewConvex([]r3.Vector{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
	})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConvexSupportIsVertexScan(t *testing.T) {
	v := []r3.Vector{
		{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	c, err := NewConvex(v)
	test.That(t, err, test.ShouldBeNil)
	p := c.Support(r3.Vector{X: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 1})
}

func TestTriangleRejectsCollinear(t *testing.T) {
	_, err := NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTriangleSupport(t *testing.T) {
	tri, err := NewTriangle(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	p := tri.Support(r3.Vector{X: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 1})
}

func TestPlaneSignedDistance(t *testing.T) {
	p, err := NewPlane(r3.Vector{Z: 1}, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.SignedDistance(r3.Vector{Z: 5}), test.ShouldEqual, 3.0)
}

func TestHalfspaceContains(t *testing.T) {
	h, err := NewHalfspace(r3.Vector{Z: 1}, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, h.Contains(r3.Vector{Z: -1}), test.ShouldBeTrue)
	test.That(t, h.Contains(r3.Vector{Z: 1}), test.ShouldBeFalse)
}

func TestEncompassesBoxInBox(t *testing.T) {
	outer, _ := NewBox(r3.Vector{X: 2, Y: 2, Z: 2})
	inner, _ := NewBox(r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, Encompasses(outer, inner), test.ShouldBeTrue)
	test.That(t, Encompasses(inner, outer), test.ShouldBeFalse)
}

func TestEncompassesSphereInSphere(t *testing.T) {
	outer, _ := NewSphere(5)
	inner, _ := NewSphere(2)
	test.That(t, Encompasses(outer, inner), test.ShouldBeTrue)
}

func TestShapeConfigRoundTrip(t *testing.T) {
	b, err := NewBox(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	data, err := MarshalShape(b)
	test.That(t, err, test.ShouldBeNil)
	decoded, err := UnmarshalShape(data)
	test.That(t, err, test.ShouldBeNil)
	box2, ok := decoded.(*Box)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, box2.HalfExtent(), test.ShouldResemble, b.HalfExtent())
}
