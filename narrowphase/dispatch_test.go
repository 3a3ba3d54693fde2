package narrowphase

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/polytope-labs/narrowphase/geometry"
)

// Scenario 1 (§8): Sphere(20) at identity vs Sphere(10) at translation (30,0,0).
func TestScenarioSphereSphereTouching(t *testing.T) {
	s1, _ := geometry.NewSphere(20)
	s2, _ := geometry.NewSphere(10)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 30})

	res := Collide(s1, p1, s2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, len(res.Contacts), test.ShouldEqual, 1)
	test.That(t, res.Contacts[0].Depth, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, res.Contacts[0].Normal.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, res.Contacts[0].Position.X, test.ShouldAlmostEqual, 20.0, 1e-9)
}

// Scenario 2 (§8): Sphere(20) vs Sphere(10) at (29.9,0,0): depth=0.1.
func TestScenarioSphereSpherePenetrating(t *testing.T) {
	s1, _ := geometry.NewSphere(20)
	s2, _ := geometry.NewSphere(10)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 29.9})

	res := Collide(s1, p1, s2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, res.Contacts[0].Depth, test.ShouldAlmostEqual, 0.1, 1e-9)
	// Contact divides the center line in the ratio r1:r2, not the midpoint: 20 - 0.1*20/30.
	test.That(t, res.Contacts[0].Position.X, test.ShouldAlmostEqual, 19.93333333, 1e-6)
}

// Scenario 3 (§8): Sphere(20) vs Sphere(10) at (40,0,0): collide=false, distance=10.
func TestScenarioSphereSphereSeparated(t *testing.T) {
	s1, _ := geometry.NewSphere(20)
	s2, _ := geometry.NewSphere(10)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 40})

	res := Collide(s1, p1, s2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeFalse)

	dist := Distance(s1, p1, s2, p2)
	test.That(t, dist.Distance, test.ShouldAlmostEqual, 10.0, 1e-9)
}

// Scenario 4 (§8): Box(20,40,50) at identity vs Box(10,10,10) at (15.01,0,0): collide=false.
// NewBox takes half-extents, but the scenario's numbers are full side lengths (the convention
// transcribed from original_source's FCL Box(side) constructor, which scales vertices by
// 0.5*side); halved here to (10,20,25)/(5,5,5) so the 15.01 separation is actually non-overlapping.
func TestScenarioBoxBoxSeparated(t *testing.T) {
	b1, _ := geometry.NewBox(r3.Vector{X: 10, Y: 20, Z: 25})
	b2, _ := geometry.NewBox(r3.Vector{X: 5, Y: 5, Z: 5})
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 15.01})

	res := Collide(b1, p1, b2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeFalse)
}

// Scenario 5 (§8): Sphere(10) at identity vs Halfspace(normal=(1,0,0), offset=0):
// depth=10, normal=(-1,0,0), contact=(-5,0,0).
func TestScenarioSphereHalfspace(t *testing.T) {
	s, _ := geometry.NewSphere(10)
	h, _ := geometry.NewHalfspace(r3.Vector{X: 1}, 0)
	ps := geometry.Identity()
	ph := geometry.Identity()

	res := Collide(s, ps, h, ph, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, res.Contacts[0].Depth, test.ShouldAlmostEqual, 10.0, 1e-9)
	test.That(t, res.Contacts[0].Normal.X, test.ShouldAlmostEqual, -1.0, 1e-9)
	test.That(t, res.Contacts[0].Position.X, test.ShouldAlmostEqual, -5.0, 1e-9)
}

// Scenario 6 (§8): Cylinder(5,10) vs Cylinder(5,10) at identity and translation (9.9,0,0):
// collide=true with normal along +X.
func TestScenarioCylinderCylinderOverlap(t *testing.T) {
	c1, _ := geometry.NewCylinder(5, 10)
	c2, _ := geometry.NewCylinder(5, 10)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 9.9})

	res := Collide(c1, p1, c2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, math.Abs(res.Contacts[0].Normal.X), test.ShouldBeGreaterThan, 0.9)
}

// Scenario 7 (§8): Capsule(5,10) vs Capsule(5,10) separated by (0,0,25.1): collide=false.
// NewCapsule takes (radius, half-length), but the scenario's "10" is FCL's Capsule(radius, lz)
// full length (per original_source); halved here to half-length=5 so each capsule's reach is
// 10 (5 half-length + 5 radius) and the combined 20 < 25.1 separation holds.
func TestScenarioCapsuleCapsuleSeparated(t *testing.T) {
	c1, _ := geometry.NewCapsule(5, 5)
	c2, _ := geometry.NewCapsule(5, 5)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{Z: 25.1})

	res := Collide(c1, p1, c2, p2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeFalse)
}

// Symmetry (§8): collide(A,B) and collide(B,A) agree on the boolean; normals are negatives.
func TestPropertySymmetry(t *testing.T) {
	s1, _ := geometry.NewSphere(3)
	s2, _ := geometry.NewSphere(2)
	p1 := geometry.NewPoseFromPoint(r3.Vector{X: 1})
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 3})

	ab := Collide(s1, p1, s2, p2, DefaultCollisionRequest())
	ba := Collide(s2, p2, s1, p1, DefaultCollisionRequest())

	test.That(t, ab.IsCollision, test.ShouldEqual, ba.IsCollision)
	test.That(t, ab.Contacts[0].Normal.X, test.ShouldAlmostEqual, -ba.Contacts[0].Normal.X, 1e-9)
}

// Rigid invariance (§8): applying the same rigid transform to both inputs preserves the boolean
// outcome and rotates the contact normal accordingly.
func TestPropertyRigidInvariance(t *testing.T) {
	s1, _ := geometry.NewSphere(3)
	s2, _ := geometry.NewSphere(2)
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 4})

	baseline := Collide(s1, p1, s2, p2, DefaultCollisionRequest())

	rigid := geometry.NewPoseFromAxisAngle(r3.Vector{X: 10, Y: -5, Z: 2}, r3.Vector{Z: 1}, math.Pi/2)
	p1r := geometry.Compose(rigid, p1)
	p2r := geometry.Compose(rigid, p2)

	rotated := Collide(s1, p1r, s2, p2r, DefaultCollisionRequest())
	test.That(t, rotated.IsCollision, test.ShouldEqual, baseline.IsCollision)
}

// Warm-start equivalence (§8): boolean outcome is unaffected by enabling the cached guess.
func TestPropertyWarmStartEquivalence(t *testing.T) {
	b1, _ := geometry.NewBox(r3.Vector{X: 1, Y: 1, Z: 1})
	b2, _ := geometry.NewBox(r3.Vector{X: 1, Y: 1, Z: 1})
	p1 := geometry.Identity()
	p2 := geometry.NewPoseFromPoint(r3.Vector{X: 1.5})

	cold := collideGeneric(b1, p1, b2, p2, DefaultCollisionRequest())
	req, err := (&CollisionRequest{MaxContacts: 1, EnableContact: true, DistanceTolerance: defaultDistanceTolerance}).WithWarmStart(r3.Vector{X: 1})
	test.That(t, err, test.ShouldBeNil)
	warm := collideGeneric(b1, p1, b2, p2, req)

	test.That(t, cold.IsCollision, test.ShouldEqual, warm.IsCollision)
}

// Halfspace monotonicity (§8): penetration depth is non-decreasing as a shape moves further
// along the halfspace's inward normal.
func TestPropertyHalfspaceMonotonicity(t *testing.T) {
	s, _ := geometry.NewSphere(5)
	h, _ := geometry.NewHalfspace(r3.Vector{X: 1}, 0)
	ph := geometry.Identity()

	prevDepth := -math.Inf(1)
	for _, x := range []float64{2, 0, -2, -4} {
		ps := geometry.NewPoseFromPoint(r3.Vector{X: x})
		res := Collide(s, ps, h, ph, DefaultCollisionRequest())
		if !res.IsCollision {
			continue
		}
		test.That(t, res.Contacts[0].Depth, test.ShouldBeGreaterThanOrEqualTo, prevDepth)
		prevDepth = res.Contacts[0].Depth
	}
}

func TestShapeTriangleIntersectSphere(t *testing.T) {
	s, _ := geometry.NewSphere(1)
	ps := geometry.Identity()
	collide, _, depth, _, err := ShapeTriangleIntersect(s, ps,
		r3.Vector{X: 0.5, Y: -1}, r3.Vector{X: 0.5, Y: 1}, r3.Vector{X: 2, Y: 0}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, collide, test.ShouldBeTrue)
	test.That(t, depth, test.ShouldBeGreaterThan, 0.0)
}

func TestNewCollisionRequestValidation(t *testing.T) {
	_, err := NewCollisionRequest(0, true, 1e-6)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCollisionRequest(1, true, -1)
	test.That(t, err, test.ShouldNotBeNil)
	req, err := NewCollisionRequest(4, true, 1e-6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, req.MaxContacts, test.ShouldEqual, 4)
}
