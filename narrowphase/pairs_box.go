package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/polytope-labs/narrowphase/geometry"
)

// obbSATMaxGap computes the maximum separation gap across all 15 SAT axes for two oriented
// bounding boxes, following Ericson's precomputed R-matrix formulation ("Real-Time Collision
// Detection" ch. 4.4): positive means the boxes are separated by at least that distance;
// negative means they overlap by that penetration depth on the minimum-depth axis.
func obbSATMaxGap(rmA, rmB *geometry.RotationMatrix, halfA, halfB, centerDist r3.Vector) (gap float64, axis r3.Vector) {
	const eps = 1e-10

	a0, a1, a2 := rmA.Col(0), rmA.Col(1), rmA.Col(2)
	b0, b1, b2 := rmB.Col(0), rmB.Col(1), rmB.Col(2)

	t := r3.Vector{X: a0.Dot(centerDist), Y: a1.Dot(centerDist), Z: a2.Dot(centerDist)}

	r := [3][3]float64{
		{a0.Dot(b0), a0.Dot(b1), a0.Dot(b2)},
		{a1.Dot(b0), a1.Dot(b1), a1.Dot(b2)},
		{a2.Dot(b0), a2.Dot(b1), a2.Dot(b2)},
	}
	ar := [3][3]float64{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ar[i][j] = math.Abs(r[i][j]) + eps
		}
	}

	hA := [3]float64{halfA.X, halfA.Y, halfA.Z}
	hB := [3]float64{halfB.X, halfB.Y, halfB.Z}
	tArr := [3]float64{t.X, t.Y, t.Z}

	best := math.Inf(-1)
	var bestAxis r3.Vector
	localAxes := [3]r3.Vector{a0, a1, a2}
	worldAxes := [3]r3.Vector{b0, b1, b2}

	for i := 0; i < 3; i++ {
		g := math.Abs(tArr[i]) - hA[i] - (hB[0]*ar[i][0] + hB[1]*ar[i][1] + hB[2]*ar[i][2])
		if g > best {
			best = g
			bestAxis = localAxes[i]
		}
	}
	for j := 0; j < 3; j++ {
		proj := tArr[0]*r[0][j] + tArr[1]*r[1][j] + tArr[2]*r[2][j]
		g := math.Abs(proj) - hB[j] - (hA[0]*ar[0][j] + hA[1]*ar[1][j] + hA[2]*ar[2][j])
		if g > best {
			best = g
			bestAxis = worldAxes[j]
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l2 := 1 - r[i][j]*r[i][j]
			if l2 <= eps {
				continue
			}
			i1, i2 := (i+1)%3, (i+2)%3
			raw := math.Abs(tArr[i2]*r[i1][j]-tArr[i1]*r[i2][j]) - (hA[i1]*ar[i2][j] + hA[i2]*ar[i1][j]) - (hB[(j+1)%3]*ar[i][(j+2)%3] + hB[(j+2)%3]*ar[i][(j+1)%3])
			g := raw / math.Sqrt(l2)
			if g > best {
				best = g
				bestAxis = localAxes[i].Cross(worldAxes[j])
			}
		}
	}
	if n := bestAxis.Norm(); n > floatEpsilon {
		bestAxis = bestAxis.Mul(1 / n)
	}
	return best, bestAxis
}

// boxBoxResult implements §4.E "Box-box": the separating-axis test over all 15 candidate axes;
// on overlap, the axis of minimum penetration depth gives the normal and the deepest vertex of
// the incident box gives the contact point (§4.E / §9 open question: the reference routine
// returns only the deepest vertex of a face-face manifold; ManifoldPartial records that this
// result is not the full clipped polygon).
func boxBoxResult(a *geometry.Box, pa *geometry.Pose, b *geometry.Box, pb *geometry.Pose) (collide bool, normal, contact r3.Vector, depth float64, partial bool) {
	centerDist := pb.Point().Sub(pa.Point())
	gap, axis := obbSATMaxGap(pa.RotationMatrix(), pb.RotationMatrix(), a.HalfExtent(), b.HalfExtent(), centerDist)

	if gap > 0 {
		return false, r3.Vector{}, r3.Vector{}, 0, false
	}

	// Orient the axis from B towards A's side so "normal points from object 2 into object 1"
	// (§3 "Contact point"): axis should point from B's center towards A's center when dotted
	// with centerDist it should be negative (pointing away from B, into A).
	if axis.Dot(centerDist) > 0 {
		axis = axis.Mul(-1)
	}

	// Deepest vertex of B along -axis (i.e. pointing into A), transformed to world.
	localDir := pb.InverseTransformDirection(axis.Mul(-1))
	deepestLocal := r3.Vector{
		X: sat(localDir.X) * b.HalfExtent().X,
		Y: sat(localDir.Y) * b.HalfExtent().Y,
		Z: sat(localDir.Z) * b.HalfExtent().Z,
	}
	contact = pb.Transform(deepestLocal)
	return true, axis, contact, -gap, true
}

func sat(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// boxBoxHybridDistance computes the Euclidean separation distance between two non-overlapping
// OBBs (the teacher's "hybrid SAT+GJK" refinement: SAT alone only proves a lower bound). It
// returns -1 when SAT finds no separating axis; otherwise the smaller of the exact
// segment-segment distance over all 12x12 edge pairs and GJK's distance, which covers the
// vertex-face configurations that edge pairs miss.
func boxBoxHybridDistance(boxA *geometry.Box, poseA *geometry.Pose, boxB *geometry.Box, poseB *geometry.Pose, opA, opB operand) float64 {
	centerDist := poseB.Point().Sub(poseA.Point())
	gap, _ := obbSATMaxGap(poseA.RotationMatrix(), poseB.RotationMatrix(), boxA.HalfExtent(), boxB.HalfExtent(), centerDist)
	if gap <= 0 {
		return -1
	}

	edgesA := boxA.Edges()
	edgesB := boxB.Edges()
	best := math.Inf(1)
	for _, ea := range edgesA {
		wa0, wa1 := poseA.Transform(ea[0]), poseA.Transform(ea[1])
		for _, eb := range edgesB {
			wb0, wb1 := poseB.Transform(eb[0]), poseB.Transform(eb[1])
			if d := geometry.SegmentDistanceToSegment(wa0, wa1, wb0, wb1); d < best {
				best = d
			}
		}
	}
	outcome := gjkDistance(opA, opB, r3.Vector{}, defaultDistanceTolerance)
	if outcome.failure == FailureNone && !outcome.overlap && outcome.distance < best {
		best = outcome.distance
	}
	return best
}
