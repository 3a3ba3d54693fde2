package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// defaultPointDensity is the fallback point-per-unit-length used by ToPoints samplers when the
// caller passes a non-positive resolution, grounded on the teacher's defaultPointDensity/defaultTotalSpherePoints.
const defaultPointDensity = 0.5

func isNaNOrInf(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// float64AlmostEqual reports whether a and b differ by no more than eps, the teacher's
// utils.Float64AlmostEqual, adapted locally since this module does not carry the rest of that package.
func float64AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// closestPointSegmentPoint returns the closest point on segment [a,b] to point p.
func closestPointSegmentPoint(a, b, p r3.Vector) r3.Vector {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < floatEpsilon*floatEpsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// segmentDistanceToSegment returns the minimum distance between segments [p1,q1] and [p2,q2].
// Reference: Ericson, "Real-Time Collision Detection" §5.1.9, as used by the teacher's
// SegmentDistanceToSegment / boxVsBoxSeparationDist.
func segmentDistanceToSegment(p1, q1, p2, q2 r3.Vector) float64 {
	c1, c2 := closestPointsSegmentSegment(p1, q1, p2, q2)
	return c1.Sub(c2).Norm()
}

// SegmentDistanceToSegment exports segmentDistanceToSegment for callers outside this package
// (the narrowphase box-box edge-edge separation path).
func SegmentDistanceToSegment(p1, q1, p2, q2 r3.Vector) float64 {
	return segmentDistanceToSegment(p1, q1, p2, q2)
}

func closestPointsSegmentSegment(p1, q1, p2, q2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	const eps = floatEpsilon * floatEpsilon

	if a <= eps && e <= eps {
		return p1, p2
	}
	if a <= eps {
		s = 0
		t = clamp01(f / e)
	} else {
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fillFaces returns surface-sample points on a box of the given half-extent, grounded verbatim on the
// teacher's box.go fillFaces helper (point-cloud sampling for visualization callers only).
func fillFaces(halfExtent r3.Vector, iter float64, fixedDimension int, orEquals1, orEquals2 bool) []r3.Vector {
	halfSize := [3]float64{halfExtent.X, halfExtent.Y, halfExtent.Z}
	var facePoints []r3.Vector
	starts := [3]float64{0, 0, 0}
	starts[fixedDimension] = halfSize[fixedDimension]
	lessThan := func(orEquals bool, v1, v2 float64) bool {
		if orEquals {
			return v1 <= v2
		}
		return v1 < v2
	}
	for i := starts[0]; lessThan(orEquals1, i, halfSize[0]); i += iter {
		for j := starts[1]; lessThan(orEquals2, j, halfSize[1]); j += iter {
			for k := starts[2]; k <= halfSize[2]; k += iter {
				p1 := r3.Vector{X: i, Y: j, Z: k}
				p2 := r3.Vector{X: i, Y: j, Z: -k}
				p3 := r3.Vector{X: i, Y: -j, Z: k}
				p4 := r3.Vector{X: i, Y: -j, Z: -k}
				p5 := r3.Vector{X: -i, Y: j, Z: k}
				p6 := r3.Vector{X: -i, Y: j, Z: -k}
				p7 := r3.Vector{X: -i, Y: -j, Z: -k}
				p8 := r3.Vector{X: -i, Y: -j, Z: k}
				switch {
				case i == 0 && j == 0:
					facePoints = append(facePoints, p1, p2)
				case j == 0 && k == 0:
					facePoints = append(facePoints, p1, p5)
				case i == 0 && k == 0:
					facePoints = append(facePoints, p1, p7)
				case i == 0:
					facePoints = append(facePoints, p1, p2, p3, p4)
				case j == 0:
					facePoints = append(facePoints, p1, p2, p5, p6)
				case k == 0:
					facePoints = append(facePoints, p1, p3, p5, p8)
				default:
					facePoints = append(facePoints, p1, p2, p3, p4, p5, p6, p7, p8)
				}
				if iter <= 0 {
					break
				}
			}
		}
	}
	return facePoints
}
