package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Capsule is a cylinder with hemispherical caps: radius, and half-length of the internal segment
// along local Z (§3 "Capsule(radius, half-length along local Z)").
//
//	....___________________
//	.../                   \
//	.x|  |-------O-------|  |x
//	...\___________________/
type Capsule struct {
	radius     float64
	halfLength float64
}

// NewCapsule validates and constructs a Capsule.
func NewCapsule(radius, halfLength float64) (*Capsule, error) {
	if isNaNOrInf(radius) || isNaNOrInf(halfLength) {
		return nil, newBadDimensionsError("capsule", "radius and half-length must be finite")
	}
	if radius <= 0 {
		return nil, newBadDimensionsError("capsule", "radius must be positive")
	}
	if halfLength < 0 {
		return nil, newBadDimensionsError("capsule", "half-length must be non-negative")
	}
	return &Capsule{radius: radius, halfLength: halfLength}, nil
}

func (c *Capsule) Type() NodeType         { return NodeCapsule }
func (c *Capsule) Radius() float64        { return c.radius }
func (c *Capsule) HalfLength() float64    { return c.halfLength }
func (c *Capsule) LocalCenter() r3.Vector { return r3.Vector{} }
func (c *Capsule) LocalRadius() float64   { return c.halfLength + c.radius }
func (c *Capsule) CenterOfMass() r3.Vector { return r3.Vector{} }

// SegA and SegB are the proximal/distal endpoints of the internal line segment, in local frame.
func (c *Capsule) SegA() r3.Vector { return r3.Vector{Z: -c.halfLength} }
func (c *Capsule) SegB() r3.Vector { return r3.Vector{Z: c.halfLength} }

func (c *Capsule) LocalAABB() AABB {
	r := r3.Vector{X: c.radius, Y: c.radius, Z: c.halfLength + c.radius}
	return AABB{Min: r.Mul(-1), Max: r}
}

func (c *Capsule) Volume() float64 {
	cylinder := math.Pi * c.radius * c.radius * (2 * c.halfLength)
	caps := 4.0 / 3.0 * math.Pi * c.radius * c.radius * c.radius
	return cylinder + caps
}

func (c *Capsule) Inertia() [9]float64 {
	// Standard composite formula: cylinder body plus two hemispherical caps offset from center.
	r, h := c.radius, 2*c.halfLength
	mCyl := math.Pi * r * r * h
	mCap := 4.0 / 3.0 * math.Pi * r * r * r
	ixxCyl := mCyl * (3*r*r + h*h) / 12
	izzCyl := mCyl * r * r / 2
	// Each hemisphere's own-axis inertia plus parallel-axis offset to the capsule center.
	d := c.halfLength + 3*r/8
	ixxCap := mCap*(83*r*r/320) + mCap*d*d
	izzCap := mCap * 2 * r * r / 5
	ixx := ixxCyl + ixxCap
	izz := izzCyl + izzCap
	return [9]float64{ixx, 0, 0, 0, ixx, 0, 0, 0, izz}
}

func (c *Capsule) Hash() int {
	return int(c.radius*1000+c.halfLength*7) ^ (int(NodeCapsule) << 28)
}

// Support implements §4.A: the sphere support at whichever end (±Z half-length) maximizes d·p.
func (c *Capsule) Support(d r3.Vector) r3.Vector {
	sphereSupport := (&Sphere{radius: c.radius}).Support(d)
	if d.Z >= 0 {
		return sphereSupport.Add(r3.Vector{Z: c.halfLength})
	}
	return sphereSupport.Add(r3.Vector{Z: -c.halfLength})
}

// ToPoints samples the capsule surface: two hemispherical caps plus a ringed cylindrical shaft,
// grounded on the teacher's capsule.go ToPoints (visualization only).
func (c *Capsule) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	sphere := &Sphere{radius: c.radius}
	pts := sphere.ToPoints(resolution)
	for i, p := range pts {
		if p.Z >= 0 {
			pts[i].Z += c.halfLength
		} else {
			pts[i].Z -= c.halfLength
		}
	}
	length := 2 * c.halfLength
	if length > 0 {
		ringCount := int(math.Max(1, math.Floor(c.radius*length*resolution/math.Max(1, length*resolution))))
		ptsPerRing := int(math.Max(4, c.radius*resolution))
		zInc := length / float64(ringCount+1)
		for ring := 1; ring <= ringCount; ring++ {
			for ringPt := 0; ringPt < ptsPerRing; ringPt++ {
				theta := 2 * math.Pi * float64(ringPt) / float64(ptsPerRing)
				pts = append(pts, r3.Vector{
					X: math.Cos(theta) * c.radius,
					Y: math.Sin(theta) * c.radius,
					Z: -c.halfLength + zInc*float64(ring),
				})
			}
		}
	}
	return pts
}
