package geometry

import "github.com/golang/geo/r3"

// Box is a rectangular prism defined by its local-frame half-extents (§3 "Box(half-extents)").
type Box struct {
	halfExtent r3.Vector
	aabb       AABB
}

// NewBox validates and constructs a Box. Negative or non-finite half-extents are a construction-time
// validation failure (§3 invariant, §7).
func NewBox(halfExtent r3.Vector) (*Box, error) {
	if !finite(halfExtent) {
		return nil, newBadDimensionsError("box", "half-extents must be finite")
	}
	if halfExtent.X < 0 || halfExtent.Y < 0 || halfExtent.Z < 0 {
		return nil, newBadDimensionsError("box", "half-extents must be non-negative")
	}
	return &Box{
		halfExtent: halfExtent,
		aabb:       AABB{Min: halfExtent.Mul(-1), Max: halfExtent},
	}, nil
}

func (b *Box) Type() NodeType          { return NodeBox }
func (b *Box) LocalAABB() AABB         { return b.aabb }
func (b *Box) LocalCenter() r3.Vector  { return r3.Vector{} }
func (b *Box) LocalRadius() float64    { return b.halfExtent.Norm() }
func (b *Box) HalfExtent() r3.Vector   { return b.halfExtent }
func (b *Box) CenterOfMass() r3.Vector { return r3.Vector{} }

func (b *Box) Volume() float64 {
	return 8 * b.halfExtent.X * b.halfExtent.Y * b.halfExtent.Z
}

// Inertia returns the standard solid-cuboid inertia tensor about the center, for unit density.
func (b *Box) Inertia() [9]float64 {
	m := b.Volume()
	w, h, d := 2*b.halfExtent.X, 2*b.halfExtent.Y, 2*b.halfExtent.Z
	ixx := m * (h*h + d*d) / 12
	iyy := m * (w*w + d*d) / 12
	izz := m * (w*w + h*h) / 12
	return [9]float64{ixx, 0, 0, 0, iyy, 0, 0, 0, izz}
}

func (b *Box) Hash() int {
	return int(111*b.halfExtent.X+222*b.halfExtent.Y+333*b.halfExtent.Z) ^ (int(NodeBox) << 28)
}

// Support implements §4.A's box support: p_i = sign(d_i) · halfExtent_i, per axis. Ties (d_i == 0) break
// towards the positive extent, which is stable across invocations with equal d.
func (b *Box) Support(d r3.Vector) r3.Vector {
	return r3.Vector{
		X: supportAxis(d.X, b.halfExtent.X),
		Y: supportAxis(d.Y, b.halfExtent.Y),
		Z: supportAxis(d.Z, b.halfExtent.Z),
	}
}

func supportAxis(d, halfExtent float64) float64 {
	if d < 0 {
		return -halfExtent
	}
	return halfExtent
}

// Vertices returns the box's 8 local-frame corners, ordered as the teacher's boxVertices table.
func (b *Box) Vertices() [8]r3.Vector {
	return b.vertices()
}

// Edges returns the box's 12 local-frame edges as endpoint pairs, for exact edge-edge distance
// computation by callers (e.g. the narrowphase box-box separation path).
func (b *Box) Edges() [12][2]r3.Vector {
	v := b.vertices()
	var e [12][2]r3.Vector
	for i, idx := range boxEdgeIndices {
		e[i] = [2]r3.Vector{v[idx[0]], v[idx[1]]}
	}
	return e
}

// vertices returns the box's 8 local-frame corners, ordered as the teacher's boxVertices table.
func (b *Box) vertices() [8]r3.Vector {
	var v [8]r3.Vector
	signs := [8][3]float64{
		{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
		{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	}
	for i, s := range signs {
		v[i] = r3.Vector{X: s[0] * b.halfExtent.X, Y: s[1] * b.halfExtent.Y, Z: s[2] * b.halfExtent.Z}
	}
	return v
}

// boxEdgeIndices lists the 12 edges of a box as pairs of vertex indices (as returned by vertices()).
var boxEdgeIndices = [12][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{1, 3}, {1, 5},
	{2, 3}, {2, 6},
	{3, 7},
	{4, 5}, {4, 6},
	{5, 7},
	{6, 7},
}

// ToPoints samples the box's surface, grounded on the teacher's fillFaces/ToPoints — used only by
// visualization callers (Sampleable), never by the collision core.
func (b *Box) ToPoints(resolution float64) []r3.Vector {
	if resolution <= 0 {
		resolution = defaultPointDensity
	}
	var pts []r3.Vector
	pts = append(pts, fillFaces(b.halfExtent, resolution, 0, true, false)...)
	pts = append(pts, fillFaces(b.halfExtent, resolution, 1, true, true)...)
	pts = append(pts, fillFaces(b.halfExtent, resolution, 2, false, false)...)
	return pts
}

func finite(v r3.Vector) bool {
	return !(isNaNOrInf(v.X) || isNaNOrInf(v.Y) || isNaNOrInf(v.Z))
}
