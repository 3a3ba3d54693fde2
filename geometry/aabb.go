package geometry

import "github.com/golang/geo/r3"

// AABB is an axis-aligned bounding box, tight in whichever frame it was computed in (§4.A "local AABB").
type AABB struct {
	Min, Max r3.Vector
}

// Center returns the AABB's center point.
func (a AABB) Center() r3.Vector {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfExtent returns the AABB's per-axis half-extent.
func (a AABB) HalfExtent() r3.Vector {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Radius returns the radius of the bounding sphere that exactly encloses the AABB, for the
// translation-only overbound described in §6 ("local AABB center and radius").
func (a AABB) Radius() float64 {
	return a.HalfExtent().Norm()
}

// Union returns the smallest AABB enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: r3.Vector{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y), Z: min(a.Min.Z, b.Min.Z)},
		Max: r3.Vector{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y), Z: max(a.Max.Z, b.Max.Z)},
	}
}

// aabbFromPoints returns the tight AABB enclosing the given points. Panics on an empty slice; callers
// always supply at least one point (shape constructors guarantee this).
func aabbFromPoints(pts []r3.Vector) AABB {
	box := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box.Min = r3.Vector{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)}
		box.Max = r3.Vector{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)}
	}
	return box
}
