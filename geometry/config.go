package geometry

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ShapeConfig is the declarative, JSON-serializable description of a Shape, tagged by Type,
// mirroring the teacher's VolumeConfig/NewGeometryConfig envelope. Unlike the teacher's config,
// there is no protobuf counterpart: wire serialization to a robot control plane is out of this
// library's scope.
type ShapeConfig struct {
	Type string `json:"type"`

	// Box
	HalfExtent *r3.Vector `json:"half_extent,omitempty"`

	// Sphere
	Radius float64 `json:"radius,omitempty"`

	// Ellipsoid
	Radii *r3.Vector `json:"radii,omitempty"`

	// Capsule, Cylinder, Cone share radius/half_length
	HalfLength float64 `json:"half_length,omitempty"`

	// Convex
	Vertices []r3.Vector `json:"vertices,omitempty"`

	// Plane, Halfspace
	Normal *r3.Vector `json:"normal,omitempty"`
	Offset float64    `json:"offset,omitempty"`

	// Triangle
	P0 *r3.Vector `json:"p0,omitempty"`
	P1 *r3.Vector `json:"p1,omitempty"`
	P2 *r3.Vector `json:"p2,omitempty"`
}

// NewShapeConfig builds a ShapeConfig from a live Shape, for callers that need to serialize a
// shape they already constructed.
func NewShapeConfig(s Shape) (*ShapeConfig, error) {
	switch v := s.(type) {
	case *Box:
		he := v.HalfExtent()
		return &ShapeConfig{Type: "box", HalfExtent: &he}, nil
	case *Sphere:
		return &ShapeConfig{Type: "sphere", Radius: v.Radius()}, nil
	case *Ellipsoid:
		r := v.Radii()
		return &ShapeConfig{Type: "ellipsoid", Radii: &r}, nil
	case *Capsule:
		return &ShapeConfig{Type: "capsule", Radius: v.Radius(), HalfLength: v.HalfLength()}, nil
	case *Cylinder:
		return &ShapeConfig{Type: "cylinder", Radius: v.Radius(), HalfLength: v.HalfLength()}, nil
	case *Cone:
		return &ShapeConfig{Type: "cone", Radius: v.Radius(), HalfLength: v.HalfLength()}, nil
	case *Convex:
		return &ShapeConfig{Type: "convex", Vertices: v.Vertices()}, nil
	case *Plane:
		n := v.Normal()
		return &ShapeConfig{Type: "plane", Normal: &n, Offset: v.Offset()}, nil
	case *Halfspace:
		n := v.Normal()
		return &ShapeConfig{Type: "halfspace", Normal: &n, Offset: v.Offset()}, nil
	case *Triangle:
		p0, p1, p2 := v.P0(), v.P1(), v.P2()
		return &ShapeConfig{Type: "triangle", P0: &p0, P1: &p1, P2: &p2}, nil
	default:
		return nil, errors.Errorf("unknown shape type %T for config encoding", s)
	}
}

// ParseConfig validates the envelope and constructs the tagged Shape it describes. Validation
// failures surface as the same construction-time errors the direct NewXxx constructors produce
// (§6: invalid parameters raise a validation failure at construction, not later).
func (c *ShapeConfig) ParseConfig() (Shape, error) {
	switch c.Type {
	case "box":
		if c.HalfExtent == nil {
			return nil, errors.Errorf("box config missing half_extent")
		}
		return NewBox(*c.HalfExtent)
	case "sphere":
		return NewSphere(c.Radius)
	case "ellipsoid":
		if c.Radii == nil {
			return nil, errors.Errorf("ellipsoid config missing radii")
		}
		return NewEllipsoid(*c.Radii)
	case "capsule":
		return NewCapsule(c.Radius, c.HalfLength)
	case "cylinder":
		return NewCylinder(c.Radius, c.HalfLength)
	case "cone":
		return NewCone(c.Radius, c.HalfLength)
	case "convex":
		return NewConvex(c.Vertices)
	case "plane":
		if c.Normal == nil {
			return nil, errors.Errorf("plane config missing normal")
		}
		return NewPlane(*c.Normal, c.Offset)
	case "halfspace":
		if c.Normal == nil {
			return nil, errors.Errorf("halfspace config missing normal")
		}
		return NewHalfspace(*c.Normal, c.Offset)
	case "triangle":
		if c.P0 == nil || c.P1 == nil || c.P2 == nil {
			return nil, errors.Errorf("triangle config missing vertices")
		}
		return NewTriangle(*c.P0, *c.P1, *c.P2)
	default:
		return nil, errors.Errorf("unknown shape type %q", c.Type)
	}
}

// MarshalShape is a convenience wrapper combining NewShapeConfig with json.Marshal.
func MarshalShape(s Shape) ([]byte, error) {
	cfg, err := NewShapeConfig(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cfg)
}

// UnmarshalShape is a convenience wrapper combining json.Unmarshal with ParseConfig.
func UnmarshalShape(data []byte) (Shape, error) {
	var cfg ShapeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding shape config")
	}
	return cfg.ParseConfig()
}
