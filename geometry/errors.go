package geometry

import "github.com/pkg/errors"

// newBadDimensionsError reports a non-finite or non-positive shape parameter caught at construction.
func newBadDimensionsError(shapeType string, reason string) error {
	return errors.Errorf("invalid %s dimensions: %s", shapeType, reason)
}

// newBadConvexHullError reports a convex hull that does not satisfy the minimum vertex/non-coplanarity invariant.
func newBadConvexHullError(reason string) error {
	return errors.Errorf("invalid convex hull: %s", reason)
}

// newBadNormalError reports a plane or halfspace normal that is not finite and unit length.
func newBadNormalError(reason string) error {
	return errors.Errorf("invalid normal: %s", reason)
}

// newUnsupportedPairError reports a (shape, shape) combination with no dispatch entry in either order.
func newUnsupportedPairError(a, b NodeType) error {
	return errors.Errorf("unsupported shape pair: %s vs %s", a, b)
}
