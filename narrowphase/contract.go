package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"
)

// GJKBackend selects which solver backend services a request (§3 "gjk_solver").
// Two backends coexist per §1: a minimal built-in GJK/EPA pair and an
// "alternative" identifier reserved for an external-equivalent implementation.
// Both currently route through the same built-in solver (gjkDistance/epaPenetrate);
// the type exists so dispatch and request validation already carry the seam the
// spec requires, without inventing a second numerical implementation that has
// nothing to disagree with.
type GJKBackend int

const (
	// BackendBuiltin is the minimal built-in GJK/EPA pair (components C, D).
	BackendBuiltin GJKBackend = iota
	// BackendAlternative names the external-equivalent backend slot (§1); it is
	// currently serviced by the same solver as BackendBuiltin.
	BackendAlternative
)

// FailureKind enumerates the non-boolean result states of §7.
type FailureKind int

const (
	// FailureNone means the computation completed normally.
	FailureNone FailureKind = iota
	// FailureNonConvergence means GJK or EPA exceeded its iteration cap (§7).
	FailureNonConvergence
	// FailureUnsupportedPair means dispatch found no entry for the ordered or
	// reversed pair and the operands are not both convex (§7).
	FailureUnsupportedPair
	// FailureToleranceSaturated means a distance was computed but is less
	// accurate than the request's tolerance demanded (§7).
	FailureToleranceSaturated
)

// ContactPoint is a single point of a contact manifold (§3 "Contact point"): a world-frame
// position, an outward unit normal pointing from shape 2 into shape 1, a non-negative
// penetration depth, and a direction for warm-starting a subsequent call on the same pair
// (the EPA normal on the generic GJK/EPA path; zero from closed-form routines).
type ContactPoint struct {
	Position r3.Vector
	Normal   r3.Vector
	Depth    float64
	GJKGuess r3.Vector
}

// CollisionRequest configures a Collide call (§3 "Collision request").
type CollisionRequest struct {
	// MaxContacts bounds the number of contact points returned; excess contacts
	// are silently dropped (§4.H). Must be >= 1.
	MaxContacts int
	// EnableContact, when false, makes Collide populate only IsCollision.
	EnableContact bool
	// GJKSolver selects the backend used when dispatch falls back to GJK/EPA.
	GJKSolver GJKBackend
	// EnableCachedGJKGuess turns on warm-starting from CachedGJKGuess.
	EnableCachedGJKGuess bool
	// CachedGJKGuess is a direction hint from a prior call on a similar pair,
	// exploited for temporal coherence (§5). Propagated to GJK only if its norm
	// exceeds a minimum epsilon (§4.H).
	CachedGJKGuess r3.Vector
	// DistanceTolerance is the absolute scalar threshold for GJK/EPA termination.
	DistanceTolerance float64
}

// DefaultCollisionRequest returns the request matching the defaults named in §3:
// max_contacts=1, contact detail enabled, built-in backend, no warm start.
func DefaultCollisionRequest() *CollisionRequest {
	return &CollisionRequest{
		MaxContacts:       1,
		EnableContact:     true,
		GJKSolver:         BackendBuiltin,
		DistanceTolerance: defaultDistanceTolerance,
	}
}

// NewCollisionRequest validates and constructs a CollisionRequest (§4.H: "max_contacts >= 1,
// tolerances finite and positive").
func NewCollisionRequest(maxContacts int, enableContact bool, tolerance float64) (*CollisionRequest, error) {
	if maxContacts < 1 {
		return nil, newBadRequestError("max_contacts must be >= 1")
	}
	if isNaNOrInf(tolerance) || tolerance <= 0 {
		return nil, newBadRequestError("distance_tolerance must be finite and positive")
	}
	return &CollisionRequest{
		MaxContacts:       maxContacts,
		EnableContact:     enableContact,
		GJKSolver:         BackendBuiltin,
		DistanceTolerance: tolerance,
	}, nil
}

// WithWarmStart returns a copy of the request configured to propagate the given cached
// direction, validated against the minimum epsilon the dispatcher enforces (§4.H).
func (r *CollisionRequest) WithWarmStart(guess r3.Vector) (*CollisionRequest, error) {
	if !finiteVec(guess) {
		return nil, newBadWarmStartError("guess must be finite")
	}
	cp := *r
	cp.EnableCachedGJKGuess = guess.Norm() > warmStartMinNorm
	cp.CachedGJKGuess = guess
	return &cp, nil
}

// CollisionResult is the outcome of a Collide call (§3 "Collision result").
type CollisionResult struct {
	IsCollision    bool
	Contacts       []ContactPoint
	UpdatedGuess   r3.Vector
	Failure        FailureKind
	// ManifoldPartial is set by closed-form routines (box-box) that return only
	// the deepest vertex of a face-face manifold rather than the full clipped
	// polygon, per §4.E's documented limitation.
	ManifoldPartial bool
}

// DistanceResult is the outcome of a Distance call (§3 "Distance result"). Distance is
// non-negative on separation; a negative value means the solver could only prove overlap,
// not compute a separation distance, and the caller should switch to Collide.
type DistanceResult struct {
	Distance  float64
	Witness1  r3.Vector
	Witness2  r3.Vector
	Failure   FailureKind
}

const (
	defaultDistanceTolerance = 1e-6
	warmStartMinNorm         = 1e-12
	// floatEpsilon is the baseline tolerance for degenerate-geometry checks (near-coincident
	// simplex vertices, near-zero directions) used throughout the solver.
	floatEpsilon = 128 * 2.220446049250313e-16
)

func isNaNOrInf(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func finiteVec(v r3.Vector) bool {
	return !isNaNOrInf(v.X) && !isNaNOrInf(v.Y) && !isNaNOrInf(v.Z)
}
