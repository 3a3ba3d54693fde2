package narrowphase

import "github.com/pkg/errors"

// Construction-time validation errors (§7 "Validation failure"), returned by request
// constructors only — never by the solver hot path.

func newBadRequestError(reason string) error {
	return errors.Errorf("invalid collision request: %s", reason)
}

func newBadWarmStartError(reason string) error {
	return errors.Errorf("invalid warm-start guess: %s", reason)
}
