// Package narrowphase implements the narrow-phase collision engine: support
// oracle (B), GJK distance solver (C), EPA penetration solver (D), closed-form
// pair algorithms (E), dispatch layer (F), shape-triangle engine (G), and the
// request/result contracts (H) that tie them together.
package narrowphase

import "go.uber.org/zap"

var pkgLogger = zap.NewNop()

// SetLogger installs the *zap.Logger used for dispatch-fallback and
// non-convergence diagnostics. The engine is pure and per-call; logging never
// sits on the numerical hot path, so this is the only place a caller attaches
// observability. The default is a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger = l
}
