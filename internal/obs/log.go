// Package obs is the engine's structured-logging seam (spec.md §7). The
// teacher carries no logger at all; go.uber.org/zap is the ambient-stack
// substitute, grounded in r3e-network-service_layer and
// theRebelliousNerd-codenerd both standardizing on it.
package obs

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// L returns the process-wide sugared logger, built lazily so importing this
// package never has a side effect at init time.
func L() *zap.SugaredLogger {
	once.Do(func() {
		z, err := zap.NewProduction()
		if err != nil {
			z = zap.NewNop()
		}
		logger = z.Sugar()
	})
	return logger
}

// SetLogger overrides the process-wide logger; a test can use it to install
// a zaptest logger or a no-op so invariant-violation diagnostics don't spam
// stdout during table tests.
func SetLogger(l *zap.SugaredLogger) {
	once.Do(func() {})
	logger = l
}

// InvariantViolation is the §7 "structural invariant violation" error kind:
// fatal, aborts the current turn, never silently ignored. The scheduler
// recovers it at the per-actor boundary (spec §4.1) so one broken actor
// can't take down the whole enemy phase.
type InvariantViolation struct {
	Where string
	Why   string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation in " + e.Where + ": " + e.Why
}

// Raise panics with an InvariantViolation. Call sites are structural
// invariant checks (missing required component, corpse automaton misuse,
// etc.) — never ordinary control flow.
func Raise(where, why string) {
	panic(&InvariantViolation{Where: where, Why: why})
}

// RecoverInvariant recovers an InvariantViolation panic, logs it, and
// reports whether one occurred. Any other panic value is re-raised: this
// seam only swallows the one error kind spec.md §7 names as "abort the
// turn, not the game".
func RecoverInvariant(where string) (violated bool) {
	if r := recover(); r != nil {
		if iv, ok := r.(*InvariantViolation); ok {
			L().Warnw("invariant violation recovered", "where", where, "detail", iv.Why)
			return true
		}
		panic(r)
	}
	return false
}

// FormatWarning joins several non-fatal persistence-format-mismatch issues
// (spec §7 "recover with defaults; log a warning") into one combined error
// for a single log line, via go.uber.org/zap's own error-accumulation
// dependency.
func FormatWarning(issues ...error) error {
	var combined error
	for _, issue := range issues {
		if issue != nil {
			combined = multierr.Append(combined, issue)
		}
	}
	return combined
}
