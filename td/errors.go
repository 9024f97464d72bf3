package td

import "github.com/cockroachdb/errors"

// Errors
var (
	// ErrConfig marks every error caused by the input or the configuration of a run,
	// as opposed to internal invariant violations, which are assertion failures.
	ErrConfig = errors.New("configuration error")

	ErrNoVariables          = errors.New("formula declares no variables")
	ErrVariableOutOfRange   = errors.New("variable out of range")
	ErrUnknownHeuristic     = errors.New("unknown elimination heuristic")
	ErrInvalidDecomposition = errors.New("invalid tree decomposition")
)

// ConfigError marks err as a configuration error, so that IsConfigError reports it.
func ConfigError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrConfig)
}

// IsConfigError is true iff err was caused by invalid input or configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsInternalError is true iff err reports a broken invariant of the engine itself.
func IsInternalError(err error) bool {
	return errors.IsAssertionFailure(err)
}
