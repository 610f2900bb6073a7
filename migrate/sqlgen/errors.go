package sqlgen

import "fmt"

// UnsupportedError reports a migration step that can never be rendered on
// the target provider. Reaching one means the differ emitted a step the
// dialect has no object for.
type UnsupportedError struct {
	Provider  string
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is unreachable for provider %s", e.Operation, e.Provider)
}

func unsupported(provider, operation string) error {
	return &UnsupportedError{Provider: provider, Operation: operation}
}

// InvariantError reports an internal inconsistency between the steps and the
// snapshots they reference. It always aborts rendering.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Message
}

func invariantf(format string, args ...any) error {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
