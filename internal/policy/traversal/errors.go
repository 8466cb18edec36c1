package traversal

import "fmt"

// ConfigurationError reports a policy field holding a value outside its
// enumeration. It indicates a malformed Value and is not recoverable at the
// call site; callers should fail the resource immediately.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid policy %s value %q", e.Field, e.Value)
}
