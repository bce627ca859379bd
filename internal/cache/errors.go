package cache

import (
	"errors"
	"fmt"
)

// ErrUnknownNamespace is returned for a namespace the registry was not
// built with.
var ErrUnknownNamespace = errors.New("unknown cache namespace")

// CorruptionError reports a namespace whose internal bookkeeping is no
// longer consistent, or a resident value of an unexpected type. Callers
// should not retry.
type CorruptionError struct {
	Namespace Name
	Key       string
	Reason    string
}

func (e *CorruptionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache namespace %s corrupted: %s", e.Namespace, e.Reason)
	}
	return fmt.Sprintf("cache namespace %s corrupted at key %q: %s", e.Namespace, e.Key, e.Reason)
}

// IsCorruption reports whether err carries a *CorruptionError.
func IsCorruption(err error) bool {
	var ce *CorruptionError
	return errors.As(err, &ce)
}
