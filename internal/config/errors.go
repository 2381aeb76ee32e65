package config

import (
	"fmt"
	"strings"
)

// KeyError describes a single invalid or missing configuration key.
type KeyError struct {
	Key     string
	Message string
}

func (e KeyError) Error() string {
	return e.Key + ": " + e.Message
}

// ValidationError aggregates every per-key failure found during one
// resolution pass, so operators can fix all of them before restarting
// instead of discovering them one at a time.
type ValidationError struct {
	Errs []KeyError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, ke := range e.Errs {
		msgs = append(msgs, ke.Error())
	}

	return fmt.Sprintf("invalid configuration (%d keys): %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Mentions reports whether the aggregated error names the given key.
func (e *ValidationError) Mentions(key string) bool {
	for _, ke := range e.Errs {
		if ke.Key == key {
			return true
		}
	}

	return false
}

func (e *ValidationError) add(key, format string, args ...any) {
	e.Errs = append(e.Errs, KeyError{Key: key, Message: fmt.Sprintf(format, args...)})
}
