package browser

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted     = errors.New("browser not started")
	ErrRowNotFound    = errors.New("no table row with the given key")
	ErrColumnNotFound = errors.New("no table column with the given header")
)

// AssertionError reports a mismatch between the state of the page and the
// state an operation expected.
type AssertionError struct {
	Expected string
	Actual   string
	Message  string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected '%s', got '%s'", e.Message, e.Expected, e.Actual)
}
