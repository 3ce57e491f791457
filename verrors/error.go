// Package verrors provides the sentinel error constructors and
// multi-error accumulator used across contentvfs.
package verrors

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies a contentvfs error so callers can branch on failure
// category without string-matching messages.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindNotFound
	KindDependencyViolation
	KindFilesystemError
	KindPermissionDenied
	KindDuplicate
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindDependencyViolation:
		return "dependency_violation"
	case KindFilesystemError:
		return "filesystem_error"
	case KindPermissionDenied:
		return "permission_denied"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so it can be matched with
// errors.As independent of its message text.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// Is reports equality by Kind, so errors.Is(err, InvalidInput(nil, ""))
// works as a category check.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newError(kind Kind, cause error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if cause != nil {
		text = fmt.Sprintf("%s: %v", text, cause)
	}
	return &Error{Kind: kind, err: errors.New("contentvfs: " + text)}
}

// Collector accumulates zero or more errors under a mutex, coalescing
// them into a single *multierror.Error. Used by the content directory
// parser to keep reading after a syntax error instead of aborting on
// the first bad line.
type Collector struct {
	mu   sync.Mutex
	errs *multierror.Error
}

// Add appends err to the collector. A nil err is a no-op.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = multierror.Append(c.errs, err)
}

// Len reports how many errors have been collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errs == nil {
		return 0
	}
	return len(c.errs.Errors)
}

// ErrorOrNil returns the accumulated *multierror.Error, or nil if
// nothing was ever added.
func (c *Collector) ErrorOrNil() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}
