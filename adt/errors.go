package adt

import (
	"fmt"
	"strings"
)

// MalformedDeclarationError reports a setup-time invariant violation: a
// duplicate declaration name, an arity mismatch at term construction, a
// non-sort value in a signature, or a sort mismatch at a non-generic
// signature slot.
type MalformedDeclarationError struct {
	// Context names the declaration that failed, e.g. "nat.add" for a
	// declaration on a sort, or "succ" for a term construction.
	Context string
	Reason  string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("malformed declaration in %s: %s", e.Context, e.Reason)
}

func malformed(context, format string, args ...interface{}) *MalformedDeclarationError {
	return &MalformedDeclarationError{Context: context, Reason: fmt.Sprintf(format, args...)}
}

// MultiError aggregates the errors found during a whole-declaration pass,
// such as Net.Validate, rather than stopping at the first one.
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = " - " + err.Error()
	}
	return fmt.Sprintf("%d error(s) detected:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// Append adds err to the aggregate. A nil err is a no-op, and an err that is
// itself a *MultiError is flattened rather than nested.
func (e *MultiError) Append(err error) {
	if err == nil {
		return
	}
	if m, ok := err.(*MultiError); ok {
		e.Errors = append(e.Errors, m.Errors...)
		return
	}
	e.Errors = append(e.Errors, err)
}

// OrNil returns e if it holds any errors, or nil otherwise, so callers can
// write `return errs.OrNil()` without an extra len check.
func (e *MultiError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}
