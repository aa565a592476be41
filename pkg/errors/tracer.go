package errors

import "github.com/pkg/errors"

// Tracer is an error that carries a short message plus the stack trace of
// the failure it wraps. Infrastructure adapters use it so that transport and
// cache errors surface with their origin intact.
type Tracer struct {
	Message string
	Err     error
}

// StackTracer is implemented by errors that expose a pkg/errors stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// NewTracer creates a Tracer with the given message and no underlying error.
func NewTracer(message string) *Tracer {
	return &Tracer{Message: message}
}

// FromError creates a Tracer from an existing error, capturing a stack trace
// at this point if the error does not already carry one.
func FromError(err error) *Tracer {
	t := NewTracer(err.Error())
	return t.Wrap(err)
}

// Wrap attaches an underlying error, capturing a stack trace if needed.
func (t *Tracer) Wrap(err error) *Tracer {
	if _, ok := err.(StackTracer); ok {
		t.Err = err
		return t
	}
	t.Err = errors.WithStack(err)
	return t
}

func (t *Tracer) Error() string {
	return t.Message
}

func (t *Tracer) Unwrap() error {
	return t.Err
}

// StackTrace returns the stack trace of the wrapped error, or nil if the
// Tracer wraps nothing with a trace.
func (t *Tracer) StackTrace() errors.StackTrace {
	if st, ok := t.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
