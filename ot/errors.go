package ot

import (
	"errors"
	"fmt"

	"github.com/burntcarrot/otpad/docop"
)

var (
	// ErrMismatch reports two ops that do not cover the same document.
	ErrMismatch = errors.New("mismatch in doc ops")

	// ErrDeleteMismatch reports a delete whose text differs from the document.
	ErrDeleteMismatch = errors.New("to-be-deleted text is not at the cursor")

	// ErrApplyFinished reports a component following a retain line that
	// already reached the end of the document.
	ErrApplyFinished = errors.New("component after the end of the document")

	// ErrApplyOverrun reports a newline move past the last line.
	ErrApplyOverrun = errors.New("op runs past the last line")
)

// ComposeError is returned when two ops cannot be composed.
type ComposeError struct {
	A, B docop.DocOp
	Err  error
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("could not compose operations: a: %s b: %s: %v", e.A.Verbose(), e.B.Verbose(), e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// TransformError is returned when two concurrent ops cannot be transformed.
type TransformError struct {
	Client, Server docop.DocOp
	Err            error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("could not transform operations: client: %s server: %s: %v", e.Client.Verbose(), e.Server.Verbose(), e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// ApplyError is returned when an op does not fit the document it is applied
// to. Index is the position of the offending component.
type ApplyError struct {
	Op    docop.DocOp
	Index int
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("could not apply %s at component %d: %v", e.Op.Verbose(), e.Index, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// mismatchf returns an error wrapping ErrMismatch with details.
func mismatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMismatch, fmt.Sprintf(format, args...))
}
