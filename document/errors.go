package document

import "errors"

var (
	// ErrLineOutOfRange is returned for a line number outside the document.
	ErrLineOutOfRange = errors.New("line number out of range")

	// ErrColumnOutOfRange is returned for a column past the end of its line.
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrDeleteOutOfRange is returned when a delete runs past the end of the
	// document.
	ErrDeleteOutOfRange = errors.New("delete count runs past the end of the document")
)
