// Package docop defines document operations: ordered lists of components that
// walk a line-oriented text document from its start to its end.
//
// # Components
//
// A DocOp is built from four component kinds:
//
//   - Insert adds text at the cursor.
//   - Delete removes text at the cursor; the text must match the document.
//   - Retain skips a number of characters on the current line. When it has a
//     trailing newline the count includes the newline and the cursor moves to
//     the start of the next line.
//   - RetainLine skips whole lines, including a partially consumed current line.
//
// Text carried by Insert and Delete spans at most one line: a newline can only
// appear as the final character.
//
// A well-formed op covers the whole document. A document ending with an empty
// line must be covered by a trailing RetainLine for that line.
//
// # Building
//
// Ops are normally assembled with a Builder, which can compact adjacent
// components of the same kind while keeping the one-line-per-component rule.
package docop
