package document

import (
	"fmt"
	"strings"
)

// ChangeType is the kind of mutation a TextChange describes.
type ChangeType uint8

const (
	ChangeInsert ChangeType = iota
	ChangeDelete
)

// String returns the change type name.
func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// TextChange describes a single mutation that was made to a document.
type TextChange struct {
	Type ChangeType

	// Line is the line that received the change, LineNumber its index.
	Line       *Line
	LineNumber int
	Column     int

	// LastLine is the last line created or mutated by the change. For
	// deletions it is the same as Line.
	LastLine       *Line
	LastLineNumber int

	// Text is the inserted or deleted text.
	Text string
}

// NewInsertion returns a TextChange for text inserted at (lineNumber, column).
func NewInsertion(line *Line, lineNumber, column int, lastLine *Line, lastLineNumber int, text string) TextChange {
	return TextChange{
		Type:           ChangeInsert,
		Line:           line,
		LineNumber:     lineNumber,
		Column:         column,
		LastLine:       lastLine,
		LastLineNumber: lastLineNumber,
		Text:           text,
	}
}

// NewDeletion returns a TextChange for text deleted at (lineNumber, column).
func NewDeletion(line *Line, lineNumber, column int, text string) TextChange {
	return TextChange{
		Type:           ChangeDelete,
		Line:           line,
		LineNumber:     lineNumber,
		Column:         column,
		LastLine:       line,
		LastLineNumber: lineNumber,
		Text:           text,
	}
}

// EndLineNumber returns the line holding the last inserted character, or the
// change's line for deletions.
func (c TextChange) EndLineNumber() int {
	if c.Type == ChangeDelete {
		return c.LineNumber
	}
	if strings.HasSuffix(c.Text, "\n") {
		return c.LastLineNumber - 1
	}
	return c.LastLineNumber
}

// EndColumn returns the inclusive column of the last inserted character on
// EndLineNumber, or the change's column for deletions.
func (c TextChange) EndColumn() int {
	if c.Type == ChangeDelete {
		return c.Column
	}
	if c.LineNumber == c.LastLineNumber {
		return c.Column + len(c.Text) - 1
	}
	if strings.HasSuffix(c.Text, "\n") {
		// The newline is the last character of the end line.
		rest := c.Text[:len(c.Text)-1]
		if i := strings.LastIndexByte(rest, '\n'); i >= 0 {
			return len(rest) - i - 1
		}
		return c.Column + len(rest)
	}
	return len(c.Text) - strings.LastIndexByte(c.Text, '\n') - 2
}

// String returns a short form such as "I(3, abc)".
func (c TextChange) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("I(%d, %s)", c.Column, c.Text)
	case ChangeDelete:
		return fmt.Sprintf("D(%d, %s)", c.Column, c.Text)
	default:
		return fmt.Sprintf("unknown change type %d", c.Type)
	}
}
