package ot

import (
	"strings"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
)

// Lines is a read-only view of a line-oriented document. Line texts include
// their trailing newline.
type Lines interface {
	LineCount() int
	LineText(lineNumber int) string
}

// Mutator performs the edits an op describes.
type Mutator interface {
	InsertText(lineNumber, column int, text string) (document.TextChange, error)
	DeleteText(lineNumber, column, count int) (document.TextChange, error)
}

// Document is a document that can be read and mutated.
type Document interface {
	Lines
	Mutator
}

// Apply applies op to doc and returns the resulting text changes in order.
//
// On error no changes are returned, but the document keeps the mutations made
// by the components before the failing one; callers are expected to
// resynchronize.
func Apply(op docop.DocOp, doc Document) ([]document.TextChange, error) {
	return ApplyWithMutator(op, doc, doc)
}

// ApplyWithMutator is like Apply but routes the edits through m. The cursor
// is tracked against lines, which must reflect m's edits.
func ApplyWithMutator(op docop.DocOp, lines Lines, m Mutator) ([]document.TextChange, error) {
	a := &applier{op: op, lines: lines, mutator: m}
	if err := a.apply(); err != nil {
		return nil, &ApplyError{Op: op, Index: a.index, Err: err}
	}
	return a.changes, nil
}

type applier struct {
	op      docop.DocOp
	lines   Lines
	mutator Mutator

	index      int
	lineNumber int
	column     int

	// finished is set once a retain line has covered the last line.
	finished bool

	changes []document.TextChange
}

func (a *applier) apply() error {
	for ; a.index < len(a.op); a.index++ {
		if a.finished {
			return ErrApplyFinished
		}

		var err error
		switch c := a.op[a.index]; c.Kind {
		case docop.Insert:
			err = a.insert()
		case docop.Delete:
			err = a.delete()
		case docop.Retain:
			err = a.retain(c)
		case docop.RetainLine:
			a.retainLine(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// insert coalesces a run of inserts into a single mutation.
func (a *applier) insert() error {
	var text strings.Builder
	newlines := 0
	column := a.column

	for {
		piece := a.op[a.index].Text
		text.WriteString(piece)
		if strings.HasSuffix(piece, "\n") {
			newlines++
			column = 0
		} else {
			column += len(piece)
		}

		if a.index+1 >= len(a.op) || a.op[a.index+1].Kind != docop.Insert {
			break
		}
		a.index++
	}

	change, err := a.mutator.InsertText(a.lineNumber, a.column, text.String())
	if err != nil {
		return err
	}
	a.changes = append(a.changes, change)

	for ; newlines > 0; newlines-- {
		if err := a.nextLine(); err != nil {
			return err
		}
	}
	a.column = column
	return nil
}

// delete coalesces a run of deletes into a single mutation.
func (a *applier) delete() error {
	var text strings.Builder
	text.WriteString(a.op[a.index].Text)
	for a.index+1 < len(a.op) && a.op[a.index+1].Kind == docop.Delete {
		a.index++
		text.WriteString(a.op[a.index].Text)
	}

	deleted := text.String()
	if textAt(a.lines, a.lineNumber, a.column, len(deleted)) != deleted {
		return ErrDeleteMismatch
	}

	change, err := a.mutator.DeleteText(a.lineNumber, a.column, len(deleted))
	if err != nil {
		return err
	}
	a.changes = append(a.changes, change)
	return nil
}

func (a *applier) retain(c docop.Component) error {
	if c.TrailingNewline {
		return a.nextLine()
	}
	a.column += c.Count
	return nil
}

func (a *applier) retainLine(c docop.Component) {
	next := a.lineNumber + c.LineCount
	if next < a.lines.LineCount() {
		a.lineNumber = next
		a.column = 0
		return
	}
	// The whole document has been spanned.
	a.finished = true
}

func (a *applier) nextLine() error {
	if a.lineNumber+1 >= a.lines.LineCount() {
		return ErrApplyOverrun
	}
	a.lineNumber++
	a.column = 0
	return nil
}

// textAt returns up to n characters starting at (lineNumber, column),
// continuing onto following lines.
func textAt(lines Lines, lineNumber, column, n int) string {
	var sb strings.Builder
	for n > 0 && lineNumber < lines.LineCount() {
		text := lines.LineText(lineNumber)
		if column > len(text) {
			break
		}
		chunk := text[column:]
		if len(chunk) > n {
			chunk = chunk[:n]
		}
		sb.WriteString(chunk)
		n -= len(chunk)
		lineNumber++
		column = 0
	}
	return sb.String()
}
