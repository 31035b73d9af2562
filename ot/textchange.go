package ot

import (
	"strings"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
)

// FromTextChange converts a mutation into an op covering the whole document.
// doc must be the document as it is right after the change.
func FromTextChange(doc Lines, change document.TextChange) docop.DocOp {
	b := docop.NewBuilder(false)

	if change.LineNumber > 0 {
		b.RetainLine(change.LineNumber)
	}
	if change.Column > 0 {
		b.Retain(change.Column, false)
	}

	// One component per line of the changed text.
	pieces := strings.Split(change.Text, "\n")
	newlines := len(pieces) - 1
	emit := b.Insert
	if change.Type == document.ChangeDelete {
		emit = b.Delete
	}
	for _, piece := range pieces[:newlines] {
		emit(piece + "\n")
	}
	last := pieces[newlines]
	if last != "" {
		emit(last)
	}

	// Retain the rest of the last touched line.
	var remaining, touched int
	if change.Type == document.ChangeInsert {
		remaining = len(doc.LineText(change.LineNumber+newlines)) - len(last)
		if newlines == 0 {
			remaining -= change.Column
		}
		touched = newlines
	} else {
		remaining = len(doc.LineText(change.LineNumber)) - change.Column
	}
	remainingLines := doc.LineCount() - (change.LineNumber + touched + 1)

	if remaining > 0 {
		// Only the last line lacks a newline.
		b.Retain(remaining, remainingLines > 0)
	}

	switch {
	case remainingLines > 0:
		b.RetainLine(remainingLines)
	case lastLineEmpty(doc):
		// An empty last line after the change still needs covering.
		b.RetainLine(1)
	case change.Type == document.ChangeDelete && remaining == 0 && strings.HasSuffix(change.Text, "\n"):
		// So did the empty last line the document had before the delete.
		b.RetainLine(1)
	}

	return b.Build()
}

// FromTextChanges converts changes one by one against doc and composes the
// results. It returns nil when there are no changes. A document.Document
// reports one change per notification, for which doc is exact.
func FromTextChanges(doc Lines, changes []document.TextChange) (docop.DocOp, error) {
	var result docop.DocOp
	for i, change := range changes {
		op := FromTextChange(doc, change)
		if i == 0 {
			result = op
			continue
		}
		var err error
		if result, err = Compose(result, op); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func lastLineEmpty(doc Lines) bool {
	return doc.LineText(doc.LineCount()-1) == ""
}
