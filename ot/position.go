package ot

import (
	"strings"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
)

// TransformPosition maps a position in the document before op to the
// matching position after op. Text inserted at the position pushes it
// forward; a position inside deleted text collapses to the start of the
// deletion.
func TransformPosition(op docop.DocOp, lineNumber, column int) document.Position {
	p := document.Position{Line: lineNumber, Column: column}

	// from walks the document before op, to walks it after op.
	var from, to document.Position

	// relative places p, which lies on or after from, relative to to.
	relative := func() document.Position {
		if p.Line == from.Line {
			return document.Position{Line: to.Line, Column: to.Column + p.Column - from.Column}
		}
		return document.Position{Line: to.Line + p.Line - from.Line, Column: p.Column}
	}

	for _, c := range op {
		switch c.Kind {
		case docop.Retain:
			end := document.Position{Line: from.Line, Column: from.Column + c.Count}
			if c.TrailingNewline {
				end = document.Position{Line: from.Line + 1}
			}
			if before(p, end) {
				return relative()
			}
			from = end
			if c.TrailingNewline {
				to = document.Position{Line: to.Line + 1}
			} else {
				to.Column += c.Count
			}

		case docop.RetainLine:
			end := document.Position{Line: from.Line + c.LineCount}
			if before(p, end) {
				return relative()
			}
			from = end
			to = document.Position{Line: to.Line + c.LineCount}

		case docop.Insert:
			to = advance(to, c.Text)

		case docop.Delete:
			end := advance(from, c.Text)
			if before(p, end) {
				return to
			}
			from = end
		}
	}

	return relative()
}

func before(a, b document.Position) bool {
	return a.Line < b.Line || a.Line == b.Line && a.Column < b.Column
}

// advance moves pos past text, which holds at most one trailing newline.
func advance(pos document.Position, text string) document.Position {
	if strings.HasSuffix(text, "\n") {
		return document.Position{Line: pos.Line + 1}
	}
	return document.Position{Line: pos.Line, Column: pos.Column + len(text)}
}
