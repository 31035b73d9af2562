// Package document implements a line-addressable text buffer that reports
// every mutation as a TextChange.
//
// Each line keeps its trailing newline; the last line never has one. An empty
// document is a single empty line, and a document ending with "\n" has an
// empty last line.
package document

import (
	"slices"
	"strings"
)

// Line is a single line of a document, including its trailing newline.
type Line struct {
	text string
}

// Text returns the line's text.
func (l *Line) Text() string {
	return l.text
}

// HasNewline reports whether the line ends with "\n".
func (l *Line) HasNewline() bool {
	return strings.HasSuffix(l.text, "\n")
}

// Position is a (line, column) location in a document.
type Position struct {
	Line   int
	Column int
}

// Document is a mutable list of lines.
//
// Document is not safe for concurrent use.
type Document struct {
	lines     []*Line
	listeners *Registrar
}

// New returns an empty document.
func New() *Document {
	return &Document{
		lines:     []*Line{{}},
		listeners: NewRegistrar(),
	}
}

// FromString returns a document holding text.
func FromString(text string) *Document {
	doc := New()
	doc.lines = splitLines(text)
	return doc
}

//////////////////////
// Accessors
//////////////////////

// LineCount returns the number of lines.
func (doc *Document) LineCount() int {
	return len(doc.lines)
}

// LastLineNumber returns the index of the last line.
func (doc *Document) LastLineNumber() int {
	return len(doc.lines) - 1
}

// FirstLine returns the first line.
func (doc *Document) FirstLine() *Line {
	return doc.lines[0]
}

// LastLine returns the last line.
func (doc *Document) LastLine() *Line {
	return doc.lines[len(doc.lines)-1]
}

// Line returns the line at lineNumber, or nil when it does not exist.
func (doc *Document) Line(lineNumber int) *Line {
	if lineNumber < 0 || lineNumber >= len(doc.lines) {
		return nil
	}
	return doc.lines[lineNumber]
}

// LineText returns the text of the line at lineNumber, or "" when it does not
// exist.
func (doc *Document) LineText(lineNumber int) string {
	if line := doc.Line(lineNumber); line != nil {
		return line.text
	}
	return ""
}

// Text returns the whole content of the document.
func (doc *Document) Text() string {
	var sb strings.Builder
	for _, line := range doc.lines {
		sb.WriteString(line.text)
	}
	return sb.String()
}

// Listeners returns the registrar notified after each mutation.
func (doc *Document) Listeners() *Registrar {
	return doc.listeners
}

//////////////////////
// Mutations
//////////////////////

// InsertText inserts text at (lineNumber, column) and notifies listeners.
func (doc *Document) InsertText(lineNumber, column int, text string) (TextChange, error) {
	line := doc.Line(lineNumber)
	if line == nil {
		return TextChange{}, ErrLineOutOfRange
	}

	// A column may not point past the line's newline.
	limit := len(line.text)
	if line.HasNewline() {
		limit--
	}
	if column < 0 || column > limit {
		return TextChange{}, ErrColumnOutOfRange
	}

	if !strings.Contains(text, "\n") {
		line.text = line.text[:column] + text + line.text[column:]
		change := NewInsertion(line, lineNumber, column, line, lineNumber, text)
		doc.dispatch(change)
		return change, nil
	}

	pieces := strings.Split(text, "\n")
	head, tail := line.text[:column], line.text[column:]
	line.text = head + pieces[0] + "\n"

	added := make([]*Line, 0, len(pieces)-1)
	for _, piece := range pieces[1 : len(pieces)-1] {
		added = append(added, &Line{text: piece + "\n"})
	}
	last := &Line{text: pieces[len(pieces)-1] + tail}
	added = append(added, last)

	doc.lines = slices.Insert(doc.lines, lineNumber+1, added...)

	change := NewInsertion(line, lineNumber, column, last, lineNumber+len(added), text)
	doc.dispatch(change)
	return change, nil
}

// DeleteText deletes count characters starting at (lineNumber, column),
// joining lines when newlines are removed, and notifies listeners. Deleting
// zero characters changes nothing and notifies nobody.
func (doc *Document) DeleteText(lineNumber, column, count int) (TextChange, error) {
	line := doc.Line(lineNumber)
	if line == nil {
		return TextChange{}, ErrLineOutOfRange
	}
	if column < 0 || column > len(line.text) {
		return TextChange{}, ErrColumnOutOfRange
	}
	if count == 0 {
		return NewDeletion(line, lineNumber, column, ""), nil
	}

	var deleted strings.Builder
	remaining := count
	end := lineNumber
	endColumn := column
	for {
		available := len(doc.lines[end].text) - endColumn
		if remaining <= available {
			deleted.WriteString(doc.lines[end].text[endColumn : endColumn+remaining])
			endColumn += remaining
			break
		}
		deleted.WriteString(doc.lines[end].text[endColumn:])
		remaining -= available
		end++
		endColumn = 0
		if end >= len(doc.lines) {
			return TextChange{}, ErrDeleteOutOfRange
		}
	}

	// Consuming a line's newline joins the following line's remainder.
	if endColumn == len(doc.lines[end].text) && doc.lines[end].HasNewline() {
		end++
		endColumn = 0
	}
	line.text = line.text[:column] + doc.lines[end].text[endColumn:]
	doc.lines = slices.Delete(doc.lines, lineNumber+1, end+1)

	change := NewDeletion(line, lineNumber, column, deleted.String())
	doc.dispatch(change)
	return change, nil
}

func (doc *Document) dispatch(change TextChange) {
	doc.listeners.dispatch(doc, []TextChange{change})
}

// splitLines splits text into lines that keep their newline. The result
// always has at least one line.
func splitLines(text string) []*Line {
	pieces := strings.SplitAfter(text, "\n")
	lines := make([]*Line, len(pieces))
	for i, piece := range pieces {
		lines[i] = &Line{text: piece}
	}
	return lines
}
