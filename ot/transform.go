package ot

import (
	"strings"

	"github.com/burntcarrot/otpad/docop"
)

// OperationPair holds the two results of a transformation. Client applies
// after the server op, Server applies after the client op.
type OperationPair struct {
	Client docop.DocOp
	Server docop.DocOp
}

// Transform rewrites two concurrent ops that apply to the same document so
// that client' applies after server and server' applies after client, with
// both orders producing the same text. When both sides insert at the same
// place, the client's text comes first.
func Transform(client, server docop.DocOp) (OperationPair, error) {
	pair, err := transform(client, server)
	if err != nil {
		return OperationPair{}, &TransformError{Client: client, Server: server, Err: err}
	}
	return pair, nil
}

// procKind identifies what a side is currently processing.
type procKind uint8

const (
	procInsert procKind = iota
	procDelete
	procRetain
	procRetainLine
	procFinished
)

// processor holds the unconsumed part of a component.
type processor struct {
	kind            procKind
	text            string
	count           int
	trailingNewline bool
	lineCount       int

	// substitute counts characters a retain line has covered on its current
	// line, for when the line must be spelled out as a retain.
	substitute int
}

func newProcessor(c docop.Component) *processor {
	switch c.Kind {
	case docop.Insert:
		return &processor{kind: procInsert, text: c.Text}
	case docop.Delete:
		return &processor{kind: procDelete, text: c.Text}
	case docop.Retain:
		return &processor{kind: procRetain, count: c.Count, trailingNewline: c.TrailingNewline}
	default:
		return &processor{kind: procRetainLine, lineCount: c.LineCount}
	}
}

// side is one of the two ops being transformed, together with its output.
type side struct {
	components docop.DocOp
	next       int
	out        *docop.Builder
	proc       *processor

	// exhausted is set once every component has been consumed.
	exhausted bool

	// done marks the current processor as fully consumed this round.
	done bool

	// insertedNewline is set when this round consumed an insert ending with a
	// newline; prevInsertedNewline carries it into the following round.
	insertedNewline     bool
	prevInsertedNewline bool
}

func (s *side) load() {
	if s.proc != nil {
		return
	}
	if s.next < len(s.components) {
		s.proc = newProcessor(s.components[s.next])
		s.next++
		return
	}
	s.proc = &processor{kind: procFinished}
	s.exhausted = true
}

func (s *side) endRound() {
	if s.done {
		s.proc = nil
	}
	s.prevInsertedNewline = s.insertedNewline
	s.insertedNewline = false
	s.done = false
}

func transform(clientOp, serverOp docop.DocOp) (OperationPair, error) {
	client := &side{components: clientOp, out: docop.NewBuilder(true)}
	server := &side{components: serverOp, out: docop.NewBuilder(true)}

	for !client.exhausted || !server.exhausted {
		client.load()
		server.load()

		if !client.exhausted || !server.exhausted {
			if err := dispatch(client, server); err != nil {
				return OperationPair{}, err
			}
		}

		client.endRound()
		server.endRound()
	}

	return OperationPair{Client: client.out.Build(), Server: server.out.Build()}, nil
}

// dispatch lets mine's processor consume against other's. Combinations that
// one kind handles on behalf of the other are handed over by swapping the
// arguments.
func dispatch(mine, other *side) error {
	switch mine.proc.kind {
	case procInsert:
		if other.proc.kind == procRetainLine {
			return dispatch(other, mine)
		}
		// Whichever side is mine goes first on insert-insert ties.
		performInsert(mine, other)

	case procDelete:
		switch other.proc.kind {
		case procDelete:
			deleteDelete(mine, other)
		case procRetain:
			deleteRetain(mine, other)
		case procFinished:
			return mismatchf("cannot delete if the other side is finished")
		default:
			return dispatch(other, mine)
		}

	case procRetain:
		switch other.proc.kind {
		case procRetain:
			retainRetain(mine, other)
		case procFinished:
			return mismatchf("cannot retain if the other side is finished")
		default:
			return dispatch(other, mine)
		}

	case procRetainLine:
		switch other.proc.kind {
		case procDelete:
			retainLineDelete(mine, other)
		case procInsert:
			retainLineInsert(mine, other)
		case procRetain:
			retainLineRetain(mine, other)
		case procRetainLine:
			retainLineRetainLine(mine, other)
		case procFinished:
			return retainLineFinished(mine, other)
		}

	case procFinished:
		if other.proc.kind == procFinished {
			return mismatchf("both sides are finished")
		}
		return dispatch(other, mine)
	}
	return nil
}

// performInsert emits mine's insert and makes other's output retain it.
func performInsert(mine, other *side) {
	text := mine.proc.text
	nl := strings.HasSuffix(text, "\n")

	mine.out.Insert(text)
	other.out.Retain(len(text), nl)
	if nl {
		mine.insertedNewline = true
	}
	mine.done = true
}

// deleteDelete cancels the text both sides delete; neither output sees it.
func deleteDelete(mine, other *side) {
	switch a, b := len(mine.proc.text), len(other.proc.text); {
	case a == b:
		mine.done = true
		other.done = true
	case a < b:
		other.proc.text = other.proc.text[a:]
		mine.done = true
	default:
		mine.proc.text = mine.proc.text[b:]
		other.done = true
	}
}

// deleteRetain deletes as much of mine's text as other retains.
func deleteRetain(mine, other *side) {
	n := min(len(mine.proc.text), other.proc.count)
	other.proc.count -= n

	mine.out.Delete(mine.proc.text[:n])
	if n == len(mine.proc.text) {
		mine.done = true
	}
	mine.proc.text = mine.proc.text[n:]

	if other.proc.count == 0 {
		other.done = true
	}
}

// retainRetain retains the overlap on both sides. Only a fully consumed
// retain keeps its newline.
func retainRetain(mine, other *side) {
	n := min(mine.proc.count, other.proc.count)
	mine.proc.count = performRetain(mine, n)
	other.proc.count = performRetain(other, n)
}

func performRetain(s *side, n int) int {
	full := s.proc.count
	s.out.Retain(n, full == n && s.proc.trailingNewline)
	if full == n {
		s.done = true
	}
	return full - n
}

func retainLineDelete(mine, other *side) {
	text := other.proc.text
	other.out.Delete(text)
	if strings.HasSuffix(text, "\n") {
		mine.otherLineEnd(false)
	}
	other.done = true
}

func retainLineInsert(mine, other *side) {
	text := other.proc.text
	other.out.Insert(text)

	if strings.HasSuffix(text, "\n") {
		// Retain the line the other side just inserted.
		mine.proc.lineCount++
		mine.otherLineEnd(true)
		other.insertedNewline = true
	} else {
		mine.proc.substitute += len(text)
	}
	other.done = true
}

func retainLineRetain(mine, other *side) {
	other.out.Retain(other.proc.count, other.proc.trailingNewline)
	mine.proc.substitute += other.proc.count
	if other.proc.trailingNewline {
		mine.otherLineEnd(true)
	}
	other.done = true
}

func retainLineRetainLine(mine, other *side) {
	n := min(mine.proc.lineCount, other.proc.lineCount)

	mine.out.RetainLine(n)
	mine.proc.lineCount -= n
	other.out.RetainLine(n)
	other.proc.lineCount -= n

	if mine.proc.lineCount == 0 {
		mine.done = true
	}
	if other.proc.lineCount == 0 {
		other.done = true
	}
}

func retainLineFinished(mine, other *side) error {
	if mine.proc.lineCount != 1 {
		return mismatchf("cannot retain %d lines if the other side is finished", mine.proc.lineCount)
	}
	if mine.prevInsertedNewline {
		other.out.RetainLine(1)
	}
	mine.proc.lineCount = 0
	mine.out.RetainLine(1)
	mine.done = true
	return nil
}

// otherLineEnd closes one of the lines s's retain line covers, after the
// other side finished that line. When the line's newline was deleted its
// surviving characters must be spelled out as a retain.
func (s *side) otherLineEnd(canUseRetainLine bool) {
	if canUseRetainLine {
		s.out.RetainLine(1)
	} else if s.proc.substitute > 0 {
		s.out.Retain(s.proc.substitute, false)
	}

	s.proc.lineCount--
	s.proc.substitute = 0
	if s.proc.lineCount == 0 {
		s.done = true
	}
}
