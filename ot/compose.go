package ot

import (
	"strings"

	"github.com/burntcarrot/otpad/docop"
)

// Compose returns a single op equivalent to applying a and then b.
//
// The composition walks both ops with a state machine. While processing A,
// the state holds the outstanding part of a B component; while processing B,
// it holds the outstanding part of an A component. A deletes pass through
// untouched since B never saw that text, and B inserts pass through since A
// never saw them.
func Compose(a, b docop.DocOp) (docop.DocOp, error) {
	return compose(a, b, false)
}

// ComposeAll folds ops left to right into one op. It returns nil for no ops.
func ComposeAll(ops ...docop.DocOp) (docop.DocOp, error) {
	if len(ops) == 0 {
		return nil, nil
	}
	result := ops[0]
	for _, op := range ops[1:] {
		var err error
		if result, err = Compose(result, op); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// compose runs the state machine. With seedFromB set, the machine starts in
// the processing-A state matching B's first component instead of the idle
// state; both paths must produce the same op.
func compose(a, b docop.DocOp, seedFromB bool) (docop.DocOp, error) {
	c := &composer{out: docop.NewBuilder(true)}
	op, err := c.run(a, b, seedFromB)
	if err != nil {
		return nil, &ComposeError{A: a, B: b, Err: err}
	}
	return op, nil
}

type composer struct {
	out   *docop.Builder
	state composeState

	// lastOfA and lastOfB are set while the last component of the respective
	// op is being processed. A last component can finish a retain line even
	// when it does not end with a newline.
	lastOfA bool
	lastOfB bool
}

type composeState interface {
	insert(text string) error
	delete(text string) error
	retain(count int, trailingNewline bool) error
	retainLine(lineCount int) error
	processingB() bool
}

func (c *composer) run(a, b docop.DocOp, seedFromB bool) (docop.DocOp, error) {
	var aIndex, bIndex int

	// There is no processing-A state for a B insert; the idle state handles it.
	if seedFromB && len(a) > 0 && len(b) > 0 && b[0].Kind != docop.Insert {
		c.state = c.stateForB(b[0])
		bIndex++
	} else {
		c.state = idle{c}
	}
	c.lastOfB = bIndex == len(b)

	for aIndex < len(a) {
		c.lastOfA = aIndex == len(a)-1
		if err := accept(c.state, a[aIndex]); err != nil {
			return nil, err
		}
		aIndex++

		for c.state.processingB() && !c.aFinished() {
			if bIndex >= len(b) {
				if c.aRetainingEmptyLastLine(b) {
					c.state = idle{c}
					break
				}
				return nil, mismatchf("b ran out of components")
			}
			c.lastOfB = bIndex == len(b)-1
			if err := accept(c.state, b[bIndex]); err != nil {
				return nil, err
			}
			bIndex++
		}
	}

	if !c.isIdle() && !c.aFinished() && !c.bRetainingRestOfLastLine() {
		return nil, mismatchf("invalid state after a")
	}

	if bIndex < len(b) {
		if c.isIdle() {
			c.state = &bForAFinished{composer: c}
		}
		for bIndex < len(b) {
			c.lastOfB = bIndex == len(b)-1
			if err := accept(c.state, b[bIndex]); err != nil {
				return nil, err
			}
			bIndex++
		}
	}

	return c.out.Build(), nil
}

func (c *composer) stateForB(comp docop.Component) composeState {
	switch comp.Kind {
	case docop.Delete:
		return &aForBDelete{composer: c, text: comp.Text}
	case docop.Retain:
		return &aForBRetain{composer: c, count: comp.Count, trailingNewline: comp.TrailingNewline}
	case docop.RetainLine:
		return &aForBRetainLine{composer: c, lineCount: comp.LineCount}
	default:
		return idle{c}
	}
}

func (c *composer) isIdle() bool {
	_, ok := c.state.(idle)
	return ok
}

func (c *composer) aFinished() bool {
	_, ok := c.state.(*bForAFinished)
	return ok
}

// bRetainingRestOfLastLine reports whether B ends with a RetainLine(1) that
// covers the rest of A's last line.
func (c *composer) bRetainingRestOfLastLine() bool {
	s, ok := c.state.(*aForBRetainLine)
	return ok && c.lastOfA && c.lastOfB && s.lineCount == 1
}

// aRetainingEmptyLastLine reports whether A's last RetainLine has a single
// line left after B stopped on a line boundary. That line is the empty last
// line of A's result, which B is allowed to leave uncovered, like the
// trailing RetainLine(1) the idle state drops.
func (c *composer) aRetainingEmptyLastLine(b docop.DocOp) bool {
	s, ok := c.state.(*bForARetainLine)
	return ok && c.lastOfA && s.lineCount == 1 && len(b) > 0 && b[len(b)-1].EndsLine()
}

func (c *composer) afterAInsertOrRetainAndBRetainLine(remaining int) {
	switch {
	case c.lastOfA:
		c.afterLastOfAAndBRetainLine(remaining)
	case remaining == 0:
		c.state = idle{c}
	default:
		c.state = &aForBRetainLine{composer: c, lineCount: remaining}
	}
}

func (c *composer) afterLastOfAAndBRetainLine(remaining int) {
	switch remaining {
	case 0:
		c.state = &bForAFinished{composer: c}
	case 1:
		c.state = &bForAFinished{composer: c, usedRetainLine: true}
	default:
		// Invalid; reported once A is exhausted.
		c.state = &aForBRetainLine{composer: c, lineCount: remaining}
	}
}

func accept(s composeState, comp docop.Component) error {
	switch comp.Kind {
	case docop.Insert:
		return s.insert(comp.Text)
	case docop.Delete:
		return s.delete(comp.Text)
	case docop.Retain:
		return s.retain(comp.Count, comp.TrailingNewline)
	case docop.RetainLine:
		return s.retainLine(comp.LineCount)
	default:
		return mismatchf("unknown component kind %d", comp.Kind)
	}
}

//////////////////////
// Processing A
//////////////////////

// idle is the state between components.
type idle struct {
	*composer
}

func (s idle) insert(text string) error {
	s.state = &bForAInsert{composer: s.composer, text: text}
	return nil
}

func (s idle) delete(text string) error {
	s.out.Delete(text)
	return nil
}

func (s idle) retain(count int, trailingNewline bool) error {
	s.state = &bForARetain{composer: s.composer, count: count, trailingNewline: trailingNewline}
	return nil
}

func (s idle) retainLine(lineCount int) error {
	// A trailing RetainLine(1) that matches nothing in B.
	if s.lastOfB && lineCount == 1 && s.lastOfA {
		return nil
	}
	s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount}
	return nil
}

func (idle) processingB() bool { return false }

// aForBDelete holds the outstanding text of a B delete.
type aForBDelete struct {
	*composer
	text string
}

func (s *aForBDelete) insert(text string) error {
	if len(text) <= len(s.text) {
		s.cancel(len(text))
	} else {
		s.state = &bForAInsert{composer: s.composer, text: text[len(s.text):]}
	}
	return nil
}

func (s *aForBDelete) delete(text string) error {
	s.out.Delete(text)
	return nil
}

func (s *aForBDelete) retain(count int, trailingNewline bool) error {
	if count <= len(s.text) {
		s.out.Delete(s.text[:count])
		s.cancel(count)
	} else {
		s.out.Delete(s.text)
		s.state = &bForARetain{composer: s.composer, count: count - len(s.text), trailingNewline: trailingNewline}
	}
	return nil
}

func (s *aForBDelete) retainLine(lineCount int) error {
	s.out.Delete(s.text)

	if strings.HasSuffix(s.text, "\n") || s.lastOfB {
		// The delete finishes a line of A's retain line.
		if lineCount == 1 {
			s.state = idle{s.composer}
		} else {
			s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount - 1}
		}
	} else {
		s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount}
	}
	return nil
}

func (s *aForBDelete) processingB() bool { return false }

func (s *aForBDelete) cancel(count int) {
	if count < len(s.text) {
		s.text = s.text[count:]
	} else {
		s.state = idle{s.composer}
	}
}

// aForBRetain holds the outstanding count of a B retain.
type aForBRetain struct {
	*composer
	count           int
	trailingNewline bool
}

func (s *aForBRetain) insert(text string) error {
	if len(text) <= s.count {
		s.out.Insert(text)
		s.cancel(len(text))
	} else {
		s.out.Insert(text[:s.count])
		s.state = &bForAInsert{composer: s.composer, text: text[s.count:]}
	}
	return nil
}

func (s *aForBRetain) delete(text string) error {
	s.out.Delete(text)
	return nil
}

func (s *aForBRetain) retain(count int, trailingNewline bool) error {
	if count <= s.count {
		s.out.Retain(count, trailingNewline)
		s.cancel(count)
	} else {
		s.out.Retain(s.count, s.trailingNewline)
		s.state = &bForARetain{composer: s.composer, count: count - s.count, trailingNewline: trailingNewline}
	}
	return nil
}

func (s *aForBRetain) retainLine(lineCount int) error {
	s.out.Retain(s.count, s.trailingNewline)

	if s.trailingNewline || s.lastOfB {
		if lineCount == 1 {
			s.state = idle{s.composer}
		} else {
			s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount - 1}
		}
	} else {
		s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount}
	}
	return nil
}

func (s *aForBRetain) processingB() bool { return false }

func (s *aForBRetain) cancel(count int) {
	if count < s.count {
		s.count -= count
	} else {
		s.state = idle{s.composer}
	}
}

// aForBRetainLine holds the outstanding line count of a B retain line.
type aForBRetainLine struct {
	*composer
	lineCount int
}

func (s *aForBRetainLine) insert(text string) error {
	s.out.Insert(text)

	nl := strings.HasSuffix(text, "\n")
	if nl || s.lastOfA {
		s.cancelLines(1, nl)
	}
	return nil
}

func (s *aForBRetainLine) delete(text string) error {
	s.out.Delete(text)
	return nil
}

func (s *aForBRetainLine) retain(count int, trailingNewline bool) error {
	s.out.Retain(count, trailingNewline)

	if trailingNewline || s.lastOfA {
		s.cancelLines(1, trailingNewline)
	}
	return nil
}

func (s *aForBRetainLine) retainLine(lineCount int) error {
	n := min(lineCount, s.lineCount)
	s.out.RetainLine(n)

	switch {
	case lineCount == s.lineCount:
		s.state = idle{s.composer}
	case lineCount == n:
		s.cancelLines(n, true)
	default:
		s.state = &bForARetainLine{composer: s.composer, lineCount: lineCount - n}
	}
	return nil
}

func (s *aForBRetainLine) processingB() bool { return false }

func (s *aForBRetainLine) cancelLines(lines int, newline bool) {
	if newline {
		s.lineCount -= lines
	}
	if s.lastOfA {
		s.afterLastOfAAndBRetainLine(s.lineCount)
	} else if s.lineCount == 0 {
		s.state = idle{s.composer}
	}
}

//////////////////////
// Processing B
//////////////////////

// bForAFinished consumes B components left over after A ran out. Only a
// single RetainLine(1) is acceptable there.
type bForAFinished struct {
	*composer

	// usedRetainLine is set once B has used a RetainLine(1) to cover text left
	// on A's last line.
	usedRetainLine bool
}

func (s *bForAFinished) insert(text string) error {
	s.out.Insert(text)
	return nil
}

func (s *bForAFinished) delete(string) error {
	return mismatchf("a finished, b cannot have a delete")
}

func (s *bForAFinished) retain(int, bool) error {
	return mismatchf("a finished, b cannot have a retain")
}

func (s *bForAFinished) retainLine(lineCount int) error {
	if lineCount != 1 || s.usedRetainLine {
		return mismatchf("a finished, b cannot have a retain line")
	}
	s.out.RetainLine(1)
	s.usedRetainLine = true
	return nil
}

func (s *bForAFinished) processingB() bool { return true }

// bForAInsert holds the outstanding text of an A insert.
type bForAInsert struct {
	*composer
	text string
}

func (s *bForAInsert) insert(text string) error {
	s.out.Insert(text)
	return nil
}

func (s *bForAInsert) delete(text string) error {
	if len(text) <= len(s.text) {
		s.cancel(len(text))
	} else {
		s.state = &aForBDelete{composer: s.composer, text: text[len(s.text):]}
	}
	return nil
}

func (s *bForAInsert) retain(count int, trailingNewline bool) error {
	if count <= len(s.text) {
		s.out.Insert(s.text[:count])
		s.cancel(count)
	} else {
		s.out.Insert(s.text)
		s.state = &aForBRetain{composer: s.composer, count: count - len(s.text), trailingNewline: trailingNewline}
	}
	return nil
}

func (s *bForAInsert) retainLine(lineCount int) error {
	s.out.Insert(s.text)
	if strings.HasSuffix(s.text, "\n") {
		lineCount--
	}
	s.afterAInsertOrRetainAndBRetainLine(lineCount)
	return nil
}

func (s *bForAInsert) processingB() bool { return true }

func (s *bForAInsert) cancel(count int) {
	if count < len(s.text) {
		s.text = s.text[count:]
	} else {
		s.state = idle{s.composer}
	}
}

// bForARetain holds the outstanding count of an A retain.
type bForARetain struct {
	*composer
	count           int
	trailingNewline bool
}

func (s *bForARetain) insert(text string) error {
	s.out.Insert(text)
	return nil
}

func (s *bForARetain) delete(text string) error {
	if len(text) <= s.count {
		s.out.Delete(text)
		s.cancel(len(text))
	} else {
		s.out.Delete(text[:s.count])
		s.state = &aForBDelete{composer: s.composer, text: text[s.count:]}
	}
	return nil
}

func (s *bForARetain) retain(count int, trailingNewline bool) error {
	if count <= s.count {
		s.out.Retain(count, trailingNewline)
		s.cancel(count)
	} else {
		s.out.Retain(s.count, s.trailingNewline)
		s.state = &aForBRetain{composer: s.composer, count: count - s.count, trailingNewline: trailingNewline}
	}
	return nil
}

func (s *bForARetain) retainLine(lineCount int) error {
	if lineCount <= 0 {
		return mismatchf("retain line of %d lines", lineCount)
	}
	s.out.Retain(s.count, s.trailingNewline)
	if s.trailingNewline {
		lineCount--
	}
	s.afterAInsertOrRetainAndBRetainLine(lineCount)
	return nil
}

func (s *bForARetain) processingB() bool { return true }

func (s *bForARetain) cancel(count int) {
	if count < s.count {
		s.count -= count
	} else {
		s.state = idle{s.composer}
	}
}

// bForARetainLine holds the outstanding line count of an A retain line.
type bForARetainLine struct {
	*composer
	lineCount int
}

func (s *bForARetainLine) insert(text string) error {
	s.out.Insert(text)
	if s.lastOfB {
		s.cancelLines(1)
	}
	return nil
}

func (s *bForARetainLine) delete(text string) error {
	s.out.Delete(text)
	if strings.HasSuffix(text, "\n") || s.lastOfB {
		s.cancelLines(1)
	}
	return nil
}

func (s *bForARetainLine) retain(count int, trailingNewline bool) error {
	s.out.Retain(count, trailingNewline)
	if trailingNewline || s.lastOfB {
		s.cancelLines(1)
	}
	return nil
}

func (s *bForARetainLine) retainLine(lineCount int) error {
	n := min(lineCount, s.lineCount)
	s.out.RetainLine(n)

	switch {
	case lineCount == s.lineCount:
		s.state = idle{s.composer}
	case lineCount == n:
		s.cancelLines(n)
	default:
		s.state = &aForBRetainLine{composer: s.composer, lineCount: lineCount - n}
	}
	return nil
}

func (s *bForARetainLine) processingB() bool { return true }

func (s *bForARetainLine) cancelLines(lines int) {
	s.lineCount -= lines
	if s.lineCount == 0 {
		s.state = idle{s.composer}
	}
}
