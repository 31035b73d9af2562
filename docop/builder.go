package docop

import "strings"

// Builder captures components one call at a time and assembles them into a
// DocOp.
//
// A compacting builder merges adjacent components of the same kind, except
// that a component ending a line is never extended. It also rewrites a line
// covered only by retains into a single RetainLine(1).
type Builder struct {
	compact bool
	ops     DocOp

	// cur is the component being accumulated; valid only when hasCur is set.
	cur    Component
	hasCur bool

	// curLineHasMutation is set once the current line has seen an insert or
	// delete that did not end it.
	curLineHasMutation bool
}

// NewBuilder returns a builder. When compact is false every call yields its
// own component.
func NewBuilder(compact bool) *Builder {
	return &Builder{compact: compact}
}

// Insert captures an Insert component.
func (b *Builder) Insert(text string) *Builder {
	b.commitIfRequired(Insert)
	b.cur.Kind = Insert
	b.cur.Text += text
	b.hasCur = true
	b.curLineHasMutation = !strings.HasSuffix(text, "\n")
	return b
}

// Delete captures a Delete component.
func (b *Builder) Delete(text string) *Builder {
	b.commitIfRequired(Delete)
	b.cur.Kind = Delete
	b.cur.Text += text
	b.hasCur = true
	b.curLineHasMutation = !strings.HasSuffix(text, "\n")
	return b
}

// Retain captures a Retain component.
func (b *Builder) Retain(count int, trailingNewline bool) *Builder {
	if b.compact && !b.curLineHasMutation && trailingNewline {
		// The line only had retains; a pending partial retain is subsumed.
		if b.hasCur && b.cur.Kind == Retain && !b.cur.TrailingNewline {
			b.discard()
		}
		return b.RetainLine(1)
	}

	b.commitIfRequired(Retain)
	b.cur.Kind = Retain
	b.cur.Count += count
	b.cur.TrailingNewline = trailingNewline
	b.hasCur = true
	if trailingNewline {
		b.curLineHasMutation = false
	}
	return b
}

// RetainLine captures a RetainLine component.
func (b *Builder) RetainLine(lineCount int) *Builder {
	b.commitIfRequired(RetainLine)
	b.cur.Kind = RetainLine
	b.cur.LineCount += lineCount
	b.hasCur = true
	b.curLineHasMutation = false
	return b
}

// Component captures c through the method matching its kind.
func (b *Builder) Component(c Component) *Builder {
	switch c.Kind {
	case Insert:
		return b.Insert(c.Text)
	case Delete:
		return b.Delete(c.Text)
	case Retain:
		return b.Retain(c.Count, c.TrailingNewline)
	case RetainLine:
		return b.RetainLine(c.LineCount)
	}
	return b
}

// Build commits the pending component and returns the op. The builder is
// reset and may be reused.
func (b *Builder) Build() DocOp {
	b.commit()
	op := b.ops
	if op == nil {
		op = DocOp{}
	}
	b.ops = nil
	b.curLineHasMutation = false
	return op
}

// Len returns the number of components captured so far, counting a pending one.
func (b *Builder) Len() int {
	if b.hasCur {
		return len(b.ops) + 1
	}
	return len(b.ops)
}

func (b *Builder) commitIfRequired(next Kind) {
	if !b.hasCur {
		return
	}
	if !b.compact || b.cur.Kind != next || b.cur.EndsLine() && b.cur.Kind != RetainLine {
		b.commit()
	}
}

func (b *Builder) commit() {
	if !b.hasCur {
		return
	}
	b.ops = append(b.ops, b.cur)
	b.discard()
}

func (b *Builder) discard() {
	b.cur = Component{}
	b.hasCur = false
}
