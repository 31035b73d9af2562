package docop

// Invert returns the op that undoes op: inserts become deletes of the same
// text and vice versa. Retains keep their counts and newline flags, since a
// retained span has the same extent before and after op.
func Invert(op DocOp) DocOp {
	inverted := make(DocOp, len(op))
	for i, c := range op {
		switch c.Kind {
		case Insert:
			inverted[i] = NewDelete(c.Text)
		case Delete:
			inverted[i] = NewInsert(c.Text)
		default:
			inverted[i] = c
		}
	}
	return inverted
}
