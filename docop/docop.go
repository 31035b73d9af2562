package docop

import (
	"strconv"
	"strings"
)

// DocOp is an ordered list of components.
type DocOp []Component

// String returns the terse form of the op, for example "R(1)I(1)R(2\n)RL(1)".
func (op DocOp) String() string {
	var sb strings.Builder
	for _, c := range op {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Verbose returns the op with component texts spelled out.
func (op DocOp) Verbose() string {
	var sb strings.Builder
	for _, c := range op {
		sb.WriteString(c.Verbose())
	}
	return sb.String()
}

// ContainsMutation reports whether applying the op would change the text of a
// document.
func (op DocOp) ContainsMutation() bool {
	for _, c := range op {
		if c.IsMutation() {
			return true
		}
	}
	return false
}

// Equal reports whether both ops have the same components in the same order.
func (op DocOp) Equal(other DocOp) bool {
	if len(op) != len(other) {
		return false
	}
	for i := range op {
		if op[i] != other[i] {
			return false
		}
	}
	return true
}

// ContainsMutation reports whether any of the ops would change document text.
func ContainsMutation(ops ...DocOp) bool {
	for _, op := range ops {
		if op.ContainsMutation() {
			return true
		}
	}
	return false
}

// FormatList renders ops as "[op1,op2,...]", used in error messages.
func FormatList(ops []DocOp, verbose bool) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte(',')
		}
		if verbose {
			sb.WriteString(op.Verbose())
		} else {
			sb.WriteString(op.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Stats summarizes the extent of an op.
type Stats struct {
	Inserted      int // characters inserted
	Deleted       int // characters deleted
	Retained      int // characters retained by Retain components
	RetainedLines int // lines retained by RetainLine components
}

// Stats counts the characters and lines each component kind touches.
func (op DocOp) Stats() Stats {
	var s Stats
	for _, c := range op {
		switch c.Kind {
		case Insert:
			s.Inserted += len(c.Text)
		case Delete:
			s.Deleted += len(c.Text)
		case Retain:
			s.Retained += c.Count
		case RetainLine:
			s.RetainedLines += c.LineCount
		}
	}
	return s
}
