package docop

import "strings"

// Kind identifies a component variant.
type Kind uint8

const (
	Insert Kind = iota
	Delete
	Retain
	RetainLine
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Retain:
		return "retain"
	case RetainLine:
		return "retainLine"
	default:
		return "unknown"
	}
}

// Component is a single step of a DocOp. Only the fields relevant to Kind are
// meaningful: Text for Insert and Delete, Count and TrailingNewline for Retain,
// LineCount for RetainLine.
type Component struct {
	Kind            Kind
	Text            string
	Count           int
	TrailingNewline bool
	LineCount       int
}

// NewInsert returns an Insert component.
func NewInsert(text string) Component {
	return Component{Kind: Insert, Text: text}
}

// NewDelete returns a Delete component.
func NewDelete(text string) Component {
	return Component{Kind: Delete, Text: text}
}

// NewRetain returns a Retain component. count includes the newline when
// trailingNewline is set.
func NewRetain(count int, trailingNewline bool) Component {
	return Component{Kind: Retain, Count: count, TrailingNewline: trailingNewline}
}

// NewRetainLine returns a RetainLine component.
func NewRetainLine(lineCount int) Component {
	return Component{Kind: RetainLine, LineCount: lineCount}
}

// EndsLine reports whether the component finishes the line it is on.
func (c Component) EndsLine() bool {
	switch c.Kind {
	case Insert, Delete:
		return strings.HasSuffix(c.Text, "\n")
	case Retain:
		return c.TrailingNewline
	case RetainLine:
		return true
	default:
		return false
	}
}

// IsMutation reports whether the component changes document text.
func (c Component) IsMutation() bool {
	return c.Kind == Insert || c.Kind == Delete
}

// String returns the terse form of the component, for example "I(3)" or "R(4\n)".
func (c Component) String() string {
	return c.format(false)
}

// Verbose returns the component with its text spelled out, for example "I(abc\n)".
func (c Component) Verbose() string {
	return c.format(true)
}

func (c Component) format(verbose bool) string {
	var sb strings.Builder
	switch c.Kind {
	case Insert:
		sb.WriteString("I(")
		sb.WriteString(formatText(c.Text, verbose))
	case Delete:
		sb.WriteString("D(")
		sb.WriteString(formatText(c.Text, verbose))
	case Retain:
		sb.WriteString("R(")
		if c.TrailingNewline {
			sb.WriteString(itoa(c.Count - 1))
			sb.WriteString(`\n`)
		} else {
			sb.WriteString(itoa(c.Count))
		}
	case RetainLine:
		sb.WriteString("RL(")
		sb.WriteString(itoa(c.LineCount))
	default:
		return "?(???)"
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatText(text string, verbose bool) string {
	nl := strings.HasSuffix(text, "\n")
	if verbose {
		if nl {
			return text[:len(text)-1] + `\n`
		}
		return text
	}
	if nl {
		return itoa(len(text)-1) + `\n`
	}
	return itoa(len(text))
}
