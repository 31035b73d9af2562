package commons

import (
	"errors"
	"fmt"
	"strings"

	"github.com/burntcarrot/otpad/docop"
)

var (
	// ErrUnknownComponent is returned when decoding a component type that is
	// not one of the four kinds.
	ErrUnknownComponent = errors.New("unknown component type")

	// ErrInvalidComponent is returned for a component with an empty text or a
	// non-positive count.
	ErrInvalidComponent = errors.New("invalid component")
)

// Component represents a doc op component on the wire and in scenario files.
type Component struct {
	// Type is one of "insert", "delete", "retain" and "retainLine".
	Type string `json:"type" toml:"type"`

	// Text is the inserted or deleted text.
	Text string `json:"text,omitempty" toml:"text,omitempty"`

	// Count and TrailingNewline describe a retain.
	Count           int  `json:"count,omitempty" toml:"count,omitempty"`
	TrailingNewline bool `json:"trailingNewline,omitempty" toml:"trailingNewline,omitempty"`

	// LineCount is the number of lines a retainLine covers.
	LineCount int `json:"lineCount,omitempty" toml:"lineCount,omitempty"`
}

// Encode converts op into its wire form.
func Encode(op docop.DocOp) []Component {
	out := make([]Component, 0, len(op))
	for _, c := range op {
		wire := Component{Type: c.Kind.String()}
		switch c.Kind {
		case docop.Insert, docop.Delete:
			wire.Text = c.Text
		case docop.Retain:
			wire.Count = c.Count
			wire.TrailingNewline = c.TrailingNewline
		case docop.RetainLine:
			wire.LineCount = c.LineCount
		}
		out = append(out, wire)
	}
	return out
}

// Decode converts wire components into an op, rejecting components that no
// op could contain.
func Decode(components []Component) (docop.DocOp, error) {
	op := make(docop.DocOp, 0, len(components))
	for i, wire := range components {
		c, err := decodeComponent(wire)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		op = append(op, c)
	}
	return op, nil
}

func decodeComponent(wire Component) (docop.Component, error) {
	switch wire.Type {
	case docop.Insert.String(), docop.Delete.String():
		if wire.Text == "" {
			return docop.Component{}, fmt.Errorf("%w: %s without text", ErrInvalidComponent, wire.Type)
		}
		// Only the last character may be a newline.
		if i := strings.IndexByte(wire.Text, '\n'); i >= 0 && i != len(wire.Text)-1 {
			return docop.Component{}, fmt.Errorf("%w: %s spans more than one line", ErrInvalidComponent, wire.Type)
		}
		if wire.Type == docop.Insert.String() {
			return docop.NewInsert(wire.Text), nil
		}
		return docop.NewDelete(wire.Text), nil

	case docop.Retain.String():
		if wire.Count <= 0 {
			return docop.Component{}, fmt.Errorf("%w: retain count %d", ErrInvalidComponent, wire.Count)
		}
		return docop.NewRetain(wire.Count, wire.TrailingNewline), nil

	case docop.RetainLine.String():
		if wire.LineCount <= 0 {
			return docop.Component{}, fmt.Errorf("%w: retainLine count %d", ErrInvalidComponent, wire.LineCount)
		}
		return docop.NewRetainLine(wire.LineCount), nil

	default:
		return docop.Component{}, fmt.Errorf("%w: %q", ErrUnknownComponent, wire.Type)
	}
}
