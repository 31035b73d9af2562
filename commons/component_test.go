package commons

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/burntcarrot/otpad/docop"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestEncode(t *testing.T) {
	op := docop.DocOp{
		docop.NewRetain(2, false),
		docop.NewInsert("ab\n"),
		docop.NewDelete("c"),
		docop.NewRetain(3, true),
		docop.NewRetainLine(2),
	}

	got, err := json.Marshal(Encode(op))
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	want := `[{"type":"retain","count":2},{"type":"insert","text":"ab\n"},{"type":"delete","text":"c"},` +
		`{"type":"retain","count":3,"trailingNewline":true},{"type":"retainLine","lineCount":2}]`
	if string(got) != want {
		t.Errorf("got != want; got = %s, expected = %s\n", got, want)
	}

	var wire []Component
	if err := json.Unmarshal(got, &wire); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if !cmp.Equal(decoded, op) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(decoded, op))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		description string
		wire        Component
		err         error
	}{
		{"unknown type", Component{Type: "move"}, ErrUnknownComponent},
		{"empty type", Component{}, ErrUnknownComponent},
		{"insert without text", Component{Type: "insert"}, ErrInvalidComponent},
		{"delete spanning lines", Component{Type: "delete", Text: "a\nb"}, ErrInvalidComponent},
		{"insert with two newlines", Component{Type: "insert", Text: "\n\n"}, ErrInvalidComponent},
		{"retain of nothing", Component{Type: "retain"}, ErrInvalidComponent},
		{"negative retain line", Component{Type: "retainLine", LineCount: -1}, ErrInvalidComponent},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			op, err := Decode([]Component{{Type: "retain", Count: 1}, tc.wire})
			if !errors.Is(err, tc.err) {
				t.Errorf("got != want; got = %v, expected = %v\n", err, tc.err)
			}
			if op != nil {
				t.Errorf("got != want; got = %v, expected nil\n", op)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	op := docop.DocOp{docop.NewInsert("hi"), docop.NewRetainLine(1)}

	msg := NewOpMessage(OpMessage, id, 3, op)
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	want := `{"type":"op","ID":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","revision":3,` +
		`"ops":[{"type":"insert","text":"hi"},{"type":"retainLine","lineCount":1}]}`
	if string(data) != want {
		t.Errorf("got != want; got = %s, expected = %s\n", data, want)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	got, err := decoded.Op()
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if !cmp.Equal(got, op) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, op))
	}
}
