package ot

import (
	"testing"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
)

func TestTransformPosition(t *testing.T) {
	tests := []struct {
		description  string
		line, column int
		op           docop.DocOp
		want         document.Position
	}{
		// Deletes.
		{"delete before position", 0, 5, ops().d("h").op(), document.Position{Line: 0, Column: 4}},
		{"delete ending at position", 0, 1, ops().d("h").op(), document.Position{Line: 0, Column: 0}},
		{"delete containing position", 0, 1, ops().d("hello").op(), document.Position{Line: 0, Column: 0}},
		{"delete after position", 0, 0, ops().r(5).d("hello").op(), document.Position{Line: 0, Column: 0}},
		{"delete with newline before position", 1, 1, ops().d("hello\n").op(), document.Position{Line: 0, Column: 1}},
		{"delete with newline after position", 0, 0, ops().r(5).d("hello\n").op(), document.Position{Line: 0, Column: 0}},
		{"position on deleted newline", 0, 1, ops().d("h\n").op(), document.Position{Line: 0, Column: 0}},
		{"deleted empty line above position", 5, 1, ops().rl(3).d("\n").rl(5).op(), document.Position{Line: 4, Column: 1}},

		// Inserts.
		{"insert before position", 0, 1, ops().i("hello").op(), document.Position{Line: 0, Column: 6}},
		{"insert at position", 0, 0, ops().i("hello").op(), document.Position{Line: 0, Column: 5}},
		{"insert after position", 0, 0, ops().r(5).i("hello").op(), document.Position{Line: 0, Column: 0}},
		{"insert with newline before position", 0, 1, ops().i("hello\n").op(), document.Position{Line: 1, Column: 1}},
		{"insert with newline above position", 4, 1, ops().i("hello\n").op(), document.Position{Line: 5, Column: 1}},
		{"insert with newline at position", 0, 0, ops().i("hello\n").op(), document.Position{Line: 1, Column: 0}},
		{"insert with newline after position", 0, 0, ops().r(5).i("hello\n").op(), document.Position{Line: 0, Column: 0}},

		// Retains.
		{"retain before position", 0, 5, ops().r(4).op(), document.Position{Line: 0, Column: 5}},
		{"retain surrounding position", 0, 5, ops().r(40).op(), document.Position{Line: 0, Column: 5}},
		{"retain after position", 0, 5, ops().r(10).r(40).op(), document.Position{Line: 0, Column: 5}},
		{"retain with newline containing position", 0, 5, ops().eolR(40).op(), document.Position{Line: 0, Column: 5}},
		{"retain line before position", 4, 5, ops().rl(2).op(), document.Position{Line: 4, Column: 5}},
		{"retain line surrounding position", 0, 5, ops().rl(40).op(), document.Position{Line: 0, Column: 5}},
		{"retain line after position", 0, 5, ops().eolR(10).rl(40).op(), document.Position{Line: 0, Column: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			if got := TransformPosition(tc.op, tc.line, tc.column); got != tc.want {
				t.Errorf("got != want; got = %+v, expected = %+v\n", got, tc.want)
			}
		})
	}
}
