package ot

import (
	"testing"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
	"github.com/google/go-cmp/cmp"
)

// terse builds ops with short method names, mirroring the op string form.
type terse struct {
	b *docop.Builder
}

// ops returns a non-compacting terse builder.
func ops() *terse { return &terse{b: docop.NewBuilder(false)} }

// compact returns a compacting terse builder.
func compact() *terse { return &terse{b: docop.NewBuilder(true)} }

func (t *terse) i(text string) *terse { t.b.Insert(text); return t }
func (t *terse) d(text string) *terse { t.b.Delete(text); return t }
func (t *terse) r(n int) *terse       { t.b.Retain(n, false); return t }
func (t *terse) eolR(n int) *terse    { t.b.Retain(n, true); return t }
func (t *terse) rl(n int) *terse      { t.b.RetainLine(n); return t }
func (t *terse) op() docop.DocOp      { return t.b.Build() }

func assertOp(t *testing.T, got, want docop.DocOp) {
	t.Helper()
	if !cmp.Equal(got, want) {
		t.Errorf("got != want; got = %v, expected = %v\ndiff = %v", got.Verbose(), want.Verbose(), cmp.Diff(got, want))
	}
}

// applyText applies op to a document holding text and returns the result.
func applyText(t *testing.T, text string, op docop.DocOp) string {
	t.Helper()
	doc := document.FromString(text)
	if _, err := Apply(op, doc); err != nil {
		t.Fatalf("error applying %v to %q: %v", op.Verbose(), text, err)
	}
	return doc.Text()
}
