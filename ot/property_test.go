package ot

import (
	"math/rand"
	"testing"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
)

func randomText(r *rand.Rand, alphabet string, shortest, longest int) string {
	b := make([]byte, shortest+r.Intn(longest-shortest+1))
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// offsetPosition returns the line and column of a character offset that lies
// inside the document.
func offsetPosition(doc *document.Document, offset int) (int, int) {
	line := 0
	for offset >= len(doc.LineText(line)) && line+1 < doc.LineCount() {
		offset -= len(doc.LineText(line))
		line++
	}
	return line, offset
}

// randomEdit makes a random insert or delete in doc and returns the op that
// describes it.
func randomEdit(t *testing.T, r *rand.Rand, doc *document.Document) docop.DocOp {
	t.Helper()

	var (
		change document.TextChange
		err    error
	)
	text := doc.Text()
	if len(text) == 0 || r.Intn(2) == 0 {
		line := r.Intn(doc.LineCount())
		limit := len(doc.LineText(line))
		if doc.Line(line).HasNewline() {
			limit--
		}
		change, err = doc.InsertText(line, r.Intn(limit+1), randomText(r, "xy\n", 1, 3))
	} else {
		offset := r.Intn(len(text))
		count := 1 + r.Intn(min(4, len(text)-offset))
		line, column := offsetPosition(doc, offset)
		change, err = doc.DeleteText(line, column, count)
	}
	if err != nil {
		t.Fatalf("error editing %q: %v", text, err)
	}
	return FromTextChange(doc, change)
}

func TestComposeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		text := randomText(r, "ab\n", 0, 20)
		doc := document.FromString(text)

		edits := make([]docop.DocOp, 1+r.Intn(5))
		for j := range edits {
			edits[j] = randomEdit(t, r, doc)
		}
		want := doc.Text()

		all, err := ComposeAll(edits...)
		if err != nil {
			t.Fatalf("composing edits of %q: %v", text, err)
		}
		if got := applyText(t, text, all); got != want {
			t.Fatalf("got != want; got = %q, expected = %q (edits of %q: %v)", got, want, text, docop.FormatList(edits, true))
		}

		// Any grouping of the edits gives the same text.
		for k := 1; k < len(edits); k++ {
			head, err := ComposeAll(edits[:k]...)
			if err != nil {
				t.Fatalf("composing edits of %q: %v", text, err)
			}
			tail, err := ComposeAll(edits[k:]...)
			if err != nil {
				t.Fatalf("composing edits of %q: %v", text, err)
			}
			grouped, err := Compose(head, tail)
			if err != nil {
				t.Fatalf("composing %v with %v: %v", head.Verbose(), tail.Verbose(), err)
			}
			if got := applyText(t, text, grouped); got != want {
				t.Fatalf("got != want; got = %q, expected = %q (split at %d of %v)", got, want, k, docop.FormatList(edits, true))
			}
		}

		// Retaining every line on either side changes nothing.
		first := edits[0]
		b := docop.NewBuilder(true)
		for _, c := range first {
			b.Component(c)
		}
		compacted := b.Build()
		before := document.FromString(text).LineCount()
		after := document.FromString(applyText(t, text, first)).LineCount()
		assertCompose(t, compacted, docop.DocOp{docop.NewRetainLine(before)}, first)
		assertCompose(t, compacted, first, docop.DocOp{docop.NewRetainLine(after)})
	}
}

func TestTransformProperties(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	edit := func(doc *document.Document) docop.DocOp {
		edits := make([]docop.DocOp, 1+r.Intn(3))
		for j := range edits {
			edits[j] = randomEdit(t, r, doc)
		}
		op, err := ComposeAll(edits...)
		if err != nil {
			t.Fatalf("composing %v: %v", docop.FormatList(edits, true), err)
		}
		return op
	}

	for i := 0; i < 1000; i++ {
		text := randomText(r, "ab\n", 0, 20)
		clientDoc := document.FromString(text)
		serverDoc := document.FromString(text)
		client := edit(clientDoc)
		server := edit(serverDoc)

		pair, err := Transform(client, server)
		if err != nil {
			t.Fatalf("transform(%v, %v) on %q: %v", client.Verbose(), server.Verbose(), text, err)
		}

		clientFirst := applyText(t, clientDoc.Text(), pair.Server)
		serverFirst := applyText(t, serverDoc.Text(), pair.Client)
		if clientFirst != serverFirst {
			t.Fatalf("got != want; got = %q, expected = %q (client %v, server %v on %q)", serverFirst, clientFirst, client.Verbose(), server.Verbose(), text)
		}
	}
}
