package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/burntcarrot/otpad/commons"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoadScenario(t *testing.T) {
	s, err := loadScenario("testdata/concurrent.toml")
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	if got, want := s.Text, "abc\ndef\n"; got != want {
		t.Errorf("got != want; got = %q, expected = %q\n", got, want)
	}
	if len(s.Submits) != 2 || len(s.Checks) != 2 {
		t.Fatalf("got != want; got = %d submits and %d checks, expected = 2 and 2\n", len(s.Submits), len(s.Checks))
	}

	want := Submission{
		Client: "bob",
		Base:   0,
		Ops: []commons.Component{
			{Type: "retainLine", LineCount: 1},
			{Type: "delete", Text: "def"},
			{Type: "retain", Count: 1, TrailingNewline: true},
			{Type: "retainLine", LineCount: 1},
		},
	}
	if !cmp.Equal(s.Submits[1], want) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(s.Submits[1], want))
	}
	if s.Checks[0].Text != nil || s.Checks[1].Text == nil || *s.Checks[1].Text != "hello" {
		t.Errorf("check texts not decoded as expected: %+v\n", s.Checks)
	}
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := parseScenario(strings.NewReader("text = \"a\"\ncolour = \"red\"\n"))
	if err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestRun(t *testing.T) {
	s, err := loadScenario("testdata/concurrent.toml")
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	res, err := newRunner(&out, logger, false).run(s)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	want := Result{Text: "aXbc\n\n", Revision: 2}
	if !cmp.Equal(res, want) {
		t.Errorf("got != want; diff = %v\noutput:\n%s", cmp.Diff(res, want), out.String())
	}
	if !strings.Contains(out.String(), "converged") {
		t.Errorf("output does not report converged checks:\n%s", out.String())
	}
}

func TestRunFailures(t *testing.T) {
	input := `
text = "abc"
expect = "nope"

[[submit]]
client = "alice"
base = 0
ops = [{ type = "delete", text = "xyz" }]

[[submit]]
client = "alice"
base = 3
ops = [{ type = "retain", count = 3 }]

[[check]]
description = "mismatched lengths"
client = [{ type = "retain", count = 3 }]
server = [{ type = "retain", count = 2 }]
`
	s, err := parseScenario(strings.NewReader(input))
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	res, err := newRunner(&out, logger, false).run(s)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	// Both submissions, the final text and the check fail.
	want := Result{Text: "abc", Revision: 0, Failures: 4}
	if !cmp.Equal(res, want) {
		t.Errorf("got != want; diff = %v\noutput:\n%s", cmp.Diff(res, want), out.String())
	}
}

func TestRunWire(t *testing.T) {
	s := Scenario{
		Text: "hi",
		Submits: []Submission{
			{Client: "alice", Ops: []commons.Component{{Type: "retain", Count: 2}, {Type: "insert", Text: "!"}}},
		},
	}

	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	if _, err := newRunner(&out, logger, true).run(s); err != nil {
		t.Fatalf("error: %v\n", err)
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) < 2 {
		t.Fatalf("got != want; got = %q, expected two wire messages\n", out.String())
	}
	var types []commons.MessageType
	for _, line := range lines[:2] {
		var msg commons.Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("error decoding %q: %v\n", line, err)
		}
		types = append(types, msg.Type)
	}
	want := []commons.MessageType{commons.AckMessage, commons.OpMessage}
	if !cmp.Equal(types, want) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(types, want))
	}
}
