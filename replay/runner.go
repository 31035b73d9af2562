package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/burntcarrot/otpad/commons"
	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
	"github.com/burntcarrot/otpad/hub"
	"github.com/burntcarrot/otpad/ot"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result summarizes a replayed scenario.
type Result struct {
	Text     string
	Revision int
	Failures int
}

type runner struct {
	out    io.Writer
	logger logrus.FieldLogger

	// wire prints hub replies as JSON messages.
	wire bool

	ok   *color.Color
	fail *color.Color
	info *color.Color
}

func newRunner(out io.Writer, logger logrus.FieldLogger, wire bool) *runner {
	return &runner{
		out:    out,
		logger: logger,
		wire:   wire,
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		info:   color.New(color.FgYellow),
	}
}

// run replays s. Failing submissions and checks are reported and counted;
// the returned error is reserved for output failures.
func (r *runner) run(s Scenario) (Result, error) {
	var res Result

	h := hub.New(s.Text, hub.WithLogger(r.logger))
	clients := make(map[string]uuid.UUID)

	for i, sub := range s.Submits {
		id, ok := clients[sub.Client]
		if !ok {
			id, _, _ = h.Join()
			clients[sub.Client] = id
			r.logger.WithFields(logrus.Fields{"name": sub.Client, "client": id}).Debug("joined scenario client")
		}

		msg := commons.Message{Type: commons.SubmitMessage, ID: id, Revision: sub.Base, Ops: sub.Ops}
		replies, err := h.Handle(msg)
		if err != nil {
			res.Failures++
			r.fail.Fprintf(r.out, "submit #%d from %s at %d >> %v\n", i+1, sub.Client, sub.Base, err)
			continue
		}
		if err := r.report(i, sub, replies); err != nil {
			return res, err
		}
	}

	res.Text = h.Text()
	res.Revision = h.Revision()
	r.info.Fprintf(r.out, "revision %d >> %q\n", res.Revision, res.Text)

	if s.Expect != nil && *s.Expect != res.Text {
		res.Failures++
		r.fail.Fprintf(r.out, "expected %q\n", *s.Expect)
	}

	for i, check := range s.Checks {
		text := s.Text
		if check.Text != nil {
			text = *check.Text
		}
		if err := r.check(text, check); err != nil {
			res.Failures++
			r.fail.Fprintf(r.out, "check #%d %s >> %v\n", i+1, check.Description, err)
			continue
		}
		r.ok.Fprintf(r.out, "check #%d %s >> converged\n", i+1, check.Description)
	}

	return res, nil
}

func (r *runner) report(i int, sub Submission, replies []commons.Message) error {
	for _, reply := range replies {
		if r.wire {
			data, err := json.Marshal(reply)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(r.out, string(data)); err != nil {
				return err
			}
			continue
		}
		if reply.Type != commons.OpMessage {
			continue
		}
		op, err := reply.Op()
		if err != nil {
			return err
		}
		r.ok.Fprintf(r.out, "submit #%d from %s at %d >> revision %d %s\n", i+1, sub.Client, sub.Base, reply.Revision, op.Verbose())
	}
	return nil
}

// check transforms the pair and applies both orders to text.
func (r *runner) check(text string, c Check) error {
	client, err := commons.Decode(c.Client)
	if err != nil {
		return fmt.Errorf("client op: %w", err)
	}
	server, err := commons.Decode(c.Server)
	if err != nil {
		return fmt.Errorf("server op: %w", err)
	}

	pair, err := ot.Transform(client, server)
	if err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{
		"client": pair.Client.Verbose(),
		"server": pair.Server.Verbose(),
	}).Debug("transformed check")

	clientFirst, err := applyAll(text, client, pair.Server)
	if err != nil {
		return err
	}
	serverFirst, err := applyAll(text, server, pair.Client)
	if err != nil {
		return err
	}

	if clientFirst != serverFirst {
		return fmt.Errorf("diverged: %q and %q", clientFirst, serverFirst)
	}
	if c.Expect != nil && *c.Expect != clientFirst {
		return fmt.Errorf("got %q, expected %q", clientFirst, *c.Expect)
	}
	return nil
}

func applyAll(text string, ops ...docop.DocOp) (string, error) {
	doc := document.FromString(text)
	for _, op := range ops {
		if _, err := ot.Apply(op, doc); err != nil {
			return "", err
		}
	}
	return doc.Text(), nil
}
