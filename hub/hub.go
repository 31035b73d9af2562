// Package hub serializes concurrent edits to a shared document. Each client
// submits ops against the revision it last saw; the hub transforms them past
// everything accepted since, applies them and numbers the result.
package hub

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/burntcarrot/otpad/commons"
	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
	"github.com/burntcarrot/otpad/ot"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub holds the authoritative document and its revision history.
type Hub struct {
	mu sync.Mutex

	doc *document.Document

	// history[i] produced revision trimmed+i+1.
	history []docop.DocOp
	trimmed int

	clients map[uuid.UUID]struct{}

	historyLimit int
	logger       logrus.FieldLogger
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for hub events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithHistoryLimit keeps at most n ops in history. Clients more than n
// revisions behind can no longer submit. Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(h *Hub) {
		h.historyLimit = n
	}
}

// New returns a hub whose document holds text at revision 0.
func New(text string, opts ...Option) *Hub {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	h := &Hub{
		doc:     document.FromString(text),
		clients: make(map[uuid.UUID]struct{}),
		logger:  discard,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Join registers a new client and returns its ID with the current text and
// revision.
func (h *Hub) Join() (uuid.UUID, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	h.clients[id] = struct{}{}
	h.logger.WithFields(logrus.Fields{"client": id, "revision": h.revision()}).Debug("client joined")
	return id, h.doc.Text(), h.revision()
}

// Leave unregisters a client.
func (h *Hub) Leave(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, id)
	h.logger.WithField("client", id).Debug("client left")
}

// Submit accepts op from a client that wrote it against base. It returns
// the new revision and the op as it was applied, for broadcasting to the
// other clients. When two clients insert at the same place, the later
// submission's text comes first.
func (h *Hub) Submit(id uuid.UUID, base int, op docop.DocOp) (int, docop.DocOp, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[id]; !ok {
		return 0, nil, ErrUnknownClient
	}
	concurrent, err := h.since(base)
	if err != nil {
		return 0, nil, err
	}

	for _, accepted := range concurrent {
		pair, err := ot.Transform(op, accepted)
		if err != nil {
			h.logger.WithError(err).WithField("client", id).Warn("could not transform submission")
			return 0, nil, fmt.Errorf("transforming against history: %w", err)
		}
		op = pair.Client
	}

	// Apply to a copy so a bad op leaves the document untouched.
	next := document.FromString(h.doc.Text())
	if _, err := ot.Apply(op, next); err != nil {
		h.logger.WithError(err).WithField("client", id).Warn("could not apply submission")
		return 0, nil, err
	}
	h.doc = next

	// History keeps its own copy; op goes back to the caller.
	h.history = append(h.history, slices.Clone(op))
	if h.historyLimit > 0 && len(h.history) > h.historyLimit {
		drop := len(h.history) - h.historyLimit
		h.history = append([]docop.DocOp(nil), h.history[drop:]...)
		h.trimmed += drop
	}

	h.logger.WithFields(logrus.Fields{
		"client":     id,
		"base":       base,
		"revision":   h.revision(),
		"concurrent": len(concurrent),
	}).Debug("accepted submission")
	return h.revision(), op, nil
}

// Since returns one op that takes a client from revision to the current
// revision. It returns an empty op when the client is up to date.
func (h *Hub) Since(revision int) (docop.DocOp, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ops, err := h.since(revision)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return docop.DocOp{}, nil
	}
	op, err := ot.ComposeAll(ops...)
	if err != nil {
		return nil, err
	}
	return slices.Clone(op), nil
}

// Handle answers a message from a client. A submission yields an ack for the
// sender followed by the op to broadcast to everyone else.
func (h *Hub) Handle(msg commons.Message) ([]commons.Message, error) {
	switch msg.Type {
	case commons.SubmitMessage:
		op, err := msg.Op()
		if err != nil {
			return nil, err
		}
		revision, applied, err := h.Submit(msg.ID, msg.Revision, op)
		if err != nil {
			return nil, err
		}
		return []commons.Message{
			{Type: commons.AckMessage, ID: msg.ID, Revision: revision},
			commons.NewOpMessage(commons.OpMessage, msg.ID, revision, applied),
		}, nil

	case commons.SnapshotMessage:
		h.mu.Lock()
		defer h.mu.Unlock()
		return []commons.Message{{Type: commons.SnapshotMessage, ID: msg.ID, Revision: h.revision(), Text: h.doc.Text()}}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

// Text returns the current document text.
func (h *Hub) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.doc.Text()
}

// Revision returns the current revision.
func (h *Hub) Revision() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.revision()
}

func (h *Hub) revision() int {
	return h.trimmed + len(h.history)
}

// since returns the ops accepted after revision.
func (h *Hub) since(revision int) ([]docop.DocOp, error) {
	switch {
	case revision > h.revision():
		return nil, fmt.Errorf("%w: %d, at %d", ErrFutureRevision, revision, h.revision())
	case revision < h.trimmed:
		return nil, fmt.Errorf("%w: %d, oldest is %d", ErrStaleRevision, revision, h.trimmed)
	}
	return h.history[revision-h.trimmed:], nil
}
