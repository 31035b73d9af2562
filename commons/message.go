package commons

import (
	"github.com/burntcarrot/otpad/docop"
	"github.com/google/uuid"
)

// Message represents the message sent over the wire.
type Message struct {
	// Type represents the message type.
	Type MessageType `json:"type"`

	// ID represents the UUID of the client the message is from or for.
	ID uuid.UUID `json:"ID"`

	// Revision is the document revision the message refers to. For submissions
	// it is the revision the op was written against.
	Revision int `json:"revision"`

	// Ops represents the doc op, in wire form.
	Ops []Component `json:"ops,omitempty"`

	// Text represents the document text. It is only set on snapshots, due to
	// the large size of documents.
	Text string `json:"text,omitempty"`
}

// MessageType represents the type of the message.
type MessageType string

// Currently, otpad supports 4 message types:
// - snapshot (the document as a client joins)
// - submit (an op from a client)
// - ack (the submitting client's op was accepted)
// - op (an accepted op, broadcast to the other clients)

const (
	SnapshotMessage MessageType = "snapshot"
	SubmitMessage   MessageType = "submit"
	AckMessage      MessageType = "ack"
	OpMessage       MessageType = "op"
)

// NewOpMessage returns a message of the given type carrying op.
func NewOpMessage(t MessageType, id uuid.UUID, revision int, op docop.DocOp) Message {
	return Message{Type: t, ID: id, Revision: revision, Ops: Encode(op)}
}

// Op decodes the message's op.
func (m Message) Op() (docop.DocOp, error) {
	return Decode(m.Ops)
}
