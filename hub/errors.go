package hub

import "errors"

var (
	// ErrStaleRevision is returned for a base revision trimmed from history.
	ErrStaleRevision = errors.New("revision is no longer in history")

	// ErrFutureRevision is returned for a base revision newer than the hub's.
	ErrFutureRevision = errors.New("revision does not exist yet")

	// ErrUnknownClient is returned for a client that never joined or has left.
	ErrUnknownClient = errors.New("unknown client")

	// ErrUnknownMessage is returned by Handle for message types it does not
	// serve.
	ErrUnknownMessage = errors.New("unexpected message type")
)
