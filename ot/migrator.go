package ot

import (
	"io"

	"github.com/burntcarrot/otpad/docop"
	"github.com/burntcarrot/otpad/document"
	"github.com/sirupsen/logrus"
)

// PositionMigrator translates positions between the moment tracking started
// (or was last reset) and now, by recording the ops a document goes through.
//
// A PositionMigrator is not safe for concurrent use.
type PositionMigrator struct {
	applied []docop.DocOp
	sub     *document.Subscription
	logger  logrus.FieldLogger

	// err holds the first failure to record a change. Once set, migrations
	// fail until the next Reset.
	err error
}

// MigratorOption configures a PositionMigrator.
type MigratorOption func(*PositionMigrator)

// WithLogger sets the logger used for tracking events.
func WithLogger(logger logrus.FieldLogger) MigratorOption {
	return func(m *PositionMigrator) {
		m.logger = logger
	}
}

// NewPositionMigrator returns a migrator that is not tracking anything yet.
func NewPositionMigrator(opts ...MigratorOption) *PositionMigrator {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	m := &PositionMigrator{logger: discard}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start discards what was recorded so far and begins tracking the changes
// reported by registrar.
func (m *PositionMigrator) Start(registrar *document.Registrar) {
	m.Reset()
	m.Stop()
	m.sub = registrar.Add(document.TextListenerFunc(m.onTextChange))
	m.logger.WithField("subscription", m.sub.ID()).Debug("position migrator started")
}

// Stop stops tracking and keeps what was recorded.
func (m *PositionMigrator) Stop() {
	if m.sub == nil {
		return
	}
	m.sub.Remove()
	m.logger.WithField("subscription", m.sub.ID()).Debug("position migrator stopped")
	m.sub = nil
}

// Reset forgets the recorded changes. Tracking continues if started.
func (m *PositionMigrator) Reset() {
	m.applied = nil
	m.err = nil
}

// HaveChanges reports whether any change was recorded.
func (m *PositionMigrator) HaveChanges() bool {
	return len(m.applied) > 0
}

// MigrateToNow converts a position from when tracking started to the
// current document.
func (m *PositionMigrator) MigrateToNow(lineNumber, column int) (document.Position, error) {
	op, err := m.composed()
	if err != nil || op == nil {
		return document.Position{Line: lineNumber, Column: column}, err
	}
	return TransformPosition(op, lineNumber, column), nil
}

// MigrateFromNow converts a position in the current document to where it was
// when tracking started.
func (m *PositionMigrator) MigrateFromNow(lineNumber, column int) (document.Position, error) {
	op, err := m.composed()
	if err != nil || op == nil {
		return document.Position{Line: lineNumber, Column: column}, err
	}
	return TransformPosition(docop.Invert(op), lineNumber, column), nil
}

func (m *PositionMigrator) onTextChange(doc *document.Document, changes []document.TextChange) {
	if m.err != nil {
		return
	}
	op, err := FromTextChanges(doc, changes)
	if err != nil {
		m.err = err
		m.logger.WithError(err).Warn("could not record text change")
		return
	}
	if op != nil {
		m.applied = append(m.applied, op)
	}
}

// composed folds the recorded ops into one and keeps only the result.
func (m *PositionMigrator) composed() (docop.DocOp, error) {
	if m.err != nil {
		return nil, m.err
	}
	switch len(m.applied) {
	case 0:
		return nil, nil
	case 1:
		return m.applied[0], nil
	}

	op, err := ComposeAll(m.applied...)
	if err != nil {
		m.err = err
		m.logger.WithError(err).Warn("could not compose recorded changes")
		return nil, err
	}
	m.logger.WithField("ops", len(m.applied)).Debug("composed recorded changes")
	m.applied = []docop.DocOp{op}
	return op, nil
}
