// Package ot implements operational transformation over docop.DocOp values.
//
// # Operations
//
//   - Apply walks an op over a document and performs its edits.
//   - Compose merges two sequential ops into one.
//   - Transform rewrites two concurrent ops so both application orders
//     converge.
//   - TransformPosition and PositionMigrator map cursor positions across ops.
//   - FromTextChange turns an observed document mutation into an op.
//
// # Errors
//
// Compose, Transform and Apply report malformed or mismatched inputs with
// *ComposeError, *TransformError and *ApplyError. Each wraps a sentinel error
// (ErrMismatch, ErrDeleteMismatch, ErrApplyFinished or ErrApplyOverrun) that
// can be tested with errors.Is. Such failures mean the participants have
// diverged and must resynchronize.
package ot
