// Package diag defines the error model shared by the lexer, the compositor
// and the driver.
//
// # Data model
//
// Error is the single error kind. It carries:
//
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Ref – the source.Reference pointing at the offending text, or nil for
//     errors that have no location (missing files).
//   - Msg – human oriented text; keep it short and actionable.
//   - Notes – optional secondary references, e.g. “opened here”.
//   - Cause – optional wrapped error, reachable through errors.Unwrap.
//
// Lexical and grammar errors are fatal to the unit being processed: the first
// one aborts the parse. Bag only exists to aggregate the first error of every
// unit when the driver processes several units at once.
//
// # Consumers
//
//   - internal/diagfmt: renders errors with the source line and a caret.
//   - internal/driver: collects per-unit errors into a Bag.
//   - cmd/axiom: prints FormatShort output for golden tests and scripts.
//
// Package diag does not perform any IO or colouring.
package diag
