// Package lang holds the small vocabulary shared by the lexer, the token
// reader and the compositor: separator severities, bracket kinds and
// namespaced identifiers.
// Invariants:
//   - Separator severities are ordered Weak < Normal < Strong.
//   - NoSeparator (0) is never carried by a token; the reader uses it for
//     an adjacent non-separator token.
//   - The empty NamespacedId is the reserved global id.
package lang
