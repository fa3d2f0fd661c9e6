// Package token defines the lexical token algebra of the assembler.
// Invariants:
//   - Every token references the exact slice of the unit text it was built from.
//   - Bracket tokens own their children; a child belongs to exactly one bracket.
//   - A Bracket's span is derived from its Open and Close slices and never stored.
//   - Directive tokens only exist in the lexical layer; the compositor turns
//     them into structured directive nodes.
package token
