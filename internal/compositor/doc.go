// Package compositor turns the lexical token stream into a directive-aware
// token tree.
//
// Literal tokens map one to one onto compositor tokens and brackets are
// converted recursively. Every `!name` directive is dispatched through a
// registry of small recursive-descent grammars built on parser.Reader and
// becomes a structured Directive node. Directive arguments that may be
// supplied later by template expansion are ParamValue unions of a literal
// Value and a PlaceholderRef.
//
// The first error aborts the parse; there is no recovery.
package compositor
