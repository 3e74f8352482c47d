// Package lexgen is a multi-mode scanner (lexer) generator and runtime.
//
// A Builder compiles named scanner modes — each an ordered list of regex
// patterns with associated token ids and inter-mode transitions — into a
// Scanner: an immutable set of per-mode DFAs plus one piece of mutable
// state, the active mode, shared by the Scanner and every FindIterator
// derived from it. Scanning never anchors, captures, or matches raw
// bytes; it matches Unicode scalar text and reports byte-offset spans.
package lexgen
