package dsl

import "github.com/alecthomas/participle/v2/lexer"

// motifLexer tokenizes motif source text. Punctuation is deliberately
// single-character: multi-character operators (==, !=, !in, ...) are
// recognized by the grammar as sequences of adjacent single-char/Ident
// tokens rather than as their own lexer rules, the same trick the grammar
// uses for keyword-shaped operators like "in" and "contains" that would
// otherwise just be ordinary identifiers.
var motifLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"|'([^'\\]|\\.)*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Punct", Pattern: `[-!~+|=<>.,;(){}\[\]]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})
