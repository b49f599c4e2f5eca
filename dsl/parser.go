package dsl

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var motifParser = participle.MustBuild[Program](
	participle.Lexer(motifLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse tokenizes and parses motif source text into a *Program. Syntax
// errors are returned as *SyntaxError.
func Parse(source string) (*Program, error) {
	prog, err := motifParser.ParseString("", source)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, newSyntaxError(source, pos.Line, pos.Column, pos.Offset, perr.Message())
		}
		return nil, &SyntaxError{Msg: err.Error()}
	}
	return prog, nil
}

// Position re-exports lexer.Position so callers that need a source position
// do not need to import participle directly.
type Position = lexer.Position
