package dsl

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	// TokenEOF marks the end of the rule text.
	TokenEOF TokenKind = iota
	// TokenField is a bar field keyword: open, high, low, close, volume.
	TokenField
	// TokenNumber is a signed decimal literal.
	TokenNumber
	// TokenIdent is an identifier: an indicator name, CROSS, or a cross direction.
	TokenIdent
	// TokenOperator is a comparison operator: > < >= <= ==.
	TokenOperator
	// TokenLogical is AND or OR.
	TokenLogical
	// TokenLParen and friends are structural punctuation.
	TokenLParen
	TokenRParen
	TokenComma
	TokenLBracket
	TokenRBracket
)

// String returns a human-readable name for error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of rule"
	case TokenField:
		return "field"
	case TokenNumber:
		return "number"
	case TokenIdent:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenLogical:
		return "logical operator"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Token is one lexed unit of rule text. Position is the zero-based byte
// offset of the token's first character.
type Token struct {
	Kind     TokenKind
	Text     string
	Position int
}
