package dsl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Lex tokenizes rule text left to right. Field names and keywords match
// case-insensitively; numbers are signed decimal literals. The returned
// slice always ends with a TokenEOF entry.
func Lex(text string) ([]Token, error) {
	lexer := &lexer{input: text}

	return lexer.run()
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) run() ([]Token, error) {
	var tokens []Token

	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		token, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	tokens = append(tokens, Token{Kind: TokenEOF, Text: "", Position: len(l.input)})

	return tokens, nil
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}

		l.pos += size
	}
}

func (l *lexer) next() (Token, error) {
	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '(':
		l.pos++
		return Token{Kind: TokenLParen, Text: "(", Position: start}, nil
	case c == ')':
		l.pos++
		return Token{Kind: TokenRParen, Text: ")", Position: start}, nil
	case c == ',':
		l.pos++
		return Token{Kind: TokenComma, Text: ",", Position: start}, nil
	case c == '[':
		l.pos++
		return Token{Kind: TokenLBracket, Text: "[", Position: start}, nil
	case c == ']':
		l.pos++
		return Token{Kind: TokenRBracket, Text: "]", Position: start}, nil
	case c == '>' || c == '<':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
		}

		return Token{Kind: TokenOperator, Text: l.input[start:l.pos], Position: start}, nil
	case c == '=':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return Token{Kind: TokenOperator, Text: "==", Position: start}, nil
		}

		return Token{}, errors.NewAt(errors.ErrCodeInvalidCharacter, start,
			"invalid character '=', did you mean '=='?")
	case c >= '0' && c <= '9':
		return l.lexNumber(start)
	case c == '-':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
			l.pos++
			return l.lexNumber(start)
		}

		return Token{}, errors.NewAt(errors.ErrCodeInvalidCharacter, start,
			"invalid character '-': a sign must be followed by a digit")
	case isWordStart(rune(c)):
		return l.lexWord(start), nil
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return Token{}, errors.NewAt(errors.ErrCodeInvalidCharacter, start, "invalid character %q", r)
	}
}

func (l *lexer) lexNumber(start int) (Token, error) {
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
	}

	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		if l.pos >= len(l.input) || l.input[l.pos] < '0' || l.input[l.pos] > '9' {
			return Token{}, errors.NewAt(errors.ErrCodeMalformedNumber, start,
				"malformed number %q: digits must follow the decimal point", l.input[start:l.pos])
		}

		for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
			l.pos++
		}
	}

	return Token{Kind: TokenNumber, Text: l.input[start:l.pos], Position: start}, nil
}

func (l *lexer) lexWord(start int) Token {
	for l.pos < len(l.input) && isWordPart(rune(l.input[l.pos])) {
		l.pos++
	}

	word := l.input[start:l.pos]

	if _, ok := types.ParseField(strings.ToLower(word)); ok {
		return Token{Kind: TokenField, Text: strings.ToLower(word), Position: start}
	}

	switch strings.ToUpper(word) {
	case "AND", "OR":
		return Token{Kind: TokenLogical, Text: strings.ToUpper(word), Position: start}
	default:
		return Token{Kind: TokenIdent, Text: word, Position: start}
	}
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return isWordStart(r) || unicode.IsDigit(r)
}
