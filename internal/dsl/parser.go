// Package dsl implements the trading-rule language: a lexer, a sealed AST
// and an operator-precedence recursive-descent parser. OR binds loosest,
// then AND, then comparisons; parenthesized sub-expressions recurse fully.
// Every parse failure is a typed error carrying the offending source
// position. Parsing the same text twice yields structurally identical ASTs.
package dsl

import (
	"strconv"
	"strings"

	"github.com/helios-quant/rulebench/internal/indicator"
	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Parse compiles rule text into an AST. The registry supplies the known
// indicator names and their argument arity; unknown names and wrong arity
// are parse errors, not evaluation errors. The returned node always
// resolves to a per-bar boolean.
func Parse(text string, registry *indicator.Registry) (Node, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}

	if tokens[0].Kind == TokenEOF {
		return nil, errors.NewAt(errors.ErrCodeEmptyRule, 0, "empty rule body")
	}

	p := &parser{tokens: tokens, registry: registry}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, errors.NewAt(errors.ErrCodeTrailingInput, tok.Position,
			"unexpected %s %q after complete rule", tok.Kind, tok.Text)
	}

	if !IsBoolean(node) {
		return nil, errors.NewAt(errors.ErrCodeTypeMismatch, tokens[0].Position,
			"rule must resolve to a boolean condition, not a numeric value")
	}

	return node, nil
}

type parser struct {
	tokens   []Token
	pos      int
	registry *indicator.Registry
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind TokenKind, code errors.ErrorCode) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, errors.NewAt(code, tok.Position,
			"expected %s, found %s %q", kind, tok.Kind, tok.Text)
	}

	return p.advance(), nil
}

// parseExpression parses an OR chain, the loosest precedence level.
func (p *parser) parseExpression() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind == TokenLogical && p.peek().Text == "OR" {
		opTok := p.advance()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		if err := requireBoolean(left, opTok); err != nil {
			return nil, err
		}

		if err := requireBoolean(right, opTok); err != nil {
			return nil, err
		}

		left = LogicalOp{Op: LogicalOr, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind == TokenLogical && p.peek().Text == "AND" {
		opTok := p.advance()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		if err := requireBoolean(left, opTok); err != nil {
			return nil, err
		}

		if err := requireBoolean(right, opTok); err != nil {
			return nil, err
		}

		left = LogicalOp{Op: LogicalAnd, Left: left, Right: right}
	}

	return left, nil
}

// parseComparison parses a term optionally followed by a comparison
// operator and a second term. Without an operator the term passes through,
// which lets boolean terms (CROSS calls, parenthesized conditions) reach
// the logical level unchanged.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind != TokenOperator {
		return left, nil
	}

	opTok := p.advance()

	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if err := requireNumeric(left, opTok); err != nil {
		return nil, err
	}

	if err := requireNumeric(right, opTok); err != nil {
		return nil, err
	}

	return Comparison{Op: CompareOp(opTok.Text), Left: left, Right: right}, nil
}

func (p *parser) parseTerm() (Node, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenNumber:
		p.advance()

		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, errors.NewAt(errors.ErrCodeMalformedNumber, tok.Position, "malformed number %q", tok.Text)
		}

		return Literal{Value: value}, nil
	case TokenField:
		return p.parseFieldRef()
	case TokenIdent:
		return p.parseCall()
	case TokenLParen:
		p.advance()

		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenRParen, errors.ErrCodeUnmatchedParen); err != nil {
			return nil, err
		}

		return node, nil
	default:
		return nil, errors.NewAt(errors.ErrCodeUnexpectedToken, tok.Position,
			"expected a field, number, indicator or '(' but found %s %q", tok.Kind, tok.Text)
	}
}

// parseFieldRef parses a field keyword with an optional [-n] lookback bound
// to the immediately preceding field token.
func (p *parser) parseFieldRef() (Node, error) {
	fieldTok := p.advance()

	field, ok := types.ParseField(fieldTok.Text)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeUnexpectedToken, fieldTok.Position, "unknown field %q", fieldTok.Text)
	}

	if p.peek().Kind != TokenLBracket {
		return FieldRef{Field: field, Lookback: 0}, nil
	}

	p.advance()

	numTok, err := p.expect(TokenNumber, errors.ErrCodeInvalidLookback)
	if err != nil {
		return nil, err
	}

	value, parseErr := strconv.ParseFloat(numTok.Text, 64)
	if parseErr != nil {
		return nil, errors.NewAt(errors.ErrCodeMalformedNumber, numTok.Position, "malformed number %q", numTok.Text)
	}

	lookback := int(value)
	if float64(lookback) != value {
		return nil, errors.NewAt(errors.ErrCodeInvalidLookback, numTok.Position,
			"lookback must be an integer, got %q", numTok.Text)
	}

	if lookback > 0 {
		return nil, errors.NewAt(errors.ErrCodeInvalidLookback, numTok.Position,
			"lookback must be zero or negative, got %d", lookback)
	}

	if _, err := p.expect(TokenRBracket, errors.ErrCodeUnmatchedBracket); err != nil {
		return nil, err
	}

	return FieldRef{Field: field, Lookback: lookback}, nil
}

// parseCall parses function-call syntax: CROSS or an indicator invocation.
func (p *parser) parseCall() (Node, error) {
	nameTok := p.advance()
	name := strings.ToUpper(nameTok.Text)

	if name == "CROSS" {
		return p.parseCross(nameTok)
	}

	spec, err := p.registry.Lookup(name)
	if err != nil {
		return nil, errors.NewAt(errors.ErrCodeUnknownIndicator, nameTok.Position,
			"unknown indicator %q", nameTok.Text)
	}

	if _, err := p.expect(TokenLParen, errors.ErrCodeUnexpectedToken); err != nil {
		return nil, err
	}

	args, err := p.parseLiteralArgs()
	if err != nil {
		return nil, err
	}

	if len(args) < spec.MinArgs || len(args) > spec.MaxArgs {
		if spec.MinArgs == spec.MaxArgs {
			return nil, errors.NewAt(errors.ErrCodeWrongArity, nameTok.Position,
				"indicator %s expects %d argument(s), got %d", name, spec.MinArgs, len(args))
		}

		return nil, errors.NewAt(errors.ErrCodeWrongArity, nameTok.Position,
			"indicator %s expects between %d and %d argument(s), got %d", name, spec.MinArgs, spec.MaxArgs, len(args))
	}

	return IndicatorCall{Name: name, Args: args}, nil
}

// parseLiteralArgs parses a possibly empty comma-separated list of numeric
// literals up to the closing parenthesis.
func (p *parser) parseLiteralArgs() ([]float64, error) {
	args := []float64{}

	if p.peek().Kind == TokenRParen {
		p.advance()
		return args, nil
	}

	for {
		numTok, err := p.expect(TokenNumber, errors.ErrCodeUnexpectedToken)
		if err != nil {
			return nil, err
		}

		value, parseErr := strconv.ParseFloat(numTok.Text, 64)
		if parseErr != nil {
			return nil, errors.NewAt(errors.ErrCodeMalformedNumber, numTok.Position, "malformed number %q", numTok.Text)
		}

		args = append(args, value)

		if p.peek().Kind == TokenComma {
			p.advance()
			continue
		}

		if _, err := p.expect(TokenRParen, errors.ErrCodeUnmatchedParen); err != nil {
			return nil, err
		}

		return args, nil
	}
}

// parseCross parses CROSS(series, threshold, direction).
func (p *parser) parseCross(nameTok Token) (Node, error) {
	if _, err := p.expect(TokenLParen, errors.ErrCodeUnexpectedToken); err != nil {
		return nil, err
	}

	series, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := requireNumeric(series, nameTok); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenComma, errors.ErrCodeWrongArity); err != nil {
		return nil, err
	}

	threshold, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := requireNumeric(threshold, nameTok); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenComma, errors.ErrCodeWrongArity); err != nil {
		return nil, err
	}

	dirTok := p.peek()
	if dirTok.Kind != TokenIdent {
		return nil, errors.NewAt(errors.ErrCodeInvalidDirection, dirTok.Position,
			"cross direction must be 'above' or 'below', found %s %q", dirTok.Kind, dirTok.Text)
	}

	p.advance()

	var direction CrossDirection

	switch strings.ToLower(dirTok.Text) {
	case string(CrossAbove):
		direction = CrossAbove
	case string(CrossBelow):
		direction = CrossBelow
	default:
		return nil, errors.NewAt(errors.ErrCodeInvalidDirection, dirTok.Position,
			"cross direction must be 'above' or 'below', got %q", dirTok.Text)
	}

	if _, err := p.expect(TokenRParen, errors.ErrCodeUnmatchedParen); err != nil {
		return nil, err
	}

	return Cross{Series: series, Threshold: threshold, Direction: direction}, nil
}

func requireBoolean(node Node, at Token) error {
	if !IsBoolean(node) {
		return errors.NewAt(errors.ErrCodeTypeMismatch, at.Position,
			"%s operand must be a boolean condition", at.Text)
	}

	return nil
}

func requireNumeric(node Node, at Token) error {
	if IsBoolean(node) {
		return errors.NewAt(errors.ErrCodeTypeMismatch, at.Position,
			"%s operand must be a numeric value, not a boolean condition", at.Text)
	}

	return nil
}
