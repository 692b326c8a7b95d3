package dsl

import "github.com/helios-quant/rulebench/internal/types"

// Node is the sealed set of AST node kinds. A rule is built once by Parse
// and immutable thereafter. Evaluation is a total type switch over the
// variants, so adding a kind forces every consumer to handle it.
//
// Typing invariant: FieldRef, IndicatorCall and Literal resolve to a per-bar
// numeric value; Comparison, LogicalOp and Cross resolve to a per-bar
// boolean. The parser rejects rules that mix the two without a comparison
// boundary; IsBoolean reports which side of that boundary a node is on.
type Node interface {
	isNode()
}

// FieldRef references one bar field with an optional lookback. Lookback is
// zero for the current bar, -1 for the previous bar, and so on; it is never
// positive.
type FieldRef struct {
	Field    types.Field
	Lookback int
}

// IndicatorCall invokes a registered indicator over the close series with
// literal arguments.
type IndicatorCall struct {
	Name string
	Args []float64
}

// Literal is a numeric constant, broadcast to every bar.
type Literal struct {
	Value float64
}

// CompareOp is a comparison operator.
type CompareOp string

const (
	CompareGT CompareOp = ">"
	CompareLT CompareOp = "<"
	CompareGE CompareOp = ">="
	CompareLE CompareOp = "<="
	CompareEQ CompareOp = "=="
)

// Comparison applies an elementwise comparison of two numeric operands.
type Comparison struct {
	Op    CompareOp
	Left  Node
	Right Node
}

// LogicalKind is a boolean connective.
type LogicalKind string

const (
	LogicalAnd LogicalKind = "AND"
	LogicalOr  LogicalKind = "OR"
)

// LogicalOp combines two boolean operands elementwise.
type LogicalOp struct {
	Op    LogicalKind
	Left  Node
	Right Node
}

// CrossDirection selects which way a cross must happen.
type CrossDirection string

const (
	CrossAbove CrossDirection = "above"
	CrossBelow CrossDirection = "below"
)

// Cross is true at bar i when the series crosses the threshold between bars
// i-1 and i in the given direction.
type Cross struct {
	Series    Node
	Threshold Node
	Direction CrossDirection
}

func (FieldRef) isNode()      {}
func (IndicatorCall) isNode() {}
func (Literal) isNode()       {}
func (Comparison) isNode()    {}
func (LogicalOp) isNode()     {}
func (Cross) isNode()         {}

// IsBoolean reports whether the node resolves to a per-bar boolean value.
func IsBoolean(node Node) bool {
	switch node.(type) {
	case Comparison, LogicalOp, Cross:
		return true
	default:
		return false
	}
}
