package linden

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Tolerance for stochastic probability vectors summing to 1
const PROB_TOLERANCE = 1e-6

// RuleKind tags the context class of a production rule.
type RuleKind int

const (
	// Context-free rule
	ContextFree RuleKind = iota
	// Rule with a left context requirement
	LeftContext
	// Rule with a right context requirement
	RightContext
	// Rule with requirements on both sides
	TwoSided
)

func (k RuleKind) String() string {
	switch k {
	case ContextFree:
		return "0L"
	case LeftContext:
		return "1L-left"
	case RightContext:
		return "1L-right"
	case TwoSided:
		return "2L"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// Rule is a production rule: a predecessor with optional left/right context
// patterns, an optional boolean condition over the formal parameters, and one
// or more successor templates. Left is only consulted for LeftContext and
// TwoSided rules, Right only for RightContext and TwoSided rules.
//
// A stochastic rule carries several successor alternatives side by side with
// a probability vector; Probs is nil for deterministic rules.
type Rule struct {
	Kind        RuleKind
	Left        SymbolicModule
	Predecessor SymbolicModule
	Right       SymbolicModule
	Condition   Expr // nil means always applicable
	Successors  [][]TemplateModule
	Probs       []float64
}

// NewRule builds a production rule, parsing the condition text and validating
// stochastic probabilities. An empty condition string means "no condition".
func NewRule(kind RuleKind, left, predecessor, right SymbolicModule,
	condition string, successors [][]TemplateModule, probs []float64) (*Rule, error) {

	rule := &Rule{
		Kind:        kind,
		Left:        left,
		Predecessor: predecessor,
		Right:       right,
		Successors:  successors,
		Probs:       probs,
	}

	if condition != "" {
		cond, err := ParseExpr(condition)
		if err != nil {
			return nil, err
		}
		rule.Condition = cond
	}

	if len(probs) > 0 {
		if len(probs) != len(successors) {
			return nil, &EvalError{Msg: fmt.Sprintf(
				"%d probabilities for %d successor alternatives", len(probs), len(successors))}
		}
		for _, p := range probs {
			if p <= 0 {
				return nil, &EvalError{Msg: fmt.Sprintf("non-positive probability %v", p)}
			}
		}
		if sum := floats.Sum(probs); math.Abs(sum-1) > PROB_TOLERANCE {
			return nil, &EvalError{Msg: fmt.Sprintf("probabilities sum to %v, expected 1", sum)}
		}
	} else if len(successors) != 1 {
		return nil, &EvalError{Msg: fmt.Sprintf(
			"%d successor alternatives without probabilities", len(successors))}
	}

	return rule, nil
}

// Stochastic reports whether the rule draws between successor alternatives.
func (rule *Rule) Stochastic() bool {
	return len(rule.Probs) > 0
}

// Symbol-level applicability: the predecessor symbol must match, and the
// context symbols required by the rule kind must match the located neighbours.
func (rule *Rule) matchesSymbols(left, mod, right Module) bool {
	if rule.Predecessor.Symbol != mod.Symbol {
		return false
	}

	switch rule.Kind {
	case LeftContext:
		return rule.Left.Symbol == left.Symbol
	case RightContext:
		return rule.Right.Symbol == right.Symbol
	case TwoSided:
		return rule.Left.Symbol == left.Symbol && rule.Right.Symbol == right.Symbol
	}

	return true
}

// bind clears env and repopulates it by pairing the rule's formal parameter
// vectors with the actual parameters, in the ordering the rule kind dictates.
func (rule *Rule) bind(env map[string]float64, left, mod, right Module) error {
	for k := range env {
		delete(env, k)
	}

	switch rule.Kind {
	case LeftContext:
		if err := bindParams(env, rule.Left, left); err != nil {
			return err
		}
	case RightContext:
		// right pattern binds after the predecessor below
	case TwoSided:
		if err := bindParams(env, rule.Left, left); err != nil {
			return err
		}
	}

	if err := bindParams(env, rule.Predecessor, mod); err != nil {
		return err
	}

	if rule.Kind == RightContext || rule.Kind == TwoSided {
		if err := bindParams(env, rule.Right, right); err != nil {
			return err
		}
	}

	return nil
}

func bindParams(env map[string]float64, formal SymbolicModule, actual Module) error {
	if len(formal.Params) != len(actual.Params) {
		return &StructuralError{
			Symbol: actual.Symbol,
			Formal: len(formal.Params),
			Actual: len(actual.Params),
		}
	}

	for i, name := range formal.Params {
		env[name] = actual.Params[i]
	}

	return nil
}

// Applicable checks whether the rule rewrites mod given its located context.
// On success env holds the positional binding, ready for successor expansion.
func (rule *Rule) Applicable(env map[string]float64, left, mod, right Module) (bool, error) {
	if !rule.matchesSymbols(left, mod, right) {
		return false, nil
	}

	if err := rule.bind(env, left, mod, right); err != nil {
		return false, err
	}

	if rule.Condition == nil {
		return true, nil
	}

	val, err := rule.Condition.Eval(env)
	if err != nil {
		return false, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return false, &EvalError{Msg: fmt.Sprintf("condition evaluated to non-numeric value %v", val)}
	}

	return val != 0, nil
}

// Expand selects a successor template, augments env with the global
// definitions (positional names shadow them), evaluates every parameter
// expression, and appends the produced modules to out.
func (rule *Rule) Expand(env, definitions map[string]float64, rng *rand.Rand, out Word) (Word, error) {
	template := rule.Successors[0]

	if rule.Stochastic() {
		choice := rng.Float64()
		cumulative := 0.0
		for i, p := range rule.Probs {
			cumulative += p
			if cumulative > choice {
				template = rule.Successors[i]
				break
			}
		}
		// Rounding may leave the last cumulative just below the draw; the
		// loop's fallthrough keeps the first template, so pin the last one.
		if cumulative <= choice {
			template = rule.Successors[len(rule.Successors)-1]
		}
	}

	for name, val := range definitions {
		if _, bound := env[name]; !bound {
			env[name] = val
		}
	}

	for _, tm := range template {
		params := make([]float64, len(tm.Params))
		for i, expr := range tm.Params {
			val, err := expr.Eval(env)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, &EvalError{Msg: fmt.Sprintf(
					"parameter %d of %q evaluated to non-numeric value %v", i, tm.Symbol, val)}
			}
			params[i] = val
		}
		out = append(out, Module{Symbol: tm.Symbol, Params: params})
	}

	return out, nil
}
