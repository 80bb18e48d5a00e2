package linden

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var identPattern = regexp.MustCompile("^[a-zA-Z_][a-zA-Z0-9_]*$")

// splitModules splits a whitespace-separated sequence of modules, keeping
// parenthesised parameter lists intact so whitespace around commas inside
// them is tolerated.
func splitModules(input string) []string {
	var fields []string
	var sb strings.Builder
	depth := 0

	flush := func() {
		if sb.Len() > 0 {
			fields = append(fields, sb.String())
			sb.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '(':
			depth++
			sb.WriteRune(r)
		case r == ')':
			depth--
			sb.WriteRune(r)
		case depth == 0 && unicode.IsSpace(r):
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()

	return fields
}

// splitModuleText separates a single module string into its symbol and the
// raw comma-separated parameter list. The second return is empty when the
// module carries no parentheses.
func splitModuleText(input string) (string, []string, error) {
	text := strings.TrimSpace(input)

	open := strings.IndexByte(text, '(')
	if open < 0 {
		return text, nil, nil
	}

	symbol := text[:open]
	if !strings.HasSuffix(text, ")") {
		return "", nil, &ParseError{Input: input, Pos: open, Msg: "unterminated parameter list"}
	}

	inner := strings.TrimSpace(text[open+1 : len(text)-1])
	if inner == "" {
		return symbol, nil, nil
	}

	params := strings.Split(inner, ",")
	for i := range params {
		params[i] = strings.TrimSpace(params[i])
	}

	return symbol, params, nil
}

// ParseModule parses a single module with numeric parameters, e.g. "F(1,0)".
func ParseModule(input string) (Module, error) {
	symbol, raw, err := splitModuleText(input)
	if err != nil {
		return Module{}, err
	}

	if len(raw) == 0 {
		return Module{Symbol: symbol}, nil
	}

	params := make([]float64, len(raw))
	for i, text := range raw {
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Module{}, &ParseError{Input: input, Pos: 0,
				Msg: fmt.Sprintf("invalid numeric parameter %q", text)}
		}
		params[i] = val
	}

	return Module{Symbol: symbol, Params: params}, nil
}

// parseSymbolicModule parses a module whose parameters are formal names,
// e.g. "F(x,t)".
func parseSymbolicModule(input string) (SymbolicModule, error) {
	symbol, raw, err := splitModuleText(input)
	if err != nil {
		return SymbolicModule{}, err
	}

	for _, name := range raw {
		if !identPattern.MatchString(name) {
			return SymbolicModule{}, &ParseError{Input: input, Pos: 0,
				Msg: fmt.Sprintf("invalid formal parameter %q", name)}
		}
	}

	return SymbolicModule{Symbol: symbol, Params: raw}, nil
}

// parseTemplateModule parses a successor module whose parameters are
// arithmetic expressions, e.g. "F(x*0.3,2)".
func parseTemplateModule(input string) (TemplateModule, error) {
	symbol, raw, err := splitModuleText(input)
	if err != nil {
		return TemplateModule{}, err
	}

	if len(raw) == 0 {
		return TemplateModule{Symbol: symbol}, nil
	}

	params := make([]Expr, len(raw))
	for i, text := range raw {
		expr, err := ParseExpr(text)
		if err != nil {
			return TemplateModule{}, err
		}
		params[i] = expr
	}

	return TemplateModule{Symbol: symbol, Params: params}, nil
}

// ParseAxiom parses a whitespace-separated axiom string, e.g. "F(1,0) + F(2)".
// Axiom parameters must be numeric literals.
func ParseAxiom(input string) (Word, error) {
	fields := splitModules(input)
	if len(fields) == 0 {
		return nil, &ParseError{Input: input, Pos: 0, Msg: "empty axiom"}
	}

	word := make(Word, 0, len(fields))
	for _, field := range fields {
		mod, err := ParseModule(field)
		if err != nil {
			return nil, err
		}
		word = append(word, mod)
	}

	return word, nil
}

// parsePredecessor splits the predecessor section on its context markers and
// returns the rule kind together with the three pattern slots. Slots unused
// by the kind hold the empty module.
func parsePredecessor(input string) (RuleKind, SymbolicModule, SymbolicModule, SymbolicModule, error) {
	var empty SymbolicModule

	li := strings.IndexByte(input, '<')
	ri := strings.IndexByte(input, '>')

	switch {
	case li >= 0 && ri >= 0:
		if ri < li {
			return 0, empty, empty, empty,
				&ParseError{Input: input, Pos: ri, Msg: "right context before left context"}
		}
		left, err := parseSymbolicModule(input[:li])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		pred, err := parseSymbolicModule(input[li+1 : ri])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		right, err := parseSymbolicModule(input[ri+1:])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		return TwoSided, left, pred, right, nil
	case li >= 0:
		left, err := parseSymbolicModule(input[:li])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		pred, err := parseSymbolicModule(input[li+1:])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		return LeftContext, left, pred, empty, nil
	case ri >= 0:
		pred, err := parseSymbolicModule(input[:ri])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		right, err := parseSymbolicModule(input[ri+1:])
		if err != nil {
			return 0, empty, empty, empty, err
		}
		return RightContext, empty, pred, right, nil
	default:
		pred, err := parseSymbolicModule(input)
		if err != nil {
			return 0, empty, empty, empty, err
		}
		return ContextFree, empty, pred, empty, nil
	}
}

func parseSuccessorSequence(input string) ([]TemplateModule, error) {
	fields := splitModules(input)
	if len(fields) == 0 {
		return nil, &ParseError{Input: input, Pos: 0, Msg: "empty successor"}
	}

	seq := make([]TemplateModule, 0, len(fields))
	for _, field := range fields {
		tm, err := parseTemplateModule(field)
		if err != nil {
			return nil, err
		}
		seq = append(seq, tm)
	}

	return seq, nil
}

// parseSuccessor parses the successor section. A section without ';' is a
// single deterministic template; otherwise probabilities sit at even indices
// and successor sequences at odd indices.
func parseSuccessor(input string) ([]float64, [][]TemplateModule, error) {
	if !strings.Contains(input, ";") {
		seq, err := parseSuccessorSequence(input)
		if err != nil {
			return nil, nil, err
		}
		return nil, [][]TemplateModule{seq}, nil
	}

	parts := strings.Split(input, ";")
	if len(parts)%2 != 0 {
		return nil, nil, &ParseError{Input: input, Pos: 0,
			Msg: "stochastic successor must alternate probabilities and sequences"}
	}

	numAlts := len(parts) / 2
	probs := make([]float64, 0, numAlts)
	successors := make([][]TemplateModule, 0, numAlts)

	for i := 0; i < len(parts); i += 2 {
		prob, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, nil, &ParseError{Input: input, Pos: 0,
				Msg: fmt.Sprintf("invalid probability %q", strings.TrimSpace(parts[i]))}
		}
		probs = append(probs, prob)

		seq, err := parseSuccessorSequence(parts[i+1])
		if err != nil {
			return nil, nil, err
		}
		successors = append(successors, seq)
	}

	return probs, successors, nil
}

// ParseRule parses a production rule string into a Rule.
//
// The predecessor section ends at the first '?', or at the ':' introducing a
// condition; the condition then runs up to the '?'. Examples:
//
// - F?F - F + + F - F
// - A < B > C ? D
// - F(x,t):t==0?F(x*0.3,2) + F(x*0.7,0)
// - F?0.3;A;0.7;B
func ParseRule(input string) (*Rule, error) {
	qi := strings.IndexByte(input, '?')
	if qi < 0 {
		return nil, &ParseError{Input: input, Pos: 0, Msg: "rule has no '?' separator"}
	}

	predText := input[:qi]
	condText := ""
	succText := input[qi+1:]

	if ci := strings.IndexByte(input, ':'); ci >= 0 && ci < qi {
		predText = input[:ci]
		condText = strings.TrimSpace(input[ci+1 : qi])
	}

	kind, left, pred, right, err := parsePredecessor(predText)
	if err != nil {
		return nil, err
	}

	probs, successors, err := parseSuccessor(succText)
	if err != nil {
		return nil, err
	}

	return NewRule(kind, left, pred, right, condText, successors, probs)
}

// ParseIgnore parses an ignore specification into a symbol set. Symbols are
// whitespace-separated; a bare run like "+-F" is treated as one symbol per
// character, matching the compact form the rule language uses elsewhere.
func ParseIgnore(input string) SymbolSet {
	set := make(SymbolSet)

	fields := strings.Fields(input)
	for _, field := range fields {
		if len(fields) == 1 && len([]rune(field)) > 1 && !identPattern.MatchString(field) {
			for _, r := range field {
				set[string(r)] = struct{}{}
			}
			continue
		}
		set[field] = struct{}{}
	}

	return set
}

// ParseDefinitions parses "name=value" pairs into a definitions map.
func ParseDefinitions(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	defs := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			return nil, &ParseError{Input: pair, Pos: 0, Msg: "definition must be name=value"}
		}

		name := strings.TrimSpace(pair[:eq])
		if !identPattern.MatchString(name) {
			return nil, &ParseError{Input: pair, Pos: 0,
				Msg: fmt.Sprintf("invalid definition name %q", name)}
		}

		val, err := strconv.ParseFloat(strings.TrimSpace(pair[eq+1:]), 64)
		if err != nil {
			return nil, &ParseError{Input: pair, Pos: eq + 1,
				Msg: fmt.Sprintf("invalid definition value %q", strings.TrimSpace(pair[eq+1:]))}
		}

		defs[name] = val
	}

	return defs, nil
}
