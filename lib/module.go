package linden

import (
	"strconv"
	"strings"
)

// Module is a symbol of the alphabet together with its numeric parameters.
// An example: A(2,3) implies Symbol = "A" and Params = [2, 3].
// A module with no parameters has a nil or empty Params slice.
// The zero value is the empty module, used to denote "no context present".
type Module struct {
	Symbol string
	Params []float64
}

// EmptyModule returns the sentinel module that marks a missing neighbour.
func EmptyModule() Module {
	return Module{}
}

// IsEmpty reports whether the module is the empty sentinel.
func (m Module) IsEmpty() bool {
	return m.Symbol == "" && len(m.Params) == 0
}

func (m Module) String() string {
	if len(m.Params) == 0 {
		return m.Symbol
	}

	var sb strings.Builder
	sb.WriteString(m.Symbol)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	}
	sb.WriteByte(')')

	return sb.String()
}

// Word is one generation of the derivation: an ordered sequence of modules.
type Word []Module

// Symbols returns the symbol of every module in order.
func (w Word) Symbols() []string {
	symbols := make([]string, len(w))
	for i, m := range w {
		symbols[i] = m.Symbol
	}
	return symbols
}

func (w Word) String() string {
	var sb strings.Builder
	for _, m := range w {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// SymbolicModule is a module as it appears in a rule predecessor or context
// pattern: its parameter slots hold formal names instead of values.
type SymbolicModule struct {
	Symbol string
	Params []string
}

// IsEmpty reports whether the pattern is the empty sentinel.
func (m SymbolicModule) IsEmpty() bool {
	return m.Symbol == "" && len(m.Params) == 0
}

// TemplateModule is a module as it appears in a rule successor: its parameter
// slots hold arithmetic expressions evaluated at replacement time.
type TemplateModule struct {
	Symbol string
	Params []Expr
}
