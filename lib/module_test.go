package linden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleString(t *testing.T) {
	var tests = []struct {
		module   Module
		expected string
	}{
		{Module{Symbol: "F"}, "F"},
		{Module{Symbol: "+"}, "+"},
		{Module{Symbol: "F", Params: []float64{1, 0}}, "F(1,0)"},
		{Module{Symbol: "A", Params: []float64{0.458}}, "A(0.458)"},
		{Module{Symbol: "Fl", Params: []float64{-2.5}}, "Fl(-2.5)"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.module.String())
	}
}

func TestWordString(t *testing.T) {
	word := Word{
		{Symbol: "F", Params: []float64{1}},
		{Symbol: "+"},
		{Symbol: "F", Params: []float64{0.7}},
	}

	assert.Equal(t, "F(1)+F(0.7)", word.String())
	assert.Equal(t, []string{"F", "+", "F"}, word.Symbols())
}

func TestEmptyModule(t *testing.T) {
	assert.True(t, EmptyModule().IsEmpty())
	assert.False(t, Module{Symbol: "F"}.IsEmpty())
}
