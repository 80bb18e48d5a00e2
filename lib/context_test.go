package linden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContextBrackets(t *testing.T) {
	// A [ B ] C
	word, err := ParseAxiom("A [ B ] C")
	require.NoError(t, err)

	var tests = []struct {
		name  string
		pos   int
		left  string
		right string
	}{
		// The bracketed branch is skipped when looking left from C;
		// right context never leaks out of the word
		{"C", 4, "A", ""},
		// B sits inside its own branch: its parent is A, and the branch
		// ends right after it
		{"B", 2, "A", ""},
		// A's successor on the main filament is C, not the side branch
		{"A", 0, "", "C"},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			left := findLeftContext(word, test.pos, nil)
			right := findRightContext(word, test.pos, nil)

			assert.Equal(t, test.left, left.Symbol)
			assert.Equal(t, test.right, right.Symbol)
		})
	}
}

func TestFindContextNestedBranches(t *testing.T) {
	// A [ B [ C ] D ] E F
	word, err := ParseAxiom("A [ B [ C ] D ] E F")
	require.NoError(t, err)

	// From E (index 8): the whole branch, including its nested branch,
	// is skipped leftwards
	assert.Equal(t, "A", findLeftContext(word, 8, nil).Symbol)
	assert.Equal(t, "F", findRightContext(word, 8, nil).Symbol)

	// From D (index 6): the nested [ C ] is skipped, B is the neighbour
	assert.Equal(t, "B", findLeftContext(word, 6, nil).Symbol)
	// D is last on its branch
	assert.Equal(t, "", findRightContext(word, 6, nil).Symbol)
}

func TestFindContextWordEdges(t *testing.T) {
	word, err := ParseAxiom("A B")
	require.NoError(t, err)

	assert.True(t, findLeftContext(word, 0, nil).IsEmpty())
	assert.Equal(t, "B", findRightContext(word, 0, nil).Symbol)
	assert.Equal(t, "A", findLeftContext(word, 1, nil).Symbol)
	assert.True(t, findRightContext(word, 1, nil).IsEmpty())
}

func TestFindContextIgnore(t *testing.T) {
	// The signal-propagation setup: geometry symbols are transparent
	word, err := ParseAxiom("F 1 F 1 F 1")
	require.NoError(t, err)

	ignore := NewSymbolSet("+", "-", "F")

	assert.Equal(t, "1", findLeftContext(word, 3, ignore).Symbol)
	assert.Equal(t, "1", findRightContext(word, 3, ignore).Symbol)

	// Without the ignore set the F's are the nearest neighbours
	assert.Equal(t, "F", findLeftContext(word, 3, nil).Symbol)
	assert.Equal(t, "F", findRightContext(word, 3, nil).Symbol)
}

func TestFindContextCarriesParams(t *testing.T) {
	word, err := ParseAxiom("A(1,2) B(3) C")
	require.NoError(t, err)

	left := findLeftContext(word, 2, nil)
	assert.Equal(t, "B", left.Symbol)
	assert.Equal(t, []float64{3}, left.Params)
}
