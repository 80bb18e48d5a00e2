package linden

import (
	"math/rand"
)

// LSystem holds the state of one derivation: the current word, the rule
// table, the ignore set, and the global definitions. The rule table, ignore
// set, and definitions are immutable after construction; the word is replaced
// wholesale by each generation. An LSystem is not safe for concurrent use,
// but distinct instances are fully independent.
type LSystem struct {
	word        Word
	rules       []*Rule
	ignore      SymbolSet
	definitions map[string]float64

	rng *rand.Rand

	// Scratch binding reused across rule applications to avoid a map
	// allocation per position
	env map[string]float64
}

// New constructs an L-system from an axiom string and rule strings. The
// ignore set and definitions may be nil. The random source used for
// stochastic rules starts from a fixed seed; call Seed to replace it.
func New(axiom string, rules []string, ignore SymbolSet, definitions map[string]float64) (*LSystem, error) {
	word, err := ParseAxiom(axiom)
	if err != nil {
		return nil, err
	}

	table := make([]*Rule, 0, len(rules))
	for _, line := range rules {
		rule, err := ParseRule(line)
		if err != nil {
			return nil, err
		}
		table = append(table, rule)
	}

	return &LSystem{
		word:        word,
		rules:       table,
		ignore:      ignore,
		definitions: definitions,
		rng:         rand.New(rand.NewSource(1)),
		env:         make(map[string]float64),
	}, nil
}

// Seed replaces the random source so that stochastic derivations are
// reproducible: a given (axiom, rules, seed) tuple fully determines every
// generation.
func (sys *LSystem) Seed(seed uint64) {
	sys.rng = rand.New(rand.NewSource(int64(seed)))
}

// CurrentWord returns the current generation. The word is borrowed: it is
// valid until the next call to NextGeneration.
func (sys *LSystem) CurrentWord() Word {
	return sys.word
}

// Rules returns the parsed rule table in declared order.
func (sys *LSystem) Rules() []*Rule {
	return sys.rules
}

// NextGeneration applies the rule table to every position of the current
// word in parallel-substitution fashion: each replacement is computed against
// the unmodified input word, and the outputs are concatenated in position
// order. Positions no rule matches are copied unchanged. On error the prior
// word is left intact so the caller may correct inputs and retry.
func (sys *LSystem) NextGeneration() (Word, error) {
	// L-systems tend to grow; give the next word room up front
	next := make(Word, 0, 2*len(sys.word))

	for i, mod := range sys.word {
		left := findLeftContext(sys.word, i, sys.ignore)
		right := findRightContext(sys.word, i, sys.ignore)

		applied := false
		for _, rule := range sys.rules {
			ok, err := rule.Applicable(sys.env, left, mod, right)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			next, err = rule.Expand(sys.env, sys.definitions, sys.rng, next)
			if err != nil {
				return nil, err
			}

			applied = true
			break
		}

		if !applied {
			// Identity production; copy the parameters so generations
			// never share slices
			params := make([]float64, len(mod.Params))
			copy(params, mod.Params)
			next = append(next, Module{Symbol: mod.Symbol, Params: params})
		}
	}

	sys.word = next

	return next, nil
}
