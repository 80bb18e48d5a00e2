package linden

import (
	"encoding/json"
	"fmt"
	"os"
)

// On-disk description of a complete L-system
type systemFile struct {
	Axiom       string             `json:"axiom"`
	Rules       []string           `json:"rules"`
	Ignore      string             `json:"ignore"`
	Definitions map[string]float64 `json:"definitions"`
	Seed        *uint64            `json:"seed"`
}

// LoadSystemFile constructs an L-system from a JSON description file:
//
//	{
//	  "axiom": "F(1,0)",
//	  "rules": ["F(x,t):t==0?F(x*0.3,2) + F(x*0.7,0)", "F(x,t):t>0?F(x,t-1)"],
//	  "ignore": "+-",
//	  "definitions": {"phi": 1.618},
//	  "seed": 7
//	}
//
// Only "axiom" and "rules" are required.
func LoadSystemFile(path string) (*LSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var desc systemFile
	decoder := json.NewDecoder(f)
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("invalid system file %s: %w", path, err)
	}

	sys, err := New(desc.Axiom, desc.Rules, ParseIgnore(desc.Ignore), desc.Definitions)
	if err != nil {
		return nil, fmt.Errorf("system file %s: %w", path, err)
	}

	if desc.Seed != nil {
		sys.Seed(*desc.Seed)
	}

	return sys, nil
}
