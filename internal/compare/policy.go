package compare

import (
	"fmt"
	"strings"
)

// Policy decides which blocks are compared against which
type Policy int

const (
	BaseVsRest  Policy = iota // (0,1), (0,2), ... (0,n-1)
	Consecutive               // (0,1), (1,2), ... (n-2,n-1)
)

// Policies lists every policy in toggle order
var Policies = []Policy{BaseVsRest, Consecutive}

func (p Policy) String() string {
	switch p {
	case Consecutive:
		return "consecutive"
	default:
		return "base"
	}
}

// ParsePolicy accepts the names printed by String plus a few aliases
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "base", "base-vs-rest", "first":
		return BaseVsRest, nil
	case "consecutive", "seq", "sequential", "chain":
		return Consecutive, nil
	}
	return BaseVsRest, fmt.Errorf("unknown pairing policy %q (want base or consecutive)", s)
}

// Set implements pflag.Value
func (p *Policy) Set(s string) error {
	v, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value
func (p *Policy) Type() string {
	return "policy"
}

// Next returns the policy after p in toggle order
func (p Policy) Next() Policy {
	for i, q := range Policies {
		if q == p {
			return Policies[(i+1)%len(Policies)]
		}
	}
	return BaseVsRest
}

// Pairs returns the block pairs to compare for n blocks, or nil when n < 2
func (p Policy) Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n-1)
	switch p {
	case Consecutive:
		for i := 0; i < n-1; i++ {
			pairs = append(pairs, Pair{i, i + 1})
		}
	default:
		for i := 1; i < n; i++ {
			pairs = append(pairs, Pair{0, i})
		}
	}
	return pairs
}
