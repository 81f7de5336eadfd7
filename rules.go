package causalproof

import "fmt"

// RuleSet is a declarative set of semantic checks over a causal chain
// (spec.md §4.H). Zero-valued fields are inert: MaxTimeGapMs == 0 and
// MinVerificationDepth == 0 impose no constraint, and nil/empty slices
// impose no required or forbidden types.
type RuleSet struct {
	RequestMustPrecedeResponse bool
	MaxTimeGapMs               int64
	RequiredActionTypes        []ActionType
	ForbiddenActionTypes       []ActionType
	RequireDirectCausality     bool
	MinVerificationDepth       int
}

// RuleResult is what Validate returns.
type RuleResult struct {
	Valid      bool
	Violations []string
}

// Validate checks chain against every configured rule. An empty chain
// is always valid regardless of rules.
func (rs RuleSet) Validate(chain []CausalChainLink) RuleResult {
	if len(chain) == 0 {
		return RuleResult{Valid: true}
	}

	var violations []string

	if rs.RequestMustPrecedeResponse {
		seenRequest := false
		for _, link := range chain {
			switch link.ActionType {
			case ActionRequest:
				seenRequest = true
			case ActionResponse:
				if !seenRequest {
					violations = append(violations, "a response appears with no preceding request in the chain")
				}
			}
		}
	}

	if rs.MaxTimeGapMs > 0 {
		for i := 1; i < len(chain); i++ {
			gap := chain[i].Timestamp - chain[i-1].Timestamp
			if gap < 0 {
				gap = -gap
			}
			if gap > rs.MaxTimeGapMs {
				violations = append(violations, fmt.Sprintf("gap of %dms between elements %d and %d exceeds maxTimeGapMs %d", gap, i-1, i, rs.MaxTimeGapMs))
			}
		}
	}

	for _, required := range rs.RequiredActionTypes {
		found := false
		for _, link := range chain {
			if link.ActionType == required {
				found = true
				break
			}
		}
		if !found {
			violations = append(violations, fmt.Sprintf("required action type %q does not appear in the chain", required))
		}
	}

	for _, forbidden := range rs.ForbiddenActionTypes {
		for _, link := range chain {
			if link.ActionType == forbidden {
				violations = append(violations, fmt.Sprintf("forbidden action type %q appears in the chain", forbidden))
				break
			}
		}
	}

	if rs.RequireDirectCausality {
		for i := 1; i < len(chain); i++ {
			if chain[i].PredecessorHash == nil || *chain[i].PredecessorHash != chain[i-1].EventHash {
				violations = append(violations, fmt.Sprintf("element %d is not the direct causal successor of element %d", i, i-1))
			}
		}
	}

	if rs.MinVerificationDepth > 0 && len(chain) < rs.MinVerificationDepth {
		violations = append(violations, fmt.Sprintf("chain length %d is below minVerificationDepth %d", len(chain), rs.MinVerificationDepth))
	}

	return RuleResult{Valid: len(violations) == 0, Violations: violations}
}
