package causalproof

import "math"

// Generator assembles proofs from a registry (spec.md §4.F).
type Generator struct {
	registry *Registry
}

// NewGenerator binds a Generator to a registry.
func NewGenerator(registry *Registry) *Generator {
	return &Generator{registry: registry}
}

// Generate builds a proof for targetID: the target event, its
// inclusion path, its causal chain walked to depth (depth<=0 means no
// limit), and the registry's current root signed with priv. The
// signed root is the registry's root at call time, not the root the
// target was inserted under — a proof attests "the agent whose log
// presently has this root produced the target and the chain reaching
// it."
func (g *Generator) Generate(targetID, privHex string, depth int) (*Proof, error) {
	target, ok := g.registry.GetByID(targetID)
	if !ok {
		return nil, errUnknownEvent(targetID)
	}

	if depth <= 0 {
		depth = math.MaxInt32
	}
	path, err := g.registry.ProofPath(target.PositionInTree)
	if err != nil {
		return nil, err
	}

	chainEvents := g.registry.CausalChain(targetID, depth)
	chain := make([]CausalChainLink, len(chainEvents))
	for i, e := range chainEvents {
		chain[i] = CausalChainLink{
			EventHash:       e.EventHash,
			ActionType:      e.ActionType,
			Timestamp:       e.Timestamp,
			PredecessorHash: e.Predecessor,
		}
	}

	root := g.registry.Root()
	sig, err := Sign(root, privHex)
	if err != nil {
		return nil, err
	}

	return &Proof{
		TargetEvent:    toTargetEvent(target),
		ProofPath:      path,
		CausalChain:    chain,
		TreeRootHash:   root,
		AgentSignature: sig,
	}, nil
}

// GenerateBatch applies Generate over a list of target identifiers,
// stopping at the first error.
func (g *Generator) GenerateBatch(targetIDs []string, privHex string, depth int) ([]*Proof, error) {
	proofs := make([]*Proof, 0, len(targetIDs))
	for _, id := range targetIDs {
		p, err := g.Generate(id, privHex, depth)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, p)
	}
	return proofs, nil
}

func toTargetEvent(e *StoredEvent) TargetEvent {
	return TargetEvent{
		CausalEventID:   e.CausalEventID,
		AgentID:         e.AgentID,
		ActionType:      e.ActionType,
		PayloadHash:     e.PayloadHash,
		PredecessorHash: e.Predecessor,
		Timestamp:       e.Timestamp,
		EventHash:       e.EventHash,
		PositionInTree:  e.PositionInTree,
		TreeRootHash:    e.TreeRootHash,
	}
}
