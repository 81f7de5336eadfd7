package causalproof

import "fmt"

// VerifyProof independently re-checks a proof against an expected
// agent identifier and public key (spec.md §4.G). All five checks run
// unconditionally — no check short-circuits another — so a caller
// always sees the complete set of violations, not just the first one.
func VerifyProof(proof *Proof, expectedAgentID, expectedPublicKey string) VerificationResult {
	var errs []string

	if proof.TargetEvent.AgentID != expectedAgentID {
		errs = append(errs, fmt.Sprintf("identity: expected agent %q, proof targets %q", expectedAgentID, proof.TargetEvent.AgentID))
	}

	if !VerifyInclusionProof(proof.TargetEvent.EventHash, proof.ProofPath, proof.TreeRootHash) {
		errs = append(errs, "inclusion: proof path does not fold to the claimed tree root")
	}

	if !Verify(proof.TreeRootHash, proof.AgentSignature, expectedPublicKey) {
		errs = append(errs, "signature: agent signature does not verify against the expected public key")
	}

	recomputed := EventHash(proof.TargetEvent.AgentID, proof.TargetEvent.ActionType, proof.TargetEvent.PayloadHash, proof.TargetEvent.PredecessorHash, proof.TargetEvent.Timestamp)
	if recomputed != proof.TargetEvent.EventHash {
		errs = append(errs, "content integrity: recomputed event digest does not match targetEvent.eventHash")
	}

	chainErr := chainIntegrity(proof)
	chainOK := chainErr == nil
	if chainErr != nil {
		errs = append(errs, "chain integrity: "+chainErr.Error())
	}

	result := VerificationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
	if chainOK {
		result.VerifiedActions = len(proof.CausalChain)
	}
	if result.Valid {
		age := float64(nowMillis() - proof.TargetEvent.Timestamp)
		lengthTerm := float64(len(proof.CausalChain)) / 10
		if lengthTerm > 1 {
			lengthTerm = 1
		}
		ageTerm := 1 - age/300000
		if ageTerm < 0 {
			ageTerm = 0
		}
		result.TrustScore = 0.2 + 0.4*lengthTerm + 0.4*ageTerm
	}
	return result
}

// chainIntegrity checks: the chain's last element matches the target,
// every non-first element's predecessorHash matches the previous
// element's eventHash, and timestamps are non-decreasing.
func chainIntegrity(proof *Proof) error {
	chain := proof.CausalChain
	if len(chain) == 0 {
		return fmt.Errorf("chain is empty")
	}
	last := chain[len(chain)-1]
	if last.EventHash != proof.TargetEvent.EventHash {
		return fmt.Errorf("last chain element %q does not match target %q", last.EventHash, proof.TargetEvent.EventHash)
	}
	for i := 1; i < len(chain); i++ {
		prev, cur := chain[i-1], chain[i]
		if cur.PredecessorHash == nil || *cur.PredecessorHash != prev.EventHash {
			return fmt.Errorf("element %d's predecessorHash does not equal element %d's eventHash", i, i-1)
		}
		if cur.Timestamp < prev.Timestamp {
			return fmt.Errorf("element %d's timestamp precedes element %d's", i, i-1)
		}
	}
	return nil
}
