package causalproof

import "testing"

func buildProofFixture(t *testing.T) (*Proof, string, string) {
	t.Helper()
	r := mustRegistry(t, "agent-1")
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey error: %v", err)
	}

	var predecessor *string
	var last *StoredEvent
	for i := 0; i < 4; i++ {
		e, err := r.RegisterEvent(EventInput{AgentID: "agent-1", ActionType: ActionRequest, PayloadHash: Sum([]byte{byte(i)}), Predecessor: predecessor, Timestamp: int64(i * 1000)})
		if err != nil {
			t.Fatalf("RegisterEvent error: %v", err)
		}
		predecessor = &e.EventHash
		last = e
	}

	gen := NewGenerator(r)
	proof, err := gen.Generate(last.CausalEventID, priv, 0)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return proof, "agent-1", pub
}

func TestVerifyProofValid(t *testing.T) {
	proof, agentID, pub := buildProofFixture(t)
	result := VerifyProof(proof, agentID, pub)
	if !result.Valid {
		t.Fatalf("expected proof to be valid, errors: %v", result.Errors)
	}
	if result.VerifiedActions != len(proof.CausalChain) {
		t.Fatalf("expected verifiedActions %d, got %d", len(proof.CausalChain), result.VerifiedActions)
	}
	if result.TrustScore <= 0 {
		t.Fatalf("expected a positive trust score on success, got %f", result.TrustScore)
	}
}

func TestVerifyProofWrongAgent(t *testing.T) {
	proof, _, pub := buildProofFixture(t)
	result := VerifyProof(proof, "someone-else", pub)
	if result.Valid {
		t.Fatalf("expected identity mismatch to invalidate the proof")
	}
}

func TestVerifyProofTamperedEventHash(t *testing.T) {
	proof, agentID, pub := buildProofFixture(t)
	proof.TargetEvent.EventHash = Sum([]byte("forged"))
	result := VerifyProof(proof, agentID, pub)
	if result.Valid {
		t.Fatalf("expected tampered event hash to fail both inclusion and content integrity")
	}
	if len(result.Errors) < 2 {
		t.Fatalf("expected multiple independent checks to fail (no short-circuiting), got %v", result.Errors)
	}
}

func TestVerifyProofWrongPublicKey(t *testing.T) {
	proof, agentID, _ := buildProofFixture(t)
	other, _ := GeneratePrivateKey()
	otherPub, _ := PublicKey(other)
	result := VerifyProof(proof, agentID, otherPub)
	if result.Valid {
		t.Fatalf("expected signature check to fail against an unrelated public key")
	}
}

func TestVerifyProofBrokenChain(t *testing.T) {
	proof, agentID, pub := buildProofFixture(t)
	proof.CausalChain[1].PredecessorHash = nil
	result := VerifyProof(proof, agentID, pub)
	if result.Valid {
		t.Fatalf("expected broken chain linkage to invalidate the proof")
	}
	if result.VerifiedActions != 0 {
		t.Fatalf("expected verifiedActions 0 when chain integrity fails, got %d", result.VerifiedActions)
	}
}

func TestVerifyProofAllChecksRunUnconditionally(t *testing.T) {
	proof, agentID, pub := buildProofFixture(t)
	// Break identity, inclusion, content integrity, and chain integrity
	// all at once; every independent check should still report.
	proof.TargetEvent.AgentID = "nope"
	proof.ProofPath[0].SiblingHash = Sum([]byte("x"))
	proof.TargetEvent.Timestamp += 1
	proof.CausalChain[1].PredecessorHash = nil

	result := VerifyProof(proof, agentID, pub)
	if result.Valid {
		t.Fatalf("expected failure")
	}
	if len(result.Errors) < 3 {
		t.Fatalf("expected at least 3 independent violations, got %d: %v", len(result.Errors), result.Errors)
	}
}
