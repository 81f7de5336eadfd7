package causalproof

import (
	"encoding/base64"
	"testing"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func sampleProof() *Proof {
	return &Proof{
		TargetEvent: TargetEvent{
			CausalEventID:  "id-1",
			AgentID:        "agent-1",
			ActionType:     ActionRequest,
			PayloadHash:    Sum([]byte("p")),
			Timestamp:      100,
			EventHash:      Sum([]byte("event")),
			PositionInTree: 0,
			TreeRootHash:   Sum([]byte("root")),
		},
		ProofPath:      []ProofPathStep{{EventHash: "h", SiblingHash: "s", Position: "right"}},
		CausalChain:    []CausalChainLink{{EventHash: Sum([]byte("event")), ActionType: ActionRequest, Timestamp: 100}},
		TreeRootHash:   Sum([]byte("root")),
		AgentSignature: "0xdeadbeef",
	}
}

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	proof := sampleProof()
	header, err := EncodeHeader(proof)
	if err != nil {
		t.Fatalf("EncodeHeader error: %v", err)
	}
	decoded, err := DecodeHeader(header)
	if err != nil {
		t.Fatalf("DecodeHeader error: %v", err)
	}
	if decoded.TargetEvent.CausalEventID != proof.TargetEvent.CausalEventID {
		t.Fatalf("expected causalEventId to round-trip")
	}
	if decoded.AgentSignature != proof.AgentSignature {
		t.Fatalf("expected agentSignature to round-trip")
	}
}

func TestDecodeHeaderRejectsInvalidBase64(t *testing.T) {
	if _, err := DecodeHeader("not-valid-base64!!!"); !IsCode(err, CodeDecodeFailed) {
		t.Fatalf("expected decode-failed error for invalid base64, got %v", err)
	}
}

func TestDecodeHeaderRejectsNonObjectJSON(t *testing.T) {
	header := b64("[1,2,3]")
	if _, err := DecodeHeader(header); !IsCode(err, CodeDecodeFailed) {
		t.Fatalf("expected decode-failed error for a non-object JSON payload, got %v", err)
	}
}

func TestDecodeHeaderRejectsMissingField(t *testing.T) {
	header := b64(`{"targetEvent":{},"proofPath":[],"causalChain":[],"treeRootHash":"x","agentSignature":"y"}`)
	if _, err := DecodeHeader(header); !IsCode(err, CodeDecodeFailed) {
		t.Fatalf("expected decode-failed error for missing targetEvent fields, got %v", err)
	}
}

func TestDecodeHeaderRejectsWrongFieldType(t *testing.T) {
	header := b64(`{
		"targetEvent": {
			"causalEventId": "id-1", "agentId": "agent-1", "actionType": "request",
			"payloadHash": "0xabc", "predecessorHash": null, "timestamp": "not-a-number",
			"eventHash": "0xdef", "positionInTree": 0, "treeRootHash": "0x123"
		},
		"proofPath": [], "causalChain": [], "treeRootHash": "0x123", "agentSignature": "0xsig"
	}`)
	if _, err := DecodeHeader(header); !IsCode(err, CodeDecodeFailed) {
		t.Fatalf("expected decode-failed error for a wrong-typed timestamp field, got %v", err)
	}
}
