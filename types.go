package causalproof

import "time"

// ActionType is the closed set of event kinds a causal registry accepts
// (spec.md §3).
type ActionType string

const (
	ActionRequest        ActionType = "request"
	ActionResponse       ActionType = "response"
	ActionError          ActionType = "error"
	ActionStateTransition ActionType = "state_transition"
)

func (t ActionType) valid() bool {
	switch t {
	case ActionRequest, ActionResponse, ActionError, ActionStateTransition:
		return true
	default:
		return false
	}
}

// EventInput is what a caller submits to RegisterEvent.
type EventInput struct {
	AgentID      string
	ActionType   ActionType
	PayloadHash  string // 0x-prefixed 64-hex SHA3-256 digest of the payload
	Predecessor  *string // nil means absent; otherwise a 0x-prefixed digest of an existing event
	Timestamp    int64   // client-supplied, untrusted, milliseconds since epoch
}

// StoredEvent is an EventInput augmented with everything RegisterEvent
// computes (spec.md §3, invariants I1-I7).
type StoredEvent struct {
	CausalEventID   string
	AgentID         string
	ActionType      ActionType
	PayloadHash     string
	Predecessor     *string
	Timestamp       int64
	EventHash       string
	PositionInTree  int
	TreeRootHash    string
}

// ProofPathStep is one level of an inclusion proof (spec.md §4.D).
type ProofPathStep struct {
	EventHash   string `json:"eventHash"`
	SiblingHash string `json:"siblingHash"`
	Position    string `json:"position"` // "left" or "right"
}

// CausalChainLink is one event in a causal chain, as carried inside a
// proof (spec.md §6 wire format).
type CausalChainLink struct {
	EventHash       string  `json:"eventHash"`
	ActionType      ActionType `json:"actionType"`
	Timestamp       int64   `json:"timestamp"`
	PredecessorHash *string `json:"predecessorHash"`
}

// TargetEvent is the wire shape of a StoredEvent inside a Proof.
type TargetEvent struct {
	CausalEventID   string     `json:"causalEventId"`
	AgentID         string     `json:"agentId"`
	ActionType      ActionType `json:"actionType"`
	PayloadHash     string     `json:"payloadHash"`
	PredecessorHash *string    `json:"predecessorHash"`
	Timestamp       int64      `json:"timestamp"`
	EventHash       string     `json:"eventHash"`
	PositionInTree  int        `json:"positionInTree"`
	TreeRootHash    string     `json:"treeRootHash"`
}

// Proof is the transport form of a generated proof (spec.md §6).
type Proof struct {
	TargetEvent    TargetEvent       `json:"targetEvent"`
	ProofPath      []ProofPathStep   `json:"proofPath"`
	CausalChain    []CausalChainLink `json:"causalChain"`
	TreeRootHash   string            `json:"treeRootHash"`
	AgentSignature string            `json:"agentSignature"`
}

// LightProof is the fast-path summary described in spec.md §4.I.
type LightProof struct {
	AgentID     string             `json:"agentId"`
	TargetHash  string             `json:"targetHash"`
	Chain       []LightChainLink   `json:"chain"`
	GeneratedAt int64              `json:"generatedAt"`
}

// LightChainLink is one entry of a LightProof's chain summary.
type LightChainLink struct {
	EventHash string `json:"eventHash"`
	Timestamp int64  `json:"timestamp"`
}

// VerificationResult is what the stateless verifier (4.G) returns.
type VerificationResult struct {
	Valid           bool
	Errors          []string
	VerifiedActions int
	TrustScore      float64
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
