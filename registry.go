package causalproof

import "strconv"

// Registry is a single-writer, append-only causal event store bound to
// one agent identifier (spec.md §3, §4.E). It wraps a MerkleTree and
// keeps two lookup indices plus a pointer to the most recent event.
// Concurrent RegisterEvent calls on the same Registry must be
// serialized by the caller; independent registries are independent.
type Registry struct {
	agentID    string
	log        *MerkleTree
	byID       map[string]*StoredEvent
	byDigest   map[string]*StoredEvent
	order      []*StoredEvent
	lastDigest string
}

// NewRegistry returns an empty registry bound to agentID.
func NewRegistry(agentID string) (*Registry, error) {
	if agentID == "" {
		return nil, errEmptyAgentID()
	}
	return &Registry{
		agentID:  agentID,
		log:      NewMerkleTree(),
		byID:     make(map[string]*StoredEvent),
		byDigest: make(map[string]*StoredEvent),
	}, nil
}

// AgentID returns the bound agent identifier.
func (r *Registry) AgentID() string { return r.agentID }

// RegisterEvent validates input against I1-I3, computes the event's
// identifier and digest, appends it to the log, and returns the
// augmented event.
func (r *Registry) RegisterEvent(input EventInput) (*StoredEvent, error) {
	if input.AgentID != r.agentID {
		return nil, errAgentMismatch(r.agentID, input.AgentID)
	}
	if input.Predecessor != nil {
		if _, ok := r.byDigest[*input.Predecessor]; !ok {
			return nil, errUnknownPredecessor(*input.Predecessor)
		}
	}
	if !input.ActionType.valid() {
		return nil, errInvalidActionType(input.ActionType)
	}

	id, err := NewEventID()
	if err != nil {
		return nil, err
	}
	digest := EventHash(input.AgentID, input.ActionType, input.PayloadHash, input.Predecessor, input.Timestamp)
	position := r.log.LeafCount()
	root := r.log.Append(digest)

	event := &StoredEvent{
		CausalEventID:  id,
		AgentID:        input.AgentID,
		ActionType:     input.ActionType,
		PayloadHash:    input.PayloadHash,
		Predecessor:    input.Predecessor,
		Timestamp:      input.Timestamp,
		EventHash:      digest,
		PositionInTree: position,
		TreeRootHash:   root,
	}

	r.byID[id] = event
	r.byDigest[digest] = event
	r.order = append(r.order, event)
	r.lastDigest = digest

	return event, nil
}

// GetByID returns the event with the given causal identifier, or false
// if none exists.
func (r *Registry) GetByID(id string) (*StoredEvent, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// GetByDigest returns the event with the given event digest, or false
// if none exists.
func (r *Registry) GetByDigest(digest string) (*StoredEvent, bool) {
	e, ok := r.byDigest[digest]
	return e, ok
}

// Root returns the log's current root digest.
func (r *Registry) Root() string { return r.log.Root() }

// LastDigest returns the most recently registered event's digest, or
// "" if the registry is empty.
func (r *Registry) LastDigest() string { return r.lastDigest }

// Count returns the number of registered events.
func (r *Registry) Count() int { return len(r.order) }

// Export returns a snapshot slice of every registered event in
// insertion order. Mutating the returned slice does not affect the
// registry.
func (r *Registry) Export() []*StoredEvent {
	out := make([]*StoredEvent, len(r.order))
	copy(out, r.order)
	return out
}

// ProofPath delegates to the underlying log for the given position.
func (r *Registry) ProofPath(position int) ([]ProofPathStep, error) {
	return r.log.ProofPath(position)
}

// CausalChain walks backward from targetID via predecessor pointers up
// to depth-1 steps, then returns the gathered events oldest-first with
// the target last. An unknown target returns an empty list. A broken
// predecessor pointer mid-walk (not expected in a well-formed registry)
// ends the walk early with whatever was gathered plus the target.
func (r *Registry) CausalChain(targetID string, depth int) []*StoredEvent {
	target, ok := r.byID[targetID]
	if !ok {
		return nil
	}

	reversed := []*StoredEvent{target}
	current := target
	for steps := 0; steps < depth-1; steps++ {
		if current.Predecessor == nil {
			break
		}
		prev, ok := r.byDigest[*current.Predecessor]
		if !ok {
			break
		}
		reversed = append(reversed, prev)
		current = prev
	}

	chain := make([]*StoredEvent, len(reversed))
	for i, e := range reversed {
		chain[len(reversed)-1-i] = e
	}
	return chain
}

// RestoreRegistry rebuilds a registry from a previously exported
// snapshot (Export's output, in the same order), replaying each
// event's already-computed digest into the log rather than
// regenerating identifiers or digests. Persistence format is the
// caller's concern (spec.md §1's "out of scope"); this only lets a
// caller's own snapshot round-trip back into a working Registry.
func RestoreRegistry(agentID string, events []*StoredEvent) (*Registry, error) {
	r, err := NewRegistry(agentID)
	if err != nil {
		return nil, err
	}
	for i, e := range events {
		if e.AgentID != agentID {
			return nil, errAgentMismatch(agentID, e.AgentID)
		}
		if e.PositionInTree != i {
			return nil, errInternal("snapshot event at index "+strconv.Itoa(i)+" has positionInTree "+strconv.Itoa(e.PositionInTree), nil)
		}
		root := r.log.Append(e.EventHash)
		if root != e.TreeRootHash {
			return nil, errInternal("snapshot event at index "+strconv.Itoa(i)+" does not reproduce its recorded root hash", nil)
		}
		clone := *e
		r.byID[e.CausalEventID] = &clone
		r.byDigest[e.EventHash] = &clone
		r.order = append(r.order, &clone)
		r.lastDigest = e.EventHash
	}
	return r, nil
}
