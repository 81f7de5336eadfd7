package causalproof

// MerkleTree is an append-only log of 32-byte leaf digests with an
// incrementally maintained root and O(log n) inclusion proofs
// (spec.md §4.D). Nodes are keyed by (level, index); level 0 holds
// leaves in insertion order.
type MerkleTree struct {
	nodes map[nodeKey]string
	size  int
	root  string
}

type nodeKey struct {
	level int
	index int
}

// NewMerkleTree returns an empty tree. Its root is the empty-string
// sentinel until the first leaf is appended.
func NewMerkleTree() *MerkleTree {
	return &MerkleTree{nodes: make(map[nodeKey]string)}
}

// LeafCount returns the number of leaves appended so far.
func (t *MerkleTree) LeafCount() int { return t.size }

// Root returns the current root: "" with zero leaves, the leaf digest
// itself with exactly one leaf, otherwise the unique node at the
// topmost level.
func (t *MerkleTree) Root() string { return t.root }

// Append adds a leaf digest and returns the new root.
func (t *MerkleTree) Append(leafHash string) string {
	i := t.size
	t.nodes[nodeKey{0, i}] = leafHash
	t.size++

	if t.size == 1 {
		t.root = leafHash
		return t.root
	}

	current := leafHash
	idx := i
	level := 0
	for {
		p := idx / 2
		if idx%2 == 0 {
			// No sibling exists yet at this level; promote as-is.
			t.nodes[nodeKey{level + 1, p}] = current
		} else {
			sibling := t.nodes[nodeKey{level, idx - 1}]
			current = pairHash(sibling, current)
			t.nodes[nodeKey{level + 1, p}] = current
		}
		idx = p
		level++
		if levelNodeCount(level, t.size) == 1 {
			t.root = t.nodes[nodeKey{level, idx}]
			return t.root
		}
	}
}

// ProofPath returns the inclusion path for leaf i: one element per
// level from 0 to height-2. A level where no sibling exists yet (an
// odd node count, the node promoted unpaired) contributes a self-pair
// sentinel element (siblingHash == eventHash, position "right").
func (t *MerkleTree) ProofPath(i int) ([]ProofPathStep, error) {
	if i < 0 || i >= t.size {
		return nil, errInvalidMerkleIndex(i, t.size)
	}
	path := make([]ProofPathStep, 0)
	idx := i
	level := 0
	for levelNodeCount(level, t.size) > 1 {
		current := t.nodes[nodeKey{level, idx}]
		count := levelNodeCount(level, t.size)
		if idx%2 == 1 {
			sibling := t.nodes[nodeKey{level, idx - 1}]
			path = append(path, ProofPathStep{EventHash: current, SiblingHash: sibling, Position: "left"})
		} else if idx+1 < count {
			sibling := t.nodes[nodeKey{level, idx + 1}]
			path = append(path, ProofPathStep{EventHash: current, SiblingHash: sibling, Position: "right"})
		} else {
			path = append(path, ProofPathStep{EventHash: current, SiblingHash: current, Position: "right"})
		}
		idx = idx / 2
		level++
	}
	return path, nil
}

// levelNodeCount is the number of nodes present at `level` once `size`
// leaves have been appended: ceil(size / 2^level).
func levelNodeCount(level, size int) int {
	denom := 1 << uint(level)
	return (size + denom - 1) / denom
}

// pairHash is the sorted pair combiner: sha3_concat(min(a,b), max(a,b))
// using lexical order on the 0x-hex strings, making the combiner
// invariant to which side is "left" or "right" at the hashing step.
func pairHash(a, b string) string {
	if a <= b {
		return ConcatHash(Str(a), Str(b))
	}
	return ConcatHash(Str(b), Str(a))
}

// VerifyInclusionProof folds leaf against path and compares the result
// with expectedRoot. An empty expectedRoot rejects every proof. An
// empty path accepts iff leaf == expectedRoot (the single-leaf case).
func VerifyInclusionProof(leaf string, path []ProofPathStep, expectedRoot string) bool {
	if expectedRoot == "" {
		return false
	}
	current := leaf
	for _, step := range path {
		if step.Position == "right" && step.SiblingHash == step.EventHash {
			continue // self-pair sentinel: nothing to fold at this level
		}
		if step.Position == "left" {
			current = pairHash(step.SiblingHash, current)
		} else {
			current = pairHash(current, step.SiblingHash)
		}
	}
	return current == expectedRoot
}
