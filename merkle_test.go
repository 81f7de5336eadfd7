package causalproof

import "testing"

func TestEmptyTreeRoot(t *testing.T) {
	tree := NewMerkleTree()
	if got := tree.Root(); got != "" {
		t.Fatalf("expected empty sentinel root, got %q", got)
	}
}

func TestSingleLeafRootEqualsLeaf(t *testing.T) {
	tree := NewMerkleTree()
	leaf := Sum([]byte("leaf-0"))
	root := tree.Append(leaf)
	if root != leaf {
		t.Fatalf("single-leaf root %q should equal the leaf digest %q", root, leaf)
	}
	path, err := tree.ProofPath(0)
	if err != nil {
		t.Fatalf("ProofPath error: %v", err)
	}
	if len(path) != 0 {
		t.Fatalf("expected empty proof path for a single-leaf tree, got %d steps", len(path))
	}
	if !VerifyInclusionProof(leaf, path, root) {
		t.Fatalf("expected single-leaf proof to verify")
	}
}

func TestInclusionProofRoundTripAcrossSizes(t *testing.T) {
	for _, size := range []int{2, 3, 4, 5, 7, 8, 13} {
		tree := NewMerkleTree()
		leaves := make([]string, size)
		for i := 0; i < size; i++ {
			leaves[i] = Sum([]byte{byte(i)})
			tree.Append(leaves[i])
		}
		root := tree.Root()
		for i := 0; i < size; i++ {
			path, err := tree.ProofPath(i)
			if err != nil {
				t.Fatalf("size %d: ProofPath(%d) error: %v", size, i, err)
			}
			if !VerifyInclusionProof(leaves[i], path, root) {
				t.Fatalf("size %d: leaf %d failed to verify against root %q", size, i, root)
			}
		}
	}
}

func TestInclusionProofRejectsTamperedLeaf(t *testing.T) {
	tree := NewMerkleTree()
	leaves := []string{Sum([]byte("a")), Sum([]byte("b")), Sum([]byte("c"))}
	for _, l := range leaves {
		tree.Append(l)
	}
	root := tree.Root()
	path, err := tree.ProofPath(1)
	if err != nil {
		t.Fatalf("ProofPath error: %v", err)
	}
	if VerifyInclusionProof(Sum([]byte("tampered")), path, root) {
		t.Fatalf("expected tampered leaf to fail verification")
	}
}

func TestInclusionProofRejectsTamperedSibling(t *testing.T) {
	tree := NewMerkleTree()
	leaves := []string{Sum([]byte("a")), Sum([]byte("b")), Sum([]byte("c")), Sum([]byte("d"))}
	for _, l := range leaves {
		tree.Append(l)
	}
	root := tree.Root()
	path, err := tree.ProofPath(0)
	if err != nil {
		t.Fatalf("ProofPath error: %v", err)
	}
	path[0].SiblingHash = Sum([]byte("not-the-real-sibling"))
	if VerifyInclusionProof(leaves[0], path, root) {
		t.Fatalf("expected tampered sibling to fail verification")
	}
}

func TestInclusionProofRejectsWrongRoot(t *testing.T) {
	tree := NewMerkleTree()
	leaves := []string{Sum([]byte("a")), Sum([]byte("b"))}
	for _, l := range leaves {
		tree.Append(l)
	}
	path, _ := tree.ProofPath(0)
	if VerifyInclusionProof(leaves[0], path, Sum([]byte("wrong-root"))) {
		t.Fatalf("expected mismatched root to fail verification")
	}
}

func TestEmptyExpectedRootAlwaysRejects(t *testing.T) {
	if VerifyInclusionProof(Sum([]byte("leaf")), nil, "") {
		t.Fatalf("expected empty expected root to reject every proof")
	}
}

func TestProofPathOutOfRangeIsHardError(t *testing.T) {
	tree := NewMerkleTree()
	tree.Append(Sum([]byte("only-leaf")))
	if _, err := tree.ProofPath(-1); err == nil {
		t.Fatalf("expected error for negative index")
	}
	if _, err := tree.ProofPath(1); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
}

func TestPairHashOrderInvariant(t *testing.T) {
	a, b := Sum([]byte("x")), Sum([]byte("y"))
	if pairHash(a, b) != pairHash(b, a) {
		t.Fatalf("pairHash must be invariant to argument order")
	}
}
