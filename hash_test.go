package causalproof

import "testing"

func TestSumTestVectors(t *testing.T) {
	if got, want := Sum([]byte("")), "0xa7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"; got != want {
		t.Fatalf("Sum(\"\") = %s, want %s", got, want)
	}
	if got, want := Sum([]byte("abc")), "0x3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"; got != want {
		t.Fatalf("Sum(\"abc\") = %s, want %s", got, want)
	}
}

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("hello"))
	b := Sum([]byte("hello"))
	if a != b {
		t.Fatalf("expected deterministic digest, got %q and %q", a, b)
	}
}

func TestConcatHashOrderMatters(t *testing.T) {
	h1 := ConcatHash(Str("a"), Str("b"))
	h2 := ConcatHash(Str("b"), Str("a"))
	if h1 == h2 {
		t.Fatalf("ConcatHash must not be order-invariant on its own; callers that want that use the sorted pair combiner")
	}
}

func TestConcatHashAbsentMatchesLiteralNull(t *testing.T) {
	withAbsent := ConcatHash(Str("x"), Absent())
	withLiteral := ConcatHash(Str("x"), Str("null"))
	if withAbsent != withLiteral {
		t.Fatalf("Absent() must hash identically to the literal string \"null\"")
	}
}

func TestEventHashDeterministic(t *testing.T) {
	pred := Sum([]byte("pred"))
	h1 := EventHash("agent-1", ActionRequest, "0xabc", &pred, 1000)
	h2 := EventHash("agent-1", ActionRequest, "0xabc", &pred, 1000)
	if h1 != h2 {
		t.Fatalf("expected deterministic event hash")
	}

	h3 := EventHash("agent-1", ActionRequest, "0xabc", nil, 1000)
	if h3 == h1 {
		t.Fatalf("absent predecessor must hash differently from a present one")
	}
}
