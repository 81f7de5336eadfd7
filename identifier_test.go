package causalproof

import "testing"

func TestNewEventIDIsValidAndOrdered(t *testing.T) {
	a, err := NewEventID()
	if err != nil {
		t.Fatalf("NewEventID error: %v", err)
	}
	if !ValidEventID(a) {
		t.Fatalf("generated id %q does not match the version-7 pattern", a)
	}

	b, err := NewEventID()
	if err != nil {
		t.Fatalf("NewEventID error: %v", err)
	}
	if CompareEventIDs(a, b) > 0 {
		t.Fatalf("expected ids generated in sequence to compare non-decreasing, got %q then %q", a, b)
	}
}

func TestValidEventIDRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"018f7f1e-aaaa-4aaa-8aaa-aaaaaaaaaaaa", // version nibble 4, not 7
		"018f7f1e-aaaa-7aaa-caaa-aaaaaaaaaaaa", // variant nibble c, not 8/9/a/b
	}
	for _, c := range cases {
		if ValidEventID(c) {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}

func TestEventIDTimestampRoundTrip(t *testing.T) {
	id, err := NewEventID()
	if err != nil {
		t.Fatalf("NewEventID error: %v", err)
	}
	ts, err := EventIDTimestamp(id)
	if err != nil {
		t.Fatalf("EventIDTimestamp error: %v", err)
	}
	now := nowMillis()
	if ts > now || now-ts > 60000 {
		t.Fatalf("extracted timestamp %d is not close to now %d", ts, now)
	}
}

func TestCompareEventIDs(t *testing.T) {
	if CompareEventIDs("a", "b") != -1 {
		t.Fatalf("expected -1")
	}
	if CompareEventIDs("b", "a") != 1 {
		t.Fatalf("expected 1")
	}
	if CompareEventIDs("a", "a") != 0 {
		t.Fatalf("expected 0")
	}
}
