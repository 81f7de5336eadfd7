package causalproof

import (
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// idPattern is the version-7 validator of spec.md §4.B.
var idPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// NewEventID generates a time-ordered 128-bit identifier with the
// version-7 layout of RFC 9562: the current Unix millisecond timestamp
// in the high 48 bits, version nibble 0111, variant bits 10, and the
// remainder cryptographically random. google/uuid's NewV7 already lays
// bits out exactly this way and sources its randomness from
// crypto/rand, so generation failure here means the platform has no
// secure random source (spec.md §5, §7 "Platform errors").
func NewEventID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errSecureRandomUnavailable(err)
	}
	return id.String(), nil
}

// ValidEventID reports whether s matches the version-7 hex layout.
func ValidEventID(s string) bool {
	return idPattern.MatchString(s)
}

// CompareEventIDs orders two identifiers by lexicographic hex form,
// which equals temporal order because the timestamp occupies the
// high 48 bits. Returns -1, 0, or 1 like strings.Compare.
func CompareEventIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EventIDTimestamp extracts the embedded millisecond timestamp by
// reading the first 12 hex nibbles (the hyphen at position 8 is
// skipped) as a base-16 integer.
func EventIDTimestamp(id string) (int64, error) {
	if len(id) < 13 {
		return 0, errDecodeFailed("identifier too short to contain a timestamp", nil)
	}
	hexDigits := id[0:8] + id[9:13]
	ms, err := strconv.ParseInt(hexDigits, 16, 64)
	if err != nil {
		return 0, errDecodeFailed("identifier timestamp is not valid hex", err)
	}
	return ms, nil
}
