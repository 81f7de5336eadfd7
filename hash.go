package causalproof

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// hashPart is one component fed to ConcatHash: either the UTF-8 bytes of
// a string, raw bytes, or absent (hashed as the literal 4-byte sequence
// "null", per spec.md §4.A's tagged-sum-type note in §9).
type hashPart struct {
	bytes  []byte
	absent bool
}

// Bytes wraps a raw byte slice as a hash part.
func Bytes(b []byte) hashPart { return hashPart{bytes: b} }

// Str wraps a string's UTF-8 bytes as a hash part.
func Str(s string) hashPart { return hashPart{bytes: []byte(s)} }

// Absent represents a missing value; its hashed form is the literal
// 4-byte ASCII string "null", never a language nullity.
func Absent() hashPart { return hashPart{absent: true} }

// Sum returns the 32-byte SHA3-256 digest of input, hex-encoded with a
// leading "0x". This is the real FIPS-202 SHA3-256 (not Keccak-256):
// Sum("") and Sum("abc") reproduce the NIST test vectors in spec.md §4.A.
func Sum(input []byte) string {
	digest := sha3.Sum256(input)
	return "0x" + hex.EncodeToString(digest[:])
}

// sumRaw is Sum without the 0x-hex rendering, used internally where the
// caller wants to keep working with bytes (e.g. the Merkle pair hash).
func sumRaw(input []byte) [32]byte {
	return sha3.Sum256(input)
}

// ConcatHash is sha3_concat: SHA3-256 of the parts joined by the literal
// two-byte separator 0x7C 0x7C ("||"), appended after every part
// including the last. Exact byte-stream reproduction is a compatibility
// contract (spec.md §4.A): any reimplementation must match this.
func ConcatHash(parts ...hashPart) string {
	digest := concatHashRaw(parts...)
	return "0x" + hex.EncodeToString(digest[:])
}

// EventHash computes I3's canonical event digest:
// sha3_concat(agentId, actionType, payloadHash, predecessor-or-null, decimal(timestamp)).
// Shared by the registry (on insert) and the verifier (on content-integrity
// recomputation) so the two can never drift apart.
func EventHash(agentID string, actionType ActionType, payloadHash string, predecessor *string, timestamp int64) string {
	pred := Absent()
	if predecessor != nil {
		pred = Str(*predecessor)
	}
	return ConcatHash(Str(agentID), Str(string(actionType)), Str(payloadHash), pred, Str(strconv.FormatInt(timestamp, 10)))
}

func concatHashRaw(parts ...hashPart) [32]byte {
	var buf []byte
	for _, p := range parts {
		if p.absent {
			buf = append(buf, 'n', 'u', 'l', 'l')
		} else {
			buf = append(buf, p.bytes...)
		}
		buf = append(buf, 0x7C, 0x7C)
	}
	return sumRaw(buf)
}
