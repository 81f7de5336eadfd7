package causalproof

import (
	"crypto/rand"
	"math/big"

	"github.com/agentledger/causalproof/internal/curve"
)

// Signature primitive (spec.md §4.C): ECDSA over secp256k1 with
// uncompressed public keys, hex-encoded scalars, and BIP-62 low-S
// canonicalization. Parsing failures in Verify/RecoverPublicKey return
// false/nil rather than propagating, per spec.md §7's "recoverable
// primitive failures" — only GeneratePrivateKey fails hard, because its
// only failure mode is an unavailable CSPRNG.

// GeneratePrivateKey returns a new 32-byte scalar in [1, n-1], hex
// encoded with a leading 0x. It never falls back to a weak random
// source: if crypto/rand is unavailable, it returns an error instead of
// degrading.
func GeneratePrivateKey() (string, error) {
	for {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", errSecureRandomUnavailable(err)
		}
		d := new(big.Int).SetBytes(buf)
		if d.Sign() > 0 && d.Cmp(curve.N) < 0 {
			return hexEncode(buf), nil
		}
	}
}

// PublicKey derives the uncompressed public key (0x04 || X || Y,
// hex-encoded) for a private key produced by GeneratePrivateKey.
func PublicKey(privHex string) (string, error) {
	d, err := parsePrivateScalar(privHex)
	if err != nil {
		return "", err
	}
	p := curve.ScalarBaseMult(d)
	return serializePublicKey(p), nil
}

// Sign computes an ECDSA signature over messageHash (a 0x-hex 32-byte
// digest) using priv, returning 0x || r || s (128 hex chars). The nonce
// is derived deterministically (spec.md §4.C permits and prefers this);
// candidates that produce r=0 or s=0 are discarded and the derivation
// retried. The result is always low-S: if the raw s exceeds n/2 it is
// replaced with n-s.
func Sign(messageHash, privHex string) (string, error) {
	d, err := parsePrivateScalar(privHex)
	if err != nil {
		return "", err
	}
	digest, err := hexDecode(messageHash)
	if err != nil {
		return "", errDecodeFailed("message hash is not valid hex", err)
	}
	z := new(big.Int).SetBytes(digest)

	for counter := 0; ; counter++ {
		k := curve.DeterministicNonce(d, digest, counter)
		r := new(big.Int).Mod(curve.ScalarBaseMult(k).X, curve.N)
		if r.Sign() == 0 {
			continue
		}
		kInv := new(big.Int).ModInverse(k, curve.N)
		s := new(big.Int).Mul(r, d)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, curve.N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(curve.HalfOrder()) > 0 {
			s = new(big.Int).Sub(curve.N, s)
		}
		sig := append(fixedBytes(r.Bytes(), 32), fixedBytes(s.Bytes(), 32)...)
		return hexEncode(sig), nil
	}
}

// Verify reports whether sig is a valid, canonical (low-S) ECDSA
// signature over messageHash by the holder of pubHex. Any malformed
// input returns false rather than an error.
func Verify(messageHash, sig, pubHex string) bool {
	r, s, ok := parseSignature(sig)
	if !ok {
		return false
	}
	if r.Sign() <= 0 || r.Cmp(curve.N) >= 0 || s.Sign() <= 0 || s.Cmp(curve.N) >= 0 {
		return false
	}
	if s.Cmp(curve.HalfOrder()) > 0 {
		return false // BIP-62: reject the high-S malleable twin
	}
	pub, ok := parsePublicKeyPoint(pubHex)
	if !ok {
		return false
	}
	digest, err := hexDecode(messageHash)
	if err != nil {
		return false
	}
	z := new(big.Int).SetBytes(digest)

	sInv := new(big.Int).ModInverse(s, curve.N)
	u1 := new(big.Int).Mul(z, sInv)
	u1.Mod(u1, curve.N)
	u2 := new(big.Int).Mul(r, sInv)
	u2.Mod(u2, curve.N)

	p := curve.Add(curve.ScalarBaseMult(u1), curve.ScalarMult(u2, pub))
	if p.Infinity {
		return false
	}
	x := new(big.Int).Mod(p.X, curve.N)
	return x.Cmp(r) == 0
}

// RecoverPublicKey reconstructs the public key that produced sig over
// messageHash, given a recovery id (0 or 1) disambiguating which of the
// two candidate Y coordinates for r was used. It returns ok=false (never
// an error) if the inputs are malformed or the candidate point is not on
// the curve.
func RecoverPublicKey(messageHash, sig string, recoveryID int) (pubHex string, ok bool) {
	if recoveryID != 0 && recoveryID != 1 {
		return "", false
	}
	r, s, ok := parseSignature(sig)
	if !ok {
		return "", false
	}
	if r.Sign() <= 0 || r.Cmp(curve.N) >= 0 || s.Sign() <= 0 || s.Cmp(curve.N) >= 0 {
		return "", false
	}
	digest, err := hexDecode(messageHash)
	if err != nil {
		return "", false
	}
	z := new(big.Int).SetBytes(digest)

	y, onCurve := curve.DecompressY(r, recoveryID&1 == 1)
	if !onCurve {
		return "", false
	}
	rPoint := curve.Point{X: new(big.Int).Set(r), Y: y}

	rInv := new(big.Int).ModInverse(r, curve.N)
	negZ := new(big.Int).Neg(z)
	negZ.Mod(negZ, curve.N)
	u1 := new(big.Int).Mul(negZ, rInv)
	u1.Mod(u1, curve.N)
	u2 := new(big.Int).Mul(s, rInv)
	u2.Mod(u2, curve.N)

	q := curve.Add(curve.ScalarBaseMult(u1), curve.ScalarMult(u2, rPoint))
	if q.Infinity || !curve.IsOnCurve(q) {
		return "", false
	}
	return serializePublicKey(q), true
}

func parsePrivateScalar(privHex string) (*big.Int, error) {
	raw, err := hexDecode(privHex)
	if err != nil {
		return nil, errDecodeFailed("private key is not valid hex", err)
	}
	d := new(big.Int).SetBytes(raw)
	if d.Sign() <= 0 || d.Cmp(curve.N) >= 0 {
		return nil, errDecodeFailed("private key scalar out of range", nil)
	}
	return d, nil
}

func parsePublicKeyPoint(pubHex string) (curve.Point, bool) {
	raw, err := hexDecode(pubHex)
	if err != nil || len(raw) != 65 || raw[0] != 0x04 {
		return curve.Point{}, false
	}
	x := new(big.Int).SetBytes(raw[1:33])
	y := new(big.Int).SetBytes(raw[33:65])
	p := curve.Point{X: x, Y: y}
	if !curve.IsOnCurve(p) {
		return curve.Point{}, false
	}
	return p, true
}

func parseSignature(sig string) (r, s *big.Int, ok bool) {
	raw, err := hexDecode(sig)
	if err != nil || len(raw) != 64 {
		return nil, nil, false
	}
	return new(big.Int).SetBytes(raw[:32]), new(big.Int).SetBytes(raw[32:]), true
}

func serializePublicKey(p curve.Point) string {
	raw := make([]byte, 0, 65)
	raw = append(raw, 0x04)
	raw = append(raw, fixedBytes(p.X.Bytes(), 32)...)
	raw = append(raw, fixedBytes(p.Y.Bytes(), 32)...)
	return hexEncode(raw)
}
