package curve

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// DeterministicNonce derives a per-signature nonce candidate from a
// private scalar, a message digest, and a retry counter, following the
// HMAC-DRBG construction of RFC 6979 (section 3.2) with SHA-256 as the
// underlying hash. Each increase of counter walks the DRBG forward to the
// next candidate, which is how the signer retries when a candidate
// produces r=0 or s=0.
func DeterministicNonce(priv *big.Int, digest []byte, counter int) *big.Int {
	qlen := 32 // secp256k1 order is 256 bits
	privBytes := leftPad(priv.Bytes(), qlen)
	h1 := bitsToOctets(digest, qlen)

	v := make([]byte, sha256.Size)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, sha256.Size)

	k = hmacSum(k, append(append(append([]byte{}, v...), 0x00), append(privBytes, h1...)...))
	v = hmacSum(k, v)
	k = hmacSum(k, append(append(append([]byte{}, v...), 0x01), append(privBytes, h1...)...))
	v = hmacSum(k, v)

	for step := 0; ; step++ {
		var t []byte
		for len(t) < qlen {
			v = hmacSum(k, v)
			t = append(t, v...)
		}
		candidate := new(big.Int).SetBytes(t[:qlen])
		if step >= counter && candidate.Sign() > 0 && candidate.Cmp(N) < 0 {
			return candidate
		}
		k = hmacSum(k, append(v, 0x00))
		v = hmacSum(k, v)
	}
}

func hmacSum(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

// bitsToOctets reduces a digest modulo N (per RFC 6979's bits2octets) and
// left-pads the result to qlen bytes.
func bitsToOctets(digest []byte, qlen int) []byte {
	z := new(big.Int).SetBytes(digest)
	if z.Cmp(N) >= 0 {
		z = new(big.Int).Sub(z, N)
	}
	return leftPad(z.Bytes(), qlen)
}
