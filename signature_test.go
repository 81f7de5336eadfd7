package causalproof

import (
	"math/big"
	"testing"

	"github.com/agentledger/causalproof/internal/curve"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey error: %v", err)
	}

	digest := Sum([]byte("the message to sign"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if !Verify(digest, sig, pub) {
		t.Fatalf("expected signature to verify")
	}
}

func TestSignIsLowS(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	digest := Sum([]byte("low-s check"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	raw, err := hexDecode(sig)
	if err != nil {
		t.Fatalf("hexDecode error: %v", err)
	}
	s := new(big.Int).SetBytes(raw[32:])
	if s.Cmp(curve.HalfOrder()) > 0 {
		t.Fatalf("expected s <= n/2, got high-s signature")
	}
}

func TestVerifyRejectsHighS(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey error: %v", err)
	}
	digest := Sum([]byte("malleability check"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	raw, _ := hexDecode(sig)
	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:])
	flippedS := new(big.Int).Sub(curve.N, s)
	flipped := append(fixedBytes(r.Bytes(), 32), fixedBytes(flippedS.Bytes(), 32)...)

	if Verify(digest, hexEncode(flipped), pub) {
		t.Fatalf("expected the high-s malleable twin to be rejected")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv1, _ := GeneratePrivateKey()
	priv2, _ := GeneratePrivateKey()
	pub2, _ := PublicKey(priv2)

	digest := Sum([]byte("signed by priv1"))
	sig, err := Sign(digest, priv1)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if Verify(digest, sig, pub2) {
		t.Fatalf("expected verification against the wrong public key to fail")
	}
}

func TestRecoverPublicKey(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey error: %v", err)
	}
	digest := Sum([]byte("recoverable message"))
	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	recovered := false
	for id := 0; id < 2; id++ {
		if got, ok := RecoverPublicKey(digest, sig, id); ok && got == pub {
			recovered = true
			break
		}
	}
	if !recovered {
		t.Fatalf("expected one recovery id to reconstruct the signer's public key")
	}
}

func TestRecoverPublicKeyRejectsBadRecoveryID(t *testing.T) {
	if _, ok := RecoverPublicKey(Sum([]byte("x")), "0x00", 2); ok {
		t.Fatalf("expected recovery id outside {0,1} to be rejected")
	}
}

func TestVerifyRejectsMalformedInputsWithoutPanicking(t *testing.T) {
	if Verify("not-hex", "not-hex", "not-hex") {
		t.Fatalf("expected malformed input to fail, not verify")
	}
	if Verify(Sum([]byte("x")), "0x00", "0x00") {
		t.Fatalf("expected truncated signature to fail")
	}
}
