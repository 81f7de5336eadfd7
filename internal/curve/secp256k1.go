// Package curve implements the handful of secp256k1 field and group
// operations the signature primitive needs: point addition, scalar
// multiplication, and the modular square root used to decompress a
// recovered Y coordinate.
//
// No example in the retrieved corpus imports a secp256k1 library, and the
// signature primitive's spec (retry-on-zero, explicit low-S enforcement,
// recovery-id disambiguation) requires operating directly on curve scalars
// and points rather than trusting an opaque Sign/Verify call. This package
// is therefore hand-rolled on top of math/big, the way the teacher's own
// crypto package hand-rolls key parsing atop stdlib crypto/x509 primitives
// rather than reaching for a framework.
package curve

import "math/big"

// Params are the domain parameters of secp256k1: y^2 = x^3 + 7 over F_P,
// a base point G of prime order N.
var (
	P, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	N, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	Gx, _ = new(big.Int).SetString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
	Gy, _ = new(big.Int).SetString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b", 16)
	B     = big.NewInt(7)

	half = new(big.Int).Rsh(N, 1) // floor(N/2), the BIP-62 low-S threshold
)

// HalfOrder returns floor(N/2); a signature with S above this value is
// the high-S twin of a canonical signature and must be rejected.
func HalfOrder() *big.Int { return new(big.Int).Set(half) }

// Point is an affine point on the curve, or the point at infinity.
type Point struct {
	X, Y     *big.Int
	Infinity bool
}

// Generator returns the base point G.
func Generator() Point {
	return Point{X: new(big.Int).Set(Gx), Y: new(big.Int).Set(Gy)}
}

// IsOnCurve reports whether p satisfies the curve equation. The point at
// infinity is considered on-curve by convention.
func IsOnCurve(p Point) bool {
	if p.Infinity {
		return true
	}
	if p.X.Sign() < 0 || p.X.Cmp(P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(P) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, P)

	rhs := new(big.Int).Mul(p.X, p.X)
	rhs.Mul(rhs, p.X)
	rhs.Add(rhs, B)
	rhs.Mod(rhs, P)

	return lhs.Cmp(rhs) == 0
}

// Add returns p1 + p2 in affine coordinates.
func Add(p1, p2 Point) Point {
	if p1.Infinity {
		return p2
	}
	if p2.Infinity {
		return p1
	}
	if p1.X.Cmp(p2.X) == 0 {
		if p1.Y.Sign() == 0 || p1.Y.Cmp(p2.Y) != 0 {
			return Point{Infinity: true}
		}
		return double(p1)
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(p2.Y, p1.Y)
	den := new(big.Int).Sub(p2.X, p1.X)
	den.Mod(den, P)
	lambda := new(big.Int).Mul(num, modInverse(den))
	lambda.Mod(lambda, P)

	return fromLambda(lambda, p1.X, p2.X, p1.Y)
}

func double(p Point) Point {
	if p.Infinity || p.Y.Sign() == 0 {
		return Point{Infinity: true}
	}
	// lambda = 3x^2 / 2y  (a = 0 for secp256k1)
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(p.Y, 1)
	den.Mod(den, P)
	lambda := new(big.Int).Mul(num, modInverse(den))
	lambda.Mod(lambda, P)

	return fromLambda(lambda, p.X, p.X, p.Y)
}

func fromLambda(lambda, x1, x2, y1 *big.Int) Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, P)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	y3.Mod(y3, P)

	return Point{X: x3, Y: y3}
}

// ScalarMult returns k*p using double-and-add. k is reduced modulo nothing
// here; callers are expected to have already reduced scalars modulo N.
func ScalarMult(k *big.Int, p Point) Point {
	result := Point{Infinity: true}
	addend := p
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = Add(result, result)
		if k.Bit(i) == 1 {
			result = Add(result, addend)
		}
	}
	return result
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k *big.Int) Point {
	return ScalarMult(k, Generator())
}

// DecompressY returns the Y coordinate on the curve for x whose parity
// (odd/even, per wantOdd) matches, or ok=false if x is not on the curve at
// all (no square root exists).
func DecompressY(x *big.Int, wantOdd bool) (y *big.Int, ok bool) {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, B)
	rhs.Mod(rhs, P)

	// P = 3 mod 4, so a square root of a QR `a` is a^((P+1)/4) mod P.
	exp := new(big.Int).Add(P, big.NewInt(1))
	exp.Rsh(exp, 2)
	candidate := new(big.Int).Exp(rhs, exp, P)

	check := new(big.Int).Mul(candidate, candidate)
	check.Mod(check, P)
	if check.Cmp(rhs) != 0 {
		return nil, false
	}
	if candidate.Bit(0) == 1 != wantOdd {
		candidate = new(big.Int).Sub(P, candidate)
	}
	return candidate, true
}

func modInverse(x *big.Int) *big.Int {
	return new(big.Int).ModInverse(new(big.Int).Mod(x, P), P)
}
