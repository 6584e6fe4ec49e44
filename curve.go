package sphinx

import (
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519"
)

// Scalar is an element of the Curve25519 scalar field, reduced modulo
// the group order. It plays the role original_source/src/header/keys.rs
// gives curve25519_dalek::scalar::Scalar: the blinding accumulator and
// the per-hop blinding factors are both Scalars.
type Scalar struct {
	s *edwards25519.Scalar
}

// Point is a Curve25519 group element (an Edwards point internally;
// only its 32-byte compressed encoding is ever exposed, matching the
// wire width spec.md §3 assigns to a CurvePoint / SharedSecret).
type Point struct {
	p *edwards25519.Point
}

// generatorPoint returns g, the fixed curve generator.
func generatorPoint() Point {
	return Point{p: edwards25519.NewGeneratorPoint()}
}

// RandomScalar draws a uniformly random scalar using the host's CSPRNG,
// the x0 a sender picks as its initial_secret (spec.md §6:
// CSPRNG.random_scalar()).
func RandomScalar() (Scalar, error) {
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		return Scalar{}, fmt.Errorf("sphinx: generating random scalar: %w", err)
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only fails on a wrong-length input; 64 bytes
		// is always correct, so this is unreachable.
		panic(err)
	}
	return Scalar{s: s}, nil
}

// scalarFromWideBytes reduces an arbitrary 32-byte value modulo the
// curve order by zero-extending it to the 64-byte width
// edwards25519.Scalar.SetUniformBytes requires. This is the Go
// equivalent of curve25519_dalek's Scalar::from_bytes_mod_order used
// by keys.rs::compute_keyed_hmac and keys.rs::key_derivation_function's
// HMAC-derived blinding factor.
func scalarFromWideBytes(b []byte) Scalar {
	var wide [64]byte
	copy(wide[:], b)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return Scalar{s: s}
}

// Multiply returns s*other, the scalar-field product. This is what the
// blinding accumulator update (C4 step 3: "a <- a . blinding_factor_i")
// calls on every forward hop.
func (s Scalar) Multiply(other Scalar) Scalar {
	out := edwards25519.NewScalar().Multiply(s.s, other.s)
	return Scalar{s: out}
}

// ScalarBaseMult returns g*s.
func ScalarBaseMult(s Scalar) Point {
	return Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(s.s)}
}

// ScalarMult returns p*s, the Diffie-Hellman shared point when p is a
// peer's public key and s is a local secret scalar (or vice versa).
func (p Point) ScalarMult(s Scalar) Point {
	out := edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)
	return Point{p: out}
}

// Bytes returns the point's 32-byte compressed encoding.
func (p Point) Bytes() [32]byte {
	var out [32]byte
	copy(out[:], p.p.Bytes())
	return out
}

// PointFromBytes decodes a 32-byte compressed point encoding, e.g. a
// route element's advertised public key.
func PointFromBytes(b []byte) (Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return Point{}, fmt.Errorf("sphinx: decoding curve point: %w", err)
	}
	return Point{p: p}, nil
}

// Equal reports whether two points encode to the same bytes.
func (p Point) Equal(other Point) bool {
	return p.Bytes() == other.Bytes()
}
