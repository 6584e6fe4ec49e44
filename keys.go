package sphinx

import logging "gopkg.in/op/go-logging.v1"

var keysLog = logging.MustGetLogger("sphinx/keys")

// RoutingKeys is the triple a single hop's shared secret expands into:
// a stream-cipher key for header/filler keystream, an integrity-MAC
// key for verifying/producing this hop's routing-info tag, and a
// payload key handed to the (external) payload-encryption layer.
type RoutingKeys struct {
	StreamCipherKey [StreamCipherKeySize]byte
	IntegrityMacKey [IntegrityMacKeySize]byte
	PayloadKey      [PayloadKeySize]byte
}

// Zero overwrites every secret field of k in place, including
// PayloadKey. Callers should only call this once PayloadKey has also
// been copied out or is no longer needed — BuildRoutingInfo does not
// call it for that reason, since PayloadKey is produced for the
// (external) payload-encryption layer and must survive header
// construction.
func (k *RoutingKeys) Zero() {
	zero(k.StreamCipherKey[:])
	zero(k.IntegrityMacKey[:])
	zero(k.PayloadKey[:])
}

// zeroEphemeral overwrites only the two secret fields BuildRoutingInfo
// owns exclusively — StreamCipherKey and IntegrityMacKey are consumed
// entirely within header construction and never handed to a caller,
// unlike PayloadKey, which PayloadKeys() hands to the (external)
// payload-encryption layer and which must therefore survive.
func (k *RoutingKeys) zeroEphemeral() {
	zero(k.StreamCipherKey[:])
	zero(k.IntegrityMacKey[:])
}

// KeyMaterial is the output of the key-derivation chain: the initial
// shared secret transmitted in the header's cleartext prefix, and one
// RoutingKeys per route element, in route order.
type KeyMaterial struct {
	InitialSharedSecret Point
	RoutingKeys         []RoutingKeys
}

// PayloadKeys returns the payload stream-cipher keys in hop order, for
// handoff to the (out-of-scope) payload-encryption layer per spec.md
// §6's "Produced for collaborators" contract.
func (m KeyMaterial) PayloadKeys() [][PayloadKeySize]byte {
	out := make([][PayloadKeySize]byte, len(m.RoutingKeys))
	for i, rk := range m.RoutingKeys {
		out[i] = rk.PayloadKey
	}
	return out
}

// DeriveKeyMaterial runs the key-derivation chain (C4): starting from
// initialSecret, it walks the route left to right, computing each
// hop's shared secret against a running blinding accumulator, and
// expanding that secret into RoutingKeys via the KDF (C5). On every
// ForwardHop the accumulator is re-blinded so the next hop's group
// element is unlinkable to this one's; on the FinalHop it is left
// untouched, since nothing derives from it afterward.
//
// An empty route is accepted here (it simply yields zero routing
// keys); BuildRoutingInfo is what rejects it, per spec.md §4.1's
// "Errors: none for well-formed routes... Empty route is permitted by
// the chain itself... but C7 rejects it."
//
// Hygiene gap: the intermediate accumulator and shared-secret Scalar
// and Point values computed on every iteration are not zeroized, since
// edwards25519.Scalar/Point expose no in-place clearing method — only
// the opaque types themselves, never a mutable byte buffer we own. The
// RoutingKeys they expand into are the values this package can and
// does zero once consumed (see BuildRoutingInfo's use of
// zeroEphemeral); the curve values live only as long as the garbage
// collector keeps them and are never copied into a wire message.
func DeriveKeyMaterial(route Route, initialSecret Scalar) (KeyMaterial, error) {
	initialSharedSecret := ScalarBaseMult(initialSecret)

	accumulator := initialSecret
	routingKeys := make([]RoutingKeys, 0, len(route))

	for _, elem := range route {
		sharedSecret := elem.PubKey.ScalarMult(accumulator)

		rk, err := expandRoutingKeys(sharedSecret)
		if err != nil {
			return KeyMaterial{}, err
		}
		routingKeys = append(routingKeys, rk)

		if elem.Kind == ForwardHop {
			groupElement := ScalarBaseMult(accumulator)
			blinding := computeBlindingFactor(groupElement, sharedSecret)
			accumulator = accumulator.Multiply(blinding)
		}
	}

	keysLog.Debugf("derived key material for %d-hop route", len(route))
	return KeyMaterial{InitialSharedSecret: initialSharedSecret, RoutingKeys: routingKeys}, nil
}

// computeBlindingFactor is H_hmac(groupElement, sharedSecret) reduced
// to a Scalar mod the curve order (C4 step 3): HMAC-SHA256 keyed by
// the group element's 32-byte encoding, over the shared secret's
// 32-byte encoding. This mirrors
// original_source/src/header/keys.rs::compute_blinding_factor, which
// computes the identical HMAC(group_element_bytes, shared_key_bytes)
// and reduces it with Scalar::from_bytes_mod_order.
func computeBlindingFactor(groupElement, sharedSecret Point) Scalar {
	ge := groupElement.Bytes()
	ss := sharedSecret.Bytes()
	tag := keyedHMAC(ge[:], ss[:])
	return scalarFromWideBytes(tag)
}
