package sphinx

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

// keyedHMAC returns the full 32-byte HMAC-SHA256 tag of data under key.
func keyedHMAC(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// truncatedMAC returns the first IntegrityMacSize bytes of
// HMAC-SHA256(key, data), the per-hop and outer routing-info integrity
// tag (C7 steps B.1 and C).
func truncatedMAC(key, data []byte) [IntegrityMacSize]byte {
	tag := keyedHMAC(key, data)
	var out [IntegrityMacSize]byte
	copy(out[:], tag[:IntegrityMacSize])
	return out
}

// macEqual is a constant-time comparison of two integrity MACs.
func macEqual(a, b [IntegrityMacSize]byte) bool {
	return hmac.Equal(a[:], b[:])
}

// streamCipherKeystream draws n bytes of ChaCha20 keystream under key
// and the package-wide fixed IV, by XOR-ing it against an all-zero
// buffer — the same trick the teacher's generateRandomByteStream uses.
func streamCipherKeystream(key []byte, n int) []byte {
	c, err := chacha20.NewUnauthenticatedCipher(key, streamCipherIV)
	if err != nil {
		// key/nonce sizes are fixed constants we control; a failure
		// here means StreamCipherKeySize or the IV length regressed.
		panic(fmt.Sprintf("sphinx: constructing stream cipher: %v", err))
	}
	out := make([]byte, n)
	c.XORKeyStream(out, out)
	return out
}

// expandRoutingKeys is the routing-key expansion KDF (C5): HKDF-SHA256
// over the shared secret with no salt and a fixed info string,
// partitioned into (stream_cipher_key, integrity_mac_key, payload_key)
// in that order, mirroring
// original_source/src/header/keys.rs::key_derivation_function.
func expandRoutingKeys(sharedSecret Point) (RoutingKeys, error) {
	secretBytes := sharedSecret.Bytes()
	kdf := hkdf.New(sha256.New, secretBytes[:], nil, hkdfInputSeed)

	out := make([]byte, StreamCipherKeySize+IntegrityMacKeySize+PayloadKeySize)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return RoutingKeys{}, fmt.Errorf("sphinx: expanding routing keys: %w", err)
	}

	var rk RoutingKeys
	copy(rk.StreamCipherKey[:], out[:StreamCipherKeySize])
	copy(rk.IntegrityMacKey[:], out[StreamCipherKeySize:StreamCipherKeySize+IntegrityMacKeySize])
	copy(rk.PayloadKey[:], out[StreamCipherKeySize+IntegrityMacKeySize:])
	return rk, nil
}
