package sphinx

import "crypto/rand"

// xorBytes computes the bytewise XOR of a and b, truncated to
// min(len(a), len(b)). This mirrors the teacher's own xor helper
// (lnonion.xor) and utils::bytes::xor in original_source/src/lib.rs:
// both truncate rather than panic on a length mismatch, which is what
// lets the recursive header wrap in header.go grow a components
// buffer past RoutingInfoLength and rely on the XOR itself to clip it
// back down.
func xorBytes(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// randomBytes draws n cryptographically secure random bytes, used for
// the final-hop block's padding (C7 step A.4).
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// zero overwrites b in place. Best-effort secret hygiene: Go's garbage
// collector and compiler escape analysis mean this is not a guarantee
// against all forms of memory disclosure, but it removes the key
// material from the buffer the caller is still holding a reference to,
// which is the gap the teacher's code (and original_source) both leave
// entirely unaddressed.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
