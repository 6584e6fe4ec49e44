package sphinx

// Package-wide constants for the Sphinx header-construction engine.
// These mirror the data model in original_source/src/header/{header,keys}.rs
// constants module, adapted to the Go naming the rest of this package uses.
const (
	// SecurityParameter is κ, the base byte unit most other lengths are
	// expressed in multiples of.
	SecurityParameter = 16

	// MaxPathLength is r, the maximum number of hops a route may carry,
	// counting the final destination hop.
	MaxPathLength = 5

	// StreamCipherKeySize is the ChaCha20 key size used for both the
	// header keystream and the filler construction.
	StreamCipherKeySize = 32

	// IntegrityMacKeySize is the HMAC-SHA256 key size used for per-hop
	// routing-info integrity tags.
	IntegrityMacKeySize = 32

	// IntegrityMacSize is the truncated length of every integrity MAC
	// embedded in the header, κ bytes.
	IntegrityMacSize = SecurityParameter

	// PayloadKeySize is the stream-cipher key handed to the (external)
	// payload-encryption layer.
	PayloadKeySize = 32

	// DestinationLength is the width of a final-hop address, 2κ.
	DestinationLength = 2 * SecurityParameter

	// IdentifierLength is the width of a SURB identifier, κ.
	IdentifierLength = SecurityParameter

	// RoutingInfoLength is the fixed, length-hiding size of the
	// encrypted routing header: (2r - 1)κ.
	RoutingInfoLength = (2*MaxPathLength - 1) * SecurityParameter

	// StreamCipherOutputLength is the keystream budget drawn per hop,
	// large enough to cover the final-hop block, every wrap layer, and
	// the filler tail: (2r + 3)κ.
	StreamCipherOutputLength = (2*MaxPathLength + 3) * SecurityParameter
)

// hkdfInputSeed is the fixed application-specific HKDF info string used
// by the routing-key expansion (C5). Changing it re-derives unrelated
// keys from the same shared secrets, so it is versioned in its name.
var hkdfInputSeed = []byte("sphinx-header-v1-routing-keys")

// streamCipherIV is the single, fixed nonce used for every keystream
// draw in this package. It is safe to reuse across hops and across the
// filler/final-block/wrap draws only because each draw uses a distinct,
// per-hop stream-cipher key (see Design Notes: per-hop IVs are never
// introduced).
var streamCipherIV = make([]byte, 12)
