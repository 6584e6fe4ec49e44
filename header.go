package sphinx

import (
	"fmt"

	logging "gopkg.in/op/go-logging.v1"
)

var headerLog = logging.MustGetLogger("sphinx/header")

// RoutingInfo is the output of the header encapsulation (C7): the
// fixed-size encrypted routing header and the outer integrity MAC the
// first hop verifies before peeling its own layer.
type RoutingInfo struct {
	EncHeader []byte
	OuterMac  [IntegrityMacSize]byte
}

// BuildRoutingInfo recursively wraps the route's final-hop block in
// one encrypted layer per forward hop (C7). route and routingKeys must
// have equal, matching length; filler must be BuildFiller's output for
// route's forward hops.
//
// Step A builds the final-hop block: the destination address and SURB
// identifier, padded with random bytes out to exactly
// RoutingInfoLength - len(filler) bytes, then XORed with the final
// hop's keystream. Step B then wraps that, right to left: each layer
// prepends the next hop's address and the MAC the next hop will verify
// after decrypting, re-encrypts under the current hop's stream key,
// and lets the XOR's truncation to RoutingInfoLength bytes drop the
// oldest 3*SecurityParameter bytes of the accumulated tail. Step C
// computes the outermost MAC last, since it authenticates the fully
// wrapped header the first hop actually receives.
//
// Each hop's StreamCipherKey and IntegrityMacKey are zeroized in
// routingKeys in place the moment their last use here completes;
// PayloadKey is left untouched since the payload-encryption layer
// still needs it after this call returns.
func BuildRoutingInfo(route Route, routingKeys []RoutingKeys, filler []byte) (RoutingInfo, error) {
	if err := route.Validate(); err != nil {
		return RoutingInfo{}, err
	}
	if len(routingKeys) != len(route) {
		return RoutingInfo{}, fmt.Errorf("%w: got %d keys for a %d-hop route", ErrKeyVectorMismatch, len(routingKeys), len(route))
	}

	routingInfo, err := buildFinalHopBlock(route, routingKeys, filler)
	if err != nil {
		return RoutingInfo{}, err
	}

	for i := len(route) - 2; i >= 0; i-- {
		nextHopMac := truncatedMAC(routingKeys[i+1].IntegrityMacKey[:], routingInfo)
		routingKeys[i+1].zeroEphemeral()

		nextAddr := route[i+1].Address
		components := make([]byte, 0, len(nextAddr)+len(nextHopMac)+len(routingInfo))
		components = append(components, nextAddr[:]...)
		components = append(components, nextHopMac[:]...)
		components = append(components, routingInfo...)

		keystream := streamCipherKeystream(routingKeys[i].StreamCipherKey[:], StreamCipherOutputLength)
		routingInfo = xorBytes(components, keystream[:RoutingInfoLength])
	}

	outerMac := truncatedMAC(routingKeys[0].IntegrityMacKey[:], routingInfo)
	routingKeys[0].zeroEphemeral()

	headerLog.Debugf("built routing info for %d-hop route, %d enc_header bytes", len(route), len(routingInfo))
	return RoutingInfo{EncHeader: routingInfo, OuterMac: outerMac}, nil
}

// buildFinalHopBlock is C7 step A. The block's plaintext length is
// computed as RoutingInfoLength - len(filler) so that, with zero
// forward hops, the block alone is already exactly RoutingInfoLength
// long (there being no wrap step left to truncate it there). This
// resolves the source-behavior ambiguity flagged in spec.md §9 Design
// Notes in favor of preserving the length-hiding invariant exactly for
// every valid route length, rather than the literal per-hop padding
// formula, which only reaches RoutingInfoLength asymptotically through
// the wrap loop's truncation and is never exercised for a one-hop
// route. See DESIGN.md for the full derivation.
func buildFinalHopBlock(route Route, routingKeys []RoutingKeys, filler []byte) ([]byte, error) {
	routeLen := len(route)
	finalHop := route[routeLen-1]
	finalKeys := routingKeys[routeLen-1]

	destBytes := make([]byte, 0, DestinationLength+IdentifierLength)
	destBytes = append(destBytes, finalHop.Address[:]...)
	destBytes = append(destBytes, finalHop.SurbIdentifier[:]...)

	blockLen := RoutingInfoLength - len(filler)
	paddingLen := blockLen - len(destBytes)
	if paddingLen < 0 {
		return nil, fmt.Errorf("%w: route length %d leaves no room for a %d-byte destination block", ErrPaddingOverflow, routeLen, len(destBytes))
	}

	padding, err := randomBytes(paddingLen)
	if err != nil {
		return nil, err
	}

	plaintext := append(destBytes, padding...)
	keystream := streamCipherKeystream(finalKeys.StreamCipherKey[:], StreamCipherOutputLength)
	block := xorBytes(plaintext, keystream[:blockLen])

	routingInfo := make([]byte, 0, RoutingInfoLength)
	routingInfo = append(routingInfo, block...)
	routingInfo = append(routingInfo, filler...)
	return routingInfo, nil
}

// BuildHeader composes DeriveKeyMaterial, BuildFiller, and
// BuildRoutingInfo in the one sequence a sender always runs them in,
// mirroring original_source/src/lib.rs::SphinxPacket::new's single
// header::SphinxHeader::new call, scoped to the header (payload
// encapsulation stays out of this package).
func BuildHeader(route Route, initialSecret Scalar) (SphinxHeader, KeyMaterial, error) {
	if err := route.Validate(); err != nil {
		return SphinxHeader{}, KeyMaterial{}, err
	}

	keyMaterial, err := DeriveKeyMaterial(route, initialSecret)
	if err != nil {
		return SphinxHeader{}, KeyMaterial{}, err
	}

	forwardKeys := keyMaterial.RoutingKeys[:len(route)-1]
	filler := BuildFiller(forwardKeys)

	routingInfo, err := BuildRoutingInfo(route, keyMaterial.RoutingKeys, filler)
	if err != nil {
		return SphinxHeader{}, KeyMaterial{}, err
	}

	header := SphinxHeader{
		InitialSharedSecret: keyMaterial.InitialSharedSecret,
		RoutingInfo:         routingInfo,
	}
	return header, keyMaterial, nil
}
