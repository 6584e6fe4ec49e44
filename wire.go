package sphinx

import "fmt"

// HeaderSize is the fixed, bit-exact wire size of a SphinxHeader:
// the initial shared secret, the encrypted routing header, and the
// outer integrity MAC (spec.md §6's wire layout).
const HeaderSize = 32 + RoutingInfoLength + IntegrityMacSize

// SphinxHeader is the bit-exact wire form of a built Sphinx header,
// scoped to the header only — payload bytes are a collaborator's
// concern (spec.md §1 Out of scope) and are not part of this type.
type SphinxHeader struct {
	InitialSharedSecret Point
	RoutingInfo         RoutingInfo
}

// Bytes serializes the header to its wire layout:
//
//	[ initial_shared_secret : 32 bytes ]
//	[ enc_header            : RoutingInfoLength bytes ]
//	[ outer_mac             : IntegrityMacSize bytes ]
func (h SphinxHeader) Bytes() []byte {
	out := make([]byte, 0, HeaderSize)
	iss := h.InitialSharedSecret.Bytes()
	out = append(out, iss[:]...)
	out = append(out, h.RoutingInfo.EncHeader...)
	out = append(out, h.RoutingInfo.OuterMac[:]...)
	return out
}

// ParseSphinxHeader decodes a wire-format header produced by Bytes. It
// does not verify the outer MAC; that is the first hop's job, not the
// sender's.
func ParseSphinxHeader(b []byte) (SphinxHeader, error) {
	if len(b) != HeaderSize {
		return SphinxHeader{}, fmt.Errorf("sphinx: header must be %d bytes, got %d", HeaderSize, len(b))
	}

	point, err := PointFromBytes(b[:32])
	if err != nil {
		return SphinxHeader{}, fmt.Errorf("sphinx: decoding initial shared secret: %w", err)
	}

	encHeader := make([]byte, RoutingInfoLength)
	copy(encHeader, b[32:32+RoutingInfoLength])

	var outerMac [IntegrityMacSize]byte
	copy(outerMac[:], b[32+RoutingInfoLength:])

	return SphinxHeader{
		InitialSharedSecret: point,
		RoutingInfo: RoutingInfo{
			EncHeader: encHeader,
			OuterMac:  outerMac,
		},
	}, nil
}
