package sphinx

import "fmt"

// HopKind tags a RouteElement as either an intermediate mix or the
// final destination. It is the Go rendering of original_source's
// closed RouteElement enum (ForwardHop / FinalHop); a RouteElement
// carries both kinds' fields so the placement invariant ("exactly the
// last element is a FinalHop") is checked once, in Route.Validate,
// rather than encoded in two separate Go types that would otherwise
// need an interface and a type switch at every call site.
type HopKind int

const (
	// ForwardHop is an intermediate mix node that decrypts one layer
	// and forwards to the next hop.
	ForwardHop HopKind = iota
	// FinalHop is the route's destination; besides its address and
	// public key it carries a SURB identifier.
	FinalHop
)

func (k HopKind) String() string {
	if k == FinalHop {
		return "FinalHop"
	}
	return "ForwardHop"
}

// RouteElement is one hop of a Route: a ForwardHop's Address is that
// mix's own network address (the previous hop embeds it as the
// address to forward to); a FinalHop's Address is the
// destination's address and its SurbIdentifier names a single-use
// reply block. PubKey is always the hop's own public key, used by C4
// to derive that hop's shared secret.
type RouteElement struct {
	Kind           HopKind
	Address        [DestinationLength]byte
	SurbIdentifier [IdentifierLength]byte
	PubKey         Point
}

// NewForwardHop builds an intermediate-mix route element.
func NewForwardHop(address [DestinationLength]byte, pubKey Point) RouteElement {
	return RouteElement{Kind: ForwardHop, Address: address, PubKey: pubKey}
}

// NewFinalHop builds a destination route element.
func NewFinalHop(address [DestinationLength]byte, identifier [IdentifierLength]byte, pubKey Point) RouteElement {
	return RouteElement{Kind: FinalHop, Address: address, SurbIdentifier: identifier, PubKey: pubKey}
}

// Route is an ordered path through the mixnet: zero or more
// ForwardHops followed by exactly one FinalHop.
type Route []RouteElement

// Validate checks the well-formedness invariants spec.md §3 places on
// a route: non-empty, no longer than MaxPathLength, every non-last
// element a ForwardHop, and the last element a FinalHop.
func (r Route) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: route is empty", ErrInvalidRoute)
	}
	if len(r) > MaxPathLength {
		return fmt.Errorf("%w: route length %d exceeds MaxPathLength %d", ErrInvalidRoute, len(r), MaxPathLength)
	}
	last := len(r) - 1
	for i, elem := range r {
		switch {
		case i == last && elem.Kind != FinalHop:
			return fmt.Errorf("%w: last element must be a FinalHop, got %s", ErrInvalidRoute, elem.Kind)
		case i != last && elem.Kind != ForwardHop:
			return fmt.Errorf("%w: element %d must be a ForwardHop, got %s", ErrInvalidRoute, i, elem.Kind)
		}
	}
	return nil
}
