package sphinx

import "errors"

// Sentinel error kinds, surfaced via errors.Is/errors.As over a wrapping
// fmt.Errorf, matching the teacher's own sentinel-error style (see
// lnonion.FinalHop, checked with errors.Is in cmd/main.go).
var (
	// ErrInvalidRoute covers an empty route, a route longer than
	// MaxPathLength, a non-final ForwardHop in the last slot, or a
	// FinalHop anywhere but the last slot.
	ErrInvalidRoute = errors.New("sphinx: invalid route")

	// ErrKeyVectorMismatch is returned when the supplied routing-key
	// slice does not have exactly one entry per route element.
	ErrKeyVectorMismatch = errors.New("sphinx: routing key count does not match route length")

	// ErrPaddingOverflow is returned when the destination block has no
	// room left for the destination address and SURB identifier once
	// the filler has claimed its share of RoutingInfoLength. With this
	// package's default constants this cannot happen for any route up
	// to MaxPathLength; it is only reachable with a misconfigured
	// build that shrinks RoutingInfoLength or grows DestinationLength
	// relative to SecurityParameter.
	ErrPaddingOverflow = errors.New("sphinx: destination block does not fit in the routing info budget")
)
