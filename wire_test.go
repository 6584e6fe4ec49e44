package sphinx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphinxHeaderBytesRoundTrip(t *testing.T) {
	assert := assert.New(t)

	route, _ := buildToyRoute(t, 3)
	initialSecret, err := RandomScalar()
	assert.NoError(err)

	header, _, err := BuildHeader(route, initialSecret)
	assert.NoError(err)

	wire := header.Bytes()
	assert.Len(wire, HeaderSize)

	parsed, err := ParseSphinxHeader(wire)
	assert.NoError(err)

	assert.True(header.InitialSharedSecret.Equal(parsed.InitialSharedSecret))
	assert.Equal(header.RoutingInfo.EncHeader, parsed.RoutingInfo.EncHeader)
	assert.Equal(header.RoutingInfo.OuterMac, parsed.RoutingInfo.OuterMac)
}

func TestParseSphinxHeaderRejectsWrongLength(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseSphinxHeader(make([]byte, HeaderSize-1))
	assert.Error(err)
}

func TestParseSphinxHeaderRejectsInvalidPoint(t *testing.T) {
	assert := assert.New(t)

	// A y-coordinate of 2 has no matching x on the curve, so the leading
	// 32 bytes are not a point encoding at all.
	wire := make([]byte, HeaderSize)
	wire[0] = 0x02

	_, err := ParseSphinxHeader(wire)
	assert.Error(err)
}
