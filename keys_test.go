package sphinx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildToyRoute(t *testing.T, forwardHops int) (Route, []Scalar) {
	t.Helper()

	route := make(Route, 0, forwardHops+1)
	secrets := make([]Scalar, 0, forwardHops+1)

	for i := 0; i < forwardHops; i++ {
		s, err := RandomScalar()
		assert.NoError(t, err)
		secrets = append(secrets, s)

		var addr [DestinationLength]byte
		copy(addr[:], "hop")
		route = append(route, NewForwardHop(addr, ScalarBaseMult(s)))
	}

	finalSecret, err := RandomScalar()
	assert.NoError(t, err)
	secrets = append(secrets, finalSecret)

	var destAddr [DestinationLength]byte
	copy(destAddr[:], "destination")
	var id [IdentifierLength]byte
	copy(id[:], "surb")
	route = append(route, NewFinalHop(destAddr, id, ScalarBaseMult(finalSecret)))

	return route, secrets
}

func TestDeriveKeyMaterialEmptyRoute(t *testing.T) {
	assert := assert.New(t)

	initialSecret, err := RandomScalar()
	assert.NoError(err)

	km, err := DeriveKeyMaterial(nil, initialSecret)
	assert.NoError(err)
	assert.Len(km.RoutingKeys, 0)
}

func TestDeriveKeyMaterialKeyCountMatchesRoute(t *testing.T) {
	assert := assert.New(t)

	route, _ := buildToyRoute(t, 3)
	initialSecret, err := RandomScalar()
	assert.NoError(err)

	km, err := DeriveKeyMaterial(route, initialSecret)
	assert.NoError(err)
	assert.Len(km.RoutingKeys, len(route))
}

// Deriving key material twice from the same route and initial secret
// must yield identical routing keys and the same initial shared secret:
// the chain holds no hidden state between calls.
func TestDeriveKeyMaterialDeterministic(t *testing.T) {
	assert := assert.New(t)

	route, _ := buildToyRoute(t, 2)
	initialSecret, err := RandomScalar()
	assert.NoError(err)

	km1, err := DeriveKeyMaterial(route, initialSecret)
	assert.NoError(err)
	km2, err := DeriveKeyMaterial(route, initialSecret)
	assert.NoError(err)

	assert.Equal(km1.RoutingKeys, km2.RoutingKeys)
	assert.True(km1.InitialSharedSecret.Equal(km2.InitialSharedSecret))
}

// Distinct hops must derive distinct routing keys even when every hop
// shares the same public key material pattern, since each hop's shared
// secret point differs under the running blinding accumulator.
func TestDeriveKeyMaterialDistinctPerHop(t *testing.T) {
	assert := assert.New(t)

	route, _ := buildToyRoute(t, 3)
	initialSecret, err := RandomScalar()
	assert.NoError(err)

	km, err := DeriveKeyMaterial(route, initialSecret)
	assert.NoError(err)

	seen := make(map[[StreamCipherKeySize]byte]bool)
	for _, rk := range km.RoutingKeys {
		assert.False(seen[rk.StreamCipherKey], "duplicate stream cipher key across hops")
		seen[rk.StreamCipherKey] = true
	}
}

func TestPayloadKeysOrderedByHop(t *testing.T) {
	assert := assert.New(t)

	route, _ := buildToyRoute(t, 2)
	initialSecret, err := RandomScalar()
	assert.NoError(err)

	km, err := DeriveKeyMaterial(route, initialSecret)
	assert.NoError(err)

	payloadKeys := km.PayloadKeys()
	assert.Len(payloadKeys, len(route))
	for i, rk := range km.RoutingKeys {
		assert.Equal(rk.PayloadKey, payloadKeys[i])
	}
}

func TestRoutingKeysZero(t *testing.T) {
	assert := assert.New(t)

	rk := RoutingKeys{}
	for i := range rk.StreamCipherKey {
		rk.StreamCipherKey[i] = 0xFF
	}
	for i := range rk.PayloadKey {
		rk.PayloadKey[i] = 0xFF
	}
	rk.Zero()

	var zeroed [StreamCipherKeySize]byte
	assert.Equal(zeroed, rk.StreamCipherKey)
	var zeroedPayload [PayloadKeySize]byte
	assert.Equal(zeroedPayload, rk.PayloadKey)
}

func TestRoutingKeysZeroEphemeralLeavesPayloadKey(t *testing.T) {
	assert := assert.New(t)

	rk := RoutingKeys{}
	for i := range rk.StreamCipherKey {
		rk.StreamCipherKey[i] = 0xFF
	}
	for i := range rk.IntegrityMacKey {
		rk.IntegrityMacKey[i] = 0xFF
	}
	for i := range rk.PayloadKey {
		rk.PayloadKey[i] = 0xAA
	}
	rk.zeroEphemeral()

	var zeroed [StreamCipherKeySize]byte
	assert.Equal(zeroed, rk.StreamCipherKey)
	var zeroedMac [IntegrityMacKeySize]byte
	assert.Equal(zeroedMac, rk.IntegrityMacKey)

	var untouchedPayload [PayloadKeySize]byte
	for i := range untouchedPayload {
		untouchedPayload[i] = 0xAA
	}
	assert.Equal(untouchedPayload, rk.PayloadKey)
}
