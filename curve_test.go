package sphinx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomScalarDistinct(t *testing.T) {
	assert := assert.New(t)

	a, err := RandomScalar()
	assert.NoError(err)
	b, err := RandomScalar()
	assert.NoError(err)

	assert.NotEqual(ScalarBaseMult(a).Bytes(), ScalarBaseMult(b).Bytes())
}

func TestScalarBaseMultPointFromBytesRoundTrip(t *testing.T) {
	assert := assert.New(t)

	s, err := RandomScalar()
	assert.NoError(err)

	p := ScalarBaseMult(s)
	encoded := p.Bytes()

	decoded, err := PointFromBytes(encoded[:])
	assert.NoError(err)
	assert.True(p.Equal(decoded))
}

func TestPointFromBytesRejectsGarbage(t *testing.T) {
	assert := assert.New(t)

	_, err := PointFromBytes([]byte{0x01, 0x02, 0x03})
	assert.Error(err)
}

// Diffie-Hellman commutativity: g^a^b == g^b^a, the core identity C4's
// per-hop shared secret relies on.
func TestDiffieHellmanCommutes(t *testing.T) {
	assert := assert.New(t)

	a, err := RandomScalar()
	assert.NoError(err)
	b, err := RandomScalar()
	assert.NoError(err)

	aPub := ScalarBaseMult(a)
	bPub := ScalarBaseMult(b)

	left := bPub.ScalarMult(a)
	right := aPub.ScalarMult(b)

	assert.True(left.Equal(right))
}

func TestScalarFromWideBytesDeterministic(t *testing.T) {
	assert := assert.New(t)

	tag := keyedHMAC([]byte("key"), []byte("data"))
	s1 := scalarFromWideBytes(tag)
	s2 := scalarFromWideBytes(tag)

	assert.Equal(ScalarBaseMult(s1).Bytes(), ScalarBaseMult(s2).Bytes())
}
