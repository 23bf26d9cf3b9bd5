package identity

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	req := require.New(t)

	a, err := Generate()
	req.NoError(err)
	b, err := Generate()
	req.NoError(err)

	req.NotEqual(a.PublicKey(), b.PublicKey())
	req.True(a.HasPrivateKey())

	raw, err := base64.StdEncoding.DecodeString(a.PublicKey())
	req.NoError(err)
	req.Len(raw, 32)
	req.Len(a.Fingerprint(), 20)
}

func TestParse(t *testing.T) {
	req := require.New(t)

	id, err := Parse("user_public_key")
	req.NoError(err)
	req.Equal("user_public_key", id.PublicKey())
	req.False(id.HasPrivateKey())

	same, err := Parse("user_public_key")
	req.NoError(err)
	req.Equal(id.Fingerprint(), same.Fingerprint())

	_, err = Parse("")
	req.ErrorIs(err, ErrEmptyKey)
}
