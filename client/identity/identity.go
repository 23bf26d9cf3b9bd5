// Package identity provides the local peer's public key identifier.
//
// The session core treats the identifier as opaque. When none is configured
// a fresh X25519 key pair is generated and its base64 public key is used.
package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/curve25519"
)

var (
	ErrEmptyKey = errors.New("public key is empty")
)

type Identity struct {
	publicKey  string
	privateKey []byte
}

// Generate returns a new identity backed by an X25519 key pair.
func Generate() (Identity, error) {
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return Identity{}, err
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		publicKey:  base64.StdEncoding.EncodeToString(pub),
		privateKey: priv,
	}, nil
}

// Parse wraps an externally supplied public key identifier.
func Parse(publicKey string) (Identity, error) {
	if publicKey == "" {
		return Identity{}, ErrEmptyKey
	}
	return Identity{publicKey: publicKey}, nil
}

func (id Identity) PublicKey() string {
	return id.publicKey
}

// HasPrivateKey is true for generated identities.
func (id Identity) HasPrivateKey() bool {
	return len(id.privateKey) > 0
}

// Fingerprint is a short, log-friendly digest of the public key.
func (id Identity) Fingerprint() string {
	sum := sha256.Sum256([]byte(id.publicKey))
	return hex.EncodeToString(sum[:10])
}
