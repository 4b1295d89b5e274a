package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, expiry time.Duration) *Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	p, err := NewProviderFromPEM(privPEM, pubPEM, expiry)
	require.NoError(t, err)
	return p
}

func TestProvider_SignVerify(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	tok, err := p.Sign("user-1", "admin")
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestProvider_Expired(t *testing.T) {
	p := newTestProvider(t, -time.Minute)

	tok, err := p.Sign("user-1", "user")
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.Error(t, err)
}

func TestProvider_ForeignKeyRejected(t *testing.T) {
	a := newTestProvider(t, time.Hour)
	b := newTestProvider(t, time.Hour)

	tok, err := a.Sign("user-1", "user")
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.Error(t, err)
}
