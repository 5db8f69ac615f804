package util

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signer struct {
	key   *ecdsa.PrivateKey
	jwk   *plaid.JWKPublicKey
	calls int
}

func newSigner(t *testing.T) *signer {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	pad := func(b []byte) []byte {
		out := make([]byte, 32)
		copy(out[32-len(b):], b)
		return out
	}
	return &signer{key: key, jwk: &plaid.JWKPublicKey{
		Kid: "kid-1", Kty: "EC", Crv: "P-256", Alg: "ES256", Use: "sig",
		X: base64.RawURLEncoding.EncodeToString(pad(key.PublicKey.X.Bytes())),
		Y: base64.RawURLEncoding.EncodeToString(pad(key.PublicKey.Y.Bytes())),
	}}
}

func (s *signer) fetch(_ context.Context, kid string) (*plaid.JWKPublicKey, error) {
	s.calls++
	return s.jwk, nil
}

func (s *signer) header(t *testing.T, body []byte, issued time.Time) http.Header {
	sum := sha256.Sum256(body)
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iat":                 issued.Unix(),
		"request_body_sha256": hex.EncodeToString(sum[:]),
	})
	token.Header["kid"] = "kid-1"
	signed, err := token.SignedString(s.key)
	require.NoError(t, err)
	h := http.Header{}
	h.Set("Plaid-Verification", signed)
	return h
}

func TestVerifierAcceptsSignedWebhook(t *testing.T) {
	s := newSigner(t)
	v := NewVerifier(s.fetch)
	body := []byte(`{"webhook_type":"TRANSACTIONS","webhook_code":"SYNC_UPDATES_AVAILABLE"}`)

	require.NoError(t, v.Verify(context.Background(), body, s.header(t, body, time.Now())))
	require.NoError(t, v.Verify(context.Background(), body, s.header(t, body, time.Now())))
	assert.Equal(t, 1, s.calls)
}

func TestVerifierRejects(t *testing.T) {
	s := newSigner(t)
	v := NewVerifier(s.fetch)
	body := []byte(`{"webhook_code":"SYNC_UPDATES_AVAILABLE"}`)

	assert.Error(t, v.Verify(context.Background(), body, http.Header{}))
	assert.ErrorContains(t, v.Verify(context.Background(), []byte(`{}`), s.header(t, body, time.Now())), "body hash mismatch")
	assert.ErrorContains(t, v.Verify(context.Background(), body, s.header(t, body, time.Now().Add(-10*time.Minute))), "too old")
}
