package handlers

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgee-insights/src/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookSigner(t *testing.T) (*util.Verifier, func(body string) string) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	coord := func(b []byte) string {
		out := make([]byte, 32)
		copy(out[32-len(b):], b)
		return base64.RawURLEncoding.EncodeToString(out)
	}
	jwk := &plaid.JWKPublicKey{
		Kid: "k1", Kty: "EC", Crv: "P-256", Alg: "ES256", Use: "sig",
		X: coord(key.PublicKey.X.Bytes()), Y: coord(key.PublicKey.Y.Bytes()),
	}
	verifier := util.NewVerifier(func(context.Context, string) (*plaid.JWKPublicKey, error) { return jwk, nil })

	sign := func(body string) string {
		sum := sha256.Sum256([]byte(body))
		token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
			"iat":                 time.Now().Unix(),
			"request_body_sha256": hex.EncodeToString(sum[:]),
		})
		token.Header["kid"] = "k1"
		signed, err := token.SignedString(key)
		require.NoError(t, err)
		return signed
	}
	return verifier, sign
}

func TestPlaidWebhook(t *testing.T) {
	verifier, sign := webhookSigner(t)
	h := PlaidWebhook(verifier, nil, nil, nil)

	t.Run("unsigned", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plaid/webhook", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plaid/webhook", strings.NewReader(`{"webhook_code":"X"}`))
		req.Header.Set("Plaid-Verification", sign(`{"webhook_code":"Y"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("other codes are acknowledged", func(t *testing.T) {
		body := `{"webhook_type":"ITEM","webhook_code":"PENDING_EXPIRATION","item_id":"item-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/plaid/webhook", strings.NewReader(body))
		req.Header.Set("Plaid-Verification", sign(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
