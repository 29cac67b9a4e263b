package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// fixedClock pins token validation to testNow. The generated clock mock
// cannot be used here because the mocks package imports auth.
type fixedClock struct{}

func (fixedClock) Now() time.Time                  { return testNow }
func (fixedClock) Since(t time.Time) time.Duration { return testNow.Sub(t) }

func newTestVerifier(t *testing.T, publicKeyPEM string) Verifier {
	v, err := NewJWTVerifier(publicKeyPEM, fixedClock{})
	require.NoError(t, err)
	return v
}

func TestJWTVerifier(t *testing.T) {
	key, publicKeyPEM := generateKeyPair(t)
	otherKey, _ := generateKeyPair(t)
	v := newTestVerifier(t, publicKeyPEM)
	ctx := context.Background()

	valid := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}

	tests := []struct {
		name   string
		token  string
		userID string
		want   bool
	}{
		{
			name:   "subject matches",
			token:  signToken(t, key, jwt.SigningMethodRS256, valid),
			userID: "user-1",
			want:   true,
		},
		{
			name:   "subject mismatch",
			token:  signToken(t, key, jwt.SigningMethodRS256, valid),
			userID: "user-2",
			want:   false,
		},
		{
			name: "expired",
			token: signToken(t, key, jwt.SigningMethodRS256, jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(testNow.Add(-time.Minute)),
			}),
			userID: "user-1",
			want:   false,
		},
		{
			name: "not yet valid",
			token: signToken(t, key, jwt.SigningMethodRS256, jwt.RegisteredClaims{
				Subject:   "user-1",
				NotBefore: jwt.NewNumericDate(testNow.Add(time.Hour)),
			}),
			userID: "user-1",
			want:   false,
		},
		{
			name:   "signed by another key",
			token:  signToken(t, otherKey, jwt.SigningMethodRS256, valid),
			userID: "user-1",
			want:   false,
		},
		{
			name:   "garbage",
			token:  "not.a.token",
			userID: "user-1",
			want:   false,
		},
		{
			name:   "empty token",
			userID: "user-1",
			want:   false,
		},
		{
			name:  "empty user",
			token: signToken(t, key, jwt.SigningMethodRS256, valid),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Verify(ctx, tt.token, tt.userID))
		})
	}
}

func TestNewJWTVerifier_BadKey(t *testing.T) {
	_, err := NewJWTVerifier("", nil)
	assert.Error(t, err)

	_, err = NewJWTVerifier("-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n", nil)
	assert.Error(t, err)
}

func TestParseRSAPublicKey_PKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})

	parsed, err := parseRSAPublicKey(string(pemBytes))
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey.N, parsed.N)
}

func TestAPIKeys(t *testing.T) {
	keys := NewAPIKeys([]string{"k1", "", "k2"})
	assert.True(t, keys.Valid("k1"))
	assert.True(t, keys.Valid("k2"))
	assert.False(t, keys.Valid(""))
	assert.False(t, keys.Valid("k3"))

	assert.False(t, NewAPIKeys(nil).Valid("k1"))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("  Bearer   abc "))
	assert.Equal(t, "", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}
