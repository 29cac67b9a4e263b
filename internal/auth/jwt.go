package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/logger"
)

type jwtVerifier struct {
	publicKey *rsa.PublicKey
	clock     adapter.Clock
}

// NewJWTVerifier creates a Verifier for RSA-signed access tokens. The token
// subject must equal the claimed user id.
func NewJWTVerifier(publicKeyPEM string, clock adapter.Clock) (Verifier, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}
	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return &jwtVerifier{publicKey: publicKey, clock: clock}, nil
}

func (v *jwtVerifier) Verify(ctx context.Context, token string, userID string) bool {
	if token == "" || userID == "" {
		return false
	}

	claims, err := v.parse(token)
	if err != nil {
		logger.DebugCtx(ctx, "access token rejected", zap.String("userId", userID), zap.Error(err))
		return false
	}
	return claims.Subject == userID
}

func (v *jwtVerifier) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.publicKey, nil
	}, jwt.WithTimeFunc(v.clock.Now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// parseRSAPublicKey accepts PKIX and PKCS1 encoded PEM keys
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaKey, nil
}
