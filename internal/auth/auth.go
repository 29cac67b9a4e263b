package auth

import (
	"context"
	"strings"
)

// Verifier decides whether a bearer token authenticates the claimed user
//
//go:generate mockgen -source=auth.go -destination=../mocks/auth.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// Verify reports whether token is valid and was issued to userID
	Verify(ctx context.Context, token string, userID string) bool
}

// APIKeys is the set of accepted API keys
type APIKeys struct {
	keys map[string]bool
}

// NewAPIKeys builds the key set. Empty keys are ignored.
func NewAPIKeys(keys []string) APIKeys {
	m := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key != "" {
			m[key] = true
		}
	}
	return APIKeys{keys: m}
}

// Valid reports whether key is one of the configured keys. With no keys
// configured every key is rejected.
func (k APIKeys) Valid(key string) bool {
	if key == "" || len(k.keys) == 0 {
		return false
	}
	return k.keys[key]
}

// BearerToken extracts the credential from an Authorization header of the
// form "<scheme> <token>". It returns "" when no credential is present.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
