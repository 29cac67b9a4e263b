package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-catalog/internal/domain"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation",
			err:      domain.Validationf("QUERY_PARAMS must be provided."),
			expected: "Validation Error: QUERY_PARAMS must be provided.",
		},
		{
			name:     "unauthorized",
			err:      domain.Unauthorizedf("Invalid API Key."),
			expected: "Validation Error: Invalid API Key.",
		},
		{
			name:     "wrapped validation keeps its context",
			err:      fmt.Errorf("bundle 1: %w", domain.Validationf("asset info must contain assetId")),
			expected: "Validation Error: bundle 1: asset info must contain assetId",
		},
		{
			name:     "not found",
			err:      domain.NotFoundf("asset a-1"),
			expected: "Validation Error: asset a-1",
		},
		{
			name:     "collaborator",
			err:      errors.New("connection refused"),
			expected: "Error occured during queryCollections: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message("queryCollections", tt.err))
		})
	}
}

func TestIsCallerError(t *testing.T) {
	assert.True(t, IsCallerError(fmt.Errorf("x: %w", domain.ErrInvalidSignature)))
	assert.False(t, IsCallerError(errors.New("timeout")))
	assert.False(t, IsCallerError(nil))
}
