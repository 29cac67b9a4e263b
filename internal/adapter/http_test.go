package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "payload", string(body))
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(5*time.Second).Post(context.Background(), srv.URL,
		map[string]string{"Authorization": "Bearer jwt"}, strings.NewReader("payload"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp))
}

func TestPost_SingleAttempt(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{"rate limited", http.StatusTooManyRequests, "unexpected status code 429"},
		{"unauthorized", http.StatusUnauthorized, "unexpected status code 401: bad jwt"},
		{"server error", http.StatusBadGateway, "unexpected status code 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("bad jwt"))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(5*time.Second).Post(context.Background(), srv.URL, nil, strings.NewReader("x"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}
