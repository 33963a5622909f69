package graphql

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	s := &Server{logger: logging.NopLogger{}, jwtSecret: []byte(testSecret)}

	valid, err := auth.GenerateToken("alice", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("alice", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("alice", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   *auth.Identity
	}{
		{"valid", "Bearer " + valid, &auth.Identity{Username: "alice"}},
		{"missing", "", nil},
		{"expired", "Bearer " + expired, nil},
		{"wrong key", "Bearer " + foreign, nil},
		{"wrong scheme", "Token " + valid, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *auth.Identity
			called := false
			h := s.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = auth.IdentityFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, called, "request must reach the handler")
			assert.Equal(t, tt.want, got)
		})
	}
}
