package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	revoked map[string]bool
}

func (s *fakeTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[jti] = true
	return nil
}

func (s *fakeTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestMiddleware(t *testing.T) {
	const secret = "test-secret"
	claims := jwt.MapClaims{
		"user_id": float64(42),
		"role":    "user",
		"jti":     "token-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		token      string
		revoked    []string
		wantStatus int
		wantUserID int
	}{
		{
			name:       "valid token loads identity",
			token:      signToken(t, secret, claims),
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "token signed with another secret",
			token:      signToken(t, "other-secret", claims),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			token:      signToken(t, secret, claims),
			revoked:    []string{"token-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := &fakeTokenStore{revoked: map[string]bool{}}
			for _, jti := range tc.revoked {
				tokens.revoked[jti] = true
			}

			var gotUserID int
			var gotRole string
			handler := Middleware(secret, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = UserIDFromContext(r.Context())
				gotRole = RoleFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, tc.wantUserID, gotUserID)
				require.Equal(t, "user", gotRole)
			}
		})
	}
}
