package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func ownerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := GetOwnerFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(owner))
	})
}

func signed(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestAuthenticate(t *testing.T) {
	valid, err := IssueToken(testSecret, "alice", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, "alice", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken([]byte("other"), "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "legacy numeric user id", header: "Bearer " + signed(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": float64(42)}), wantStatus: http.StatusOK, wantBody: "42"},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "no owner claim", header: "Bearer " + signed(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "x"}), wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Authenticate(testSecret)(ownerEcho()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGetOwnerFromContext(t *testing.T) {
	_, err := GetOwnerFromContext(context.Background())
	assert.Error(t, err)

	owner, err := GetOwnerFromContext(WithOwner(context.Background(), "bob"))
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)
}

func TestIssueToken_RequiresOwner(t *testing.T) {
	_, err := IssueToken(testSecret, "", time.Hour)
	assert.Error(t, err)
}
