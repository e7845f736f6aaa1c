package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbowl/salad-storefront/internal/lib/jwt"
	"github.com/greenbowl/salad-storefront/internal/models"
	authservice "github.com/greenbowl/salad-storefront/internal/services/auth"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	tokens := authservice.NewAuthService(nil, maker)
	token, err := maker.GenerateToken("anna@example.com", models.RoleCustomer, "user-uid-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			var gotEmail, gotRole, gotUID string
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotEmail, _ = r.Context().Value(UserEmail).(string)
				gotRole, _ = r.Context().Value(Role).(string)
				gotUID, _ = r.Context().Value(UserUID).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/orders/all", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(tokens, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, "anna@example.com", gotEmail)
				assert.Equal(t, models.RoleCustomer, gotRole)
				assert.Equal(t, "user-uid-1", gotUID)
			}
		})
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	maker := jwt.NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("anna@example.com", models.RoleCustomer, "user-uid-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called for an expired token")
	})
	JWTMiddleware(authservice.NewAuthService(nil, maker), newNoopLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantNext   bool
	}{
		{name: "admin passes", role: models.RoleAdmin, wantStatus: http.StatusOK, wantNext: true},
		{name: "customer rejected", role: models.RoleCustomer, wantStatus: http.StatusForbidden},
		{name: "no role in context", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodPost, "/salads/create", nil)
			if tt.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			rec := httptest.NewRecorder()

			RequireAdmin(newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
