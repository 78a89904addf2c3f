package jwtmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/jwt-new/jwtmiddleware"
	"github.com/stretchr/testify/assert"
)

const testSecret = "testsecret"

// createTestToken создаёт JWT-токен с заданными claims и секретом.
func createTestToken(claims jwt.MapClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware_MissingAuthorization(t *testing.T) {
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status when no token provided")
	assert.True(t, strings.Contains(rr.Body.String(), "missing token"))
}

func TestJWTMiddleware_InvalidAuthorizationFormat(t *testing.T) {
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status for invalid token format")
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token format"))
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.value")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status for invalid token")
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token"))
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	tokenStr, err := createTestToken(jwt.MapClaims{"sub": uuid.NewString(), "role": "clinic"}, "other-secret")
	assert.NoError(t, err)

	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	tokenStr, err := createTestToken(jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, testSecret)
	assert.NoError(t, err)

	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expired token must be rejected")
}

func TestJWTMiddleware_NonUUIDSubject(t *testing.T) {
	tokenStr, err := createTestToken(jwt.MapClaims{"sub": "123"}, testSecret)
	assert.NoError(t, err)

	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "invalid user id"))
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokenStr, err := createTestToken(jwt.MapClaims{
		"sub":  userID.String(),
		"role": "supplier",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)
	assert.NoError(t, err)

	var (
		gotID   uuid.UUID
		gotRole string
	)
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotID, ok = jwtmiddleware.FromContext(r.Context())
		assert.True(t, ok)
		gotRole, ok = jwtmiddleware.RoleFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected OK status for valid token")
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "supplier", gotRole)
}

func TestNewJWTMiddleware_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() {
		jwtmiddleware.NewJWTMiddleware("")
	})
}

func TestFromContext(t *testing.T) {
	id := uuid.New()
	ctx := context.WithValue(context.Background(), jwtmiddleware.UserIDKey, id)
	userID, ok := jwtmiddleware.FromContext(ctx)
	assert.True(t, ok, "Expected to retrieve userID from context")
	assert.Equal(t, id, userID, "Expected userID to match")

	_, ok = jwtmiddleware.RoleFromContext(ctx)
	assert.False(t, ok, "Role is absent")
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "matching role", role: "supplier", wantCode: http.StatusOK},
		{name: "other role", role: "clinic", wantCode: http.StatusForbidden},
		{name: "no role", role: "", wantCode: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := createTestToken(jwt.MapClaims{
				"sub":  uuid.NewString(),
				"role": tc.role,
				"exp":  time.Now().Add(time.Hour).Unix(),
			}, testSecret)
			assert.NoError(t, err)

			handler := jwtmiddleware.NewJWTMiddleware(testSecret)(jwtmiddleware.RequireRole("supplier")(okHandler()))
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)
			if tc.wantCode == http.StatusForbidden {
				assert.Contains(t, rr.Body.String(), "only users with role 'supplier'")
			}
		})
	}
}
