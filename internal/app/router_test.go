package app_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/app"
	"github.com/linemk/vetcent/internal/config"
	"github.com/linemk/vetcent/internal/domain/models"
	security "github.com/linemk/vetcent/internal/jwt-new"
	"github.com/linemk/vetcent/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

type stubAuth struct{}

func (stubAuth) Signup(ctx context.Context, email, password, role string) (*service.SignupResult, error) {
	return &service.SignupResult{UserID: uuid.New(), Role: role}, nil
}

func (stubAuth) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	return nil, service.ErrInvalidCredentials
}

type stubPrices struct{ service.PriceService }

func (stubPrices) ListSupplierPrices(ctx context.Context, callerID, supplierID uuid.UUID) ([]*models.SupplierPrice, error) {
	return []*models.SupplierPrice{}, nil
}

// stubCart считает вызовы CreateOrder, чтобы проверить общий обработчик /orders и /orders/submit
type stubCart struct {
	service.CartService
	createCalls int
}

func (s *stubCart) CreateOrder(ctx context.Context, clinicUserID uuid.UUID) (*service.OrderResult, error) {
	s.createCalls++
	return &service.OrderResult{Message: service.MessageOrderCreated, OrderID: uuid.New(), Status: models.OrderStatusSubmitted, TotalAmount: decimal.Zero, ItemsCount: 1}, nil
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func newTestRouter(cart *stubCart) http.Handler {
	cfg := &config.Config{
		Env:       "prod",
		JWT:       config.JWTConfig{Secret: testSecret, TokenTTL: 60},
		RateLimit: config.RateLimitConfig{AuthRequestsPerMinute: 2},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.NewRouter(log, cfg, app.Services{
		Auth:   stubAuth{},
		Prices: stubPrices{},
		Cart:   cart,
	}, okPinger{})
}

func bearer(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := security.NewToken(&models.User{ID: userID}, role, time.Hour, testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_SupplierRoutesRequireSupplierRole(t *testing.T) {
	router := newTestRouter(&stubCart{})
	path := "/supplier/my-prices/" + uuid.NewString()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", bearer(t, uuid.New(), models.RoleClinic))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", bearer(t, uuid.New(), models.RoleSupplier))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_SubmitAliasesCreateOrder(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(cart)
	clinic := uuid.New()

	for _, path := range []string{"/orders", "/orders/submit"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"clinic_user_id":"`+clinic.String()+`"}`))
		req.Header.Set("Authorization", bearer(t, clinic, models.RoleClinic))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Body.String(), `"message":"order_created"`)
	}
	assert.Equal(t, 2, cart.createCalls)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	router := newTestRouter(&stubCart{})
	body := `{"email":"vet@example.com","password":"secret1","role":"clinic"}`

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_MetaAndSecurityHeaders(t *testing.T) {
	router := newTestRouter(&stubCart{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rr.Body.String(), "Vetcent backend is running")
}
