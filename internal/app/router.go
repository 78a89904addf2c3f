package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/linemk/vetcent/internal/app/handlers"
	"github.com/linemk/vetcent/internal/config"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/vetcent/internal/lib/logger"
	"github.com/linemk/vetcent/internal/lib/logger/handlers/urllog"
	"github.com/unrolled/secure"
)

// NewRouter описывает все маршруты API
func NewRouter(log *slog.Logger, cfg *config.Config, svc Services, db handlers.Pinger) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      cfg.Env == logger.EnvLocal,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(secureMiddleware.Handler)

	router.Get("/", handlers.RootHandler(log))
	router.Get("/health", handlers.HealthHandler(log, db))

	// каталог и предложения открыты без авторизации
	router.Get("/products", handlers.ProductsHandler(log, svc.Catalog))
	router.Get("/products/search", handlers.SearchProductsHandler(log, svc.Catalog))
	router.Get("/products/{id}/offers", handlers.OffersHandler(log, svc.Offers))
	router.Get("/products/{id}/best-offer", handlers.BestOfferHandler(log, svc.Offers))
	router.Get("/categories", handlers.CategoriesHandler(log, svc.Catalog))
	router.Get("/brands", handlers.BrandsHandler(log, svc.Catalog))
	router.Get("/units", handlers.UnitsHandler(log, svc.Catalog))

	router.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.RateLimit.AuthRequestsPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(tooManyRequests),
		))
		r.Post("/signup", handlers.SignupHandler(log, svc.Auth))
		r.Post("/login", handlers.LoginHandler(log, svc.Auth))
	})

	jwtMW := jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret)

	router.Group(func(r chi.Router) {
		r.Use(jwtMW, jwtmiddleware.RequireRole(models.RoleSupplier))
		r.Post("/supplier/prices", handlers.CreatePriceHandler(log, svc.Prices))
		r.Put("/supplier/prices/{id}", handlers.UpdatePriceHandler(log, svc.Prices))
		r.Patch("/supplier/prices/{id}/deactivate", handlers.DeactivatePriceHandler(log, svc.Prices))
		r.Get("/supplier/my-prices/{supplier_id}", handlers.MyPricesHandler(log, svc.Prices))
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtMW, jwtmiddleware.RequireRole(models.RoleClinic))
		r.Post("/cart/add", handlers.AddToCartHandler(log, svc.Cart))
		r.Get("/cart/{clinic_user_id}", handlers.GetCartHandler(log, svc.Cart))
		createOrder := handlers.CreateOrderHandler(log, svc.Cart)
		r.Post("/orders", createOrder)
		r.Post("/orders/submit", createOrder)
		r.Get("/orders/{clinic_user_id}", handlers.ListOrdersHandler(log, svc.Cart))
	})

	return router
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(handlers.ErrorResponse{Detail: "too many requests, try again later"})
}
