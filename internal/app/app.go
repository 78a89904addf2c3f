package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/vetcent/internal/config"
	"github.com/linemk/vetcent/internal/service"
	"github.com/linemk/vetcent/internal/storage"
	"github.com/pkg/errors"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *sql.DB
	Services Services
}

// Services: набор сервисов, из которых собирается роутер
type Services struct {
	Auth    service.AuthServiceInterface
	Catalog service.CatalogService
	Offers  service.OfferService
	Prices  service.PriceService
	Cart    service.CartService
}

// NewApp подключается к БД платформы и собирает слои хранилища и сервисов
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &App{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Services: NewServices(log, cfg, db),
	}, nil
}

// NewServices связывает репозитории с сервисами
func NewServices(log *slog.Logger, cfg *config.Config, db *sql.DB) Services {
	userRepo := storage.NewUserRepository(db)
	profileRepo := storage.NewProfileRepository(db)
	supplierRepo := storage.NewSupplierRepository(db)
	productRepo := storage.NewProductRepository(db)
	offerRepo := storage.NewOfferRepository(db)
	priceRepo := storage.NewSupplierPriceRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	itemRepo := storage.NewOrderItemRepository(db)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute

	return Services{
		Auth:    service.NewAuthService(log, userRepo, profileRepo, tokenTTL, cfg.JWT.Secret),
		Catalog: service.NewCatalogService(log, productRepo),
		Offers:  service.NewOfferService(log, offerRepo),
		Prices:  service.NewPriceService(log, priceRepo, supplierRepo),
		Cart:    service.NewCartService(log, db, orderRepo, itemRepo, priceRepo),
	}
}
