package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/storage"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// CatalogService: чтение каталога и справочников
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	SearchProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListBrands(ctx context.Context) ([]string, error)
	ListUnits(ctx context.Context) ([]string, error)
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage) CatalogService {
	return &catalogService{log: log, productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// SearchProducts проверяет пагинацию и передаёт фильтр в хранилище
func (s *catalogService) SearchProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	const op = "service.CatalogService.SearchProducts"
	logger := s.log.With(slog.String("op", op))

	if filter.Limit < 1 || filter.Limit > MaxSearchLimit {
		return nil, invalidInput(fmt.Sprintf("limit must be between 1 and %d", MaxSearchLimit))
	}
	if filter.Offset < 0 {
		return nil, invalidInput("offset must not be negative")
	}

	products, err := s.productRepo.SearchProducts(ctx, filter)
	if err != nil {
		logger.Error("failed to search products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Debug("products found", slog.Int("count", len(products)))
	return products, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]string, error) {
	const op = "service.CatalogService.ListBrands"
	brands, err := s.productRepo.ListBrands(ctx)
	if err != nil {
		s.log.Error("failed to list brands", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return brands, nil
}

func (s *catalogService) ListUnits(ctx context.Context) ([]string, error) {
	const op = "service.CatalogService.ListUnits"
	units, err := s.productRepo.ListUnits(ctx)
	if err != nil {
		s.log.Error("failed to list units", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return units, nil
}
