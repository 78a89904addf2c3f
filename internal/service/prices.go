package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/storage"
	"github.com/shopspring/decimal"
)

// PriceService: управление прайс-листом поставщика.
// Любая операция разрешена только владельцу записи поставщика (suppliers.user_id = вызывающий).
type PriceService interface {
	CreatePrice(ctx context.Context, callerID uuid.UUID, in CreatePriceInput) (*models.SupplierPrice, error)
	UpdatePrice(ctx context.Context, callerID, priceID uuid.UUID, upd models.SupplierPriceUpdate) (*models.SupplierPrice, error)
	DeactivatePrice(ctx context.Context, callerID, priceID uuid.UUID) (*models.SupplierPrice, error)
	ListSupplierPrices(ctx context.Context, callerID, supplierID uuid.UUID) ([]*models.SupplierPrice, error)
}

// CreatePriceInput: новое предложение; nil-поля получают значения по умолчанию
type CreatePriceInput struct {
	SupplierID   *uuid.UUID
	ProductID    uuid.UUID
	Price        decimal.Decimal
	Stock        *int
	DeliveryDays *int
	IsActive     *bool
}

const (
	defaultStock        = 0
	defaultDeliveryDays = 1
)

type priceService struct {
	log          *slog.Logger
	priceRepo    storage.SupplierPriceStorage
	supplierRepo storage.SupplierStorage
}

func NewPriceService(log *slog.Logger, priceRepo storage.SupplierPriceStorage, supplierRepo storage.SupplierStorage) PriceService {
	return &priceService{
		log:          log,
		priceRepo:    priceRepo,
		supplierRepo: supplierRepo,
	}
}

// цена хранится как NUMERIC(12,2)
var maxPrice = decimal.New(1, 10)

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return invalidInput("price must be greater than 0")
	}
	if !price.Equal(price.Round(2)) {
		return invalidInput("price must have at most 2 decimal places")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return invalidInput("price must be less than 10000000000")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return invalidInput("stock must not be negative")
	}
	if stock > math.MaxInt32 {
		return invalidInput("stock is too large")
	}
	return nil
}

func validateDeliveryDays(days int) error {
	if days <= 0 {
		return invalidInput("delivery_days must be greater than 0")
	}
	if days > math.MaxInt32 {
		return invalidInput("delivery_days is too large")
	}
	return nil
}

// ownSupplier находит запись поставщика вызывающего пользователя
func (s *priceService) ownSupplier(ctx context.Context, callerID uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetSupplierByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, storage.ErrSupplierNotFound) {
			return nil, ErrNotSupplier
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

// ownedPrice загружает предложение и проверяет, что оно принадлежит вызывающему
func (s *priceService) ownedPrice(ctx context.Context, callerID, priceID uuid.UUID) (*models.SupplierPrice, error) {
	supplier, err := s.ownSupplier(ctx, callerID)
	if err != nil {
		return nil, err
	}
	price, err := s.priceRepo.GetPriceByID(ctx, priceID)
	if err != nil {
		if errors.Is(err, storage.ErrSupplierPriceNotFound) {
			return nil, ErrSupplierPriceNotFound
		}
		return nil, fmt.Errorf("failed to get supplier price: %w", err)
	}
	if price.SupplierID != supplier.ID {
		return nil, ErrForeignSupplierID
	}
	return price, nil
}

// CreatePrice проверяет входные данные до обращения к БД, затем право на supplier_id
func (s *priceService) CreatePrice(ctx context.Context, callerID uuid.UUID, in CreatePriceInput) (*models.SupplierPrice, error) {
	const op = "service.PriceService.CreatePrice"
	logger := s.log.With(slog.String("op", op), slog.String("callerID", callerID.String()))

	price := &models.SupplierPrice{
		ProductID:    in.ProductID,
		Price:        in.Price,
		Stock:        defaultStock,
		DeliveryDays: defaultDeliveryDays,
		IsActive:     true,
	}
	if in.Stock != nil {
		price.Stock = *in.Stock
	}
	if in.DeliveryDays != nil {
		price.DeliveryDays = *in.DeliveryDays
	}
	if in.IsActive != nil {
		price.IsActive = *in.IsActive
	}

	if err := validatePrice(price.Price); err != nil {
		return nil, err
	}
	if err := validateStock(price.Stock); err != nil {
		return nil, err
	}
	if err := validateDeliveryDays(price.DeliveryDays); err != nil {
		return nil, err
	}
	if in.SupplierID == nil {
		return nil, invalidInput("supplier_id is required")
	}

	supplier, err := s.ownSupplier(ctx, callerID)
	if err != nil {
		logger.Warn("supplier check failed", slog.Any("error", err))
		return nil, wrapUnlessRejected(op, err)
	}
	if supplier.ID != *in.SupplierID {
		logger.Warn("supplier_id belongs to another user", slog.String("supplierID", in.SupplierID.String()))
		return nil, ErrForeignSupplierID
	}
	price.SupplierID = supplier.ID

	created, err := s.priceRepo.CreatePrice(ctx, price)
	if err != nil {
		logger.Error("failed to create supplier price", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("supplier price created", slog.String("priceID", created.ID.String()))
	return created, nil
}

// UpdatePrice применяет только переданные поля; пустое обновление отклоняется
func (s *priceService) UpdatePrice(ctx context.Context, callerID, priceID uuid.UUID, upd models.SupplierPriceUpdate) (*models.SupplierPrice, error) {
	const op = "service.PriceService.UpdatePrice"
	logger := s.log.With(slog.String("op", op), slog.String("priceID", priceID.String()))

	if upd.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if upd.Price != nil {
		if err := validatePrice(*upd.Price); err != nil {
			return nil, err
		}
	}
	if upd.Stock != nil {
		if err := validateStock(*upd.Stock); err != nil {
			return nil, err
		}
	}
	if upd.DeliveryDays != nil {
		if err := validateDeliveryDays(*upd.DeliveryDays); err != nil {
			return nil, err
		}
	}

	if _, err := s.ownedPrice(ctx, callerID, priceID); err != nil {
		logger.Warn("price ownership check failed", slog.Any("error", err))
		return nil, wrapUnlessRejected(op, err)
	}

	updated, err := s.priceRepo.UpdatePrice(ctx, priceID, upd)
	if err != nil {
		if errors.Is(err, storage.ErrSupplierPriceNotFound) {
			return nil, ErrSupplierPriceNotFound
		}
		logger.Error("failed to update supplier price", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("supplier price updated")
	return updated, nil
}

// DeactivatePrice выключает предложение вместо удаления
func (s *priceService) DeactivatePrice(ctx context.Context, callerID, priceID uuid.UUID) (*models.SupplierPrice, error) {
	const op = "service.PriceService.DeactivatePrice"
	logger := s.log.With(slog.String("op", op), slog.String("priceID", priceID.String()))

	if _, err := s.ownedPrice(ctx, callerID, priceID); err != nil {
		logger.Warn("price ownership check failed", slog.Any("error", err))
		return nil, wrapUnlessRejected(op, err)
	}

	deactivated, err := s.priceRepo.DeactivatePrice(ctx, priceID)
	if err != nil {
		if errors.Is(err, storage.ErrSupplierPriceNotFound) {
			return nil, ErrSupplierPriceNotFound
		}
		logger.Error("failed to deactivate supplier price", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("supplier price deactivated")
	return deactivated, nil
}

func (s *priceService) ListSupplierPrices(ctx context.Context, callerID, supplierID uuid.UUID) ([]*models.SupplierPrice, error) {
	const op = "service.PriceService.ListSupplierPrices"
	logger := s.log.With(slog.String("op", op), slog.String("supplierID", supplierID.String()))

	supplier, err := s.ownSupplier(ctx, callerID)
	if err != nil {
		return nil, wrapUnlessRejected(op, err)
	}
	if supplier.ID != supplierID {
		logger.Warn("listing prices of another supplier", slog.String("callerID", callerID.String()))
		return nil, ErrForeignSupplierID
	}

	prices, err := s.priceRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		logger.Error("failed to list supplier prices", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prices, nil
}

// wrapUnlessRejected оставляет *Error как есть, сбои хранилища дополняет op
func wrapUnlessRejected(op string, err error) error {
	var rejected *Error
	if errors.As(err, &rejected) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
