package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/storage"
	"github.com/shopspring/decimal"
)

// Сообщения ответа на добавление в корзину
const (
	MessageAddedToCart     = "added_to_cart"
	MessageCartItemUpdated = "cart_item_updated"
	MessageOrderCreated    = "order_created"
)

// CartService: корзина (черновик заказа) и оформление заказа.
// Состояния для клиники: нет черновика -> draft -> submitted.
type CartService interface {
	AddToCart(ctx context.Context, in AddToCartInput) (*AddToCartResult, error)
	GetCart(ctx context.Context, clinicUserID uuid.UUID) (*Cart, error)
	// CreateOrder: единственный переход draft -> submitted, требует непустой черновик.
	CreateOrder(ctx context.Context, clinicUserID uuid.UUID) (*OrderResult, error)
	ListOrders(ctx context.Context, clinicUserID uuid.UUID) ([]*models.Order, error)
}

type AddToCartInput struct {
	ClinicUserID uuid.UUID
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	Quantity     int
}

type AddToCartResult struct {
	Message     string            `json:"message"`
	OrderID     uuid.UUID         `json:"order_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Item        *models.OrderItem `json:"item"`
}

// Cart: содержимое черновика; без черновика OrderID пустой, а Items, пустой список
type Cart struct {
	OrderID     *uuid.UUID          `json:"order_id,omitempty"`
	Items       []*models.OrderItem `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

type OrderResult struct {
	Message     string          `json:"message"`
	OrderID     uuid.UUID       `json:"order_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemsCount  int             `json:"items_count"`
}

type cartService struct {
	log       *slog.Logger
	db        *sql.DB
	orderRepo storage.OrderStorage
	itemRepo  storage.OrderItemStorage
	priceRepo storage.SupplierPriceStorage
}

func NewCartService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, itemRepo storage.OrderItemStorage, priceRepo storage.SupplierPriceStorage) CartService {
	return &cartService{
		log:       log,
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		priceRepo: priceRepo,
	}
}

func rollback(tx *sql.Tx, logger *slog.Logger) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}

// AddToCart добавляет товар поставщика в черновик клиники.
// Всё выполняется в одной транзакции: при отказе (нет цены, нет остатка)
// только что созданный черновик откатывается вместе с остальным.
func (s *cartService) AddToCart(ctx context.Context, in AddToCartInput) (*AddToCartResult, error) {
	const op = "service.CartService.AddToCart"
	logger := s.log.With(
		slog.String("op", op),
		slog.String("clinicUserID", in.ClinicUserID.String()),
		slog.String("productID", in.ProductID.String()),
		slog.String("supplierID", in.SupplierID.String()),
		slog.Int("quantity", in.Quantity),
	)

	if in.Quantity <= 0 {
		return nil, invalidInput("quantity must be greater than 0")
	}
	if in.Quantity > math.MaxInt32 {
		return nil, ErrQuantityTooLarge
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err := s.orderRepo.GetOrCreateDraft(ctx, tx, in.ClinicUserID)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to get draft order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	price, err := s.priceRepo.GetActivePriceTx(ctx, tx, in.ProductID, in.SupplierID)
	if err != nil {
		rollback(tx, logger)
		if errors.Is(err, storage.ErrSupplierPriceNotFound) {
			logger.Warn("active supplier price not found")
			return nil, ErrActivePriceNotFound
		}
		logger.Error("failed to get supplier price", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get supplier price: %w", op, err)
	}

	if price.Stock <= 0 {
		rollback(tx, logger)
		logger.Warn("out of stock", slog.Int("stock", price.Stock))
		return nil, ErrOutOfStock
	}

	// Цена фиксируется только при вставке; у существующей строки растёт лишь количество
	item, inserted, err := s.itemRepo.UpsertItem(ctx, tx, &models.OrderItem{
		OrderID:    order.ID,
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		Quantity:   in.Quantity,
		UnitPrice:  price.Price,
	})
	if err != nil {
		rollback(tx, logger)
		if errors.Is(err, storage.ErrValueOutOfRange) {
			logger.Warn("cart item quantity overflow")
			return nil, ErrQuantityTooLarge
		}
		logger.Error("failed to save cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total, err := s.orderRepo.RecalculateTotal(ctx, tx, order.ID)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to recalculate order total", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	message := MessageCartItemUpdated
	if inserted {
		message = MessageAddedToCart
	}
	logger.Info("cart updated", slog.String("orderID", order.ID.String()), slog.String("total", total.String()))
	return &AddToCartResult{
		Message:     message,
		OrderID:     order.ID,
		TotalAmount: total,
		Item:        item,
	}, nil
}

// GetCart возвращает строки черновика; если черновика нет: пустую корзину с нулевой суммой
func (s *cartService) GetCart(ctx context.Context, clinicUserID uuid.UUID) (*Cart, error) {
	const op = "service.CartService.GetCart"
	logger := s.log.With(slog.String("op", op), slog.String("clinicUserID", clinicUserID.String()))

	order, err := s.orderRepo.GetDraft(ctx, clinicUserID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return &Cart{Items: []*models.OrderItem{}, TotalAmount: decimal.Zero}, nil
		}
		logger.Error("failed to get draft order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.itemRepo.ListItemsByOrder(ctx, order.ID)
	if err != nil {
		logger.Error("failed to list cart items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Cart{OrderID: &order.ID, Items: items, TotalAmount: order.TotalAmount}, nil
}

// CreateOrder финально пересчитывает сумму и переводит черновик в submitted
func (s *cartService) CreateOrder(ctx context.Context, clinicUserID uuid.UUID) (*OrderResult, error) {
	const op = "service.CartService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("clinicUserID", clinicUserID.String()))
	logger.Info("submitting draft order")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err := s.orderRepo.LockDraftTx(ctx, tx, clinicUserID)
	if err != nil {
		rollback(tx, logger)
		if errors.Is(err, storage.ErrOrderNotFound) {
			logger.Warn("draft order not found")
			return nil, ErrDraftNotFound
		}
		if errors.Is(err, storage.ErrResourceLocked) {
			logger.Warn("draft order is locked by another request")
			return nil, ErrCartBusy
		}
		logger.Error("failed to lock draft order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.itemRepo.CountItemsTx(ctx, tx, order.ID)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to count order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		rollback(tx, logger)
		logger.Warn("draft order is empty", slog.String("orderID", order.ID.String()))
		return nil, ErrEmptyCart
	}

	total, err := s.orderRepo.RecalculateTotal(ctx, tx, order.ID)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to recalculate order total", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	submitted, err := s.orderRepo.MarkSubmitted(ctx, tx, order.ID)
	if err != nil {
		rollback(tx, logger)
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, ErrDraftNotFound
		}
		logger.Error("failed to submit order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to submit order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order submitted", slog.String("orderID", submitted.ID.String()), slog.Int("items", count))
	return &OrderResult{
		Message:     MessageOrderCreated,
		OrderID:     submitted.ID,
		Status:      submitted.Status,
		TotalAmount: total,
		ItemsCount:  count,
	}, nil
}

func (s *cartService) ListOrders(ctx context.Context, clinicUserID uuid.UUID) ([]*models.Order, error) {
	const op = "service.CartService.ListOrders"
	orders, err := s.orderRepo.ListOrdersByClinic(ctx, clinicUserID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
