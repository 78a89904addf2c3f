package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrderStorage описывает методы для работы с заказами и черновиками (корзинами).
// Атомарность обеспечивает БД: частичный уникальный индекс orders_one_draft_per_clinic
// гарантирует не больше одного черновика на клинику.
type OrderStorage interface {
	// GetOrCreateDraft одним запросом возвращает черновик клиники, создавая его при отсутствии.
	GetOrCreateDraft(ctx context.Context, tx *sql.Tx, clinicUserID uuid.UUID) (*models.Order, error)
	// GetDraft возвращает черновик клиники или ErrOrderNotFound.
	GetDraft(ctx context.Context, clinicUserID uuid.UUID) (*models.Order, error)
	// LockDraftTx блокирует черновик клиники до конца транзакции.
	LockDraftTx(ctx context.Context, tx *sql.Tx, clinicUserID uuid.UUID) (*models.Order, error)
	// RecalculateTotal пересчитывает total_amount по всем строкам заказа.
	RecalculateTotal(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (decimal.Decimal, error)
	// MarkSubmitted переводит черновик в статус submitted.
	MarkSubmitted(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (*models.Order, error)
	// ListOrdersByClinic возвращает заказы клиники, новые сверху.
	ListOrdersByClinic(ctx context.Context, clinicUserID uuid.UUID) ([]*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "id, clinic_user_id, status, total_amount, created_at, submitted_at"

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	var submittedAt sql.NullTime
	if err := row.Scan(&o.ID, &o.ClinicUserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &submittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if submittedAt.Valid {
		o.SubmittedAt = &submittedAt.Time
	}
	return o, nil
}

// GetOrCreateDraft: DO UPDATE вместо DO NOTHING, чтобы RETURNING вернул уже существующую строку
func (r *orderRepository) GetOrCreateDraft(ctx context.Context, tx *sql.Tx, clinicUserID uuid.UUID) (*models.Order, error) {
	query := `
		INSERT INTO orders (clinic_user_id, status, total_amount)
		VALUES ($1, 'draft', 0)
		ON CONFLICT (clinic_user_id) WHERE status = 'draft'
		DO UPDATE SET clinic_user_id = EXCLUDED.clinic_user_id
		RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, query, clinicUserID))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create draft order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) GetDraft(ctx context.Context, clinicUserID uuid.UUID) (*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE clinic_user_id = $1 AND status = 'draft' LIMIT 1"
	return scanOrder(r.db.QueryRowContext(ctx, query, clinicUserID))
}

func (r *orderRepository) LockDraftTx(ctx context.Context, tx *sql.Tx, clinicUserID uuid.UUID) (*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE clinic_user_id = $1 AND status = 'draft' LIMIT 1 FOR UPDATE NOWAIT"
	order, err := scanOrder(tx.QueryRowContext(ctx, query, clinicUserID))
	if err != nil {
		if pgErrorCode(err) == pgLockNotAvailable {
			return nil, fmt.Errorf("%w: %v", ErrResourceLocked, err)
		}
		return nil, err
	}
	return order, nil
}

// RecalculateTotal: авторитетный пересчёт суммы одним UPDATE, без инкрементов на стороне приложения
func (r *orderRepository) RecalculateTotal(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE orders
		SET total_amount = COALESCE((SELECT SUM(quantity * unit_price) FROM order_items WHERE order_id = $1), 0)
		WHERE id = $1
		RETURNING total_amount`
	var total decimal.Decimal
	if err := tx.QueryRowContext(ctx, query, orderID).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrOrderNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to recalculate order total: %w", err)
	}
	return total, nil
}

// MarkSubmitted меняет статус только у черновика, повторная отправка даст ErrOrderNotFound
func (r *orderRepository) MarkSubmitted(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = 'submitted', submitted_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + orderColumns
	return scanOrder(tx.QueryRowContext(ctx, query, orderID))
}

func (r *orderRepository) ListOrdersByClinic(ctx context.Context, clinicUserID uuid.UUID) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE clinic_user_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, clinicUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
