package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// OrderItemStorage описывает методы для работы со строками заказа
type OrderItemStorage interface {
	// UpsertItem вставляет строку с зафиксированной ценой либо, если строка для
	// (order, product, supplier) уже есть, увеличивает её количество. Цена существующей
	// строки не меняется. Второй результат: true, если строка была создана.
	UpsertItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) (*models.OrderItem, bool, error)
	// ListItemsByOrder возвращает строки заказа с названиями товара и поставщика.
	ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	// CountItemsTx считает строки заказа внутри транзакции.
	CountItemsTx(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (int, error)
}

type orderItemRepository struct {
	db *sql.DB
}

func NewOrderItemRepository(db *sql.DB) OrderItemStorage {
	return &orderItemRepository{db: db}
}

// UpsertItem: xmax = 0 только у только что вставленной строки
func (r *orderItemRepository) UpsertItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) (*models.OrderItem, bool, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, supplier_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id, product_id, supplier_id)
		DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
		RETURNING id, order_id, product_id, supplier_id, quantity, unit_price, (xmax = 0) AS inserted`

	saved := &models.OrderItem{}
	var inserted bool
	err := tx.QueryRowContext(ctx, query, item.OrderID, item.ProductID, item.SupplierID, item.Quantity, item.UnitPrice).
		Scan(&saved.ID, &saved.OrderID, &saved.ProductID, &saved.SupplierID, &saved.Quantity, &saved.UnitPrice, &inserted)
	if err != nil {
		if pgErrorCode(err) == pgOutOfRange {
			return nil, false, fmt.Errorf("%w: %v", ErrValueOutOfRange, err)
		}
		return nil, false, fmt.Errorf("failed to upsert order item: %w", err)
	}
	return saved, inserted, nil
}

func (r *orderItemRepository) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.supplier_id, oi.quantity, oi.unit_price,
		       COALESCE(p.name, ''), COALESCE(s.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		LEFT JOIN suppliers s ON s.id = oi.supplier_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.OrderItem, 0)
	for rows.Next() {
		item := &models.OrderItem{Product: &models.ProductRef{}, Supplier: &models.SupplierRef{}}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SupplierID, &item.Quantity, &item.UnitPrice,
			&item.Product.Name, &item.Supplier.Name); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Product.ID = item.ProductID
		item.Supplier.ID = item.SupplierID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepository) CountItemsTx(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM order_items WHERE order_id = $1", orderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count order items: %w", err)
	}
	return count, nil
}
