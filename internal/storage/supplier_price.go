package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// SupplierPriceStorage описывает работу с прайс-листами поставщиков
type SupplierPriceStorage interface {
	CreatePrice(ctx context.Context, price *models.SupplierPrice) (*models.SupplierPrice, error)
	GetPriceByID(ctx context.Context, id uuid.UUID) (*models.SupplierPrice, error)
	// UpdatePrice применяет только заданные поля
	UpdatePrice(ctx context.Context, id uuid.UUID, upd models.SupplierPriceUpdate) (*models.SupplierPrice, error)
	// DeactivatePrice выключает предложение, строка не удаляется
	DeactivatePrice(ctx context.Context, id uuid.UUID) (*models.SupplierPrice, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierPrice, error)
	// GetActivePriceTx ищет активное предложение для пары товар+поставщик внутри транзакции
	GetActivePriceTx(ctx context.Context, tx *sql.Tx, productID, supplierID uuid.UUID) (*models.SupplierPrice, error)
}

type supplierPriceRepository struct {
	db *sql.DB
}

func NewSupplierPriceRepository(db *sql.DB) SupplierPriceStorage {
	return &supplierPriceRepository{db: db}
}

const priceColumns = "id, supplier_id, product_id, price, stock, delivery_days, is_active, created_at"

func scanPrice(row rowScanner) (*models.SupplierPrice, error) {
	p := &models.SupplierPrice{}
	if err := row.Scan(&p.ID, &p.SupplierID, &p.ProductID, &p.Price, &p.Stock, &p.DeliveryDays, &p.IsActive, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierPriceNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *supplierPriceRepository) CreatePrice(ctx context.Context, price *models.SupplierPrice) (*models.SupplierPrice, error) {
	query := `INSERT INTO supplier_prices (supplier_id, product_id, price, stock, delivery_days, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + priceColumns
	row := r.db.QueryRowContext(ctx, query,
		price.SupplierID, price.ProductID, price.Price, price.Stock, price.DeliveryDays, price.IsActive)
	created, err := scanPrice(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier price: %w", err)
	}
	return created, nil
}

func (r *supplierPriceRepository) GetPriceByID(ctx context.Context, id uuid.UUID) (*models.SupplierPrice, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+priceColumns+" FROM supplier_prices WHERE id = $1", id)
	return scanPrice(row)
}

func (r *supplierPriceRepository) UpdatePrice(ctx context.Context, id uuid.UUID, upd models.SupplierPriceUpdate) (*models.SupplierPrice, error) {
	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.Stock != nil {
		set("stock", *upd.Stock)
	}
	if upd.DeliveryDays != nil {
		set("delivery_days", *upd.DeliveryDays)
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE supplier_prices SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), priceColumns)
	return scanPrice(r.db.QueryRowContext(ctx, query, args...))
}

func (r *supplierPriceRepository) DeactivatePrice(ctx context.Context, id uuid.UUID) (*models.SupplierPrice, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE supplier_prices SET is_active = FALSE WHERE id = $1 RETURNING "+priceColumns, id)
	return scanPrice(row)
}

// ListBySupplier возвращает прайс поставщика с данными товара, новые сверху
func (r *supplierPriceRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierPrice, error) {
	query := `
		SELECT sp.id, sp.supplier_id, sp.product_id, sp.price, sp.stock, sp.delivery_days, sp.is_active, sp.created_at,
		       p.name, COALESCE(p.unit, ''), COALESCE(p.brand, '')
		FROM supplier_prices sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.supplier_id = $1
		ORDER BY sp.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier prices: %w", err)
	}
	defer rows.Close()

	prices := make([]*models.SupplierPrice, 0)
	for rows.Next() {
		p := &models.SupplierPrice{Product: &models.ProductRef{}}
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.ProductID, &p.Price, &p.Stock, &p.DeliveryDays, &p.IsActive, &p.CreatedAt,
			&p.Product.Name, &p.Product.Unit, &p.Product.Brand); err != nil {
			return nil, fmt.Errorf("failed to scan supplier price: %w", err)
		}
		p.Product.ID = p.ProductID
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// GetActivePriceTx: при нескольких активных строках на пару берём самую свежую
func (r *supplierPriceRepository) GetActivePriceTx(ctx context.Context, tx *sql.Tx, productID, supplierID uuid.UUID) (*models.SupplierPrice, error) {
	query := `SELECT ` + priceColumns + `
	          FROM supplier_prices
	          WHERE product_id = $1 AND supplier_id = $2 AND is_active = TRUE
	          ORDER BY created_at DESC
	          LIMIT 1`
	return scanPrice(tx.QueryRowContext(ctx, query, productID, supplierID))
}
