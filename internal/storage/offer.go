package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// OfferStorage: выборка предложений по товару для клиник
type OfferStorage interface {
	// ListOffers возвращает активные предложения с остатком > 0,
	// сначала дешёвые, при равной цене: с меньшим сроком поставки. limit <= 0, без ограничения.
	ListOffers(ctx context.Context, productID uuid.UUID, limit int) ([]*models.Offer, error)
}

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) OfferStorage {
	return &offerRepository{db: db}
}

func (r *offerRepository) ListOffers(ctx context.Context, productID uuid.UUID, limit int) ([]*models.Offer, error) {
	query := `
		SELECT sp.id, sp.supplier_id, sp.price, sp.stock, sp.delivery_days, COALESCE(s.name, '')
		FROM supplier_prices sp
		LEFT JOIN suppliers s ON s.id = sp.supplier_id
		WHERE sp.product_id = $1 AND sp.is_active = TRUE AND sp.stock > 0
		ORDER BY sp.price ASC, sp.delivery_days ASC`
	args := []any{productID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]*models.Offer, 0)
	for rows.Next() {
		o := &models.Offer{}
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Price, &o.Stock, &o.DeliveryDays, &o.Supplier.Name); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.Supplier.ID = o.SupplierID
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offers, nil
}
