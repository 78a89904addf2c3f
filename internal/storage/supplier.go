package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// SupplierStorage: поиск поставщика, принадлежащего пользователю
type SupplierStorage interface {
	GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error)
}

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) SupplierStorage {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	row := r.db.QueryRowContext(ctx, "SELECT id, user_id, name FROM suppliers WHERE user_id = $1", userID)
	if err := row.Scan(&supplier.ID, &supplier.UserID, &supplier.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}
