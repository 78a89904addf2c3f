package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ProfileStorage: чтение профилей, которые создаёт триггер платформы
type ProfileStorage interface {
	GetRoleByUserID(ctx context.Context, userID uuid.UUID) (string, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileStorage {
	return &profileRepository{db: db}
}

// GetRoleByUserID возвращает роль из profiles; пустая роль тоже считается отсутствующей
func (r *profileRepository) GetRoleByUserID(ctx context.Context, userID uuid.UUID) (string, error) {
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT role FROM profiles WHERE user_id = $1", userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	if !role.Valid || role.String == "" {
		return "", ErrProfileNotFound
	}
	return role.String, nil
}
