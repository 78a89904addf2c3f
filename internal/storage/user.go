package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// UserStorage: хранилище учётных записей подсистемы аутентификации
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

// userMetadata: метаданные, которые читает триггер handle_new_auth_user
type userMetadata struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// CreateUser создаёт учётную запись. Профиль (и поставщика) создаёт триггер в БД,
// поэтому роль передаётся только в метаданных.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	meta, err := json.Marshal(userMetadata{Role: user.Role, Name: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to encode user metadata: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRowContext(ctx,
		"INSERT INTO auth_users (email, pass_hash, raw_user_meta_data) VALUES ($1, $2, $3) RETURNING id, created_at",
		user.Email, user.PassHash, string(meta),
	).Scan(&id, &user.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetUserByEmail ищет учётную запись по email (email хранится в нижнем регистре)
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, email, pass_hash, COALESCE(raw_user_meta_data->>'role', ''), created_at FROM auth_users WHERE email = $1", email)
	if err := row.Scan(&user.ID, &user.Email, &user.PassHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
