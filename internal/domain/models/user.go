package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей маркетплейса
const (
	RoleClinic   = "clinic"
	RoleSupplier = "supplier"
)

// IsValidRole проверяет, что роль входит в закрытый набор {clinic, supplier}
func IsValidRole(role string) bool {
	return role == RoleClinic || role == RoleSupplier
}

// User представляет учётную запись в подсистеме аутентификации (таблица auth_users)
type User struct {
	ID        uuid.UUID
	Email     string
	PassHash  []byte
	Role      string // попадает в метаданные пользователя, профиль создаёт триггер
	CreatedAt time.Time
}

// Profile связывает пользователя с ролью, строку создаёт триггер платформы
type Profile struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
