package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrSupplierPriceNotFound = errors.New("supplier price not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyUpdate           = errors.New("nothing to update")
	ErrResourceLocked        = errors.New("resource is locked, please try again")
	ErrValueOutOfRange       = errors.New("value out of range")
)

// коды ошибок postgres, которые мы различаем
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
	pgOutOfRange       = "22003"
)

func pgErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// rowScanner: общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
