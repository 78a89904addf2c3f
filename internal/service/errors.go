package service

import "errors"

// Классы ошибок, по которым транспортный слой выбирает HTTP-статус.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBusinessRule = errors.New("business rule violation")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error: отказ в запросе с понятной клиенту причиной.
// Всё, что не является *Error, считается сбоем хранилища и уходит клиенту как 500.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Kind }

func invalidInput(reason string) error {
	return &Error{Kind: ErrInvalidInput, Reason: reason}
}

var (
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Reason: "login failed: invalid email or password"}
	ErrUserExists         = &Error{Kind: ErrInvalidInput, Reason: "registration failed: email is already registered"}
	ErrRoleNotFound       = &Error{Kind: ErrNotFound, Reason: "role not found in profiles for this user"}

	ErrDraftNotFound         = &Error{Kind: ErrNotFound, Reason: "draft cart not found, add products with /cart/add first"}
	ErrActivePriceNotFound   = &Error{Kind: ErrNotFound, Reason: "no active supplier price for this product and supplier"}
	ErrOutOfStock            = &Error{Kind: ErrBusinessRule, Reason: "out of stock (stock <= 0)"}
	ErrQuantityTooLarge      = &Error{Kind: ErrInvalidInput, Reason: "quantity is too large"}
	ErrEmptyCart             = &Error{Kind: ErrBusinessRule, Reason: "cart is empty, order cannot be created"}
	ErrSupplierPriceNotFound = &Error{Kind: ErrNotFound, Reason: "supplier price not found"}
	ErrNothingToUpdate       = &Error{Kind: ErrInvalidInput, Reason: "no fields to update"}
	ErrCartBusy              = &Error{Kind: ErrConflict, Reason: "cart is being updated by another request, please try again"}

	ErrNotSupplier       = &Error{Kind: ErrForbidden, Reason: "authenticated user has no supplier record"}
	ErrForeignSupplierID = &Error{Kind: ErrForbidden, Reason: "supplier_id does not belong to the authenticated user"}
)
