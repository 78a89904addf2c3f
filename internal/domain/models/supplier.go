package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier: поставщик, строку создаёт триггер при регистрации с ролью supplier
type Supplier struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
}

// SupplierRef: краткое представление поставщика
type SupplierRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SupplierPrice: предложение поставщика по конкретному товару
type SupplierPrice struct {
	ID           uuid.UUID       `json:"id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	DeliveryDays int             `json:"delivery_days"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	Product      *ProductRef     `json:"product,omitempty"` // заполняется через JOIN в списке поставщика
}

// SupplierPriceUpdate: частичное обновление, nil-поля не меняются
type SupplierPriceUpdate struct {
	Price        *decimal.Decimal
	Stock        *int
	DeliveryDays *int
	IsActive     *bool
}

// IsEmpty сообщает, что в обновлении нет ни одного поля
func (u SupplierPriceUpdate) IsEmpty() bool {
	return u.Price == nil && u.Stock == nil && u.DeliveryDays == nil && u.IsActive == nil
}

// Offer: активное предложение с остатком > 0, как его видит клиника
type Offer struct {
	ID           uuid.UUID       `json:"id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	DeliveryDays int             `json:"delivery_days"`
	Supplier     SupplierRef     `json:"supplier"`
}
