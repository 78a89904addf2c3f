package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Статусы заказа: черновик (корзина) и отправленный заказ
const (
	OrderStatusDraft     = "draft"
	OrderStatusSubmitted = "submitted"
)

// Order: заказ клиники; у клиники может быть не больше одного черновика
type Order struct {
	ID           uuid.UUID       `json:"id"`
	ClinicUserID uuid.UUID       `json:"clinic_user_id"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	SubmittedAt  *time.Time      `json:"submitted_at,omitempty"`
}

// OrderItem: строка заказа; UnitPrice фиксируется в момент добавления в корзину
type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Product    *ProductRef     `json:"product,omitempty"`
	Supplier   *SupplierRef    `json:"supplier,omitempty"`
}

// LineTotal возвращает quantity * unit_price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalOf суммирует строки заказа
func TotalOf(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
