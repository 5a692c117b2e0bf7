package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates how a sale was settled.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "Cash"
	PaymentMobileMoney PaymentMethod = "Mobile Money"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentMobileMoney
}

// Sale is an immutable record of a completed transaction together with its
// line items. TotalAmount equals the sum of item subtotals at creation time
// and is never mutated afterward; no amendment or void operation exists.
type Sale struct {
	BaseModel
	SaleNumber    string        `gorm:"type:varchar(30);uniqueIndex;not null" json:"sale_number"`
	TotalAmount   float64       `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	CashierID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Cashier       *User         `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem belongs to exactly one sale; it has no independent lifecycle.
// Subtotal is computed at creation, stored, and never recomputed.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  float64   `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// SaleItemInput is one requested line of a sale.
type SaleItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"gte=0"`
}

// CreateSaleRequest is the payload for recording a sale.
type CreateSaleRequest struct {
	PaymentMethod PaymentMethod   `json:"payment_method" validate:"required,oneof=Cash 'Mobile Money'"`
	Items         []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

// NewSale builds the aggregate, computing each subtotal and the total as
// the sum of subtotals. Rejects empty item lists, non-positive quantities,
// and negative prices before anything is assembled.
func NewSale(cashierID uuid.UUID, paymentMethod PaymentMethod, items []SaleItemInput) (*Sale, error) {
	if len(items) == 0 {
		return nil, NewValidationError("sale must have at least one item")
	}
	if !paymentMethod.Valid() {
		return nil, NewValidationError("unknown payment method '%s'", paymentMethod)
	}

	saleID := uuid.New()
	saleItems := make([]SaleItem, 0, len(items))
	var total float64
	for _, in := range items {
		if in.Quantity <= 0 {
			return nil, NewValidationError("quantity must be positive")
		}
		if in.UnitPrice < 0 {
			return nil, NewValidationError("unit price cannot be negative")
		}
		subtotal := float64(in.Quantity) * in.UnitPrice
		saleItems = append(saleItems, SaleItem{
			BaseModel: BaseModel{ID: uuid.New()},
			SaleID:    saleID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	return &Sale{
		BaseModel:     BaseModel{ID: saleID},
		SaleNumber:    generateSaleNumber(),
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		CashierID:     cashierID,
		Items:         saleItems,
	}, nil
}

// generateSaleNumber builds a human-readable, time-based number. Not
// guaranteed globally unique; collisions surface as a store-level
// uniqueness violation rather than being retried.
func generateSaleNumber() string {
	ms := time.Now().UnixMilli() % 1_000_000
	return fmt.Sprintf("SALE-%06d-%d", ms, rand.Intn(1000))
}
