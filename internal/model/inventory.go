package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultReorderThreshold applies to inventory rows created automatically
// alongside a new product.
const DefaultReorderThreshold = 10

// Inventory is the per-product stock ledger. One row per product.
// Invariant: CurrentStock == OpeningStock + StockIn - StockOut after every
// mutation, and CurrentStock never goes below zero.
type Inventory struct {
	BaseModel
	ProductID        uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	Product          *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	OpeningStock     int        `gorm:"not null;default:0" json:"opening_stock"`
	StockIn          int        `gorm:"not null;default:0" json:"stock_in"`
	StockOut         int        `gorm:"not null;default:0" json:"stock_out"`
	CurrentStock     int        `gorm:"not null;default:0" json:"current_stock"`
	ReorderThreshold int        `gorm:"not null;default:10" json:"reorder_threshold"`
	LastRestocked    *time.Time `json:"last_restocked,omitempty"`
}

// NewInventory builds the ledger for a product, starting at the opening
// stock. Current stock equals opening stock until movements accumulate.
func NewInventory(productID uuid.UUID, openingStock, reorderThreshold int) (*Inventory, error) {
	if openingStock < 0 {
		return nil, NewValidationError("opening stock cannot be negative")
	}
	if reorderThreshold < 0 {
		return nil, NewValidationError("reorder threshold cannot be negative")
	}

	inv := &Inventory{
		ProductID:        productID,
		OpeningStock:     openingStock,
		CurrentStock:     openingStock,
		ReorderThreshold: reorderThreshold,
	}
	if openingStock > 0 {
		now := time.Now()
		inv.LastRestocked = &now
	}
	return inv, nil
}

// AddStock records a stock-in movement and bumps the restock timestamp.
func (i *Inventory) AddStock(qty int) error {
	if qty <= 0 {
		return NewValidationError("quantity must be positive")
	}
	i.StockIn += qty
	i.CurrentStock += qty
	now := time.Now()
	i.LastRestocked = &now
	return nil
}

// RemoveStock records a stock-out movement. Fails without touching state
// when the requested quantity exceeds what is on hand.
func (i *Inventory) RemoveStock(qty int) error {
	if qty <= 0 {
		return NewValidationError("quantity must be positive")
	}
	if qty > i.CurrentStock {
		return &InsufficientStockError{
			ProductID: i.ProductID,
			Requested: qty,
			Available: i.CurrentStock,
		}
	}
	i.StockOut += qty
	i.CurrentStock -= qty
	return nil
}

// AdjustOpeningStock replaces the opening count and recomputes current
// stock from the ledger formula. Note this moves CurrentStock by the delta
// of the opening counts without any physical stock movement.
func (i *Inventory) AdjustOpeningStock(newOpening int) error {
	if newOpening < 0 {
		return NewValidationError("opening stock cannot be negative")
	}
	i.OpeningStock = newOpening
	i.CurrentStock = i.OpeningStock + i.StockIn - i.StockOut
	return nil
}

// SetReorderThreshold updates the low-stock trigger level.
func (i *Inventory) SetReorderThreshold(threshold int) error {
	if threshold < 0 {
		return NewValidationError("reorder threshold cannot be negative")
	}
	i.ReorderThreshold = threshold
	return nil
}

// IsLowStock reports whether current stock sits at or below the threshold.
func (i *Inventory) IsLowStock() bool {
	return i.CurrentStock <= i.ReorderThreshold
}

// AdjustStockRequest is the payload for manual stock movements.
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Type      string    `json:"type" validate:"required,oneof=in out"`
}

// UpdateThresholdRequest is the payload for changing the reorder threshold.
type UpdateThresholdRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Threshold int       `json:"threshold" validate:"gte=0"`
}

// AdjustOpeningStockRequest is the payload for replacing the opening count.
type AdjustOpeningStockRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"uuid_required"`
	OpeningStock int       `json:"opening_stock" validate:"gte=0"`
}
