package model

// Unit is the unit of measure a product is sold in.
type Unit string

const (
	UnitPcs   Unit = "pcs"
	UnitBag   Unit = "bag"
	UnitLiter Unit = "liter"
	UnitKg    Unit = "kg"
	UnitBox   Unit = "box"
	UnitRoll  Unit = "roll"
	UnitMeter Unit = "meter"
)

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	switch u {
	case UnitPcs, UnitBag, UnitLiter, UnitKg, UnitBox, UnitRoll, UnitMeter:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	SKU          string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Category     string  `gorm:"type:varchar(100)" json:"category"`
	Supplier     *string `gorm:"type:varchar(255)" json:"supplier,omitempty"`
	Unit         Unit    `gorm:"type:varchar(20);not null" json:"unit"`
	CostPrice    float64 `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	SellingPrice float64 `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`

	// Inventory row created alongside the product, 1:1
	Inventory *Inventory `json:"inventory,omitempty"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU          string  `json:"sku" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category"`
	Supplier     *string `json:"supplier"`
	Unit         Unit    `json:"unit" validate:"required"`
	CostPrice    float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	Description  *string `json:"description"`
}

// UpdateProductRequest carries a partial update; only non-nil fields change.
type UpdateProductRequest struct {
	SKU          *string  `json:"sku"`
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Supplier     *string  `json:"supplier"`
	Unit         *Unit    `json:"unit"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	Description  *string  `json:"description"`
}

// NewProduct validates required fields and price invariants before
// returning a Product. Invariants are enforced here, not by field mutation.
func NewProduct(req CreateProductRequest) (*Product, error) {
	if req.SKU == "" {
		return nil, NewValidationError("SKU is required")
	}
	if req.Name == "" {
		return nil, NewValidationError("product name is required")
	}
	if !req.Unit.Valid() {
		return nil, NewValidationError("unknown unit '%s'", req.Unit)
	}
	if req.CostPrice < 0 {
		return nil, NewValidationError("cost price cannot be negative")
	}
	if req.SellingPrice < 0 {
		return nil, NewValidationError("selling price cannot be negative")
	}

	return &Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Supplier:     req.Supplier,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Description:  req.Description,
	}, nil
}

// ApplyUpdate mutates only the fields present in the request, validating
// each before anything changes. State is untouched on failure.
func (p *Product) ApplyUpdate(req UpdateProductRequest) error {
	if req.SKU != nil && *req.SKU == "" {
		return NewValidationError("SKU cannot be empty")
	}
	if req.Name != nil && *req.Name == "" {
		return NewValidationError("product name cannot be empty")
	}
	if req.Unit != nil && !req.Unit.Valid() {
		return NewValidationError("unknown unit '%s'", *req.Unit)
	}
	if req.CostPrice != nil && *req.CostPrice < 0 {
		return NewValidationError("cost price cannot be negative")
	}
	if req.SellingPrice != nil && *req.SellingPrice < 0 {
		return NewValidationError("selling price cannot be negative")
	}

	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Supplier != nil {
		p.Supplier = req.Supplier
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	return nil
}
