package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(tx *gorm.DB, inv *model.Inventory) error
	FindAll() ([]model.Inventory, error)
	FindLowStock() ([]model.Inventory, error)
	FindByProductID(productID uuid.UUID) (*model.Inventory, error)
	// FindByProductIDForUpdate row-locks the inventory inside tx.
	FindByProductIDForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error)
	Update(tx *gorm.DB, inv *model.Inventory) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(tx *gorm.DB, inv *model.Inventory) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(inv).Error
}

func (r *inventoryRepo) FindAll() ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Preload("Product").Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) FindLowStock() ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Preload("Product").
		Where("current_stock <= reorder_threshold").
		Order("current_stock ASC").
		Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) FindByProductID(productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.First(&inv, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByProductIDForUpdate takes a pessimistic row lock so concurrent sale
// workflows serialize on the same product.
func (r *inventoryRepo) FindByProductIDForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update accepts a *gorm.DB so it can run inside the caller's transaction.
func (r *inventoryRepo) Update(tx *gorm.DB, inv *model.Inventory) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(inv).Error
}
