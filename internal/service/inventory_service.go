package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	GetAllInventory() ([]model.Inventory, error)
	GetLowStockInventory() ([]model.Inventory, error)
	GetInventoryByProduct(productID uuid.UUID) (*model.Inventory, error)
	AdjustStock(req *model.AdjustStockRequest) (*model.Inventory, error)
	UpdateReorderThreshold(req *model.UpdateThresholdRequest) (*model.Inventory, error)
	AdjustOpeningStock(req *model.AdjustOpeningStockRequest) (*model.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	notifications NotificationService
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	notifications NotificationService,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		notifications: notifications,
		db:            db,
		wsHub:         hub,
	}
}

func (s *inventoryService) GetAllInventory() ([]model.Inventory, error) {
	rows, err := s.inventoryRepo.FindAll()
	if err != nil {
		return nil, model.NewPersistenceError("inventory.findAll", err)
	}
	return rows, nil
}

func (s *inventoryService) GetLowStockInventory() ([]model.Inventory, error) {
	rows, err := s.inventoryRepo.FindLowStock()
	if err != nil {
		return nil, model.NewPersistenceError("inventory.findLowStock", err)
	}
	return rows, nil
}

func (s *inventoryService) GetInventoryByProduct(productID uuid.UUID) (*model.Inventory, error) {
	inv, err := s.inventoryRepo.FindByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("inventory for product", productID.String())
		}
		return nil, model.NewPersistenceError("inventory.findByProduct", err)
	}
	return inv, nil
}

// AdjustStock records a manual stock movement inside a transaction with a
// row lock, so it cannot race a concurrent sale on the same product.
func (s *inventoryService) AdjustStock(req *model.AdjustStockRequest) (*model.Inventory, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	var updated *model.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventoryRepo.FindByProductIDForUpdate(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.NewNotFoundError("inventory for product", req.ProductID.String())
			}
			return model.NewPersistenceError("inventory.lock", err)
		}

		if req.Type == "in" {
			err = inv.AddStock(req.Quantity)
		} else {
			err = inv.RemoveStock(req.Quantity)
		}
		if err != nil {
			return err
		}

		if err := s.inventoryRepo.Update(tx, inv); err != nil {
			return model.NewPersistenceError("inventory.update", err)
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.IsLowStock() {
		s.notifications.NotifyLowStock(updated)
	}
	s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"product_id":    updated.ProductID,
		"current_stock": updated.CurrentStock,
		"movement":      req.Type,
		"quantity":      req.Quantity,
	})

	return updated, nil
}

func (s *inventoryService) UpdateReorderThreshold(req *model.UpdateThresholdRequest) (*model.Inventory, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	inv, err := s.GetInventoryByProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := inv.SetReorderThreshold(req.Threshold); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.Update(nil, inv); err != nil {
		return nil, model.NewPersistenceError("inventory.update", err)
	}
	return inv, nil
}

// AdjustOpeningStock replaces the opening count and recomputes current
// stock from the ledger formula. Current stock can move without a physical
// movement when opening stock changes after movements have accumulated.
func (s *inventoryService) AdjustOpeningStock(req *model.AdjustOpeningStockRequest) (*model.Inventory, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	var updated *model.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventoryRepo.FindByProductIDForUpdate(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.NewNotFoundError("inventory for product", req.ProductID.String())
			}
			return model.NewPersistenceError("inventory.lock", err)
		}
		if err := inv.AdjustOpeningStock(req.OpeningStock); err != nil {
			return err
		}
		if err := s.inventoryRepo.Update(tx, inv); err != nil {
			return model.NewPersistenceError("inventory.update", err)
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.IsLowStock() {
		s.notifications.NotifyLowStock(updated)
	}
	return updated, nil
}
