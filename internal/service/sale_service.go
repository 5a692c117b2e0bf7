package service

import (
	"errors"
	"fmt"
	"sort"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(cashierID uuid.UUID, req *model.CreateSaleRequest) (*model.Sale, error)
	GetSalesHistory(filter repository.SaleFilter) ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
	notifications NotificationService
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	inventoryRepo repository.InventoryRepository,
	notifications NotificationService,
	db *gorm.DB,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		notifications: notifications,
		db:            db,
		wsHub:         hub,
	}
}

// CreateSale runs the whole sale workflow in one database transaction:
// availability check, sale + items write, and inventory decrement. The
// inventory rows are locked FOR UPDATE in product-id order, so two
// concurrent sales against the same product serialize and stock can never
// be oversold. Low-stock notifications fire after commit and never fail
// the sale.
func (s *saleService) CreateSale(cashierID uuid.UUID, req *model.CreateSaleRequest) (*model.Sale, error) {
	// 1. Validate input
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	// 2. Build the aggregate; subtotals and total are fixed here
	sale, err := model.NewSale(cashierID, req.PaymentMethod, req.Items)
	if err != nil {
		return nil, err
	}

	var lowStock []*model.Inventory

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 3. Lock every inventory row up front, in product-id order so
		// concurrent multi-line sales cannot deadlock
		ids := make([]uuid.UUID, 0, len(sale.Items))
		seen := make(map[uuid.UUID]bool, len(sale.Items))
		for _, item := range sale.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })

		locked := make(map[uuid.UUID]*model.Inventory, len(ids))
		for _, productID := range ids {
			inv, err := s.inventoryRepo.FindByProductIDForUpdate(tx, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NewNotFoundError("inventory for product", productID.String())
				}
				return model.NewPersistenceError("sale.lockInventory", err)
			}
			locked[productID] = inv
		}

		// 4. Availability check for every line before any mutation
		for _, item := range sale.Items {
			inv := locked[item.ProductID]
			if item.Quantity > inv.CurrentStock {
				return &model.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: inv.CurrentStock,
				}
			}
		}

		// 5. Persist the sale and all items as one unit
		if err := s.saleRepo.Save(tx, sale); err != nil {
			return model.NewPersistenceError("sale.save", err)
		}

		// 6. Decrement stock per line; the entity re-validates and a
		// failure here rolls the sale back with it
		for _, item := range sale.Items {
			inv := locked[item.ProductID]
			if err := inv.RemoveStock(item.Quantity); err != nil {
				return err
			}
		}
		for _, inv := range locked {
			if err := s.inventoryRepo.Update(tx, inv); err != nil {
				return model.NewPersistenceError("sale.updateInventory", err)
			}
			if inv.IsLowStock() {
				lowStock = append(lowStock, inv)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Side effects after commit: low-stock alerts and dashboard events
	for _, inv := range lowStock {
		s.notifications.NotifyLowStock(inv)
	}
	s.wsHub.BroadcastEvent("sale_created", map[string]interface{}{
		"sale_id":      sale.ID,
		"sale_number":  sale.SaleNumber,
		"total_amount": sale.TotalAmount,
		"cashier_id":   cashierID,
		"message":      fmt.Sprintf("Sale %s recorded for %.2f", sale.SaleNumber, sale.TotalAmount),
	})

	return sale, nil
}

func (s *saleService) GetSalesHistory(filter repository.SaleFilter) ([]model.Sale, error) {
	sales, err := s.saleRepo.FindAll(filter)
	if err != nil {
		return nil, model.NewPersistenceError("sale.findAll", err)
	}
	return sales, nil
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("sale", id.String())
		}
		return nil, model.NewPersistenceError("sale.findByID", err)
	}
	return sale, nil
}
