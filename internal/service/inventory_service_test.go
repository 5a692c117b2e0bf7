package service

import (
	"errors"
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newInventoryServiceForTest(t *testing.T) (InventoryService, *gorm.DB) {
	db := getTestDB(t)
	hub := testHub()
	notifications := NewNotificationService(repository.NewNotificationRepo(db), hub)
	svc := NewInventoryService(repository.NewInventoryRepo(db), notifications, db, hub)
	return svc, db
}

func TestAdjustStockInAndOut(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 2)

	inv, err := svc.AdjustStock(&model.AdjustStockRequest{
		ProductID: product.ID,
		Quantity:  5,
		Type:      "in",
	})
	if err != nil {
		t.Fatalf("AdjustStock in failed: %v", err)
	}
	if inv.CurrentStock != 15 || inv.StockIn != 5 {
		t.Errorf("unexpected inventory after stock-in: %+v", inv)
	}
	if inv.LastRestocked == nil {
		t.Error("stock-in must set last restocked")
	}

	inv, err = svc.AdjustStock(&model.AdjustStockRequest{
		ProductID: product.ID,
		Quantity:  8,
		Type:      "out",
	})
	if err != nil {
		t.Fatalf("AdjustStock out failed: %v", err)
	}
	if inv.CurrentStock != 7 || inv.StockOut != 8 {
		t.Errorf("unexpected inventory after stock-out: %+v", inv)
	}
}

func TestAdjustStockValidation(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 2)

	cases := []model.AdjustStockRequest{
		{ProductID: product.ID, Quantity: 0, Type: "in"},
		{ProductID: product.ID, Quantity: -4, Type: "out"},
		{ProductID: product.ID, Quantity: 3, Type: "sideways"},
		{ProductID: uuid.Nil, Quantity: 3, Type: "in"},
	}
	for _, req := range cases {
		if _, err := svc.AdjustStock(&req); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestAdjustStockInsufficient(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	product := seedProductWithStock(t, db, 3, 1)

	_, err := svc.AdjustStock(&model.AdjustStockRequest{
		ProductID: product.ID,
		Quantity:  4,
		Type:      "out",
	})
	var stockErr *model.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	inv, _ := svc.GetInventoryByProduct(product.ID)
	if inv.CurrentStock != 3 {
		t.Errorf("inventory must be unchanged, got %d", inv.CurrentStock)
	}
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	svc, _ := newInventoryServiceForTest(t)

	_, err := svc.AdjustStock(&model.AdjustStockRequest{
		ProductID: uuid.New(),
		Quantity:  1,
		Type:      "in",
	})
	var notFoundErr *model.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateReorderThreshold(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 2)

	inv, err := svc.UpdateReorderThreshold(&model.UpdateThresholdRequest{
		ProductID: product.ID,
		Threshold: 7,
	})
	if err != nil {
		t.Fatalf("UpdateReorderThreshold failed: %v", err)
	}
	if inv.ReorderThreshold != 7 {
		t.Errorf("expected threshold 7, got %d", inv.ReorderThreshold)
	}

	_, err = svc.UpdateReorderThreshold(&model.UpdateThresholdRequest{
		ProductID: product.ID,
		Threshold: -1,
	})
	if err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestAdjustOpeningStockRecomputesCurrent(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 0)

	// accumulate some movement first
	if _, err := svc.AdjustStock(&model.AdjustStockRequest{ProductID: product.ID, Quantity: 5, Type: "in"}); err != nil {
		t.Fatalf("stock-in failed: %v", err)
	}
	if _, err := svc.AdjustStock(&model.AdjustStockRequest{ProductID: product.ID, Quantity: 3, Type: "out"}); err != nil {
		t.Fatalf("stock-out failed: %v", err)
	}

	inv, err := svc.AdjustOpeningStock(&model.AdjustOpeningStockRequest{
		ProductID:    product.ID,
		OpeningStock: 20,
	})
	if err != nil {
		t.Fatalf("AdjustOpeningStock failed: %v", err)
	}
	// current = 20 + 5 - 3
	if inv.CurrentStock != 22 {
		t.Errorf("expected current stock 22, got %d", inv.CurrentStock)
	}
}

func TestLowStockListing(t *testing.T) {
	svc, db := newInventoryServiceForTest(t)
	low := seedProductWithStock(t, db, 2, 5)
	seedProductWithStock(t, db, 50, 5)

	rows, err := svc.GetLowStockInventory()
	if err != nil {
		t.Fatalf("GetLowStockInventory failed: %v", err)
	}

	found := false
	for _, inv := range rows {
		if inv.ProductID == low.ID {
			found = true
		}
		if !inv.IsLowStock() {
			t.Errorf("product %s is not low on stock", inv.ProductID)
		}
	}
	if !found {
		t.Error("low stock listing must include the low product")
	}
}
