package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"gorm.io/gorm"
)

func newSaleServiceForTest(t *testing.T) (SaleService, *gorm.DB, repository.InventoryRepository) {
	db := getTestDB(t)
	hub := testHub()

	inventoryRepo := repository.NewInventoryRepo(db)
	notifications := NewNotificationService(repository.NewNotificationRepo(db), hub)
	svc := NewSaleService(repository.NewSaleRepo(db), inventoryRepo, notifications, db, hub)
	return svc, db, inventoryRepo
}

func countSalesByCashier(t *testing.T, db *gorm.DB, cashier *model.User) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Sale{}).Where("cashier_id = ?", cashier.ID).Count(&count).Error; err != nil {
		t.Fatalf("count sales failed: %v", err)
	}
	return count
}

// waitForLowStockNotifications polls briefly, since alerts fire after the
// sale transaction commits.
func waitForLowStockNotifications(t *testing.T, db *gorm.DB, product *model.Product, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var count int64
	for time.Now().Before(deadline) {
		err := db.Model(&model.Notification{}).
			Where("type = ? AND message LIKE ?", model.NotificationLowStock, "%"+product.ID.String()+"%").
			Count(&count).Error
		if err != nil {
			t.Fatalf("count notifications failed: %v", err)
		}
		if count == want {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Errorf("expected %d LOW_STOCK notifications for product %s, got %d", want, product.ID, count)
}

func TestCreateSaleHappyPath(t *testing.T) {
	svc, db, inventoryRepo := newSaleServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 5)
	cashier := seedCashier(t, db)
	t.Cleanup(func() {
		db.Where("message LIKE ?", "%"+product.ID.String()+"%").Delete(&model.Notification{})
	})

	sale, err := svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items: []model.SaleItemInput{
			{ProductID: product.ID, Quantity: 6, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	if sale.TotalAmount != 600 {
		t.Errorf("expected total 600, got %v", sale.TotalAmount)
	}
	if len(sale.Items) != 1 || sale.Items[0].Subtotal != 600 {
		t.Errorf("unexpected items: %+v", sale.Items)
	}

	// sale persisted with its items
	persisted, err := repository.NewSaleRepo(db).FindByID(sale.ID)
	if err != nil {
		t.Fatalf("persisted sale not found: %v", err)
	}
	if persisted.SaleNumber != sale.SaleNumber || len(persisted.Items) != 1 {
		t.Errorf("unexpected persisted sale: %+v", persisted)
	}

	// inventory decremented to 4
	inv, err := inventoryRepo.FindByProductID(product.ID)
	if err != nil {
		t.Fatalf("inventory lookup failed: %v", err)
	}
	if inv.CurrentStock != 4 {
		t.Errorf("expected current stock 4, got %d", inv.CurrentStock)
	}
	if inv.StockOut != 6 {
		t.Errorf("expected stock out 6, got %d", inv.StockOut)
	}

	// stock 4 <= threshold 5: exactly one LOW_STOCK alert for the product
	waitForLowStockNotifications(t, db, product, 1)
}

func TestCreateSaleEmptyItems(t *testing.T) {
	svc, db, _ := newSaleServiceForTest(t)
	cashier := seedCashier(t, db)

	_, err := svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items:         []model.SaleItemInput{},
	})
	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if n := countSalesByCashier(t, db, cashier); n != 0 {
		t.Errorf("nothing may be persisted, found %d sales", n)
	}
}

func TestCreateSaleInsufficientStockPersistsNothing(t *testing.T) {
	svc, db, inventoryRepo := newSaleServiceForTest(t)
	product := seedProductWithStock(t, db, 5, 2)
	cashier := seedCashier(t, db)

	_, err := svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
		PaymentMethod: model.PaymentMobileMoney,
		Items: []model.SaleItemInput{
			{ProductID: product.ID, Quantity: 6, UnitPrice: 100},
		},
	})
	var stockErr *model.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != product.ID {
		t.Error("error must name the offending product")
	}

	if n := countSalesByCashier(t, db, cashier); n != 0 {
		t.Errorf("no sale row may exist, found %d", n)
	}

	inv, err := inventoryRepo.FindByProductID(product.ID)
	if err != nil {
		t.Fatalf("inventory lookup failed: %v", err)
	}
	if inv.CurrentStock != 5 || inv.StockOut != 0 {
		t.Errorf("inventory must be unchanged, got stock %d out %d", inv.CurrentStock, inv.StockOut)
	}
}

func TestCreateSaleMultiLinePartialFailureAborts(t *testing.T) {
	svc, db, inventoryRepo := newSaleServiceForTest(t)
	plenty := seedProductWithStock(t, db, 100, 5)
	scarce := seedProductWithStock(t, db, 1, 0)
	cashier := seedCashier(t, db)

	_, err := svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items: []model.SaleItemInput{
			{ProductID: plenty.ID, Quantity: 10, UnitPrice: 20},
			{ProductID: scarce.ID, Quantity: 2, UnitPrice: 30},
		},
	})
	var stockErr *model.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	// the line that could have been fulfilled must be untouched too
	inv, _ := inventoryRepo.FindByProductID(plenty.ID)
	if inv.CurrentStock != 100 {
		t.Errorf("expected untouched stock 100, got %d", inv.CurrentStock)
	}
	if n := countSalesByCashier(t, db, cashier); n != 0 {
		t.Errorf("no sale row may exist, found %d", n)
	}
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	svc, db, _ := newSaleServiceForTest(t)
	cashier := seedCashier(t, db)

	// the cashier's id has no inventory row
	_, err := svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items: []model.SaleItemInput{
			{ProductID: cashier.ID, Quantity: 1, UnitPrice: 10},
		},
	})
	var notFoundErr *model.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// Two concurrent 6-unit sales against a stock of 10: the row lock makes
// exactly one succeed and stock can never go negative.
func TestCreateSaleConcurrentOversell(t *testing.T) {
	svc, db, inventoryRepo := newSaleServiceForTest(t)
	product := seedProductWithStock(t, db, 10, 0)
	cashier := seedCashier(t, db)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateSale(cashier.ID, &model.CreateSaleRequest{
				PaymentMethod: model.PaymentCash,
				Items: []model.SaleItemInput{
					{ProductID: product.ID, Quantity: 6, UnitPrice: 100},
				},
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *model.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Errorf("loser must fail with InsufficientStockError, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}

	inv, err := inventoryRepo.FindByProductID(product.ID)
	if err != nil {
		t.Fatalf("inventory lookup failed: %v", err)
	}
	if inv.CurrentStock < 0 {
		t.Fatal("stock went negative: oversell")
	}
	if inv.CurrentStock != 4 {
		t.Errorf("expected current stock 4, got %d", inv.CurrentStock)
	}

	if n := countSalesByCashier(t, db, cashier); n != 1 {
		t.Errorf("expected exactly one persisted sale, found %d", n)
	}
}
