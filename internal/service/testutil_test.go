package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getTestDB connects to the test database, skipping the test when it is
// not reachable.
func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=retail_pos_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Inventory{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Notification{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

func testHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// seedProductWithStock creates a product plus an inventory row at the
// given stock level and threshold. Rows are cleaned up when the test ends.
func seedProductWithStock(t *testing.T, db *gorm.DB, stock, threshold int) *model.Product {
	t.Helper()

	suffix := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String()[:8])
	product := &model.Product{
		BaseModel:    model.BaseModel{ID: uuid.New()},
		SKU:          "TEST-" + suffix,
		Name:         "Test Product " + suffix,
		Category:     "Test",
		Unit:         model.UnitPcs,
		CostPrice:    50,
		SellingPrice: 100,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	inv, err := model.NewInventory(product.ID, stock, threshold)
	if err != nil {
		t.Fatalf("seed inventory failed: %v", err)
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed inventory failed: %v", err)
	}

	t.Cleanup(func() {
		db.Where("product_id = ?", product.ID).Delete(&model.SaleItem{})
		db.Where("product_id = ?", product.ID).Delete(&model.Inventory{})
		db.Delete(&model.Product{}, "id = ?", product.ID)
	})

	return product
}

// seedCashier creates a cashier account for sale tests.
func seedCashier(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	email := fmt.Sprintf("cashier-%s@test.local", uuid.New().String()[:8])
	user, err := model.NewUser(model.SignupRequest{
		Email:    email,
		Password: "cashier123",
		FullName: "Test Cashier",
		Role:     model.RoleCashier,
	})
	if err != nil {
		t.Fatalf("seed cashier failed: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed cashier failed: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM sale_items WHERE sale_id IN (SELECT id FROM sales WHERE cashier_id = ?)", user.ID)
		db.Where("cashier_id = ?", user.ID).Delete(&model.Sale{})
		db.Delete(&model.User{}, "id = ?", user.ID)
	})

	return user
}
