package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Save(tx *gorm.DB, sale *model.Sale) error
	FindAll(filter SaleFilter) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	GetSalesStats(startDate, endDate time.Time) (*SalesStats, error)
	GetDailyBreakdown(startDate, endDate time.Time) ([]DailyBreakdown, error)
	GetPaymentMethodBreakdown(startDate, endDate time.Time) ([]PaymentBreakdown, error)
	GetTopProducts(startDate, endDate time.Time, limit int) ([]TopProduct, error)
	GetCashierPerformance(startDate, endDate time.Time) ([]CashierPerformance, error)
}

// SaleFilter narrows the sales history listing.
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	CashierID *uuid.UUID
}

// SalesStats is the headline rollup over a date range.
type SalesStats struct {
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	AverageSale  float64 `json:"average_sale"`
}

// DailyBreakdown aggregates sales per calendar day.
type DailyBreakdown struct {
	Date             string  `json:"date"`
	TransactionCount int     `json:"transaction_count"`
	Revenue          float64 `json:"revenue"`
	AverageSale      float64 `json:"average_sale"`
}

// PaymentBreakdown aggregates sales per payment method.
type PaymentBreakdown struct {
	Name  string  `json:"name"`
	Count int     `json:"value"`
	Total float64 `json:"total"`
}

// TopProduct ranks products by revenue over a date range.
type TopProduct struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int       `json:"quantity"`
	Revenue          float64   `json:"revenue"`
	TransactionCount int       `json:"transaction_count"`
}

// CashierPerformance aggregates sales per cashier.
type CashierPerformance struct {
	UserID           uuid.UUID `json:"user_id"`
	UserName         string    `json:"user_name"`
	TransactionCount int       `json:"transaction_count"`
	TotalRevenue     float64   `json:"total_revenue"`
	AverageSale      float64   `json:"average_sale"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Save writes the sale row and all item rows as one unit. When tx is nil a
// dedicated transaction wraps the aggregate so either all rows land or none.
func (r *saleRepo) Save(tx *gorm.DB, sale *model.Sale) error {
	if tx != nil {
		return tx.Create(sale).Error
	}
	return r.db.Transaction(func(inner *gorm.DB) error {
		return inner.Create(sale).Error
	})
}

func (r *saleRepo) FindAll(filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Preload("Items").Preload("Cashier")
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.CashierID != nil {
		q = q.Where("cashier_id = ?", *filter.CashierID)
	}
	err := q.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Cashier").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) GetSalesStats(startDate, endDate time.Time) (*SalesStats, error) {
	var stats SalesStats
	err := r.db.Model(&model.Sale{}).
		Select(`
			COUNT(*) as total_sales,
			COALESCE(SUM(total_amount), 0) as total_revenue,
			COALESCE(AVG(total_amount), 0) as average_sale
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *saleRepo) GetDailyBreakdown(startDate, endDate time.Time) ([]DailyBreakdown, error) {
	var results []DailyBreakdown

	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as transaction_count,
			COALESCE(SUM(total_amount), 0) as revenue,
			COALESCE(AVG(total_amount), 0) as average_sale
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day DailyBreakdown
		if err := rows.Scan(&day.Date, &day.TransactionCount, &day.Revenue, &day.AverageSale); err != nil {
			return nil, err
		}
		results = append(results, day)
	}
	return results, rows.Err()
}

func (r *saleRepo) GetPaymentMethodBreakdown(startDate, endDate time.Time) ([]PaymentBreakdown, error) {
	var results []PaymentBreakdown
	err := r.db.Model(&model.Sale{}).
		Select(`
			payment_method as name,
			COUNT(*) as count,
			COALESCE(SUM(total_amount), 0) as total
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("payment_method").
		Order("total DESC").
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetTopProducts(startDate, endDate time.Time, limit int) ([]TopProduct, error) {
	var results []TopProduct
	err := r.db.Table("sale_items si").
		Select(`
			p.id as product_id,
			p.name as product_name,
			SUM(si.quantity) as quantity,
			COALESCE(SUM(si.subtotal), 0) as revenue,
			COUNT(DISTINCT s.id) as transaction_count
		`).
		Joins("JOIN sales s ON si.sale_id = s.id").
		Joins("JOIN products p ON si.product_id = p.id").
		Where("s.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("p.id, p.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetCashierPerformance(startDate, endDate time.Time) ([]CashierPerformance, error) {
	var results []CashierPerformance
	err := r.db.Table("sales s").
		Select(`
			u.id as user_id,
			u.full_name as user_name,
			COUNT(DISTINCT s.id) as transaction_count,
			COALESCE(SUM(s.total_amount), 0) as total_revenue,
			COALESCE(AVG(s.total_amount), 0) as average_sale
		`).
		Joins("JOIN users u ON s.cashier_id = u.id").
		Where("s.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("u.id, u.full_name").
		Order("total_revenue DESC").
		Scan(&results).Error
	return results, err
}
