package service

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
)

type ReportService interface {
	GetDailyReport(date time.Time) (*Report, error)
	GetWeeklyReport(date time.Time) (*Report, error)
	GetMonthlyReport(year, month int) (*Report, error)
	GetCustomRangeReport(startDate, endDate time.Time) (*Report, error)
}

// Report is a derived, non-persisted summary over the sales history.
type Report struct {
	Period             string                          `json:"period"`
	StartDate          time.Time                       `json:"start_date"`
	EndDate            time.Time                       `json:"end_date"`
	Stats              *repository.SalesStats          `json:"stats"`
	DailyBreakdown     []repository.DailyBreakdown     `json:"daily_breakdown,omitempty"`
	PaymentBreakdown   []repository.PaymentBreakdown   `json:"payment_breakdown"`
	TopProducts        []repository.TopProduct         `json:"top_products"`
	CashierPerformance []repository.CashierPerformance `json:"cashier_performance"`
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

func (s *reportService) GetDailyReport(date time.Time) (*Report, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return s.buildReport("Daily", start, end, 5, false)
}

// GetWeeklyReport covers the Sunday-to-Saturday week containing date.
func (s *reportService) GetWeeklyReport(date time.Time) (*Report, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return s.buildReport("Weekly", start, end, 10, true)
}

func (s *reportService) GetMonthlyReport(year, month int) (*Report, error) {
	if month < 1 || month > 12 {
		return nil, model.NewValidationError("month must be between 1 and 12")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.buildReport("Monthly", start, end, 10, true)
}

func (s *reportService) GetCustomRangeReport(startDate, endDate time.Time) (*Report, error) {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, endDate.Location()).
		Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return nil, model.NewValidationError("end date must not precede start date")
	}
	return s.buildReport("Custom Range", start, end, 10, true)
}

func (s *reportService) buildReport(period string, start, end time.Time, topLimit int, withDaily bool) (*Report, error) {
	stats, err := s.saleRepo.GetSalesStats(start, end)
	if err != nil {
		return nil, model.NewPersistenceError("report.stats", err)
	}
	payments, err := s.saleRepo.GetPaymentMethodBreakdown(start, end)
	if err != nil {
		return nil, model.NewPersistenceError("report.paymentBreakdown", err)
	}
	topProducts, err := s.saleRepo.GetTopProducts(start, end, topLimit)
	if err != nil {
		return nil, model.NewPersistenceError("report.topProducts", err)
	}
	cashiers, err := s.saleRepo.GetCashierPerformance(start, end)
	if err != nil {
		return nil, model.NewPersistenceError("report.cashierPerformance", err)
	}

	report := &Report{
		Period:             period,
		StartDate:          start,
		EndDate:            end,
		Stats:              stats,
		PaymentBreakdown:   payments,
		TopProducts:        topProducts,
		CashierPerformance: cashiers,
	}
	if withDaily {
		daily, err := s.saleRepo.GetDailyBreakdown(start, end)
		if err != nil {
			return nil, model.NewPersistenceError("report.dailyBreakdown", err)
		}
		report.DailyBreakdown = daily
	}
	return report, nil
}
