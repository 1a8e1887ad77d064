package service

import (
	"time"

	"go-pos-dashboard/internal/forecast"
	"go-pos-dashboard/internal/repository"
)

// AnalyticsService aggregates historical orders for the dashboard. It is
// read-only: nothing here mutates catalog, customer or order state.
type AnalyticsService interface {
	FinancialSummary(start, end time.Time) (*FinancialSummary, error)
	SalesSeries(start, end time.Time) ([]repository.SalesPoint, error)
	HourlyTrend() ([]HourBucket, error)
	DailyTrend() ([]DayBucket, error)
	TopProducts(limit int) ([]repository.ProductSales, error)
	CategoryBreakdown() ([]repository.CategorySales, error)
	PaymentBreakdown() ([]repository.PaymentStats, error)
	Forecast(start, end time.Time, mode forecast.Mode) (*SalesForecast, error)
}

type FinancialSummary struct {
	Revenue           float64 `json:"revenue"`
	OrderCount        int64   `json:"order_count"`
	AvgOrderValue     float64 `json:"avg_order_value"`
	TotalCost         float64 `json:"total_cost"`
	GrossProfit       float64 `json:"gross_profit"`
	GrossMarginPct    float64 `json:"gross_margin_pct"`
	InventoryTurnover int64   `json:"inventory_turnover"`
	// RetentionPct spans the entire customer base, not the date range.
	RetentionPct float64 `json:"retention_pct"`
}

type HourBucket struct {
	Hour   int `json:"hour"` // 0-23
	Orders int `json:"orders"`
}

type DayBucket struct {
	Day    string `json:"day"` // Sunday..Saturday
	Orders int    `json:"orders"`
}

// SalesForecast pairs the observed series with the fitted projection.
type SalesForecast struct {
	Series     []repository.SalesPoint `json:"series"`
	Projection *forecast.Projection    `json:"projection"`
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) FinancialSummary(start, end time.Time) (*FinancialSummary, error) {
	revenue, orders, cost, err := s.repo.FinancialTotals(start, end)
	if err != nil {
		return nil, consistencyErr("financial totals query failed", err)
	}

	summary := &FinancialSummary{
		Revenue:    revenue,
		OrderCount: orders,
		TotalCost:  cost,
	}
	if orders > 0 {
		summary.AvgOrderValue = revenue / float64(orders)
	}
	summary.GrossProfit = revenue - cost
	if revenue > 0 {
		summary.GrossMarginPct = summary.GrossProfit / revenue * 100
	}

	turnover, err := s.repo.InventoryTurnover()
	if err != nil {
		return nil, consistencyErr("turnover query failed", err)
	}
	summary.InventoryTurnover = turnover

	total, returning, err := s.repo.CustomerCounts()
	if err != nil {
		return nil, consistencyErr("customer counts query failed", err)
	}
	if total > 0 {
		summary.RetentionPct = float64(returning) / float64(total) * 100
	}
	return summary, nil
}

func (s *analyticsService) SalesSeries(start, end time.Time) ([]repository.SalesPoint, error) {
	return s.repo.SalesSeries(start, end)
}

// HourlyTrend buckets active orders by hour of day. Only hours with at least
// one order come back, in natural 00-23 order.
func (s *analyticsService) HourlyTrend() ([]HourBucket, error) {
	times, err := s.repo.ActiveOrderTimes()
	if err != nil {
		return nil, consistencyErr("order times query failed", err)
	}

	counts := [24]int{}
	for _, t := range times {
		counts[t.Hour()]++
	}
	buckets := []HourBucket{}
	for hour, n := range counts {
		if n > 0 {
			buckets = append(buckets, HourBucket{Hour: hour, Orders: n})
		}
	}
	return buckets, nil
}

// DailyTrend buckets active orders by day of week, Sunday through Saturday.
func (s *analyticsService) DailyTrend() ([]DayBucket, error) {
	times, err := s.repo.ActiveOrderTimes()
	if err != nil {
		return nil, consistencyErr("order times query failed", err)
	}

	counts := [7]int{}
	for _, t := range times {
		counts[int(t.Weekday())]++
	}
	buckets := []DayBucket{}
	for day, n := range counts {
		if n > 0 {
			buckets = append(buckets, DayBucket{Day: time.Weekday(day).String(), Orders: n})
		}
	}
	return buckets, nil
}

func (s *analyticsService) TopProducts(limit int) ([]repository.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.TopProducts(limit)
}

func (s *analyticsService) CategoryBreakdown() ([]repository.CategorySales, error) {
	return s.repo.CategoryBreakdown()
}

func (s *analyticsService) PaymentBreakdown() ([]repository.PaymentStats, error) {
	return s.repo.PaymentBreakdown()
}

// Forecast fits the revenue-per-day series for the range and extrapolates
// seven indices ahead. Fewer than two trading days in range yields the
// insufficient-data error from the forecast package.
func (s *analyticsService) Forecast(start, end time.Time, mode forecast.Mode) (*SalesForecast, error) {
	series, err := s.repo.SalesSeries(start, end)
	if err != nil {
		return nil, consistencyErr("sales series query failed", err)
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Revenue
	}
	proj, err := forecast.Project(values, mode)
	if err != nil {
		return nil, err
	}
	return &SalesForecast{Series: series, Projection: proj}, nil
}
