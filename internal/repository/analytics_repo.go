package repository

import (
	"time"

	"go-pos-dashboard/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository is strictly read-only: every query aggregates over
// committed state and never mutates it. Revenue and volume metrics count
// active orders only; cancelled orders are excluded everywhere.
type AnalyticsRepository interface {
	FinancialTotals(start, end time.Time) (revenue float64, orders int64, cost float64, err error)
	SalesSeries(start, end time.Time) ([]SalesPoint, error)
	ActiveOrderTimes() ([]time.Time, error)
	TopProducts(limit int) ([]ProductSales, error)
	CategoryBreakdown() ([]CategorySales, error)
	PaymentBreakdown() ([]PaymentStats, error)
	InventoryTurnover() (int64, error)
	CustomerCounts() (total int64, returning int64, err error)
}

// SalesPoint is one day of revenue, the unit the forecast engine consumes.
type SalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ProductSales struct {
	Name       string `json:"name"`
	SalesCount int    `json:"sales_count"`
}

type CategorySales struct {
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}

type PaymentStats struct {
	Mode   model.PaymentMode `json:"mode"`
	Count  int64             `json:"count"`
	Volume float64           `json:"volume"`
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db}
}

func (r *analyticsRepo) FinancialTotals(start, end time.Time) (float64, int64, float64, error) {
	var revenue float64
	var orders int64
	var cost float64

	err := r.db.Model(&model.Order{}).
		Where("status = ? AND timestamp BETWEEN ? AND ?", model.OrderActive, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, 0, 0, err
	}

	err = r.db.Model(&model.Order{}).
		Where("status = ? AND timestamp BETWEEN ? AND ?", model.OrderActive, start, end).
		Count(&orders).Error
	if err != nil {
		return 0, 0, 0, err
	}

	// Cost comes from the per-item cost snapshots, not current catalog prices.
	err = r.db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.order_id = order_items.order_id").
		Where("orders.status = ? AND orders.timestamp BETWEEN ? AND ?", model.OrderActive, start, end).
		Select("COALESCE(SUM(order_items.unit_cost * order_items.quantity), 0)").
		Scan(&cost).Error
	if err != nil {
		return 0, 0, 0, err
	}

	return revenue, orders, cost, nil
}

func (r *analyticsRepo) SalesSeries(start, end time.Time) ([]SalesPoint, error) {
	var results []SalesPoint

	rows, err := r.db.Model(&model.Order{}).
		Select("DATE(timestamp) as date, COALESCE(SUM(total_amount), 0) as revenue, COUNT(*) as orders").
		Where("status = ? AND timestamp BETWEEN ? AND ?", model.OrderActive, start, end).
		Group("DATE(timestamp)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point SalesPoint
		if err := rows.Scan(&point.Date, &point.Revenue, &point.Orders); err != nil {
			return nil, err
		}
		results = append(results, point)
	}
	return results, rows.Err()
}

// ActiveOrderTimes returns the timestamps of every active order. Hour-of-day
// and day-of-week bucketing happen in the service, which keeps the SQL
// portable across postgres and the sqlite test databases.
func (r *analyticsRepo) ActiveOrderTimes() ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderActive).
		Order("timestamp ASC").
		Pluck("timestamp", &times).Error
	return times, err
}

func (r *analyticsRepo) TopProducts(limit int) ([]ProductSales, error) {
	var results []ProductSales
	err := r.db.Model(&model.Product{}).
		Select("name, sales_count").
		Order("sales_count DESC, created_at ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepo) CategoryBreakdown() ([]CategorySales, error) {
	var results []CategorySales
	err := r.db.Model(&model.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Select("categories.name as name, COALESCE(SUM(products.sales_count), 0) as total_sold").
		Group("categories.name").
		Order("categories.name ASC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepo) PaymentBreakdown() ([]PaymentStats, error) {
	var results []PaymentStats
	err := r.db.Model(&model.Order{}).
		Select("payment_mode as mode, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as volume").
		Where("status = ?", model.OrderActive).
		Group("payment_mode").
		Order("payment_mode ASC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepo) InventoryTurnover() (int64, error) {
	var turnover int64
	err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(sales_count), 0)").
		Scan(&turnover).Error
	return turnover, err
}

// CustomerCounts feeds the retention rate. It deliberately spans the whole
// customer base rather than the queried date range.
func (r *analyticsRepo) CustomerCounts() (int64, int64, error) {
	var total, returning int64
	if err := r.db.Model(&model.Customer{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.Customer{}).Where("total_visits > 1").Count(&returning).Error; err != nil {
		return 0, 0, err
	}
	return total, returning, nil
}
