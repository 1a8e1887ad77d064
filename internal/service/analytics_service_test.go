package service

import (
	"testing"
	"time"

	"go-pos-dashboard/internal/forecast"
	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnalyticsService(db *gorm.DB) AnalyticsService {
	return NewAnalyticsService(repository.NewAnalyticsRepo(db))
}

func day(d, hour int) time.Time {
	return time.Date(2026, 8, d, hour, 30, 0, 0, time.UTC)
}

func TestFinancialSummaryComputation(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Grocery")
	p := seedProduct(t, db, "Fortune Oil 1L", cat.ID, 145, 125, 50)
	seedCustomer(t, db, "9876543220", "Customer A")

	seedOrder(t, db, "9876543220", 118, 18, model.PayCash, day(10, 11), model.OrderActive,
		model.OrderItem{ProductID: p.ID, Quantity: 2, UnitPrice: 50, UnitCost: 30})
	seedOrder(t, db, "9876543220", 236, 36, model.PayUPI, day(12, 15), model.OrderActive,
		model.OrderItem{ProductID: p.ID, Quantity: 4, UnitPrice: 50, UnitCost: 30})
	// Cancelled order in range must not leak into any figure.
	seedOrder(t, db, "9876543220", 999, 99, model.PayCard, day(11, 16), model.OrderCancelled,
		model.OrderItem{ProductID: p.ID, Quantity: 9, UnitPrice: 99, UnitCost: 80})

	svc := newAnalyticsService(db)
	summary, err := svc.FinancialSummary(day(1, 0), day(31, 23))
	require.NoError(t, err)

	assert.InDelta(t, 354, summary.Revenue, 1e-9)
	assert.EqualValues(t, 2, summary.OrderCount)
	assert.InDelta(t, 177, summary.AvgOrderValue, 1e-9)
	assert.InDelta(t, 180, summary.TotalCost, 1e-9) // (2+4) * 30
	assert.InDelta(t, 174, summary.GrossProfit, 1e-9)
	assert.InDelta(t, 174.0/354.0*100, summary.GrossMarginPct, 1e-9)
}

func TestFinancialSummaryCancelledOnlyRange(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Snacks")
	p := seedProduct(t, db, "Pringles Sour Cream", cat.ID, 110, 85, 30)
	seedCustomer(t, db, "9876543221", "Customer B")

	seedOrder(t, db, "9876543221", 110, 0, model.PayCash, day(5, 12), model.OrderCancelled,
		model.OrderItem{ProductID: p.ID, Quantity: 1, UnitPrice: 110, UnitCost: 85})

	svc := newAnalyticsService(db)
	summary, err := svc.FinancialSummary(day(1, 0), day(31, 23))
	require.NoError(t, err)

	assert.Zero(t, summary.Revenue)
	assert.Zero(t, summary.OrderCount)
	assert.Zero(t, summary.AvgOrderValue)
	assert.Zero(t, summary.GrossMarginPct)
}

func TestRetentionSpansWholeCustomerBase(t *testing.T) {
	db := newTestDB(t)
	// Retention ignores the queried range: it's a global metric.
	one := seedCustomer(t, db, "9876543222", "One Visit")
	two := seedCustomer(t, db, "9876543223", "Two Visits")
	three := seedCustomer(t, db, "9876543224", "Never Visited")
	require.NoError(t, db.Model(one).Update("total_visits", 1).Error)
	require.NoError(t, db.Model(two).Update("total_visits", 2).Error)
	require.NoError(t, db.Model(three).Update("total_visits", 0).Error)

	svc := newAnalyticsService(db)
	summary, err := svc.FinancialSummary(day(1, 0), day(2, 0))
	require.NoError(t, err)

	// 1 of 3 customers has more than one visit.
	assert.InDelta(t, 100.0/3.0, summary.RetentionPct, 1e-9)
}

func TestHourlyTrendBucketsActiveOrdersOnly(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9876543225", "Customer C")

	seedOrder(t, db, "9876543225", 50, 0, model.PayCash, day(10, 9), model.OrderActive)
	seedOrder(t, db, "9876543225", 60, 0, model.PayCash, day(11, 9), model.OrderActive)
	seedOrder(t, db, "9876543225", 70, 0, model.PayCash, day(12, 18), model.OrderActive)
	seedOrder(t, db, "9876543225", 80, 0, model.PayCash, day(13, 13), model.OrderCancelled)

	svc := newAnalyticsService(db)
	buckets, err := svc.HourlyTrend()
	require.NoError(t, err)

	// Only non-empty hours, in natural order; the cancelled 13:00 order
	// contributes nothing.
	require.Len(t, buckets, 2)
	assert.Equal(t, HourBucket{Hour: 9, Orders: 2}, buckets[0])
	assert.Equal(t, HourBucket{Hour: 18, Orders: 1}, buckets[1])
}

func TestDailyTrendNaturalOrder(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9876543226", "Customer D")

	// 2026-08-09 is a Sunday, 2026-08-10 a Monday.
	seedOrder(t, db, "9876543226", 50, 0, model.PayCash, day(10, 10), model.OrderActive)
	seedOrder(t, db, "9876543226", 60, 0, model.PayCash, day(9, 11), model.OrderActive)
	seedOrder(t, db, "9876543226", 70, 0, model.PayCash, day(17, 12), model.OrderActive) // another Monday

	svc := newAnalyticsService(db)
	buckets, err := svc.DailyTrend()
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	assert.Equal(t, DayBucket{Day: "Sunday", Orders: 1}, buckets[0])
	assert.Equal(t, DayBucket{Day: "Monday", Orders: 2}, buckets[1])
}

func TestTopProductsOrdering(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Electronics")
	a := seedProduct(t, db, "USB C Cable 1m", cat.ID, 350, 150, 10)
	b := seedProduct(t, db, "Wireless Mouse Logitech", cat.ID, 600, 400, 10)
	c := seedProduct(t, db, "Sony Earphones", cat.ID, 800, 550, 10)
	require.NoError(t, db.Model(a).Update("sales_count", 7).Error)
	require.NoError(t, db.Model(b).Update("sales_count", 12).Error)
	require.NoError(t, db.Model(c).Update("sales_count", 3).Error)

	svc := newAnalyticsService(db)
	top, err := svc.TopProducts(2)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Wireless Mouse Logitech", top[0].Name)
	assert.Equal(t, 12, top[0].SalesCount)
	assert.Equal(t, "USB C Cable 1m", top[1].Name)
}

func TestCategoryBreakdown(t *testing.T) {
	db := newTestDB(t)
	snacks := seedCategory(t, db, "Snacks")
	dairy := seedCategory(t, db, "Dairy")
	p1 := seedProduct(t, db, "Lays Classic Salted", snacks.ID, 20, 15, 10)
	p2 := seedProduct(t, db, "Doritos Nacho Cheese", snacks.ID, 30, 22, 10)
	p3 := seedProduct(t, db, "Amul Butter 100g", dairy.ID, 56, 48, 10)
	require.NoError(t, db.Model(p1).Update("sales_count", 4).Error)
	require.NoError(t, db.Model(p2).Update("sales_count", 6).Error)
	require.NoError(t, db.Model(p3).Update("sales_count", 5).Error)

	svc := newAnalyticsService(db)
	breakdown, err := svc.CategoryBreakdown()
	require.NoError(t, err)

	require.Len(t, breakdown, 2)
	assert.Equal(t, repository.CategorySales{Name: "Dairy", TotalSold: 5}, breakdown[0])
	assert.Equal(t, repository.CategorySales{Name: "Snacks", TotalSold: 10}, breakdown[1])
}

func TestPaymentBreakdownExcludesCancelled(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9876543227", "Customer E")

	seedOrder(t, db, "9876543227", 100, 0, model.PayCash, day(10, 10), model.OrderActive)
	seedOrder(t, db, "9876543227", 150, 0, model.PayCash, day(11, 10), model.OrderActive)
	seedOrder(t, db, "9876543227", 200, 0, model.PayUPI, day(12, 10), model.OrderActive)
	seedOrder(t, db, "9876543227", 999, 0, model.PayCard, day(13, 10), model.OrderCancelled)

	svc := newAnalyticsService(db)
	breakdown, err := svc.PaymentBreakdown()
	require.NoError(t, err)

	require.Len(t, breakdown, 2)
	assert.Equal(t, model.PayCash, breakdown[0].Mode)
	assert.EqualValues(t, 2, breakdown[0].Count)
	assert.InDelta(t, 250, breakdown[0].Volume, 1e-9)
	assert.Equal(t, model.PayUPI, breakdown[1].Mode)
	assert.EqualValues(t, 1, breakdown[1].Count)
}

func TestForecastFromSalesSeries(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9876543228", "Customer F")

	// Steadily growing revenue across four trading days (with a gap).
	seedOrder(t, db, "9876543228", 100, 0, model.PayCash, day(1, 10), model.OrderActive)
	seedOrder(t, db, "9876543228", 200, 0, model.PayCash, day(2, 10), model.OrderActive)
	seedOrder(t, db, "9876543228", 300, 0, model.PayCash, day(4, 10), model.OrderActive)
	seedOrder(t, db, "9876543228", 400, 0, model.PayCash, day(5, 10), model.OrderActive)

	svc := newAnalyticsService(db)
	result, err := svc.Forecast(day(1, 0), day(6, 0), forecast.ModeLinear)
	require.NoError(t, err)

	require.Len(t, result.Series, 4)
	require.Len(t, result.Projection.Future, forecast.Horizon)
	assert.True(t, result.Projection.Growing)

	first := result.Projection.Fitted[0].Value
	last := result.Projection.Fitted[len(result.Projection.Fitted)-1].Value
	assert.GreaterOrEqual(t, last, first)
}

func TestForecastInsufficientData(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "9876543229", "Customer G")
	seedOrder(t, db, "9876543229", 100, 0, model.PayCash, day(1, 10), model.OrderActive)

	svc := newAnalyticsService(db)
	_, err := svc.Forecast(day(1, 0), day(6, 0), forecast.ModeSmoothed)
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)
}
