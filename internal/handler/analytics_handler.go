package handler

import (
	"errors"

	"go-pos-dashboard/internal/forecast"
	"go-pos-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetFinancialSummary returns revenue/cost/margin/retention for a range
// GET /api/v1/analytics/summary?start=...&end=...
func (h *AnalyticsHandler) GetFinancialSummary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	summary, err := h.service.FinancialSummary(start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

// GetSalesSeries returns the per-day revenue series for a range
func (h *AnalyticsHandler) GetSalesSeries(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	series, err := h.service.SalesSeries(start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(series)
}

// GetForecast fits and extrapolates the revenue trend
// GET /api/v1/analytics/forecast?start=...&end=...&mode=smoothed
func (h *AnalyticsHandler) GetForecast(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	mode := forecast.ModeLinear
	if c.Query("mode") == string(forecast.ModeSmoothed) {
		mode = forecast.ModeSmoothed
	}

	result, err := h.service.Forecast(start, end, mode)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (h *AnalyticsHandler) GetHourlyTrend(c *fiber.Ctx) error {
	buckets, err := h.service.HourlyTrend()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buckets)
}

func (h *AnalyticsHandler) GetDailyTrend(c *fiber.Ctx) error {
	buckets, err := h.service.DailyTrend()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buckets)
}

func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	products, err := h.service.TopProducts(limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(products)
}

func (h *AnalyticsHandler) GetCategoryBreakdown(c *fiber.Ctx) error {
	breakdown, err := h.service.CategoryBreakdown()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(breakdown)
}

func (h *AnalyticsHandler) GetPaymentBreakdown(c *fiber.Ctx) error {
	breakdown, err := h.service.PaymentBreakdown()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(breakdown)
}
