package handler

import (
	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// CommitOrderRequest represents the checkout request body. The cart carries
// the prices snapshotted when lines were added on the billing screen.
type CommitOrderRequest struct {
	CustomerMobile string            `json:"customer_mobile"`
	Cart           []model.CartLine  `json:"cart"`
	PaymentMode    model.PaymentMode `json:"payment_mode"`
}

// CancelOrderRequest carries the cancellation reason and the acting user's
// password for re-confirmation.
type CancelOrderRequest struct {
	Reason   string `json:"reason"`
	Password string `json:"password"`
}

// CommitOrder processes a checkout
// POST /api/v1/orders
func (h *OrderHandler) CommitOrder(c *fiber.Ctx) error {
	var req CommitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.CommitOrder(req.CustomerMobile, req.Cart, req.PaymentMode, actingUsername(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order committed", "data": result})
}

// CancelOrder voids an active order (admin only, password re-confirmed)
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CancelOrder(c.Params("id"), req.Reason, actingUsername(c), req.Password); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}

// ListOrders returns order history for a date range
// GET /api/v1/orders?start=2026-08-01&end=2026-08-31
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	orders, err := h.service.ListOrders(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// GetInvoice returns the renderer payload for an order
// GET /api/v1/orders/:id/invoice
func (h *OrderHandler) GetInvoice(c *fiber.Ctx) error {
	invoice, err := h.service.Invoice(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(invoice)
}
