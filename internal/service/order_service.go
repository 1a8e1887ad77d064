package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"
	"go-pos-dashboard/internal/ws"
	"go-pos-dashboard/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	CommitOrder(customerMobile string, cart []model.CartLine, paymentMode model.PaymentMode, operator string) (*CommitResult, error)
	CancelOrder(orderID, reason, actorUsername, password string) error
	GetOrder(orderID string) (*model.Order, error)
	ListOrders(start, end time.Time) ([]model.Order, error)
	Invoice(orderID string) (*Invoice, error)
}

// CommitResult is what the billing screen needs back after a sale.
type CommitResult struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	TaxAmount   float64 `json:"tax_amount"`
}

// Invoice is the plain structure handed to external document/QR renderers.
type Invoice struct {
	OrderID        string        `json:"order_id"`
	StoreName      string        `json:"store_name"`
	CustomerName   string        `json:"customer_name"`
	CustomerMobile string        `json:"customer_mobile"`
	Lines          []InvoiceLine `json:"line_items"`
	TaxAmount      float64       `json:"tax_amount"`
	TotalAmount    float64       `json:"total_amount"`
	// UPILink is the payment deep link the QR renderer encodes.
	UPILink string `json:"upi_link"`
}

type InvoiceLine struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	settingRepo  repository.SettingRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	uRepo repository.UserRepository,
	sRepo repository.SettingRepository,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    oRepo,
		productRepo:  pRepo,
		customerRepo: cRepo,
		userRepo:     uRepo,
		settingRepo:  sRepo,
		db:           db,
		wsHub:        hub,
	}
}

// CommitOrder validates the cart, computes tax over the snapshotted line
// prices, and persists the order header, its items, the stock/sales deltas
// and the customer stat bump as one transaction. Any failing line rejects
// the whole order; nothing partial ever becomes visible.
func (s *orderService) CommitOrder(customerMobile string, cart []model.CartLine, paymentMode model.PaymentMode, operator string) (*CommitResult, error) {
	if len(cart) == 0 {
		return nil, validationErr("cart is empty")
	}
	for _, line := range cart {
		if errs := validator.ValidateStruct(&line); len(errs) > 0 {
			first := errs[0]
			return nil, validationErr("invalid cart line: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
		}
	}
	if paymentMode != model.PayCash && paymentMode != model.PayCard && paymentMode != model.PayUPI {
		return nil, validationErr("unknown payment mode %q", paymentMode)
	}

	if _, err := s.customerRepo.FindByMobile(customerMobile); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("customer %s is not registered", customerMobile)
		}
		return nil, consistencyErr("customer lookup failed", err)
	}

	taxCfg, err := s.settingRepo.TaxConfig()
	if err != nil {
		return nil, consistencyErr("tax config unavailable", err)
	}

	// Subtotal over snapshotted cart prices, not a re-fetch from the catalog.
	subtotal := 0.0
	for _, line := range cart {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	taxAmount := 0.0
	if taxCfg.Enabled {
		taxAmount = subtotal * (taxCfg.Percent / 100)
	}
	total := subtotal + taxAmount

	order := &model.Order{
		OrderID:          model.NewOrderID(),
		CustomerMobile:   customerMobile,
		OperatorUsername: operator,
		TotalAmount:      total,
		TaxAmount:        taxAmount,
		PaymentMode:      paymentMode,
		Timestamp:        time.Now(),
		Status:           model.OrderActive,
	}
	for _, line := range cart {
		order.Items = append(order.Items, model.OrderItem{
			OrderID:   order.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  line.UnitCost,
		})
	}

	// A cart may list the same product on several lines; the stock check and
	// the decrement both have to see their sum, not each line alone.
	needed := make(map[uuid.UUID]int)
	for _, line := range cart {
		needed[line.ProductID] += line.Quantity
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-validate stock per product under the transaction; the UI caps
		// quantities but the engine is the authority.
		for productID, quantity := range needed {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationErr("unknown product %s", productID)
				}
				return consistencyErr("product lookup failed", err)
			}
			if product.Stock < quantity {
				return validationErr("insufficient stock for %s: have %d, want %d", product.Name, product.Stock, quantity)
			}
		}

		if err := s.orderRepo.Create(tx, order); err != nil {
			return consistencyErr("order persist failed", err)
		}
		for productID, quantity := range needed {
			if err := s.productRepo.ApplySale(tx, productID, quantity); err != nil {
				return consistencyErr("stock update failed", err)
			}
		}
		if err := s.customerRepo.RecordSale(tx, customerMobile, total); err != nil {
			return consistencyErr("customer stats update failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(map[string]interface{}{
		"type":     "order_committed",
		"order_id": order.OrderID,
		"total":    total,
		"operator": operator,
		"message":  fmt.Sprintf("%s committed order %s", operator, order.OrderID),
	})

	return &CommitResult{OrderID: order.OrderID, TotalAmount: total, TaxAmount: taxAmount}, nil
}

// CancelOrder flips an active order to cancelled after re-authenticating the
// acting user, and reverses the owning customer's spend/visit counters. Stock
// and sales counts stay as they are: a voided sale does not return goods to
// inventory.
func (s *orderService) CancelOrder(orderID, reason, actorUsername, password string) error {
	actor, err := s.userRepo.FindByUsername(actorUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unauthorizedErr("unknown user %q", actorUsername)
		}
		return consistencyErr("user lookup failed", err)
	}
	if !actor.CheckPassword(password) {
		return unauthorizedErr("password confirmation failed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return conflictErr("order %s not found", orderID)
			}
			return consistencyErr("order lookup failed", err)
		}
		if order.Status == model.OrderCancelled {
			return conflictErr("order %s is already cancelled", orderID)
		}

		if err := s.orderRepo.MarkCancelled(tx, orderID, reason); err != nil {
			return consistencyErr("order status update failed", err)
		}
		// The reversal targets whoever owned the original order, looked up
		// from the order row itself.
		if err := s.customerRepo.RecordCancellation(tx, order.CustomerMobile, order.TotalAmount); err != nil {
			return consistencyErr("customer stats reversal failed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcast(map[string]interface{}{
		"type":     "order_cancelled",
		"order_id": orderID,
		"reason":   reason,
		"operator": actorUsername,
		"message":  fmt.Sprintf("%s cancelled order %s", actorUsername, orderID),
	})
	return nil
}

func (s *orderService) GetOrder(orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order %s not found", orderID)
		}
		return nil, consistencyErr("order lookup failed", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(start, end time.Time) ([]model.Order, error) {
	return s.orderRepo.FindRange(start, end)
}

// Invoice assembles the renderer payload for a committed order, including
// the UPI deep link the QR generator encodes. The document itself is built
// outside this system.
func (s *orderService) Invoice(orderID string) (*Invoice, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, consistencyErr("settings unavailable", err)
	}

	inv := &Invoice{
		OrderID:        order.OrderID,
		StoreName:      settings[model.SettingStoreName],
		CustomerMobile: order.CustomerMobile,
		TaxAmount:      order.TaxAmount,
		TotalAmount:    order.TotalAmount,
	}
	if order.Customer != nil {
		inv.CustomerName = order.Customer.Name
	}
	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		inv.Lines = append(inv.Lines, InvoiceLine{Name: name, Qty: item.Quantity, UnitPrice: item.UnitPrice})
	}
	inv.UPILink = upiLink(settings[model.SettingUPIID], inv.StoreName, order.TotalAmount)
	return inv, nil
}

func upiLink(upiID, storeName string, amount float64) string {
	q := url.Values{}
	q.Set("pa", upiID)
	q.Set("pn", storeName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tn", "Bill Payment")
	return "upi://pay?" + q.Encode()
}

func (s *orderService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
