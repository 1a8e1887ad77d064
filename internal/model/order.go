package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentMode string

const (
	PayCash PaymentMode = "CASH"
	PayCard PaymentMode = "CARD"
	PayUPI  PaymentMode = "UPI"
)

type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is the persisted header of a committed sale. Status only ever moves
// active -> cancelled, exactly once.
type Order struct {
	OrderID          string      `gorm:"type:varchar(40);primaryKey" json:"order_id"`
	CustomerMobile   string      `gorm:"type:varchar(20);not null;index" json:"customer_mobile"`
	Customer         *Customer   `gorm:"foreignKey:CustomerMobile;references:Mobile" json:"customer,omitempty"`
	OperatorUsername string      `gorm:"type:varchar(100);not null" json:"operator_username"`
	TotalAmount      float64     `gorm:"not null" json:"total_amount"` // inclusive of tax
	TaxAmount        float64     `gorm:"not null" json:"tax_amount"`
	PaymentMode      PaymentMode `gorm:"type:varchar(10);not null" json:"payment_mode" validate:"required,oneof=CASH CARD UPI"`
	Timestamp        time.Time   `gorm:"not null;index" json:"timestamp"`
	Status           OrderStatus `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`

	// Present iff the order was cancelled.
	CancellationReason string `gorm:"type:text" json:"cancellation_reason,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

// OrderItem snapshots unit price and unit cost at time of sale so margin
// analytics stay accurate after later price edits.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"type:varchar(40);not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	UnitCost  float64   `gorm:"not null" json:"unit_cost"`
}

// CartLine is one requested product in a checkout. Price and cost are
// snapshotted when the line was added to the cart, not re-fetched at commit,
// so a concurrent price edit cannot change what the customer was quoted.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"gte=0"`
	UnitCost  float64   `json:"unit_cost" validate:"gte=0"`
}

// NewOrderID builds an invoice token from the commit timestamp plus a random
// suffix. The suffix keeps two commits in the same clock tick from colliding.
func NewOrderID() string {
	return fmt.Sprintf("INV%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}
