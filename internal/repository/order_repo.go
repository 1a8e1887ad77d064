package repository

import (
	"time"

	"go-pos-dashboard/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create persists the order header together with its line items inside
	// the caller's transaction.
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(orderID string) (*model.Order, error)
	FindRange(start, end time.Time) ([]model.Order, error)
	MarkCancelled(tx *gorm.DB, orderID, reason string) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Customer").
		First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindRange(start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Customer").
		Where("timestamp BETWEEN ? AND ?", start, end).
		Order("timestamp DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) MarkCancelled(tx *gorm.DB, orderID, reason string) error {
	return tx.Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":              model.OrderCancelled,
			"cancellation_reason": reason,
		}).Error
}
