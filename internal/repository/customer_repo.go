package repository

import (
	"go-pos-dashboard/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByMobile(mobile string) (*model.Customer, error)
	FindAll() ([]model.Customer, error)
	// RecordSale and RecordCancellation run inside the order engine's
	// transaction; they are never called on their own.
	RecordSale(tx *gorm.DB, mobile string, amount float64) error
	RecordCancellation(tx *gorm.DB, mobile string, amount float64) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByMobile(mobile string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "mobile = ?", mobile).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("joined_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) RecordSale(tx *gorm.DB, mobile string, amount float64) error {
	return tx.Model(&model.Customer{}).
		Where("mobile = ?", mobile).
		Updates(map[string]interface{}{
			"total_spent":  gorm.Expr("total_spent + ?", amount),
			"total_visits": gorm.Expr("total_visits + 1"),
		}).Error
}

// RecordCancellation reverses the original sale's spend/visit effects and
// counts the cancellation against the customer.
func (r *customerRepo) RecordCancellation(tx *gorm.DB, mobile string, amount float64) error {
	return tx.Model(&model.Customer{}).
		Where("mobile = ?", mobile).
		Updates(map[string]interface{}{
			"total_spent":      gorm.Expr("total_spent - ?", amount),
			"total_visits":     gorm.Expr("total_visits - 1"),
			"cancelled_orders": gorm.Expr("cancelled_orders + 1"),
		}).Error
}
