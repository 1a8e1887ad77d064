package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go-pos-dashboard/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory sqlite database. Each test gets its own
// named shared-cache DB so the gorm connection pool sees one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Customer{},
		&model.Order{}, &model.OrderItem{}, &model.Setting{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	))
	return db
}

func seedTaxConfig(t *testing.T, db *gorm.DB, enabled bool, percent string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Setting{Key: model.SettingGSTEnabled, Value: fmt.Sprintf("%t", enabled)}).Error)
	require.NoError(t, db.Create(&model.Setting{Key: model.SettingGSTPercent, Value: percent}).Error)
	require.NoError(t, db.Create(&model.Setting{Key: model.SettingStoreName, Value: "Test Store"}).Error)
	require.NoError(t, db.Create(&model.Setting{Key: model.SettingUPIID, Value: "test@upi"}).Error)
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price, cost float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:         name,
		CategoryID:   categoryID,
		SellingPrice: price,
		CostPrice:    cost,
		Stock:        stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, mobile, name string) *model.Customer {
	t.Helper()
	customer := &model.Customer{Mobile: mobile, Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedUser(t *testing.T, db *gorm.DB, username, password string) *model.User {
	t.Helper()
	user := &model.User{Username: username, FullName: username, IsActive: true}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedOrder(t *testing.T, db *gorm.DB, mobile string, total, tax float64, mode model.PaymentMode, ts time.Time, status model.OrderStatus, items ...model.OrderItem) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderID:          model.NewOrderID(),
		CustomerMobile:   mobile,
		OperatorUsername: "pos1",
		TotalAmount:      total,
		TaxAmount:        tax,
		PaymentMode:      mode,
		Timestamp:        ts,
		Status:           status,
	}
	for i := range items {
		items[i].OrderID = order.OrderID
	}
	order.Items = items
	require.NoError(t, db.Create(order).Error)
	return order
}
