package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "order:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Order"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Catalog
	{Code: "product:view", Name: "View Products"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:restock", Name: "Restock Product"},
	{Code: "category:manage", Name: "Manage Categories"},
	// Customers
	{Code: "customer:view", Name: "View Customers"},
	{Code: "customer:create", Name: "Register Customer"},
	// Orders
	{Code: "order:view", Name: "View Orders"},
	{Code: "order:create", Name: "Commit Order"},
	{Code: "order:cancel", Name: "Cancel Order"},
	// Analytics
	{Code: "analytics:view", Name: "View Analytics"},
	// Administration
	{Code: "settings:update", Name: "Update Settings"},
	{Code: "user:create", Name: "Create Operator"},
}

// CashierPrivileges is the billing-counter subset assigned to the CASHIER role.
var CashierPrivileges = []string{
	"product:view",
	"customer:view",
	"customer:create",
	"order:view",
	"order:create",
}
