package model

type Product struct {
	BaseModel
	Name       string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID uint      `gorm:"not null;index" json:"category_id" validate:"required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"` // Relation - skip validation

	SellingPrice float64 `gorm:"not null" json:"selling_price" validate:"gte=0"`
	CostPrice    float64 `gorm:"not null" json:"cost_price" validate:"gte=0"`

	// Stock never goes negative: the order engine re-validates quantities
	// before it calls the sale decrement.
	Stock      int `gorm:"default:0" json:"stock" validate:"gte=0"`
	SalesCount int `gorm:"default:0" json:"sales_count"`
}
