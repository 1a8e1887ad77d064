package model

// Category groups products for catalog management and sales analytics.
// Products reference it by ID, so a rename never orphans them.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}
