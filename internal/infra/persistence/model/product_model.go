package model

import "time"

// ProductModel mirrors the 'products' table. Price and quantity carry CHECK
// constraints in the schema as well.
type ProductModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	Price       float64   `gorm:"type:double precision;not null;check:price > 0 AND price < 'Infinity'"`
	Quantity    int       `gorm:"not null;check:quantity >= 0"`
	ImageURL    *string   `gorm:"column:image_url;type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
