package models

import "time"

// Sale records an outbound movement of stock. Rows are immutable once
// created; each insert is paired with a -qty stock adjustment.
type Sale struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID    int64     `gorm:"column:product_id;not null;index"`
	CustomerID   *int64    `gorm:"column:customer_id"`
	Qty          int       `gorm:"column:qty;not null"`
	PricePerItem float64   `gorm:"column:price_per_item;not null"`
	TotalPrice   float64   `gorm:"column:total_price;not null"`
	Date         time.Time `gorm:"column:date;not null;index"`
	Note         string    `gorm:"column:note"`
}
