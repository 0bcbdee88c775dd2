package models

import "time"

// Purchase records an inbound movement of stock. Rows are immutable once
// created; each insert is paired with a +qty stock adjustment.
type Purchase struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:product_id;not null;index"`
	SupplierID  *int64    `gorm:"column:supplier_id"`
	Qty         int       `gorm:"column:qty;not null"`
	CostPerItem float64   `gorm:"column:cost_per_item;not null"`
	TotalCost   float64   `gorm:"column:total_cost;not null"`
	Date        time.Time `gorm:"column:date;not null;index"`
	Note        string    `gorm:"column:note"`
}
