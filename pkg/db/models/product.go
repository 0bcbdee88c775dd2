package models

// Product is the canonical catalog entry. SKU is the stable identity key;
// stock only ever changes through signed ledger adjustments.
type Product struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	SKU         string  `gorm:"column:sku;not null;uniqueIndex"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description"`
	Price       float64 `gorm:"column:price;not null;default:0"`
	Stock       int     `gorm:"column:stock;not null;default:0"`
}
