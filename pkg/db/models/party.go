package models

// Customer is a buying party. Customers and suppliers are structurally
// identical but kept as separate tables per the durable schema contract.
type Customer struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;not null"`
	Email   string `gorm:"column:email"`
	Phone   string `gorm:"column:phone"`
	Address string `gorm:"column:address"`
}

// Supplier is a selling party.
type Supplier struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;not null"`
	Email   string `gorm:"column:email"`
	Phone   string `gorm:"column:phone"`
	Address string `gorm:"column:address"`
}
