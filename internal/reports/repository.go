package reports

import (
	"context"
	"time"

	"github.com/svalverde/stockroom-backend/internal/repo"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ReportRepository reads the derived views behind the dashboard and the
// sales and purchase reports. It never writes.
type ReportRepository interface {
	Counts(ctx context.Context) (Counts, error)
	LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error)
	SaleTotals(ctx context.Context) ([]float64, error)
	PurchaseTotals(ctx context.Context) ([]float64, error)
	RecentSales(ctx context.Context, limit int) ([]SaleRow, error)
	RecentPurchases(ctx context.Context, limit int) ([]PurchaseRow, error)
}

// Counts holds the entity and movement tallies shown on the dashboard.
type Counts struct {
	Products  int64
	Customers int64
	Suppliers int64
	Sales     int64
	Purchases int64
}

// SaleRow is a sale joined with its product and optional customer names.
type SaleRow struct {
	ID           int64
	ProductName  string
	CustomerName *string
	Qty          int
	PricePerItem float64
	TotalPrice   float64
	Date         time.Time
}

// PurchaseRow is a purchase joined with its product and optional supplier names.
type PurchaseRow struct {
	ID           int64
	ProductName  string
	SupplierName *string
	Qty          int
	CostPerItem  float64
	TotalCost    float64
	Date         time.Time
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	db := r.DB(ctx)
	if err := db.Model(&models.Product{}).Count(&out.Products).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.Customer{}).Count(&out.Customers).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.Supplier{}).Count(&out.Suppliers).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.Sale{}).Count(&out.Sales).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.Purchase{}).Count(&out.Purchases).Error; err != nil {
		return Counts{}, err
	}
	return out, nil
}

func (r *Repository) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	var rows []models.Product
	err := r.DB(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaleTotals(ctx context.Context) ([]float64, error) {
	var totals []float64
	if err := r.DB(ctx).Model(&models.Sale{}).Pluck("total_price", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *Repository) PurchaseTotals(ctx context.Context) ([]float64, error) {
	var totals []float64
	if err := r.DB(ctx).Model(&models.Purchase{}).Pluck("total_cost", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *Repository) RecentSales(ctx context.Context, limit int) ([]SaleRow, error) {
	var rows []SaleRow
	err := r.DB(ctx).Model(&models.Sale{}).
		Select("sales.id, products.name AS product_name, customers.name AS customer_name, sales.qty, sales.price_per_item, sales.total_price, sales.date").
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
		Order("sales.date DESC, sales.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) RecentPurchases(ctx context.Context, limit int) ([]PurchaseRow, error) {
	var rows []PurchaseRow
	err := r.DB(ctx).Model(&models.Purchase{}).
		Select("purchases.id, products.name AS product_name, suppliers.name AS supplier_name, purchases.qty, purchases.cost_per_item, purchases.total_cost, purchases.date").
		Joins("JOIN products ON products.id = purchases.product_id").
		Joins("LEFT JOIN suppliers ON suppliers.id = purchases.supplier_id").
		Order("purchases.date DESC, purchases.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
