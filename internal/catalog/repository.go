package catalog

import (
	"context"

	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines persistence operations for the product ledger.
type ProductRepository interface {
	CreateProduct(context.Context, *models.Product) error
	FindByID(context.Context, int64) (*models.Product, error)
	FindBySKU(context.Context, string) (*models.Product, error)
	ListProducts(context.Context) ([]models.Product, error)
	AdjustStock(context.Context, int64, int) error
	DeductStock(context.Context, int64, int) (bool, error)
}

// Repository wires product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row. An existing SKU makes the insert a
// no-op rather than an error (idempotent-by-SKU).
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoNothing: true,
		}).
		Create(product).
		Error
}

// FindByID loads a product row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads a product row by its identity key.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every product ordered by creation.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// AdjustStock applies a signed delta as one unconditional update. The caller
// guarantees the product exists; no floor is enforced here.
func (r *Repository) AdjustStock(ctx context.Context, productID int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).
		Error
}

// DeductStock decrements stock only when enough units remain, reporting
// whether the decrement took effect. The conditional update closes the
// check-then-act window for concurrent sellers of the same product.
func (r *Repository) DeductStock(ctx context.Context, productID int64, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
