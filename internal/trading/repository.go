package trading

import (
	"context"

	"github.com/svalverde/stockroom-backend/internal/repo"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// TradeRepository persists purchase and sale movements.
type TradeRepository interface {
	InsertPurchase(ctx context.Context, purchase *models.Purchase) error
	InsertSale(ctx context.Context, sale *models.Sale) error
	ListPurchases(ctx context.Context, limit int) ([]models.Purchase, error)
	ListSales(ctx context.Context, limit int) ([]models.Sale, error)
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func (r *Repository) InsertPurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.DB(ctx).Create(purchase).Error
}

func (r *Repository) InsertSale(ctx context.Context, sale *models.Sale) error {
	return r.DB(ctx).Create(sale).Error
}

// ListPurchases returns the most recent purchases, newest first. Rows on the
// same timestamp are broken by id so the ordering stays stable.
func (r *Repository) ListPurchases(ctx context.Context, limit int) ([]models.Purchase, error) {
	var rows []models.Purchase
	q := r.DB(ctx).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListSales(ctx context.Context, limit int) ([]models.Sale, error) {
	var rows []models.Sale
	q := r.DB(ctx).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
