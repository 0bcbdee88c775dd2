package trading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/svalverde/stockroom-backend/internal/catalog"
	"github.com/svalverde/stockroom-backend/internal/parties"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"gorm.io/gorm"
)

// txRunner runs a function inside a single database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records purchases and sales. Each record operation writes the
// movement row and applies the matching stock adjustment atomically.
type Service interface {
	RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*PurchaseDTO, error)
	RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error)
	ListPurchases(ctx context.Context, limit int) ([]PurchaseDTO, error)
	ListSales(ctx context.Context, limit int) ([]SaleDTO, error)
}

type RecordPurchaseInput struct {
	ProductID   int64
	SupplierID  *int64
	Qty         int
	CostPerItem float64
	Note        string
}

type RecordSaleInput struct {
	ProductID    int64
	CustomerID   *int64
	Qty          int
	PricePerItem float64
	Note         string
}

type service struct {
	tx      txRunner
	trades  *Repository
	catalog *catalog.Repository
	parties *parties.Repository
	now     func() time.Time
}

func NewService(tx txRunner, trades *Repository, catalogRepo *catalog.Repository, partiesRepo *parties.Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if trades == nil {
		return nil, fmt.Errorf("trading repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if partiesRepo == nil {
		return nil, fmt.Errorf("parties repository required")
	}
	return &service{
		tx:      tx,
		trades:  trades,
		catalog: catalogRepo,
		parties: partiesRepo,
		now:     time.Now,
	}, nil
}

func (s *service) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*PurchaseDTO, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if input.CostPerItem < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per item must not be negative")
	}

	purchase := &models.Purchase{
		ProductID:   input.ProductID,
		SupplierID:  input.SupplierID,
		Qty:         input.Qty,
		CostPerItem: input.CostPerItem,
		TotalCost:   float64(input.Qty) * input.CostPerItem,
		Date:        s.now().UTC(),
		Note:        input.Note,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogTx := s.catalog.WithTx(tx)
		if _, err := catalogTx.FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", input.ProductID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
		}
		if input.SupplierID != nil {
			ok, err := s.parties.WithTx(tx).SupplierExists(ctx, *input.SupplierID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check supplier")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("supplier %d not found", *input.SupplierID))
			}
		}
		if err := s.trades.WithTx(tx).InsertPurchase(ctx, purchase); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert purchase")
		}
		if err := catalogTx.AdjustStock(ctx, input.ProductID, input.Qty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust stock")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := NewPurchaseDTO(purchase)
	return &dto, nil
}

func (s *service) RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if input.PricePerItem < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per item must not be negative")
	}

	sale := &models.Sale{
		ProductID:    input.ProductID,
		CustomerID:   input.CustomerID,
		Qty:          input.Qty,
		PricePerItem: input.PricePerItem,
		TotalPrice:   float64(input.Qty) * input.PricePerItem,
		Date:         s.now().UTC(),
		Note:         input.Note,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogTx := s.catalog.WithTx(tx)
		if _, err := catalogTx.FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", input.ProductID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
		}
		if input.CustomerID != nil {
			ok, err := s.parties.WithTx(tx).CustomerExists(ctx, *input.CustomerID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check customer")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", *input.CustomerID))
			}
		}
		ok, err := catalogTx.DeductStock(ctx, input.ProductID, input.Qty)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deduct stock")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("product %d has insufficient stock for qty %d", input.ProductID, input.Qty))
		}
		if err := s.trades.WithTx(tx).InsertSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := NewSaleDTO(sale)
	return &dto, nil
}

func (s *service) ListPurchases(ctx context.Context, limit int) ([]PurchaseDTO, error) {
	rows, err := s.trades.ListPurchases(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list purchases")
	}
	out := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewPurchaseDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ListSales(ctx context.Context, limit int) ([]SaleDTO, error) {
	rows, err := s.trades.ListSales(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewSaleDTO(&rows[i]))
	}
	return out, nil
}

const maxListLimit = 100

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
