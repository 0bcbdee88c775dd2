package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/svalverde/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes product ledger operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) error
	AdjustStock(ctx context.Context, productID int64, delta int) error
	GetProduct(ctx context.Context, productID int64) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       float64
	Stock       int
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct inserts the product; a duplicate SKU is silently ignored.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) error {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	product := &models.Product{
		SKU:         sku,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return nil
}

// AdjustStock applies a signed stock delta. The operation is deliberately
// unconditional; purchase-side credits rely on it and the sale path guards
// the floor itself.
func (s *service) AdjustStock(ctx context.Context, productID int64, delta int) error {
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.AdjustStock(ctx, productID, delta); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust stock")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return NewProductDTOs(rows), nil
}
