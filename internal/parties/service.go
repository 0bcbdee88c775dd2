package parties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/svalverde/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service manages the customer and supplier registries.
type Service interface {
	CreateCustomer(ctx context.Context, input CreatePartyInput) (int64, error)
	CreateSupplier(ctx context.Context, input CreatePartyInput) (int64, error)
	GetCustomer(ctx context.Context, id int64) (*CustomerDTO, error)
	GetSupplier(ctx context.Context, id int64) (*SupplierDTO, error)
	ListCustomers(ctx context.Context) ([]CustomerDTO, error)
	ListSuppliers(ctx context.Context) ([]SupplierDTO, error)
}

// CreatePartyInput carries the fields shared by both registries.
type CreatePartyInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parties repository required")
	}
	return &service{repo: repo}, nil
}

func (in CreatePartyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}

func (s *service) CreateCustomer(ctx context.Context, input CreatePartyInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}
	customer := &models.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create customer")
	}
	return customer.ID, nil
}

func (s *service) CreateSupplier(ctx context.Context, input CreatePartyInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}
	supplier := &models.Supplier{
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create supplier")
	}
	return supplier.ID, nil
}

func (s *service) GetCustomer(ctx context.Context, id int64) (*CustomerDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.repo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find customer")
	}
	dto := NewCustomerDTO(customer)
	return &dto, nil
}

func (s *service) GetSupplier(ctx context.Context, id int64) (*SupplierDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id is required")
	}
	supplier, err := s.repo.FindSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("supplier %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find supplier")
	}
	dto := NewSupplierDTO(supplier)
	return &dto, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewCustomerDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]SupplierDTO, error) {
	rows, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list suppliers")
	}
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewSupplierDTO(&rows[i]))
	}
	return out, nil
}
