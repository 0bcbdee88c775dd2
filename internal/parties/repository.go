package parties

import (
	"context"

	"github.com/svalverde/stockroom-backend/internal/repo"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"gorm.io/gorm"
)

// PartyRepository persists customers and suppliers.
type PartyRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	FindSupplierByID(ctx context.Context, id int64) (*models.Supplier, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	SupplierExists(ctx context.Context, id int64) (bool, error)
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

func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Create(customer).Error
}

func (r *Repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.DB(ctx).Create(supplier).Error
}

func (r *Repository) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) FindSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.DB(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.DB(ctx).Order("id ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.DB(ctx).Order("id ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *Repository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) SupplierExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Supplier{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
