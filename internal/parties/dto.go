package parties

import "github.com/svalverde/stockroom-backend/pkg/db/models"

type CustomerDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type SupplierDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func NewCustomerDTO(c *models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func NewSupplierDTO(s *models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:      s.ID,
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
	}
}
