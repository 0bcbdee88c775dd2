package trading

import (
	"time"

	"github.com/svalverde/stockroom-backend/pkg/db/models"
)

type PurchaseDTO struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	SupplierID  *int64  `json:"supplier_id,omitempty"`
	Qty         int     `json:"qty"`
	CostPerItem float64 `json:"cost_per_item"`
	TotalCost   float64 `json:"total_cost"`
	Date        string  `json:"date"`
	Note        string  `json:"note,omitempty"`
}

type SaleDTO struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	CustomerID   *int64  `json:"customer_id,omitempty"`
	Qty          int     `json:"qty"`
	PricePerItem float64 `json:"price_per_item"`
	TotalPrice   float64 `json:"total_price"`
	Date         string  `json:"date"`
	Note         string  `json:"note,omitempty"`
}

func NewPurchaseDTO(p *models.Purchase) PurchaseDTO {
	return PurchaseDTO{
		ID:          p.ID,
		ProductID:   p.ProductID,
		SupplierID:  p.SupplierID,
		Qty:         p.Qty,
		CostPerItem: p.CostPerItem,
		TotalCost:   p.TotalCost,
		Date:        p.Date.UTC().Format(time.RFC3339),
		Note:        p.Note,
	}
}

func NewSaleDTO(s *models.Sale) SaleDTO {
	return SaleDTO{
		ID:           s.ID,
		ProductID:    s.ProductID,
		CustomerID:   s.CustomerID,
		Qty:          s.Qty,
		PricePerItem: s.PricePerItem,
		TotalPrice:   s.TotalPrice,
		Date:         s.Date.UTC().Format(time.RFC3339),
		Note:         s.Note,
	}
}
