package reports

import (
	"time"

	"github.com/svalverde/stockroom-backend/pkg/db/models"
)

type DashboardDTO struct {
	Products      int64          `json:"products"`
	Customers     int64          `json:"customers"`
	Suppliers     int64          `json:"suppliers"`
	Sales         int64          `json:"sales"`
	Purchases     int64          `json:"purchases"`
	SalesRevenue  float64        `json:"sales_revenue"`
	PurchaseSpend float64        `json:"purchase_spend"`
	LowStock      []LowStockItem `json:"low_stock"`
}

type LowStockItem struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type SaleReportDTO struct {
	ID           int64   `json:"id"`
	ProductName  string  `json:"product_name"`
	CustomerName *string `json:"customer_name,omitempty"`
	Qty          int     `json:"qty"`
	PricePerItem float64 `json:"price_per_item"`
	TotalPrice   float64 `json:"total_price"`
	Date         string  `json:"date"`
}

type PurchaseReportDTO struct {
	ID           int64   `json:"id"`
	ProductName  string  `json:"product_name"`
	SupplierName *string `json:"supplier_name,omitempty"`
	Qty          int     `json:"qty"`
	CostPerItem  float64 `json:"cost_per_item"`
	TotalCost    float64 `json:"total_cost"`
	Date         string  `json:"date"`
}

func newLowStockItem(p *models.Product) LowStockItem {
	return LowStockItem{ID: p.ID, SKU: p.SKU, Name: p.Name, Stock: p.Stock}
}

func newSaleReportDTO(row *SaleRow) SaleReportDTO {
	return SaleReportDTO{
		ID:           row.ID,
		ProductName:  row.ProductName,
		CustomerName: row.CustomerName,
		Qty:          row.Qty,
		PricePerItem: row.PricePerItem,
		TotalPrice:   row.TotalPrice,
		Date:         row.Date.UTC().Format(time.RFC3339),
	}
}

func newPurchaseReportDTO(row *PurchaseRow) PurchaseReportDTO {
	return PurchaseReportDTO{
		ID:           row.ID,
		ProductName:  row.ProductName,
		SupplierName: row.SupplierName,
		Qty:          row.Qty,
		CostPerItem:  row.CostPerItem,
		TotalCost:    row.TotalCost,
		Date:         row.Date.UTC().Format(time.RFC3339),
	}
}
