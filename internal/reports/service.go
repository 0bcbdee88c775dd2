package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
)

// lowStockThreshold marks a product as low stock on the dashboard.
const lowStockThreshold = 5

// maxReportRows caps the sales and purchase report listings.
const maxReportRows = 100

// Service assembles the dashboard and the recent-activity reports from
// the live tables. All views are derived; nothing here mutates state.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardDTO, error)
	SalesReport(ctx context.Context, limit int) ([]SaleReportDTO, error)
	PurchasesReport(ctx context.Context, limit int) ([]PurchaseReportDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: entity counts")
	}

	saleTotals, err := s.repo.SaleTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sale totals")
	}
	purchaseTotals, err := s.repo.PurchaseTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: purchase totals")
	}

	lowStock, err := s.repo.LowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: low stock products")
	}

	items := make([]LowStockItem, 0, len(lowStock))
	for i := range lowStock {
		items = append(items, newLowStockItem(&lowStock[i]))
	}

	return &DashboardDTO{
		Products:      counts.Products,
		Customers:     counts.Customers,
		Suppliers:     counts.Suppliers,
		Sales:         counts.Sales,
		Purchases:     counts.Purchases,
		SalesRevenue:  sumTotals(saleTotals),
		PurchaseSpend: sumTotals(purchaseTotals),
		LowStock:      items,
	}, nil
}

func (s *service) SalesReport(ctx context.Context, limit int) ([]SaleReportDTO, error) {
	rows, err := s.repo.RecentSales(ctx, clampLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent sales")
	}
	out := make([]SaleReportDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newSaleReportDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) PurchasesReport(ctx context.Context, limit int) ([]PurchaseReportDTO, error) {
	rows, err := s.repo.RecentPurchases(ctx, clampLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent purchases")
	}
	out := make([]PurchaseReportDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newPurchaseReportDTO(&rows[i]))
	}
	return out, nil
}

// sumTotals accumulates money values through decimal so a long run of
// float additions cannot drift.
func sumTotals(totals []float64) float64 {
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	out, _ := sum.Float64()
	return out
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxReportRows {
		return maxReportRows
	}
	return limit
}
