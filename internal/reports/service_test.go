package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:reports_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Supplier{},
		&models.Purchase{},
		&models.Sale{},
	))
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestDashboardCountsAndTotals(t *testing.T) {
	t.Parallel()

	svc, db := newFixture(t)
	ctx := context.Background()

	products := []models.Product{
		{SKU: "A-1", Name: "Anvil", Stock: 20},
		{SKU: "B-2", Name: "Bolt", Stock: 8},
	}
	require.NoError(t, db.Create(&products).Error)
	require.NoError(t, db.Create(&models.Customer{Name: "Acme"}).Error)
	require.NoError(t, db.Create(&models.Supplier{Name: "Initech"}).Error)

	now := time.Now().UTC()
	sales := []models.Sale{
		{ProductID: products[0].ID, Qty: 2, PricePerItem: 0.1, TotalPrice: 0.2, Date: now},
		{ProductID: products[0].ID, Qty: 1, PricePerItem: 0.1, TotalPrice: 0.1, Date: now},
		{ProductID: products[1].ID, Qty: 3, PricePerItem: 0.1, TotalPrice: 0.3, Date: now},
	}
	require.NoError(t, db.Create(&sales).Error)
	require.NoError(t, db.Create(&models.Purchase{
		ProductID: products[1].ID, Qty: 10, CostPerItem: 1.5, TotalCost: 15, Date: now,
	}).Error)

	got, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.Products)
	assert.Equal(t, int64(1), got.Customers)
	assert.Equal(t, int64(1), got.Suppliers)
	assert.Equal(t, int64(3), got.Sales)
	assert.Equal(t, int64(1), got.Purchases)
	// 0.2 + 0.1 + 0.3 sums exactly through decimal
	assert.Equal(t, 0.6, got.SalesRevenue)
	assert.Equal(t, 15.0, got.PurchaseSpend)
	assert.Empty(t, got.LowStock)
}

func TestDashboardLowStockThreshold(t *testing.T) {
	t.Parallel()

	svc, db := newFixture(t)
	ctx := context.Background()

	products := []models.Product{
		{SKU: "A-1", Name: "At threshold", Stock: 5},
		{SKU: "B-2", Name: "Above threshold", Stock: 6},
		{SKU: "C-3", Name: "Empty", Stock: 0},
	}
	require.NoError(t, db.Create(&products).Error)

	got, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	require.Len(t, got.LowStock, 2)
	assert.Equal(t, "Empty", got.LowStock[0].Name)
	assert.Equal(t, "At threshold", got.LowStock[1].Name)
}

func TestSalesReportJoinsNamesNewestFirst(t *testing.T) {
	t.Parallel()

	svc, db := newFixture(t)
	ctx := context.Background()

	product := models.Product{SKU: "A-1", Name: "Anvil", Stock: 50}
	require.NoError(t, db.Create(&product).Error)
	customer := models.Customer{Name: "Acme"}
	require.NoError(t, db.Create(&customer).Error)

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{ProductID: product.ID, CustomerID: &customer.ID, Qty: 1, PricePerItem: 2, TotalPrice: 2, Date: base},
		{ProductID: product.ID, Qty: 2, PricePerItem: 2, TotalPrice: 4, Date: base.Add(time.Hour)},
	}
	require.NoError(t, db.Create(&sales).Error)

	rows, err := svc.SalesReport(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Anvil", rows[0].ProductName)
	assert.Nil(t, rows[0].CustomerName, "walk-in sale has no customer")
	assert.Equal(t, 4.0, rows[0].TotalPrice)

	require.NotNil(t, rows[1].CustomerName)
	assert.Equal(t, "Acme", *rows[1].CustomerName)
	assert.Equal(t, base.Format(time.RFC3339), rows[1].Date)
}

func TestPurchasesReportLimitClamp(t *testing.T) {
	t.Parallel()

	svc, db := newFixture(t)
	ctx := context.Background()

	product := models.Product{SKU: "A-1", Name: "Anvil"}
	require.NoError(t, db.Create(&product).Error)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Purchase{
			ProductID: product.ID, Qty: 1, CostPerItem: 1, TotalCost: 1, Date: now,
		}).Error)
	}

	rows, err := svc.PurchasesReport(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	all, err := svc.PurchasesReport(ctx, 9999)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Greater(t, all[0].ID, all[4].ID)
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, maxReportRows, clampLimit(0))
	assert.Equal(t, maxReportRows, clampLimit(-3))
	assert.Equal(t, maxReportRows, clampLimit(101))
	assert.Equal(t, 25, clampLimit(25))
}
