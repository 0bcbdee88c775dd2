package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/svalverde/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate products: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db
}

func TestCreateProductIdempotentBySKU(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()

	input := CreateProductInput{SKU: "WID-1", Name: "Widget", Price: 9.5, Stock: 10}
	if err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	input.Name = "Widget Mk2"
	input.Stock = 99
	if err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("second create should be a no-op, got: %v", err)
	}

	var count int64
	if err := db.Model(&models.Product{}).Where("sku = ?", "WID-1").Count(&count).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row for the SKU, got %d", count)
	}

	var row models.Product
	if err := db.First(&row, "sku = ?", "WID-1").Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if row.Name != "Widget" || row.Stock != 10 {
		t.Fatalf("second create must not mutate the original row: %+v", row)
	}
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []CreateProductInput{
		{SKU: "  ", Name: "Widget"},
		{SKU: "WID-1", Name: ""},
		{SKU: "WID-1", Name: "Widget", Price: -1},
		{SKU: "WID-1", Name: "Widget", Stock: -5},
	}
	for _, input := range cases {
		err := svc.CreateProduct(ctx, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}
}

func TestAdjustStockSignedDelta(t *testing.T) {
	t.Parallel()

	svc, db := newTestDBWithProduct(t, 10)
	ctx := context.Background()

	if err := svc.AdjustStock(ctx, 1, 5); err != nil {
		t.Fatalf("adjust up: %v", err)
	}
	if err := svc.AdjustStock(ctx, 1, -20); err != nil {
		t.Fatalf("adjust down: %v", err)
	}

	var row models.Product
	if err := db.First(&row, "id = ?", 1).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	// no floor on direct adjustment
	if row.Stock != -5 {
		t.Fatalf("expected stock -5, got %d", row.Stock)
	}
}

func TestDeductStockConditional(t *testing.T) {
	t.Parallel()

	_, db := newTestDBWithProduct(t, 5)
	repo := NewRepository(db)
	ctx := context.Background()

	ok, err := repo.DeductStock(ctx, 1, 3)
	if err != nil || !ok {
		t.Fatalf("expected deduction to apply, ok=%v err=%v", ok, err)
	}
	ok, err = repo.DeductStock(ctx, 1, 3)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if ok {
		t.Fatal("expected deduction past the floor to be refused")
	}

	var row models.Product
	if err := db.First(&row, "id = ?", 1).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if row.Stock != 2 {
		t.Fatalf("expected stock 2 after refused deduction, got %d", row.Stock)
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.GetProduct(context.Background(), 404)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListProductsOrderedByID(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, sku := range []string{"A-1", "B-2", "C-3"} {
		if err := svc.CreateProduct(ctx, CreateProductInput{SKU: sku, Name: sku}); err != nil {
			t.Fatalf("create %s: %v", sku, err)
		}
	}

	rows, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 products, got %d", len(rows))
	}
	if rows[0].SKU != "A-1" || rows[2].SKU != "C-3" {
		t.Fatalf("unexpected ordering: %+v", rows)
	}
}

func newTestDBWithProduct(t *testing.T, stock int) (Service, *gorm.DB) {
	t.Helper()
	svc, db := newTestService(t)
	product := &models.Product{ID: 1, SKU: "WID-1", Name: "Widget", Price: 9.5, Stock: stock}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return svc, db
}
