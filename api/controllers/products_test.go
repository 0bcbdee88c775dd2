package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/svalverde/stockroom-backend/internal/catalog"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"github.com/svalverde/stockroom-backend/pkg/logger"
)

type stubCatalogService struct {
	created []catalog.CreateProductInput
	adjusts map[int64]int
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) error {
	s.created = append(s.created, input)
	return nil
}

func (s *stubCatalogService) AdjustStock(ctx context.Context, productID int64, delta int) error {
	if s.adjusts == nil {
		s.adjusts = map[int64]int{}
	}
	s.adjusts[productID] += delta
	return nil
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID int64) (*catalog.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCreateProductController(t *testing.T) {
	logg := testLogger()
	svc := &stubCatalogService{}

	t.Run("valid body", func(t *testing.T) {
		body := `{"sku":"WID-1","name":"Widget","price":9.5,"stock":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(svc, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(svc.created) != 1 || svc.created[0].SKU != "WID-1" {
			t.Fatalf("service not invoked with decoded input: %+v", svc.created)
		}
	})

	t.Run("missing sku", func(t *testing.T) {
		body := `{"name":"Widget"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(svc, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		body := `{"sku":"WID-1","name":"Widget","bogus":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(svc, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		CreateProduct(nil, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestAdjustProductStockController(t *testing.T) {
	logg := testLogger()
	svc := &stubCatalogService{}

	makeRequest := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+id+"/stock", strings.NewReader(body))
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		AdjustProductStock(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("applies delta", func(t *testing.T) {
		rec := makeRequest("7", `{"delta":-3}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.adjusts[7] != -3 {
			t.Fatalf("expected delta -3 recorded, got %d", svc.adjusts[7])
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := makeRequest("zero", `{"delta":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		rec := makeRequest("7", `{"delta":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProductControllerNotFound(t *testing.T) {
	logg := testLogger()
	svc := &stubCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/9000", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "9000")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	GetProduct(svc, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
