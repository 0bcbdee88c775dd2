package controllers

import (
	"net/http"

	"github.com/svalverde/stockroom-backend/api/responses"
	"github.com/svalverde/stockroom-backend/api/validators"
	"github.com/svalverde/stockroom-backend/internal/trading"
	pkgerrors "github.com/svalverde/stockroom-backend/pkg/errors"
	"github.com/svalverde/stockroom-backend/pkg/logger"
)

type recordPurchaseRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	SupplierID  *int64  `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	Qty         int     `json:"qty" validate:"required,gt=0"`
	CostPerItem float64 `json:"cost_per_item" validate:"gte=0"`
	Note        string  `json:"note,omitempty"`
}

type recordSaleRequest struct {
	ProductID    int64   `json:"product_id" validate:"required,gt=0"`
	CustomerID   *int64  `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	Qty          int     `json:"qty" validate:"required,gt=0"`
	PricePerItem float64 `json:"price_per_item" validate:"gte=0"`
	Note         string  `json:"note,omitempty"`
}

const defaultTradeListLimit = 100

// RecordPurchase books an inbound movement and its stock increment.
func RecordPurchase(svc trading.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trading service unavailable"))
			return
		}

		var payload recordPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, payload.ProductID)
		}

		purchase, err := svc.RecordPurchase(ctx, trading.RecordPurchaseInput{
			ProductID:   payload.ProductID,
			SupplierID:  payload.SupplierID,
			Qty:         payload.Qty,
			CostPerItem: payload.CostPerItem,
			Note:        payload.Note,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

// RecordSale books an outbound movement; it refuses to oversell.
func RecordSale(svc trading.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trading service unavailable"))
			return
		}

		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, payload.ProductID)
		}

		sale, err := svc.RecordSale(ctx, trading.RecordSaleInput{
			ProductID:    payload.ProductID,
			CustomerID:   payload.CustomerID,
			Qty:          payload.Qty,
			PricePerItem: payload.PricePerItem,
			Note:         payload.Note,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func ListPurchases(svc trading.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trading service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultTradeListLimit, 1, defaultTradeListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchases, err := svc.ListPurchases(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, purchases)
	}
}

func ListSales(svc trading.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trading service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultTradeListLimit, 1, defaultTradeListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListSales(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales)
	}
}
