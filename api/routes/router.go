package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/svalverde/stockroom-backend/api/controllers"
	"github.com/svalverde/stockroom-backend/api/middleware"
	"github.com/svalverde/stockroom-backend/internal/catalog"
	"github.com/svalverde/stockroom-backend/internal/parties"
	"github.com/svalverde/stockroom-backend/internal/reports"
	"github.com/svalverde/stockroom-backend/internal/trading"
	"github.com/svalverde/stockroom-backend/pkg/config"
	"github.com/svalverde/stockroom-backend/pkg/logger"
	"github.com/svalverde/stockroom-backend/pkg/metrics"
)

// Deps carries everything the router needs. Services are injected by
// the caller; nothing here reaches for globals.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Store       controllers.Pinger
	Catalog     catalog.Service
	Parties     parties.Service
	Trading     trading.Service
	Reports     reports.Service
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(deps.Config.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Store, deps.Logger))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.Catalog, deps.Logger))
			r.Get("/{id}", controllers.GetProduct(deps.Catalog, deps.Logger))
			r.Post("/{id}/stock", controllers.AdjustProductStock(deps.Catalog, deps.Logger))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(deps.Parties, deps.Logger))
			r.Post("/", controllers.CreateCustomer(deps.Parties, deps.Logger))
			r.Get("/{id}", controllers.GetCustomer(deps.Parties, deps.Logger))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(deps.Parties, deps.Logger))
			r.Post("/", controllers.CreateSupplier(deps.Parties, deps.Logger))
			r.Get("/{id}", controllers.GetSupplier(deps.Parties, deps.Logger))
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", controllers.ListPurchases(deps.Trading, deps.Logger))
			r.Post("/", controllers.RecordPurchase(deps.Trading, deps.Logger))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(deps.Trading, deps.Logger))
			r.Post("/", controllers.RecordSale(deps.Trading, deps.Logger))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", controllers.Dashboard(deps.Reports, deps.Logger))
			r.Get("/sales", controllers.SalesReport(deps.Reports, deps.Logger))
			r.Get("/purchases", controllers.PurchasesReport(deps.Reports, deps.Logger))
		})
	})

	return r
}
