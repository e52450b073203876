package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunkrish/pharmapos-terminal/api/controllers"
	"github.com/arjunkrish/pharmapos-terminal/api/middleware"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/internal/billing"
	"github.com/arjunkrish/pharmapos-terminal/internal/cart"
	"github.com/arjunkrish/pharmapos-terminal/internal/dialog"
	"github.com/arjunkrish/pharmapos-terminal/internal/payments"
	"github.com/arjunkrish/pharmapos-terminal/internal/scanner"
	"github.com/arjunkrish/pharmapos-terminal/internal/session"
	"github.com/arjunkrish/pharmapos-terminal/internal/theme"
	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

// Deps carries everything the route tree serves from.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	KV       *redis.Client
	Backend  *backend.Client
	Sessions *session.Store
	Cart     *cart.Cart
	Resolver *cart.Resolver
	Split    *payments.Split
	Billing  *billing.Service
	Scanner  *scanner.Controller
	Dialogs  *dialog.Service
	Themes   *theme.Service
	Registry *prometheus.Registry
}

// NewRouter builds the terminal's HTTP surface. Sections mirror the screens:
// each screen's routes sit behind the roles allowed to open it, with ADMIN
// admitted everywhere.
func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.KV))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.SessionLogin(deps.Sessions, logg))
		r.Post("/logout", controllers.SessionLogout(deps.Sessions, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Sessions, logg))

		r.Get("/me", controllers.SessionMe(deps.Sessions, logg))
		r.Get("/nav", controllers.SessionNav(logg))

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeFetch(deps.Themes))
			r.Put("/", controllers.ThemeSet(deps.Themes, logg))
		})

		r.Route("/dialogs", func(r chi.Router) {
			r.Get("/active", controllers.DialogActive(deps.Dialogs))
			r.Post("/{promptId}/answer", controllers.DialogAnswer(deps.Dialogs, logg))
			r.Post("/{promptId}/dismiss", controllers.DialogDismiss(deps.Dialogs, logg))
		})

		r.Route("/billing", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleCashier))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, deps.Split, deps.Billing, logg))
				r.Delete("/", controllers.CartClear(deps.Billing, deps.Cart, deps.Split, logg))
				r.Post("/items", controllers.CartAddItem(deps.Resolver, deps.Backend, deps.Cart, deps.Split, deps.Billing, logg))
				r.Put("/items/{medicineId}", controllers.CartSetQuantity(deps.Cart, deps.Split, deps.Billing, logg))
				r.Delete("/items/{medicineId}", controllers.CartRemoveItem(deps.Cart, deps.Split, deps.Billing, logg))
				r.Post("/items/{medicineId}/retry", controllers.CartRetryItem(deps.Resolver, deps.Cart, deps.Split, deps.Billing, logg))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", controllers.PaymentAdd(deps.Split, logg))
				r.Put("/{entryId}", controllers.PaymentUpdate(deps.Split, logg))
				r.Delete("/{entryId}", controllers.PaymentRemove(deps.Split, logg))
			})

			r.Put("/customer", controllers.BillingSetCustomer(deps.Billing, logg))
			r.Post("/submit", controllers.BillingSubmit(deps.Billing, logg))
			r.Get("/receipt", controllers.BillingReceipt(deps.Billing, logg))

			r.Route("/scan", func(r chi.Router) {
				r.Post("/start", controllers.ScanStart(deps.Scanner, logg))
				r.Post("/stop", controllers.ScanStop(deps.Scanner, logg))
				r.Get("/status", controllers.ScanStatus(deps.Scanner))
				r.Post("/manual", controllers.ScanManual(deps.Resolver, logg))
			})

			r.Get("/medicines/search", controllers.CatalogSearch(deps.Backend, logg))
		})

		r.Route("/history", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleCashier))
			r.Get("/bills", controllers.HistoryList(deps.Backend, logg))
			r.Get("/bills/{billId}", controllers.HistoryDetail(deps.Backend, logg))
			r.Get("/bills/{billId}/pdf", controllers.HistoryPDF(deps.Backend, logg))
			r.Post("/bills/{billId}/cancel", controllers.HistoryCancel(deps.Backend, logg))
		})

		r.Route("/returns", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleCashier))
			r.Get("/", controllers.ReturnList(deps.Backend, logg))
			r.Post("/", controllers.ReturnCreate(deps.Backend, logg))
			r.Get("/{returnId}", controllers.ReturnDetail(deps.Backend, logg))
			r.Get("/bill/{billId}", controllers.ReturnsForBill(deps.Backend, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleStockKeeper, enums.RoleStockMonitor))
			r.Get("/medicines", controllers.InventoryMedicines(deps.Backend, logg))
			r.Get("/medicines/barcode/{code}", controllers.CatalogByBarcode(deps.Backend, logg))
			r.Get("/batches", controllers.InventoryBatches(deps.Backend, logg))
			r.Get("/batches/expired", controllers.InventoryExpired(deps.Backend, logg))
			r.Get("/batches/low-stock", controllers.InventoryLowStock(deps.Backend, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, enums.RoleStockKeeper))
				r.Post("/medicines", controllers.InventoryCreateMedicine(deps.Backend, logg))
				r.Put("/medicines/{medicineId}", controllers.InventoryUpdateMedicine(deps.Backend, logg))
				r.Put("/medicines/{medicineId}/status", controllers.InventoryMedicineStatus(deps.Backend, logg))
				r.Post("/batches", controllers.InventoryCreateBatch(deps.Backend, logg))
				r.Put("/batches/{batchId}", controllers.InventoryUpdateBatch(deps.Backend, logg))
				r.Put("/batches/{batchId}/stock", controllers.InventoryBatchStock(deps.Backend, logg))
				r.Delete("/batches/{batchId}", controllers.InventoryDeleteBatch(deps.Backend, logg))
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleAnalyst, enums.RoleManager))
			r.Get("/sales", controllers.ReportSales(deps.Backend, logg))
			r.Get("/gst", controllers.ReportGST(deps.Backend, logg))
			r.Get("/stock", controllers.ReportStock(deps.Backend, logg))
			r.Get("/cashier/{cashierId}", controllers.ReportCashier(deps.Backend, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, enums.RoleAdmin))
			r.Get("/users", controllers.AdminUsers(deps.Backend, logg))
			r.Put("/users/{userId}/password", controllers.AdminChangePassword(deps.Backend, logg))
			r.Put("/users/{userId}/status", controllers.AdminSetUserStatus(deps.Backend, logg))
			r.Get("/audit-logs", controllers.AdminAuditLogs(deps.Backend, logg))
			r.Get("/audit-logs/sessions", controllers.AdminSessionAudit(deps.Backend, logg))
		})
	})

	return r
}
