package api

import (
	"net/http"

	"budget-planner/src/events"
	"budget-planner/src/handlers"
	"budget-planner/src/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Store is the full set of persistence operations the API needs.
type Store interface {
	handlers.UserStore
	handlers.DashboardStore
}

type Deps struct {
	Store     Store
	Cache     handlers.DashboardCache
	Publisher events.Publisher
	Logger    zerolog.Logger

	JWTSecret      string
	AllowedOrigins []string
	DemoMode       bool
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery)
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(d.Store, d.JWTSecret))
		r.Post("/register", handlers.Register(d.Store, d.JWTSecret))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.DemoModeMiddleware(d.DemoMode)).Group(func(r chi.Router) {
			// User
			r.Get("/me", handlers.GetMe(d.Store))
			r.Post("/me/change-password", handlers.ChangePassword(d.Store))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(d.Store))
			r.Post("/transactions", handlers.CreateTransaction(d.Store, d.Cache, d.Publisher))
			r.Patch("/transactions/{transaction_id}", handlers.UpdateTransactionAmount(d.Store, d.Cache, d.Publisher))

			// Budget configs
			r.Get("/budget-config", handlers.GetBudgetConfigs(d.Store))
			r.Post("/budget-config", handlers.CreateBudgetConfig(d.Store, d.Cache))
			r.Put("/budget-config/{budget_config_id}", handlers.UpdateBudgetConfig(d.Store, d.Cache))
			r.Delete("/budget-config/{budget_config_id}", handlers.DeleteBudgetConfig(d.Store, d.Cache))

			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(d.Store, d.Cache))
			r.Post("/dashboard/settle", handlers.SettleCategory(d.Store, d.Cache, d.Publisher))
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.SuperAdminMiddleware).Group(func(r chi.Router) {
			r.Post("/admin/cache/clear", handlers.ClearCache(d.Cache))
		})
	})

	return r
}
