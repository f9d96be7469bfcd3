package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"budget-planner/src/apperr"
	"budget-planner/src/budget"
	"budget-planner/src/events"
	"budget-planner/src/logger"
	"budget-planner/src/models"

	"golang.org/x/sync/errgroup"
)

// loadDashboard serves p from the cache or builds it from the store. The
// cache generation is read before the store so a write that lands during the
// fetch keeps the result out of the cache.
func loadDashboard(ctx context.Context, store DashboardStore, cache DashboardCache, userID int64, p budget.Period) (budget.Dashboard, error) {
	if d, ok := cache.Get(userID, p); ok {
		return d, nil
	}
	gen := cache.Generation(userID)

	var (
		txs     []models.Transaction
		configs []models.BudgetConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = store.ListTransactions(gctx, userID, models.TransactionFilter{Month: p.Month, Year: p.Year})
		return err
	})
	g.Go(func() error {
		var err error
		configs, err = store.ListBudgetConfigs(gctx, userID, p.Month, p.Year)
		return err
	})
	if err := g.Wait(); err != nil {
		return budget.Dashboard{}, err
	}

	d := budget.BuildDashboard(p, txs, configs)
	cache.Set(userID, p, gen, d)
	return d, nil
}

func GetDashboard(store DashboardStore, cache DashboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		p, err := parsePeriod(r.URL.Query(), true)
		if err != nil {
			writeError(w, r, err)
			return
		}

		d, err := loadDashboard(r.Context(), store, cache, userID, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

type settleResponse struct {
	Settled     bool                `json:"settled"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Dashboard   budget.Dashboard    `json:"dashboard"`
}

// SettleCategory marks one bill, debt or saving category as paid by writing
// the missing amount as a new transaction. A category that is already met is
// left alone. The refreshed dashboard is returned either way.
func SettleCategory(store DashboardStore, cache DashboardCache, publisher events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req models.SettleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		p := budget.Period{Month: req.Month, Year: req.Year}
		if err := p.Validate(); err != nil {
			writeError(w, r, apperr.Validation("%s", err.Error()))
			return
		}
		if !req.Type.Valid() {
			_, err := models.ParseTransactionType(string(req.Type))
			writeError(w, r, apperr.Validation("%s", err.Error()))
			return
		}
		if !budget.Settleable(req.Type) {
			writeError(w, r, apperr.Validation("%s", budget.ErrNotSettleable.Error()))
			return
		}
		if strings.TrimSpace(req.Category) == "" {
			writeError(w, r, apperr.Validation("category is required"))
			return
		}

		created, settled, err := store.Settle(r.Context(), userID, p, req.Type, req.Category, now())
		if err != nil {
			if errors.Is(err, budget.ErrNotSettleable) || errors.Is(err, budget.ErrInvalidPeriod) {
				err = apperr.Validation("%s", err.Error())
			}
			writeError(w, r, err)
			return
		}

		resp := settleResponse{Settled: settled}
		if settled {
			cache.InvalidateUser(userID)
			publish(r, publisher, events.CategorySettled, created)
			resp.Transaction = &created

			log := logger.FromContext(r.Context())
			log.Info().
				Int64("user_id", userID).
				Str("category", req.Category).
				Str("amount", created.Amount).
				Msg("category settled")
		}

		resp.Dashboard, err = loadDashboard(r.Context(), store, cache, userID, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
