package handlers

import (
	"net/http"

	"budget-planner/src/apperr"
	"budget-planner/src/budget"
	"budget-planner/src/logger"
	"budget-planner/src/models"
	"budget-planner/src/util"

	"github.com/go-chi/chi/v5"
)

const targetRule = "target_amount must be a non-negative number with at most two decimals"

// GetBudgetConfigs lists one month of configs ordered by type then category.
func GetBudgetConfigs(store BudgetConfigStore) http.HandlerFunc {
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
		configs, err := store.ListBudgetConfigs(r.Context(), userID, p.Month, p.Year)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, configs)
	}
}

func CreateBudgetConfig(store BudgetConfigStore, cache DashboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req struct {
			Month        int    `json:"month"`
			Year         int    `json:"year"`
			Category     string `json:"category"`
			TargetAmount any    `json:"target_amount"`
			Type         string `json:"type"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		p := budget.Period{Month: req.Month, Year: req.Year}
		if err := p.Validate(); err != nil {
			writeError(w, r, apperr.Validation("%s", err.Error()))
			return
		}
		if !util.ValidateCategory(req.Category) {
			writeError(w, r, apperr.Validation("category is required"))
			return
		}
		target, ok := util.ValidateAmount(req.TargetAmount)
		if !ok {
			writeError(w, r, apperr.Validation(targetRule))
			return
		}
		typ, err := models.ParseTransactionType(req.Type)
		if err != nil {
			writeError(w, r, apperr.Validation("%s", err.Error()))
			return
		}

		created, err := store.CreateBudgetConfig(r.Context(), models.BudgetConfig{
			UserID:       userID,
			Month:        p.Month,
			Year:         p.Year,
			Category:     req.Category,
			TargetAmount: budget.FormatAmount(target),
			Type:         typ,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.InvalidateUser(userID)

		log := logger.FromContext(r.Context())
		log.Info().Int64("budget_config_id", created.ID).Int64("user_id", userID).Str("category", created.Category).Msg("budget config created")
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateBudgetConfig(store BudgetConfigStore, cache DashboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := parseID(chi.URLParam(r, "budget_config_id"), "budget config")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req struct {
			TargetAmount any `json:"target_amount"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		target, ok := util.ValidateAmount(req.TargetAmount)
		if !ok {
			writeError(w, r, apperr.Validation(targetRule))
			return
		}

		updated, err := store.UpdateBudgetConfigTarget(r.Context(), userID, id, budget.FormatAmount(target))
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.InvalidateUser(userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudgetConfig(store BudgetConfigStore, cache DashboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id, err := parseID(chi.URLParam(r, "budget_config_id"), "budget config")
		if err != nil {
			writeError(w, r, err)
			return
		}

		deleted, err := store.DeleteBudgetConfig(r.Context(), userID, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.InvalidateUser(userID)

		log := logger.FromContext(r.Context())
		log.Info().Int64("budget_config_id", deleted.ID).Int64("user_id", userID).Msg("budget config deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
