package handlers

import (
	"net/http"
	"strings"

	"budget-planner/src/apperr"
	"budget-planner/src/budget"
	"budget-planner/src/events"
	"budget-planner/src/logger"
	"budget-planner/src/models"
	"budget-planner/src/util"

	"github.com/go-chi/chi/v5"
)

type createTransactionRequest struct {
	Date        string  `json:"date"`
	Description *string `json:"description"`
	Amount      any     `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
}

func (req createTransactionRequest) toTransaction(userID int64) (models.Transaction, error) {
	if strings.TrimSpace(req.Date) == "" {
		return models.Transaction{}, apperr.Validation("date is required")
	}
	date, err := models.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return models.Transaction{}, apperr.Validation("date must be YYYY-MM-DD")
	}
	amount, ok := util.ValidatePositiveAmount(req.Amount)
	if !ok {
		return models.Transaction{}, apperr.Validation("amount must be a positive number with at most two decimals")
	}
	if !util.ValidateCategory(req.Category) {
		return models.Transaction{}, apperr.Validation("category is required")
	}
	// an empty description is allowed, an absent one is not
	if req.Description == nil {
		return models.Transaction{}, apperr.Validation("description is required")
	}
	if !util.ValidateDescription(*req.Description) {
		return models.Transaction{}, apperr.Validation("description is too long")
	}
	typ, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return models.Transaction{}, apperr.Validation("%s", err.Error())
	}
	return models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: strings.TrimSpace(*req.Description),
		Amount:      budget.FormatAmount(amount),
		Category:    req.Category,
		Type:        typ,
	}, nil
}

// GetTransactions lists the user's transactions by date. month and year
// narrow the list when given together; type filters by kind.
func GetTransactions(store TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		q := r.URL.Query()
		p, err := parsePeriod(q, false)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter := models.TransactionFilter{Month: p.Month, Year: p.Year}
		if raw := q.Get("type"); raw != "" {
			typ, err := models.ParseTransactionType(raw)
			if err != nil {
				writeError(w, r, apperr.Validation("%s", err.Error()))
				return
			}
			filter.Type = typ
		}

		txs, err := store.ListTransactions(r.Context(), userID, filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, txs)
	}
}

func CreateTransaction(store TransactionStore, cache DashboardCache, publisher events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req createTransactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		t, err := req.toTransaction(userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		created, err := store.CreateTransaction(r.Context(), t)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.InvalidateUser(userID)
		publish(r, publisher, events.TransactionCreated, created)

		log := logger.FromContext(r.Context())
		log.Info().Str("transaction_id", created.ID).Int64("user_id", userID).Str("type", string(created.Type)).Msg("transaction created")
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateTransactionAmount is the only edit a transaction allows.
func UpdateTransactionAmount(store TransactionStore, cache DashboardCache, publisher events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		id := chi.URLParam(r, "transaction_id")

		var req struct {
			Amount any `json:"amount"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		amount, ok := util.ValidateAmount(req.Amount)
		if !ok {
			writeError(w, r, apperr.Validation("amount must be a non-negative number with at most two decimals"))
			return
		}

		updated, err := store.UpdateTransactionAmount(r.Context(), userID, id, budget.FormatAmount(amount))
		if err != nil {
			writeError(w, r, err)
			return
		}
		cache.InvalidateUser(userID)
		publish(r, publisher, events.TransactionAmended, updated)

		writeJSON(w, http.StatusOK, updated)
	}
}

// publish never fails the request; the write already happened.
func publish(r *http.Request, publisher events.Publisher, kind events.Kind, t models.Transaction) {
	if err := publisher.PublishTransaction(r.Context(), kind, t); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("kind", string(kind)).Str("transaction_id", t.ID).Msg("failed to publish event")
	}
}
