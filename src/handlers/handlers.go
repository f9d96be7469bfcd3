// Package handlers holds the HTTP handlers. Each handler is built from the
// narrow store interfaces below so it can run against Postgres or a fake.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"budget-planner/src/apperr"
	"budget-planner/src/budget"
	"budget-planner/src/logger"
	"budget-planner/src/middleware"
	"budget-planner/src/models"
)

// now is replaced in tests.
var now = time.Now

type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error)
	UpdateUserLastLogin(ctx context.Context, userID int64) error
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
}

type TransactionStore interface {
	ListTransactions(ctx context.Context, userID int64, f models.TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateTransactionAmount(ctx context.Context, userID int64, id, amount string) (models.Transaction, error)
}

type BudgetConfigStore interface {
	ListBudgetConfigs(ctx context.Context, userID int64, month, year int) ([]models.BudgetConfig, error)
	CreateBudgetConfig(ctx context.Context, c models.BudgetConfig) (models.BudgetConfig, error)
	UpdateBudgetConfigTarget(ctx context.Context, userID, id int64, target string) (models.BudgetConfig, error)
	DeleteBudgetConfig(ctx context.Context, userID, id int64) (models.BudgetConfig, error)
}

type SettleStore interface {
	Settle(ctx context.Context, userID int64, p budget.Period, t models.TransactionType, category string, now time.Time) (models.Transaction, bool, error)
}

// DashboardStore is everything the month view reads and writes.
type DashboardStore interface {
	TransactionStore
	BudgetConfigStore
	SettleStore
}

type DashboardCache interface {
	Get(userID int64, p budget.Period) (budget.Dashboard, bool)
	Generation(userID int64) uint64
	Set(userID int64, p budget.Period, gen uint64, d budget.Dashboard) bool
	InvalidateUser(userID int64)
	Clear() int
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	middleware.WriteJSON(w, status, v)
}

// writeError maps err onto a status. Server errors are logged with their
// cause and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := apperr.Status(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}
	middleware.WriteError(w, status, msg)
}

// decodeJSON reads a request body. Numbers are kept as json.Number so
// amounts reach the parser without float rounding.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid request")
	}
	return nil
}

func currentUserID(r *http.Request) (int64, error) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return 0, apperr.ErrUnauthorized
	}
	return id, nil
}

// parsePeriod reads month and year from the query. When required is false
// both may be absent, in which case the zero Period is returned.
func parsePeriod(q url.Values, required bool) (budget.Period, error) {
	rawMonth, rawYear := q.Get("month"), q.Get("year")
	if rawMonth == "" && rawYear == "" && !required {
		return budget.Period{}, nil
	}
	if rawMonth == "" || rawYear == "" {
		return budget.Period{}, apperr.Validation("month and year are required together")
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return budget.Period{}, apperr.Validation("invalid month")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return budget.Period{}, apperr.Validation("invalid year")
	}
	p := budget.Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return budget.Period{}, apperr.Validation("%s", err.Error())
	}
	return p, nil
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s id", what)
	}
	return id, nil
}
