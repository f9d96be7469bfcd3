package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"budget-planner/src/apperr"
	"budget-planner/src/budget"
	"budget-planner/src/events"
	"budget-planner/src/logger"
	"budget-planner/src/middleware"
	"budget-planner/src/models"
)

// memStore is an in-memory stand-in for the Postgres store.
type memStore struct {
	mu           sync.Mutex
	users        map[int64]*models.User
	txs          []models.Transaction
	configs      []models.BudgetConfig
	nextTxID     int
	nextConfigID int64
	listCalls    int
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*models.User)}
}

func (s *memStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) findUser(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *memStore) CreateUser(_ context.Context, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == req.Username || u.Email == req.Email {
			return nil, apperr.Conflict("email or username already exists")
		}
	}
	id := int64(len(s.users) + 1)
	s.users[id] = &models.User{
		ID:           id,
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: []byte(hashedPassword),
	}
	return &models.RegisterResponse{ID: id, Username: req.Username, Email: req.Email}, nil
}

func (s *memStore) UpdateUserLastLogin(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		t := time.Now()
		u.LastLogin = &t
	}
	return nil
}

func (s *memStore) UpdateUserPassword(_ context.Context, userID int64, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperr.NotFound("user")
	}
	u.PasswordHash = []byte(hashedPassword)
	return nil
}

func (s *memStore) listTransactions(userID int64, f models.TransactionFilter) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range s.txs {
		if t.UserID != userID {
			continue
		}
		if f.Month != 0 && f.Year != 0 && (int(t.Date.Month()) != f.Month || t.Date.Year() != f.Year) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

func (s *memStore) ListTransactions(_ context.Context, userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return s.listTransactions(userID, f), nil
}

func (s *memStore) createTransaction(t models.Transaction) models.Transaction {
	s.nextTxID++
	t.ID = fmt.Sprintf("tx-%d", s.nextTxID)
	s.txs = append(s.txs, t)
	return t
}

func (s *memStore) CreateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTransaction(t), nil
}

func (s *memStore) UpdateTransactionAmount(_ context.Context, userID int64, id, amount string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id && s.txs[i].UserID == userID {
			s.txs[i].Amount = amount
			return s.txs[i], nil
		}
	}
	return models.Transaction{}, apperr.NotFound("transaction")
}

func (s *memStore) listConfigs(userID int64, month, year int) []models.BudgetConfig {
	out := []models.BudgetConfig{}
	for _, c := range s.configs {
		if c.UserID == userID && c.Month == month && c.Year == year {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (s *memStore) ListBudgetConfigs(_ context.Context, userID int64, month, year int) ([]models.BudgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listConfigs(userID, month, year), nil
}

func (s *memStore) CreateBudgetConfig(_ context.Context, c models.BudgetConfig) (models.BudgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.configs {
		if existing.UserID == c.UserID && existing.Month == c.Month && existing.Year == c.Year &&
			existing.Category == c.Category && existing.Type == c.Type {
			return models.BudgetConfig{}, apperr.Conflict("budget config already exists")
		}
	}
	s.nextConfigID++
	c.ID = s.nextConfigID
	s.configs = append(s.configs, c)
	return c, nil
}

func (s *memStore) UpdateBudgetConfigTarget(_ context.Context, userID, id int64, target string) (models.BudgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.configs {
		if s.configs[i].ID == id && s.configs[i].UserID == userID {
			s.configs[i].TargetAmount = target
			return s.configs[i], nil
		}
	}
	return models.BudgetConfig{}, apperr.NotFound("budget config")
}

func (s *memStore) DeleteBudgetConfig(_ context.Context, userID, id int64) (models.BudgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.configs {
		if c.ID == id && c.UserID == userID {
			s.configs = append(s.configs[:i], s.configs[i+1:]...)
			return c, nil
		}
	}
	return models.BudgetConfig{}, apperr.NotFound("budget config")
}

func (s *memStore) Settle(_ context.Context, userID int64, p budget.Period, t models.TransactionType, category string, now time.Time) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	configs := s.listConfigs(userID, p.Month, p.Year)
	txs := s.listTransactions(userID, models.TransactionFilter{Month: p.Month, Year: p.Year, Type: t})
	line, ok := budget.FindCategoryLine(configs, txs, t, category)
	if !ok {
		return models.Transaction{}, false, apperr.NotFound("budget config")
	}
	settlement, needed, err := budget.Settle(line, p, now)
	if err != nil || !needed {
		return models.Transaction{}, false, err
	}
	settlement.UserID = userID
	return s.createTransaction(settlement), true, nil
}

// memCache counts hits so tests can tell a cached read from a fresh one.
type memCache struct {
	mu          sync.Mutex
	entries     map[string]budget.Dashboard
	gens        map[int64]uint64
	invalidated []int64
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]budget.Dashboard), gens: make(map[int64]uint64)}
}

func cacheKey(userID int64, p budget.Period) string {
	return fmt.Sprintf("%d:%d-%d", userID, p.Year, p.Month)
}

func (c *memCache) Get(userID int64, p budget.Period) (budget.Dashboard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[cacheKey(userID, p)]
	return d, ok
}

func (c *memCache) Generation(userID int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID]
}

func (c *memCache) Set(userID int64, p budget.Period, gen uint64, d budget.Dashboard) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return false
	}
	c.entries[cacheKey(userID, p)] = d
	return true
}

func (c *memCache) InvalidateUser(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := fmt.Sprintf("%d:", userID)
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.gens[userID]++
	c.invalidated = append(c.invalidated, userID)
}

func (c *memCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]budget.Dashboard)
	return n
}

type recordingPublisher struct {
	mu    sync.Mutex
	kinds []events.Kind
}

func (p *recordingPublisher) PublishTransaction(_ context.Context, kind events.Kind, _ models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
	return nil
}

// fixClock pins now for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

// authed builds a request as user userID, with a silent logger attached.
func authed(method, target string, body string, userID int64) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	ctx := logger.WithContext(req.Context(), logger.NewWithWriter(io.Discard))
	if userID != 0 {
		ctx = middleware.WithClaims(ctx, &middleware.Claims{UserID: userID, Username: "alice"})
	}
	return req.WithContext(ctx)
}

func seedMarch(s *memStore, userID int64) {
	date := func(day int) models.Date { return models.NewDate(2025, time.March, day) }
	for _, c := range []models.BudgetConfig{
		{Category: "Salary", TargetAmount: "6000.00", Type: models.Income},
		{Category: "Internet", TargetAmount: "120.00", Type: models.Bill},
		{Category: "Cellphone", TargetAmount: "100.00", Type: models.Bill},
		{Category: "Account A", TargetAmount: "800.00", Type: models.Saving},
		{Category: "Groceries", TargetAmount: "600.00", Type: models.Expense},
	} {
		c.UserID, c.Month, c.Year = userID, 3, 2025
		s.CreateBudgetConfig(context.Background(), c)
	}
	for _, t := range []models.Transaction{
		{Date: date(1), Amount: "5800.00", Category: "Salary", Type: models.Income},
		{Date: date(15), Amount: "65.00", Category: "Internet", Type: models.Bill},
		{Date: date(1), Amount: "800.00", Category: "Account A", Type: models.Saving},
		{Date: date(2), Amount: "80.00", Category: "Groceries", Type: models.Expense},
	} {
		t.UserID = userID
		s.CreateTransaction(context.Background(), t)
	}
}
