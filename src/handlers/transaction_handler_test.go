package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"budget-planner/src/events"
	"budget-planner/src/models"

	"github.com/go-chi/chi/v5"
)

func TestCreateTransaction(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()
	pub := &recordingPublisher{}
	h := CreateTransaction(store, cache, pub)

	body := `{"date":"2025-03-22","description":"Weekly shopping","amount":"1,234.5","category":"Groceries","type":"EXPENSE"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authed(http.MethodPost, "/api/transactions", body, 1))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Amount != "1234.50" || created.UserID != 1 || created.Date.String() != "2025-03-22" {
		t.Errorf("unexpected transaction %+v", created)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 1 {
		t.Errorf("expected the owner's dashboards to be invalidated, got %v", cache.invalidated)
	}
	if len(pub.kinds) != 1 || pub.kinds[0] != events.TransactionCreated {
		t.Errorf("unexpected events %v", pub.kinds)
	}
}

func TestCreateTransactionNumericAmount(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateTransaction(newMemStore(), newMemCache(), &recordingPublisher{}).ServeHTTP(rec,
		authed(http.MethodPost, "/api/transactions", `{"date":"2025-03-01","description":"","amount":0.1,"category":"Salary","type":"INCOME"}`, 1))

	var created models.Transaction
	json.NewDecoder(rec.Body).Decode(&created)
	if rec.Code != http.StatusCreated || created.Amount != "0.10" || created.Description != "" {
		t.Fatalf("unexpected response %d %+v", rec.Code, created)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing date", `{"description":"","amount":"10","category":"Groceries","type":"EXPENSE"}`},
		{"bad date", `{"date":"22/03/2025","description":"","amount":"10","category":"Groceries","type":"EXPENSE"}`},
		{"negative amount", `{"date":"2025-03-22","description":"","amount":"-10","category":"Groceries","type":"EXPENSE"}`},
		{"unparsable amount", `{"date":"2025-03-22","description":"","amount":"1.2.3","category":"Groceries","type":"EXPENSE"}`},
		{"missing amount", `{"date":"2025-03-22","description":"","category":"Groceries","type":"EXPENSE"}`},
		{"blank category", `{"date":"2025-03-22","description":"","amount":"10","category":"  ","type":"EXPENSE"}`},
		{"unknown type", `{"date":"2025-03-22","description":"","amount":"10","category":"Groceries","type":"expense"}`},
		{"zero amount", `{"date":"2025-03-22","description":"","amount":"0","category":"Groceries","type":"EXPENSE"}`},
		{"zero numeric amount", `{"date":"2025-03-22","description":"","amount":0,"category":"Groceries","type":"EXPENSE"}`},
		{"missing description", `{"date":"2025-03-22","amount":"10","category":"Groceries","type":"EXPENSE"}`},
		{"null description", `{"date":"2025-03-22","description":null,"amount":"10","category":"Groceries","type":"EXPENSE"}`},
		{"not json", `amount=10`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			rec := httptest.NewRecorder()
			CreateTransaction(store, newMemCache(), &recordingPublisher{}).ServeHTTP(rec,
				authed(http.MethodPost, "/api/transactions", tt.body, 1))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if len(store.txs) != 0 {
				t.Fatal("nothing should be written")
			}
		})
	}
}

func TestGetTransactions(t *testing.T) {
	store := newMemStore()
	seedMarch(store, 1)
	seedMarch(store, 2)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"all", "/api/transactions", 4},
		{"month", "/api/transactions?month=3&year=2025", 4},
		{"other month", "/api/transactions?month=4&year=2025", 0},
		{"by type", "/api/transactions?type=BILL", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			GetTransactions(store).ServeHTTP(rec, authed(http.MethodGet, tt.target, "", 1))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var txs []models.Transaction
			json.NewDecoder(rec.Body).Decode(&txs)
			if len(txs) != tt.want {
				t.Fatalf("got %d transactions, want %d", len(txs), tt.want)
			}
			for i := 1; i < len(txs); i++ {
				if txs[i].Date.Before(txs[i-1].Date.Time) {
					t.Fatal("transactions must be in date order")
				}
			}
		})
	}
}

func TestGetTransactionsBadFilter(t *testing.T) {
	for _, target := range []string{"/api/transactions?type=RENT", "/api/transactions?year=2025"} {
		rec := httptest.NewRecorder()
		GetTransactions(newMemStore()).ServeHTTP(rec, authed(http.MethodGet, target, "", 1))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func amendRouter(store *memStore, cache *memCache, pub *recordingPublisher) http.Handler {
	r := chi.NewRouter()
	r.Patch("/api/transactions/{transaction_id}", UpdateTransactionAmount(store, cache, pub))
	return r
}

func TestUpdateTransactionAmount(t *testing.T) {
	store := newMemStore()
	seedMarch(store, 1)
	seedMarch(store, 2)
	cache := newMemCache()
	pub := &recordingPublisher{}
	h := amendRouter(store, cache, pub)

	// tx-2 is user 1's Internet bill, tx-6 is user 2's
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authed(http.MethodPatch, "/api/transactions/tx-2", `{"amount":"70"}`, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Transaction
	json.NewDecoder(rec.Body).Decode(&updated)
	if updated.Amount != "70.00" || updated.Category != "Internet" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if len(pub.kinds) != 1 || pub.kinds[0] != events.TransactionAmended {
		t.Errorf("unexpected events %v", pub.kinds)
	}

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"someone else's", "/api/transactions/tx-6", `{"amount":"70"}`, http.StatusNotFound},
		{"missing", "/api/transactions/tx-99", `{"amount":"70"}`, http.StatusNotFound},
		{"bad amount", "/api/transactions/tx-2", `{"amount":"seventy"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, authed(http.MethodPatch, tt.target, tt.body, 1))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if store.txs[5].Amount != "65.00" {
		t.Fatalf("other user's transaction changed: %+v", store.txs[5])
	}
}
