package dashboard

import (
	"context"
	"testing"
	"time"

	"carddash/internal/core"
)

type fakeAccountReader struct {
	accounts []core.Account
}

func (f *fakeAccountReader) ListAccounts(context.Context, string) ([]core.Account, error) {
	return append([]core.Account(nil), f.accounts...), nil
}

func (f *fakeAccountReader) GetAccount(_ context.Context, id int64) (core.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Account{}, core.ErrAccountNotFound
}

func TestOverviewAggregatesBothQueryFamilies(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	reader := &fakeAccountReader{accounts: []core.Account{
		{ID: 1, Owner: "ada", Code: "A-1", Balance: core.Money{Cents: 10000}},
		{ID: 2, Owner: "ada", Code: "A-2", Balance: core.Money{Cents: 90000}},
	}}
	txs := newFakeLedger(3)
	months := &fakeMonthReader{}

	svc := NewService(reader, txs, months, loc)
	svc.history.now = func() time.Time {
		return time.Date(2025, time.March, 4, 9, 0, 0, 0, loc)
	}

	ov, err := svc.Overview(context.Background(), "ada", 20)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if len(ov.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(ov.Accounts))
	}
	if ov.Active == nil || ov.Active.ID != 2 {
		t.Fatalf("expected richest account active, got %+v", ov.Active)
	}
	if ov.History == nil || len(ov.History.Series) != 4 {
		t.Fatalf("expected 4-day history, got %+v", ov.History)
	}
	if ov.Ledger == nil || len(ov.Ledger.Transactions) != 3 {
		t.Fatalf("expected first ledger page of 3, got %+v", ov.Ledger)
	}
}

func TestOverviewWithNoAccounts(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	svc := NewService(&fakeAccountReader{}, newFakeLedger(0), &fakeMonthReader{}, loc)

	ov, err := svc.Overview(context.Background(), "nobody", 20)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.Active != nil || ov.History != nil || ov.Ledger != nil {
		t.Fatalf("empty owner should produce an empty overview, got %+v", ov)
	}
}
