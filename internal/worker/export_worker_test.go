package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"carddash/internal/amqp"
	"carddash/internal/core"
	"carddash/internal/export/memory"
)

type fakeRepo struct {
	mu       sync.Mutex
	txs      map[int64]core.Transaction
	accounts map[int64]core.Account
	exported map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		txs: map[int64]core.Transaction{
			1: {ID: 1, SenderAccountID: 10, RecipientAccountID: 20, Code: "t-1",
				Amount: core.Money{Cents: 5000}, CreatedAt: time.Now()},
			2: {ID: 2, SenderAccountID: 20, RecipientAccountID: 10, Code: "t-2",
				Amount: core.Money{Cents: 300}, CreatedAt: time.Now()},
		},
		accounts: map[int64]core.Account{
			10: {ID: 10, Owner: "ada", Code: "A-10"},
			20: {ID: 20, Owner: "bob", Code: "A-20"},
		},
		exported: map[int64]bool{},
	}
}

func (f *fakeRepo) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.txs[id]
	if !ok {
		return core.Transaction{}, errors.New("no such transaction")
	}
	return tx, nil
}

func (f *fakeRepo) GetAccount(_ context.Context, id int64) (core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return core.Account{}, core.ErrAccountNotFound
	}
	return acc, nil
}

func (f *fakeRepo) UnexportedTransfers(_ context.Context, limit int) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Transaction
	for id := int64(1); id <= int64(len(f.txs)) && len(out) < limit; id++ {
		if !f.exported[id] {
			out = append(out, f.txs[id])
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkExported(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exported[id] = true
	return nil
}

func TestHandleTransferRecorded(t *testing.T) {
	repo := newFakeRepo()
	store := memory.New()
	w := NewExportWorker(repo, store, 10)

	msg := amqp.NewTransferRecordedMessage(1, "t-1")
	if err := w.HandleTransferRecorded(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows := store.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 exported row, got %d", len(rows))
	}
	if rows[0].SenderCode != "A-10" || rows[0].RecipientCode != "A-20" {
		t.Fatalf("account codes not resolved: %+v", rows[0])
	}
	if !repo.exported[1] {
		t.Fatal("transfer not marked exported")
	}
}

func TestHandleTransferRecordedUnknownTransaction(t *testing.T) {
	w := NewExportWorker(newFakeRepo(), memory.New(), 10)
	msg := amqp.NewTransferRecordedMessage(99, "missing")
	if err := w.HandleTransferRecorded(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown transaction")
	}
}

func TestProcessPending(t *testing.T) {
	repo := newFakeRepo()
	store := memory.New()
	w := NewExportWorker(repo, store, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if got := len(store.Rows()); got != 2 {
		t.Fatalf("expected both transfers exported, got %d", got)
	}

	// A second sweep finds nothing left.
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if got := len(store.Rows()); got != 2 {
		t.Fatalf("sweep re-exported rows: %d", got)
	}
}
