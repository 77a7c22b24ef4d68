package dashboard

import (
	"context"
	"errors"
	"testing"

	"carddash/internal/core"
)

func accounts(balances ...int64) []core.Account {
	out := make([]core.Account, len(balances))
	for i, b := range balances {
		out[i] = core.Account{ID: int64(i + 1), Owner: "ada", Code: "acc", Balance: core.Money{Cents: b}}
	}
	return out
}

func TestDefaultSelectionPicksMaxBalance(t *testing.T) {
	s := NewAccountSelector()
	s.SetAccounts(accounts(10000, 50000, 50000))

	active, ok := s.Active()
	if !ok {
		t.Fatal("expected an active account")
	}
	// Ties break on first occurrence in list order.
	if active.ID != 2 {
		t.Fatalf("expected account 2 active, got %d", active.ID)
	}
	if s.State() != StateReady {
		t.Fatalf("expected StateReady, got %v", s.State())
	}
}

func TestDefaultSelectionFiresOnce(t *testing.T) {
	s := NewAccountSelector()
	s.SetAccounts(accounts(10000, 50000, 50000))

	// A refetch with a new richest account must not move the selection.
	refetched := accounts(10000, 50000, 50000)
	refetched[0].Balance = core.Money{Cents: 99999}
	s.SetAccounts(refetched)

	active, _ := s.Active()
	if active.ID != 2 {
		t.Fatalf("automatic rule re-fired: active is %d", active.ID)
	}
}

func TestExplicitSelectionSticksAcrossRefetch(t *testing.T) {
	s := NewAccountSelector()
	list := accounts(10000, 50000, 50000)
	s.SetAccounts(list)

	if err := s.SelectActive(1); err != nil {
		t.Fatalf("explicit select failed: %v", err)
	}

	// Refetch with identical contents: the explicit pick persists.
	s.SetAccounts(accounts(10000, 50000, 50000))
	active, ok := s.Active()
	if !ok || active.ID != 1 {
		t.Fatalf("explicit selection lost: %+v ok=%v", active, ok)
	}
}

func TestSelectActiveRejectsNonMember(t *testing.T) {
	s := NewAccountSelector()
	s.SetAccounts(accounts(100))
	if err := s.SelectActive(42); !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestActiveDropsWhenRemovedFromList(t *testing.T) {
	s := NewAccountSelector()
	s.SetAccounts(accounts(100, 200))

	active, _ := s.Active()
	if active.ID != 2 {
		t.Fatalf("expected account 2 active, got %d", active.ID)
	}

	// Account 2 disappears; active must become none, and the automatic
	// rule must not pick a replacement.
	s.SetAccounts([]core.Account{{ID: 1, Owner: "ada", Code: "a", Balance: core.Money{Cents: 100}}})
	if _, ok := s.Active(); ok {
		t.Fatal("active should be none after its account vanished")
	}
}

func TestEmptyAndErrorStates(t *testing.T) {
	s := NewAccountSelector()
	if s.State() != StateLoading {
		t.Fatalf("fresh selector should be loading, got %v", s.State())
	}
	if _, ok := s.Active(); ok {
		t.Fatal("no active account before any load")
	}

	s.SetError()
	if s.State() != StateError {
		t.Fatalf("expected StateError, got %v", s.State())
	}
	if _, ok := s.Active(); ok {
		t.Fatal("no active account after a failed load")
	}

	s.SetAccounts(nil)
	if s.State() != StateReady {
		t.Fatalf("expected StateReady, got %v", s.State())
	}
	if _, ok := s.Active(); ok {
		t.Fatal("empty list cannot produce an active account")
	}
}

type failingAccountReader struct{}

func (failingAccountReader) ListAccounts(context.Context, string) ([]core.Account, error) {
	return nil, errors.New("boom")
}

func (failingAccountReader) GetAccount(context.Context, int64) (core.Account, error) {
	return core.Account{}, errors.New("boom")
}

func TestLoadFailureSetsErrorState(t *testing.T) {
	s := NewAccountSelector()
	if err := s.Load(context.Background(), failingAccountReader{}, "ada"); err == nil {
		t.Fatal("expected load error")
	}
	if s.State() != StateError {
		t.Fatalf("expected StateError, got %v", s.State())
	}
}
