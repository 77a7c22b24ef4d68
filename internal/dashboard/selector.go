// Package dashboard holds the state containers behind the account
// dashboard: the active-account selector, the keyed ledger pager, and
// the balance-history service. All state is owned explicitly by these
// containers and handed to consumers; nothing here is a package-level
// singleton.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"carddash/internal/core"
	"carddash/internal/ledger"
)

// LoadState tracks the account list's load cycle.
type LoadState int

const (
	StateLoading LoadState = iota
	StateError
	StateReady
)

var ErrNotAMember = errors.New("account is not in the current list")

// AccountSelector holds the account list and the active selection.
//
// The default rule fires exactly once: when the list first becomes
// non-empty and nothing has been chosen yet, the account with the
// highest balance becomes active (first occurrence wins ties). After
// that first pick, automatic selection never re-fires; only an explicit
// SelectActive changes the choice. The one-shot is a guarded flag, not a
// function of the list, so refetches cannot re-trigger it.
type AccountSelector struct {
	mu       sync.Mutex
	accounts []core.Account
	activeID int64
	active   bool
	chosen   bool
	state    LoadState
}

func NewAccountSelector() *AccountSelector {
	return &AccountSelector{state: StateLoading}
}

// Load fetches the owner's accounts and applies them to the selector.
func (s *AccountSelector) Load(ctx context.Context, source ledger.AccountReader, owner string) error {
	accounts, err := source.ListAccounts(ctx, owner)
	if err != nil {
		s.SetError()
		return err
	}
	s.SetAccounts(accounts)
	return nil
}

// SetAccounts applies a completed account load. The active account is
// re-resolved by id against the new list so it is always a member of the
// current collection, or none.
func (s *AccountSelector) SetAccounts(accounts []core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append([]core.Account(nil), accounts...)
	s.state = StateReady

	if s.active {
		if _, ok := s.findLocked(s.activeID); !ok {
			s.active = false
		}
	}

	if !s.chosen && len(s.accounts) > 0 {
		s.activeID = richestLocked(s.accounts).ID
		s.active = true
		s.chosen = true
	}
}

// SetError marks the load cycle as failed. No partial data is kept.
func (s *AccountSelector) SetError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = nil
	s.active = false
	s.state = StateError
}

// SelectActive explicitly picks an account by id. The pick sticks across
// refetches and suppresses the automatic rule for good.
func (s *AccountSelector) SelectActive(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(id); !ok {
		return ErrNotAMember
	}
	s.activeID = id
	s.active = true
	s.chosen = true
	return nil
}

// Active returns the active account, if any.
func (s *AccountSelector) Active() (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return core.Account{}, false
	}
	acc, ok := s.findLocked(s.activeID)
	return acc, ok
}

// Accounts returns a copy of the current list.
func (s *AccountSelector) Accounts() []core.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...)
}

func (s *AccountSelector) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AccountSelector) findLocked(id int64) (core.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

func richestLocked(accounts []core.Account) core.Account {
	best := accounts[0]
	for _, a := range accounts[1:] {
		if a.Balance.Cents > best.Balance.Cents {
			best = a
		}
	}
	return best
}
