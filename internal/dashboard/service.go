package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"carddash/internal/core"
	"carddash/internal/ledger"
)

// Overview is the dashboard's aggregate view for one owner: the account
// list with the active selection resolved, that account's balance
// history, and the first ledger page.
type Overview struct {
	Accounts []core.Account
	Active   *core.Account
	History  *HistoryReport
	Ledger   *core.TransactionPage
}

// Service composes the selector, the pager's query path, and the history
// service over the ledger ports. One instance is owned by the top-level
// composition and shared by the handlers.
type Service struct {
	accounts ledger.AccountReader
	txs      ledger.TransactionReader
	selector *AccountSelector
	history  *HistoryService
}

func NewService(accounts ledger.AccountReader, txs ledger.TransactionReader, months ledger.MonthReader, loc *time.Location) *Service {
	return &Service{
		accounts: accounts,
		txs:      txs,
		selector: NewAccountSelector(),
		history:  NewHistoryService(months, loc),
	}
}

func (s *Service) Selector() *AccountSelector { return s.selector }

func (s *Service) History() *HistoryService { return s.history }

// Overview loads the owner's accounts, resolves the active selection,
// then fetches that account's balance history and first ledger page
// concurrently. The two query families are independent; neither blocks
// the other.
func (s *Service) Overview(ctx context.Context, owner string, pageSize int) (Overview, error) {
	if err := s.selector.Load(ctx, s.accounts, owner); err != nil {
		return Overview{}, fmt.Errorf("load accounts for %s: %w", owner, err)
	}

	out := Overview{Accounts: s.selector.Accounts()}
	active, ok := s.selector.Active()
	if !ok {
		return out, nil
	}
	out.Active = &active

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := s.history.BalanceHistory(ctx, active)
		if err != nil {
			return err
		}
		out.History = &report
		return nil
	})

	g.Go(func() error {
		page, err := s.txs.LedgerPage(ctx, ledger.PageQuery{
			AccountID: active.ID,
			Page:      0,
			PageSize:  pageSize,
		})
		if err != nil {
			return err
		}
		out.Ledger = &page
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
