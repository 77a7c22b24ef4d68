package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"carddash/internal/core"
	"carddash/internal/ledger"
)

// HistoryReport is everything the balance-history chart needs: the
// reconstructed series, the month's full calendar for the x axis, the
// padded y domain, and the header's deviation figures.
type HistoryReport struct {
	AccountID           int64
	Balance             core.Money
	Series              []core.DailyBalance
	Calendar            []string
	Domain              core.Domain
	StartBalance        core.Money
	DeviationValue      core.Money
	DeviationPercentage decimal.Decimal
}

// HistoryService reconstructs the current month's balance history for an
// account. Its month query is keyed and cached separately from the
// pager's paged queries even when the parameters coincide: the
// reconstruction needs an atomic snapshot of the month, the pager only
// flips pages.
type HistoryService struct {
	months ledger.MonthReader
	loc    *time.Location
	now    func() time.Time
}

func NewHistoryService(months ledger.MonthReader, loc *time.Location) *HistoryService {
	return &HistoryService{months: months, loc: loc, now: time.Now}
}

// BalanceHistory fetches the month's transactions and reconstructs the
// day-by-day series for the account.
func (s *HistoryService) BalanceHistory(ctx context.Context, account core.Account) (HistoryReport, error) {
	now := s.now().In(s.loc)
	from, to := core.MonthBounds(now, s.loc)

	txs, err := s.months.MonthTransactions(ctx, account.ID, from, to)
	if err != nil {
		return HistoryReport{}, fmt.Errorf("load month transactions for account %d: %w", account.ID, err)
	}

	calendar := core.MonthCalendar(now.Year(), now.Month(), s.loc)
	series, err := core.Reconstruct(txs, account.ID, account.Balance, now.Day(), calendar, s.loc)
	if err != nil {
		return HistoryReport{}, fmt.Errorf("reconstruct balance history: %w", err)
	}

	values := make([]core.Money, len(series))
	for i, db := range series {
		values[i] = db.Balance
	}

	report := HistoryReport{
		AccountID: account.ID,
		Balance:   account.Balance,
		Series:    series,
		Calendar:  calendar,
		Domain:    core.Scale(values),
	}

	report.StartBalance = series[0].Balance
	report.DeviationValue = account.Balance.Sub(report.StartBalance)
	if report.StartBalance.Cents != 0 {
		report.DeviationPercentage = report.DeviationValue.Decimal().
			Mul(decimal.NewFromInt(100)).
			Div(report.StartBalance.Decimal()).
			Round(2)
	}

	return report, nil
}
