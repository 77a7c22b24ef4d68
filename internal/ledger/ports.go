// Package ledger defines the ports the dashboard consumes from the
// transaction store. The boundary is a data contract, not a wire
// protocol: the SQLite repository implements it today, anything with the
// same shape could tomorrow.
package ledger

import (
	"context"
	"time"

	"carddash/internal/core"
)

// PageQuery keys a paged ledger request. Bounds are optional; a zero
// UpperBound means "now" and a zero LowerBound means unbounded.
type PageQuery struct {
	AccountID  int64
	Page       int
	PageSize   int
	LowerBound time.Time
	UpperBound time.Time
}

type (
	AccountReader interface {
		// ListAccounts returns every account owned by the given user.
		ListAccounts(ctx context.Context, owner string) ([]core.Account, error)
		GetAccount(ctx context.Context, id int64) (core.Account, error)
	}

	AccountWriter interface {
		AddAccount(ctx context.Context, owner, code string) (core.Account, error)
	}

	// TransactionReader serves the paged ledger table.
	TransactionReader interface {
		LedgerPage(ctx context.Context, q PageQuery) (core.TransactionPage, error)
	}

	// MonthReader serves the balance reconstruction. It returns the full
	// transaction set for the range in one call: the reconstruction needs
	// an atomic snapshot of the month, not incremental pages.
	MonthReader interface {
		MonthTransactions(ctx context.Context, accountID int64, from, to time.Time) ([]core.Transaction, error)
	}

	// Transferer moves funds between two accounts by code and records
	// the resulting ledger entry.
	Transferer interface {
		Transfer(ctx context.Context, fromCode, toCode string, amount core.Money) (core.Transaction, error)
	}
)
