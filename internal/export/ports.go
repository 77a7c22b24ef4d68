// Package export defines the outbound port for statement export and the
// row shape written through it.
package export

import (
	"context"
	"time"

	"carddash/internal/core"
)

// StatementRow is one exported ledger entry, resolved to account codes.
type StatementRow struct {
	Date          time.Time
	Code          string
	SenderCode    string
	RecipientCode string
	Amount        core.Money
}

// StatementWriter appends statement rows to an export backend.
type StatementWriter interface {
	Append(ctx context.Context, row StatementRow) (rowRef string, err error)
}
