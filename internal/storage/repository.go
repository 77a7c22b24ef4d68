package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"carddash/internal/core"
	"carddash/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the ledger source. It implements every port in
// internal/ledger plus the export bookkeeping the worker needs.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var (
	_ ledger.AccountReader     = (*SQLiteRepository)(nil)
	_ ledger.AccountWriter     = (*SQLiteRepository)(nil)
	_ ledger.TransactionReader = (*SQLiteRepository)(nil)
	_ ledger.MonthReader       = (*SQLiteRepository)(nil)
	_ ledger.Transferer        = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListAccounts implements ledger.AccountReader.
func (r *SQLiteRepository) ListAccounts(ctx context.Context, owner string) ([]core.Account, error) {
	rows, err := r.queries.ListAccountsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts for %s: %w", owner, err)
	}
	accounts := make([]core.Account, len(rows))
	for i, a := range rows {
		accounts[i] = accountFromRow(a)
	}
	return accounts, nil
}

// GetAccount implements ledger.AccountReader.
func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	row, err := r.queries.GetAccount(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.ErrAccountNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return accountFromRow(row), nil
}

// AddAccount implements ledger.AccountWriter. New accounts start empty.
func (r *SQLiteRepository) AddAccount(ctx context.Context, owner, code string) (core.Account, error) {
	acc := core.Account{Owner: owner, Code: code}
	if err := acc.Validate(); err != nil {
		return core.Account{}, err
	}

	row, err := r.queries.CreateAccount(ctx, owner, code, 0, time.Now().UTC())
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "Account created", "id", row.ID, "owner", owner, "code", code)
	return accountFromRow(row), nil
}

// LedgerPage implements ledger.TransactionReader.
func (r *SQLiteRepository) LedgerPage(ctx context.Context, q ledger.PageQuery) (core.TransactionPage, error) {
	if q.Page < 0 || q.PageSize < 1 {
		return core.TransactionPage{}, fmt.Errorf("invalid page query: page=%d size=%d", q.Page, q.PageSize)
	}

	lower := q.LowerBound
	if lower.IsZero() {
		lower = time.Unix(0, 0)
	}
	upper := q.UpperBound
	if upper.IsZero() {
		upper = time.Now()
	}
	lower, upper = lower.UTC(), upper.UTC()

	total, err := r.queries.CountTransactions(ctx, q.AccountID, lower, upper)
	if err != nil {
		return core.TransactionPage{}, fmt.Errorf("count transactions: %w", err)
	}

	rows, err := r.queries.ListTransactionsPage(ctx, q.AccountID, lower, upper, q.PageSize, q.Page*q.PageSize)
	if err != nil {
		return core.TransactionPage{}, fmt.Errorf("list transactions page: %w", err)
	}

	page := core.TransactionPage{
		Transactions: make([]core.Transaction, len(rows)),
		Metadata:     core.NewPageMetadata(total, q.Page, q.PageSize),
	}
	for i, t := range rows {
		page.Transactions[i] = transactionFromRow(t)
	}
	return page, nil
}

// MonthTransactions implements ledger.MonthReader. Ascending by time, no
// paging: the reconstruction needs the whole window at once.
func (r *SQLiteRepository) MonthTransactions(ctx context.Context, accountID int64, from, to time.Time) ([]core.Transaction, error) {
	rows, err := r.queries.ListRangeTransactions(ctx, accountID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("list month transactions: %w", err)
	}
	txs := make([]core.Transaction, len(rows))
	for i, t := range rows {
		txs[i] = transactionFromRow(t)
	}
	return txs, nil
}

// Transfer implements ledger.Transferer. Both balance updates and the
// ledger entry commit atomically or not at all.
func (r *SQLiteRepository) Transfer(ctx context.Context, fromCode, toCode string, amount core.Money) (core.Transaction, error) {
	if err := amount.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if fromCode == toCode {
		return core.Transaction{}, core.ErrSameAccount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	sender, err := q.GetAccountByCode(ctx, fromCode)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("sender %s: %w", fromCode, core.ErrAccountNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load sender: %w", err)
	}

	recipient, err := q.GetAccountByCode(ctx, toCode)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("recipient %s: %w", toCode, core.ErrAccountNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load recipient: %w", err)
	}

	if sender.BalanceCents < amount.Cents {
		return core.Transaction{}, core.ErrInsufficientBalance
	}

	if err := q.AdjustAccountBalance(ctx, sender.ID, -amount.Cents); err != nil {
		return core.Transaction{}, fmt.Errorf("debit sender: %w", err)
	}
	if err := q.AdjustAccountBalance(ctx, recipient.ID, amount.Cents); err != nil {
		return core.Transaction{}, fmt.Errorf("credit recipient: %w", err)
	}

	row, err := q.InsertTransaction(ctx, sender.ID, recipient.ID, uuid.NewString(), amount.Cents, time.Now().UTC())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit transfer: %w", err)
	}

	slog.InfoContext(ctx, "Transfer recorded",
		"transaction_id", row.ID,
		"code", row.Code,
		"amount_cents", row.AmountCents,
		"sender", sender.ID,
		"recipient", recipient.ID)

	return transactionFromRow(row), nil
}

// GetTransaction returns a single ledger entry. Used by the export worker.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return transactionFromRow(row), nil
}

// UnexportedTransfers lists ledger entries not yet exported as statement
// rows, oldest first.
func (r *SQLiteRepository) UnexportedTransfers(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.ListUnexportedTransactions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list unexported transactions: %w", err)
	}
	txs := make([]core.Transaction, len(rows))
	for i, t := range rows {
		txs[i] = transactionFromRow(t)
	}
	return txs, nil
}

// MarkExported flags a ledger entry as exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.queries.MarkTransactionExported(ctx, id); err != nil {
		return fmt.Errorf("mark transaction exported: %w", err)
	}
	return nil
}

func accountFromRow(a AccountRow) core.Account {
	return core.Account{
		ID:      a.ID,
		Owner:   a.Owner,
		Code:    a.Code,
		Balance: core.Money{Cents: a.BalanceCents},
	}
}

func transactionFromRow(t TransactionRow) core.Transaction {
	return core.Transaction{
		ID:                 t.ID,
		SenderAccountID:    t.SenderAccountID,
		RecipientAccountID: t.RecipientAccountID,
		Code:               t.Code,
		Amount:             core.Money{Cents: t.AmountCents},
		CreatedAt:          t.CreatedAt,
	}
}
