package storage

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside transactions.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// AccountRow mirrors the accounts table.
type AccountRow struct {
	ID           int64
	Owner        string
	Code         string
	BalanceCents int64
	CreatedAt    time.Time
}

// TransactionRow mirrors the transactions table.
type TransactionRow struct {
	ID                 int64
	SenderAccountID    int64
	RecipientAccountID int64
	Code               string
	AmountCents        int64
	CreatedAt          time.Time
	Exported           bool
}

const createAccount = `
INSERT INTO accounts (owner, code, balance_cents, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, owner, code, balance_cents, created_at
`

func (q *Queries) CreateAccount(ctx context.Context, owner, code string, balanceCents int64, createdAt time.Time) (AccountRow, error) {
	var a AccountRow
	err := q.db.QueryRowContext(ctx, createAccount, owner, code, balanceCents, createdAt).
		Scan(&a.ID, &a.Owner, &a.Code, &a.BalanceCents, &a.CreatedAt)
	return a, err
}

const getAccount = `
SELECT id, owner, code, balance_cents, created_at FROM accounts WHERE id = ?
`

func (q *Queries) GetAccount(ctx context.Context, id int64) (AccountRow, error) {
	var a AccountRow
	err := q.db.QueryRowContext(ctx, getAccount, id).
		Scan(&a.ID, &a.Owner, &a.Code, &a.BalanceCents, &a.CreatedAt)
	return a, err
}

const getAccountByCode = `
SELECT id, owner, code, balance_cents, created_at FROM accounts WHERE code = ?
`

func (q *Queries) GetAccountByCode(ctx context.Context, code string) (AccountRow, error) {
	var a AccountRow
	err := q.db.QueryRowContext(ctx, getAccountByCode, code).
		Scan(&a.ID, &a.Owner, &a.Code, &a.BalanceCents, &a.CreatedAt)
	return a, err
}

const listAccountsByOwner = `
SELECT id, owner, code, balance_cents, created_at
FROM accounts
WHERE owner = ?
ORDER BY id
`

func (q *Queries) ListAccountsByOwner(ctx context.Context, owner string) ([]AccountRow, error) {
	rows, err := q.db.QueryContext(ctx, listAccountsByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccountRow
	for rows.Next() {
		var a AccountRow
		if err := rows.Scan(&a.ID, &a.Owner, &a.Code, &a.BalanceCents, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const updateAccountBalance = `
UPDATE accounts SET balance_cents = balance_cents + ? WHERE id = ?
`

func (q *Queries) AdjustAccountBalance(ctx context.Context, id, deltaCents int64) error {
	_, err := q.db.ExecContext(ctx, updateAccountBalance, deltaCents, id)
	return err
}

const insertTransaction = `
INSERT INTO transactions (sender_account_id, recipient_account_id, code, amount_cents, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, sender_account_id, recipient_account_id, code, amount_cents, created_at, exported
`

func (q *Queries) InsertTransaction(ctx context.Context, senderID, recipientID int64, code string, amountCents int64, createdAt time.Time) (TransactionRow, error) {
	var t TransactionRow
	err := q.db.QueryRowContext(ctx, insertTransaction, senderID, recipientID, code, amountCents, createdAt).
		Scan(&t.ID, &t.SenderAccountID, &t.RecipientAccountID, &t.Code, &t.AmountCents, &t.CreatedAt, &t.Exported)
	return t, err
}

const getTransaction = `
SELECT id, sender_account_id, recipient_account_id, code, amount_cents, created_at, exported
FROM transactions WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (TransactionRow, error) {
	var t TransactionRow
	err := q.db.QueryRowContext(ctx, getTransaction, id).
		Scan(&t.ID, &t.SenderAccountID, &t.RecipientAccountID, &t.Code, &t.AmountCents, &t.CreatedAt, &t.Exported)
	return t, err
}

const countTransactions = `
SELECT COUNT(*)
FROM transactions
WHERE (sender_account_id = ?1 OR recipient_account_id = ?1)
  AND created_at >= ?2 AND created_at <= ?3
`

const listTransactionsPage = `
SELECT id, sender_account_id, recipient_account_id, code, amount_cents, created_at, exported
FROM transactions
WHERE (sender_account_id = ?1 OR recipient_account_id = ?1)
  AND created_at >= ?2 AND created_at <= ?3
ORDER BY created_at DESC, id DESC
LIMIT ?4 OFFSET ?5
`

// CountTransactions counts ledger entries for the account within the
// inclusive [lower, upper] bounds.
func (q *Queries) CountTransactions(ctx context.Context, accountID int64, lower, upper time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactions, accountID, lower, upper).Scan(&n)
	return n, err
}

func (q *Queries) ListTransactionsPage(ctx context.Context, accountID int64, lower, upper time.Time, limit, offset int) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsPage, accountID, lower, upper, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactionRows(rows)
}

const listRangeTransactions = `
SELECT id, sender_account_id, recipient_account_id, code, amount_cents, created_at, exported
FROM transactions
WHERE (sender_account_id = ?1 OR recipient_account_id = ?1)
  AND created_at >= ?2 AND created_at <= ?3
ORDER BY created_at, id
`

func (q *Queries) ListRangeTransactions(ctx context.Context, accountID int64, from, to time.Time) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listRangeTransactions, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactionRows(rows)
}

const listUnexportedTransactions = `
SELECT id, sender_account_id, recipient_account_id, code, amount_cents, created_at, exported
FROM transactions
WHERE exported = 0
ORDER BY id
LIMIT ?
`

func (q *Queries) ListUnexportedTransactions(ctx context.Context, limit int) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listUnexportedTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactionRows(rows)
}

const markTransactionExported = `
UPDATE transactions SET exported = 1 WHERE id = ?
`

func (q *Queries) MarkTransactionExported(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markTransactionExported, id)
	return err
}

func scanTransactionRows(rows *sql.Rows) ([]TransactionRow, error) {
	var out []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(&t.ID, &t.SenderAccountID, &t.RecipientAccountID, &t.Code, &t.AmountCents, &t.CreatedAt, &t.Exported); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
