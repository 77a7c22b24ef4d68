package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Account is a card account with its authoritative current balance.
	// The balance is maintained by the transfer path; the dashboard only
	// explains its recent history.
	Account struct {
		ID      int64
		Owner   string
		Code    string
		Balance Money
	}

	// Transaction is an immutable ledger entry. The amount is always
	// positive; direction is implied by which side the account under
	// study sits on, never encoded on the record.
	Transaction struct {
		ID                 int64
		SenderAccountID    int64
		RecipientAccountID int64
		Code               string
		Amount             Money
		CreatedAt          time.Time
	}

	// DailyBalance is the reconstructed end-of-day balance for one
	// calendar day of the current month. Derived, never persisted.
	DailyBalance struct {
		Day     string
		Balance Money
	}
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrEmptyOwner            = errors.New("empty owner")
	ErrEmptyCode             = errors.New("empty account code")
	ErrSameAccount           = errors.New("sender and recipient are the same account")
	ErrUnrelatedTransaction  = errors.New("transaction does not involve the account")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidReconstruction = errors.New("invalid reconstruction input")
)

func (a Account) Validate() error {
	if strings.TrimSpace(a.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(a.Code) == "" {
		return ErrEmptyCode
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.SenderAccountID == t.RecipientAccountID {
		return ErrSameAccount
	}
	if t.CreatedAt.IsZero() {
		return errors.New("transaction timestamp cannot be zero")
	}
	return nil
}

// SignedDelta returns the directional effect of the transaction on the
// given account: -amount when the account is the sender, +amount when it
// is the recipient. A transaction that involves neither side is a
// contract violation and fails loudly rather than degrading to zero.
func SignedDelta(t Transaction, accountID int64) (Money, error) {
	switch accountID {
	case t.SenderAccountID:
		return Money{Cents: -t.Amount.Cents}, nil
	case t.RecipientAccountID:
		return t.Amount, nil
	}
	return Money{}, ErrUnrelatedTransaction
}
