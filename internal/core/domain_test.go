package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		SenderAccountID:    1,
		RecipientAccountID: 2,
		Amount:             Money{Cents: 100},
		CreatedAt:          time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	zeroAmount := valid
	zeroAmount.Amount = Money{}
	if err := zeroAmount.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}

	selfTransfer := valid
	selfTransfer.RecipientAccountID = selfTransfer.SenderAccountID
	if err := selfTransfer.Validate(); !errors.Is(err, ErrSameAccount) {
		t.Errorf("self transfer: expected ErrSameAccount, got %v", err)
	}

	noTime := valid
	noTime.CreatedAt = time.Time{}
	if err := noTime.Validate(); err == nil {
		t.Error("zero timestamp should not validate")
	}
}

func TestAccountValidate(t *testing.T) {
	cases := []struct {
		name string
		acc  Account
		err  error
	}{
		{"valid", Account{Owner: "ada", Code: "4000-1"}, nil},
		{"no owner", Account{Code: "4000-1"}, ErrEmptyOwner},
		{"no code", Account{Owner: "ada"}, ErrEmptyCode},
		{"blank code", Account{Owner: "ada", Code: "   "}, ErrEmptyCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.acc.Validate()
			if tc.err == nil && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestNewPageMetadata(t *testing.T) {
	cases := []struct {
		total       int64
		page, size  int
		totalPages  int64
		hasNext     bool
		hasPrevious bool
	}{
		{45, 0, 20, 3, true, false},
		{45, 1, 20, 3, true, true},
		{45, 2, 20, 3, false, true},
		{0, 0, 20, 0, false, false},
		{20, 0, 20, 1, false, false},
	}
	for _, tc := range cases {
		md := NewPageMetadata(tc.total, tc.page, tc.size)
		if md.TotalPages != tc.totalPages || md.HasNext != tc.hasNext || md.HasPrevious != tc.hasPrevious {
			t.Errorf("total=%d page=%d: got %+v", tc.total, tc.page, md)
		}
	}
}
