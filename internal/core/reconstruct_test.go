package core

import (
	"errors"
	"testing"
	"time"
)

var rome = mustZone("Europe/Rome")

func mustZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func txOn(id int64, sender, recipient int64, cents int64, year int, month time.Month, day int) Transaction {
	return Transaction{
		ID:                 id,
		SenderAccountID:    sender,
		RecipientAccountID: recipient,
		Amount:             Money{Cents: cents},
		CreatedAt:          time.Date(year, month, day, 12, 0, 0, 0, rome),
	}
}

func TestReconstructExample(t *testing.T) {
	// Balance 1000.00 on day 10; received 200.00 on day 9, sent 50.00 on
	// day 10. Days 1-8 flat at 850.00, day 9 at 1050.00, day 10 at 1000.00.
	const accountID = 1
	calendar := MonthCalendar(2025, time.March, rome)
	txs := []Transaction{
		txOn(1, 2, accountID, 20000, 2025, time.March, 9),
		txOn(2, accountID, 2, 5000, 2025, time.March, 10),
	}

	series, err := Reconstruct(txs, accountID, Money{Cents: 100000}, 10, calendar, rome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 10 {
		t.Fatalf("expected 10 days, got %d", len(series))
	}
	for d := 0; d < 8; d++ {
		if series[d].Balance.Cents != 85000 {
			t.Errorf("day %d: expected 85000, got %d", d+1, series[d].Balance.Cents)
		}
	}
	if series[8].Balance.Cents != 105000 {
		t.Errorf("day 9: expected 105000, got %d", series[8].Balance.Cents)
	}
	if series[9].Balance.Cents != 100000 {
		t.Errorf("day 10: expected 100000, got %d", series[9].Balance.Cents)
	}
	for i, db := range series {
		if db.Day != calendar[i] {
			t.Errorf("day %d labelled %q, want %q", i+1, db.Day, calendar[i])
		}
	}
}

func TestReconstructTerminalConsistency(t *testing.T) {
	const accountID = 7
	calendar := MonthCalendar(2025, time.June, rome)
	cases := []struct {
		name    string
		txs     []Transaction
		balance int64
		day     int
	}{
		{"no activity", nil, 123456, 15},
		{"single incoming", []Transaction{txOn(1, 9, accountID, 500, 2025, time.June, 3)}, -200, 5},
		{"mixed activity", []Transaction{
			txOn(1, accountID, 9, 10000, 2025, time.June, 1),
			txOn(2, 9, accountID, 2500, 2025, time.June, 2),
			txOn(3, accountID, 8, 99, 2025, time.June, 2),
		}, 777, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			series, err := Reconstruct(tc.txs, accountID, Money{Cents: tc.balance}, tc.day, calendar, rome)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := series[len(series)-1].Balance.Cents; got != tc.balance {
				t.Fatalf("terminal balance %d, want %d", got, tc.balance)
			}
		})
	}
}

func TestReconstructZeroActivity(t *testing.T) {
	calendar := MonthCalendar(2025, time.February, rome)
	series, err := Reconstruct(nil, 1, Money{Cents: 4242}, 20, calendar, rome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 20 {
		t.Fatalf("expected 20 days, got %d", len(series))
	}
	for i, db := range series {
		if db.Balance.Cents != 4242 {
			t.Errorf("day %d: expected flat 4242, got %d", i+1, db.Balance.Cents)
		}
	}
}

func TestReconstructDayOverDayDeltaLaw(t *testing.T) {
	const accountID = 3
	calendar := MonthCalendar(2025, time.May, rome)
	txs := []Transaction{
		txOn(1, accountID, 5, 300, 2025, time.May, 2),
		txOn(2, 5, accountID, 1250, 2025, time.May, 2),
		txOn(3, 5, accountID, 40, 2025, time.May, 5),
		txOn(4, accountID, 6, 7000, 2025, time.May, 11),
	}
	series, err := Reconstruct(txs, accountID, Money{Cents: 55000}, 12, calendar, rome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for d := 1; d < len(series); d++ {
		net, err := NetDelta(txs, accountID, series[d].Day, rome)
		if err != nil {
			t.Fatalf("net delta for %s: %v", series[d].Day, err)
		}
		diff := series[d].Balance.Cents - series[d-1].Balance.Cents
		if diff != net.Cents {
			t.Errorf("day %s: balance moved %d, net delta %d", series[d].Day, diff, net.Cents)
		}
	}
}

func TestReconstructFirstDayOfMonth(t *testing.T) {
	calendar := MonthCalendar(2025, time.April, rome)
	series, err := Reconstruct(nil, 1, Money{Cents: 900}, 1, calendar, rome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 || series[0].Balance.Cents != 900 {
		t.Fatalf("expected single-element series at 900, got %+v", series)
	}
}

func TestReconstructUnrelatedTransactionFailsLoudly(t *testing.T) {
	calendar := MonthCalendar(2025, time.April, rome)
	txs := []Transaction{txOn(1, 8, 9, 100, 2025, time.April, 2)}
	_, err := Reconstruct(txs, 1, Money{Cents: 1000}, 3, calendar, rome)
	if !errors.Is(err, ErrUnrelatedTransaction) {
		t.Fatalf("expected ErrUnrelatedTransaction, got %v", err)
	}
}

func TestReconstructDayOutsideCalendar(t *testing.T) {
	calendar := MonthCalendar(2025, time.April, rome)
	for _, day := range []int{0, -1, len(calendar) + 1} {
		if _, err := Reconstruct(nil, 1, Money{}, day, calendar, rome); !errors.Is(err, ErrInvalidReconstruction) {
			t.Errorf("day %d: expected ErrInvalidReconstruction, got %v", day, err)
		}
	}
}

func TestSignedDelta(t *testing.T) {
	tx := Transaction{ID: 1, SenderAccountID: 10, RecipientAccountID: 20, Amount: Money{Cents: 150}}

	if d, err := SignedDelta(tx, 10); err != nil || d.Cents != -150 {
		t.Errorf("sender delta: got %d, %v", d.Cents, err)
	}
	if d, err := SignedDelta(tx, 20); err != nil || d.Cents != 150 {
		t.Errorf("recipient delta: got %d, %v", d.Cents, err)
	}
	if _, err := SignedDelta(tx, 30); !errors.Is(err, ErrUnrelatedTransaction) {
		t.Errorf("unrelated account: expected ErrUnrelatedTransaction, got %v", err)
	}
}

func TestMonthCalendar(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
		first string
		last  string
	}{
		{2025, time.January, 31, "Jan 1", "Jan 31"},
		{2025, time.February, 28, "Feb 1", "Feb 28"},
		{2024, time.February, 29, "Feb 1", "Feb 29"},
		{2025, time.April, 30, "Apr 1", "Apr 30"},
	}
	for _, tc := range cases {
		got := MonthCalendar(tc.year, tc.month, rome)
		if len(got) != tc.days {
			t.Errorf("%v %d: %d days, want %d", tc.month, tc.year, len(got), tc.days)
			continue
		}
		if got[0] != tc.first || got[len(got)-1] != tc.last {
			t.Errorf("%v %d: range %q..%q, want %q..%q", tc.month, tc.year, got[0], got[len(got)-1], tc.first, tc.last)
		}
	}
}

func TestDayLabelUsesConfiguredZone(t *testing.T) {
	// 23:30 UTC on Mar 3 is already Mar 4 in Rome.
	ts := time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC)
	if got := DayLabel(ts, rome); got != "Mar 4" {
		t.Fatalf("expected Mar 4 in Rome, got %q", got)
	}
	if got := DayLabel(ts, time.UTC); got != "Mar 3" {
		t.Fatalf("expected Mar 3 in UTC, got %q", got)
	}
}

func TestMonthBounds(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, rome)
	from, to := MonthBounds(now, rome)
	if from.Day() != 1 || from.Month() != time.March || from.Hour() != 0 {
		t.Errorf("unexpected lower bound %v", from)
	}
	if to.Day() != 31 || to.Month() != time.March || to.Hour() != 23 {
		t.Errorf("unexpected upper bound %v", to)
	}
	if !from.Before(now) || !to.After(now) {
		t.Errorf("bounds %v..%v do not contain %v", from, to, now)
	}
}
