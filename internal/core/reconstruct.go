package core

import (
	"fmt"
	"time"
)

// Reconstruct rebuilds the per-day balance history for the elapsed days
// of the current month from the transaction set and the account's known
// current balance.
//
// Transactions are bucketed by day label in the given zone and their
// signed deltas summed per bucket. The walk then starts at currentDay
// with the anchor balance, records the running balance as that day's
// end-of-day value, removes the day's own net delta, and moves to the
// previous day. The recorded sequence is reversed so the result is
// ascending, with length currentDay and the last element always equal to
// the anchor balance.
//
// An empty transaction set is valid and yields a flat series. A
// transaction that involves neither side of the account is a contract
// violation and aborts the reconstruction.
func Reconstruct(transactions []Transaction, accountID int64, currentBalance Money, currentDay int, calendar []string, loc *time.Location) ([]DailyBalance, error) {
	if currentDay < 1 || currentDay > len(calendar) {
		return nil, fmt.Errorf("day %d outside calendar of %d days: %w", currentDay, len(calendar), ErrInvalidReconstruction)
	}

	dailySums := make(map[string]int64, len(transactions))
	for _, tx := range transactions {
		delta, err := SignedDelta(tx, accountID)
		if err != nil {
			return nil, fmt.Errorf("transaction %d for account %d: %w", tx.ID, accountID, err)
		}
		dailySums[DayLabel(tx.CreatedAt, loc)] += delta.Cents
	}

	series := make([]DailyBalance, currentDay)
	running := currentBalance
	for i := currentDay - 1; i >= 0; i-- {
		series[i] = DailyBalance{Day: calendar[i], Balance: running}
		running = Money{Cents: running.Cents - dailySums[calendar[i]]}
	}
	return series, nil
}

// NetDelta sums the signed deltas of all transactions bucketed on the
// given day label. Exposed for delta-law verification and the ledger
// table's per-day footer.
func NetDelta(transactions []Transaction, accountID int64, day string, loc *time.Location) (Money, error) {
	var sum int64
	for _, tx := range transactions {
		if DayLabel(tx.CreatedAt, loc) != day {
			continue
		}
		delta, err := SignedDelta(tx, accountID)
		if err != nil {
			return Money{}, fmt.Errorf("transaction %d for account %d: %w", tx.ID, accountID, err)
		}
		sum += delta.Cents
	}
	return Money{Cents: sum}, nil
}
