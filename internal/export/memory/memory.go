package memory

import (
	"context"
	"fmt"
	"sync"

	"carddash/internal/export"
)

// Store keeps exported statement rows in memory. Used when no
// spreadsheet is configured and in tests.
type Store struct {
	mu   sync.Mutex
	rows []export.StatementRow
}

func New() *Store {
	return &Store{}
}

var _ export.StatementWriter = (*Store)(nil)

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row export.StatementRow) (string, error) {
	if err := row.Amount.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything exported so far.
func (s *Store) Rows() []export.StatementRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]export.StatementRow(nil), s.rows...)
}
