// Package worker moves recorded transfers from the ledger into the
// statement export backend.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"carddash/internal/amqp"
	"carddash/internal/core"
	"carddash/internal/export"
)

// Ledger is the slice of the repository the worker needs.
type Ledger interface {
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	UnexportedTransfers(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkExported(ctx context.Context, id int64) error
}

// ExportWorker exports transfers as statement rows, either on demand
// from AMQP messages or via the periodic sweep over anything missed.
type ExportWorker struct {
	ledger    Ledger
	writer    export.StatementWriter
	batchSize int
}

func NewExportWorker(ledger Ledger, writer export.StatementWriter, batchSize int) *ExportWorker {
	return &ExportWorker{
		ledger:    ledger,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleTransferRecorded processes a single transfer event from AMQP.
func (w *ExportWorker) HandleTransferRecorded(ctx context.Context, msg *amqp.TransferRecordedMessage) error {
	slog.InfoContext(ctx, "Processing transfer recorded message",
		"transaction_id", msg.TransactionID,
		"code", msg.Code)

	tx, err := w.ledger.GetTransaction(ctx, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.exportTransfer(ctx, tx)
}

// ProcessPending sweeps unexported transfers, at most batchSize per run.
// Individual rows export concurrently; the sqlite side is read-mostly
// and the sheet append is the slow part.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.ledger.UnexportedTransfers(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unexported transfers: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, tx := range pending {
		g.Go(func() error {
			return w.exportTransfer(ctx, tx)
		})
	}
	return g.Wait()
}

func (w *ExportWorker) exportTransfer(ctx context.Context, tx core.Transaction) error {
	sender, err := w.ledger.GetAccount(ctx, tx.SenderAccountID)
	if err != nil {
		return fmt.Errorf("resolve sender account %d: %w", tx.SenderAccountID, err)
	}
	recipient, err := w.ledger.GetAccount(ctx, tx.RecipientAccountID)
	if err != nil {
		return fmt.Errorf("resolve recipient account %d: %w", tx.RecipientAccountID, err)
	}

	ref, err := w.writer.Append(ctx, export.StatementRow{
		Date:          tx.CreatedAt,
		Code:          tx.Code,
		SenderCode:    sender.Code,
		RecipientCode: recipient.Code,
		Amount:        tx.Amount,
	})
	if err != nil {
		return fmt.Errorf("append statement row: %w", err)
	}

	if err := w.ledger.MarkExported(ctx, tx.ID); err != nil {
		return fmt.Errorf("mark transfer exported: %w", err)
	}

	slog.InfoContext(ctx, "Transfer exported",
		"transaction_id", tx.ID,
		"code", tx.Code,
		"row_ref", ref)
	return nil
}
