package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/club-budget-server/internal/ledger"
)

var _ ITransactionWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, record *Transaction) error {
	query := psql.Insert(
		im.Into(tableName, "id", "club_id", "type", "amount", "description", "balance_after", "receipt_image_ref", "created_at"),
		im.Values(psql.Arg(
			record.ID,
			record.ClubID,
			string(record.Type),
			record.Amount,
			record.Description,
			record.BalanceAfter,
			record.ReceiptImageRef,
			record.CreatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("type").ToArg(string(update.Type)),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("balance_after").ToArg(update.BalanceAfter),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}
	return requireAffected(result, id)
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}
	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id uuid.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}
