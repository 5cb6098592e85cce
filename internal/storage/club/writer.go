package club

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/club-budget-server/internal/ledger"
)

var _ IClubWriter = (*Writer)(nil)

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

func (w *Writer) Insert(ctx context.Context, create *ClubCreate) error {
	query := psql.Insert(
		im.Into(tableName, "id", "name", "total_budget", "current_budget", "version", "created_at"),
		im.Values(psql.Arg(create.ID, create.Name, create.TotalBudget, create.TotalBudget, int64(0), create.CreatedAt)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// CompareAndSwapBalance writes the budget fields and bumps the version. When
// another writer got there first no row matches and ErrConflictingWrite is
// returned.
func (w *Writer) CompareAndSwapBalance(ctx context.Context, id uuid.UUID, update BalanceUpdate) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("total_budget").ToArg(update.TotalBudget),
		um.SetCol("current_budget").ToArg(update.CurrentBudget),
		um.SetCol("version").ToArg(update.ExpectedVersion+1),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("version").EQ(psql.Arg(update.ExpectedVersion))),
	)

	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("club %s at version %d: %w", id, update.ExpectedVersion, ledger.ErrConflictingWrite)
	}
	return nil
}
