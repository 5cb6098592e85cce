package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

// DeleteTransaction removes a transaction and reverses its effect on the club
// balance. The reversal is not bounded below.
type DeleteTransaction struct {
	TransactionID uuid.UUID

	// Deleted is the removed record; ClubBalance the club's budget afterwards.
	Deleted     *transaction.Transaction
	ClubBalance int64

	IAction
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	d.Deleted = nil
	d.ClubBalance = 0

	existing, err := writer.Transaction.FindByID(ctx, d.TransactionID)
	if err != nil {
		return err
	}

	row, err := writer.Club.FindByID(ctx, existing.ClubID)
	if err != nil {
		return err
	}

	newBalance, err := ledger.Reverse(row.CurrentBudget, existing.Type, existing.Amount)
	if err != nil {
		return err
	}
	err = writer.Club.CompareAndSwapBalance(ctx, row.ID, club.BalanceUpdate{
		ExpectedVersion: row.Version,
		TotalBudget:     row.TotalBudget,
		CurrentBudget:   newBalance,
	})
	if err != nil {
		return err
	}

	if err = writer.Transaction.Delete(ctx, d.TransactionID); err != nil {
		return err
	}

	d.Deleted = existing
	d.ClubBalance = newBalance
	return nil
}
