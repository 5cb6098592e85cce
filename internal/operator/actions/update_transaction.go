package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

// UpdateTransaction replaces the type, amount and description of a recorded
// transaction. Only the edited transaction's balance_after is rewritten; later
// transactions keep the snapshot they were written with.
type UpdateTransaction struct {
	TransactionID uuid.UUID
	Type          ledger.Type
	Amount        int64
	Description   string

	Result *transaction.Transaction

	IAction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	u.Result = nil

	existing, err := writer.Transaction.FindByID(ctx, u.TransactionID)
	if err != nil {
		return err
	}

	row, err := writer.Club.FindByID(ctx, existing.ClubID)
	if err != nil {
		return err
	}

	newBalance, err := ledger.Update(row.CurrentBudget, existing.Type, existing.Amount, u.Type, u.Amount)
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

	err = writer.Transaction.Update(ctx, u.TransactionID, &transaction.TransactionUpdate{
		Type:         u.Type,
		Amount:       u.Amount,
		Description:  u.Description,
		BalanceAfter: newBalance,
	})
	if err != nil {
		return err
	}

	updated := *existing
	updated.Type = u.Type
	updated.Amount = u.Amount
	updated.Description = u.Description
	updated.BalanceAfter = newBalance
	u.Result = &updated
	return nil
}
