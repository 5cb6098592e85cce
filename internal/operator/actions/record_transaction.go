package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

type RecordTransaction struct {
	ID              uuid.UUID
	ClubID          uuid.UUID
	Type            ledger.Type
	Amount          int64
	Description     string
	ReceiptImageRef null.Val[string]
	CreatedAt       time.Time

	Result *transaction.Transaction

	IAction
}

func (r *RecordTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	r.Result = nil

	row, err := writer.Club.FindByID(ctx, r.ClubID)
	if err != nil {
		return err
	}

	newBalance, err := ledger.Record(row.CurrentBudget, r.Type, r.Amount)
	if err != nil {
		return err
	}

	err = writer.Club.CompareAndSwapBalance(ctx, r.ClubID, club.BalanceUpdate{
		ExpectedVersion: row.Version,
		TotalBudget:     row.TotalBudget,
		CurrentBudget:   newBalance,
	})
	if err != nil {
		return err
	}

	record := &transaction.Transaction{
		ID:              r.ID,
		ClubID:          r.ClubID,
		Type:            r.Type,
		Amount:          r.Amount,
		Description:     r.Description,
		BalanceAfter:    newBalance,
		ReceiptImageRef: r.ReceiptImageRef,
		CreatedAt:       r.CreatedAt,
	}
	if err = writer.Transaction.Insert(ctx, record); err != nil {
		return err
	}

	r.Result = record
	return nil
}
