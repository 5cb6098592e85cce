package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
)

// SetTotalBudget changes a club's allotment and moves the current budget by
// the same amount.
type SetTotalBudget struct {
	ClubID      uuid.UUID
	TotalBudget int64

	Result *club.Club

	IAction
}

func (s *SetTotalBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	s.Result = nil

	row, err := writer.Club.FindByID(ctx, s.ClubID)
	if err != nil {
		return err
	}

	newCurrent, err := ledger.AdjustTotal(row.CurrentBudget, row.TotalBudget, s.TotalBudget)
	if err != nil {
		return err
	}

	err = writer.Club.CompareAndSwapBalance(ctx, s.ClubID, club.BalanceUpdate{
		ExpectedVersion: row.Version,
		TotalBudget:     s.TotalBudget,
		CurrentBudget:   newCurrent,
	})
	if err != nil {
		return err
	}

	s.Result, err = writer.Club.FindByID(ctx, s.ClubID)
	return err
}
