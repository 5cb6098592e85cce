package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
)

type CreateClub struct {
	ID          uuid.UUID
	Name        string
	TotalBudget int64
	CreatedAt   time.Time

	Result *club.Club

	IAction
}

func (c *CreateClub) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Result = nil
	if c.TotalBudget < 0 {
		return ledger.ErrInvalidAmount
	}

	err := writer.Club.Insert(ctx, &club.ClubCreate{
		ID:          c.ID,
		Name:        c.Name,
		TotalBudget: c.TotalBudget,
		CreatedAt:   c.CreatedAt,
	})
	if err != nil {
		return err
	}

	c.Result, err = writer.Club.FindByID(ctx, c.ID)
	return err
}
