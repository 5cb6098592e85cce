package actions

import (
	"context"

	"github.com/carson-networks/club-budget-server/internal/storage"
)

// IAction is one ledger mutation. Perform may run more than once when the
// club balance changes underneath it, so it must derive everything from
// reads made through writer and reset its results on each call.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
