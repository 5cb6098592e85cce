package club

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "clubs"

var columns = []any{"id", "name", "total_budget", "current_budget", "version", "created_at"}

// Club represents a club record with its budget state.
type Club struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	TotalBudget   int64     `db:"total_budget"`
	CurrentBudget int64     `db:"current_budget"`
	Version       int64     `db:"version"`
	CreatedAt     time.Time `db:"created_at"`
}

// ClubCreate is the input for creating a new club. The current budget starts
// at the total budget.
type ClubCreate struct {
	ID          uuid.UUID
	Name        string
	TotalBudget int64
	CreatedAt   time.Time
}

// BalanceUpdate is a compare-and-swap of the club's budget fields. It only
// applies while the stored version equals ExpectedVersion.
type BalanceUpdate struct {
	ExpectedVersion int64
	TotalBudget     int64
	CurrentBudget   int64
}

// ClubFilter specifies filters for listing clubs.
type ClubFilter struct {
	Limit  int
	Offset int
}

// IClubReader defines the read operations on clubs.
type IClubReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Club, error)
	List(ctx context.Context, filter *ClubFilter) ([]*Club, error)
}

// IClubWriter defines the club operations available inside a storage transaction.
type IClubWriter interface {
	IClubReader
	Insert(ctx context.Context, create *ClubCreate) error
	CompareAndSwapBalance(ctx context.Context, id uuid.UUID, update BalanceUpdate) error
}
