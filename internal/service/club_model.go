package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/storage/club"
)

// Club represents a club and its budget in the service layer.
type Club struct {
	ID            uuid.UUID
	Name          string
	TotalBudget   int64
	CurrentBudget int64
	CreatedAt     time.Time
}

// ClubCursor identifies a position in a paginated result set.
type ClubCursor struct {
	Position int
	Limit    int
}

func clubFromStorage(row *club.Club) *Club {
	return &Club{
		ID:            row.ID,
		Name:          row.Name,
		TotalBudget:   row.TotalBudget,
		CurrentBudget: row.CurrentBudget,
		CreatedAt:     row.CreatedAt,
	}
}
