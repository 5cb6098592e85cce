package club

import (
	"time"

	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// Club is the API response model for a club.
type Club struct {
	ID            string `json:"id" doc:"Club UUID"`
	Name          string `json:"name" doc:"Club name"`
	TotalBudget   string `json:"totalBudget" doc:"Allotted budget in whole currency units"`
	CurrentBudget string `json:"currentBudget" doc:"Running balance in whole currency units"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAPI(c *service.Club) Club {
	return Club{
		ID:            c.ID.String(),
		Name:          c.Name,
		TotalBudget:   params.FormatAmount(c.TotalBudget),
		CurrentBudget: params.FormatAmount(c.CurrentBudget),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

// ClubOutput is the Huma output for handlers that return one club.
type ClubOutput struct {
	Body Club
}
