package club

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/service"
)

type SetBudgetBody struct {
	TotalBudget string `json:"totalBudget" required:"true" doc:"New allotted budget in whole currency units"`
}

type SetBudgetInput struct {
	ClubID string `path:"clubID" format:"uuid" doc:"Club UUID"`
	Body   SetBudgetBody
}

type budgetSetter interface {
	SetTotalBudget(ctx context.Context, id uuid.UUID, totalBudget int64) (*service.Club, error)
}

// SetBudgetHandler handles PUT /v1/club/{clubID}/budget.
type SetBudgetHandler struct {
	ClubService budgetSetter
}

func NewSetBudgetHandler(svc budgetSetter) *SetBudgetHandler {
	return &SetBudgetHandler{ClubService: svc}
}

func (h *SetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-club-budget",
		Method:      http.MethodPut,
		Path:        "/v1/club/{clubID}/budget",
		Summary:     "Set club budget",
		Description: "Changes the club's total budget. The current budget moves by the same amount and may not go negative.",
		Tags:        []string{"Clubs"},
	}, h.handle)
}

func (h *SetBudgetHandler) handle(ctx context.Context, input *SetBudgetInput) (*ClubOutput, error) {
	clubID, err := params.ID("clubID", input.ClubID)
	if err != nil {
		return nil, err
	}
	totalBudget, err := params.Amount("totalBudget", input.Body.TotalBudget)
	if err != nil {
		return nil, err
	}

	updated, err := h.ClubService.SetTotalBudget(ctx, clubID, totalBudget)
	if err != nil {
		return nil, httperr.FromError(err, "failed to set club budget")
	}
	return &ClubOutput{Body: toAPI(updated)}, nil
}
