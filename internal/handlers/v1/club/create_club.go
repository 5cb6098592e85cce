package club

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// CreateClubBody is the request body for creating a club.
type CreateClubBody struct {
	Name        string `json:"name" required:"true" minLength:"1" maxLength:"100" doc:"Club name"`
	TotalBudget string `json:"totalBudget" required:"true" doc:"Allotted budget in whole currency units"`
}

// CreateClubInput is the Huma input for creating a club.
type CreateClubInput struct {
	Body CreateClubBody
}

type clubCreator interface {
	CreateClub(ctx context.Context, name string, totalBudget int64) (*service.Club, error)
}

// CreateClubHandler handles POST /v1/club.
type CreateClubHandler struct {
	ClubService clubCreator
}

func NewCreateClubHandler(svc clubCreator) *CreateClubHandler {
	return &CreateClubHandler{ClubService: svc}
}

// Register registers the create club endpoint with the Huma API.
func (h *CreateClubHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-club",
		Method:        http.MethodPost,
		Path:          "/v1/club",
		Summary:       "Create club",
		Description:   "Creates a club whose current budget starts at its total budget.",
		Tags:          []string{"Clubs"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateClubHandler) handle(ctx context.Context, input *CreateClubInput) (*ClubOutput, error) {
	totalBudget, err := params.Amount("totalBudget", input.Body.TotalBudget)
	if err != nil {
		return nil, err
	}

	created, err := h.ClubService.CreateClub(ctx, input.Body.Name, totalBudget)
	if err != nil {
		return nil, httperr.FromError(err, "failed to create club")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("clubID", created.ID.String())
	}
	return &ClubOutput{Body: toAPI(created)}, nil
}
