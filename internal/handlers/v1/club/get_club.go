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

type GetClubInput struct {
	ClubID string `path:"clubID" format:"uuid" doc:"Club UUID"`
}

type clubGetter interface {
	GetClub(ctx context.Context, id uuid.UUID) (*service.Club, error)
}

// GetClubHandler handles GET /v1/club/{clubID}.
type GetClubHandler struct {
	ClubService clubGetter
}

func NewGetClubHandler(svc clubGetter) *GetClubHandler {
	return &GetClubHandler{ClubService: svc}
}

func (h *GetClubHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-club",
		Method:      http.MethodGet,
		Path:        "/v1/club/{clubID}",
		Summary:     "Get club",
		Description: "Returns a club with its total and current budget.",
		Tags:        []string{"Clubs"},
	}, h.handle)
}

func (h *GetClubHandler) handle(ctx context.Context, input *GetClubInput) (*ClubOutput, error) {
	clubID, err := params.ID("clubID", input.ClubID)
	if err != nil {
		return nil, err
	}

	found, err := h.ClubService.GetClub(ctx, clubID)
	if err != nil {
		return nil, httperr.FromError(err, "failed to get club")
	}
	return &ClubOutput{Body: toAPI(found)}, nil
}
