package club

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// ListClubsCursor represents a pagination cursor in request and response bodies.
type ListClubsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListClubsBody is the request body for listing clubs.
type ListClubsBody struct {
	Cursor *ListClubsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

type ListClubsInput struct {
	Body ListClubsBody
}

type ListClubsResponseBody struct {
	Clubs      []Club           `json:"clubs" doc:"Page of clubs"`
	NextCursor *ListClubsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListClubsOutput struct {
	Body ListClubsResponseBody
}

type clubLister interface {
	ListClubs(ctx context.Context, cursor *service.ClubCursor) ([]service.Club, *service.ClubCursor, error)
}

// ListClubsHandler handles POST /v1/club/list.
type ListClubsHandler struct {
	ClubService clubLister
}

func NewListClubsHandler(svc clubLister) *ListClubsHandler {
	return &ListClubsHandler{ClubService: svc}
}

func (h *ListClubsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-clubs",
		Method:      http.MethodPost,
		Path:        "/v1/club/list",
		Summary:     "List clubs",
		Description: "Returns a paginated list of clubs ordered by name.",
		Tags:        []string{"Clubs"},
	}, h.handle)
}

func (h *ListClubsHandler) handle(ctx context.Context, input *ListClubsInput) (*ListClubsOutput, error) {
	var cursor *service.ClubCursor
	if input.Body.Cursor != nil {
		cursor = &service.ClubCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	clubs, nextCursor, err := h.ClubService.ListClubs(ctx, cursor)
	if err != nil {
		return nil, httperr.FromError(err, "failed to list clubs")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("clubCount", len(clubs))
	}

	resp := ListClubsResponseBody{Clubs: make([]Club, len(clubs))}
	for i := range clubs {
		resp.Clubs[i] = toAPI(&clubs[i])
	}
	if nextCursor != nil {
		resp.NextCursor = &ListClubsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}
	return &ListClubsOutput{Body: resp}, nil
}
