package club

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/service"
)

type mockClubService struct {
	mock.Mock
}

func (m *mockClubService) CreateClub(ctx context.Context, name string, totalBudget int64) (*service.Club, error) {
	args := m.Called(ctx, name, totalBudget)
	c, _ := args.Get(0).(*service.Club)
	return c, args.Error(1)
}

func (m *mockClubService) GetClub(ctx context.Context, id uuid.UUID) (*service.Club, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*service.Club)
	return c, args.Error(1)
}

func (m *mockClubService) ListClubs(ctx context.Context, cursor *service.ClubCursor) ([]service.Club, *service.ClubCursor, error) {
	args := m.Called(ctx, cursor)
	clubs, _ := args.Get(0).([]service.Club)
	next, _ := args.Get(1).(*service.ClubCursor)
	return clubs, next, args.Error(2)
}

func (m *mockClubService) SetTotalBudget(ctx context.Context, id uuid.UUID, totalBudget int64) (*service.Club, error) {
	args := m.Called(ctx, id, totalBudget)
	c, _ := args.Get(0).(*service.Club)
	return c, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockClubService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateClubHandler(svc).Register(api)
	NewGetClubHandler(svc).Register(api)
	NewListClubsHandler(svc).Register(api)
	NewSetBudgetHandler(svc).Register(api)
	return api
}

func sampleClub(name string, total, current int64) *service.Club {
	return &service.Club{
		ID:            uuid.Must(uuid.NewV4()),
		Name:          name,
		TotalBudget:   total,
		CurrentBudget: current,
		CreatedAt:     time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

// -- create-club --

func TestHTTP_CreateClub_Success(t *testing.T) {
	svc := new(mockClubService)
	created := sampleClub("Hiking", 300000, 300000)
	svc.On("CreateClub", mock.Anything, "Hiking", int64(300000)).Return(created, nil)

	resp := newTestAPI(t, svc).Post("/v1/club", CreateClubBody{Name: "Hiking", TotalBudget: "300000"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Club
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "300000", body.CurrentBudget)
	assert.Equal(t, "2025-03-02T09:00:00Z", body.CreatedAt)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateClub_FractionalBudget(t *testing.T) {
	svc := new(mockClubService)

	resp := newTestAPI(t, svc).Post("/v1/club", CreateClubBody{Name: "Hiking", TotalBudget: "10.50"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateClub")
}

func TestHTTP_CreateClub_EmptyName(t *testing.T) {
	svc := new(mockClubService)

	resp := newTestAPI(t, svc).Post("/v1/club", CreateClubBody{Name: "", TotalBudget: "10"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateClub")
}

// -- get-club --

func TestHTTP_GetClub_Success(t *testing.T) {
	svc := new(mockClubService)
	found := sampleClub("Chess", 1000, 250)
	svc.On("GetClub", mock.Anything, found.ID).Return(found, nil)

	resp := newTestAPI(t, svc).Get("/v1/club/" + found.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Club
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1000", body.TotalBudget)
	assert.Equal(t, "250", body.CurrentBudget)
}

func TestHTTP_GetClub_NotFound(t *testing.T) {
	svc := new(mockClubService)
	svc.On("GetClub", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("club: %w", ledger.ErrNotFound))

	resp := newTestAPI(t, svc).Get("/v1/club/" + uuid.Must(uuid.NewV4()).String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetClub_InvalidID(t *testing.T) {
	svc := new(mockClubService)

	resp := newTestAPI(t, svc).Get("/v1/club/not-a-uuid")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "GetClub")
}

// -- list-clubs --

func TestHTTP_ListClubs_WithNextCursor(t *testing.T) {
	svc := new(mockClubService)
	svc.On("ListClubs", mock.Anything, &service.ClubCursor{Position: 0, Limit: 1}).
		Return([]service.Club{*sampleClub("Art", 1, 1)}, &service.ClubCursor{Position: 1, Limit: 1}, nil)

	resp := newTestAPI(t, svc).Post("/v1/club/list", ListClubsBody{Cursor: &ListClubsCursor{Position: 0, Limit: 1}})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListClubsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Clubs, 1)
	assert.Equal(t, "Art", body.Clubs[0].Name)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 1, body.NextCursor.Position)
}

func TestHTTP_ListClubs_ServiceError(t *testing.T) {
	svc := new(mockClubService)
	svc.On("ListClubs", mock.Anything, (*service.ClubCursor)(nil)).Return(nil, nil, errors.New("db down"))

	resp := newTestAPI(t, svc).Post("/v1/club/list", ListClubsBody{})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

// -- set-club-budget --

func TestHTTP_SetBudget_Success(t *testing.T) {
	svc := new(mockClubService)
	updated := sampleClub("Band", 8000, 5000)
	svc.On("SetTotalBudget", mock.Anything, updated.ID, int64(8000)).Return(updated, nil)

	resp := newTestAPI(t, svc).Put("/v1/club/"+updated.ID.String()+"/budget", SetBudgetBody{TotalBudget: "8000"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Club
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "5000", body.CurrentBudget)
}

func TestHTTP_SetBudget_InsufficientBalance(t *testing.T) {
	svc := new(mockClubService)
	svc.On("SetTotalBudget", mock.Anything, mock.Anything, int64(0)).
		Return(nil, fmt.Errorf("%w: balance 100", ledger.ErrInsufficientBalance))

	resp := newTestAPI(t, svc).Put("/v1/club/"+uuid.Must(uuid.NewV4()).String()+"/budget", SetBudgetBody{TotalBudget: "0"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
