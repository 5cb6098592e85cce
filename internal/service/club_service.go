package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/operator"
	"github.com/carson-networks/club-budget-server/internal/operator/actions"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
)

const defaultClubLimit = 20

// ClubService handles club business logic.
type ClubService struct {
	reader   *storage.Reader
	operator operator.IOperatorDelegator
}

// NewClubService creates a new ClubService.
func NewClubService(reader *storage.Reader, op operator.IOperatorDelegator) *ClubService {
	return &ClubService{reader: reader, operator: op}
}

// CreateClub creates a club whose current budget starts at totalBudget.
func (s *ClubService) CreateClub(ctx context.Context, name string, totalBudget int64) (*Club, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	action := &actions.CreateClub{
		ID:          id,
		Name:        name,
		TotalBudget: totalBudget,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return clubFromStorage(action.Result), nil
}

// GetClub retrieves a club by ID.
func (s *ClubService) GetClub(ctx context.Context, id uuid.UUID) (*Club, error) {
	row, err := s.reader.Clubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return clubFromStorage(row), nil
}

// ListClubs returns a page of clubs ordered by name.
func (s *ClubService) ListClubs(ctx context.Context, cursor *ClubCursor) ([]Club, *ClubCursor, error) {
	limit := defaultClubLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.reader.Clubs.List(ctx, &club.ClubFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *ClubCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &ClubCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	clubs := make([]Club, len(rows))
	for i, row := range rows {
		clubs[i] = *clubFromStorage(row)
	}
	return clubs, nextCursor, nil
}

// SetTotalBudget changes the club's allotment, moving its current budget by
// the same amount.
func (s *ClubService) SetTotalBudget(ctx context.Context, id uuid.UUID, totalBudget int64) (*Club, error) {
	action := &actions.SetTotalBudget{
		ClubID:      id,
		TotalBudget: totalBudget,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return clubFromStorage(action.Result), nil
}
