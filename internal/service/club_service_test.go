package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/club-budget-server/internal/ledger"
)

// -- CreateClub tests --

func TestCreateClub_Success(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.clubs.CreateClub(context.Background(), "Astronomy", 50000)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Astronomy", created.Name)
	assert.Equal(t, int64(50000), created.TotalBudget)
	assert.Equal(t, int64(50000), created.CurrentBudget)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateClub_NegativeBudget(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clubs.CreateClub(context.Background(), "Astronomy", -5)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

// -- GetClub tests --

func TestGetClub_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clubs.GetClub(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGetClub_Success(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.clubs.CreateClub(context.Background(), "Choir", 1000)
	require.NoError(t, err)

	got, err := env.clubs.GetClub(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(1000), got.CurrentBudget)
}

// -- ListClubs tests --

func TestListClubs_Empty(t *testing.T) {
	env := newTestEnv(t)

	clubs, next, err := env.clubs.ListClubs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, clubs)
	assert.Nil(t, next)
}

func TestListClubs_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		_, err := env.clubs.CreateClub(context.Background(), fmt.Sprintf("Club %d", i), 100)
		require.NoError(t, err)
	}

	first, next, err := env.clubs.ListClubs(context.Background(), &ClubCursor{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Club 0", first[0].Name)
	require.NotNil(t, next)
	assert.Equal(t, ClubCursor{Position: 2, Limit: 2}, *next)

	last, next, err := env.clubs.ListClubs(context.Background(), &ClubCursor{Position: 4, Limit: 2})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "Club 4", last[0].Name)
	assert.Nil(t, next)
}

// -- SetTotalBudget tests --

func TestSetTotalBudget_ShiftsCurrentBudget(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.clubs.CreateClub(context.Background(), "Robotics", 10000)
	require.NoError(t, err)

	updated, err := env.clubs.SetTotalBudget(context.Background(), created.ID, 7000)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), updated.TotalBudget)
	assert.Equal(t, int64(7000), updated.CurrentBudget)
}

func TestSetTotalBudget_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clubs.SetTotalBudget(context.Background(), uuid.Must(uuid.NewV4()), 10)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
