package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

func seedClub(t *testing.T, s *Store, name string, total int64) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	w, err := s.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Club.Insert(context.Background(), &club.ClubCreate{
		ID:          id,
		Name:        name,
		TotalBudget: total,
		CreatedAt:   time.Now().UTC(),
	}))
	require.NoError(t, w.Commit())
	return id
}

func TestWrite_CommitPublishesChanges(t *testing.T) {
	s := NewStore()
	id := seedClub(t, s, "Hiking", 5000)

	c, err := s.Reader().Clubs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Hiking", c.Name)
	assert.Equal(t, int64(5000), c.TotalBudget)
	assert.Equal(t, int64(5000), c.CurrentBudget)
	assert.Equal(t, int64(0), c.Version)
}

func TestWrite_RollbackDiscardsChanges(t *testing.T) {
	s := NewStore()
	id := seedClub(t, s, "Chess", 1000)

	w, err := s.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Club.CompareAndSwapBalance(context.Background(), id, club.BalanceUpdate{
		ExpectedVersion: 0,
		TotalBudget:     1000,
		CurrentBudget:   1,
	}))
	require.NoError(t, w.Rollback())

	c, err := s.Reader().Clubs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.CurrentBudget)
	assert.Equal(t, int64(0), c.Version)
}

func TestCompareAndSwapBalance_StaleVersion(t *testing.T) {
	s := NewStore()
	id := seedClub(t, s, "Chess", 1000)

	w, err := s.Write(context.Background())
	require.NoError(t, err)
	defer w.Rollback()

	err = w.Club.CompareAndSwapBalance(context.Background(), id, club.BalanceUpdate{ExpectedVersion: 3, CurrentBudget: 10})
	assert.True(t, errors.Is(err, ledger.ErrConflictingWrite))
}

func TestTransactions_NotFound(t *testing.T) {
	s := NewStore()
	w, err := s.Write(context.Background())
	require.NoError(t, err)
	defer w.Rollback()

	missing := uuid.Must(uuid.NewV4())
	_, err = w.Transaction.FindByID(context.Background(), missing)
	assert.True(t, errors.Is(err, ledger.ErrNotFound))
	assert.True(t, errors.Is(w.Transaction.Delete(context.Background(), missing), ledger.ErrNotFound))
	assert.True(t, errors.Is(w.Transaction.Update(context.Background(), missing, &transaction.TransactionUpdate{}), ledger.ErrNotFound))
}

func TestTransactions_ListFiltersAndOrders(t *testing.T) {
	s := NewStore()
	clubA := seedClub(t, s, "A", 1000)
	clubB := seedClub(t, s, "B", 1000)
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	w, err := s.Write(context.Background())
	require.NoError(t, err)
	for i, clubID := range []uuid.UUID{clubA, clubA, clubB, clubA} {
		require.NoError(t, w.Transaction.Insert(context.Background(), &transaction.Transaction{
			ID:        uuid.Must(uuid.NewV4()),
			ClubID:    clubID,
			Type:      ledger.TypeIncome,
			Amount:    int64(100 * (i + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, w.Commit())

	rows, err := s.Reader().Transactions.List(context.Background(), &transaction.TransactionFilter{ClubID: &clubA})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(400), rows[0].Amount, "newest first")
	assert.Equal(t, int64(100), rows[2].Amount)

	maxTime := base.Add(time.Hour)
	rows, err = s.Reader().Transactions.List(context.Background(), &transaction.TransactionFilter{
		ClubID:          &clubA,
		MaxCreationTime: &maxTime,
		Limit:           1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2, "limit+1 rows so callers can detect another page")
	assert.Equal(t, int64(200), rows[0].Amount)
}

func TestClubs_ListOrderedByName(t *testing.T) {
	s := NewStore()
	seedClub(t, s, "Zumba", 1)
	seedClub(t, s, "Archery", 1)
	seedClub(t, s, "Mountaineering", 1)

	rows, err := s.Reader().Clubs.List(context.Background(), &club.ClubFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mountaineering", rows[0].Name)
	assert.Equal(t, "Zumba", rows[1].Name)
}

func TestWrite_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Write(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
