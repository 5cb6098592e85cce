package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/club-budget-server/internal/events"
	"github.com/carson-networks/club-budget-server/internal/imagestore"
	"github.com/carson-networks/club-budget-server/internal/ledger"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func newLedgerTest(t *testing.T, images imagestore.Store) (*testEnv, *LedgerService, *mockPublisher, uuid.UUID) {
	t.Helper()
	env := newTestEnv(t)
	club, err := env.clubs.CreateClub(context.Background(), "Drama", 10000)
	require.NoError(t, err)

	publisher := new(mockPublisher)
	svc := NewLedgerService(env.operator, images, publisher, quietLogger())
	return env, svc, publisher, club.ID
}

func currentBudget(t *testing.T, env *testEnv, clubID uuid.UUID) int64 {
	t.Helper()
	club, err := env.clubs.GetClub(context.Background(), clubID)
	require.NoError(t, err)
	return club.CurrentBudget
}

// -- RecordTransaction tests --

func TestRecordTransaction_Success(t *testing.T) {
	env, svc, publisher, clubID := newLedgerTest(t, nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Type == events.TransactionRecorded && e.ClubID == clubID && e.Amount == 2500 && e.ClubBalance == 7500
	})).Return(nil)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID:      clubID,
		Type:        ledger.TypeExpense,
		Amount:      2500,
		Description: "Props",
	})
	require.NoError(t, err)

	assert.NoError(t, result.UploadErr)
	assert.Equal(t, int64(7500), result.Transaction.BalanceAfter)
	assert.Equal(t, "Props", result.Transaction.Description)
	assert.Empty(t, result.Transaction.ReceiptImageRef)
	assert.Equal(t, int64(7500), currentBudget(t, env, clubID))
	publisher.AssertExpectations(t)
}

func TestRecordTransaction_InsufficientBalance(t *testing.T) {
	env, svc, publisher, clubID := newLedgerTest(t, nil)

	_, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID: clubID,
		Type:   ledger.TypeExpense,
		Amount: 10001,
	})

	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Equal(t, int64(10000), currentBudget(t, env, clubID))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRecordTransaction_StoresReceiptImage(t *testing.T) {
	images := new(mockImageStore)
	images.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
		return len(name) > 4 && name[len(name)-4:] == ".png"
	}), pngHeader).Return("file:///receipts/x.png", nil)

	_, svc, publisher, clubID := newLedgerTest(t, images)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID:       clubID,
		Type:         ledger.TypeExpense,
		Amount:       100,
		ReceiptImage: pngHeader,
	})
	require.NoError(t, err)
	assert.NoError(t, result.UploadErr)
	assert.Equal(t, "file:///receipts/x.png", result.Transaction.ReceiptImageRef)
	images.AssertExpectations(t)
}

func TestRecordTransaction_UploadFailureStillRecords(t *testing.T) {
	images := new(mockImageStore)
	images.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("drive quota"))

	env, svc, publisher, clubID := newLedgerTest(t, images)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID:       clubID,
		Type:         ledger.TypeExpense,
		Amount:       1000,
		ReceiptImage: pngHeader,
	})
	require.NoError(t, err)
	assert.ErrorContains(t, result.UploadErr, "drive quota")
	assert.Empty(t, result.Transaction.ReceiptImageRef)
	assert.Equal(t, int64(9000), currentBudget(t, env, clubID))
}

func TestRecordTransaction_UploadsDisabled(t *testing.T) {
	_, svc, publisher, clubID := newLedgerTest(t, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID:       clubID,
		Type:         ledger.TypeIncome,
		Amount:       1000,
		ReceiptImage: pngHeader,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, result.UploadErr, imagestore.ErrDisabled)
}

func TestRecordTransaction_PublishFailureIsNotReturned(t *testing.T) {
	_, svc, publisher, clubID := newLedgerTest(t, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID: clubID,
		Type:   ledger.TypeIncome,
		Amount: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11000), result.Transaction.BalanceAfter)
}

// -- UpdateTransaction / DeleteTransaction tests --

func TestUpdateThenDelete_RestoresBalance(t *testing.T) {
	env, svc, publisher, clubID := newLedgerTest(t, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	recorded, err := svc.RecordTransaction(context.Background(), RecordInput{
		ClubID: clubID,
		Type:   ledger.TypeExpense,
		Amount: 3000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTransaction(context.Background(), recorded.Transaction.ID, ledger.TypeExpense, 4000, "Costumes")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), updated.BalanceAfter)
	assert.Equal(t, "Costumes", updated.Description)

	balance, err := svc.DeleteTransaction(context.Background(), recorded.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), balance)
	assert.Equal(t, int64(10000), currentBudget(t, env, clubID))

	publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Type == events.TransactionUpdated
	}))
	publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Type == events.TransactionDeleted && e.ClubBalance == 10000
	}))
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	_, svc, _, _ := newLedgerTest(t, nil)

	_, err := svc.UpdateTransaction(context.Background(), uuid.Must(uuid.NewV4()), ledger.TypeIncome, 1, "")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	_, svc, _, _ := newLedgerTest(t, nil)

	_, err := svc.DeleteTransaction(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
