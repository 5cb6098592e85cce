package service

import (
	"context"
	"io"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/club-budget-server/internal/events"
	"github.com/carson-networks/club-budget-server/internal/operator"
	"github.com/carson-networks/club-budget-server/internal/storage/memory"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.LedgerEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

type testEnv struct {
	store    *memory.Store
	operator *operator.OperatorDelegator
	clubs    *ClubService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	op := operator.NewOperatorDelegator(store, 2, operator.WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	}))
	op.Start()
	t.Cleanup(op.Stop)

	return &testEnv{
		store:    store,
		operator: op,
		clubs:    NewClubService(store.Reader(), op),
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
