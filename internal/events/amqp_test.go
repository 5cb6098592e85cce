package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func sampleEvent() LedgerEvent {
	return LedgerEvent{
		Type:          TransactionRecorded,
		TransactionID: uuid.Must(uuid.NewV4()),
		ClubID:        uuid.Must(uuid.NewV4()),
		Direction:     "EXPENSE",
		Amount:        12000,
		ClubBalance:   38000,
		OccurredAt:    time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestAMQPPublisher_RoutesByEventType(t *testing.T) {
	ch := new(mockChannel)
	event := sampleEvent()

	ch.On("PublishWithContext", "club-ledger", TransactionRecorded, mock.MatchedBy(func(msg amqp091.Publishing) bool {
		var decoded LedgerEvent
		if err := json.Unmarshal(msg.Body, &decoded); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp091.Persistent &&
			msg.MessageId == event.TransactionID.String() &&
			decoded.Amount == 12000 &&
			decoded.ClubBalance == 38000
	})).Return(nil)

	p := &AMQPPublisher{channel: ch, exchange: "club-ledger"}
	require.NoError(t, p.Publish(context.Background(), event))
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_WrapsPublishError(t *testing.T) {
	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	p := &AMQPPublisher{channel: ch, exchange: "club-ledger"}
	err := p.Publish(context.Background(), sampleEvent())

	assert.ErrorContains(t, err, "publish transaction.recorded")
	assert.ErrorContains(t, err, "channel closed")
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
