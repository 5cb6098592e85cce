// Package events publishes ledger changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	TransactionRecorded = "transaction.recorded"
	TransactionUpdated  = "transaction.updated"
	TransactionDeleted  = "transaction.deleted"
)

// LedgerEvent describes one committed change to a club's ledger.
type LedgerEvent struct {
	Type          string    `json:"type"`
	TransactionID uuid.UUID `json:"transactionID"`
	ClubID        uuid.UUID `json:"clubID"`
	Direction     string    `json:"direction"`
	Amount        int64     `json:"amount"`
	ClubBalance   int64     `json:"clubBalance"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LedgerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
