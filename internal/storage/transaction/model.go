package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
)

const tableName = "transactions"

var columns = []any{"id", "club_id", "type", "amount", "description", "balance_after", "receipt_image_ref", "created_at"}

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID        `db:"id"`
	ClubID          uuid.UUID        `db:"club_id"`
	Type            ledger.Type      `db:"type"`
	Amount          int64            `db:"amount"`
	Description     string           `db:"description"`
	BalanceAfter    int64            `db:"balance_after"`
	ReceiptImageRef null.Val[string] `db:"receipt_image_ref"`
	CreatedAt       time.Time        `db:"created_at"`
}

// TransactionUpdate replaces the mutable fields of a transaction.
type TransactionUpdate struct {
	Type         ledger.Type
	Amount       int64
	Description  string
	BalanceAfter int64
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	ClubID          *uuid.UUID
	Type            *ledger.Type
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionReader defines the read operations on transactions.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// ITransactionWriter defines the transaction operations available inside a
// storage transaction.
type ITransactionWriter interface {
	ITransactionReader
	Insert(ctx context.Context, record *Transaction) error
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
