package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

// Transaction represents a ledger entry in the service layer.
type Transaction struct {
	ID              uuid.UUID
	ClubID          uuid.UUID
	Type            ledger.Type
	Amount          int64
	Description     string
	BalanceAfter    int64
	ReceiptImageRef string
	CreatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set. It
// carries the limit, maxCreationTime and type filter of the first page so
// later pages walk the same rows.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
	Type            ledger.Type
}

func transactionFromStorage(row *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:              row.ID,
		ClubID:          row.ClubID,
		Type:            row.Type,
		Amount:          row.Amount,
		Description:     row.Description,
		BalanceAfter:    row.BalanceAfter,
		ReceiptImageRef: row.ReceiptImageRef.GetOrZero(),
		CreatedAt:       row.CreatedAt,
	}
}
