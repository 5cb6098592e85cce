package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService serves transaction history.
type TransactionService struct {
	reader *storage.Reader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader *storage.Reader) *TransactionService {
	return &TransactionService{reader: reader}
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.reader.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transactionFromStorage(row), nil
}

// ListTransactions returns a page of a club's transactions, newest first.
// txType narrows the first page to incomes or expenses; an empty type lists
// both. A cursor from an earlier page overrides txType with the filter it
// was issued for.
func (s *TransactionService) ListTransactions(ctx context.Context, clubID uuid.UUID, txType ledger.Type, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if _, err := s.reader.Clubs.FindByID(ctx, clubID); err != nil {
		return nil, nil, err
	}

	filter := &transaction.TransactionFilter{
		ClubID: &clubID,
		Limit:  defaultLimit,
	}
	if cursor != nil {
		txType = cursor.Type
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
		filter.MaxCreationTime = &cursor.MaxCreationTime
	}
	if txType != "" {
		filter.Type = &txType
	}

	rows, err := s.reader.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var next *TransactionCursor
	if len(rows) > filter.Limit {
		rows = rows[:filter.Limit]

		// The first page pins the window to its newest row so rows recorded
		// while paging do not shift later offsets.
		upperBound := rows[0].CreatedAt
		if filter.MaxCreationTime != nil {
			upperBound = *filter.MaxCreationTime
		}
		next = &TransactionCursor{
			Position:        filter.Offset + filter.Limit,
			Limit:           filter.Limit,
			MaxCreationTime: upperBound,
			Type:            txType,
		}
	}

	page := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		page = append(page, *transactionFromStorage(row))
	}
	return page, next, nil
}
