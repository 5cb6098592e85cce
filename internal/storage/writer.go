package storage

import (
	"context"

	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

// Tx is the commit/rollback half of a backend transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables written inside one transaction. Every change made
// through it becomes visible together on Commit.
type Writer struct {
	tx          Tx
	Club        club.IClubWriter
	Transaction transaction.ITransactionWriter
}

func NewWriter(tx Tx, clubs club.IClubWriter, transactions transaction.ITransactionWriter) *Writer {
	return &Writer{
		tx:          tx,
		Club:        clubs,
		Transaction: transactions,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
