package storage

import (
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

type Reader struct {
	Clubs        club.IClubReader
	Transactions transaction.ITransactionReader
}
