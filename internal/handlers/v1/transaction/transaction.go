package transaction

import (
	"time"

	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	ClubID          string `json:"clubID" doc:"Club UUID"`
	Type            string `json:"type" enum:"INCOME,EXPENSE" doc:"Transaction direction"`
	Amount          string `json:"amount" doc:"Amount in whole currency units"`
	Description     string `json:"description" doc:"Free-form description"`
	BalanceAfter    string `json:"balanceAfter" doc:"Club balance right after this transaction was written"`
	ReceiptImageRef string `json:"receiptImageRef,omitempty" doc:"Reference to the stored receipt image"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time with fractional seconds"`
}

func toAPI(tx *service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		ClubID:          tx.ClubID.String(),
		Type:            string(tx.Type),
		Amount:          params.FormatAmount(tx.Amount),
		Description:     tx.Description,
		BalanceAfter:    params.FormatAmount(tx.BalanceAfter),
		ReceiptImageRef: tx.ReceiptImageRef,
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339Nano),
	}
}

// maxReceiptBytes bounds request bodies that may carry a base64 receipt image.
const maxReceiptBytes = 10 << 20
