package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/service"
)

type UpdateTransactionBody struct {
	Type        string `json:"type" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction direction"`
	Amount      string `json:"amount" required:"true" doc:"Positive amount in whole currency units"`
	Description string `json:"description,omitempty" maxLength:"500" doc:"Free-form description"`
}

type UpdateTransactionInput struct {
	TransactionID string `path:"transactionID" format:"uuid" doc:"Transaction UUID"`
	Body          UpdateTransactionBody
}

type TransactionOutput struct {
	Body Transaction
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, txType ledger.Type, amount int64, description string) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /v1/transaction/{transactionID}.
type UpdateTransactionHandler struct {
	LedgerService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{LedgerService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{transactionID}",
		Summary:     "Update transaction",
		Description: "Replaces the type, amount and description of a transaction and applies the difference to the club budget.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	id, err := params.ID("transactionID", input.TransactionID)
	if err != nil {
		return nil, err
	}
	txType, err := ledger.ParseType(input.Body.Type)
	if err != nil {
		return nil, httperr.FromError(err, "invalid type")
	}
	amount, err := params.PositiveAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	updated, err := h.LedgerService.UpdateTransaction(ctx, id, txType, amount, input.Body.Description)
	if err != nil {
		return nil, httperr.FromError(err, "failed to update transaction")
	}
	return &TransactionOutput{Body: toAPI(updated)}, nil
}
