package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
)

type DeleteTransactionInput struct {
	TransactionID string `path:"transactionID" format:"uuid" doc:"Transaction UUID"`
}

type DeleteTransactionResponse struct {
	ClubBalance string `json:"clubBalance" doc:"Club budget after the transaction was reversed"`
}

type DeleteTransactionOutput struct {
	Body DeleteTransactionResponse
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) (int64, error)
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{transactionID}.
type DeleteTransactionHandler struct {
	LedgerService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{LedgerService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{transactionID}",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction and reverses its effect on the club budget.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	id, err := params.ID("transactionID", input.TransactionID)
	if err != nil {
		return nil, err
	}

	balance, err := h.LedgerService.DeleteTransaction(ctx, id)
	if err != nil {
		return nil, httperr.FromError(err, "failed to delete transaction")
	}

	return &DeleteTransactionOutput{
		Body: DeleteTransactionResponse{ClubBalance: params.FormatAmount(balance)},
	}, nil
}
