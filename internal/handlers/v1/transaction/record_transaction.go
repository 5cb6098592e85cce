package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// RecordTransactionBody is the request body for recording a transaction.
type RecordTransactionBody struct {
	Type         string `json:"type" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction direction"`
	Amount       string `json:"amount" required:"true" doc:"Positive amount in whole currency units"`
	Description  string `json:"description,omitempty" maxLength:"500" doc:"Free-form description"`
	ReceiptImage []byte `json:"receiptImage,omitempty" doc:"Base64 receipt photo to store with the transaction"`
}

// RecordTransactionInput is the Huma input for recording a transaction.
type RecordTransactionInput struct {
	ClubID string `path:"clubID" format:"uuid" doc:"Club UUID"`
	Body   RecordTransactionBody
}

type RecordTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	UploadError string      `json:"uploadError,omitempty" doc:"Set when the receipt image could not be stored; the transaction was recorded without it"`
}

// RecordTransactionOutput is the Huma output for recording a transaction.
type RecordTransactionOutput struct {
	Body RecordTransactionResponse
}

type transactionRecorder interface {
	RecordTransaction(ctx context.Context, input service.RecordInput) (*service.RecordResult, error)
}

// RecordTransactionHandler handles POST /v1/club/{clubID}/transaction.
type RecordTransactionHandler struct {
	LedgerService transactionRecorder
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler.
func NewRecordTransactionHandler(svc transactionRecorder) *RecordTransactionHandler {
	return &RecordTransactionHandler{LedgerService: svc}
}

// Register registers the record transaction endpoint with the Huma API.
func (h *RecordTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "record-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/club/{clubID}/transaction",
		Summary:       "Record transaction",
		Description:   "Records an income or expense against the club's budget. Expenses may not overdraw the budget.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  maxReceiptBytes,
	}, h.handle)
}

// parseRecordTransactionInput parses and validates the API input.
func parseRecordTransactionInput(input *RecordTransactionInput) (clubID uuid.UUID, txType ledger.Type, amount int64, err error) {
	clubID, err = params.ID("clubID", input.ClubID)
	if err != nil {
		return uuid.Nil, "", 0, err
	}
	txType, err = ledger.ParseType(input.Body.Type)
	if err != nil {
		return uuid.Nil, "", 0, httperr.FromError(err, "invalid type")
	}
	amount, err = params.PositiveAmount("amount", input.Body.Amount)
	if err != nil {
		return uuid.Nil, "", 0, err
	}
	return clubID, txType, amount, nil
}

func (h *RecordTransactionHandler) handle(ctx context.Context, input *RecordTransactionInput) (*RecordTransactionOutput, error) {
	clubID, txType, amount, err := parseRecordTransactionInput(input)
	if err != nil {
		return nil, err
	}

	result, err := h.LedgerService.RecordTransaction(ctx, service.RecordInput{
		ClubID:       clubID,
		Type:         txType,
		Amount:       amount,
		Description:  input.Body.Description,
		ReceiptImage: input.Body.ReceiptImage,
	})
	if err != nil {
		return nil, httperr.FromError(err, "failed to record transaction")
	}

	resp := RecordTransactionResponse{Transaction: toAPI(result.Transaction)}
	if result.UploadErr != nil {
		resp.UploadError = result.UploadErr.Error()
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", result.Transaction.ID.String())
		logData.AddData("receiptStored", result.Transaction.ReceiptImageRef != "")
	}
	return &RecordTransactionOutput{Body: resp}, nil
}
