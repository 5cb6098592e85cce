package receipt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/logging"
)

type ExtractBody struct {
	Text string `json:"text" maxLength:"65536" doc:"Text recognized from a receipt"`
}

type ExtractInput struct {
	Body ExtractBody
}

// AmountResponse carries the proposed amount. Found is false when the client
// should ask for the amount manually.
type AmountResponse struct {
	Amount string `json:"amount" doc:"Proposed amount in whole currency units, 0 if none"`
	Found  bool   `json:"found" doc:"Whether a plausible amount was found"`
}

type ExtractOutput struct {
	Body AmountResponse
}

type amountExtractor interface {
	ExtractAmount(text string) int64
}

// ExtractHandler handles POST /v1/receipt/extract.
type ExtractHandler struct {
	ReceiptService amountExtractor
}

func NewExtractHandler(svc amountExtractor) *ExtractHandler {
	return &ExtractHandler{ReceiptService: svc}
}

func (h *ExtractHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extract-receipt-amount",
		Method:      http.MethodPost,
		Path:        "/v1/receipt/extract",
		Summary:     "Extract receipt amount",
		Description: "Proposes the total of a receipt from its recognized text.",
		Tags:        []string{"Receipts"},
	}, h.handle)
}

func (h *ExtractHandler) handle(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	amount := h.ReceiptService.ExtractAmount(input.Body.Text)

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("proposedAmount", amount)
	}
	return &ExtractOutput{Body: AmountResponse{
		Amount: params.FormatAmount(amount),
		Found:  amount > 0,
	}}, nil
}
