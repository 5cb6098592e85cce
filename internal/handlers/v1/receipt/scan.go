package receipt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/service"
)

const maxImageBytes = 10 << 20

type ScanBody struct {
	Image []byte `json:"image" required:"true" doc:"Base64 receipt photo"`
}

type ScanInput struct {
	Body ScanBody
}

type ScanResponse struct {
	Text string `json:"text" doc:"Recognized text"`
	AmountResponse
}

type ScanOutput struct {
	Body ScanResponse
}

type receiptScanner interface {
	Scan(ctx context.Context, image []byte) (*service.ScanResult, error)
}

// ScanHandler handles POST /v1/receipt/scan.
type ScanHandler struct {
	ReceiptService receiptScanner
}

func NewScanHandler(svc receiptScanner) *ScanHandler {
	return &ScanHandler{ReceiptService: svc}
}

func (h *ScanHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "scan-receipt",
		Method:       http.MethodPost,
		Path:         "/v1/receipt/scan",
		Summary:      "Scan receipt",
		Description:  "Recognizes the text on a receipt photo and proposes its total.",
		Tags:         []string{"Receipts"},
		MaxBodyBytes: maxImageBytes,
	}, h.handle)
}

func (h *ScanHandler) handle(ctx context.Context, input *ScanInput) (*ScanOutput, error) {
	if len(input.Body.Image) == 0 {
		return nil, huma.Error400BadRequest("image is empty")
	}

	result, err := h.ReceiptService.Scan(ctx, input.Body.Image)
	if err != nil {
		return nil, httperr.FromError(err, "failed to scan receipt")
	}

	return &ScanOutput{Body: ScanResponse{
		Text: result.Text,
		AmountResponse: AmountResponse{
			Amount: params.FormatAmount(result.Amount),
			Found:  result.Amount > 0,
		},
	}}, nil
}
