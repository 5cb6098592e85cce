package service

import (
	"context"

	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/ocr"
	"github.com/carson-networks/club-budget-server/internal/receipt"
)

// ScanResult is the text read from a receipt photo and the amount proposed
// from it. Amount is 0 when nothing plausible was found.
type ScanResult struct {
	Text   string
	Amount int64
}

// ReceiptService proposes transaction amounts from receipts.
type ReceiptService struct {
	recognizer ocr.Recognizer
}

// NewReceiptService creates a new ReceiptService. A nil recognizer disables
// image scanning.
func NewReceiptService(recognizer ocr.Recognizer) *ReceiptService {
	if recognizer == nil {
		recognizer = ocr.Unavailable{}
	}
	return &ReceiptService{recognizer: recognizer}
}

// ExtractAmount returns the most likely total in already recognized text.
func (s *ReceiptService) ExtractAmount(text string) int64 {
	return receipt.Extract(text)
}

// Scan recognizes the text on a receipt photo and extracts its total.
func (s *ReceiptService) Scan(ctx context.Context, image []byte) (*ScanResult, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("ocrMs")
	}
	text, err := s.recognizer.RecognizeText(ctx, image)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, err
	}

	amount := receipt.Extract(text)
	if logData != nil {
		logData.AddData("proposedAmount", amount)
	}
	return &ScanResult{Text: text, Amount: amount}, nil
}
