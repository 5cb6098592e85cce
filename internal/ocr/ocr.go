// Package ocr turns receipt photos into text. The engine is an external
// service; results are cached by image digest.
package ocr

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("ocr: no text recognizer configured")

type Recognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// Unavailable is the recognizer used when OCR is switched off.
type Unavailable struct{}

func (Unavailable) RecognizeText(context.Context, []byte) (string, error) {
	return "", ErrUnavailable
}
