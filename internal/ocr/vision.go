package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/vision/v1"
)

const textDetection = "TEXT_DETECTION"

var languageHints = []string{"ko", "en"}

// VisionRecognizer calls the Cloud Vision text detection API.
type VisionRecognizer struct {
	images *vision.ImagesService
}

func NewVisionRecognizer(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*VisionRecognizer, error) {
	opts = append([]option.ClientOption{option.WithScopes(vision.CloudVisionScope)}, opts...)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}
	return &VisionRecognizer{images: svc.Images}, nil
}

func (v *VisionRecognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:        &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features:     []*vision.Feature{{Type: textDetection}},
			ImageContext: &vision.ImageContext{LanguageHints: languageHints},
		}},
	}

	resp, err := v.images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", errors.New("vision annotate: empty response")
	}

	result := resp.Responses[0]
	if result.Error != nil {
		return "", fmt.Errorf("vision annotate: %s", result.Error.Message)
	}
	if result.FullTextAnnotation != nil {
		return result.FullTextAnnotation.Text, nil
	}
	if len(result.TextAnnotations) > 0 {
		return result.TextAnnotations[0].Description, nil
	}
	return "", nil
}
