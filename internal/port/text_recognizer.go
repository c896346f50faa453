package port

import "context"

// RecognizedText is the result of running OCR over an image.
type RecognizedText struct {
	Text       string
	Confidence float64 // mean word confidence, 0..100
}

// TextRecognizer abstracts OCR over photographed or scanned documents.
type TextRecognizer interface {
	RecognizeImage(ctx context.Context, image []byte) (*RecognizedText, error)
}
